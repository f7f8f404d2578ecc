// Package app provides the session service that owns the scheduling
// snapshot and implements the dependencies required by the HTTP API.
package app

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"sync"
	"time"

	repository "github.com/okian/proctord/internal/adapters/repository"
	"github.com/okian/proctord/internal/domain/availability"
	"github.com/okian/proctord/internal/domain/model"
	"github.com/okian/proctord/internal/domain/schedule"
	"github.com/okian/proctord/internal/domain/stats"
	"github.com/okian/proctord/internal/domain/transition"
	"github.com/okian/proctord/pkg/logger"
	"github.com/okian/proctord/pkg/metrics"
)

// Service is the single logical owner of the snapshot. Every command
// observes and replaces the entire snapshot under one write lock, which is
// the serializing mechanism the engine's atomicity contract requires.
type Service struct {
	mu   sync.RWMutex
	snap model.Snapshot

	store         repository.Store
	adminSecret   string
	pointsPerSlot int

	started bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the snapshot persistence store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithAdminSecret sets the shared secret gating the admin session.
func WithAdminSecret(secret string) Option {
	return func(s *Service) {
		s.adminSecret = secret
	}
}

// WithPointsPerSlot sets the points awarded per slot when seeding a fresh
// snapshot. Stored snapshots keep whatever value they carry.
func WithPointsPerSlot(points int) Option {
	return func(s *Service) {
		if points > 0 {
			s.pointsPerSlot = points
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		pointsPerSlot: model.DefaultPointsPerSlot,
		logger:        nil, // Will be replaced when service starts
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start seeds the in-memory snapshot from the store. A missing or
// unparseable blob falls back to the default snapshot; neither is fatal.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	snap := model.DefaultSnapshot(s.pointsPerSlot)
	if s.store != nil {
		stored, err := s.store.Load(ctx)
		switch {
		case err == nil:
			snap = stored
		case errors.Is(err, repository.ErrNotFound):
			s.logger.Info(ctx, "no stored snapshot; seeding defaults")
		default:
			metrics.RecordPersistenceError()
			s.logger.Warn(ctx, "stored snapshot unreadable; seeding defaults", logger.Error(err))
		}
	}
	s.snap = snap.Normalize()
	s.started = true

	s.logger.Info(ctx, "scheduling service started",
		logger.Int("proctors", len(s.snap.Proctors)),
		logger.Int("volunteers", len(s.snap.Volunteers)),
		logger.Int("exams", len(s.snap.Exams)),
		logger.Int("events", len(s.snap.Events)),
	)
	s.updateGauges()
	return nil
}

// Stop releases the store.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Warn(context.Background(), "closing snapshot store", logger.Error(err))
		}
	}
	s.started = false
	s.logger.Info(context.Background(), "scheduling service stopped")
}

// apply runs one command through the reducer and write-through persists the
// result. Persistence failure is logged and counted but never rolls the
// in-memory snapshot back. Callers must hold the write lock.
func (s *Service) apply(ctx context.Context, cmd transition.Command) {
	s.snap = transition.Apply(s.snap, cmd)
	metrics.RecordCommand(cmd.Name())
	s.persist(ctx, cmd.Name())
	s.updateGauges()
}

func (s *Service) persist(ctx context.Context, command string) {
	if s.store == nil {
		return
	}
	start := time.Now()
	if err := s.store.Save(ctx, s.snap); err != nil {
		metrics.RecordPersistenceError()
		s.logger.Error(ctx, "snapshot save failed; in-memory state kept",
			logger.String("command", command),
			logger.Error(err),
		)
		return
	}
	metrics.RecordPersistenceSave(float64(time.Since(start).Milliseconds()))
}

func (s *Service) updateGauges() {
	assignments := 0
	for _, sl := range s.snap.AllSlots() {
		assignments += len(sl.PersonIDs)
	}
	metrics.UpdateEntityCounts(
		len(s.snap.Proctors),
		len(s.snap.Volunteers),
		len(s.snap.Exams),
		len(s.snap.Events),
		assignments,
	)
}

// Snapshot returns the current state value. Snapshots are treated as
// immutable by every caller, so handing out the value is safe.
func (s *Service) Snapshot(_ context.Context) model.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// AddProctor validates and appends a proctor. Duplicate ids are rejected
// before the reducer sees the command.
func (s *Service) AddProctor(ctx context.Context, p model.Person) error {
	if err := model.ValidatePerson(p); err != nil {
		metrics.RecordValidationFailure()
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.snap.FindProctor(p.ID); exists {
		metrics.RecordValidationFailure()
		return fmt.Errorf("add proctor %q: %w", p.ID, model.ErrDuplicateID)
	}
	s.apply(ctx, transition.AddProctor{Person: p})
	return nil
}

// UpdateProctor replaces a proctor record wholesale. Updating an unknown id
// is a no-op.
func (s *Service) UpdateProctor(ctx context.Context, p model.Person) error {
	if err := model.ValidatePerson(p); err != nil {
		metrics.RecordValidationFailure()
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(ctx, transition.UpdateProctor{Person: p})
	return nil
}

// DeleteProctor removes a proctor and cascades the id out of every slot and
// roster. Deleting an unknown id is a no-op.
func (s *Service) DeleteProctor(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(ctx, transition.DeleteProctor{ID: id})
	return nil
}

// AddVolunteer validates and appends a volunteer.
func (s *Service) AddVolunteer(ctx context.Context, p model.Person) error {
	if err := model.ValidatePerson(p); err != nil {
		metrics.RecordValidationFailure()
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.snap.FindVolunteer(p.ID); exists {
		metrics.RecordValidationFailure()
		return fmt.Errorf("add volunteer %q: %w", p.ID, model.ErrDuplicateID)
	}
	s.apply(ctx, transition.AddVolunteer{Person: p})
	return nil
}

// UpdateVolunteer replaces a volunteer record wholesale.
func (s *Service) UpdateVolunteer(ctx context.Context, p model.Person) error {
	if err := model.ValidatePerson(p); err != nil {
		metrics.RecordValidationFailure()
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(ctx, transition.UpdateVolunteer{Person: p})
	return nil
}

// DeleteVolunteer removes a volunteer and cascades the id out of every slot
// and roster.
func (s *Service) DeleteVolunteer(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(ctx, transition.DeleteVolunteer{ID: id})
	return nil
}

// AddExam validates and appends an exam. Slots are generated separately.
func (s *Service) AddExam(ctx context.Context, e model.Exam) error {
	if err := model.ValidateExam(e); err != nil {
		metrics.RecordValidationFailure()
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.snap.FindExam(e.ID); exists {
		metrics.RecordValidationFailure()
		return fmt.Errorf("add exam %q: %w", e.ID, model.ErrDuplicateID)
	}
	e.Slots = []model.Slot{}
	s.apply(ctx, transition.AddExam{Exam: e})
	return nil
}

// UpdateExam replaces an exam's fields while keeping its generated slots.
func (s *Service) UpdateExam(ctx context.Context, e model.Exam) error {
	if err := model.ValidateExam(e); err != nil {
		metrics.RecordValidationFailure()
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.snap.FindExam(e.ID)
	if !ok {
		return nil
	}
	e.Slots = existing.Slots
	s.apply(ctx, transition.UpdateExam{Exam: e})
	return nil
}

// DeleteExam removes an exam and its slots.
func (s *Service) DeleteExam(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(ctx, transition.DeleteExam{ID: id})
	return nil
}

// AddEvent validates and appends an event, generating its slots from the
// event's date and start time.
func (s *Service) AddEvent(ctx context.Context, e model.Event) error {
	if err := model.ValidateEvent(e); err != nil {
		metrics.RecordValidationFailure()
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.snap.FindEvent(e.ID); exists {
		metrics.RecordValidationFailure()
		return fmt.Errorf("add event %q: %w", e.ID, model.ErrDuplicateID)
	}
	start, err := e.StartInstant(time.Local)
	if err != nil {
		metrics.RecordValidationFailure()
		return err
	}
	slots, err := schedule.Generate(e.ID, start, e.Duration, false)
	if err != nil {
		metrics.RecordValidationFailure()
		return err
	}
	e.VolunteerIDs = []string{}
	e.Slots = slots
	s.apply(ctx, transition.AddEvent{Event: e})
	return nil
}

// UpdateEvent replaces an event's fields and regenerates its slots, which
// discards prior slot assignments. The event-level roster is kept.
func (s *Service) UpdateEvent(ctx context.Context, e model.Event) error {
	if err := model.ValidateEvent(e); err != nil {
		metrics.RecordValidationFailure()
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.snap.FindEvent(e.ID)
	if !ok {
		return nil
	}
	start, err := e.StartInstant(time.Local)
	if err != nil {
		metrics.RecordValidationFailure()
		return err
	}
	slots, err := schedule.Generate(e.ID, start, e.Duration, false)
	if err != nil {
		metrics.RecordValidationFailure()
		return err
	}
	e.VolunteerIDs = existing.VolunteerIDs
	e.Slots = slots
	s.apply(ctx, transition.UpdateEvent{Event: e})
	return nil
}

// DeleteEvent removes an event, its slots, and its roster.
func (s *Service) DeleteEvent(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(ctx, transition.DeleteEvent{ID: id})
	return nil
}

// GenerateExamSlots regenerates an exam's slots from a start instant. The
// first slot is preparation time; prior assignments are discarded.
func (s *Service) GenerateExamSlots(ctx context.Context, examID string, start time.Time) ([]model.Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	exam, ok := s.snap.FindExam(examID)
	if !ok {
		return nil, fmt.Errorf("exam %q: %w", examID, ErrNotFound)
	}
	slots, err := schedule.Generate(examID, start, exam.Duration, true)
	if err != nil {
		metrics.RecordValidationFailure()
		return nil, err
	}
	s.apply(ctx, transition.SetExamSlots{ExamID: examID, Slots: slots})
	return slots, nil
}

// GenerateEventSlots regenerates an event's slots from a start instant.
func (s *Service) GenerateEventSlots(ctx context.Context, eventID string, start time.Time) ([]model.Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, ok := s.snap.FindEvent(eventID)
	if !ok {
		return nil, fmt.Errorf("event %q: %w", eventID, ErrNotFound)
	}
	slots, err := schedule.Generate(eventID, start, event.Duration, false)
	if err != nil {
		metrics.RecordValidationFailure()
		return nil, err
	}
	s.apply(ctx, transition.SetEventSlots{EventID: eventID, Slots: slots})
	return slots, nil
}

// AssignToExamSlot adds a member to an exam slot. Unknown ids no-op; a slot
// already at capacity rejects new members while re-assigning an existing one
// stays idempotent.
func (s *Service) AssignToExamSlot(ctx context.Context, examID, slotID, memberID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if exam, ok := s.snap.FindExam(examID); ok {
		if slot, ok := exam.FindSlot(slotID); ok && !slot.HasCapacity() && !slot.HasMember(memberID) {
			metrics.RecordValidationFailure()
			return fmt.Errorf("assign to slot %q: %w", slotID, model.ErrSlotFull)
		}
	}
	s.apply(ctx, transition.AssignToExamSlot{ExamID: examID, SlotID: slotID, MemberID: memberID})
	return nil
}

// RemoveFromExamSlot removes a member from an exam slot. Absent ids no-op.
func (s *Service) RemoveFromExamSlot(ctx context.Context, examID, slotID, memberID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(ctx, transition.RemoveFromExamSlot{ExamID: examID, SlotID: slotID, MemberID: memberID})
	return nil
}

// AssignToEventSlot adds a member to an event slot.
func (s *Service) AssignToEventSlot(ctx context.Context, eventID, slotID, memberID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(ctx, transition.AssignToEventSlot{EventID: eventID, SlotID: slotID, MemberID: memberID})
	return nil
}

// RemoveFromEventSlot removes a member from an event slot.
func (s *Service) RemoveFromEventSlot(ctx context.Context, eventID, slotID, memberID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(ctx, transition.RemoveFromEventSlot{EventID: eventID, SlotID: slotID, MemberID: memberID})
	return nil
}

// AssignToEventRoster adds a volunteer to the event-level roster.
func (s *Service) AssignToEventRoster(ctx context.Context, eventID, volunteerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(ctx, transition.AssignToEventRoster{EventID: eventID, VolunteerID: volunteerID})
	return nil
}

// RemoveFromEventRoster removes a volunteer from the event-level roster.
func (s *Service) RemoveFromEventRoster(ctx context.Context, eventID, volunteerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(ctx, transition.RemoveFromEventRoster{EventID: eventID, VolunteerID: volunteerID})
	return nil
}

// Leaderboard returns ranked stats over all registered people. A positive
// limit truncates the result.
func (s *Service) Leaderboard(_ context.Context, limit int) []stats.PersonStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	metrics.RecordLeaderboardQuery()
	people := make([]model.Person, 0, len(s.snap.Proctors)+len(s.snap.Volunteers))
	people = append(people, s.snap.Proctors...)
	people = append(people, s.snap.Volunteers...)
	ranked := stats.Compute(people, s.snap.Exams, s.snap.Events, s.snap.PointsPerSlot)
	if limit > 0 && limit < len(ranked) {
		ranked = ranked[:limit]
	}
	return ranked
}

// PersonSlots lists the slots a person holds, ordered by start time.
func (s *Service) PersonSlots(_ context.Context, personID string) []stats.AssignedSlot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return stats.Slots(personID, s.snap.Exams, s.snap.Events)
}

// AvailableProctors returns proctors free for every target instant.
func (s *Service) AvailableProctors(_ context.Context, targets []time.Time) []model.Person {
	s.mu.RLock()
	defer s.mu.RUnlock()
	metrics.RecordAvailabilityScan()
	return availability.AvailableForAll(s.snap.Proctors, s.snap.AllSlots(), targets)
}

// AvailableVolunteers returns volunteers free for every target instant.
func (s *Service) AvailableVolunteers(_ context.Context, targets []time.Time) []model.Person {
	s.mu.RLock()
	defer s.mu.RUnlock()
	metrics.RecordAvailabilityScan()
	return availability.AvailableForAll(s.snap.Volunteers, s.snap.AllSlots(), targets)
}

// Login compares the supplied secret against the configured one and flips
// the admin flag on success.
func (s *Service) Login(ctx context.Context, secret string) bool {
	ok := subtle.ConstantTimeCompare([]byte(secret), []byte(s.adminSecret)) == 1
	metrics.RecordAdminLogin(ok)
	if !ok {
		s.logger.Warn(ctx, "admin login rejected")
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(ctx, transition.SetAdminFlag{LoggedIn: true})
	return true
}

// Logout clears the admin flag.
func (s *Service) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(ctx, transition.SetAdminFlag{LoggedIn: false})
}

// IsAdminLoggedIn reports the admin-session flag.
func (s *Service) IsAdminLoggedIn(_ context.Context) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.IsAdminLoggedIn
}

// LoadSnapshot bulk-replaces the state, e.g. when restoring an export.
func (s *Service) LoadSnapshot(ctx context.Context, snap model.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(ctx, transition.LoadSnapshot{Snapshot: snap})
}

// Stats is a point-in-time counter view over the snapshot.
type Stats struct {
	Started       bool `json:"started"`
	Proctors      int  `json:"proctors"`
	Volunteers    int  `json:"volunteers"`
	Exams         int  `json:"exams"`
	Events        int  `json:"events"`
	Assignments   int  `json:"assignments"`
	PointsPerSlot int  `json:"points_per_slot"`
	AdminLoggedIn bool `json:"admin_logged_in"`
}

// GetStats returns service counters for monitoring.
func (s *Service) GetStats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	assignments := 0
	for _, sl := range s.snap.AllSlots() {
		assignments += len(sl.PersonIDs)
	}
	return Stats{
		Started:       s.started,
		Proctors:      len(s.snap.Proctors),
		Volunteers:    len(s.snap.Volunteers),
		Exams:         len(s.snap.Exams),
		Events:        len(s.snap.Events),
		Assignments:   assignments,
		PointsPerSlot: s.snap.PointsPerSlot,
		AdminLoggedIn: s.snap.IsAdminLoggedIn,
	}
}
