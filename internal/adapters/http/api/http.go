// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/okian/proctord/internal/app"
	"github.com/okian/proctord/internal/domain/model"
	"github.com/okian/proctord/internal/domain/stats"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the session service.
type Dependencies interface {
	Snapshot(ctx context.Context) model.Snapshot

	AddProctor(ctx context.Context, p model.Person) error
	UpdateProctor(ctx context.Context, p model.Person) error
	DeleteProctor(ctx context.Context, id string) error
	AddVolunteer(ctx context.Context, p model.Person) error
	UpdateVolunteer(ctx context.Context, p model.Person) error
	DeleteVolunteer(ctx context.Context, id string) error

	AddExam(ctx context.Context, e model.Exam) error
	UpdateExam(ctx context.Context, e model.Exam) error
	DeleteExam(ctx context.Context, id string) error
	AddEvent(ctx context.Context, e model.Event) error
	UpdateEvent(ctx context.Context, e model.Event) error
	DeleteEvent(ctx context.Context, id string) error

	GenerateExamSlots(ctx context.Context, examID string, start time.Time) ([]model.Slot, error)
	GenerateEventSlots(ctx context.Context, eventID string, start time.Time) ([]model.Slot, error)

	AssignToExamSlot(ctx context.Context, examID, slotID, memberID string) error
	RemoveFromExamSlot(ctx context.Context, examID, slotID, memberID string) error
	AssignToEventSlot(ctx context.Context, eventID, slotID, memberID string) error
	RemoveFromEventSlot(ctx context.Context, eventID, slotID, memberID string) error
	AssignToEventRoster(ctx context.Context, eventID, volunteerID string) error
	RemoveFromEventRoster(ctx context.Context, eventID, volunteerID string) error

	Leaderboard(ctx context.Context, limit int) []stats.PersonStats
	PersonSlots(ctx context.Context, personID string) []stats.AssignedSlot
	AvailableProctors(ctx context.Context, targets []time.Time) []model.Person
	AvailableVolunteers(ctx context.Context, targets []time.Time) []model.Person

	Login(ctx context.Context, secret string) bool
	Logout(ctx context.Context)
	IsAdminLoggedIn(ctx context.Context) bool
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler       *HealthHandler
	statsHandler        *StatsHandler
	peopleHandler       *PeopleHandler
	examsHandler        *ExamsHandler
	eventsHandler       *EventsHandler
	availabilityHandler *AvailabilityHandler
	leaderboardHandler  *LeaderboardHandler
	adminHandler        *AdminHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLeaderboardLimit int) *Server {
	return &Server{
		healthHandler:       NewHealthHandler(),
		statsHandler:        NewStatsHandler(statsProvider),
		peopleHandler:       NewPeopleHandler(deps),
		examsHandler:        NewExamsHandler(deps),
		eventsHandler:       NewEventsHandler(deps),
		availabilityHandler: NewAvailabilityHandler(deps),
		leaderboardHandler:  NewLeaderboardHandler(deps, maxLeaderboardLimit),
		adminHandler:        NewAdminHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
	mux.HandleFunc("/availability", MetricsMiddleware(s.availabilityHandler.HandleGetAvailability, "availability"))
	mux.HandleFunc("/proctors", MetricsMiddleware(s.peopleHandler.HandleProctors, "proctors"))
	mux.HandleFunc("/proctors/", MetricsMiddleware(s.peopleHandler.HandleProctorByID, "proctors"))
	mux.HandleFunc("/volunteers", MetricsMiddleware(s.peopleHandler.HandleVolunteers, "volunteers"))
	mux.HandleFunc("/volunteers/", MetricsMiddleware(s.peopleHandler.HandleVolunteerByID, "volunteers"))
	mux.HandleFunc("/exams", MetricsMiddleware(s.examsHandler.HandleExams, "exams"))
	mux.HandleFunc("/exams/", MetricsMiddleware(s.examsHandler.HandleExamSubtree, "exams"))
	mux.HandleFunc("/events", MetricsMiddleware(s.eventsHandler.HandleEvents, "events"))
	mux.HandleFunc("/events/", MetricsMiddleware(s.eventsHandler.HandleEventSubtree, "events"))
	mux.HandleFunc("/admin/login", MetricsMiddleware(s.adminHandler.HandleLogin, "admin_login"))
	mux.HandleFunc("/admin/logout", MetricsMiddleware(s.adminHandler.HandleLogout, "admin_logout"))
	mux.HandleFunc("/admin/session", MetricsMiddleware(s.adminHandler.HandleSession, "admin_session"))
}

type ackResponse struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError maps service errors to HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrDuplicateID):
		writeError(w, http.StatusConflict, "duplicate_id", err)
	case errors.Is(err, model.ErrSlotFull):
		writeError(w, http.StatusConflict, "slot_full", err)
	case errors.Is(err, model.ErrValidation):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, app.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Join(ErrBadRequest, err)
	}
	return nil
}
