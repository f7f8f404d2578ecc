package transition

import "github.com/okian/proctord/internal/domain/model"

// Command is one named mutation applied to a snapshot. Every mutation in
// the system flows through Apply with one of these.
type Command interface {
	// Name labels the command for logging and metrics.
	Name() string
}

// AddProctor appends a proctor. Duplicate-id rejection happens before the
// command is built; the reducer trusts its input.
type AddProctor struct{ Person model.Person }

// UpdateProctor replaces a proctor record wholesale, keyed on id.
type UpdateProctor struct{ Person model.Person }

// DeleteProctor removes a proctor and cascades the id out of every slot and
// roster.
type DeleteProctor struct{ ID string }

// AddVolunteer appends a volunteer.
type AddVolunteer struct{ Person model.Person }

// UpdateVolunteer replaces a volunteer record wholesale, keyed on id.
type UpdateVolunteer struct{ Person model.Person }

// DeleteVolunteer removes a volunteer and cascades the id out of every slot
// and roster.
type DeleteVolunteer struct{ ID string }

// AddExam appends an exam.
type AddExam struct{ Exam model.Exam }

// UpdateExam replaces an exam record wholesale, keyed on id.
type UpdateExam struct{ Exam model.Exam }

// DeleteExam removes an exam and its slots.
type DeleteExam struct{ ID string }

// AddEvent appends an event.
type AddEvent struct{ Event model.Event }

// UpdateEvent replaces an event record wholesale, keyed on id.
type UpdateEvent struct{ Event model.Event }

// DeleteEvent removes an event, its slots, and its roster.
type DeleteEvent struct{ ID string }

// SetExamSlots commits freshly generated slots for an exam, discarding the
// old slots and their assignments.
type SetExamSlots struct {
	ExamID string
	Slots  []model.Slot
}

// SetEventSlots commits freshly generated slots for an event.
type SetEventSlots struct {
	EventID string
	Slots   []model.Slot
}

// AssignToExamSlot adds a member to an exam slot (set semantics).
type AssignToExamSlot struct{ ExamID, SlotID, MemberID string }

// RemoveFromExamSlot removes a member from an exam slot.
type RemoveFromExamSlot struct{ ExamID, SlotID, MemberID string }

// AssignToEventSlot adds a member to an event slot.
type AssignToEventSlot struct{ EventID, SlotID, MemberID string }

// RemoveFromEventSlot removes a member from an event slot.
type RemoveFromEventSlot struct{ EventID, SlotID, MemberID string }

// AssignToEventRoster adds a volunteer to an event-level roster.
type AssignToEventRoster struct{ EventID, VolunteerID string }

// RemoveFromEventRoster removes a volunteer from an event-level roster.
type RemoveFromEventRoster struct{ EventID, VolunteerID string }

// SetAdminFlag flips the admin-session boolean, the engine's only two-state
// machine.
type SetAdminFlag struct{ LoggedIn bool }

// LoadSnapshot replaces the whole state, used for persistence restore.
type LoadSnapshot struct{ Snapshot model.Snapshot }

func (AddProctor) Name() string            { return "add_proctor" }
func (UpdateProctor) Name() string         { return "update_proctor" }
func (DeleteProctor) Name() string         { return "delete_proctor" }
func (AddVolunteer) Name() string          { return "add_volunteer" }
func (UpdateVolunteer) Name() string       { return "update_volunteer" }
func (DeleteVolunteer) Name() string       { return "delete_volunteer" }
func (AddExam) Name() string               { return "add_exam" }
func (UpdateExam) Name() string            { return "update_exam" }
func (DeleteExam) Name() string            { return "delete_exam" }
func (AddEvent) Name() string              { return "add_event" }
func (UpdateEvent) Name() string           { return "update_event" }
func (DeleteEvent) Name() string           { return "delete_event" }
func (SetExamSlots) Name() string          { return "set_exam_slots" }
func (SetEventSlots) Name() string         { return "set_event_slots" }
func (AssignToExamSlot) Name() string      { return "assign_to_exam_slot" }
func (RemoveFromExamSlot) Name() string    { return "remove_from_exam_slot" }
func (AssignToEventSlot) Name() string     { return "assign_to_event_slot" }
func (RemoveFromEventSlot) Name() string   { return "remove_from_event_slot" }
func (AssignToEventRoster) Name() string   { return "assign_to_event_roster" }
func (RemoveFromEventRoster) Name() string { return "remove_from_event_roster" }
func (SetAdminFlag) Name() string          { return "set_admin_flag" }
func (LoadSnapshot) Name() string          { return "load_snapshot" }
