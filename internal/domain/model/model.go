// Package model contains domain entities passed between layers.
package model

import "time"

// SlotDuration is the fixed length of every assignable slot.
const SlotDuration = time.Hour

// SlotCapacity caps how many members a single slot can hold.
const SlotCapacity = 5

// Person is a proctor or volunteer identified by a caller-supplied id.
type Person struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
	Skills string `json:"skills,omitempty"`
}

// Slot is one hour-long assignable unit inside a container's schedule.
type Slot struct {
	ID            string    `json:"id"`
	ContainerID   string    `json:"container_id"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	PersonIDs     []string  `json:"person_ids"`
	IsPreparation bool      `json:"is_preparation"`
}

// HasMember reports whether memberID is already in the slot's member list.
func (s Slot) HasMember(memberID string) bool {
	for _, id := range s.PersonIDs {
		if id == memberID {
			return true
		}
	}
	return false
}

// HasCapacity reports whether the slot can take another member.
func (s Slot) HasCapacity() bool {
	return len(s.PersonIDs) < SlotCapacity
}

// Exam is a slot container whose first generated slot is preparation time.
type Exam struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Duration int    `json:"duration"` // hours
	Slots    []Slot `json:"slots"`
}

// Event is a slot container with an event-level volunteer roster that is
// independent of per-slot assignment.
type Event struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Duration           int      `json:"duration"` // hours
	Date               string   `json:"date"`     // YYYY-MM-DD
	StartTime          string   `json:"start_time"` // HH:MM
	Description        string   `json:"description,omitempty"`
	RequiredVolunteers int      `json:"required_volunteers"`
	VolunteerIDs       []string `json:"volunteer_ids"`
	Slots              []Slot   `json:"slots"`
}

// Snapshot is the aggregate root: the full serializable state of the engine
// at one point in time. It is the unit of persistence and the only value the
// transition reducer reads and writes.
type Snapshot struct {
	Proctors        []Person `json:"proctors"`
	Volunteers      []Person `json:"volunteers"`
	Exams           []Exam   `json:"exams"`
	Events          []Event  `json:"events"`
	IsAdminLoggedIn bool     `json:"is_admin_logged_in"`
	PointsPerSlot   int      `json:"points_per_slot"`
}

// AllSlots collects every slot across exams and events. Exam and event slots
// are examined uniformly by availability checks.
func (s Snapshot) AllSlots() []Slot {
	var out []Slot
	for _, e := range s.Exams {
		out = append(out, e.Slots...)
	}
	for _, e := range s.Events {
		out = append(out, e.Slots...)
	}
	return out
}

// FindExam returns the exam with the given id.
func (s Snapshot) FindExam(id string) (Exam, bool) {
	for _, e := range s.Exams {
		if e.ID == id {
			return e, true
		}
	}
	return Exam{}, false
}

// FindSlot returns the exam slot with the given id.
func (e Exam) FindSlot(id string) (Slot, bool) {
	return findSlot(e.Slots, id)
}

// FindSlot returns the event slot with the given id.
func (e Event) FindSlot(id string) (Slot, bool) {
	return findSlot(e.Slots, id)
}

func findSlot(slots []Slot, id string) (Slot, bool) {
	for _, sl := range slots {
		if sl.ID == id {
			return sl, true
		}
	}
	return Slot{}, false
}

// FindEvent returns the event with the given id.
func (s Snapshot) FindEvent(id string) (Event, bool) {
	for _, e := range s.Events {
		if e.ID == id {
			return e, true
		}
	}
	return Event{}, false
}

// FindProctor returns the proctor with the given id.
func (s Snapshot) FindProctor(id string) (Person, bool) {
	return findPerson(s.Proctors, id)
}

// FindVolunteer returns the volunteer with the given id.
func (s Snapshot) FindVolunteer(id string) (Person, bool) {
	return findPerson(s.Volunteers, id)
}

func findPerson(people []Person, id string) (Person, bool) {
	for _, p := range people {
		if p.ID == id {
			return p, true
		}
	}
	return Person{}, false
}

// Normalize returns a copy of the snapshot with every nil collection replaced
// by an empty one. Legacy blobs may omit collection fields entirely; after
// normalization the mutators never have to guard against missing arrays.
// The input snapshot is left untouched.
func (s Snapshot) Normalize() Snapshot {
	out := s
	out.Proctors = append([]Person{}, s.Proctors...)
	out.Volunteers = append([]Person{}, s.Volunteers...)
	out.Exams = make([]Exam, len(s.Exams))
	for i, e := range s.Exams {
		e.Slots = normalizeSlots(e.Slots)
		out.Exams[i] = e
	}
	out.Events = make([]Event, len(s.Events))
	for i, e := range s.Events {
		e.Slots = normalizeSlots(e.Slots)
		if e.VolunteerIDs == nil {
			e.VolunteerIDs = []string{}
		} else {
			e.VolunteerIDs = append([]string{}, e.VolunteerIDs...)
		}
		out.Events[i] = e
	}
	return out
}

func normalizeSlots(slots []Slot) []Slot {
	out := make([]Slot, len(slots))
	for i, sl := range slots {
		if sl.PersonIDs == nil {
			sl.PersonIDs = []string{}
		} else {
			sl.PersonIDs = append([]string{}, sl.PersonIDs...)
		}
		out[i] = sl
	}
	return out
}
