// Package transition holds the single authoritative reducer for the
// scheduling engine: every mutation takes the current snapshot plus a
// command and yields the next snapshot.
package transition

import (
	"github.com/okian/proctord/internal/domain/model"
	"github.com/okian/proctord/internal/domain/roster"
)

// Apply is total: an unknown command returns the input snapshot unchanged,
// never an error. The input is never mutated; every case builds a
// structurally new snapshot for the branches it touches.
func Apply(s model.Snapshot, cmd Command) model.Snapshot {
	switch c := cmd.(type) {
	case AddProctor:
		s.Proctors = appendPerson(s.Proctors, c.Person)
	case UpdateProctor:
		s.Proctors = replacePerson(s.Proctors, c.Person)
	case DeleteProctor:
		s.Proctors = removePerson(s.Proctors, c.ID)
		s = roster.StripMember(s, c.ID)
	case AddVolunteer:
		s.Volunteers = appendPerson(s.Volunteers, c.Person)
	case UpdateVolunteer:
		s.Volunteers = replacePerson(s.Volunteers, c.Person)
	case DeleteVolunteer:
		s.Volunteers = removePerson(s.Volunteers, c.ID)
		s = roster.StripMember(s, c.ID)
	case AddExam:
		exams := make([]model.Exam, 0, len(s.Exams)+1)
		exams = append(exams, s.Exams...)
		s.Exams = append(exams, c.Exam)
	case UpdateExam:
		exams := make([]model.Exam, len(s.Exams))
		for i, e := range s.Exams {
			if e.ID == c.Exam.ID {
				e = c.Exam
			}
			exams[i] = e
		}
		s.Exams = exams
	case DeleteExam:
		s = roster.DeleteExam(s, c.ID)
	case AddEvent:
		events := make([]model.Event, 0, len(s.Events)+1)
		events = append(events, s.Events...)
		s.Events = append(events, c.Event)
	case UpdateEvent:
		events := make([]model.Event, len(s.Events))
		for i, e := range s.Events {
			if e.ID == c.Event.ID {
				e = c.Event
			}
			events[i] = e
		}
		s.Events = events
	case DeleteEvent:
		s = roster.DeleteEvent(s, c.ID)
	case SetExamSlots:
		s = roster.SetExamSlots(s, c.ExamID, c.Slots)
	case SetEventSlots:
		s = roster.SetEventSlots(s, c.EventID, c.Slots)
	case AssignToExamSlot:
		s = roster.AssignToExamSlot(s, c.ExamID, c.SlotID, c.MemberID)
	case RemoveFromExamSlot:
		s = roster.RemoveFromExamSlot(s, c.ExamID, c.SlotID, c.MemberID)
	case AssignToEventSlot:
		s = roster.AssignToEventSlot(s, c.EventID, c.SlotID, c.MemberID)
	case RemoveFromEventSlot:
		s = roster.RemoveFromEventSlot(s, c.EventID, c.SlotID, c.MemberID)
	case AssignToEventRoster:
		s = roster.AssignToEventRoster(s, c.EventID, c.VolunteerID)
	case RemoveFromEventRoster:
		s = roster.RemoveFromEventRoster(s, c.EventID, c.VolunteerID)
	case SetAdminFlag:
		s.IsAdminLoggedIn = c.LoggedIn
	case LoadSnapshot:
		s = c.Snapshot.Normalize()
	}
	return s
}

func appendPerson(people []model.Person, p model.Person) []model.Person {
	out := make([]model.Person, 0, len(people)+1)
	out = append(out, people...)
	return append(out, p)
}

func replacePerson(people []model.Person, p model.Person) []model.Person {
	out := make([]model.Person, len(people))
	for i, v := range people {
		if v.ID == p.ID {
			v = p
		}
		out[i] = v
	}
	return out
}

func removePerson(people []model.Person, id string) []model.Person {
	out := make([]model.Person, 0, len(people))
	for _, v := range people {
		if v.ID != id {
			out = append(out, v)
		}
	}
	return out
}
