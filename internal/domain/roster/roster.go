// Package roster applies assignment mutations to snapshot values.
//
// Every function is pure: it returns a new snapshot and leaves its input
// untouched. Membership follows set semantics, so adding a member twice or
// removing an absent one is a no-op, never an error. References to ids that
// no longer exist are tolerated the same way.
package roster

import "github.com/okian/proctord/internal/domain/model"

// AssignToExamSlot adds memberID to the member list of one exam slot.
func AssignToExamSlot(s model.Snapshot, examID, slotID, memberID string) model.Snapshot {
	s.Exams = mapExams(s.Exams, examID, func(e model.Exam) model.Exam {
		e.Slots = assignSlot(e.Slots, slotID, memberID)
		return e
	})
	return s
}

// RemoveFromExamSlot removes memberID from the member list of one exam slot.
func RemoveFromExamSlot(s model.Snapshot, examID, slotID, memberID string) model.Snapshot {
	s.Exams = mapExams(s.Exams, examID, func(e model.Exam) model.Exam {
		e.Slots = unassignSlot(e.Slots, slotID, memberID)
		return e
	})
	return s
}

// AssignToEventSlot adds memberID to the member list of one event slot.
func AssignToEventSlot(s model.Snapshot, eventID, slotID, memberID string) model.Snapshot {
	s.Events = mapEvents(s.Events, eventID, func(e model.Event) model.Event {
		e.Slots = assignSlot(e.Slots, slotID, memberID)
		return e
	})
	return s
}

// RemoveFromEventSlot removes memberID from the member list of one event slot.
func RemoveFromEventSlot(s model.Snapshot, eventID, slotID, memberID string) model.Snapshot {
	s.Events = mapEvents(s.Events, eventID, func(e model.Event) model.Event {
		e.Slots = unassignSlot(e.Slots, slotID, memberID)
		return e
	})
	return s
}

// AssignToEventRoster adds a volunteer to the event-level roster, which is
// independent of per-slot assignment.
func AssignToEventRoster(s model.Snapshot, eventID, volunteerID string) model.Snapshot {
	s.Events = mapEvents(s.Events, eventID, func(e model.Event) model.Event {
		e.VolunteerIDs = addMember(e.VolunteerIDs, volunteerID)
		return e
	})
	return s
}

// RemoveFromEventRoster removes a volunteer from the event-level roster.
func RemoveFromEventRoster(s model.Snapshot, eventID, volunteerID string) model.Snapshot {
	s.Events = mapEvents(s.Events, eventID, func(e model.Event) model.Event {
		e.VolunteerIDs = removeMember(e.VolunteerIDs, volunteerID)
		return e
	})
	return s
}

// StripMember removes an id from every slot member list in every exam and
// event, and from every event roster. Used as the cascade when a person is
// deleted; afterwards no dangling reference to the id remains.
func StripMember(s model.Snapshot, memberID string) model.Snapshot {
	exams := make([]model.Exam, len(s.Exams))
	for i, e := range s.Exams {
		e.Slots = stripSlots(e.Slots, memberID)
		exams[i] = e
	}
	s.Exams = exams

	events := make([]model.Event, len(s.Events))
	for i, e := range s.Events {
		e.Slots = stripSlots(e.Slots, memberID)
		e.VolunteerIDs = removeMember(e.VolunteerIDs, memberID)
		events[i] = e
	}
	s.Events = events
	return s
}

// SetExamSlots replaces an exam's slots wholesale, discarding whatever
// assignments the previous slots carried.
func SetExamSlots(s model.Snapshot, examID string, slots []model.Slot) model.Snapshot {
	s.Exams = mapExams(s.Exams, examID, func(e model.Exam) model.Exam {
		e.Slots = slots
		return e
	})
	return s
}

// SetEventSlots replaces an event's slots wholesale.
func SetEventSlots(s model.Snapshot, eventID string, slots []model.Slot) model.Snapshot {
	s.Events = mapEvents(s.Events, eventID, func(e model.Event) model.Event {
		e.Slots = slots
		return e
	})
	return s
}

// DeleteExam removes an exam and its slots. Slots are owned by their
// container, so no reverse cascade toward person records is needed.
func DeleteExam(s model.Snapshot, examID string) model.Snapshot {
	exams := make([]model.Exam, 0, len(s.Exams))
	for _, e := range s.Exams {
		if e.ID != examID {
			exams = append(exams, e)
		}
	}
	s.Exams = exams
	return s
}

// DeleteEvent removes an event, its slots, and its roster.
func DeleteEvent(s model.Snapshot, eventID string) model.Snapshot {
	events := make([]model.Event, 0, len(s.Events))
	for _, e := range s.Events {
		if e.ID != eventID {
			events = append(events, e)
		}
	}
	s.Events = events
	return s
}

func mapExams(exams []model.Exam, id string, fn func(model.Exam) model.Exam) []model.Exam {
	out := make([]model.Exam, len(exams))
	for i, e := range exams {
		if e.ID == id {
			e = fn(e)
		}
		out[i] = e
	}
	return out
}

func mapEvents(events []model.Event, id string, fn func(model.Event) model.Event) []model.Event {
	out := make([]model.Event, len(events))
	for i, e := range events {
		if e.ID == id {
			e = fn(e)
		}
		out[i] = e
	}
	return out
}

func assignSlot(slots []model.Slot, slotID, memberID string) []model.Slot {
	out := make([]model.Slot, len(slots))
	for i, sl := range slots {
		if sl.ID == slotID {
			sl.PersonIDs = addMember(sl.PersonIDs, memberID)
		}
		out[i] = sl
	}
	return out
}

func unassignSlot(slots []model.Slot, slotID, memberID string) []model.Slot {
	out := make([]model.Slot, len(slots))
	for i, sl := range slots {
		if sl.ID == slotID {
			sl.PersonIDs = removeMember(sl.PersonIDs, memberID)
		}
		out[i] = sl
	}
	return out
}

func stripSlots(slots []model.Slot, memberID string) []model.Slot {
	out := make([]model.Slot, len(slots))
	for i, sl := range slots {
		sl.PersonIDs = removeMember(sl.PersonIDs, memberID)
		out[i] = sl
	}
	return out
}

func addMember(ids []string, id string) []string {
	for _, v := range ids {
		if v == id {
			return ids
		}
	}
	out := make([]string, 0, len(ids)+1)
	out = append(out, ids...)
	return append(out, id)
}

func removeMember(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
