// Package availability computes which personnel are free to take a slot.
package availability

import (
	"time"

	"github.com/okian/proctord/internal/domain/model"
)

// conflictWindow is the half-open overlap window around a target instant.
// A commitment starting strictly less than one hour away conflicts; a slot
// starting exactly one hour away (back-to-back) does not. The boundary is
// deliberately strict and must stay that way.
const conflictWindow = time.Hour

// Available returns the people with no commitment whose slot start lies
// within the conflict window of target. Slots from exams and events are
// examined uniformly; the caller gathers them (see Snapshot.AllSlots).
func Available(people []model.Person, slots []model.Slot, target time.Time) []model.Person {
	out := make([]model.Person, 0, len(people))
	for _, p := range people {
		if !hasConflict(p.ID, slots, target) {
			out = append(out, p)
		}
	}
	return out
}

// AvailableForAll returns the people available for every target instant.
// Bulk assignment uses this: one conflicting commitment excludes a person
// from the whole set as soon as it clashes with any single target.
func AvailableForAll(people []model.Person, slots []model.Slot, targets []time.Time) []model.Person {
	out := make([]model.Person, 0, len(people))
	for _, p := range people {
		free := true
		for _, target := range targets {
			if hasConflict(p.ID, slots, target) {
				free = false
				break
			}
		}
		if free {
			out = append(out, p)
		}
	}
	return out
}

// hasConflict reports whether the person holds any assignment whose slot
// start is strictly within one hour of target.
func hasConflict(personID string, slots []model.Slot, target time.Time) bool {
	for _, slot := range slots {
		if !contains(slot.PersonIDs, personID) {
			continue
		}
		diff := slot.StartTime.Sub(target)
		if diff < 0 {
			diff = -diff
		}
		if diff < conflictWindow {
			return true
		}
	}
	return false
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
