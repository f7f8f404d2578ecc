// Package stats derives per-person workload figures and the leaderboard.
package stats

import (
	"sort"

	"github.com/okian/proctord/internal/domain/model"
)

// PersonStats is a person enriched with derived workload figures. Hours and
// Slots are numerically identical because every slot is exactly one hour;
// both are reported for presentation.
type PersonStats struct {
	model.Person
	Hours  int `json:"hours"`
	Slots  int `json:"slots"`
	Points int `json:"points"`
}

// AssignedSlot is one slot a person holds, annotated with the name of its
// container for display.
type AssignedSlot struct {
	model.Slot
	ContainerName string `json:"container_name"`
}

// Compute derives stats for every person and ranks them by points,
// descending. Ties keep input order; no secondary sort key is applied.
// Pure function, callable at arbitrary frequency.
func Compute(people []model.Person, exams []model.Exam, events []model.Event, pointsPerSlot int) []PersonStats {
	out := make([]PersonStats, len(people))
	for i, p := range people {
		n := countSlots(p.ID, exams, events)
		out[i] = PersonStats{
			Person: p,
			Hours:  n,
			Slots:  n,
			Points: n * pointsPerSlot,
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Points > out[j].Points
	})
	return out
}

// Slots lists every slot assigned to a person across all containers,
// ordered by start time.
func Slots(personID string, exams []model.Exam, events []model.Event) []AssignedSlot {
	var out []AssignedSlot
	for _, e := range exams {
		out = appendAssigned(out, personID, e.Slots, e.Name)
	}
	for _, e := range events {
		out = appendAssigned(out, personID, e.Slots, e.Name)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out
}

func appendAssigned(dst []AssignedSlot, personID string, slots []model.Slot, containerName string) []AssignedSlot {
	for _, sl := range slots {
		if holds(sl, personID) {
			dst = append(dst, AssignedSlot{Slot: sl, ContainerName: containerName})
		}
	}
	return dst
}

func countSlots(personID string, exams []model.Exam, events []model.Event) int {
	n := 0
	for _, e := range exams {
		for _, sl := range e.Slots {
			if holds(sl, personID) {
				n++
			}
		}
	}
	for _, e := range events {
		for _, sl := range e.Slots {
			if holds(sl, personID) {
				n++
			}
		}
	}
	return n
}

func holds(sl model.Slot, personID string) bool {
	for _, id := range sl.PersonIDs {
		if id == personID {
			return true
		}
	}
	return false
}
