// Package schedule generates hour-long slot sequences for exams and events.
package schedule

import (
	"fmt"
	"time"

	"github.com/okian/proctord/internal/domain/model"
)

// Generate produces the ordered slot sequence for a container.
//
// The sequence holds durationHours slots, plus one leading preparation slot
// when includePreparation is set. Slot 0 begins at start; every slot is
// exactly one hour and slot i+1 starts where slot i ends. For exams the
// first hour is setup time, so the nominal exam hours follow the
// preparation slot. Slot ids derive deterministically from the container id
// and index.
//
// Each slot starts with an empty member list. The generator knows nothing
// about prior assignments; committing the result (and thereby discarding
// whatever assignments the old slots carried) is the caller's job.
func Generate(containerID string, start time.Time, durationHours int, includePreparation bool) ([]model.Slot, error) {
	if err := model.ValidateDuration(durationHours); err != nil {
		return nil, fmt.Errorf("generate slots for %s: %w", containerID, err)
	}

	total := durationHours
	if includePreparation {
		total++
	}

	slots := make([]model.Slot, 0, total)
	for i := 0; i < total; i++ {
		slotStart := start.Add(time.Duration(i) * model.SlotDuration)
		slots = append(slots, model.Slot{
			ID:            SlotID(containerID, i),
			ContainerID:   containerID,
			StartTime:     slotStart,
			EndTime:       slotStart.Add(model.SlotDuration),
			PersonIDs:     []string{},
			IsPreparation: includePreparation && i == 0,
		})
	}
	return slots, nil
}

// SlotID derives the stable id of the i-th slot of a container.
func SlotID(containerID string, index int) string {
	return fmt.Sprintf("%s-slot-%d", containerID, index)
}
