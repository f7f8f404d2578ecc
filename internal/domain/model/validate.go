package model

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Duration bounds for slot generation, in hours.
const (
	MinDurationHours = 1
	MaxDurationHours = 12
)

var emailRE = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidatePerson checks the caller-supplied fields of a proctor or
// volunteer. Email is optional but must be well-formed when present.
func ValidatePerson(p Person) error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrValidation)
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if p.Email != "" && !emailRE.MatchString(p.Email) {
		return fmt.Errorf("%w: invalid email format", ErrValidation)
	}
	return nil
}

// ValidateExam checks the caller-supplied fields of an exam.
func ValidateExam(e Exam) error {
	if strings.TrimSpace(e.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrValidation)
	}
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if err := ValidateDuration(e.Duration); err != nil {
		return err
	}
	return nil
}

// ValidateEvent checks the caller-supplied fields of an event.
func ValidateEvent(e Event) error {
	if strings.TrimSpace(e.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrValidation)
	}
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if err := ValidateDuration(e.Duration); err != nil {
		return err
	}
	if _, err := time.Parse("2006-01-02", e.Date); err != nil {
		return fmt.Errorf("%w: invalid date; must be YYYY-MM-DD", ErrValidation)
	}
	if _, err := time.Parse("15:04", e.StartTime); err != nil {
		return fmt.Errorf("%w: invalid start time; must be HH:MM", ErrValidation)
	}
	if e.RequiredVolunteers < 1 {
		return fmt.Errorf("%w: at least 1 volunteer is required", ErrValidation)
	}
	return nil
}

// ValidateDuration checks the slot-generation duration bounds.
func ValidateDuration(hours int) error {
	if hours < MinDurationHours || hours > MaxDurationHours {
		return fmt.Errorf("%w: duration must be between %d and %d hours",
			ErrValidation, MinDurationHours, MaxDurationHours)
	}
	return nil
}

// StartInstant combines an event's date and start time into an instant in
// the given location.
func (e Event) StartInstant(loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02 15:04", e.Date+" "+e.StartTime, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid event schedule: %v", ErrValidation, err)
	}
	return t, nil
}
