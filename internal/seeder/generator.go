package seeder

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Duration distribution constants (hours).
const (
	shortExamHours  = 2
	commonExamHours = 4
	longExamHours   = 8
	eventHours      = 3

	durationTypeDivisor = 4
)

// Duration type cases.
const (
	caseShortExam  = 0
	caseCommonExam = 1
	caseLongExam   = 3
)

var firstNames = []string{
	"Amira", "Basel", "Chandra", "Dana", "Elias", "Farah", "Gabriel",
	"Huda", "Idris", "Jana", "Karim", "Lina", "Mona", "Nadim", "Omar",
	"Priya", "Qasim", "Rania", "Samir", "Tala",
}

var lastNames = []string{
	"Abbas", "Bishara", "Chen", "Darwish", "El-Sayed", "Farouk",
	"Gupta", "Haddad", "Ibrahim", "Jaber", "Khoury", "Lahham",
	"Mansour", "Nasser", "Othman", "Patel", "Qureshi", "Rahman",
	"Saleh", "Tahir",
}

// randomInt returns a random int in [0, max) using crypto/rand.
func randomInt(max int) int {
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(max)))
	return int(n.Int64())
}

// personPayload mirrors the wire schema for proctor/volunteer creation.
type personPayload struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Skills string `json:"skills,omitempty"`
}

// examPayload mirrors the wire schema for exam creation.
type examPayload struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Duration int    `json:"duration"`
}

// eventPayload mirrors the wire schema for event creation.
type eventPayload struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Duration           int    `json:"duration"`
	Date               string `json:"date"`
	StartTime          string `json:"start_time"`
	Description        string `json:"description,omitempty"`
	RequiredVolunteers int    `json:"required_volunteers"`
}

// generatePeople creates count people with unique ids and plausible names.
func generatePeople(count int, role string) []personPayload {
	people := make([]personPayload, count)
	for i := range people {
		first := firstNames[randomInt(len(firstNames))]
		last := lastNames[randomInt(len(lastNames))]
		id := role + "-" + uuid.New().String()
		people[i] = personPayload{
			ID:    id,
			Name:  first + " " + last,
			Email: strings.ToLower(first) + "." + strings.ToLower(last) + "@example.edu",
		}
	}
	return people
}

// generateExams creates count exams with a varied duration distribution:
// mostly half-day exams, occasionally a short or a full-day one.
func generateExams(count int) []examPayload {
	exams := make([]examPayload, count)
	for i := range exams {
		duration := commonExamHours
		switch randomInt(durationTypeDivisor) {
		case caseShortExam:
			duration = shortExamHours
		case caseLongExam:
			duration = longExamHours
		}
		exams[i] = examPayload{
			ID:       "exam-" + uuid.New().String(),
			Name:     fmt.Sprintf("Final Exam %02d", i+1),
			Duration: duration,
		}
	}
	return exams
}

// generateEvents creates count events on consecutive days starting tomorrow.
func generateEvents(count, requiredVolunteers int) []eventPayload {
	events := make([]eventPayload, count)
	day := time.Now().AddDate(0, 0, 1)
	for i := range events {
		events[i] = eventPayload{
			ID:                 "event-" + uuid.New().String(),
			Name:               fmt.Sprintf("Campus Event %02d", i+1),
			Duration:           eventHours,
			Date:               day.AddDate(0, 0, i).Format("2006-01-02"),
			StartTime:          "09:00",
			Description:        "Seeded demo event",
			RequiredVolunteers: requiredVolunteers,
		}
	}
	return events
}

// examStartTimes spreads exam schedules across consecutive mornings so the
// generated slots do not all collide on the availability window.
func examStartTimes(count int) []time.Time {
	base := time.Now().AddDate(0, 0, 1)
	start := time.Date(base.Year(), base.Month(), base.Day(), 8, 0, 0, 0, time.Local)
	times := make([]time.Time, count)
	for i := range times {
		times[i] = start.AddDate(0, 0, i)
	}
	return times
}
