package seeder

import "time"

// Config holds configuration for the demo-data seeding run.
type Config struct {
	BaseURL     string        // Base URL of the service
	AdminSecret string        // Secret for the admin login
	Proctors    int           // Number of proctors to create
	Volunteers  int           // Number of volunteers to create
	Exams       int           // Number of exams to create
	Events      int           // Number of events to create
	TopN        int           // Number of leaderboard entries to fetch
	Workers     int           // Number of concurrent workers
	Timeout     time.Duration // HTTP request timeout
	LogFile     string        // Log file for seeding output
	Verbose     bool          // Enable verbose logging
}

// Entry represents one leaderboard row as returned by the service.
type Entry struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Hours  int    `json:"hours"`
	Slots  int    `json:"slots"`
	Points int    `json:"points"`
}

// AckResponse represents the acknowledgement returned by write endpoints.
type AckResponse struct {
	Status string `json:"status"`
}

// Stats holds seeding statistics.
type Stats struct {
	ProctorsCreated    int
	VolunteersCreated  int
	ExamsCreated       int
	EventsCreated      int
	SlotsGenerated     int
	AssignmentsMade    int
	AssignmentsFailed  int
	LeaderboardEntries int
	StartTime          time.Time
	EndTime            time.Time
	Duration           time.Duration
}
