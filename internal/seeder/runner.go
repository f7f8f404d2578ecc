package seeder

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/proctord/pkg/logger"
)

// slotPayload mirrors the wire schema of a generated slot.
type slotPayload struct {
	ID            string    `json:"id"`
	ContainerID   string    `json:"container_id"`
	StartTime     time.Time `json:"start_time"`
	IsPreparation bool      `json:"is_preparation"`
}

// Run executes the complete seeding flow.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting demo-data seeding",
		logger.String("baseURL", config.BaseURL),
		logger.Int("proctors", config.Proctors),
		logger.Int("volunteers", config.Volunteers),
		logger.Int("exams", config.Exams),
		logger.Int("events", config.Events),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()))

	client := newHTTPClient(config.Timeout)

	if err := checkServiceHealth(ctx, client, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	if err := login(ctx, client, config); err != nil {
		return fmt.Errorf("admin login failed: %w", err)
	}

	proctors := generatePeople(config.Proctors, "proctor")
	volunteers := generatePeople(config.Volunteers, "volunteer")
	if err := createPeople(ctx, client, config, proctors, volunteers, stats); err != nil {
		return fmt.Errorf("people creation failed: %w", err)
	}

	examSlots, err := createExams(ctx, client, config, stats)
	if err != nil {
		return fmt.Errorf("exam creation failed: %w", err)
	}

	eventSlots, err := createEvents(ctx, client, config, volunteers, stats)
	if err != nil {
		return fmt.Errorf("event creation failed: %w", err)
	}

	assignSlots(ctx, client, config, examSlots, "proctors", stats)
	assignSlots(ctx, client, config, eventSlots, "volunteers", stats)

	leaderboard, err := fetchLeaderboard(ctx, client, config, stats)
	if err != nil {
		return fmt.Errorf("leaderboard retrieval failed: %w", err)
	}

	if err := verifyLeaderboard(ctx, leaderboard, config.Verbose); err != nil {
		return fmt.Errorf("leaderboard verification failed: %w", err)
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(stats)

	logger.Get().Info(ctx, "seeding completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *HTTPClient, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	resp, err := client.Get(ctx, config.BaseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	if _, err := readResponseBody(resp); err != nil {
		return fmt.Errorf("failed to read health response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// login opens the admin session guarding the seeded writes.
func login(ctx context.Context, client *HTTPClient, config *Config) error {
	resp, err := client.Post(ctx, config.BaseURL+"/admin/login", map[string]string{"secret": config.AdminSecret})
	if err != nil {
		return fmt.Errorf("failed to reach login endpoint: %w", err)
	}
	if _, err := readResponseBody(resp); err != nil {
		return fmt.Errorf("failed to read login response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("login rejected with status: %d", resp.StatusCode)
	}
	logger.Get().Info(ctx, "admin session opened")
	return nil
}

// createPeople registers proctors and volunteers concurrently.
func createPeople(ctx context.Context, client *HTTPClient, config *Config, proctors, volunteers []personPayload, stats *Stats) error {
	type job struct {
		url    string
		person personPayload
	}

	jobs := make(chan job, config.Workers*2)
	var created, failed int64
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}
				resp, err := client.Post(ctx, j.url, j.person)
				if err != nil {
					atomic.AddInt64(&failed, 1)
					continue
				}
				_, _ = readResponseBody(resp)
				if resp.StatusCode == http.StatusCreated {
					atomic.AddInt64(&created, 1)
				} else {
					atomic.AddInt64(&failed, 1)
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, p := range proctors {
			select {
			case <-ctx.Done():
				return
			case jobs <- job{url: config.BaseURL + "/proctors", person: p}:
			}
		}
		for _, v := range volunteers {
			select {
			case <-ctx.Done():
				return
			case jobs <- job{url: config.BaseURL + "/volunteers", person: v}:
			}
		}
	}()

	wg.Wait()

	if n := atomic.LoadInt64(&failed); n > 0 {
		return fmt.Errorf("%d of %d person registrations failed", n, len(proctors)+len(volunteers))
	}
	stats.ProctorsCreated = len(proctors)
	stats.VolunteersCreated = len(volunteers)
	logger.Get().Info(ctx, "people registered",
		logger.Int("proctors", len(proctors)),
		logger.Int("volunteers", len(volunteers)))
	return nil
}

// containerSlots pairs a container id with its generated slots.
type containerSlots struct {
	containerID string
	kind        string // "exams" or "events"
	slots       []slotPayload
}

// createExams creates exams and generates their schedules.
func createExams(ctx context.Context, client *HTTPClient, config *Config, stats *Stats) ([]containerSlots, error) {
	exams := generateExams(config.Exams)
	starts := examStartTimes(config.Exams)

	out := make([]containerSlots, 0, len(exams))
	for i, exam := range exams {
		resp, err := client.Post(ctx, config.BaseURL+"/exams", exam)
		if err != nil {
			return nil, fmt.Errorf("failed to create exam %q: %w", exam.ID, err)
		}
		_, _ = readResponseBody(resp)
		if resp.StatusCode != http.StatusCreated {
			return nil, fmt.Errorf("exam %q rejected with status: %d", exam.ID, resp.StatusCode)
		}
		stats.ExamsCreated++

		resp, err = client.Post(ctx, config.BaseURL+"/exams/"+exam.ID+"/slots",
			map[string]string{"start_time": starts[i].Format(time.RFC3339)})
		if err != nil {
			return nil, fmt.Errorf("failed to generate slots for exam %q: %w", exam.ID, err)
		}
		var slots []slotPayload
		if err := decodeResponse(resp, &slots); err != nil {
			return nil, fmt.Errorf("failed to decode slots for exam %q: %w", exam.ID, err)
		}
		stats.SlotsGenerated += len(slots)
		out = append(out, containerSlots{containerID: exam.ID, kind: "exams", slots: slots})
	}

	logger.Get().Info(ctx, "exams created", logger.Int("count", stats.ExamsCreated))
	return out, nil
}

// createEvents creates events, fills part of each roster, and collects the
// slots generated from the event date.
func createEvents(ctx context.Context, client *HTTPClient, config *Config, volunteers []personPayload, stats *Stats) ([]containerSlots, error) {
	required := 3
	if len(volunteers) < required {
		required = len(volunteers)
	}
	events := generateEvents(config.Events, required)

	out := make([]containerSlots, 0, len(events))
	for _, event := range events {
		resp, err := client.Post(ctx, config.BaseURL+"/events", event)
		if err != nil {
			return nil, fmt.Errorf("failed to create event %q: %w", event.ID, err)
		}
		_, _ = readResponseBody(resp)
		if resp.StatusCode != http.StatusCreated {
			return nil, fmt.Errorf("event %q rejected with status: %d", event.ID, resp.StatusCode)
		}
		stats.EventsCreated++

		// Fill part of the event roster.
		for i := 0; i < required; i++ {
			resp, err := client.Post(ctx, config.BaseURL+"/events/"+event.ID+"/roster",
				map[string]string{"volunteer_id": volunteers[i].ID})
			if err == nil {
				_, _ = readResponseBody(resp)
			}
		}

		resp, err = client.Get(ctx, config.BaseURL+"/events/"+event.ID+"/slots")
		if err != nil {
			return nil, fmt.Errorf("failed to fetch slots for event %q: %w", event.ID, err)
		}
		var slots []slotPayload
		if err := decodeResponse(resp, &slots); err != nil {
			return nil, fmt.Errorf("failed to decode slots for event %q: %w", event.ID, err)
		}
		stats.SlotsGenerated += len(slots)
		out = append(out, containerSlots{containerID: event.ID, kind: "events", slots: slots})
	}

	logger.Get().Info(ctx, "events created", logger.Int("count", stats.EventsCreated))
	return out, nil
}

// assignSlots fills every non-preparation slot with one person who is still
// free at the slot's start instant, as reported by the availability endpoint.
func assignSlots(ctx context.Context, client *HTTPClient, config *Config, containers []containerSlots, kind string, stats *Stats) {
	for _, c := range containers {
		for _, slot := range c.slots {
			if slot.IsPreparation {
				continue
			}

			at := slot.StartTime.Format(time.RFC3339)
			resp, err := client.Get(ctx, config.BaseURL+"/availability?kind="+kind+"&at="+at)
			if err != nil {
				stats.AssignmentsFailed++
				continue
			}
			var available []personPayload
			if err := decodeResponse(resp, &available); err != nil || len(available) == 0 {
				stats.AssignmentsFailed++
				continue
			}

			member := available[randomInt(len(available))]
			url := config.BaseURL + "/" + c.kind + "/" + c.containerID + "/slots/" + slot.ID + "/assignees"
			resp, err = client.Post(ctx, url, map[string]string{"member_id": member.ID})
			if err != nil {
				stats.AssignmentsFailed++
				continue
			}
			_, _ = readResponseBody(resp)
			if resp.StatusCode == http.StatusOK {
				stats.AssignmentsMade++
			} else {
				stats.AssignmentsFailed++
			}
		}
	}

	logger.Get().Info(ctx, "slots assigned",
		logger.String("kind", kind),
		logger.Int("assigned", stats.AssignmentsMade),
		logger.Int("failed", stats.AssignmentsFailed))
}

// fetchLeaderboard retrieves the ranked point totals.
func fetchLeaderboard(ctx context.Context, client *HTTPClient, config *Config, stats *Stats) ([]Entry, error) {
	resp, err := client.Get(ctx, fmt.Sprintf("%s/leaderboard?limit=%d", config.BaseURL, config.TopN))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch leaderboard: %w", err)
	}
	var entries []Entry
	if err := decodeResponse(resp, &entries); err != nil {
		return nil, err
	}
	stats.LeaderboardEntries = len(entries)
	return entries, nil
}

// displayFinalStats prints the final seeding statistics.
func displayFinalStats(stats *Stats) {
	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("proctorsCreated", stats.ProctorsCreated),
		logger.Int("volunteersCreated", stats.VolunteersCreated),
		logger.Int("examsCreated", stats.ExamsCreated),
		logger.Int("eventsCreated", stats.EventsCreated),
		logger.Int("slotsGenerated", stats.SlotsGenerated),
		logger.Int("assignmentsMade", stats.AssignmentsMade),
		logger.Int("assignmentsFailed", stats.AssignmentsFailed),
		logger.Int("leaderboardEntries", stats.LeaderboardEntries),
		logger.String("duration", stats.Duration.String()))
}
