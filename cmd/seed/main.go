package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/proctord/internal/seeder"
)

// Default configuration constants.
const (
	defaultProctors    = 30
	defaultVolunteers  = 15
	defaultExams       = 5
	defaultEvents      = 2
	defaultTopN        = 50
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTimeout     = 30 * time.Second
	defaultSeedTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:9080", "Base URL of the service")
		secret     = flag.String("secret", "admin123", "Admin secret for the login step")
		proctors   = flag.Int("proctors", defaultProctors, "Number of proctors to create")
		volunteers = flag.Int("volunteers", defaultVolunteers, "Number of volunteers to create")
		exams      = flag.Int("exams", defaultExams, "Number of exams to create")
		events     = flag.Int("events", defaultEvents, "Number of events to create")
		topN       = flag.Int("top", defaultTopN, "Number of leaderboard entries to fetch")
		workers    = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		logFile    = flag.String("log", "", "Log file for seeding output (default: seed_log_TIMESTAMP.log)")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		seeder.ShowHelp()
		return
	}

	// Setup logging
	if err := seeder.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), defaultSeedTimeout)
	defer cancel()

	// Create seeding configuration
	config := &seeder.Config{
		BaseURL:     *baseURL,
		AdminSecret: *secret,
		Proctors:    *proctors,
		Volunteers:  *volunteers,
		Exams:       *exams,
		Events:      *events,
		TopN:        *topN,
		Workers:     *workers,
		Timeout:     *timeout,
		LogFile:     *logFile,
		Verbose:     *verbose,
	}

	// Run the seeding flow
	if err := seeder.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Seeding failed: " + err.Error() + "\n")
		return
	}
}
