package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/rolecall/internal/simulate"
)

// Default configuration constants.
const (
	defaultParticipants      = 50
	defaultMeetings          = 200
	defaultWorkers           = 2 // multiplier for runtime.NumCPU()
	defaultSeed              = 1
	defaultTimeout           = 30 * time.Second
	defaultSimulationTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL      = flag.String("url", "http://localhost:9080", "Base URL of the service")
		participants = flag.Int("participants", defaultParticipants, "Number of participants to create")
		meetings     = flag.Int("meetings", defaultMeetings, "Number of meetings to schedule")
		workers      = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout      = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		seed         = flag.Int64("seed", defaultSeed, "Random seed for reproducible scenarios")
		logFile      = flag.String("log", "", "Log file for simulation output (default: simulation_log_TIMESTAMP.log)")
		verbose      = flag.Bool("verbose", false, "Enable verbose logging")
		help         = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		simulate.ShowHelp()
		return
	}

	// Setup logging
	if err := simulate.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), defaultSimulationTimeout)
	defer cancel()

	// Create simulation configuration
	config := &simulate.Config{
		BaseURL:      *baseURL,
		Participants: *participants,
		Meetings:     *meetings,
		Workers:      *workers,
		Timeout:      *timeout,
		LogFile:      *logFile,
		Verbose:      *verbose,
		Seed:         *seed,
	}

	// Run the simulation
	if err := simulate.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Simulation failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
