package simulate

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/rolecall/pkg/logger"
)

// processingDelay gives the workers time to drain the recompute queue
// before assignments are fetched back.
const processingDelay = 2 * time.Second

// Run executes the complete assignment simulation.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting rolecall simulation",
		logger.String("baseURL", config.BaseURL),
		logger.Int("participants", config.Participants),
		logger.Int("meetings", config.Meetings),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.Any("seed", config.Seed),
		logger.Any("verbose", config.Verbose))

	client := newHTTPClient(config.Timeout)
	gen := newGenerator(config.Seed)

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, client, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Create participants
	participants, err := createParticipants(ctx, client, config, gen.participants(config.Participants), stats)
	if err != nil {
		return fmt.Errorf("participant creation failed: %w", err)
	}
	logger.Get().Info(ctx, "participants created", logger.Int("count", len(participants)))

	ids := make([]string, len(participants))
	for i, p := range participants {
		ids[i] = p.ID
	}

	// Step 3: Create meetings
	meetings, err := createMeetings(ctx, client, config, gen.meetings(config.Meetings, ids), stats)
	if err != nil {
		return fmt.Errorf("meeting creation failed: %w", err)
	}
	logger.Get().Info(ctx, "meetings created", logger.Int("count", len(meetings)))

	// Step 4: Trigger recomputes concurrently
	if err := triggerRecomputes(ctx, client, config, meetings, stats); err != nil {
		return fmt.Errorf("recompute submission failed: %w", err)
	}

	// Step 5: Wait for processing
	logger.Get().Info(ctx, "waiting for recomputes to be processed")
	time.Sleep(processingDelay)

	// Step 6: Fetch and verify assignments
	if err := verifyAssignments(ctx, client, config, meetings, stats); err != nil {
		return fmt.Errorf("assignment verification failed: %w", err)
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(ctx, stats)

	if stats.Violations > 0 {
		return fmt.Errorf("simulation detected %d invariant violations", stats.Violations)
	}

	logger.Get().Info(ctx, "simulation completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *HTTPClient, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	resp, err := client.Get(ctx, config.BaseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	// Any 200 counts as healthy (the endpoint serves Prometheus metrics).
	if resp.StatusCode != 200 {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// displayFinalStats logs the simulation statistics.
func displayFinalStats(ctx context.Context, stats *Stats) {
	logger.Get().Info(ctx, "simulation statistics",
		logger.Int("participantsCreated", stats.ParticipantsCreated),
		logger.Int("meetingsCreated", stats.MeetingsCreated),
		logger.Int("recomputesQueued", stats.RecomputesQueued),
		logger.Int("recomputesDuplicate", stats.RecomputesDuplicate),
		logger.Int("recomputesFailed", stats.RecomputesFailed),
		logger.Int("meetingsVerified", stats.MeetingsVerified),
		logger.Int("violations", stats.Violations),
		logger.String("duration", stats.Duration.String()))
}
