// Package app provides the core business service that implements the
// dependencies required by the HTTP API.
package app

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	jobqueue "github.com/okian/rolecall/internal/adapters/mq/queue"
	workerpool "github.com/okian/rolecall/internal/adapters/mq/worker"
	"github.com/okian/rolecall/internal/adapters/repository"
	"github.com/okian/rolecall/internal/domain/catalog"
	"github.com/okian/rolecall/internal/domain/dedupe"
	"github.com/okian/rolecall/internal/domain/engine"
	"github.com/okian/rolecall/internal/domain/model"
	"github.com/okian/rolecall/pkg/logger"
	"github.com/okian/rolecall/pkg/metrics"
)

// Service implements the API dependencies for the role assignment system.
type Service struct {
	mu sync.RWMutex

	// Core components
	store      repository.Store
	pending    dedupe.Tracker
	jobQueue   jobqueue.Queue
	engine     *engine.Engine
	workerPool *workerpool.Pool

	// Per-meeting locks serializing recompute runs.
	meetingLocks sync.Map

	// Configuration
	workerCount         int
	queueSize           int
	pendingSize         int
	historyDepth        int
	multiplierOverrides map[string]map[string]float64

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of recompute workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the recompute job queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithPendingSize sets the bound of the pending-request tracker.
func WithPendingSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.pendingSize = size
		}
	}
}

// WithHistoryDepth caps how many history entries feed the repetition
// penalty per participant.
func WithHistoryDepth(depth int) Option {
	return func(s *Service) {
		if depth > 0 {
			s.historyDepth = depth
		}
	}
}

// WithMultiplierOverrides layers configuration overrides over the default
// meeting-type multiplier table.
func WithMultiplierOverrides(overrides map[string]map[string]float64) Option {
	return func(s *Service) {
		s.multiplierOverrides = overrides
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:  runtime.NumCPU() * 2,
		queueSize:    1000,
		pendingSize:  10000,
		historyDepth: 10,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting role assignment service...")

	s.store = repository.NewMemStore(ctx)
	s.pending = dedupe.NewInMemoryTracker(
		dedupe.WithMaxSize(s.pendingSize),
	)
	s.jobQueue = jobqueue.NewInMemoryQueue(
		jobqueue.WithCapacity(s.queueSize),
		jobqueue.WithBufferSize(s.queueSize),
	)
	s.engine = engine.New(s.store,
		engine.WithMultipliers(catalog.DefaultMultipliers().WithOverrides(s.multiplierOverrides)),
		engine.WithHistoryDepth(s.historyDepth),
		engine.WithLogger(s.logger.Named("engine")),
	)

	s.workerPool = workerpool.NewPool(s.workerCount, s.jobQueue, s)
	s.workerPool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "role assignment service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("historyDepth", s.historyDepth),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping role assignment service...")

	if q, ok := s.jobQueue.(*jobqueue.InMemoryQueue); ok {
		_ = q.Close()
	}

	if s.workerPool != nil {
		s.workerPool.Stop()
	}

	s.started = false
	s.logger.Info(context.Background(), "role assignment service stopped")
}

// CreateParticipant validates and stores a new participant.
func (s *Service) CreateParticipant(ctx context.Context, p model.Participant) (model.Participant, error) {
	if err := p.Validate(); err != nil {
		return model.Participant{}, err
	}
	return s.store.CreateParticipant(ctx, p)
}

// ListParticipants returns all stored participants.
func (s *Service) ListParticipants(ctx context.Context) ([]model.Participant, error) {
	return s.store.ListParticipants(ctx)
}

// CreateMeeting stores a meeting after checking its type and participants.
func (s *Service) CreateMeeting(ctx context.Context, m model.Meeting) (model.Meeting, error) {
	if !m.Type.Valid() {
		return model.Meeting{}, fmt.Errorf("unknown meeting type %q", m.Type)
	}
	return s.store.CreateMeeting(ctx, m)
}

// GetMeeting returns a meeting by ID.
func (s *Service) GetMeeting(ctx context.Context, id string) (model.Meeting, error) {
	return s.store.GetMeeting(ctx, id)
}

// Assignments returns the stored assignments for a meeting.
func (s *Service) Assignments(ctx context.Context, meetingID string) ([]model.Assignment, error) {
	return s.store.Assignments(ctx, meetingID)
}

// History returns a participant's recent assignments, newest first.
func (s *Service) History(ctx context.Context, participantID string, limit int) ([]model.HistoryEntry, error) {
	if _, err := s.store.GetParticipant(ctx, participantID); err != nil {
		return nil, err
	}
	return s.store.RecentAssignments(ctx, participantID, limit)
}

// RoleRequirements exposes the engine's requirement table.
func (s *Service) RoleRequirements() catalog.Requirements {
	return s.engine.Requirements()
}

// MeetingMultipliers exposes the engine's multiplier table.
func (s *Service) MeetingMultipliers() catalog.Multipliers {
	return s.engine.Multipliers()
}

// RequestRecompute queues an asynchronous recompute for a meeting.
// Duplicate requests collapse while one is still pending. Returns whether
// the request was newly queued and whether it was a duplicate.
func (s *Service) RequestRecompute(ctx context.Context, meetingID string) (queued, duplicate bool, err error) {
	if _, err := s.store.GetMeeting(ctx, meetingID); err != nil {
		return false, false, err
	}

	if s.pending.SeenAndRecord(ctx, meetingID) {
		metrics.RecordDuplicateRequest()
		return false, true, nil
	}

	job := jobqueue.Job{
		JobID:      uuid.NewString(),
		MeetingID:  meetingID,
		EnqueuedAt: time.Now(),
	}
	if ok := s.jobQueue.Enqueue(ctx, job); !ok {
		// Roll back the pending mark so the caller can retry.
		s.pending.Unrecord(ctx, meetingID)
		return false, false, nil
	}
	return true, false, nil
}

// Recompute runs the assignment engine for one meeting and atomically
// replaces its stored assignments. Runs for the same meeting are serialized
// through a per-meeting lock; history mutations from concurrent runs of
// other meetings are observed as whole replacements only.
func (s *Service) Recompute(ctx context.Context, meetingID string) error {
	lock := s.lockFor(meetingID)
	lock.Lock()
	defer lock.Unlock()

	// Clear the pending mark first so requests arriving mid-run queue a
	// fresh recompute against the updated history.
	s.pending.Unrecord(ctx, meetingID)

	start := time.Now()

	meeting, err := s.store.GetMeeting(ctx, meetingID)
	if err != nil {
		metrics.RecordRecomputeError()
		return err
	}

	participants, err := s.store.Participants(ctx, meeting.ParticipantIDs)
	if err != nil {
		metrics.RecordRecomputeError()
		return err
	}

	assignments, err := s.engine.Assign(ctx, meeting.ID, participants, meeting.Type, meeting.ScheduledAt)
	if err != nil {
		metrics.RecordRecomputeError()
		return err
	}

	if err := s.store.ReplaceAssignments(ctx, meetingID, assignments); err != nil {
		metrics.RecordRecomputeError()
		return err
	}

	metrics.RecordRecomputeLatency(float64(time.Since(start).Milliseconds()))

	s.logger.Info(ctx, "meeting assignments recomputed",
		logger.String("meetingID", meetingID),
		logger.Int("participants", len(participants)),
		logger.Int("assigned", len(assignments)),
	)
	return nil
}

// lockFor returns the mutex serializing recomputes of one meeting.
func (s *Service) lockFor(meetingID string) *sync.Mutex {
	actual, _ := s.meetingLocks.LoadOrStore(meetingID, &sync.Mutex{})
	return actual.(*sync.Mutex)
}

// PendingSize returns the current number of pending recompute requests.
func (s *Service) PendingSize() int64 {
	if s.pending == nil {
		return 0
	}
	return s.pending.Size()
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":      s.started,
		"workerCount":  s.workerCount,
		"queueSize":    s.queueSize,
		"historyDepth": s.historyDepth,
	}

	if s.started {
		queueLen := s.jobQueue.Len(ctx)
		participants, meetings, assignments := s.store.Counts(ctx)

		stats["queueLength"] = queueLen
		stats["pending"] = s.pending.Size()
		stats["participants"] = participants
		stats["meetings"] = meetings
		stats["assignments"] = assignments

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateStoreParticipants(participants)
		metrics.UpdateStoreMeetings(meetings)
		metrics.UpdateStoreAssignments(assignments)
		metrics.UpdateWorkerCount(s.workerCount)
	}

	return stats
}
