package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/okian/rolecall/internal/domain/model"
	"github.com/okian/rolecall/pkg/metrics"
)

// historyRecord ties a stored assignment to its insertion order so history
// stays most-recent-first even when wall clocks collide.
type historyRecord struct {
	seq       uint64
	meetingID string
	entry     model.HistoryEntry
}

// MemStore implements Store with mutex-protected in-memory maps. Assignment
// replacement happens inside one critical section, which gives readers the
// atomic replace-all contract without a database transaction.
type MemStore struct {
	mu           sync.RWMutex
	participants map[string]model.Participant
	meetings     map[string]model.Meeting
	assignments  map[string][]model.Assignment
	history      map[string][]historyRecord
	seq          uint64
}

// NewMemStore creates an empty in-memory store.
func NewMemStore(_ context.Context) *MemStore {
	return &MemStore{
		participants: make(map[string]model.Participant),
		meetings:     make(map[string]model.Meeting),
		assignments:  make(map[string][]model.Assignment),
		history:      make(map[string][]historyRecord),
	}
}

// CreateParticipant stores a participant, assigning a UUID when the ID is
// empty.
func (s *MemStore) CreateParticipant(_ context.Context, p model.Participant) (model.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.NewString()
	} else if _, exists := s.participants[p.ID]; exists {
		return model.Participant{}, fmt.Errorf("%w: participant %s", ErrDuplicateID, p.ID)
	}

	s.participants[p.ID] = p
	metrics.UpdateStoreParticipants(len(s.participants))
	return p, nil
}

// GetParticipant returns a participant by ID.
func (s *MemStore) GetParticipant(_ context.Context, id string) (model.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.participants[id]
	if !ok {
		return model.Participant{}, fmt.Errorf("%w: %s", ErrParticipantNotFound, id)
	}
	return p, nil
}

// ListParticipants returns all participants ordered by name.
func (s *MemStore) ListParticipants(_ context.Context) ([]model.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Participant, 0, len(s.participants))
	for _, p := range s.participants {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Participants resolves a set of IDs, failing on the first unknown one.
func (s *MemStore) Participants(_ context.Context, ids []string) ([]model.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Participant, 0, len(ids))
	for _, id := range ids {
		p, ok := s.participants[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrParticipantNotFound, id)
		}
		out = append(out, p)
	}
	return out, nil
}

// CreateMeeting stores a meeting after checking its participants exist,
// assigning a UUID when the ID is empty.
func (s *MemStore) CreateMeeting(_ context.Context, m model.Meeting) (model.Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range m.ParticipantIDs {
		if _, ok := s.participants[id]; !ok {
			return model.Meeting{}, fmt.Errorf("%w: %s", ErrParticipantNotFound, id)
		}
	}

	if m.ID == "" {
		m.ID = uuid.NewString()
	} else if _, exists := s.meetings[m.ID]; exists {
		return model.Meeting{}, fmt.Errorf("%w: meeting %s", ErrDuplicateID, m.ID)
	}

	s.meetings[m.ID] = m
	metrics.UpdateStoreMeetings(len(s.meetings))
	return m, nil
}

// GetMeeting returns a meeting by ID.
func (s *MemStore) GetMeeting(_ context.Context, id string) (model.Meeting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.meetings[id]
	if !ok {
		return model.Meeting{}, fmt.Errorf("%w: %s", ErrMeetingNotFound, id)
	}
	return m, nil
}

// Assignments returns a copy of the stored assignments for a meeting.
func (s *MemStore) Assignments(_ context.Context, meetingID string) ([]model.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.meetings[meetingID]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrMeetingNotFound, meetingID)
	}

	stored := s.assignments[meetingID]
	out := make([]model.Assignment, len(stored))
	copy(out, stored)
	return out, nil
}

// ReplaceAssignments swaps the meeting's assignment set inside one critical
// section. The participant history index drops the meeting's previous
// entries and gains the new ones, mirroring a delete-then-insert
// transaction.
func (s *MemStore) ReplaceAssignments(_ context.Context, meetingID string, assignments []model.Assignment) error {
	start := time.Now()
	defer func() {
		metrics.RecordStoreUpdateLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.meetings[meetingID]; !ok {
		return fmt.Errorf("%w: %s", ErrMeetingNotFound, meetingID)
	}

	// Drop the meeting's previous entries from each participant's history.
	for _, old := range s.assignments[meetingID] {
		records := s.history[old.ParticipantID]
		kept := records[:0]
		for _, r := range records {
			if r.meetingID != meetingID {
				kept = append(kept, r)
			}
		}
		s.history[old.ParticipantID] = kept
	}

	stored := make([]model.Assignment, len(assignments))
	now := time.Now()
	for i, a := range assignments {
		a.MeetingID = meetingID
		if a.CreatedAt.IsZero() {
			a.CreatedAt = now
		}
		stored[i] = a

		s.seq++
		s.history[a.ParticipantID] = append(s.history[a.ParticipantID], historyRecord{
			seq:       s.seq,
			meetingID: meetingID,
			entry: model.HistoryEntry{
				ParticipantID: a.ParticipantID,
				Role:          a.Role,
				AssignedAt:    a.CreatedAt,
			},
		})
	}

	s.assignments[meetingID] = stored

	metrics.RecordStoreReplace()
	metrics.UpdateStoreAssignments(s.assignmentCount())
	return nil
}

// RecentAssignments returns a participant's history, newest first.
func (s *MemStore) RecentAssignments(_ context.Context, participantID string, limit int) ([]model.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := s.history[participantID]
	out := make([]model.HistoryEntry, 0, limit)
	for i := len(records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, records[i].entry)
	}
	return out, nil
}

// Counts returns the number of stored participants, meetings and
// assignments.
func (s *MemStore) Counts(_ context.Context) (participants, meetings, assignments int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.participants), len(s.meetings), s.assignmentCount()
}

// assignmentCount sums stored assignments. Called with the mutex held.
func (s *MemStore) assignmentCount() int {
	total := 0
	for _, as := range s.assignments {
		total += len(as)
	}
	return total
}
