package simulate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// HTTPClient wraps http.Client with a request timeout.
type HTTPClient struct {
	client *http.Client
}

func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{Timeout: timeout},
	}
}

// Get performs a GET request.
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with a JSON body.
func (c *HTTPClient) Post(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// readResponseBody reads and closes the response body.
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// createParticipants posts the generated participants and returns them with
// their server-assigned IDs.
func createParticipants(ctx context.Context, client *HTTPClient, config *Config, participants []Participant, stats *Stats) ([]Participant, error) {
	url := config.BaseURL + "/participants"
	created := make([]Participant, 0, len(participants))

	for _, p := range participants {
		resp, err := client.Post(ctx, url, p)
		if err != nil {
			return nil, fmt.Errorf("failed to create participant %q: %w", p.Name, err)
		}
		body, err := readResponseBody(resp)
		if err != nil {
			return nil, fmt.Errorf("failed to read response for %q: %w", p.Name, err)
		}
		if resp.StatusCode != http.StatusCreated {
			return nil, fmt.Errorf("participant %q rejected with status %d: %s", p.Name, resp.StatusCode, body)
		}

		var stored Participant
		if err := json.Unmarshal(body, &stored); err != nil {
			return nil, fmt.Errorf("failed to decode participant %q: %w", p.Name, err)
		}
		created = append(created, stored)
	}

	stats.ParticipantsCreated = len(created)
	return created, nil
}

// createMeetings posts the generated meetings and returns them with their
// server-assigned IDs.
func createMeetings(ctx context.Context, client *HTTPClient, config *Config, meetings []Meeting, stats *Stats) ([]Meeting, error) {
	url := config.BaseURL + "/meetings"
	created := make([]Meeting, 0, len(meetings))

	for _, m := range meetings {
		resp, err := client.Post(ctx, url, m)
		if err != nil {
			return nil, fmt.Errorf("failed to create meeting %q: %w", m.Title, err)
		}
		body, err := readResponseBody(resp)
		if err != nil {
			return nil, fmt.Errorf("failed to read response for %q: %w", m.Title, err)
		}
		if resp.StatusCode != http.StatusCreated {
			return nil, fmt.Errorf("meeting %q rejected with status %d: %s", m.Title, resp.StatusCode, body)
		}

		var stored Meeting
		if err := json.Unmarshal(body, &stored); err != nil {
			return nil, fmt.Errorf("failed to decode meeting %q: %w", m.Title, err)
		}
		created = append(created, stored)
	}

	stats.MeetingsCreated = len(created)
	return created, nil
}

// triggerRecomputes queues a recompute for every meeting using a concurrent
// worker pool.
func triggerRecomputes(ctx context.Context, client *HTTPClient, config *Config, meetings []Meeting, stats *Stats) error {
	url := config.BaseURL + "/assignments"

	var queued, duplicate, failed int64

	meetingChan := make(chan Meeting, config.Workers*2)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for m := range meetingChan {
				select {
				case <-ctx.Done():
					return
				default:
				}

				resp, err := client.Post(ctx, url, map[string]string{"meeting_id": m.ID})
				if err != nil {
					atomic.AddInt64(&failed, 1)
					continue
				}
				body, err := readResponseBody(resp)
				if err != nil {
					atomic.AddInt64(&failed, 1)
					continue
				}

				switch resp.StatusCode {
				case http.StatusAccepted:
					atomic.AddInt64(&queued, 1)
				case http.StatusOK:
					var ack AckResponse
					if err := json.Unmarshal(body, &ack); err == nil && ack.Duplicate {
						atomic.AddInt64(&duplicate, 1)
					} else {
						atomic.AddInt64(&queued, 1)
					}
				default:
					atomic.AddInt64(&failed, 1)
				}
			}
		}()
	}

	go func() {
		defer close(meetingChan)
		for _, m := range meetings {
			select {
			case <-ctx.Done():
				return
			case meetingChan <- m:
			}
		}
	}()

	wg.Wait()

	stats.RecomputesQueued = int(atomic.LoadInt64(&queued))
	stats.RecomputesDuplicate = int(atomic.LoadInt64(&duplicate))
	stats.RecomputesFailed = int(atomic.LoadInt64(&failed))
	return nil
}

// fetchAssignments retrieves the stored assignments for one meeting.
func fetchAssignments(ctx context.Context, client *HTTPClient, config *Config, meetingID string) ([]Assignment, error) {
	resp, err := client.Get(ctx, config.BaseURL+"/assignments/"+meetingID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignments for %s: %w", meetingID, err)
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read assignments for %s: %w", meetingID, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("assignments for %s returned status %d", meetingID, resp.StatusCode)
	}

	var assignments []Assignment
	if err := json.Unmarshal(body, &assignments); err != nil {
		return nil, fmt.Errorf("failed to decode assignments for %s: %w", meetingID, err)
	}
	return assignments, nil
}
