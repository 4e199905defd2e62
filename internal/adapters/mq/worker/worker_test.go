package worker_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	queue "github.com/okian/rolecall/internal/adapters/mq/queue"
	worker "github.com/okian/rolecall/internal/adapters/mq/worker"
	logging "github.com/okian/rolecall/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

// Mock implementations for testing.
type mockQueue struct {
	jobChan chan queue.Job
}

func newMockQueue() *mockQueue {
	return &mockQueue{
		jobChan: make(chan queue.Job, 10),
	}
}

func (mq *mockQueue) Dequeue(_ context.Context) <-chan queue.Job {
	return mq.jobChan
}

func (mq *mockQueue) Close() error {
	close(mq.jobChan)
	return nil
}

func (mq *mockQueue) addJob(job queue.Job) {
	mq.jobChan <- job
}

type mockRecomputer struct {
	mu         sync.Mutex
	recomputed []string
	errors     map[string]error
	done       chan string
}

func newMockRecomputer() *mockRecomputer {
	return &mockRecomputer{
		errors: make(map[string]error),
		done:   make(chan string, 10),
	}
}

func (mr *mockRecomputer) Recompute(_ context.Context, meetingID string) error {
	mr.mu.Lock()
	mr.recomputed = append(mr.recomputed, meetingID)
	err := mr.errors[meetingID]
	mr.mu.Unlock()

	mr.done <- meetingID
	return err
}

func (mr *mockRecomputer) setError(meetingID string, err error) {
	mr.mu.Lock()
	defer mr.mu.Unlock()
	mr.errors[meetingID] = err
}

func (mr *mockRecomputer) seen() []string {
	mr.mu.Lock()
	defer mr.mu.Unlock()
	out := make([]string, len(mr.recomputed))
	copy(out, mr.recomputed)
	return out
}

func waitFor(c <-chan string) (string, bool) {
	select {
	case id := <-c:
		return id, true
	case <-time.After(2 * time.Second):
		return "", false
	}
}

func TestInMemoryWorker(t *testing.T) {
	Convey("Given a worker over a mock queue", t, func() {
		_ = logging.Init()
		mq := newMockQueue()
		mr := newMockRecomputer()
		w := worker.NewInMemoryWorker(mq, mr, worker.WithName("test-worker"))

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go w.Run(ctx)

		Convey("When a job arrives", func() {
			mq.addJob(queue.Job{JobID: "j-1", MeetingID: "m-1"})

			Convey("Then the recomputer runs for its meeting", func() {
				id, ok := waitFor(mr.done)
				So(ok, ShouldBeTrue)
				So(id, ShouldEqual, "m-1")
			})
		})

		Convey("When the recomputer fails for one meeting", func() {
			mr.setError("m-bad", errors.New("meeting gone"))
			mq.addJob(queue.Job{JobID: "j-1", MeetingID: "m-bad"})
			mq.addJob(queue.Job{JobID: "j-2", MeetingID: "m-good"})

			Convey("Then the worker keeps processing later jobs", func() {
				_, ok := waitFor(mr.done)
				So(ok, ShouldBeTrue)
				id, ok := waitFor(mr.done)
				So(ok, ShouldBeTrue)
				So(id, ShouldEqual, "m-good")
			})
		})

		Convey("When the worker is shut down", func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer shutdownCancel()

			Convey("Then Shutdown returns before the deadline", func() {
				So(w.Shutdown(shutdownCtx), ShouldBeNil)
			})
		})
	})

	Convey("Given a worker whose queue closes", t, func() {
		_ = logging.Init()
		mq := newMockQueue()
		mr := newMockRecomputer()
		w := worker.NewInMemoryWorker(mq, mr)

		ctx := context.Background()
		done := make(chan struct{})
		go func() {
			w.Run(ctx)
			close(done)
		}()

		Convey("When the queue channel is closed", func() {
			So(mq.Close(), ShouldBeNil)

			Convey("Then the worker loop exits", func() {
				select {
				case <-done:
				case <-time.After(2 * time.Second):
					So("worker did not exit", ShouldBeEmpty)
				}
			})
		})
	})
}

func TestPool(t *testing.T) {
	Convey("Given a pool over a real queue", t, func() {
		_ = logging.Init()
		q := queue.NewInMemoryQueue(queue.WithCapacity(100), queue.WithBufferSize(100))
		mr := newMockRecomputer()
		pool := worker.NewPool(4, q, mr)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		pool.Start(ctx)

		Convey("When jobs are enqueued", func() {
			for _, id := range []string{"m-1", "m-2", "m-3"} {
				So(q.Enqueue(ctx, queue.Job{MeetingID: id}), ShouldBeTrue)
			}

			Convey("Then every meeting gets recomputed", func() {
				for i := 0; i < 3; i++ {
					_, ok := waitFor(mr.done)
					So(ok, ShouldBeTrue)
				}
				So(mr.seen(), ShouldHaveLength, 3)
			})
		})

		Convey("When the pool shuts down", func() {
			So(q.Close(), ShouldBeNil)

			Convey("Then Shutdown drains and returns", func() {
				So(pool.Shutdown(ctx), ShouldBeNil)
			})
		})
	})

	Convey("Given a pool created with a non-positive worker count", t, func() {
		_ = logging.Init()
		q := queue.NewInMemoryQueue()
		defer q.Close()
		pool := worker.NewPool(0, q, newMockRecomputer())

		Convey("Then it falls back to a CPU-derived default and still runs", func() {
			ctx, cancel := context.WithCancel(context.Background())
			pool.Start(ctx)
			cancel()
			pool.Stop()
		})
	})
}
