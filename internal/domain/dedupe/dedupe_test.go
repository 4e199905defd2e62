package dedupe_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	dedupe "github.com/okian/rolecall/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryTracker(t *testing.T) {
	ctx := context.Background()

	Convey("Given a fresh tracker", t, func() {
		tracker := dedupe.NewInMemoryTracker()

		Convey("When a meeting is recorded for the first time", func() {
			seen := tracker.SeenAndRecord(ctx, "m-1")

			Convey("Then it was not previously pending", func() {
				So(seen, ShouldBeFalse)
				So(tracker.Size(), ShouldEqual, 1)
			})

			Convey("And a second request for it collapses", func() {
				So(tracker.SeenAndRecord(ctx, "m-1"), ShouldBeTrue)
				So(tracker.Size(), ShouldEqual, 1)
			})

			Convey("And a different meeting records independently", func() {
				So(tracker.SeenAndRecord(ctx, "m-2"), ShouldBeFalse)
				So(tracker.Size(), ShouldEqual, 2)
			})
		})

		Convey("When a pending meeting is unrecorded", func() {
			tracker.SeenAndRecord(ctx, "m-1")
			tracker.Unrecord(ctx, "m-1")

			Convey("Then the next request records it fresh", func() {
				So(tracker.Size(), ShouldEqual, 0)
				So(tracker.SeenAndRecord(ctx, "m-1"), ShouldBeFalse)
			})
		})

		Convey("When unrecording an ID that was never recorded", func() {
			Convey("Then nothing happens", func() {
				tracker.Unrecord(ctx, "nope")
				So(tracker.Size(), ShouldEqual, 0)
			})
		})
	})

	Convey("Given a tracker with a small bound", t, func() {
		tracker := dedupe.NewInMemoryTracker(dedupe.WithMaxSize(3))

		Convey("When more IDs than the bound are recorded", func() {
			for i := 0; i < 4; i++ {
				So(tracker.SeenAndRecord(ctx, fmt.Sprintf("m-%d", i)), ShouldBeFalse)
			}

			Convey("Then the size never exceeds the bound", func() {
				So(tracker.Size(), ShouldEqual, 3)
			})

			Convey("And the insertion-oldest entry was evicted", func() {
				// m-0 was evicted, so it records as new again.
				So(tracker.SeenAndRecord(ctx, "m-0"), ShouldBeFalse)
				// m-3 is still pending.
				So(tracker.SeenAndRecord(ctx, "m-3"), ShouldBeTrue)
			})
		})
	})

	Convey("Given concurrent requests for the same meeting", t, func() {
		tracker := dedupe.NewInMemoryTracker()

		Convey("When many goroutines race on SeenAndRecord", func() {
			const goroutines = 50
			var wg sync.WaitGroup
			var mu sync.Mutex
			newlyRecorded := 0

			for i := 0; i < goroutines; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					if !tracker.SeenAndRecord(ctx, "m-1") {
						mu.Lock()
						newlyRecorded++
						mu.Unlock()
					}
				}()
			}
			wg.Wait()

			Convey("Then exactly one wins", func() {
				So(newlyRecorded, ShouldEqual, 1)
				So(tracker.Size(), ShouldEqual, 1)
			})
		})
	})
}
