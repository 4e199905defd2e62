package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating options", func() {
			namespaceOpt := WithNamespace("test-namespace")
			subsystemOpt := WithSubsystem("test-subsystem")
			histogramBucketsOpt := WithHistogramBuckets([]float64{0.1, 0.5, 1.0})
			registryOpt := WithPrometheusRegistry(prometheus.NewRegistry())

			Convey("Then they should be valid functions", func() {
				So(namespaceOpt, ShouldNotBeNil)
				So(subsystemOpt, ShouldNotBeNil)
				So(histogramBucketsOpt, ShouldNotBeNil)
				So(registryOpt, ShouldNotBeNil)
			})
		})
	})
}

func TestManagerCreation(t *testing.T) {
	Convey("Given manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test_namespace"),
				WithSubsystem("test_subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording engine metrics", func() {
			Convey("Then the helpers do not panic", func() {
				So(func() {
					RecordAssignmentsComputed(7)
					RecordCandidatesScored(49)
					RecordCandidatesExcluded(2)
					RecordScoringLatency(12.5)
					RecordRecomputeLatency(20.0)
					RecordRecomputeError()
					RecordDuplicateRequest()
				}, ShouldNotPanic)
			})
		})

		Convey("When recording store and queue metrics", func() {
			Convey("Then the helpers do not panic", func() {
				So(func() {
					UpdateStoreParticipants(10)
					UpdateStoreMeetings(5)
					UpdateStoreAssignments(35)
					RecordStoreReplace()
					RecordStoreUpdateLatency(1.0)
					UpdateQueueSize(3)
					UpdateQueueCapacity(1000)
					UpdateQueueUtilization(0.003)
					RecordQueueEnqueue()
					RecordQueueDequeue()
					RecordQueueEnqueueError()
				}, ShouldNotPanic)
			})
		})

		Convey("When recording HTTP metrics", func() {
			Convey("Then the helpers do not panic", func() {
				So(func() {
					RecordHTTPRequest("assignments", "POST", "202")
					RecordHTTPRequestDuration("assignments", "POST", "202", 3.5)
					RecordErrorByComponent("http", "client_error")
				}, ShouldNotPanic)
			})
		})

		Convey("When reading the registry", func() {
			Convey("Then the custom registry is exposed", func() {
				So(GetRegistry(), ShouldNotBeNil)
			})
		})
	})
}
