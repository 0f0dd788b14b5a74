// Package telemetry holds the process-wide invocation metrics.
package telemetry

import (
	"context"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/abaplab/adtbridge"

// Recorder counts attempted/succeeded/failed invocations and accumulates
// latency. All updates are atomic, so overlapping in-flight invocations
// never lose increments. Observe is infallible: a metrics problem must
// never affect the invocation's own outcome.
type Recorder struct {
	attempted    atomic.Int64
	succeeded    atomic.Int64
	failed       atomic.Int64
	latencyNanos atomic.Int64
	observations atomic.Int64

	calls    metric.Int64Counter
	failures metric.Int64Counter
	latency  metric.Float64Histogram
}

// Snapshot is a read-only view of the recorder's state.
type Snapshot struct {
	Attempted int64
	Succeeded int64
	Failed    int64
	// AverageLatency is zero until at least one observation lands.
	AverageLatency time.Duration
}

// NewRecorder creates a recorder backed by OpenTelemetry instruments on the
// global meter provider. Instrument creation errors are swallowed: with no
// provider installed the instruments are no-ops and the local counters still
// work.
func NewRecorder() *Recorder {
	meter := otel.Meter(meterName)
	r := &Recorder{}
	r.calls, _ = meter.Int64Counter("adtbridge.invocations",
		metric.WithDescription("Tool invocations handled by the dispatcher."))
	r.failures, _ = meter.Int64Counter("adtbridge.invocation_failures",
		metric.WithDescription("Tool invocations that produced a failure envelope."))
	r.latency, _ = meter.Float64Histogram("adtbridge.invocation_latency",
		metric.WithDescription("Invocation latency in seconds."),
		metric.WithUnit("s"))
	return r
}

// Observe folds one completed invocation into the counters. The start time
// is captured by the caller before any backend work begins, so latency
// includes session establishment and network time.
func (r *Recorder) Observe(ctx context.Context, tool string, start time.Time, succeeded bool) {
	elapsed := time.Since(start)
	if elapsed < 0 {
		elapsed = 0
	}

	r.attempted.Add(1)
	if succeeded {
		r.succeeded.Add(1)
	} else {
		r.failed.Add(1)
	}
	r.latencyNanos.Add(int64(elapsed))
	r.observations.Add(1)

	attrs := metric.WithAttributes(
		attribute.String("tool", tool),
		attribute.Bool("success", succeeded),
	)
	if r.calls != nil {
		r.calls.Add(ctx, 1, attrs)
	}
	if !succeeded && r.failures != nil {
		r.failures.Add(ctx, 1, attrs)
	}
	if r.latency != nil {
		r.latency.Record(ctx, elapsed.Seconds(), attrs)
	}
}

// Snapshot returns the current counter values for diagnostics.
func (r *Recorder) Snapshot() Snapshot {
	s := Snapshot{
		Attempted: r.attempted.Load(),
		Succeeded: r.succeeded.Load(),
		Failed:    r.failed.Load(),
	}
	if n := r.observations.Load(); n > 0 {
		s.AverageLatency = time.Duration(r.latencyNanos.Load() / n)
	}
	return s
}
