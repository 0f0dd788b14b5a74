package telemetry_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/abaplab/adtbridge/internal/telemetry"
)

func TestRecorder_Observe(t *testing.T) {
	r := telemetry.NewRecorder()
	ctx := context.Background()

	r.Observe(ctx, "objectStructure", time.Now().Add(-10*time.Millisecond), true)
	r.Observe(ctx, "objectStructure", time.Now().Add(-20*time.Millisecond), false)

	s := r.Snapshot()
	assert.Equal(t, int64(2), s.Attempted)
	assert.Equal(t, int64(1), s.Succeeded)
	assert.Equal(t, int64(1), s.Failed)
	assert.Greater(t, s.AverageLatency, time.Duration(0))
}

func TestRecorder_EmptySnapshot(t *testing.T) {
	s := telemetry.NewRecorder().Snapshot()
	assert.Zero(t, s.Attempted)
	assert.Zero(t, s.AverageLatency)
}

// Overlapping in-flight invocations must never lose increments.
func TestRecorder_ConcurrentObservations(t *testing.T) {
	r := telemetry.NewRecorder()
	ctx := context.Background()

	const n = 1000
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r.Observe(ctx, "runQuery", time.Now(), i%4 != 0)
		}(i)
	}
	wg.Wait()

	s := r.Snapshot()
	assert.Equal(t, int64(n), s.Attempted)
	assert.Equal(t, int64(n), s.Succeeded+s.Failed)
	assert.Equal(t, int64(n/4), s.Failed)
	assert.GreaterOrEqual(t, s.AverageLatency, time.Duration(0))
}
