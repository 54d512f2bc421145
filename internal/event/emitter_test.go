package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitter_PublishAndReceive(t *testing.T) {
	em := NewEmitter(8, nil)
	defer em.Close()

	em.Publish(NewStarted("s1", "/tmp/out.mp4"))
	em.Publish(NewProgress("s1", 10, "1.2MiB/s", "00:42"))
	em.Publish(NewCompleted("s1", true, "/tmp/out.mp4", ""))

	started, ok := (<-em.Events()).(Started)
	require.True(t, ok)
	assert.Equal(t, "s1", started.SessionID())
	assert.Equal(t, "/tmp/out.mp4", started.Path)

	progress, ok := (<-em.Events()).(Progress)
	require.True(t, ok)
	assert.Equal(t, 10.0, progress.Percent)

	completed, ok := (<-em.Events()).(Completed)
	require.True(t, ok)
	assert.True(t, completed.Success)
	assert.Empty(t, completed.Err)
}

func TestEmitter_OrderingPerSession(t *testing.T) {
	em := NewEmitter(16, nil)
	defer em.Close()

	percents := []float64{10, 55, 100}
	for _, p := range percents {
		em.Publish(NewProgress("s1", p, "", ""))
	}

	for i, want := range percents {
		got := (<-em.Events()).(Progress)
		assert.Equal(t, want, got.Percent, "event %d out of order", i)
	}
}

func TestEmitter_NonBlockingOverflow(t *testing.T) {
	em := NewEmitter(2, nil)
	defer em.Close()

	// Nobody is draining; Publish must not block.
	for i := 0; i < 10; i++ {
		em.Publish(NewProgress("s1", float64(i), "", ""))
	}

	assert.Equal(t, uint64(8), em.Dropped())
}

func TestEmitter_CloseIdempotent(t *testing.T) {
	em := NewEmitter(1, nil)
	em.Close()
	em.Close()

	_, open := <-em.Events()
	assert.False(t, open)
}
