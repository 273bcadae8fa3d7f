package recorder

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aircanvas/aircanvas/core"
)

func TestRegistry_NewReturnsIndependentRecorders(t *testing.T) {
	reg := NewRegistry()

	a := reg.New()
	b := reg.New()
	require.NotSame(t, a, b)

	a.Start()
	assert.True(t, a.IsRecording())
	assert.False(t, b.IsRecording())
}

func TestRegistry_SharedReturnsSameInstance(t *testing.T) {
	reg := NewRegistry()

	first := reg.Shared()
	second := reg.Shared()
	require.Same(t, first, second)

	first.Start()
	assert.True(t, second.IsRecording())

	_, err := second.Stop()
	require.NoError(t, err)
	assert.False(t, first.IsRecording())
}

func TestRegistry_SharedIsIndependentOfNew(t *testing.T) {
	reg := NewRegistry()

	shared := reg.Shared()
	fresh := reg.New()
	require.NotSame(t, shared, fresh)

	fresh.Start()
	assert.False(t, shared.IsRecording())
}

func TestRegistry_SharedConcurrent(t *testing.T) {
	reg := NewRegistry()

	const goroutines = 32
	recorders := make([]*SessionRecorder, goroutines)

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			recorders[i] = reg.Shared()
		}(i)
	}
	wg.Wait()

	for i := 1; i < goroutines; i++ {
		assert.Same(t, recorders[0], recorders[i])
	}
}

func TestRegistry_OptionsApplyToEveryRecorder(t *testing.T) {
	clock := core.NewManualClock(time.Unix(1700000000, 0))
	reg := NewRegistry(func(o *Options) {
		o.Clock = clock
		o.ClientInfo = "registry-test/1.0"
	})

	rec := reg.Shared()
	rec.Start()
	clock.Advance(40 * time.Millisecond)

	session, err := rec.Stop()
	require.NoError(t, err)
	assert.Equal(t, 40.0, session.DurationMs)
	assert.Equal(t, "registry-test/1.0", session.Metadata.ClientInfo)
}
