package wizard

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitForState[T any](t *testing.T, l *Loader[T], want LoadState) Snapshot[T] {
	t.Helper()

	require.Eventually(t, func() bool {
		return l.Get().State == want
	}, 2*time.Second, 5*time.Millisecond)

	return l.Get()
}

func TestLoader_StartsPending(t *testing.T) {
	l := NewLoader(func() (int, error) { return 42, nil })

	assert.Equal(t, LoadPending, l.Get().State)
}

func TestLoader_DeliversValue(t *testing.T) {
	l := NewLoader(func() (int, error) { return 42, nil })

	l.Start()

	snap := waitForState(t, l, LoadReady)
	assert.Equal(t, 42, snap.Value)
	assert.NoError(t, snap.Err)
}

func TestLoader_DeliversFailure(t *testing.T) {
	boom := errors.New("boom")
	l := NewLoader(func() (int, error) { return 0, boom })

	l.Start()

	snap := waitForState(t, l, LoadFailed)
	assert.ErrorIs(t, snap.Err, boom)
}

func TestLoader_RetryRecoversAfterFailure(t *testing.T) {
	calls := 0
	l := NewLoader(func() (int, error) {
		calls++
		if calls == 1 {
			return 0, errors.New("transient")
		}
		return 7, nil
	})

	l.Start()
	waitForState(t, l, LoadFailed)

	l.Retry()

	snap := waitForState(t, l, LoadReady)
	assert.Equal(t, 7, snap.Value)
}

func TestLoader_CloseDropsLateResult(t *testing.T) {
	release := make(chan struct{})
	l := NewLoader(func() (int, error) {
		<-release
		return 42, nil
	})

	l.Start()
	l.Close()
	close(release)

	// The fetch completes after Close; its result must never land.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, LoadPending, l.Get().State)
}

func TestLoader_StaleGenerationDropped(t *testing.T) {
	first := make(chan struct{})
	calls := 0
	l := NewLoader(func() (int, error) {
		calls++
		if calls == 1 {
			<-first
			return 1, nil
		}
		return 2, nil
	})

	l.Start()
	l.Retry()

	snap := waitForState(t, l, LoadReady)
	assert.Equal(t, 2, snap.Value)

	// Let the first fetch finish late; it must not overwrite.
	close(first)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 2, l.Get().Value)
}

func TestLoader_OnChangeFires(t *testing.T) {
	l := NewLoader(func() (int, error) { return 1, nil })

	fired := make(chan struct{}, 1)
	l.OnChange(func() { fired <- struct{}{} })

	l.Start()

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("expected change notification")
	}
}
