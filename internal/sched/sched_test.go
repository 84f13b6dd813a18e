package sched

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobFires(t *testing.T) {
	s := New(nil)
	defer s.Shutdown()

	fired := make(chan struct{})
	id := s.After(10*time.Millisecond, func() { close(fired) })
	require.NotEmpty(t, id)

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not fire")
	}
}

func TestCancelPreventsRun(t *testing.T) {
	s := New(nil)
	defer s.Shutdown()

	var ran atomic.Bool
	id := s.After(time.Hour, func() { ran.Store(true) })

	assert.True(t, s.Cancel(id))

	// Give the goroutine a moment to drain.
	assert.Eventually(t, func() bool { return s.Pending() == 0 }, time.Second, 5*time.Millisecond)
	assert.False(t, ran.Load())
}

func TestCancelUnknownJob(t *testing.T) {
	s := New(nil)
	defer s.Shutdown()

	assert.False(t, s.Cancel("no-such-job"))
}

func TestShutdownDropsPendingJobs(t *testing.T) {
	s := New(nil)

	var ran atomic.Int32
	for i := 0; i < 5; i++ {
		s.After(time.Hour, func() { ran.Add(1) })
	}
	require.Equal(t, 5, s.Pending())

	s.Shutdown()
	assert.Equal(t, 0, s.Pending())
	assert.Equal(t, int32(0), ran.Load())
}

func TestJobIDsAreUnique(t *testing.T) {
	s := New(nil)
	defer s.Shutdown()

	a := s.After(time.Hour, func() {})
	b := s.After(time.Hour, func() {})
	assert.NotEqual(t, a, b)
}
