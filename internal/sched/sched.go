// Package sched runs delayed one-shot jobs that can be cancelled
// individually or all at once on shutdown. Views of card media are
// scheduled for deletion through it.
package sched

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type job struct {
	cancel context.CancelFunc
}

// Scheduler tracks pending jobs so none outlive the process silently.
type Scheduler struct {
	mu   sync.Mutex
	jobs map[string]*job
	wg   sync.WaitGroup

	ctx    context.Context
	cancel context.CancelFunc
	log    *zap.Logger
}

// New creates an idle Scheduler.
func New(log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		jobs:   make(map[string]*job),
		ctx:    ctx,
		cancel: cancel,
		log:    log.Named("sched"),
	}
}

// After schedules fn to run once after delay and returns the job id.
// The job is dropped without running when cancelled or when the
// scheduler shuts down first.
func (s *Scheduler) After(delay time.Duration, fn func()) string {
	id := uuid.NewString()

	s.mu.Lock()
	ctx, cancel := context.WithCancel(s.ctx)
	s.jobs[id] = &job{cancel: cancel}
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.remove(id)

		timer := time.NewTimer(delay)
		defer timer.Stop()

		select {
		case <-timer.C:
			fn()
		case <-ctx.Done():
		}
	}()

	return id
}

// Cancel stops the job if it has not fired yet. It reports whether the
// job was still pending.
func (s *Scheduler) Cancel(id string) bool {
	s.mu.Lock()
	j, ok := s.jobs[id]
	s.mu.Unlock()
	if !ok {
		return false
	}
	j.cancel()
	return true
}

// Pending returns the number of jobs that have not fired or been
// cancelled.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// Shutdown cancels every pending job and waits for their goroutines to
// finish.
func (s *Scheduler) Shutdown() {
	s.cancel()
	s.wg.Wait()
	s.log.Info("scheduler stopped")
}

func (s *Scheduler) remove(id string) {
	s.mu.Lock()
	if j, ok := s.jobs[id]; ok {
		j.cancel()
		delete(s.jobs, id)
	}
	s.mu.Unlock()
}
