// services/scheduler.go
package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// TaskHandle identifies a pending delayed task. The zero handle is never armed.
type TaskHandle uuid.UUID

// Scheduler runs callbacks once after a delay.
type Scheduler interface {
	// After arms fn to run once after d.
	After(d time.Duration, fn func(), tags ...string) (TaskHandle, error)
	// Cancel disarms a pending task. Cancelling a fired or unknown task is a no-op.
	Cancel(h TaskHandle)
}

// CronScheduler backs Scheduler with gocron one-time jobs.
type CronScheduler struct {
	cron  gocron.Scheduler
	clock clockwork.Clock
}

func NewCronScheduler(clock clockwork.Clock) (*CronScheduler, error) {
	sched, err := gocron.NewScheduler(
		gocron.WithClock(clock),
		gocron.WithLogger(cronLogger{}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	sched.Start()
	return &CronScheduler{cron: sched, clock: clock}, nil
}

func (s *CronScheduler) After(d time.Duration, fn func(), tags ...string) (TaskHandle, error) {
	job, err := s.cron.NewJob(
		gocron.OneTimeJob(gocron.OneTimeJobStartDateTime(s.clock.Now().Add(d))),
		gocron.NewTask(fn),
		gocron.WithLimitedRuns(1),
		gocron.WithTags(tags...),
	)
	if err != nil {
		return TaskHandle{}, fmt.Errorf("failed to schedule task in %s: %w", d, err)
	}
	return TaskHandle(job.ID()), nil
}

func (s *CronScheduler) Cancel(h TaskHandle) {
	if h == (TaskHandle{}) {
		return
	}
	if err := s.cron.RemoveJob(uuid.UUID(h)); err != nil && !errors.Is(err, gocron.ErrJobNotFound) {
		log.Printf("[Scheduler] Failed to cancel task %s: %v", uuid.UUID(h), err)
	}
}

// Shutdown stops the scheduler and drops every pending task.
func (s *CronScheduler) Shutdown() error {
	return s.cron.Shutdown()
}

// cronLogger routes gocron's diagnostics to the process logger.
type cronLogger struct{}

func (cronLogger) Debug(string, ...any) {}

func (cronLogger) Info(msg string, args ...any) {
	log.Printf("[Scheduler] %s %v", msg, args)
}

func (cronLogger) Warn(msg string, args ...any) {
	log.Printf("[Scheduler] ⚠️ %s %v", msg, args)
}

func (cronLogger) Error(msg string, args ...any) {
	log.Printf("[Scheduler] ❌ %s %v", msg, args)
}
