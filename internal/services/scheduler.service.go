package services

import (
	"context"
	"sync"
	"time"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/go-co-op/gocron"
)

type Schedule int

const (
	Hourly Schedule = iota
	Daily           // 02:00 UTC every day
)

// Job is a recurring task executed by the scheduler.
type Job interface {
	Name() string
	Execute(ctx context.Context) error
	Schedule() Schedule
}

// SchedulerService wraps a single gocron scheduler serving both recurring
// maintenance jobs and one-shot deferred notifications. One-shot jobs are
// tagged by opaque handle so they can be revoked before firing.
type SchedulerService struct {
	scheduler *gocron.Scheduler
	jobs      []Job
	log       logger.Logger
	started   bool
	mu        sync.Mutex
	ctx       context.Context
	cancel    context.CancelFunc
}

func NewSchedulerService() *SchedulerService {
	scheduler := gocron.NewScheduler(time.UTC)
	ctx, cancel := context.WithCancel(context.Background())

	return &SchedulerService{
		scheduler: scheduler,
		jobs:      make([]Job, 0),
		log:       logger.New("scheduler"),
		ctx:       ctx,
		cancel:    cancel,
	}
}

func (s *SchedulerService) executeJob(job Job, log logger.Logger) {
	log.Info("Executing scheduled job", "job", job.Name())
	if err := job.Execute(s.ctx); err != nil {
		_ = log.Err("Job execution failed", err, "job", job.Name())
	} else {
		log.Info("Job execution completed", "job", job.Name())
	}
}

// AddJob registers a recurring job.
func (s *SchedulerService) AddJob(job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := s.log.Function("AddJob")

	var err error
	switch job.Schedule() {
	case Daily:
		_, err = s.scheduler.Every(1).Day().At("02:00").Do(func() {
			s.executeJob(job, log)
		})
	case Hourly:
		_, err = s.scheduler.Every(1).Hour().Do(func() {
			s.executeJob(job, log)
		})
	}

	if err != nil {
		return log.Err("failed to register job with scheduler", err, "job", job.Name())
	}

	s.jobs = append(s.jobs, job)
	log.Info("Job registered", "job", job.Name())

	return nil
}

// ScheduleOnce registers a job that runs a single time at fireAt, tagged so a
// later RemoveByTag can revoke it.
func (s *SchedulerService) ScheduleOnce(tag string, fireAt time.Time, fn func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := s.log.Function("ScheduleOnce")

	_, err := s.scheduler.Every(1).Day().StartAt(fireAt).LimitRunsTo(1).Tag(tag).Do(fn)
	if err != nil {
		return log.Err("failed to register one-shot job", err, "tag", tag, "fireAt", fireAt)
	}

	log.Info("One-shot job registered", "tag", tag, "fireAt", fireAt)
	return nil
}

// RemoveByTag cancels a pending one-shot job. Removing an unknown tag is not
// an error: the job may already have fired.
func (s *SchedulerService) RemoveByTag(tag string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.scheduler.RemoveByTag(tag); err != nil {
		s.log.Debug("no job removed for tag", "tag", tag, "error", err)
	}
}

func (s *SchedulerService) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := s.log.Function("Start")

	if s.started {
		log.Info("Scheduler already started")
		return nil
	}

	log.Info("Starting scheduler", "jobCount", len(s.jobs))
	s.scheduler.StartAsync()
	s.started = true

	return nil
}

func (s *SchedulerService) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := s.log.Function("Stop")

	if !s.started {
		return nil
	}

	if s.cancel != nil {
		s.cancel()
	}

	s.scheduler.Stop()
	s.started = false

	log.Info("Scheduler stopped")
	return nil
}

func (s *SchedulerService) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}
