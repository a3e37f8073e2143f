// Package scheduler runs the periodic jobs of the service: the payment scan,
// the lifecycle sweep and one entry per active recurring template.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/vietanh2810/isk-lottery/internal/domain"
)

type Scheduler struct {
	cron   *cron.Cron
	logger cron.Logger
	ctx    context.Context
	cancel context.CancelFunc

	mu        sync.Mutex
	templates map[uint]cron.EntryID
}

func New() *Scheduler {
	logger := zapCronLogger{log: zap.L().Named("scheduler")}
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		cron:      cron.New(cron.WithChain(cron.Recover(logger)), cron.WithLogger(logger)),
		logger:    logger,
		ctx:       ctx,
		cancel:    cancel,
		templates: make(map[uint]cron.EntryID),
	}
}

// Every runs job at a fixed interval. A run still in progress causes the
// next tick to be skipped.
func (s *Scheduler) Every(name string, interval time.Duration, job func(ctx context.Context)) {
	s.cron.Schedule(cron.Every(interval), s.wrap(name, job))
}

// Register schedules job on the cadence of a recurring template, replacing
// any previous entry for the same template.
func (s *Scheduler) Register(templateID uint, cadence domain.Cadence, job func(ctx context.Context)) error {
	if err := cadence.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.templates[templateID]; ok {
		s.cron.Remove(id)
	}
	s.templates[templateID] = s.cron.Schedule(cadenceSchedule{cadence: cadence}, s.wrap("template", job))

	return nil
}

func (s *Scheduler) Unregister(templateID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.templates[templateID]; ok {
		s.cron.Remove(id)
		delete(s.templates, templateID)
	}
}

func (s *Scheduler) Registered(templateID uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.templates[templateID]
	return ok
}

// Next returns the next planned run of a template, if scheduled and started.
func (s *Scheduler) Next(templateID uint) (time.Time, bool) {
	s.mu.Lock()
	id, ok := s.templates[templateID]
	s.mu.Unlock()
	if !ok {
		return time.Time{}, false
	}

	return s.cron.Entry(id).Next, true
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop prevents new runs, cancels running jobs and waits for them to return.
func (s *Scheduler) Stop() {
	done := s.cron.Stop()
	s.cancel()
	<-done.Done()
}

func (s *Scheduler) wrap(name string, job func(ctx context.Context)) cron.Job {
	return cron.NewChain(cron.SkipIfStillRunning(s.logger)).Then(cron.FuncJob(func() {
		if s.ctx.Err() != nil {
			return
		}

		started := time.Now()
		job(s.ctx)
		zap.L().Debug("scheduled job finished", zap.String("job", name), zap.Duration("took", time.Since(started)))
	}))
}

type cadenceSchedule struct {
	cadence domain.Cadence
}

func (c cadenceSchedule) Next(t time.Time) time.Time {
	return c.cadence.AddTo(t)
}

type zapCronLogger struct {
	log *zap.Logger
}

func (l zapCronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Sugar().Debugw(msg, keysAndValues...)
}

func (l zapCronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
