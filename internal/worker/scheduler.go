package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog"

	"github.com/Myself7802/aatmiya-sabha-form/internal/service"
)

// Scheduler запускает фоновые задачи: обновление кэша эталонных данных и очистку сессий.
type Scheduler struct {
	scheduler *gocron.Scheduler
	logger    zerolog.Logger
	jobs      int
}

func NewScheduler(logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		logger:    logger,
	}
}

// ScheduleReferenceRefresh перечитывает эталонную таблицу каждые interval.
// Ошибка загрузки только логируется: предыдущая таблица остается в кэше.
func (s *Scheduler) ScheduleReferenceRefresh(references service.ReferenceService, interval, timeout time.Duration) error {
	if interval <= 0 {
		return nil
	}

	_, err := s.scheduler.Every(interval).
		WaitForSchedule().
		SingletonMode().
		Tag("reference-refresh").
		Do(func() {
			ctx, cancel := refreshContext(timeout)
			defer cancel()

			if _, err := references.Refresh(ctx); err != nil {
				s.logger.Error().Err(err).Msg("Scheduled reference refresh failed")
			}
		})
	if err != nil {
		return fmt.Errorf("failed to schedule reference refresh: %w", err)
	}

	s.jobs++
	s.logger.Info().Dur("interval", interval).Msg("Reference refresh scheduled")
	return nil
}

// refreshContext ограничивает загрузку timeout; timeout <= 0 означает без ограничения,
// как и для HTTP-запросов.
func refreshContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), timeout)
}

func (s *Scheduler) ScheduleSessionSweep(sessions service.SessionService, interval time.Duration) error {
	if interval <= 0 {
		return nil
	}

	_, err := s.scheduler.Every(interval).
		WaitForSchedule().
		SingletonMode().
		Tag("session-sweep").
		Do(func() {
			sessions.SweepIdle()
		})
	if err != nil {
		return fmt.Errorf("failed to schedule session sweep: %w", err)
	}

	s.jobs++
	s.logger.Info().Dur("interval", interval).Msg("Session sweep scheduled")
	return nil
}

func (s *Scheduler) Start() {
	if s.jobs == 0 {
		return
	}
	s.scheduler.StartAsync()
}

func (s *Scheduler) Stop() {
	if s.scheduler.IsRunning() {
		s.scheduler.Stop()
	}
}

func (s *Scheduler) Jobs() int {
	return s.jobs
}
