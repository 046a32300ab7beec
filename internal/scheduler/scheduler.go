// Package scheduler runs the daily maintenance jobs: next-day show reminders,
// the reservation report, and the inactive-account sweep. Jobs are triggered
// once a day at a fixed hour and are guarded by a redis day-scoped lock, so
// overlapping runs (or multiple instances) execute each job at most once per
// day. Job failures are logged and never affect request traffic.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/metinatakli/theater-reservation-system/internal/domain"
	"github.com/metinatakli/theater-reservation-system/internal/mailer"
	"github.com/redis/go-redis/v9"
)

const inactivityCutoff = 365 * 24 * time.Hour

type Scheduler struct {
	logger          *slog.Logger
	redis           redis.UniversalClient
	mailer          mailer.Mailer
	userRepo        domain.UserRepository
	reservationRepo domain.ReservationRepository
	adminEmail      string
	hour            int
}

func New(
	logger *slog.Logger,
	redisClient redis.UniversalClient,
	m mailer.Mailer,
	userRepo domain.UserRepository,
	reservationRepo domain.ReservationRepository,
	adminEmail string,
	hour int,
) *Scheduler {
	return &Scheduler{
		logger:          logger,
		redis:           redisClient,
		mailer:          m,
		userRepo:        userRepo,
		reservationRepo: reservationRepo,
		adminEmail:      adminEmail,
		hour:            hour,
	}
}

// Run blocks until the context is cancelled, firing the daily jobs at the
// configured hour.
func (s *Scheduler) Run(ctx context.Context) {
	for {
		next := nextRunAt(time.Now(), s.hour)
		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			s.runDailyJobs(ctx)
		}
	}
}

func nextRunAt(now time.Time, hour int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}

	return next
}

func (s *Scheduler) runDailyJobs(ctx context.Context) {
	jobs := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"show_reminders", s.SendShowReminders},
		{"daily_report", s.SendDailyReport},
		{"inactivity_sweep", s.DeactivateInactiveUsers},
	}

	day := time.Now().Format("2006-01-02")

	for _, job := range jobs {
		acquired, err := s.acquireJobLock(ctx, job.name, day)
		if err != nil {
			s.logger.Error("failed to acquire job lock", "job", job.name, "error", err)
			continue
		}

		if !acquired {
			s.logger.Info("job already ran today, skipping", "job", job.name)
			continue
		}

		if err := job.fn(ctx); err != nil {
			s.logger.Error("scheduled job failed", "job", job.name, "error", err)
		}
	}
}

func (s *Scheduler) acquireJobLock(ctx context.Context, job, day string) (bool, error) {
	key := fmt.Sprintf("job_lock:%s:%s", job, day)

	return s.redis.SetNX(ctx, key, 1, 48*time.Hour).Result()
}

// SendShowReminders emails every user holding a live reservation for a show
// happening tomorrow.
func (s *Scheduler) SendShowReminders(ctx context.Context) error {
	tomorrow := dateOnly(time.Now().AddDate(0, 0, 1))

	reservations, err := s.reservationRepo.GetDetailsByShowDate(ctx, tomorrow)
	if err != nil {
		return err
	}

	for _, reservation := range reservations {
		data := map[string]any{
			"userName":   reservation.UserName,
			"showTitle":  reservation.ShowTitle,
			"showDate":   reservation.ShowDate.Format("2006-01-02"),
			"showTime":   reservation.ShowTime,
			"seatNumber": reservation.SeatNumber,
		}

		err := s.mailer.Send(reservation.UserEmail, "show_reminder.tmpl", data)
		if err != nil {
			s.logger.Error(
				"failed to send show reminder",
				"reservation_id", reservation.ReservationID,
				"error", err,
			)
		}
	}

	s.logger.Info("sent show reminders", "count", len(reservations))

	return nil
}

// SendDailyReport emails the admin address a summary of today's reservations.
func (s *Scheduler) SendDailyReport(ctx context.Context) error {
	today := dateOnly(time.Now())

	reservations, err := s.reservationRepo.GetDetailsByShowDate(ctx, today)
	if err != nil {
		return err
	}

	data := map[string]any{
		"date":         today.Format("2006-01-02"),
		"total":        len(reservations),
		"reservations": reservations,
	}

	return s.mailer.Send(s.adminEmail, "daily_report.tmpl", data)
}

// DeactivateInactiveUsers flips off accounts with no login for over a year.
// The filter re-evaluates current state each run, so a repeated run is a no-op.
func (s *Scheduler) DeactivateInactiveUsers(ctx context.Context) error {
	cutoff := time.Now().Add(-inactivityCutoff)

	count, err := s.userRepo.DeactivateInactiveSince(ctx, cutoff)
	if err != nil {
		return err
	}

	s.logger.Info("deactivated inactive accounts", "count", count)

	return nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
