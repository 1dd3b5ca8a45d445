// File: /jobs/tax_reminder_job.go
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"fleetexpense-api/models"
	"fleetexpense-api/repositories"
	"fleetexpense-api/services"
)

type TaxSource interface {
	ExpiringTaxes(ctx context.Context, from, to time.Time) ([]models.Tax, error)
}

type GroupSource interface {
	Find(ctx context.Context, filter repositories.GroupFilter) ([]models.Group, error)
}

type ReminderMailer interface {
	SendTaxReminderEmail(email, name string, reminders []services.TaxReminder) error
}

// TaxReminderJob periodically emails users whose vehicle taxes expire soon.
type TaxReminderJob struct {
	taxes    TaxSource
	groups   GroupSource
	mailer   ReminderMailer
	interval time.Duration
	window   time.Duration
	now      func() time.Time

	ticker *time.Ticker
	done   chan struct{}
}

const (
	defaultReminderInterval = 24 * time.Hour
	defaultReminderWindow   = 14 * 24 * time.Hour
)

// NewTaxReminderJob creates a job that runs every interval and reminds
// about taxes ending window from now. Non-positive durations fall back to
// the defaults.
func NewTaxReminderJob(taxes TaxSource, groups GroupSource, mailer ReminderMailer, interval, window time.Duration) *TaxReminderJob {
	if interval <= 0 {
		interval = defaultReminderInterval
	}
	if window <= 0 {
		window = defaultReminderWindow
	}
	return &TaxReminderJob{
		taxes:    taxes,
		groups:   groups,
		mailer:   mailer,
		interval: interval,
		window:   window,
		now:      time.Now,
		done:     make(chan struct{}),
	}
}

// Start runs the job once immediately and then on every tick.
func (j *TaxReminderJob) Start() {
	slog.Info("Tax reminder job started", "interval", j.interval, "window", j.window)
	j.ticker = time.NewTicker(j.interval)

	go func() {
		j.run()

		for {
			select {
			case <-j.ticker.C:
				j.run()
			case <-j.done:
				slog.Info("Tax reminder job stopped")
				return
			}
		}
	}()
}

func (j *TaxReminderJob) Stop() {
	if j.ticker != nil {
		j.ticker.Stop()
	}
	close(j.done)
}

func (j *TaxReminderJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	sent, err := j.RunOnce(ctx)
	if err != nil {
		slog.Error("Tax reminder run failed", "error", err)
		return
	}
	slog.Info("Tax reminder run completed", "emails_sent", sent)
}

// RunOnce sends one email per user owning a tax that entered the reminder
// window since the previous run, and returns how many were sent. Each run
// covers the interval-long slice ending window from now, so a tax is
// reminded about once. A failed email is logged and does not stop the others.
func (j *TaxReminderJob) RunOnce(ctx context.Context) (int, error) {
	now := j.now().UTC()
	to := now.Add(j.window)
	from := to.Add(-j.interval)
	if from.Before(now) {
		from = now
	}

	taxes, err := j.taxes.ExpiringTaxes(ctx, from, to)
	if err != nil {
		return 0, fmt.Errorf("load expiring taxes: %w", err)
	}
	if len(taxes) == 0 {
		return 0, nil
	}

	groupIDs := make([]string, 0, len(taxes))
	for _, tax := range taxes {
		groupIDs = append(groupIDs, tax.GroupID)
	}
	groups, err := j.groups.Find(ctx, repositories.GroupFilter{IDs: groupIDs})
	if err != nil {
		return 0, fmt.Errorf("load groups: %w", err)
	}
	byGroup := make(map[string]models.Group, len(groups))
	for _, g := range groups {
		byGroup[g.ID] = g
	}

	type recipient struct {
		user      models.User
		reminders []services.TaxReminder
	}
	byUser := make(map[string]*recipient)
	for _, tax := range taxes {
		group, ok := byGroup[tax.GroupID]
		if !ok || tax.ValidTo == nil {
			continue
		}

		r, ok := byUser[group.UserID]
		if !ok {
			r = &recipient{user: group.User}
			byUser[group.UserID] = r
		}

		var amount float64
		if tax.Amount != nil {
			amount = *tax.Amount
		}
		r.reminders = append(r.reminders, services.TaxReminder{
			VehicleName: group.Vehicle.Name,
			TaxType:     tax.TaxType,
			ValidTo:     *tax.ValidTo,
			Amount:      amount,
		})
	}

	userIDs := make([]string, 0, len(byUser))
	for id := range byUser {
		userIDs = append(userIDs, id)
	}
	sort.Strings(userIDs)

	sent := 0
	for _, id := range userIDs {
		r := byUser[id]
		if err := j.mailer.SendTaxReminderEmail(r.user.Email, r.user.Name, r.reminders); err != nil {
			slog.WarnContext(ctx, "Failed to send tax reminder", "user_id", id, "error", err)
			continue
		}
		sent++
	}
	return sent, nil
}
