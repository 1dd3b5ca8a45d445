// File: /jobs/tax_reminder_job_test.go
package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"fleetexpense-api/models"
	"fleetexpense-api/repositories"
	"fleetexpense-api/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTaxes struct {
	taxes    []models.Tax
	err      error
	from, to time.Time
}

func (f *fakeTaxes) ExpiringTaxes(_ context.Context, from, to time.Time) ([]models.Tax, error) {
	f.from, f.to = from, to
	return f.taxes, f.err
}

type fakeGroups struct {
	groups []models.Group
}

func (f *fakeGroups) Find(_ context.Context, filter repositories.GroupFilter) ([]models.Group, error) {
	var out []models.Group
	for _, g := range f.groups {
		for _, id := range filter.IDs {
			if g.ID == id {
				out = append(out, g)
				break
			}
		}
	}
	return out, nil
}

type sentReminder struct {
	email     string
	reminders []services.TaxReminder
}

type fakeMailer struct {
	sent   []sentReminder
	failTo string
}

func (f *fakeMailer) SendTaxReminderEmail(email, _ string, reminders []services.TaxReminder) error {
	if email == f.failTo {
		return errors.New("smtp down")
	}
	f.sent = append(f.sent, sentReminder{email: email, reminders: reminders})
	return nil
}

func ptr[T any](v T) *T { return &v }

func newJobFixture() (*fakeTaxes, *fakeGroups, *fakeMailer) {
	ana := models.User{ID: "u1", Name: "Ana", Email: "ana@example.com"}
	bob := models.User{ID: "u2", Name: "Bob", Email: "bob@example.com"}
	van := models.Vehicle{ID: "v1", Name: "Van"}
	truck := models.Vehicle{ID: "v2", Name: "Truck"}

	groups := &fakeGroups{groups: []models.Group{
		{ID: "g1", UserID: ana.ID, VehicleID: van.ID, User: ana, Vehicle: van},
		{ID: "g2", UserID: ana.ID, VehicleID: truck.ID, User: ana, Vehicle: truck},
		{ID: "g3", UserID: bob.ID, VehicleID: van.ID, User: bob, Vehicle: van},
	}}

	expiry := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	taxes := &fakeTaxes{taxes: []models.Tax{
		{ExpenseBase: models.ExpenseBase{ID: "t1", GroupID: "g1", Amount: ptr(120.0)}, TaxType: "road", ValidTo: &expiry},
		{ExpenseBase: models.ExpenseBase{ID: "t2", GroupID: "g2"}, TaxType: "insurance", ValidTo: &expiry},
		{ExpenseBase: models.ExpenseBase{ID: "t3", GroupID: "g3", Amount: ptr(80.0)}, TaxType: "road", ValidTo: &expiry},
	}}

	return taxes, groups, &fakeMailer{}
}

func TestRunOnceSendsOneEmailPerUser(t *testing.T) {
	taxes, groups, mailer := newJobFixture()
	job := NewTaxReminderJob(taxes, groups, mailer, time.Hour, 14*24*time.Hour)
	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	job.now = func() time.Time { return now }

	sent, err := job.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, sent)

	assert.Equal(t, now.Add(14*24*time.Hour-time.Hour), taxes.from)
	assert.Equal(t, now.Add(14*24*time.Hour), taxes.to)

	require.Len(t, mailer.sent, 2)
	assert.Equal(t, "ana@example.com", mailer.sent[0].email)
	require.Len(t, mailer.sent[0].reminders, 2)
	assert.Equal(t, "Van", mailer.sent[0].reminders[0].VehicleName)
	assert.Equal(t, 120.0, mailer.sent[0].reminders[0].Amount)
	assert.Equal(t, "Truck", mailer.sent[0].reminders[1].VehicleName)
	assert.Zero(t, mailer.sent[0].reminders[1].Amount)

	assert.Equal(t, "bob@example.com", mailer.sent[1].email)
	require.Len(t, mailer.sent[1].reminders, 1)
}

func TestRunOnceContinuesAfterMailFailure(t *testing.T) {
	taxes, groups, mailer := newJobFixture()
	mailer.failTo = "ana@example.com"
	job := NewTaxReminderJob(taxes, groups, mailer, time.Hour, 24*time.Hour)

	sent, err := job.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "bob@example.com", mailer.sent[0].email)
}

func TestRunOnceNothingExpiring(t *testing.T) {
	_, groups, mailer := newJobFixture()
	job := NewTaxReminderJob(&fakeTaxes{}, groups, mailer, time.Hour, 24*time.Hour)

	sent, err := job.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, sent)
	assert.Empty(t, mailer.sent)
}

func TestRunOnceReportsStoreError(t *testing.T) {
	_, groups, mailer := newJobFixture()
	job := NewTaxReminderJob(&fakeTaxes{err: errors.New("db down")}, groups, mailer, time.Hour, 24*time.Hour)

	_, err := job.RunOnce(context.Background())
	assert.ErrorContains(t, err, "db down")
	assert.Empty(t, mailer.sent)
}

func TestRunOnceSlicesDoNotOverlap(t *testing.T) {
	taxes, groups, mailer := newJobFixture()
	job := NewTaxReminderJob(taxes, groups, mailer, 24*time.Hour, 14*24*time.Hour)
	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	job.now = func() time.Time { return now }

	_, err := job.RunOnce(context.Background())
	require.NoError(t, err)
	firstTo := taxes.to

	now = now.Add(24 * time.Hour)
	_, err = job.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, firstTo, taxes.from)
	assert.Equal(t, firstTo.Add(24*time.Hour), taxes.to)
}

func TestRunOnceWindowShorterThanInterval(t *testing.T) {
	taxes, groups, mailer := newJobFixture()
	job := NewTaxReminderJob(taxes, groups, mailer, 48*time.Hour, 24*time.Hour)
	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	job.now = func() time.Time { return now }

	_, err := job.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, now, taxes.from)
	assert.Equal(t, now.Add(24*time.Hour), taxes.to)
}

func TestNewTaxReminderJobClampsDurations(t *testing.T) {
	taxes, groups, mailer := newJobFixture()

	job := NewTaxReminderJob(taxes, groups, mailer, 0, -time.Hour)
	assert.Equal(t, defaultReminderInterval, job.interval)
	assert.Equal(t, defaultReminderWindow, job.window)

	job = NewTaxReminderJob(taxes, groups, mailer, -time.Minute, time.Hour)
	assert.Equal(t, defaultReminderInterval, job.interval)
	assert.Equal(t, time.Hour, job.window)

	job.Start()
	job.Stop()
}

func TestStartStop(t *testing.T) {
	taxes, groups, mailer := newJobFixture()
	job := NewTaxReminderJob(taxes, groups, mailer, time.Hour, 24*time.Hour)

	job.Start()
	job.Stop()
}
