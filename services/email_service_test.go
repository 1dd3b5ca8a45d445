// File: /services/email_service_test.go
package services

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"fleetexpense-api/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

func newCapturingEmailService(sent *[]*gomail.Message) *EmailService {
	es := NewEmailService(&config.Config{FromEmail: "noreply@example.com", FromName: "Fleet"})
	es.send = func(m *gomail.Message) error {
		*sent = append(*sent, m)
		return nil
	}
	return es
}

func TestSendWelcomeEmail(t *testing.T) {
	var sent []*gomail.Message
	es := newCapturingEmailService(&sent)

	require.NoError(t, es.SendWelcomeEmail("ana@example.com", "Ana <3"))
	require.Len(t, sent, 1)
	assert.Equal(t, []string{"ana@example.com"}, sent[0].GetHeader("To"))

	var body bytes.Buffer
	_, err := sent[0].WriteTo(&body)
	require.NoError(t, err)
	assert.Contains(t, body.String(), "Ana &lt;3")
}

func TestSendTaxReminderEmail(t *testing.T) {
	var sent []*gomail.Message
	es := newCapturingEmailService(&sent)

	require.NoError(t, es.SendTaxReminderEmail("bob@example.com", "Bob", nil))
	assert.Empty(t, sent, "no reminders, no email")

	reminders := []TaxReminder{{VehicleName: "Van", TaxType: "road", ValidTo: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), Amount: 120}}
	require.NoError(t, es.SendTaxReminderEmail("bob@example.com", "Bob", reminders))
	require.Len(t, sent, 1)
	assert.Equal(t, []string{"Fleet - Vehicle taxes expiring soon"}, sent[0].GetHeader("Subject"))
}

func TestSendEmailFailureIsWrapped(t *testing.T) {
	es := NewEmailService(&config.Config{FromEmail: "noreply@example.com", FromName: "Fleet"})
	es.send = func(*gomail.Message) error { return errors.New("smtp down") }

	err := es.SendWelcomeEmail("ana@example.com", "Ana")
	assert.ErrorContains(t, err, "smtp down")
}

func TestDisabledEmailOnlyLogs(t *testing.T) {
	es := NewEmailService(&config.Config{EmailEnabled: false, FromEmail: "noreply@example.com", FromName: "Fleet"})
	assert.NoError(t, es.SendWelcomeEmail("ana@example.com", "Ana"))
}

func TestEnabledEmailSendsThroughSMTP(t *testing.T) {
	es := NewEmailService(&config.Config{
		EmailEnabled: true,
		SMTPHost:     "127.0.0.1",
		SMTPPort:     1,
		FromEmail:    "noreply@example.com",
		FromName:     "Fleet",
	})
	require.NotNil(t, es.send)

	err := es.SendWelcomeEmail("ana@example.com", "Ana")
	assert.ErrorContains(t, err, "failed to send welcome email")
}
