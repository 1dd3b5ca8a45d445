// File: /services/email_service.go
package services

import (
	"fmt"
	"html"
	"log/slog"
	"strings"
	"time"

	"fleetexpense-api/config"

	"gopkg.in/gomail.v2"
)

// TaxReminder is one expiring tax line in a reminder email.
type TaxReminder struct {
	VehicleName string
	TaxType     string
	ValidTo     time.Time
	Amount      float64
}

type EmailService struct {
	config *config.Config
	send   func(m *gomail.Message) error
}

// NewEmailService sends through SMTP when email is enabled and only logs
// the outgoing message otherwise.
func NewEmailService(cfg *config.Config) *EmailService {
	es := &EmailService{config: cfg}

	if cfg.EmailEnabled {
		dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
		es.send = func(m *gomail.Message) error {
			return dialer.DialAndSend(m)
		}
	} else {
		es.send = func(m *gomail.Message) error {
			slog.Info("Email disabled, not sending",
				"to", m.GetHeader("To"),
				"subject", m.GetHeader("Subject"))
			return nil
		}
	}

	return es
}

func (es *EmailService) newMessage(to, subject string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(es.config.FromEmail, es.config.FromName))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	return m
}

// SendWelcomeEmail greets a newly created account.
func (es *EmailService) SendWelcomeEmail(email, name string) error {
	m := es.newMessage(email, es.config.FromName+" - Your account is ready")

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
    <h2>Hello %s!</h2>
    <p>An account has been created for you on %s.</p>
    <p>You can now sign in with <strong>%s</strong> and start logging refueling, service, accessory and tax expenses for your vehicles.</p>
    <p><small>This is an automated email, please do not reply.</small></p>
</body>
</html>`, html.EscapeString(name), html.EscapeString(es.config.FromName), html.EscapeString(email))

	textBody := fmt.Sprintf(`Hello %s!

An account has been created for you on %s.
You can now sign in with %s and start logging expenses for your vehicles.

This is an automated email, please do not reply.
`, name, es.config.FromName, email)

	m.SetBody("text/plain", textBody)
	m.AddAlternative("text/html", htmlBody)

	if err := es.send(m); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}

	slog.Info("Welcome email sent", "to", email)
	return nil
}

// SendTaxReminderEmail lists the user's taxes that are about to expire.
func (es *EmailService) SendTaxReminderEmail(email, name string, reminders []TaxReminder) error {
	if len(reminders) == 0 {
		return nil
	}

	m := es.newMessage(email, es.config.FromName+" - Vehicle taxes expiring soon")

	var rows, lines strings.Builder
	for _, r := range reminders {
		date := r.ValidTo.Format("2006-01-02")
		fmt.Fprintf(&rows, "<tr><td>%s</td><td>%s</td><td>%s</td><td>%.2f</td></tr>",
			html.EscapeString(r.VehicleName), html.EscapeString(r.TaxType), date, r.Amount)
		fmt.Fprintf(&lines, "- %s: %s valid until %s (%.2f)\n", r.VehicleName, r.TaxType, date, r.Amount)
	}

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
    <h2>Hello %s,</h2>
    <p>The following vehicle taxes expire soon:</p>
    <table cellpadding="6" border="1" style="border-collapse: collapse;">
        <tr><th>Vehicle</th><th>Tax</th><th>Valid until</th><th>Amount</th></tr>
        %s
    </table>
    <p><small>This is an automated email, please do not reply.</small></p>
</body>
</html>`, html.EscapeString(name), rows.String())

	textBody := fmt.Sprintf("Hello %s,\n\nThe following vehicle taxes expire soon:\n\n%s\nThis is an automated email, please do not reply.\n",
		name, lines.String())

	m.SetBody("text/plain", textBody)
	m.AddAlternative("text/html", htmlBody)

	if err := es.send(m); err != nil {
		return fmt.Errorf("failed to send tax reminder email: %w", err)
	}

	slog.Info("Tax reminder email sent", "to", email, "taxes", len(reminders))
	return nil
}
