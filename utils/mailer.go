package utils

import (
	"fmt"
	"log"
	"os"

	"github.com/keighl/postmark"
)

// Mailer sends status-change notifications to citizens via Postmark.
// When POSTMARK_API_TOKEN is unset the mailer is disabled and every send is a
// silent no-op, so local setups don't need an account.
type Mailer struct {
	client *postmark.Client
}

func NewMailer() *Mailer {
	apiToken := os.Getenv("POSTMARK_API_TOKEN")
	if apiToken == "" {
		log.Println("POSTMARK_API_TOKEN not set, email notifications disabled")
		return &Mailer{}
	}
	return &Mailer{client: postmark.NewClient(apiToken, "")}
}

func (m *Mailer) Enabled() bool { return m.client != nil }

func (m *Mailer) SendEmail(toEmail, subject, htmlContent string) error {
	if m.client == nil {
		return nil
	}
	_, err := m.client.SendEmail(postmark.Email{
		From:     os.Getenv("EMAIL_SENDER"),
		To:       toEmail,
		Subject:  subject,
		HtmlBody: htmlContent,
		TextBody: htmlContent,
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendStatusUpdateEmail tells the complaint's owner their report was resolved
// or rejected.
func (m *Mailer) SendStatusUpdateEmail(toEmail, location, category, status string) error {
	subject := fmt.Sprintf("Your complaint was %s", status)
	htmlContent := fmt.Sprintf(
		"<strong>Hello,</strong><br><br>Your complaint about <strong>%s</strong> at <strong>%s</strong> has been marked <strong>%s</strong> by the city team.<br><br>Thank you for helping improve your city.",
		category,
		location,
		status,
	)
	return m.SendEmail(toEmail, subject, htmlContent)
}
