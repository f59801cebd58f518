// Package email sends the SLA digest to the sales lead mailbox. With no
// SendGrid key configured the mail is logged instead, which keeps local
// development working without credentials.
package email

import (
	"fmt"
	"log"
	"strings"

	"github.com/rhicrm/rhi-backend/pkg/models"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Service handles email sending.
type Service struct {
	apiKey    string
	fromEmail string
	fromName  string
}

// NewService creates a new email service. An empty apiKey enables the
// log-only mode.
func NewService(apiKey, fromEmail, fromName string) *Service {
	return &Service{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

// SendSLADigest mails the list of Red-tier clients whose callback window
// lapsed.
func (s *Service) SendSLADigest(toEmail string, overdue []models.Client) error {
	if len(overdue) == 0 {
		return nil
	}

	subject := fmt.Sprintf("%d client(s) overdue for callback", len(overdue))
	body := buildDigestBody(overdue)

	if s.apiKey == "" {
		log.Printf("📧 [EMAIL] SLA digest to: %s", toEmail)
		log.Printf("   Subject: %s", subject)
		log.Printf("   %s", strings.ReplaceAll(body, "\n", "\n   "))
		return nil
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail("", toEmail)
	message := mail.NewSingleEmail(from, subject, to, body, "")

	client := sendgrid.NewSendClient(s.apiKey)
	resp, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send SLA digest: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid rejected SLA digest: status %d", resp.StatusCode)
	}

	return nil
}

func buildDigestBody(overdue []models.Client) string {
	var b strings.Builder
	b.WriteString("The following Red-tier clients have had no contact for over 24 hours:\n\n")
	for _, c := range overdue {
		b.WriteString(fmt.Sprintf("- %s (plot %s, file %s), last contact %s\n",
			c.Name, c.Plot, c.FileNumber,
			c.LastInteraction.Format("2006-01-02 15:04")))
	}
	b.WriteString("\nPlease schedule callbacks today.\n")
	return b.String()
}
