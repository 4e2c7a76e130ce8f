package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"impactecho-backend/internal/logger"
)

// mailSender is the part of the SendGrid client the service uses.
type mailSender interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

type sendGridEmailService struct {
	client    mailSender
	fromEmail string
	fromName  string
}

// NewEmailService sends through SendGrid when apiKey is set and only logs
// the message otherwise.
func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	if apiKey == "" {
		logger.Warn("SendGrid API key not configured, identifier e-mails will be logged only")
		return logEmailService{}
	}
	return &sendGridEmailService{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func identifierMessage(contactName, orgName, uniqueID string) (subject, plain, html string) {
	subject = "Your ImpactEcho organization ID"
	plain = fmt.Sprintf("Hello %s,\n\nThe registration for %s has been approved.\n\nYour organization ID is: %s\n\nUse it once to create your login credentials.\n\nThe ImpactEcho Team",
		contactName, orgName, uniqueID)
	html = fmt.Sprintf("<p>Hello %s,</p><p>The registration for <strong>%s</strong> has been approved.</p><p>Your organization ID is: <code>%s</code></p><p>Use it once to create your login credentials.</p><p>The ImpactEcho Team</p>",
		mailEscape(contactName), mailEscape(orgName), uniqueID)
	return subject, plain, html
}

func (s *sendGridEmailService) SendIdentifier(ctx context.Context, email, contactName, orgName, uniqueID string) error {
	subject, plain, html := identifierMessage(contactName, orgName, uniqueID)
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(contactName, email)
	message := mail.NewSingleEmail(from, subject, to, plain, html)

	logger.ExternalServiceCall("sendgrid", "send", "to", email)
	response, err := s.client.SendWithContext(ctx, message)
	if err == nil && response.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	logger.ExternalServiceResult("sendgrid", "send", err, "to", email)
	if err != nil {
		return fmt.Errorf("failed to send identifier email: %w", err)
	}
	return nil
}

type logEmailService struct{}

func (logEmailService) SendIdentifier(ctx context.Context, email, contactName, orgName, uniqueID string) error {
	logger.InfoContext(ctx, "Identifier e-mail (not sent)", "to", email, "org_name", orgName, "unique_id", uniqueID)
	return nil
}
