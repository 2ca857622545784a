package sendgrid

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Email is a single outbound message. Plain text and HTML bodies are both
// sent so every mail client renders something.
type Email struct {
	To          string
	Subject     string
	Content     string
	HTMLContent string
}

type EmailService interface {
	Send(ctx context.Context, email *Email) error
	GetSendGridClient() *sendgrid.Client
}

type emailService struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey string, fromEmail string, fromName string) EmailService {
	return &emailService{client: sendgrid.NewSendClient(apiKey), fromEmail: fromEmail, fromName: fromName}
}

// Send implements EmailService.
func (e *emailService) Send(ctx context.Context, email *Email) error {

	from := mail.NewEmail(e.fromName, e.fromEmail)
	to := mail.NewEmail("", email.To)

	message := mail.NewV3Mail()
	message.SetFrom(from)

	personalization := mail.NewPersonalization()
	personalization.AddTos(to)
	personalization.Subject = email.Subject
	message.AddPersonalizations(personalization)

	message.AddContent(mail.NewContent("text/plain", email.Content))

	if email.HTMLContent != "" {
		message.AddContent(mail.NewContent("text/html", email.HTMLContent))
	}

	response, err := e.client.SendWithContext(ctx, message)
	if err != nil {
		return err
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send email, status code: %d", response.StatusCode)
	}

	return nil
}

// GetSendGridClient provides access to the internal sendgrid.Client.
func (e *emailService) GetSendGridClient() *sendgrid.Client {
	return e.client
}
