package service

import (
	"context"
	"fmt"

	"stepline-backend/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
	baseURL   string
}

func NewEmailService(apiKey, fromEmail, fromName, baseURL string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
		baseURL:   baseURL,
	}
}

// acceptLink builds the emailed acceptance URL. The shape is load-bearing:
// emailed links must keep working across deploys.
func (s *emailService) acceptLink(token string, projectID int32) string {
	return fmt.Sprintf("%s/invite/accept?token=%s&project=%d", s.baseURL, token, projectID)
}

func (s *emailService) SendInvitation(ctx context.Context, email, inviterName, projectName, token string, projectID int32) error {
	subject := fmt.Sprintf("%s invited you to join %s", inviterName, projectName)
	link := s.acceptLink(token, projectID)
	plainText := fmt.Sprintf("%s has invited you to collaborate on the project %q.\n\nAccept the invitation here:\n\n%s\n\nThe invitation expires in 7 days.", inviterName, projectName, link)
	htmlContent := fmt.Sprintf(`
		<html>
			<body>
				<h2>You have been invited</h2>
				<p><strong>%s</strong> has invited you to collaborate on <strong>%s</strong>.</p>
				<p><a href="%s">Accept invitation</a></p>
				<p>The invitation expires in 7 days.</p>
			</body>
		</html>
	`, inviterName, projectName, link)

	return s.send(ctx, "SendInvitation", email, subject, plainText, htmlContent)
}

func (s *emailService) SendInvitationReminder(ctx context.Context, email, projectName, token string, projectID int32) error {
	subject := fmt.Sprintf("Reminder: your invitation to %s expires soon", projectName)
	link := s.acceptLink(token, projectID)
	plainText := fmt.Sprintf("Your invitation to join the project %q expires within the next two days.\n\nAccept it here:\n\n%s", projectName, link)
	htmlContent := fmt.Sprintf(`
		<html>
			<body>
				<p>Your invitation to join <strong>%s</strong> expires within the next two days.</p>
				<p><a href="%s">Accept invitation</a></p>
			</body>
		</html>
	`, projectName, link)

	return s.send(ctx, "SendInvitationReminder", email, subject, plainText, htmlContent)
}

func (s *emailService) send(ctx context.Context, operation, to, subject, plainText, htmlContent string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent)

	logger.ExternalServiceCall("sendgrid", operation, "to", to)
	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		logger.ExternalServiceResult("sendgrid", operation, err, "to", to)
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		err := fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
		logger.ExternalServiceResult("sendgrid", operation, err, "to", to)
		return err
	}

	logger.ExternalServiceResult("sendgrid", operation, nil, "to", to)
	return nil
}
