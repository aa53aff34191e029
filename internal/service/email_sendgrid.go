package service

import (
	"context"
	"fmt"

	"campuspool-backend/internal/domain"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type sendGridEmailService struct {
	apiKey   string
	from     string
	fromName string
}

// NewSendGridEmailService creates the SendGrid-backed mailer, selected by
// config for deployments without an SMTP relay.
func NewSendGridEmailService(apiKey, from, fromName string) EmailService {
	return &sendGridEmailService{
		apiKey:   apiKey,
		from:     from,
		fromName: fromName,
	}
}

func (s *sendGridEmailService) send(to, subject, body string) error {
	message := mail.NewSingleEmail(
		mail.NewEmail(s.fromName, s.from),
		subject,
		mail.NewEmail("", to),
		body,
		"",
	)
	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *sendGridEmailService) SendJoinRequestNotification(ctx context.Context, ownerEmail, requesterName, carpoolTitle string) error {
	subject := fmt.Sprintf("New request to join \"%s\"", carpoolTitle)
	return s.send(ownerEmail, subject, joinRequestBody(requesterName, carpoolTitle))
}

func (s *sendGridEmailService) SendJoinDecisionNotification(ctx context.Context, requesterEmail, carpoolTitle string, decision domain.JoinRequestStatus) error {
	subject := fmt.Sprintf("Your request to join \"%s\" was %s", carpoolTitle, decision)
	return s.send(requesterEmail, subject, decisionBody(carpoolTitle, decision))
}

func (s *sendGridEmailService) SendPassengerRemovedNotification(ctx context.Context, removedEmail, carpoolTitle, ownerName string) error {
	subject := fmt.Sprintf("You were removed from \"%s\"", carpoolTitle)
	return s.send(removedEmail, subject, removedBody(carpoolTitle, ownerName))
}

func (s *sendGridEmailService) SendPendingDigest(ctx context.Context, ownerEmail string, items []PendingDigestItem) error {
	subject := fmt.Sprintf("You have %d pending carpool requests", len(items))
	return s.send(ownerEmail, subject, digestBody(items))
}
