package service

import (
	"context"
	"fmt"
	"strings"

	"campuspool-backend/internal/domain"

	"gopkg.in/gomail.v2"
)

type smtpEmailService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewSMTPEmailService creates the SMTP-backed mailer.
func NewSMTPEmailService(host string, port int, username, password, from string) EmailService {
	return &smtpEmailService{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

func (s *smtpEmailService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *smtpEmailService) SendJoinRequestNotification(ctx context.Context, ownerEmail, requesterName, carpoolTitle string) error {
	subject := fmt.Sprintf("New request to join \"%s\"", carpoolTitle)
	body := joinRequestBody(requesterName, carpoolTitle)
	return s.send(ownerEmail, subject, body)
}

func (s *smtpEmailService) SendJoinDecisionNotification(ctx context.Context, requesterEmail, carpoolTitle string, decision domain.JoinRequestStatus) error {
	subject := fmt.Sprintf("Your request to join \"%s\" was %s", carpoolTitle, decision)
	body := decisionBody(carpoolTitle, decision)
	return s.send(requesterEmail, subject, body)
}

func (s *smtpEmailService) SendPassengerRemovedNotification(ctx context.Context, removedEmail, carpoolTitle, ownerName string) error {
	subject := fmt.Sprintf("You were removed from \"%s\"", carpoolTitle)
	body := removedBody(carpoolTitle, ownerName)
	return s.send(removedEmail, subject, body)
}

func (s *smtpEmailService) SendPendingDigest(ctx context.Context, ownerEmail string, items []PendingDigestItem) error {
	subject := fmt.Sprintf("You have %d pending carpool requests", len(items))
	return s.send(ownerEmail, subject, digestBody(items))
}

func joinRequestBody(requesterName, carpoolTitle string) string {
	return fmt.Sprintf(
		"Hello,\n\n%s has requested to join your carpool \"%s\".\n\nSign in to review the request.\n\nCampus Carpool",
		requesterName, carpoolTitle)
}

func decisionBody(carpoolTitle string, decision domain.JoinRequestStatus) string {
	return fmt.Sprintf(
		"Hello,\n\nYour request to join \"%s\" was %s.\n\nSign in to see the details.\n\nCampus Carpool",
		carpoolTitle, decision)
}

func removedBody(carpoolTitle, ownerName string) string {
	who := "the owner"
	if ownerName != "" {
		who = ownerName
	}
	return fmt.Sprintf(
		"Hello,\n\nYou were removed from the carpool \"%s\" by %s.\n\nYou may request to join again if a seat opens up.\n\nCampus Carpool",
		carpoolTitle, who)
}

func digestBody(items []PendingDigestItem) string {
	var b strings.Builder
	b.WriteString("Hello,\n\nThese join requests are waiting on your decision:\n\n")
	for _, item := range items {
		fmt.Fprintf(&b, "  - %s wants to join \"%s\" (departs %s)\n", item.RequesterName, item.CarpoolTitle, item.DepartureDate)
	}
	b.WriteString("\nSign in to approve or reject them before departure.\n\nCampus Carpool")
	return b.String()
}
