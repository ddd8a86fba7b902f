package service

import (
	"context"
	"fmt"

	"partsphere-backend/internal/config"
	"partsphere-backend/internal/domain"
	"partsphere-backend/internal/logger"

	"gopkg.in/gomail.v2"
)

// NewEmailService picks the backend named by the email.provider setting.
// "off" yields a no-op sender so the rest of the app never branches on
// whether email is configured.
func NewEmailService(cfg config.EmailConfig) EmailService {
	switch cfg.Provider {
	case "smtp":
		return &smtpEmailService{cfg: cfg}
	case "sendgrid":
		return NewSendGridEmailService(cfg)
	default:
		return &noopEmailService{}
	}
}

type smtpEmailService struct {
	cfg config.EmailConfig
}

func (s *smtpEmailService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.cfg.SMTP.Host, s.cfg.SMTP.Port, s.cfg.SMTP.User, s.cfg.SMTP.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email via gomail: %w", err)
	}
	return nil
}

func (s *smtpEmailService) SendOrderRequestNotification(ctx context.Context, sellerEmail, buyerName, itemTitle string) error {
	subject := fmt.Sprintf("New order request: %s", itemTitle)
	body := fmt.Sprintf("Hello,\n\n%s has requested your listing '%s'.\n\nLog in to approve or decline the request.\n\nBest regards,\nThe PartSphere Team", buyerName, itemTitle)
	return s.send(sellerEmail, subject, body)
}

func (s *smtpEmailService) SendOrderApprovalNotification(ctx context.Context, buyerEmail, itemTitle string) error {
	subject := fmt.Sprintf("Order approved: %s", itemTitle)
	body := fmt.Sprintf("Hello,\n\nYour order request for '%s' was approved by the seller.\n\nComplete the payment from your wallet to move the order into escrow.\n\nBest regards,\nThe PartSphere Team", itemTitle)
	return s.send(buyerEmail, subject, body)
}

func (s *smtpEmailService) SendOrderCompletionNotification(ctx context.Context, email, role, itemTitle string, amount int32) error {
	subject := fmt.Sprintf("Order completed: %s", itemTitle)
	var body string
	if role == "seller" {
		body = fmt.Sprintf("Hello,\n\nYour order for '%s' is complete. %d has been credited to your wallet.\n\nBest regards,\nThe PartSphere Team", itemTitle, amount)
	} else {
		body = fmt.Sprintf("Hello,\n\nYour order for '%s' is complete. %d was released from escrow to the seller.\n\nBest regards,\nThe PartSphere Team", itemTitle, amount)
	}
	return s.send(email, subject, body)
}

func (s *smtpEmailService) SendVerificationDecisionNotification(ctx context.Context, email, name string, status domain.VerificationStatus) error {
	subject := "Identity verification update"
	var body string
	if status == domain.VerificationStatusApproved {
		body = fmt.Sprintf("Hello %s,\n\nYour identity verification has been approved. You can now list equipment and place orders.\n\nBest regards,\nThe PartSphere Team", name)
	} else {
		body = fmt.Sprintf("Hello %s,\n\nYour identity verification was rejected. Please re-submit your documents.\n\nBest regards,\nThe PartSphere Team", name)
	}
	return s.send(email, subject, body)
}

// noopEmailService drops every notification. Used when email.provider is
// "off", which is the default in development.
type noopEmailService struct{}

func (s *noopEmailService) SendOrderRequestNotification(ctx context.Context, sellerEmail, buyerName, itemTitle string) error {
	logger.Get().Debug("email disabled, dropping order request notification", "to", sellerEmail)
	return nil
}

func (s *noopEmailService) SendOrderApprovalNotification(ctx context.Context, buyerEmail, itemTitle string) error {
	logger.Get().Debug("email disabled, dropping order approval notification", "to", buyerEmail)
	return nil
}

func (s *noopEmailService) SendOrderCompletionNotification(ctx context.Context, email, role, itemTitle string, amount int32) error {
	logger.Get().Debug("email disabled, dropping order completion notification", "to", email)
	return nil
}

func (s *noopEmailService) SendVerificationDecisionNotification(ctx context.Context, email, name string, status domain.VerificationStatus) error {
	logger.Get().Debug("email disabled, dropping verification decision notification", "to", email)
	return nil
}
