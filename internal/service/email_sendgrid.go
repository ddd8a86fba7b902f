package service

import (
	"context"
	"fmt"

	"partsphere-backend/internal/config"
	"partsphere-backend/internal/domain"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type sendGridEmailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewSendGridEmailService(cfg config.EmailConfig) EmailService {
	return &sendGridEmailService{
		apiKey:    cfg.SendGrid.APIKey,
		fromEmail: cfg.From,
		fromName:  cfg.FromName,
	}
}

func (s *sendGridEmailService) send(to, subject, plainText string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail("", to)

	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

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

func (s *sendGridEmailService) SendOrderRequestNotification(ctx context.Context, sellerEmail, buyerName, itemTitle string) error {
	subject := fmt.Sprintf("New order request: %s", itemTitle)
	body := fmt.Sprintf("%s has requested your listing '%s'. Log in to approve or decline the request.", buyerName, itemTitle)
	return s.send(sellerEmail, subject, body)
}

func (s *sendGridEmailService) SendOrderApprovalNotification(ctx context.Context, buyerEmail, itemTitle string) error {
	subject := fmt.Sprintf("Order approved: %s", itemTitle)
	body := fmt.Sprintf("Your order request for '%s' was approved. Complete the payment from your wallet to move the order into escrow.", itemTitle)
	return s.send(buyerEmail, subject, body)
}

func (s *sendGridEmailService) SendOrderCompletionNotification(ctx context.Context, email, role, itemTitle string, amount int32) error {
	subject := fmt.Sprintf("Order completed: %s", itemTitle)
	var body string
	if role == "seller" {
		body = fmt.Sprintf("Your order for '%s' is complete. %d has been credited to your wallet.", itemTitle, amount)
	} else {
		body = fmt.Sprintf("Your order for '%s' is complete. %d was released from escrow to the seller.", itemTitle, amount)
	}
	return s.send(email, subject, body)
}

func (s *sendGridEmailService) SendVerificationDecisionNotification(ctx context.Context, email, name string, status domain.VerificationStatus) error {
	subject := "Identity verification update"
	var body string
	if status == domain.VerificationStatusApproved {
		body = fmt.Sprintf("Hello %s, your identity verification has been approved. You can now list equipment and place orders.", name)
	} else {
		body = fmt.Sprintf("Hello %s, your identity verification was rejected. Please re-submit your documents.", name)
	}
	return s.send(email, subject, body)
}
