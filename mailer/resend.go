package mailer

import (
	"context"
	"errors"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// ResendMailer sends mail through the Resend HTTP API.
type ResendMailer struct {
	client *resend.Client
}

// NewResendMailer creates a ResendMailer.
func NewResendMailer(apiKey string) (*ResendMailer, error) {
	if apiKey == "" {
		return nil, errors.New("resend api key required")
	}
	return &ResendMailer{client: resend.NewClient(apiKey)}, nil
}

// Send dispatches one message. The returned Receipt carries the Resend
// message id.
func (m *ResendMailer) Send(ctx context.Context, msg Message) (Receipt, error) {
	sent, err := m.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    msg.From,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
	})
	if err != nil {
		return Receipt{}, fmt.Errorf("resend send: %w", err)
	}
	return Receipt{ID: sent.Id}, nil
}
