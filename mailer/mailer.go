// Package mailer defines the email transport contract consumed by the auth
// subsystem and ships a Resend-backed implementation. Failures are surfaced
// to the caller and never retried here.
package mailer

import "context"

// Message is a single outbound mail.
type Message struct {
	From    string
	To      string
	Subject string
	HTML    string
}

// Receipt identifies a dispatched message at the transport.
type Receipt struct {
	ID string
}

// Mailer is the transport contract.
type Mailer interface {
	Send(ctx context.Context, msg Message) (Receipt, error)
}
