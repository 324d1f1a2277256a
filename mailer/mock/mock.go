// Package mock provides an in-memory Mailer for tests: it records every
// message and can be told to fail.
package mock

import (
	"context"
	"fmt"
	"sync"

	"github.com/MrEthical07/shopAuth/mailer"
)

// Mailer records sent messages. The zero value is ready to use and safe for
// concurrent senders.
type Mailer struct {
	mu       sync.Mutex
	messages []mailer.Message
	failWith error
}

// FailWith makes every subsequent Send return err. Pass nil to restore
// normal behavior.
func (m *Mailer) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWith = err
}

// Sent returns a copy of all recorded messages in send order.
func (m *Mailer) Sent() []mailer.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]mailer.Message, len(m.messages))
	copy(out, m.messages)
	return out
}

// Send records msg, or fails when FailWith was set.
func (m *Mailer) Send(_ context.Context, msg mailer.Message) (mailer.Receipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return mailer.Receipt{}, m.failWith
	}
	m.messages = append(m.messages, msg)
	return mailer.Receipt{ID: fmt.Sprintf("mock-%d", len(m.messages))}, nil
}
