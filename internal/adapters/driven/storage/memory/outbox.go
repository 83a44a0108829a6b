package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/tristep/internal/core/domain"
	"github.com/custodia-labs/tristep/internal/core/ports/driven"
)

// Ensure Outbox implements the interface.
var _ driven.Mailer = (*Outbox)(nil)

// Outbox is a driven.Mailer that keeps notifications instead of sending them.
// It backs the "none" transport and tests.
type Outbox struct {
	mu   sync.RWMutex
	sent []domain.Notification
	err  error
}

// NewOutbox creates an empty outbox.
func NewOutbox() *Outbox {
	return &Outbox{}
}

// FailWith makes every subsequent Send return err. Pass nil to clear.
func (o *Outbox) FailWith(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.err = err
}

// Transport returns MailTransportNone.
func (o *Outbox) Transport() domain.MailTransport {
	return domain.MailTransportNone
}

// Send stores the notification.
func (o *Outbox) Send(_ context.Context, n domain.Notification) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.err != nil {
		return o.err
	}
	o.sent = append(o.sent, n)
	return nil
}

// Sent returns the stored notifications in send order.
func (o *Outbox) Sent() []domain.Notification {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return append([]domain.Notification(nil), o.sent...)
}
