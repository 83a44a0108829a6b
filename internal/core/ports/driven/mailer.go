package driven

import (
	"context"

	"github.com/custodia-labs/tristep/internal/core/domain"
)

// Mailer delivers plaintext notifications.
type Mailer interface {
	// Transport identifies the delivery mechanism.
	Transport() domain.MailTransport

	// Send delivers one notification.
	// Returns ErrInvalidRecipient for a malformed address.
	Send(ctx context.Context, n domain.Notification) error
}
