// Package gmail sends review notifications through the Gmail API.
package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"google.golang.org/api/gmail/v1"

	"github.com/custodia-labs/tristep/internal/adapters/driven/mail"
	"github.com/custodia-labs/tristep/internal/connectors/google"
	"github.com/custodia-labs/tristep/internal/core/domain"
	"github.com/custodia-labs/tristep/internal/core/ports/driven"
)

// Ensure Mailer implements the interface.
var _ driven.Mailer = (*Mailer)(nil)

// userMe addresses the authenticated account.
const userMe = "me"

// Mailer sends notifications as the authenticated Gmail user.
type Mailer struct {
	svc      *gmail.Service
	from     string
	fromName string
	limiter  *google.RateLimiter
	now      func() time.Time
}

// New creates a Gmail mailer. from must be the authenticated address or
// one of its verified aliases.
func New(svc *gmail.Service, from, fromName string) (*Mailer, error) {
	if err := mail.ValidateAddress(from); err != nil {
		return nil, fmt.Errorf("sender: %w", err)
	}
	if fromName == "" {
		fromName = mail.DefaultFromName
	}
	return &Mailer{
		svc:      svc,
		from:     from,
		fromName: fromName,
		limiter:  google.NewRateLimiter(google.ServiceGmail),
		now:      time.Now,
	}, nil
}

// Transport returns MailTransportGmail.
func (m *Mailer) Transport() domain.MailTransport {
	return domain.MailTransportGmail
}

// Send delivers one notification.
func (m *Mailer) Send(ctx context.Context, n domain.Notification) error {
	if err := mail.ValidateAddress(n.To); err != nil {
		return err
	}
	if err := m.limiter.Wait(ctx); err != nil {
		return err
	}

	raw := mail.BuildMessage(m.from, m.fromName, n, m.now())
	msg := &gmail.Message{Raw: base64.URLEncoding.EncodeToString(raw)}

	if _, err := m.svc.Users.Messages.Send(userMe, msg).Context(ctx).Do(); err != nil {
		return fmt.Errorf("send to %s: %w", n.To, m.limiter.Observe(err))
	}
	return nil
}
