// Package smtp delivers notifications over SMTP with STARTTLS and PLAIN auth.
package smtp

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/tristep/internal/adapters/driven/mail"
	"github.com/custodia-labs/tristep/internal/core/domain"
	"github.com/custodia-labs/tristep/internal/core/ports/driven"
)

// Ensure Mailer implements the interface.
var _ driven.Mailer = (*Mailer)(nil)

// DefaultTimeout bounds connection setup.
const DefaultTimeout = 30 * time.Second

// Mailer sends notifications through an SMTP relay such as smtp.gmail.com:587.
type Mailer struct {
	settings domain.MailSettings
	timeout  time.Duration
	now      func() time.Time

	// requireTLS refuses to authenticate without STARTTLS.
	requireTLS bool
}

// New creates an SMTP mailer. Settings must have Host, Port and From.
func New(settings domain.MailSettings) (*Mailer, error) {
	if settings.Host == "" || settings.Port <= 0 {
		return nil, fmt.Errorf("%w: smtp host and port are required", domain.ErrMailerUnavailable)
	}
	if err := mail.ValidateAddress(settings.From); err != nil {
		return nil, fmt.Errorf("sender: %w", err)
	}
	return &Mailer{
		settings:   settings,
		timeout:    DefaultTimeout,
		now:        time.Now,
		requireTLS: true,
	}, nil
}

// Transport returns MailTransportSMTP.
func (m *Mailer) Transport() domain.MailTransport {
	return domain.MailTransportSMTP
}

// Send delivers one notification.
func (m *Mailer) Send(ctx context.Context, n domain.Notification) error {
	if err := mail.ValidateAddress(n.To); err != nil {
		return err
	}

	msg := mail.BuildMessage(m.settings.From, m.settings.FromName, n, m.now())
	if err := m.send(ctx, n.To, msg); err != nil {
		return classifyError(err)
	}
	return nil
}

func (m *Mailer) send(ctx context.Context, to string, msg []byte) error {
	addr := net.JoinHostPort(m.settings.Host, strconv.Itoa(m.settings.Port))

	dialer := &net.Dialer{Timeout: m.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", addr, err)
	}
	defer func() { _ = conn.Close() }()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, m.settings.Host)
	if err != nil {
		return fmt.Errorf("create smtp client: %w", err)
	}
	defer func() { _ = client.Close() }()

	if ok, _ := client.Extension("STARTTLS"); ok {
		tlsConfig := &tls.Config{
			ServerName: m.settings.Host,
			MinVersion: tls.VersionTLS12,
		}
		if err := client.StartTLS(tlsConfig); err != nil {
			return fmt.Errorf("start tls: %w", err)
		}
	} else if m.requireTLS && m.settings.Username != "" {
		return fmt.Errorf("%w: %s does not offer STARTTLS", domain.ErrMailerUnavailable, addr)
	}

	if m.settings.Username != "" && m.settings.Password != "" {
		auth := smtp.PlainAuth("", m.settings.Username, m.settings.Password, m.settings.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp authentication failed: %w", err)
		}
	}

	if err := client.Mail(m.settings.From); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("start message: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close message: %w", err)
	}

	// The message is accepted once DATA closes.
	_ = client.Quit()
	return nil
}

// classifyError marks connection and authentication failures as the
// transport being unavailable, so callers can tell them from a bad recipient.
func classifyError(err error) error {
	if errors.Is(err, domain.ErrMailerUnavailable) {
		return err
	}

	var netErr net.Error
	msg := err.Error()
	switch {
	case errors.As(err, &netErr),
		strings.Contains(msg, "connect"),
		strings.Contains(msg, "authentication"),
		strings.Contains(msg, "tls"):
		return fmt.Errorf("%w: %v", domain.ErrMailerUnavailable, err)
	case strings.Contains(msg, "recipient"):
		return fmt.Errorf("%w: %v", domain.ErrInvalidRecipient, err)
	default:
		return err
	}
}
