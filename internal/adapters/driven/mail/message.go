// Package mail holds what the notification mailers share: recipient
// validation and RFC 5322 message rendering.
package mail

import (
	"fmt"
	"mime"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/custodia-labs/tristep/internal/core/domain"
)

// DefaultFromName is used when no display name is configured.
const DefaultFromName = "TRISTEP Admin"

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidateAddress checks addr is a single well-formed email address.
func ValidateAddress(addr string) error {
	if err := getValidator().Var(addr, "required,email"); err != nil {
		return fmt.Errorf("%w: %q", domain.ErrInvalidRecipient, addr)
	}
	return nil
}

// BuildMessage renders a plaintext notification with headers.
func BuildMessage(from, fromName string, n domain.Notification, date time.Time) []byte {
	if fromName == "" {
		fromName = DefaultFromName
	}
	sender := mail.Address{Name: fromName, Address: from}
	recipient := mail.Address{Name: n.FullName, Address: n.To}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", sender.String())
	fmt.Fprintf(&msg, "To: %s\r\n", recipient.String())
	fmt.Fprintf(&msg, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", n.Subject))
	fmt.Fprintf(&msg, "Date: %s\r\n", date.Format(time.RFC1123Z))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("Content-Transfer-Encoding: 8bit\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(normaliseNewlines(n.Body))

	return []byte(msg.String())
}

// normaliseNewlines converts bare LF line endings to CRLF.
func normaliseNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\n", "\r\n")
}
