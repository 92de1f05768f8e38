package mail

import (
	"context"
	"errors"
	"io"
)

var (
	// ErrHostPortRequired is returned when Host/Port are missing.
	ErrHostPortRequired = errors.New("mail host and port are required")
	// ErrCredentialsRequired is returned when the SMTP username or password is missing.
	ErrCredentialsRequired = errors.New("mail username and password are required")
	// ErrNoRecipients is returned when To/Cc/Bcc are all empty.
	ErrNoRecipients = errors.New("no recipients provided")
	// ErrNoClient is returned when an API-backed driver has no client.
	ErrNoClient = errors.New("mail client is required")
	// ErrNoSender is returned when both Message.From and the configured default From are empty.
	ErrNoSender = errors.New("no sender provided")
)

// Attachment is a binary part carried alongside the message body.
type Attachment struct {
	// Filename is the name shown to the recipient.
	Filename string
	// ContentType defaults to a type guessed from Filename.
	ContentType string
	// ContentID, when set (e.g. "<qr_code>"), lets the HTML body reference
	// the part through a cid: URL.
	ContentID string
	// Content is the raw payload.
	Content []byte
}

// Message represents an email payload.
//
// Fields are intentionally provider-agnostic so they can be sent using SMTP or
// other delivery mechanisms.
type Message struct {
	// From is an optional explicit sender; fallback depends on implementation.
	From string
	// To lists required recipients.
	To []string
	// Cc lists carbon copy recipients.
	Cc []string
	// Bcc lists blind carbon copy recipients.
	Bcc []string
	// Subject is the email subject line.
	Subject string
	// TextBody is the plain-text body; preferred when HTMLBody is empty.
	TextBody string
	// HTMLBody is the optional HTML body.
	HTMLBody string
	// Attachments are appended after the body parts.
	Attachments []Attachment
}

// Recipients returns every envelope recipient in To, Cc, Bcc order.
func (m Message) Recipients() []string {
	out := make([]string, 0, len(m.To)+len(m.Cc)+len(m.Bcc))
	out = append(out, m.To...)
	out = append(out, m.Cc...)
	return append(out, m.Bcc...)
}

// Mail abstracts an email provider (SMTP, third-party API, etc).
type Mail interface {
	io.Closer
	// Send dispatches the given message using the underlying provider.
	// Failures are reported as *DeliveryError.
	Send(ctx context.Context, msg Message) error
}
