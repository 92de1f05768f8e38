package mail

import (
	"context"
	"crypto/tls"
	"log/slog"
	"time"

	gomail "gopkg.in/mail.v2"
)

type dialer interface {
	Dial() (gomail.SendCloser, error)
}

// SMTPConfig configures the SMTP implementation.
type SMTPConfig struct {
	// Host is the SMTP server hostname.
	Host string
	// Port is the SMTP server port.
	Port int
	// Username is the SMTP authentication username.
	Username string
	// Password is the SMTP authentication password.
	Password string
	// From is the default sender when Message.From is empty.
	From string
	// SSL selects implicit TLS. When false the session is upgraded with a
	// mandatory STARTTLS instead, so the exchange is always encrypted.
	SSL bool
	// Timeout bounds dialing and each command round trip.
	Timeout time.Duration
}

// SMTP is a Mail implementation backed by gopkg.in/mail.v2.
//
// Every Send opens its own authenticated session and closes it afterwards;
// nothing is pooled between messages.
type SMTP struct {
	dialer      dialer
	defaultFrom string
}

// NewSMTP constructs an SMTP mail sender.
func NewSMTP(cfg SMTPConfig) (*SMTP, error) {
	if cfg.Host == "" || cfg.Port == 0 {
		return nil, ErrHostPortRequired
	}
	if cfg.Username == "" || cfg.Password == "" {
		return nil, ErrCredentialsRequired
	}
	if cfg.From == "" {
		return nil, ErrNoSender
	}

	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.SSL = cfg.SSL
	d.TLSConfig = &tls.Config{ServerName: cfg.Host, MinVersion: tls.VersionTLS12}
	if !cfg.SSL {
		d.StartTLSPolicy = gomail.MandatoryStartTLS
	}
	if cfg.Timeout > 0 {
		d.Timeout = cfg.Timeout
	}

	return &SMTP{dialer: d, defaultFrom: cfg.From}, nil
}

// Send delivers a message over SMTP. Every failure is a *DeliveryError: a
// cancelled ctx is ErrNetwork and a message without sender or recipients is
// ErrProtocol.
func (s *SMTP) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return newDeliveryError(ErrNetwork, err)
	}

	from, recipients, err := envelope(msg, s.defaultFrom)
	if err != nil {
		return newDeliveryError(ErrProtocol, err)
	}

	m := buildMessage(from, msg)

	sc, err := s.dialer.Dial()
	if err != nil {
		return classifyDial(err)
	}
	defer func() {
		if err := sc.Close(); err != nil {
			slog.WarnContext(ctx, "smtp session close failed", "error", err)
		}
	}()

	if err := sc.Send(from, recipients, m); err != nil {
		return classifySend(err)
	}

	return nil
}

// Close implements io.Closer for interface compatibility.
func (s *SMTP) Close() error {
	return nil
}
