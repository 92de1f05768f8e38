package mail

import (
	"io"

	gomail "gopkg.in/mail.v2"
)

func envelope(msg Message, defaultFrom string) (string, []string, error) {
	recipients := msg.Recipients()
	if len(recipients) == 0 {
		return "", nil, ErrNoRecipients
	}

	from := msg.From
	if from == "" {
		from = defaultFrom
	}
	if from == "" {
		return "", nil, ErrNoSender
	}

	return from, recipients, nil
}

// buildMessage renders msg as a MIME message. Bcc is left out of the headers;
// callers pass it on the envelope only.
func buildMessage(from string, msg Message) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", msg.To...)
	if len(msg.Cc) > 0 {
		m.SetHeader("Cc", msg.Cc...)
	}
	m.SetHeader("Subject", msg.Subject)

	switch {
	case msg.TextBody != "" && msg.HTMLBody != "":
		m.SetBody("text/plain", msg.TextBody)
		m.AddAlternative("text/html", msg.HTMLBody)
	case msg.HTMLBody != "":
		m.SetBody("text/html", msg.HTMLBody)
	default:
		m.SetBody("text/plain", msg.TextBody)
	}

	for _, a := range msg.Attachments {
		headers := map[string][]string{}
		if a.ContentType != "" {
			headers["Content-Type"] = []string{a.ContentType + `; name="` + a.Filename + `"`}
		}
		if a.ContentID != "" {
			headers["Content-ID"] = []string{a.ContentID}
		}

		content := a.Content
		m.Attach(a.Filename,
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(content)
				return err
			}),
			gomail.SetHeader(headers),
		)
	}

	return m
}
