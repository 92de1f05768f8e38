package mail

import (
	"bytes"
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// SESClient is the subset of *ses.Client used by SES.
type SESClient interface {
	SendRawEmail(ctx context.Context, params *ses.SendRawEmailInput, optFns ...func(*ses.Options)) (*ses.SendRawEmailOutput, error)
}

// SES is a Mail implementation that hands raw MIME messages to Amazon SES.
type SES struct {
	client      SESClient
	defaultFrom string
}

// NewSES wraps an SES client. from is the default sender.
func NewSES(client SESClient, from string) (*SES, error) {
	if client == nil {
		return nil, ErrNoClient
	}

	return &SES{client: client, defaultFrom: from}, nil
}

// Send builds the same MIME document as the SMTP driver and submits it with
// SendRawEmail, so inline attachments keep their Content-ID. Failures are
// classified the same way as the SMTP driver.
func (s *SES) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return newDeliveryError(ErrNetwork, err)
	}

	from, recipients, err := envelope(msg, s.defaultFrom)
	if err != nil {
		return newDeliveryError(ErrProtocol, err)
	}

	var buf bytes.Buffer
	if _, err := buildMessage(from, msg).WriteTo(&buf); err != nil {
		return newDeliveryError(ErrProtocol, err)
	}

	_, err = s.client.SendRawEmail(ctx, &ses.SendRawEmailInput{
		Source:       aws.String(from),
		Destinations: recipients,
		RawMessage:   &types.RawMessage{Data: buf.Bytes()},
	})
	if err != nil {
		return classifyAPI(err)
	}

	return nil
}

// Close implements io.Closer for interface compatibility.
func (s *SES) Close() error {
	return nil
}
