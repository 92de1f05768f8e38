package mail

import (
	"errors"
	"net"
	"net/textproto"

	"github.com/aws/smithy-go"
)

// Sentinels for the delivery failure kinds. Match with errors.Is.
var (
	ErrAuthentication = errors.New("mail relay rejected credentials")
	ErrNetwork        = errors.New("mail relay unreachable")
	ErrProtocol       = errors.New("mail relay refused message")
)

// DeliveryError reports why a message could not be handed to the relay.
type DeliveryError struct {
	// Kind is one of ErrAuthentication, ErrNetwork or ErrProtocol.
	Kind error
	Err  error
}

func (e *DeliveryError) Error() string {
	if e.Err == nil {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + e.Err.Error()
}

// Unwrap exposes both the kind and the cause to errors.Is/As.
func (e *DeliveryError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newDeliveryError(kind, err error) error {
	return &DeliveryError{Kind: kind, Err: err}
}

// classifyDial maps an error from connecting and authenticating.
func classifyDial(err error) error {
	var tpErr *textproto.Error
	if errors.As(err, &tpErr) {
		if tpErr.Code >= 530 && tpErr.Code <= 535 {
			return newDeliveryError(ErrAuthentication, err)
		}
		return newDeliveryError(ErrProtocol, err)
	}

	return newDeliveryError(ErrNetwork, err)
}

// classifySend maps an error from the MAIL/RCPT/DATA exchange.
func classifySend(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return newDeliveryError(ErrNetwork, err)
	}

	return newDeliveryError(ErrProtocol, err)
}

var sesAuthCodes = map[string]struct{}{
	"AccessDenied":                {},
	"AccessDeniedException":       {},
	"InvalidClientTokenId":        {},
	"SignatureDoesNotMatch":       {},
	"UnrecognizedClientException": {},
	"ExpiredToken":                {},
}

// classifyAPI maps an error returned by the SES client.
func classifyAPI(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		if _, ok := sesAuthCodes[apiErr.ErrorCode()]; ok {
			return newDeliveryError(ErrAuthentication, err)
		}
		return newDeliveryError(ErrProtocol, err)
	}

	return newDeliveryError(ErrNetwork, err)
}
