// Package mail sends MIME email through a pluggable relay.
//
// Callers build a Message, with inline attachments referenced by Content-ID,
// and hand it to a Mail. SMTP opens one encrypted, authenticated session per
// message; SES submits the same MIME document through the AWS API. Failures
// come back as *DeliveryError whose Kind is ErrAuthentication, ErrNetwork or
// ErrProtocol.
package mail
