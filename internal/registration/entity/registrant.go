package entity

import "errors"

var (
	// ErrMissingField is returned when a registrant lacks a name or an email.
	ErrMissingField = errors.New("registration: missing required field")
	// ErrTemplateLoad is returned when the email template cannot be read or parsed.
	ErrTemplateLoad = errors.New("registration: email template could not be loaded")
	// ErrArtifactWrite is returned when the QR artifact cannot be produced or stored.
	ErrArtifactWrite = errors.New("registration: artifact could not be written")
	// ErrInvalidSource is returned when an uploaded registrant table cannot be parsed.
	ErrInvalidSource = errors.New("registration: source is not a valid registrant table")
)

// Registrant is a single person to notify.
type Registrant struct {
	Name  string
	Email string
}

// Complete reports whether both name and email are present.
func (r Registrant) Complete() bool {
	return r.Name != "" && r.Email != ""
}

// Row is a registrant read from an uploaded table. Number is the 1-based data
// row index, the header excluded.
type Row struct {
	Number int
	Registrant
}
