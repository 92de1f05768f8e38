package entity

import "strings"

const (
	// ArtifactContentID is the Content-ID the email template refers to as cid:qr_code.
	ArtifactContentID = "<qr_code>"
	// ArtifactFilename is the attachment name shown to recipients.
	ArtifactFilename = "qr_code.png"
	// ArtifactContentType is the media type of every generated artifact.
	ArtifactContentType = "image/png"
)

var safeNameReplacer = strings.NewReplacer(" ", "_", "@", "_at_")

// Artifact is a stored QR code image for one registrant.
type Artifact struct {
	Key      string
	Location string
	Content  []byte
}

// ArtifactKey returns the storage key for a registrant's QR code. The same
// inputs always map to the same key, so a later run overwrites the file.
func ArtifactKey(name, email string) string {
	return safeNameReplacer.Replace(name) + "_" + email + ".png"
}

// ArtifactPayload returns the text encoded into the QR code.
func ArtifactPayload(name, email string) string {
	return "Name: " + name + "\nEmail: " + email
}
