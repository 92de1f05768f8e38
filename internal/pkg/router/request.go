package router

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/shandysiswandi/regmail/internal/pkg/goerror"
)

// Request wraps http.Request with helpers for inbound handlers.
type Request struct {
	// Request is the underlying http.Request.
	*http.Request

	w http.ResponseWriter
}

// GetParam reads a path parameter from the request context (as stored by httprouter).
func (r *Request) GetParam(key string) string {
	return httprouter.ParamsFromContext(r.Context()).ByName(key)
}

type decodeOptions struct {
	allowUnknown bool
}

// DecodeOption tweaks DecodeBody.
type DecodeOption func(*decodeOptions)

// AllowUnknownFields accepts JSON objects carrying keys dst does not declare.
// Form webhooks usually post more fields than an endpoint reads.
func AllowUnknownFields() DecodeOption {
	return func(o *decodeOptions) { o.allowUnknown = true }
}

// DecodeBody decodes a single JSON value from the body into dst. Unknown
// fields are rejected unless AllowUnknownFields is given.
func (r *Request) DecodeBody(dst any, opts ...DecodeOption) error {
	if r == nil || r.Body == nil {
		return goerror.NewInvalidFormat()
	}

	var o decodeOptions
	for _, opt := range opts {
		opt(&o)
	}

	dec := json.NewDecoder(r.Body)
	if !o.allowUnknown {
		dec.DisallowUnknownFields()
	}

	if err := dec.Decode(dst); err != nil {
		return goerror.NewInvalidFormat()
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return goerror.NewInvalidFormat()
	}

	return nil
}

// File is a streamed multipart file part.
type File struct {
	io.ReadCloser
	// Name is the client-supplied filename, unsanitized.
	Name string
	// ContentType is the part's declared media type.
	ContentType string
}

// StreamSingleFile returns the first multipart file matching the form field
// name. When maxBytes is positive the whole request body is capped at that
// size; reading past it fails with an error that IsTooLarge reports.
func (r *Request) StreamSingleFile(name string, maxBytes int64) (*File, error) {
	ct := r.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "multipart/form-data") {
		return nil, goerror.NewInvalidFormat("Invalid request content-type")
	}

	if maxBytes > 0 && r.w != nil {
		r.Body = http.MaxBytesReader(r.w, r.Body, maxBytes)
	}

	mr, err := r.MultipartReader()
	if err != nil {
		return nil, goerror.NewInvalidFormat()
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return nil, goerror.NewInvalidFormat()
		}
		if err != nil {
			if IsTooLarge(err) {
				return nil, goerror.NewTooLarge()
			}
			return nil, goerror.NewInvalidFormat()
		}

		if part.FormName() == name && part.FileName() != "" {
			return &File{ReadCloser: part, Name: part.FileName(), ContentType: part.Header.Get("Content-Type")}, nil
		}

		if err := discard(part); err != nil {
			if IsTooLarge(err) {
				return nil, goerror.NewTooLarge()
			}
			return nil, goerror.NewInvalidFormat(err.Error())
		}
	}
}

func discard(part *multipart.Part) error {
	_, errCopy := io.Copy(io.Discard, part)
	return errors.Join(errCopy, part.Close())
}

// IsTooLarge reports whether err comes from a body size cap.
func IsTooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe)
}
