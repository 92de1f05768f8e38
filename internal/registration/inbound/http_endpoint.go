package inbound

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/shandysiswandi/regmail/internal/pkg/goerror"
	"github.com/shandysiswandi/regmail/internal/pkg/router"
	"github.com/shandysiswandi/regmail/internal/registration/usecase"
)

// HTTPEndpoint exposes the registration mailer over HTTP.
type HTTPEndpoint struct {
	uc             uc
	maxUploadBytes int64
}

// Index serves the upload form.
func (h *HTTPEndpoint) Index(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, indexPage); err != nil {
		slog.Error("failed to write index page", "error", err)
	}
}

// SendEmails accepts a multipart upload in field "file" holding a Name/Email
// table and mails every complete row.
func (h *HTTPEndpoint) SendEmails(r *router.Request) (any, error) {
	f, err := r.StreamSingleFile("file", h.maxUploadBytes)
	if err != nil {
		if isTooLarge(err) {
			return nil, err
		}
		return nil, goerror.NewInvalidFormat("No file uploaded")
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.WarnContext(r.Context(), "failed to close uploaded file", "error", err)
		}
	}()

	content, err := io.ReadAll(f)
	if err != nil {
		if router.IsTooLarge(err) {
			return nil, goerror.NewTooLarge()
		}
		return nil, goerror.NewInvalidFormat("No file uploaded")
	}

	resp, err := h.uc.ProcessBatch(r.Context(), usecase.ProcessBatchInput{
		Filename: secureFilename(f.Name),
		Content:  content,
	})
	if err != nil {
		return nil, err
	}

	return SendEmailsResponse{
		BatchID: strconv.FormatInt(resp.BatchID, 10),
		Total:   resp.Total,
		Sent:    resp.Sent,
		Failed:  resp.Failed,
		Skipped: resp.Skipped,
		message: resp.Message,
	}, nil
}

// SendEmail mails a single registrant posted as {"Name": ..., "Email": ...}.
// Unknown fields are ignored so form webhooks can post their full payload.
func (h *HTTPEndpoint) SendEmail(r *router.Request) (any, error) {
	var req SendEmailRequest
	if err := r.DecodeBody(&req, router.AllowUnknownFields()); err != nil {
		return nil, err
	}

	if err := h.uc.ProcessOne(r.Context(), usecase.ProcessOneInput{
		Name:  req.Name,
		Email: req.Email,
	}); err != nil {
		return nil, err
	}

	return SendEmailResponse{Status: "success", Email: req.Email}, nil
}

func isTooLarge(err error) bool {
	var gerr *goerror.Error
	return errors.As(err, &gerr) && gerr.Code() == goerror.CodeTooLarge
}
