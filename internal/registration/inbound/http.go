package inbound

import (
	"context"
	"net/http"

	"github.com/shandysiswandi/regmail/internal/pkg/router"
	"github.com/shandysiswandi/regmail/internal/registration/usecase"
)

type uc interface {
	ProcessBatch(ctx context.Context, in usecase.ProcessBatchInput) (*usecase.ProcessBatchOutput, error)
	ProcessOne(ctx context.Context, in usecase.ProcessOneInput) error
}

// RegisterHTTPEndpoint mounts the upload page, the batch upload endpoint and
// the single-record webhook. maxUploadBytes caps the upload request body; zero
// disables the cap.
func RegisterHTTPEndpoint(r *router.Router, uc uc, maxUploadBytes int64) {
	end := &HTTPEndpoint{uc: uc, maxUploadBytes: maxUploadBytes}

	r.GETRaw("/", http.HandlerFunc(end.Index))
	r.POST("/send-emails", end.SendEmails)
	r.POST("/api/v1/registration/send-email", end.SendEmail)
}
