package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/regmail/internal/pkg/goerror"
	"github.com/shandysiswandi/regmail/internal/registration/entity"
)

type ProcessOneInput struct {
	Name  string `validate:"required"`
	Email string `validate:"required"`
}

// ProcessOne runs the pipeline for a single registrant and reports the first
// failure to the caller. Delivery runs to completion even when ctx is
// cancelled.
func (s *Usecase) ProcessOne(ctx context.Context, in ProcessOneInput) error {
	ctx, span := s.startSpan(context.WithoutCancel(ctx), "ProcessOne")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewMissingField(errors.Join(entity.ErrMissingField, err))
	}

	if err := s.deliver(ctx, entity.Registrant{Name: in.Name, Email: in.Email}); err != nil {
		slog.ErrorContext(ctx, "failed to send email", "email", in.Email, "error", err)
		s.count(ctx, entity.OutcomeStatusFailed)
		return goerror.NewServer(err, "Failed to send email")
	}

	slog.InfoContext(ctx, "email sent", "email", in.Email)
	s.count(ctx, entity.OutcomeStatusSent)

	return nil
}
