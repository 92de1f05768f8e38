package usecase

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/samber/lo"
	"github.com/shandysiswandi/regmail/internal/pkg/goerror"
	"github.com/shandysiswandi/regmail/internal/pkg/goroutine"
	"github.com/shandysiswandi/regmail/internal/pkg/stacktrace"
	"github.com/shandysiswandi/regmail/internal/registration/entity"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type ProcessBatchInput struct {
	// Filename is the sanitised upload name; empty means one is generated.
	Filename string
	Content  []byte
}

type ProcessBatchOutput struct {
	BatchID int64
	Message string
	Total   int
	Sent    int
	Failed  int
	Skipped int
}

// ProcessBatch stores the upload, then delivers to every complete row in
// input order. Rows missing a name or an email are skipped. A failing row is
// logged and never stops the batch. A caller that goes away does not stop it
// either: ctx is only used for its values.
func (s *Usecase) ProcessBatch(ctx context.Context, in ProcessBatchInput) (*ProcessBatchOutput, error) {
	ctx, span := s.startSpan(context.WithoutCancel(ctx), "ProcessBatch")
	defer span.End()

	batchID := s.uid.Generate()
	span.SetAttributes(attribute.Int64("batch.id", batchID))

	filename := in.Filename
	if filename == "" {
		filename = strconv.FormatInt(batchID, 10) + ".csv"
	}

	location, err := s.repoUpload.Save(ctx, filename, in.Content)
	if err != nil {
		slog.ErrorContext(ctx, "failed to store uploaded file", "filename", filename, "error", err)
		return nil, goerror.NewServer(err, "Failed to store uploaded file")
	}

	rows, err := entity.ParseRegistrants(bytes.NewReader(in.Content))
	if err != nil {
		slog.WarnContext(ctx, "uploaded file is not a valid registrant table", "location", location, "error", err)
		return nil, goerror.NewInvalidFormat("Invalid registrant file")
	}

	slog.InfoContext(ctx, "batch started", "batch_id", batchID, "location", location, "rows", len(rows), "workers", s.cfg.Workers)

	outcomes := s.runRows(ctx, rows)

	out := &ProcessBatchOutput{
		BatchID: batchID,
		Message: s.completionMessage(),
		Total:   len(outcomes),
		Sent:    lo.CountBy(outcomes, func(o entity.Outcome) bool { return o.Status == entity.OutcomeStatusSent }),
		Failed:  lo.CountBy(outcomes, func(o entity.Outcome) bool { return o.Status == entity.OutcomeStatusFailed }),
		Skipped: lo.CountBy(outcomes, func(o entity.Outcome) bool { return o.Status == entity.OutcomeStatusSkipped }),
	}

	slog.InfoContext(ctx, "batch finished",
		"batch_id", batchID,
		"total", out.Total,
		"sent", out.Sent,
		"failed", out.Failed,
		"skipped", out.Skipped,
	)

	return out, nil
}

func (s *Usecase) completionMessage() string {
	if s.cfg.QREnabled {
		return "All emails sent with QR codes!"
	}
	return "All emails sent!"
}

func (s *Usecase) runRows(ctx context.Context, rows []entity.Row) []entity.Outcome {
	outcomes := make([]entity.Outcome, len(rows))

	if s.cfg.Workers < 2 {
		for i, row := range rows {
			outcomes[i] = s.processRow(ctx, row)
		}
		return outcomes
	}

	gm := goroutine.NewManager(s.cfg.Workers)
	for i, row := range rows {
		started := gm.Go(ctx, func(ctx context.Context) error {
			outcomes[i] = s.processRow(ctx, row)
			return nil
		})
		if !started {
			outcomes[i] = entity.Outcome{Row: row.Number, Email: row.Email, Status: entity.OutcomeStatusFailed, Err: ctx.Err()}
			s.count(ctx, entity.OutcomeStatusFailed)
		}
	}
	if err := gm.Wait(); err != nil {
		slog.ErrorContext(ctx, "batch worker reported an error", "error", err)
	}

	return outcomes
}

func (s *Usecase) processRow(ctx context.Context, row entity.Row) (out entity.Outcome) {
	out = entity.Outcome{Row: row.Number, Email: row.Email}

	if !row.Complete() {
		out.Status = entity.OutcomeStatusSkipped
		slog.DebugContext(ctx, "row skipped", "row", row.Number)
		s.count(ctx, out.Status)
		return out
	}

	defer func() {
		if rvr := recover(); rvr != nil {
			out.Status = entity.OutcomeStatusFailed
			out.Err = fmt.Errorf("panic: %v", rvr)
			slog.ErrorContext(ctx, "failed to send email", "row", row.Number, "email", row.Email, "error", out.Err, "stack", stacktrace.InternalFrames(3))
			s.count(ctx, out.Status)
		}
	}()

	if err := s.deliver(ctx, row.Registrant); err != nil {
		out.Status = entity.OutcomeStatusFailed
		out.Err = err
		slog.ErrorContext(ctx, "failed to send email", "row", row.Number, "email", row.Email, "error", err)
		s.count(ctx, out.Status)
		return out
	}

	out.Status = entity.OutcomeStatusSent
	slog.InfoContext(ctx, "email sent", "row", row.Number, "email", row.Email)
	s.count(ctx, out.Status)

	return out
}

func (s *Usecase) count(ctx context.Context, status entity.OutcomeStatus) {
	if s.outcomes == nil {
		return
	}
	s.outcomes.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", status.String())))
}
