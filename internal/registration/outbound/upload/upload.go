package upload

import (
	"bytes"
	"context"

	"github.com/shandysiswandi/regmail/internal/pkg/instrument"
	"github.com/shandysiswandi/regmail/internal/pkg/storage"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Store keeps a copy of every uploaded registrant table.
type Store struct {
	store  storage.Storage
	bucket string
	ins    instrument.Instrumentation
}

func New(store storage.Storage, bucket string, ins instrument.Instrumentation) *Store {
	return &Store{store: store, bucket: bucket, ins: ins}
}

// Save writes data under filename, replacing an earlier upload with the same
// name, and returns the stored location.
func (s *Store) Save(ctx context.Context, filename string, data []byte) (string, error) {
	ctx, span := s.ins.Tracer("registration.outbound.upload").Start(ctx, "Save")
	defer span.End()

	span.SetAttributes(attribute.String("upload.filename", filename), attribute.Int("upload.size", len(data)))

	info, err := s.store.PutObject(ctx, s.bucket, filename, bytes.NewReader(data), storage.PutOptions{
		Size:        int64(len(data)),
		ContentType: "text/csv",
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	return info.Location, nil
}
