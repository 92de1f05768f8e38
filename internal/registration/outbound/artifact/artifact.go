package artifact

import (
	"bytes"
	"context"
	"errors"
	"strings"

	"github.com/shandysiswandi/regmail/internal/pkg/instrument"
	"github.com/shandysiswandi/regmail/internal/pkg/storage"
	"github.com/shandysiswandi/regmail/internal/registration/entity"
	"github.com/skip2/go-qrcode"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Config controls where and how QR codes are produced.
type Config struct {
	// Bucket is the storage bucket artifacts are written to.
	Bucket string
	// Size is the image width in pixels. A negative value is the size of one
	// QR module in pixels and lets the image grow with the payload.
	Size int
	// Level is the error correction level: low, medium, high or highest.
	Level string
}

type Generator struct {
	store  storage.Storage
	bucket string
	size   int
	level  qrcode.RecoveryLevel
	ins    instrument.Instrumentation
}

func New(store storage.Storage, cfg Config, ins instrument.Instrumentation) *Generator {
	size := cfg.Size
	if size == 0 {
		size = -10
	}

	return &Generator{
		store:  store,
		bucket: cfg.Bucket,
		size:   size,
		level:  ParseLevel(cfg.Level),
		ins:    ins,
	}
}

// ParseLevel maps a level name to a recovery level. Unknown names fall back
// to medium.
func ParseLevel(s string) qrcode.RecoveryLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return qrcode.Low
	case "high":
		return qrcode.High
	case "highest":
		return qrcode.Highest
	default:
		return qrcode.Medium
	}
}

// Generate encodes the registrant into a PNG QR code and stores it under its
// deterministic key, replacing any previous image.
func (g *Generator) Generate(ctx context.Context, name, email string) (_ *entity.Artifact, err error) {
	ctx, span := g.ins.Tracer("registration.outbound.artifact").Start(ctx, "Generate")
	defer func() { endSpan(span, err) }()

	png, err := qrcode.Encode(entity.ArtifactPayload(name, email), g.level, g.size)
	if err != nil {
		return nil, errors.Join(entity.ErrArtifactWrite, err)
	}

	key := entity.ArtifactKey(name, email)
	span.SetAttributes(attribute.String("artifact.key", key))

	info, err := g.store.PutObject(ctx, g.bucket, key, bytes.NewReader(png), storage.PutOptions{
		Size:        int64(len(png)),
		ContentType: entity.ArtifactContentType,
	})
	if err != nil {
		return nil, errors.Join(entity.ErrArtifactWrite, err)
	}

	return &entity.Artifact{Key: key, Location: info.Location, Content: png}, nil
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
