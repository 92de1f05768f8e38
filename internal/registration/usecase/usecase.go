package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/regmail/internal/pkg/instrument"
	"github.com/shandysiswandi/regmail/internal/pkg/mail"
	"github.com/shandysiswandi/regmail/internal/pkg/uid"
	"github.com/shandysiswandi/regmail/internal/pkg/validator"
	"github.com/shandysiswandi/regmail/internal/registration/entity"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

type repoArtifact interface {
	Generate(ctx context.Context, name, email string) (*entity.Artifact, error)
}

type repoTemplate interface {
	Render(ctx context.Context, name string) (string, error)
}

type repoMail interface {
	Send(ctx context.Context, msg mail.Message) error
}

type repoUpload interface {
	Save(ctx context.Context, filename string, data []byte) (string, error)
}

// Config holds the fixed parts of every outgoing message and the batch
// settings.
type Config struct {
	// Subject is used for every message.
	Subject string
	// From overrides the mail driver's default sender when set.
	From string
	// QREnabled attaches a QR code to every message.
	QREnabled bool
	// Workers is the number of rows delivered concurrently. Values below two
	// process the batch sequentially.
	Workers int
}

type Usecase struct {
	repoArtifact repoArtifact
	repoTemplate repoTemplate
	repoMail     repoMail
	repoUpload   repoUpload
	validator    validator.Validator
	uid          uid.NumberID
	ins          instrument.Instrumentation
	cfg          Config

	outcomes metric.Int64Counter
}

type Dependency struct {
	RepoArtifact repoArtifact
	RepoTemplate repoTemplate
	RepoMail     repoMail
	RepoUpload   repoUpload
	Validator    validator.Validator
	UID          uid.NumberID
	Instrument   instrument.Instrumentation
	Config       Config
}

func New(dep Dependency) *Usecase {
	outcomes, err := dep.Instrument.Meter("registration.usecase").Int64Counter(
		"registration.rows",
		metric.WithDescription("Number of registrant rows processed, by outcome"),
	)
	if err != nil {
		slog.Error("failed to create registration row counter", "error", err)
	}

	return &Usecase{
		repoArtifact: dep.RepoArtifact,
		repoTemplate: dep.RepoTemplate,
		repoMail:     dep.RepoMail,
		repoUpload:   dep.RepoUpload,
		validator:    dep.Validator,
		uid:          dep.UID,
		ins:          dep.Instrument,
		cfg:          dep.Config,
		outcomes:     outcomes,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("registration.usecase").Start(ctx, name)
}
