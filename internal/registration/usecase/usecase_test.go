package usecase

import (
	"context"
	"testing"

	"github.com/shandysiswandi/regmail/internal/pkg/instrument"
	"github.com/shandysiswandi/regmail/internal/pkg/mail"
	"github.com/shandysiswandi/regmail/internal/pkg/validator"
	"github.com/shandysiswandi/regmail/internal/registration/entity"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockArtifact struct{ mock.Mock }

func (m *mockArtifact) Generate(ctx context.Context, name, email string) (*entity.Artifact, error) {
	args := m.Called(ctx, name, email)
	a, _ := args.Get(0).(*entity.Artifact)
	return a, args.Error(1)
}

type mockTemplate struct{ mock.Mock }

func (m *mockTemplate) Render(ctx context.Context, name string) (string, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Error(1)
}

type mockMail struct{ mock.Mock }

func (m *mockMail) Send(ctx context.Context, msg mail.Message) error {
	return m.Called(ctx, msg).Error(0)
}

type mockUpload struct{ mock.Mock }

func (m *mockUpload) Save(ctx context.Context, filename string, data []byte) (string, error) {
	args := m.Called(ctx, filename, data)
	return args.String(0), args.Error(1)
}

type fixedUID int64

func (f fixedUID) Generate() int64 { return int64(f) }

type deps struct {
	artifact *mockArtifact
	template *mockTemplate
	mail     *mockMail
	upload   *mockUpload
}

func (d deps) assert(t *testing.T) {
	t.Helper()

	d.artifact.AssertExpectations(t)
	d.template.AssertExpectations(t)
	d.mail.AssertExpectations(t)
	d.upload.AssertExpectations(t)
}

func newTestUsecase(t *testing.T, cfg Config) (*Usecase, deps) {
	t.Helper()

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	d := deps{
		artifact: new(mockArtifact),
		template: new(mockTemplate),
		mail:     new(mockMail),
		upload:   new(mockUpload),
	}

	if cfg.Subject == "" {
		cfg.Subject = "Your Gen AI Masterclass Registration Confirmation"
	}

	uc := New(Dependency{
		RepoArtifact: d.artifact,
		RepoTemplate: d.template,
		RepoMail:     d.mail,
		RepoUpload:   d.upload,
		Validator:    v,
		UID:          fixedUID(42),
		Instrument:   instrument.NewNoop(),
		Config:       cfg,
	})

	return uc, d
}

func sentTo(email string) any {
	return mock.MatchedBy(func(m mail.Message) bool {
		return len(m.To) == 1 && m.To[0] == email
	})
}
