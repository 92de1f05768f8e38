package registration

import (
	"github.com/shandysiswandi/regmail/internal/pkg/config"
	"github.com/shandysiswandi/regmail/internal/pkg/instrument"
	"github.com/shandysiswandi/regmail/internal/pkg/mail"
	"github.com/shandysiswandi/regmail/internal/pkg/router"
	"github.com/shandysiswandi/regmail/internal/pkg/storage"
	"github.com/shandysiswandi/regmail/internal/pkg/uid"
	"github.com/shandysiswandi/regmail/internal/pkg/validator"
	"github.com/shandysiswandi/regmail/internal/registration/inbound"
	"github.com/shandysiswandi/regmail/internal/registration/outbound/artifact"
	"github.com/shandysiswandi/regmail/internal/registration/outbound/email"
	"github.com/shandysiswandi/regmail/internal/registration/outbound/template"
	"github.com/shandysiswandi/regmail/internal/registration/outbound/upload"
	"github.com/shandysiswandi/regmail/internal/registration/usecase"
)

type Dependency struct {
	Router     *router.Router             `validate:"required"`
	Mail       mail.Mail                  `validate:"required"`
	Storage    storage.Storage            `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UID        uid.NumberID               `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	renderer, err := template.New(
		dep.Config.GetString("modules.registration.template.path"),
		dep.Config.GetString("modules.registration.template.engine"),
		dep.Instrument,
	)
	if err != nil {
		return err
	}

	generator := artifact.New(dep.Storage, artifact.Config{
		Bucket: dep.Config.GetString("storage.buckets.artifacts"),
		Size:   dep.Config.GetInt("modules.registration.qr.size"),
		Level:  dep.Config.GetString("modules.registration.qr.level"),
	}, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoArtifact: generator,
		RepoTemplate: renderer,
		RepoMail:     email.New(dep.Mail, dep.Instrument),
		RepoUpload:   upload.New(dep.Storage, dep.Config.GetString("storage.buckets.uploads"), dep.Instrument),
		Validator:    dep.Validator,
		UID:          dep.UID,
		Instrument:   dep.Instrument,
		Config: usecase.Config{
			Subject:   dep.Config.GetString("modules.registration.subject"),
			From:      dep.Config.GetString("modules.registration.from"),
			QREnabled: dep.Config.GetBool("modules.registration.qr.enabled"),
			Workers:   dep.Config.GetInt("modules.registration.workers"),
		},
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc, int64(dep.Config.GetInt("modules.registration.upload.max_bytes")))

	return nil
}
