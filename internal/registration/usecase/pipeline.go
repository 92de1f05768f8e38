package usecase

import (
	"context"

	"github.com/shandysiswandi/regmail/internal/registration/entity"
)

// deliver runs the per-registrant pipeline: artifact, body, message, send.
// The first failing step ends the pipeline and its error is returned as is.
func (s *Usecase) deliver(ctx context.Context, r entity.Registrant) error {
	ctx, span := s.startSpan(ctx, "deliver")
	defer span.End()

	var art *entity.Artifact
	if s.cfg.QREnabled {
		a, err := s.repoArtifact.Generate(ctx, r.Name, r.Email)
		if err != nil {
			return err
		}
		art = a
	}

	html, err := s.repoTemplate.Render(ctx, r.Name)
	if err != nil {
		return err
	}

	return s.repoMail.Send(ctx, s.Compose(r, html, art))
}
