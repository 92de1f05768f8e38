package usecase

import (
	"github.com/shandysiswandi/regmail/internal/pkg/mail"
	"github.com/shandysiswandi/regmail/internal/registration/entity"
)

// Compose builds the outgoing message for one registrant. The address is used
// as given; a nil artifact produces a message without attachments.
func (s *Usecase) Compose(r entity.Registrant, html string, a *entity.Artifact) mail.Message {
	msg := mail.Message{
		From:     s.cfg.From,
		To:       []string{r.Email},
		Subject:  s.cfg.Subject,
		HTMLBody: html,
	}

	if a != nil {
		msg.Attachments = []mail.Attachment{{
			Filename:    entity.ArtifactFilename,
			ContentType: entity.ArtifactContentType,
			ContentID:   entity.ArtifactContentID,
			Content:     a.Content,
		}}
	}

	return msg
}
