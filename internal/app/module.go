package app

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/regmail/internal/registration"
)

func (a *App) initModules() {
	if err := registration.New(registration.Dependency{
		Router:     a.router,
		Mail:       a.mail,
		Storage:    a.storage,
		Config:     a.config,
		Instrument: a.ins,
		UID:        a.uid,
		Validator:  a.validator,
	}); err != nil {
		slog.Error("failed to init module registration", "error", err)
		os.Exit(1)
	}
}
