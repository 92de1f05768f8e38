package app

import (
	"context"
	"net/http"

	"github.com/shandysiswandi/regmail/internal/pkg/config"
	"github.com/shandysiswandi/regmail/internal/pkg/instrument"
	"github.com/shandysiswandi/regmail/internal/pkg/mail"
	"github.com/shandysiswandi/regmail/internal/pkg/router"
	"github.com/shandysiswandi/regmail/internal/pkg/storage"
	"github.com/shandysiswandi/regmail/internal/pkg/uid"
	"github.com/shandysiswandi/regmail/internal/pkg/validator"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	validator validator.Validator
	uid       uid.NumberID
	uuid      uid.StringID

	// resources
	mail    mail.Mail
	storage storage.Storage

	// server
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initMail()
	app.initStorage()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
