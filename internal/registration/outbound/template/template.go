package template

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	htmltemplate "html/template"
	"os"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/osteele/liquid"
	"github.com/shandysiswandi/regmail/internal/pkg/instrument"
	"github.com/shandysiswandi/regmail/internal/registration/entity"
	"go.opentelemetry.io/otel/codes"
)

const (
	// EngineLiquid renders {{ name }} placeholders. The name is stripped of
	// markup before substitution.
	EngineLiquid = "liquid"
	// EngineHTML renders {{.name}} placeholders with html/template escaping.
	EngineHTML = "html"
)

// ErrUnknownEngine is returned by New for an unsupported engine name.
var ErrUnknownEngine = errors.New("template: unknown engine")

// Renderer produces the personalised HTML body. The template file is read on
// every call, so edits on disk apply to the next message.
type Renderer struct {
	path   string
	engine string
	liquid *liquid.Engine
	policy *bluemonday.Policy
	ins    instrument.Instrumentation
}

func New(path, engine string, ins instrument.Instrumentation) (*Renderer, error) {
	engine = strings.ToLower(strings.TrimSpace(engine))
	if engine == "" {
		engine = EngineLiquid
	}
	if engine != EngineLiquid && engine != EngineHTML {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEngine, engine)
	}

	return &Renderer{
		path:   path,
		engine: engine,
		liquid: liquid.NewEngine(),
		policy: bluemonday.StrictPolicy(),
		ins:    ins,
	}, nil
}

// Render substitutes name into the template. Any read, parse or execution
// failure is reported as entity.ErrTemplateLoad.
func (r *Renderer) Render(ctx context.Context, name string) (string, error) {
	_, span := r.ins.Tracer("registration.outbound.template").Start(ctx, "Render")
	defer span.End()

	out, err := r.render(name)
	if err != nil {
		err = errors.Join(entity.ErrTemplateLoad, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	return out, nil
}

func (r *Renderer) render(name string) (string, error) {
	//nolint:gosec // path comes from trusted configuration
	raw, err := os.ReadFile(r.path)
	if err != nil {
		return "", err
	}

	if r.engine == EngineHTML {
		tpl, err := htmltemplate.New("email").Parse(string(raw))
		if err != nil {
			return "", err
		}

		var buf bytes.Buffer
		if err := tpl.Execute(&buf, map[string]any{"name": name}); err != nil {
			return "", err
		}
		return buf.String(), nil
	}

	tpl, serr := r.liquid.ParseString(string(raw))
	if serr != nil {
		return "", serr
	}

	out, serr := tpl.RenderString(liquid.Bindings{"name": r.policy.Sanitize(name)})
	if serr != nil {
		return "", serr
	}

	return out, nil
}
