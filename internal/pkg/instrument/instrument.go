package instrument

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// Instrumentation hands out tracers and meters. Components take it as a
// constructor argument; NewNoop serves tests and disabled deployments.
type Instrumentation interface {
	Tracer(name string) trace.Tracer
	Meter(name string) metric.Meter
	Shutdown(ctx context.Context) error
}

// Config drives OpenTelemetry initialization.
type Config struct {
	Enabled          bool
	ServiceName      string
	ServiceVersion   string
	Environment      string
	OTLPEndpoint     string
	OTLPSecure       bool
	TraceSampleRatio float64
	MetricsInterval  time.Duration
	// MaskFields lists log attribute keys printed as "***".
	MaskFields []string
	// LogLevel is one of debug, info, warn or error. Empty means info.
	LogLevel string
}

type providers struct {
	tp *sdktrace.TracerProvider
	mp *sdkmetric.MeterProvider
	lp *sdklog.LoggerProvider
}

// New installs the slog default logger and, when cfg.Enabled, exports
// traces, metrics and logs over OTLP gRPC. A nil cfg yields a noop.
func New(ctx context.Context, cfg *Config) (Instrumentation, error) {
	if cfg == nil {
		return NewNoop(), nil
	}
	if !cfg.Enabled {
		initLogging(cfg.ServiceName, cfg.LogLevel, nil, cfg.MaskFields)
		return NewNoop(), nil
	}

	res, err := resource.New(ctx, resource.WithAttributes(
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
		attribute.String("env", cfg.Environment),
	))
	if err != nil {
		return nil, err
	}

	p, err := newProviders(ctx, cfg, res)
	if err != nil {
		return nil, err
	}

	initLogging(cfg.ServiceName, cfg.LogLevel, p.lp, cfg.MaskFields)
	return p, nil
}

func newProviders(ctx context.Context, cfg *Config, res *resource.Resource) (*providers, error) {
	tOpts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint)}
	mOpts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(cfg.OTLPEndpoint)}
	lOpts := []otlploggrpc.Option{otlploggrpc.WithEndpoint(cfg.OTLPEndpoint)}
	if !cfg.OTLPSecure {
		tOpts = append(tOpts, otlptracegrpc.WithInsecure())
		mOpts = append(mOpts, otlpmetricgrpc.WithInsecure())
		lOpts = append(lOpts, otlploggrpc.WithInsecure())
	}

	te, err := otlptracegrpc.New(ctx, tOpts...)
	if err != nil {
		return nil, err
	}
	me, err := otlpmetricgrpc.New(ctx, mOpts...)
	if err != nil {
		return nil, err
	}
	le, err := otlploggrpc.New(ctx, lOpts...)
	if err != nil {
		return nil, err
	}

	ratio := min(max(cfg.TraceSampleRatio, 0), 1)

	return &providers{
		tp: sdktrace.NewTracerProvider(
			sdktrace.WithResource(res),
			sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))),
			sdktrace.WithBatcher(te),
		),
		mp: sdkmetric.NewMeterProvider(
			sdkmetric.WithResource(res),
			sdkmetric.WithReader(sdkmetric.NewPeriodicReader(me, sdkmetric.WithInterval(cfg.MetricsInterval))),
		),
		lp: sdklog.NewLoggerProvider(
			sdklog.WithResource(res),
			sdklog.WithProcessor(sdklog.NewBatchProcessor(le)),
		),
	}, nil
}

func (p *providers) Tracer(name string) trace.Tracer { return p.tp.Tracer(name) }

func (p *providers) Meter(name string) metric.Meter { return p.mp.Meter(name) }

// Shutdown flushes pending spans, metrics and log records.
func (p *providers) Shutdown(ctx context.Context) error {
	return errors.Join(p.tp.Shutdown(ctx), p.mp.Shutdown(ctx), p.lp.Shutdown(ctx))
}

type noop struct {
	tp trace.TracerProvider
	mp metric.MeterProvider
}

// NewNoop returns an Instrumentation whose spans and instruments discard
// everything.
func NewNoop() Instrumentation {
	return noop{tp: tracenoop.NewTracerProvider(), mp: metricnoop.NewMeterProvider()}
}

func (n noop) Tracer(name string) trace.Tracer { return n.tp.Tracer(name) }

func (n noop) Meter(name string) metric.Meter { return n.mp.Meter(name) }

func (noop) Shutdown(context.Context) error { return nil }
