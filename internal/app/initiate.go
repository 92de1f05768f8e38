package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"strings"

	gcs "cloud.google.com/go/storage"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/shandysiswandi/regmail/internal/pkg/config"
	"github.com/shandysiswandi/regmail/internal/pkg/instrument"
	"github.com/shandysiswandi/regmail/internal/pkg/mail"
	"github.com/shandysiswandi/regmail/internal/pkg/router"
	"github.com/shandysiswandi/regmail/internal/pkg/storage"
	"github.com/shandysiswandi/regmail/internal/pkg/uid"
	"github.com/shandysiswandi/regmail/internal/pkg/validator"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
)

var errUnknownMailDriver = errors.New("unknown mail driver")

func (a *App) initConfig() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("failed to load env file", "path", envFile, "error", err)
		os.Exit(1)
	}

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "./config/config.yaml"
	}

	cfg, err := config.NewViper(path, configOptions()...)
	if err != nil {
		slog.Error("failed to init config", "error", err)
		os.Exit(1)
	}

	a.config = cfg
}

func (a *App) initInstrument() {
	ins, err := instrument.New(context.Background(), &instrument.Config{
		Enabled:          a.config.GetBool("instrument.enabled"),
		ServiceName:      a.config.GetString("instrument.service_name"),
		ServiceVersion:   a.config.GetString("instrument.service_version"),
		Environment:      a.config.GetString("instrument.env"),
		OTLPEndpoint:     a.config.GetString("instrument.otlp_endpoint"),
		OTLPSecure:       a.config.GetBool("instrument.otlp_secure"),
		TraceSampleRatio: a.config.GetFloat64("instrument.trace_sample_ratio"),
		MetricsInterval:  a.config.GetSecond("instrument.metric_interval_seconds"),
		MaskFields:       a.config.GetArray("instrument.log_mask_fields"),
		LogLevel:         a.config.GetString("instrument.log_level"),
	})
	if err != nil {
		slog.Error("failed to init instrumentation", "error", err)
		os.Exit(1)
	}
	a.ins = ins
}

func (a *App) initLibraries() {
	a.uuid = uid.NewUUID()

	validator, err := validator.NewV10Validator()
	if err != nil {
		slog.Error("failed to init validation v10 validator", "error", err)
		os.Exit(1)
	}
	a.validator = validator

	snow, err := uid.NewSnowflake(int64(a.config.GetInt("app.node_id")))
	if err != nil {
		slog.Error("failed to init uid number snowflake", "error", err)
		os.Exit(1)
	}
	a.uid = snow
}

func (a *App) initMail() {
	m, err := newMail(a.ctx, a.config)
	if err != nil {
		slog.Error("failed to init mail", "driver", a.config.GetString("mail.driver"), "error", err)
		os.Exit(1)
	}
	a.mail = m
}

func newMail(ctx context.Context, cfg config.Config) (mail.Mail, error) {
	from := strings.TrimSpace(cfg.GetString("mail.from"))

	switch driver := strings.ToLower(strings.TrimSpace(cfg.GetString("mail.driver"))); driver {
	case "ses":
		if from == "" {
			return nil, mail.ErrNoSender
		}

		awsCfg, err := storage.LoadAWSConfig(ctx,
			strings.TrimSpace(cfg.GetString("mail.ses.region")),
			strings.TrimSpace(cfg.GetString("mail.ses.endpoint")),
			strings.TrimSpace(cfg.GetString("mail.ses.access_key")),
			strings.TrimSpace(cfg.GetString("mail.ses.secret_key")),
			strings.TrimSpace(cfg.GetString("mail.ses.session_token")),
		)
		if err != nil {
			return nil, err
		}

		return mail.NewSES(ses.NewFromConfig(awsCfg), from)

	case "smtp", "":
		return mail.NewSMTP(mail.SMTPConfig{
			Host:     strings.TrimSpace(cfg.GetString("mail.host")),
			Port:     cfg.GetInt("mail.port"),
			Username: strings.TrimSpace(cfg.GetString("mail.username")),
			Password: cfg.GetString("mail.password"),
			From:     from,
			SSL:      cfg.GetBool("mail.ssl"),
			Timeout:  cfg.GetSecond("mail.timeout_seconds"),
		})

	default:
		return nil, fmt.Errorf("%w: %s", errUnknownMailDriver, driver)
	}
}

//nolint:gocognit // it's fine
func (a *App) initStorage() {
	driver := strings.TrimSpace(a.config.GetString("storage.driver"))

	var gcsClient *gcs.Client
	if driver == storage.DriverGCS {
		gcsOptions := []option.ClientOption{}
		if a.config.GetBool("storage.gcs.without_auth") {
			gcsOptions = append(gcsOptions, option.WithoutAuthentication())
		}
		if v := strings.TrimSpace(a.config.GetString("storage.gcs.credentials_file")); v != "" {
			// #nosec G304 -- path is from trusted config file.
			credsJSON, err := os.ReadFile(v)
			if err != nil {
				slog.Error("failed to read gcs credentials file", "error", err)
				os.Exit(1)
			}
			creds, err := google.CredentialsFromJSON(a.ctx, credsJSON, gcs.ScopeReadWrite)
			if err != nil {
				slog.Error("failed to parse gcs credentials file", "error", err)
				os.Exit(1)
			}
			gcsOptions = append(gcsOptions, option.WithCredentials(creds))
		}
		if v := a.config.GetBinary("storage.gcs.credentials_json"); len(v) > 0 {
			creds, err := google.CredentialsFromJSON(a.ctx, v, gcs.ScopeReadWrite)
			if err != nil {
				slog.Error("failed to parse gcs credentials json", "error", err)
				os.Exit(1)
			}
			gcsOptions = append(gcsOptions, option.WithCredentials(creds))
		}
		if v := strings.TrimSpace(a.config.GetString("storage.gcs.endpoint")); v != "" {
			gcsOptions = append(gcsOptions, option.WithEndpoint(v))
		}
		if len(gcsOptions) > 0 {
			client, err := gcs.NewClient(a.ctx, gcsOptions...)
			if err != nil {
				slog.Error("failed to init gcs client", "error", err)
				os.Exit(1)
			}
			gcsClient = client
		}
	}

	stg, err := storage.NewFromDriver(a.ctx, driver, storage.FactoryOptions{
		Local: storage.LocalOptions{
			Root: strings.TrimSpace(a.config.GetString("storage.local.root")),
		},
		S3: storage.S3Options{
			Region:       strings.TrimSpace(a.config.GetString("storage.s3.region")),
			Endpoint:     strings.TrimSpace(a.config.GetString("storage.s3.endpoint")),
			AccessKey:    strings.TrimSpace(a.config.GetString("storage.s3.access_key")),
			SecretKey:    strings.TrimSpace(a.config.GetString("storage.s3.secret_key")),
			SessionToken: strings.TrimSpace(a.config.GetString("storage.s3.session_token")),
			UsePathStyle: a.config.GetBool("storage.s3.use_path_style"),
		},
		GCS: storage.GCSOptions{
			Client: gcsClient,
		},
		MinIO: storage.MinIOOptions{
			Region:        strings.TrimSpace(a.config.GetString("storage.minio.region")),
			Endpoint:      strings.TrimSpace(a.config.GetString("storage.minio.endpoint")),
			AccessKey:     strings.TrimSpace(a.config.GetString("storage.minio.access_key")),
			SecretKey:     strings.TrimSpace(a.config.GetString("storage.minio.secret_key")),
			SessionToken:  strings.TrimSpace(a.config.GetString("storage.minio.session_token")),
			UseSSL:        a.config.GetBool("storage.minio.use_ssl"),
			CreateBuckets: a.config.GetBool("storage.minio.create_buckets"),
		},
	})
	if err != nil {
		slog.Error("failed to init storage", "error", err)
		os.Exit(1)
	}

	a.storage = stg
}

func (a *App) initHTTPServer() {
	a.router = router.NewRouter(router.Config{
		UUID:        a.uuid,
		Instrument:  a.ins,
		MaskFields:  a.config.GetArray("instrument.log_mask_fields"),
		Maintenance: a.config.GetArray("app.maintenance.endpoints"),
	})

	routerWithCORS := cors.New(cors.Options{
		AllowedOrigins: a.config.GetArray("app.server.cors"),
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"*"},
	}).Handler(a.router)

	a.httpServer = &http.Server{
		Addr:              a.config.GetString("app.server.http.address"),
		Handler:           routerWithCORS,
		ReadTimeout:       a.config.GetSecond("app.server.http.read_timeout_seconds"),
		ReadHeaderTimeout: a.config.GetSecond("app.server.http.read_header_timeout_seconds"),
		WriteTimeout:      a.config.GetSecond("app.server.http.write_timeout_seconds"),
		IdleTimeout:       a.config.GetSecond("app.server.http.idle_timeout_seconds"),
	}
}

func (a *App) initClosers() {
	a.closers = []struct {
		name string
		fn   func(context.Context) error
	}{
		{
			name: "Mail",
			fn: func(context.Context) error {
				return a.mail.Close()
			},
		},
		{
			name: "Storage",
			fn: func(context.Context) error {
				return a.storage.Close()
			},
		},
		{
			name: "Config",
			fn: func(context.Context) error {
				return a.config.Close()
			},
		},
		{
			name: "Instrument",
			fn: func(ctx context.Context) error {
				return a.ins.Shutdown(ctx)
			},
		},
	}
}
