package app

import (
	"context"
	"testing"

	"github.com/shandysiswandi/regmail/internal/pkg/config"
	"github.com/shandysiswandi/regmail/internal/pkg/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var mailEnv = []string{
	"MAIL_DRIVER", "MAIL_HOST", "MAIL_PORT", "MAIL_FROM", "MAIL_USERNAME", "MAIL_PASSWORD",
	"SENDER_EMAIL", "SENDER_PASSWORD", "SMTP_SERVER", "SMTP_PORT",
}

func newEnvConfig(t *testing.T, env map[string]string) config.Config {
	t.Helper()

	for _, k := range mailEnv {
		t.Setenv(k, "")
	}
	for k, v := range env {
		t.Setenv(k, v)
	}

	cfg, err := config.NewViper("", configOptions()...)
	require.NoError(t, err)
	return cfg
}

func TestNewMail(t *testing.T) {
	credentials := map[string]string{"SENDER_EMAIL": "events@example.com", "SENDER_PASSWORD": "app-password"}

	with := func(extra map[string]string) map[string]string {
		out := map[string]string{}
		for k, v := range credentials {
			out[k] = v
		}
		for k, v := range extra {
			out[k] = v
		}
		return out
	}

	tests := []struct {
		name    string
		env     map[string]string
		wantErr error
	}{
		{name: "NoRelay", env: credentials, wantErr: mail.ErrHostPortRequired},
		{name: "NoPort", env: with(map[string]string{"SMTP_SERVER": "smtp.example.com"}), wantErr: mail.ErrHostPortRequired},
		{name: "NoPassword", env: map[string]string{"SENDER_EMAIL": "events@example.com", "SMTP_SERVER": "smtp.example.com", "SMTP_PORT": "465"}, wantErr: mail.ErrCredentialsRequired},
		{name: "Complete", env: with(map[string]string{"SMTP_SERVER": "smtp.example.com", "SMTP_PORT": "465"})},
		{name: "CanonicalNames", env: with(map[string]string{"MAIL_HOST": "smtp.example.com", "MAIL_PORT": "587", "MAIL_SSL": "false"})},
		{name: "SESWithoutSender", env: map[string]string{"MAIL_DRIVER": "ses"}, wantErr: mail.ErrNoSender},
		{name: "UnknownDriver", env: with(map[string]string{"MAIL_DRIVER": "pigeon"}), wantErr: errUnknownMailDriver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newEnvConfig(t, tt.env)

			m, err := newMail(context.Background(), cfg)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, m)
		})
	}
}
