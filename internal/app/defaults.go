package app

import (
	"github.com/shandysiswandi/regmail/internal/pkg/config"
	"github.com/shandysiswandi/regmail/internal/pkg/storage"
)

var defaults = map[string]any{
	"app.node_id":                                 -1,
	"app.server.http.address":                     ":8080",
	"app.server.http.read_timeout_seconds":        30,
	"app.server.http.read_header_timeout_seconds": 5,
	"app.server.http.write_timeout_seconds":       300,
	"app.server.http.idle_timeout_seconds":        60,
	"instrument.enabled":                          false,
	"instrument.service_name":                     "regmail",
	"instrument.log_level":                        "info",
	"instrument.log_mask_fields":                  "password,authorization,cookie",
	"instrument.trace_sample_ratio":               1.0,
	"instrument.metric_interval_seconds":          15,
	"mail.driver":                                 "smtp",
	"mail.ssl":                                    true,
	"mail.timeout_seconds":                        30,
	"storage.driver":                              storage.DriverLocal,
	"storage.local.root":                          ".",
	"storage.buckets.artifacts":                   "qrcodes",
	"storage.buckets.uploads":                     "uploads",
	"modules.registration.subject":                "Your Gen AI Masterclass Registration Confirmation",
	"modules.registration.qr.enabled":             true,
	"modules.registration.qr.size":                -10,
	"modules.registration.qr.level":               "medium",
	"modules.registration.template.path":          "templates/email_template.html",
	"modules.registration.template.engine":        "liquid",
	"modules.registration.workers":                1,
	"modules.registration.upload.max_bytes":       10 << 20,
}

// mail.host and mail.port have no default: a deployment must name its relay.

// configOptions keeps the variable names used by existing deployments working
// next to the canonical MAIL_* names.
func configOptions() []config.Option {
	return []config.Option{
		config.WithDefaults(defaults),
		config.WithEnvAlias("mail.from", "SENDER_EMAIL"),
		config.WithEnvAlias("mail.username", "SENDER_EMAIL"),
		config.WithEnvAlias("mail.password", "SENDER_PASSWORD"),
		config.WithEnvAlias("mail.host", "SMTP_SERVER"),
		config.WithEnvAlias("mail.port", "SMTP_PORT"),
	}
}
