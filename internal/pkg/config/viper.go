package config

import (
	"bytes"
	"encoding/base64"
	"errors"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Option customizes how NewViper resolves configuration values.
type Option func(*options)

type options struct {
	defaults map[string]any
	aliases  map[string][]string
}

// WithDefaults registers fallback values used when neither the file nor the
// environment provide a key.
func WithDefaults(defaults map[string]any) Option {
	return func(o *options) {
		for k, v := range defaults {
			o.defaults[k] = v
		}
	}
}

// WithEnvAlias binds extra environment variable names to key. The canonical
// name (key upper-cased with dots replaced by underscores) still wins when set.
func WithEnvAlias(key string, envs ...string) Option {
	return func(o *options) {
		o.aliases[key] = append(o.aliases[key], envs...)
	}
}

// Viper is a Config implementation backed by github.com/spf13/viper.
type Viper struct {
	v *viper.Viper
}

// NewViper loads configuration from the given file path and returns a Viper-backed Config.
//
// The config file type is inferred by Viper from the filename extension. A missing
// file is not an error: values then come from the environment and the defaults.
// Every key can be overridden by an environment variable named after the key,
// e.g. mail.host is read from MAIL_HOST.
func NewViper(pathFile string, opts ...Option) (*Viper, error) {
	o := &options{defaults: map[string]any{}, aliases: map[string][]string{}}
	for _, opt := range opts {
		opt(o)
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, value := range o.defaults {
		v.SetDefault(key, value)
	}

	for key, envs := range o.aliases {
		names := append([]string{envName(key)}, envs...)
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return nil, err
		}
	}

	if pathFile == "" {
		return &Viper{v: v}, nil
	}

	filename := path.Base(pathFile)
	configName := filename[:len(filename)-len(path.Ext(filename))]

	v.AddConfigPath(path.Dir(pathFile))
	v.SetConfigName(configName)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}

		slog.Warn("config file not found, using environment and defaults", "path", pathFile)
		return &Viper{v: v}, nil
	}

	v.OnConfigChange(func(_ fsnotify.Event) {
		if err := v.ReadInConfig(); err != nil {
			slog.Error("config reload failed", "path", pathFile, "err", err)
			return
		}
		slog.Info("config success reloaded", "path", pathFile)
	})
	v.WatchConfig()

	return &Viper{v: v}, nil
}

// NewViperFromBytes loads configuration from memory and returns a Viper-backed Config.
// configType should be a format supported by Viper (e.g. "yaml", "json", "toml").
func NewViperFromBytes(configType string, data []byte) (*Viper, error) {
	if strings.TrimSpace(configType) == "" {
		return nil, errors.New("config type is required")
	}

	v := viper.New()
	v.SetConfigType(configType)

	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, err
	}

	return &Viper{v: v}, nil
}

func envName(key string) string {
	return strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// GetInt returns the value for key as int.
func (vc *Viper) GetInt(key string) int {
	return vc.v.GetInt(key)
}

// GetBool returns the value for key as bool.
func (vc *Viper) GetBool(key string) bool {
	return vc.v.GetBool(key)
}

// GetFloat64 returns the value for key as float64.
func (vc *Viper) GetFloat64(key string) float64 {
	return vc.v.GetFloat64(key)
}

// GetSecond returns the value for key as seconds.
func (vc *Viper) GetSecond(key string) time.Duration {
	return time.Duration(vc.v.GetInt64(key)) * time.Second
}

// GetString returns the value for key as string.
func (vc *Viper) GetString(key string) string {
	return vc.v.GetString(key)
}

// GetBinary returns the value for key decoded from base64.
func (vc *Viper) GetBinary(key string) []byte {
	data, err := base64.StdEncoding.DecodeString(vc.v.GetString(key))
	if err != nil {
		return nil
	}

	return data
}

// GetArray returns the value for key split by commas.
func (vc *Viper) GetArray(key string) []string {
	parts := strings.Split(vc.v.GetString(key), ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}

// Close implements io.Closer for interface compatibility.
func (vc *Viper) Close() error {
	return nil
}
