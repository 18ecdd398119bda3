package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/florianilch/merge-accounting/internal/requestconfig"
)

// EnvPrefix is the prefix of environment variables overriding config keys.
// Nested keys are separated by a double underscore, e.g.
// MERGEACCT_WEBHOOK__SIGNATURE_KEY for webhook.signature_key.
const EnvPrefix = "MERGEACCT_"

// Config is the merged configuration of the CLI and the webhook listener.
type Config struct {
	API     APIConfig     `koanf:"api"`
	Auth    AuthConfig    `koanf:"auth"`
	Log     LogConfig     `koanf:"log"`
	Webhook WebhookConfig `koanf:"webhook"`
	Export  ExportConfig  `koanf:"export"`
}

type APIConfig struct {
	BaseURL    string        `koanf:"base_url" validate:"required,url"`
	Timeout    time.Duration `koanf:"timeout" validate:"min=1s"`
	MaxRetries int           `koanf:"max_retries" validate:"min=0,max=10"`
	// Lenient decodes responses that miss required fields.
	Lenient bool `koanf:"lenient"`
}

type AuthConfig struct {
	Storage CredentialStorageType `koanf:"storage" validate:"oneof=env file keyring"`
	// File is the credentials file of the file storage.
	File string `koanf:"file" validate:"required_if=Storage file"`
	// APIKey and AccountToken take precedence over the stored credentials.
	APIKey       string `koanf:"api_key"`
	AccountToken string `koanf:"account_token"`
}

type LogConfig struct {
	Level    string `koanf:"level" validate:"oneof=debug info warn error"`
	Format   string `koanf:"format" validate:"oneof=text json"`
	Exporter string `koanf:"exporter" validate:"oneof=none stdout otlp-http otlp-grpc"`
	// Endpoint is the OTLP collector, as host:port or URL.
	Endpoint string `koanf:"endpoint"`
}

type WebhookConfig struct {
	Addr         string `koanf:"addr" validate:"required,hostname_port"`
	SignatureKey string `koanf:"signature_key"`
	MaxBodyBytes int64  `koanf:"max_body_bytes" validate:"min=1024"`
}

type ExportConfig struct {
	Concurrency int `koanf:"concurrency" validate:"min=1,max=16"`
	PageSize    int `koanf:"page_size" validate:"min=1,max=100"`
}

func defaults() map[string]any {
	return map[string]any{
		"api.base_url":           requestconfig.DefaultBaseURL,
		"api.timeout":            "60s",
		"api.max_retries":        2,
		"api.lenient":            false,
		"auth.storage":           string(CredentialStorageKeyring),
		"auth.file":              defaultCredentialsFile(),
		"log.level":              "info",
		"log.format":             "text",
		"log.exporter":           "none",
		"webhook.addr":           "127.0.0.1:4100",
		"webhook.max_body_bytes": 1 << 20,
		"export.concurrency":     4,
		"export.page_size":       100,
	}
}

// DefaultConfigFile is the config file read when none is given.
func DefaultConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "mergeacct", "config.toml")
}

func defaultCredentialsFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "credentials.json"
	}
	return filepath.Join(dir, "mergeacct", "credentials.json")
}

// LoadConfig merges, from lowest to highest precedence, the defaults, the
// TOML file at path, MERGEACCT_ environment variables and overrides, which
// map config keys like "log.level" to values. An empty path reads
// DefaultConfigFile if it exists; an explicit path must exist.
func LoadConfig(path string, environ func() []string, overrides map[string]any) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if path == "" {
		if p := DefaultConfigFile(); p != "" {
			if _, err := os.Stat(p); err == nil {
				path = p
			}
		}
	}
	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	if environ == nil {
		environ = os.Environ
	}
	err := k.Load(env.Provider(".", env.Opt{
		Prefix:        EnvPrefix,
		EnvironFunc:   environ,
		TransformFunc: envKey,
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, fmt.Errorf("loading flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps MERGEACCT_WEBHOOK__SIGNATURE_KEY to webhook.signature_key.
func envKey(key, value string) (string, any) {
	key = strings.TrimPrefix(key, EnvPrefix)
	key = strings.ReplaceAll(strings.ToLower(key), "__", ".")
	return key, value
}

var configValidator = newConfigValidator()

func newConfigValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(sf reflect.StructField) string {
		name, _, _ := strings.Cut(sf.Tag.Get("koanf"), ",")
		if name == "" {
			return sf.Name
		}
		return name
	})
	return v
}

// Validate reports every invalid key, named the way it is configured.
func (c *Config) Validate() error {
	err := configValidator.Struct(c)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	errs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		_, key, _ := strings.Cut(fe.Namespace(), ".")
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		errs = append(errs, fmt.Errorf("config %s: invalid value %v (%s)", key, fe.Value(), rule))
	}
	return errors.Join(errs...)
}
