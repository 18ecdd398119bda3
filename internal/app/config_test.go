package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/florianilch/merge-accounting/internal/requestconfig"
)

func environ(vars ...string) func() []string {
	return func() []string { return vars }
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadConfig("", environ(), nil)
	require.NoError(t, err)

	assert.Equal(t, requestconfig.DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, 60*time.Second, cfg.API.Timeout)
	assert.Equal(t, 2, cfg.API.MaxRetries)
	assert.Equal(t, CredentialStorageKeyring, cfg.Auth.Storage)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "none", cfg.Log.Exporter)
	assert.Equal(t, "127.0.0.1:4100", cfg.Webhook.Addr)
	assert.Equal(t, int64(1<<20), cfg.Webhook.MaxBodyBytes)
	assert.Equal(t, 4, cfg.Export.Concurrency)
	assert.Equal(t, 100, cfg.Export.PageSize)
}

func TestLoadConfig_Precedence(t *testing.T) {
	path := writeConfig(t, `
[api]
timeout = "30s"
max_retries = 5

[log]
level = "warn"
format = "json"

[webhook]
signature_key = "from-file"
`)

	cfg, err := LoadConfig(path,
		environ(
			"MERGEACCT_LOG__LEVEL=debug",
			"MERGEACCT_WEBHOOK__SIGNATURE_KEY=from-env",
			"MERGEACCT_EXPORT__PAGE_SIZE=50",
			"UNRELATED=1",
		),
		map[string]any{"log.level": "error"},
	)
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, 5, cfg.API.MaxRetries)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "error", cfg.Log.Level, "overrides beat env")
	assert.Equal(t, "from-env", cfg.Webhook.SignatureKey, "env beats file")
	assert.Equal(t, 50, cfg.Export.PageSize)
}

func TestLoadConfig_DefaultFileIsOptional(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "mergeacct"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mergeacct", "config.toml"),
		[]byte("[webhook]\naddr = \"0.0.0.0:9000\"\n"), 0o600))

	cfg, err := LoadConfig("", environ(), nil)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9000", cfg.Webhook.Addr)

	_, err = LoadConfig(filepath.Join(dir, "missing.toml"), environ(), nil)
	assert.Error(t, err)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	tests := []struct {
		name      string
		overrides map[string]any
		key       string
	}{
		{"log level", map[string]any{"log.level": "verbose"}, "log.level"},
		{"log format", map[string]any{"log.format": "xml"}, "log.format"},
		{"exporter", map[string]any{"log.exporter": "kafka"}, "log.exporter"},
		{"base url", map[string]any{"api.base_url": "not a url"}, "api.base_url"},
		{"timeout", map[string]any{"api.timeout": "10ms"}, "api.timeout"},
		{"retries", map[string]any{"api.max_retries": 11}, "api.max_retries"},
		{"storage", map[string]any{"auth.storage": "vault"}, "auth.storage"},
		{"credentials file", map[string]any{"auth.storage": "file", "auth.file": ""}, "auth.file"},
		{"addr", map[string]any{"webhook.addr": "localhost"}, "webhook.addr"},
		{"body limit", map[string]any{"webhook.max_body_bytes": 10}, "webhook.max_body_bytes"},
		{"page size", map[string]any{"export.page_size": 500}, "export.page_size"},
		{"concurrency", map[string]any{"export.concurrency": 0}, "export.concurrency"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig("", environ(), tt.overrides)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "config "+tt.key+":")
		})
	}
}

func TestLoadConfig_ReportsEveryInvalidKey(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	_, err := LoadConfig("", environ("MERGEACCT_LOG__FORMAT=xml"), map[string]any{"log.level": "loud"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config log.level:")
	assert.Contains(t, err.Error(), "config log.format:")
}

func TestEnvKey(t *testing.T) {
	key, value := envKey("MERGEACCT_WEBHOOK__SIGNATURE_KEY", "s")
	assert.Equal(t, "webhook.signature_key", key)
	assert.Equal(t, "s", value)
}
