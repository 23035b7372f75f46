package config

import (
	"os"
	"path"
	"testing"
	"time"

	perrors "embedproxy/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromFile(t *testing.T) {
	// Create a temporary test config file
	tmpDir := t.TempDir()
	testConfigPath := path.Join(tmpDir, "test_config.yaml")

	testConfig := `
server:
  port: 8081
  mode: debug
backend:
  type: openai
  url: http://localhost:8000/v1/embeddings
  model: bge-m3
  api_key: secret
  timeout: 5s
gateway:
  model: text-embedding-3-small
log:
  level: warn
  format: json
`
	err := os.WriteFile(testConfigPath, []byte(testConfig), 0644)
	assert.NoError(t, err)

	// Test reading from file
	cfg, err := FromFile(testConfigPath)
	assert.NoError(t, err)
	assert.NotNil(t, cfg)

	// Verify the values
	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, BackendOpenAI, cfg.Backend.Type)
	assert.Equal(t, "http://localhost:8000/v1/embeddings", cfg.Backend.URL)
	assert.Equal(t, "bge-m3", cfg.Backend.Model)
	assert.Equal(t, "secret", cfg.Backend.APIKey)
	assert.Equal(t, 5*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, "text-embedding-3-small", cfg.Gateway.Model)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)

	// Unset keys keep their defaults
	assert.Equal(t, "cl100k_base", cfg.Gateway.Encoding)

	// Test with non-existent file
	cfg, err = FromFile("non_existent_file.yaml")
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestFromFileInvalidYAML(t *testing.T) {
	p := path.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(p, []byte("server: [1, 2"), 0644))

	cfg, err := FromFile(p)
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, ":5000", cfg.Addr())
	assert.Equal(t, BackendOllama, cfg.Backend.Type)
	assert.Equal(t, "http://localhost:11434/api/embeddings", cfg.Backend.URL)
	assert.Equal(t, "nomic-embed-text", cfg.Backend.Model)
	assert.Equal(t, 30*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, "text-embedding-ada-002", cfg.Gateway.Model)
}

func TestNewConfigEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(path.Join(dir, "config.yaml"), []byte("server:\n  port: 7000\n"), 0644))

	t.Setenv("EMBEDPROXY_PORT", "9000")
	t.Setenv("EMBEDPROXY_BACKEND_MODEL", "mxbai-embed-large")
	t.Setenv("EMBEDPROXY_BACKEND_TIMEOUT", "2s")
	t.Setenv("EMBEDPROXY_LOG_LEVEL", "error")

	cfg, err := NewConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "mxbai-embed-large", cfg.Backend.Model)
	assert.Equal(t, 2*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestNewConfigDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(path.Join(dir, ".env"), []byte("EMBEDPROXY_MODEL=custom-advertised\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("EMBEDPROXY_MODEL") })

	cfg, err := NewConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "custom-advertised", cfg.Gateway.Model)
}

func TestNewConfigBadEnv(t *testing.T) {
	t.Setenv("EMBEDPROXY_PORT", "not-a-port")
	_, err := NewConfig(t.TempDir())
	assert.ErrorIs(t, err, perrors.ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"defaults are valid", func(*Config) {}, nil},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }, perrors.ErrInvalidConfig},
		{"unknown server mode", func(c *Config) { c.Server.Mode = "prod" }, perrors.ErrInvalidConfig},
		{"unknown backend", func(c *Config) { c.Backend.Type = "cohere" }, perrors.ErrUnknownBackend},
		{"missing url", func(c *Config) { c.Backend.URL = "" }, perrors.ErrInvalidConfig},
		{"gemini needs no url", func(c *Config) { c.Backend.Type = BackendGemini; c.Backend.URL = "" }, nil},
		{"missing backend model", func(c *Config) { c.Backend.Model = "" }, perrors.ErrInvalidConfig},
		{"zero timeout", func(c *Config) { c.Backend.Timeout = 0 }, perrors.ErrInvalidConfig},
		{"missing advertised model", func(c *Config) { c.Gateway.Model = "" }, perrors.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
