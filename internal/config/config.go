package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	perrors "embedproxy/pkg/errors"
	"embedproxy/pkg/logger"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	BackendOllama = "ollama"
	BackendOpenAI = "openai"
	BackendGemini = "gemini"
)

const envPrefix = "EMBEDPROXY_"

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Backend BackendConfig `yaml:"backend"`
	Gateway GatewayConfig `yaml:"gateway"`
	Log     logger.Config `yaml:"log"`
}

type ServerConfig struct {
	Port int    `yaml:"port"`
	Mode string `yaml:"mode"`
}

// BackendConfig points at the embedding service requests are forwarded to.
type BackendConfig struct {
	Type    string        `yaml:"type"`
	URL     string        `yaml:"url"`
	Model   string        `yaml:"model"`
	APIKey  string        `yaml:"api_key"`
	Timeout time.Duration `yaml:"timeout"`
}

// GatewayConfig holds what the proxy advertises to its callers.
type GatewayConfig struct {
	Model    string `yaml:"model"`
	Encoding string `yaml:"encoding"`
}

// Default returns the settings of a local Ollama deployment.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 5000,
			Mode: "release",
		},
		Backend: BackendConfig{
			Type:    BackendOllama,
			URL:     "http://localhost:11434/api/embeddings",
			Model:   "nomic-embed-text",
			Timeout: 30 * time.Second,
		},
		Gateway: GatewayConfig{
			Model:    "text-embedding-ada-002",
			Encoding: "cl100k_base",
		},
		Log: logger.Config{
			Level:  logger.DebugLevel,
			Format: logger.ConsoleFormat,
		},
	}
}

// NewConfig loads dir/config.yaml if it exists, then dir/.env, then the
// EMBEDPROXY_* environment.
func NewConfig(dir string) (*Config, error) {
	conf := Default()

	path := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(path); err == nil {
		conf, err = FromFile(path)
		if err != nil {
			return nil, err
		}
	}

	envFile := filepath.Join(dir, ".env")
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	if err := conf.applyEnv(); err != nil {
		return nil, err
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

// FromFile reads a YAML config on top of the defaults.
func FromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	conf := Default()
	if err := yaml.Unmarshal(data, conf); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return conf, nil
}

func (c *Config) applyEnv() error {
	setString := func(key string, dst *string) {
		if v, ok := os.LookupEnv(envPrefix + key); ok {
			*dst = v
		}
	}

	setString("MODE", &c.Server.Mode)
	setString("BACKEND_TYPE", &c.Backend.Type)
	setString("BACKEND_URL", &c.Backend.URL)
	setString("BACKEND_MODEL", &c.Backend.Model)
	setString("BACKEND_API_KEY", &c.Backend.APIKey)
	setString("MODEL", &c.Gateway.Model)
	setString("ENCODING", &c.Gateway.Encoding)
	setString("LOG_LEVEL", &c.Log.Level)
	setString("LOG_FILE", &c.Log.FilePath)
	setString("LOG_FORMAT", &c.Log.Format)

	if v, ok := os.LookupEnv(envPrefix + "PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %sPORT=%q", perrors.ErrInvalidConfig, envPrefix, v)
		}
		c.Server.Port = port
	}
	if v, ok := os.LookupEnv(envPrefix + "BACKEND_TIMEOUT"); ok {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %sBACKEND_TIMEOUT=%q", perrors.ErrInvalidConfig, envPrefix, v)
		}
		c.Backend.Timeout = timeout
	}
	return nil
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", perrors.ErrInvalidConfig, c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("%w: server mode %q", perrors.ErrInvalidConfig, c.Server.Mode)
	}
	switch c.Backend.Type {
	case BackendOllama, BackendOpenAI:
		if c.Backend.URL == "" {
			return fmt.Errorf("%w: backend url is required for %s", perrors.ErrInvalidConfig, c.Backend.Type)
		}
	case BackendGemini:
	default:
		return fmt.Errorf("%w: %q", perrors.ErrUnknownBackend, c.Backend.Type)
	}
	if c.Backend.Model == "" {
		return fmt.Errorf("%w: backend model is required", perrors.ErrInvalidConfig)
	}
	if c.Backend.Timeout <= 0 {
		return fmt.Errorf("%w: backend timeout must be positive", perrors.ErrInvalidConfig)
	}
	if c.Gateway.Model == "" {
		return fmt.Errorf("%w: advertised model is required", perrors.ErrInvalidConfig)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
