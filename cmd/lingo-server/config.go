package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-lingo/internal/runtimeconfig"
)

// ServerFileName is the default config file name, looked up in the working
// directory unless --config points elsewhere.
const ServerFileName = ".lingo-server.yaml"

// ServerFile is the YAML schema of .lingo-server.yaml. Every field is
// optional; flags override whatever the file sets.
type ServerFile struct {
	// Addr is the listen address (default ":8000").
	Addr string `yaml:"addr,omitempty"`
	// BasePath prefixes every API route (default "/api").
	BasePath string `yaml:"base_path,omitempty"`
	// Engine picks the translation engine: "stub" or "llm".
	Engine string `yaml:"engine,omitempty"`
	// LogLevel sets the minimum log level (default "info").
	LogLevel string `yaml:"log_level,omitempty"`
	// SeedLanguages controls seeding an empty store with the built-in
	// catalog (default true).
	SeedLanguages *bool `yaml:"seed_languages,omitempty"`
	// Storage selects the persistence driver.
	Storage StorageSection `yaml:"storage,omitempty"`
	// LLM configures the llm engine; ignored for the stub.
	LLM LLMSection `yaml:"llm,omitempty"`
}

// StorageSection selects where translations, conversations, and checks live.
type StorageSection struct {
	// Driver: "memory", "sqlite", or "postgres".
	Driver string `yaml:"driver,omitempty"`
	// DSN is the connection string; required for sqlite and postgres.
	DSN string `yaml:"dsn,omitempty"`
}

// LLMSection configures the OpenAI-compatible engine.
type LLMSection struct {
	// BaseURL of the chat completions API.
	BaseURL string `yaml:"base_url,omitempty"`
	// Model identifier sent with every completion.
	Model string `yaml:"model,omitempty"`
	// APIKey is the bearer token. Prefer the LINGO_LLM_API_KEY environment
	// variable over committing keys to the file.
	APIKey string `yaml:"api_key,omitempty"`
	// Proxy routes engine requests through an HTTP(S) proxy URL.
	Proxy string `yaml:"proxy,omitempty"`
	// TimeoutSeconds bounds one completion round trip.
	TimeoutSeconds int `yaml:"timeout_seconds,omitempty"`
}

// loadServerFile reads and parses the config file. A missing file at the
// default location returns nil without error.
func loadServerFile(path string) (*ServerFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var file ServerFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &file, nil
}

// apply folds the file's settings into cfg. Empty fields keep the defaults
// already present.
func (f *ServerFile) apply(cfg *runtimeconfig.Config) {
	if f == nil || cfg == nil {
		return
	}

	if addr := strings.TrimSpace(f.Addr); addr != "" {
		cfg.Server.Addr = addr
	}
	if base := strings.TrimSpace(f.BasePath); base != "" {
		cfg.Server.BasePath = base
	}
	if engine := strings.TrimSpace(f.Engine); engine != "" {
		cfg.Server.Engine = engine
	}
	if level := strings.TrimSpace(f.LogLevel); level != "" {
		cfg.Logging.Level = level
	}
	if f.SeedLanguages != nil {
		cfg.Languages.SeedDefaults = *f.SeedLanguages
	}

	if driver := strings.TrimSpace(f.Storage.Driver); driver != "" {
		cfg.Server.Storage.Driver = driver
	}
	if dsn := strings.TrimSpace(f.Storage.DSN); dsn != "" {
		cfg.Server.Storage.DSN = dsn
	}

	if baseURL := strings.TrimSpace(f.LLM.BaseURL); baseURL != "" {
		cfg.Server.LLM.BaseURL = baseURL
	}
	if model := strings.TrimSpace(f.LLM.Model); model != "" {
		cfg.Server.LLM.Model = model
	}
	if key := strings.TrimSpace(f.LLM.APIKey); key != "" {
		cfg.Server.LLM.APIKey = key
	}
	if proxy := strings.TrimSpace(f.LLM.Proxy); proxy != "" {
		cfg.Server.LLM.Proxy = proxy
	}
	if f.LLM.TimeoutSeconds > 0 {
		cfg.Server.LLM.Timeout = time.Duration(f.LLM.TimeoutSeconds) * time.Second
	}
}
