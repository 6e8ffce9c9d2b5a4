package runtimeconfig

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// ErrBackendBaseURLInvalid indicates the configured backend URL cannot be parsed.
var ErrBackendBaseURLInvalid = errors.New("lingo config: backend base URL is invalid")

// ErrBackendTimeoutInvalid rejects negative request timeouts.
var ErrBackendTimeoutInvalid = errors.New("lingo config: backend timeout must be zero or positive")

// ErrDefaultTargetRequired ensures translations always have a destination language.
var ErrDefaultTargetRequired = errors.New("lingo config: default target language is required")

// ErrSchedulingRequiresWork ensures the scheduling flag has at least one periodic task to run.
var ErrSchedulingRequiresWork = errors.New("lingo config: scheduling feature requires a languages refresh interval or a history retention limit")
var ErrRefreshIntervalInvalid = errors.New("lingo config: languages refresh interval must be zero or positive")
var ErrPickQualityInvalid = errors.New("lingo config: capture pick quality must be between 1 and 100")
var ErrRecentLimitInvalid = errors.New("lingo config: history recent limit must be positive")
var ErrFetchLimitInvalid = errors.New("lingo config: history fetch limit must be positive")
var ErrRecentExceedsFetch = errors.New("lingo config: history recent limit must not exceed the fetch limit")
var ErrRetentionInvalid = errors.New("lingo config: history retention must be zero or positive")
var ErrLoggingProviderRequired = errors.New("lingo config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("lingo config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("lingo config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("lingo config: logging format is invalid")
var ErrServerAddrRequired = errors.New("lingo config: server address is required when the server is enabled")
var ErrServerEngineUnknown = errors.New("lingo config: server engine is invalid")
var ErrServerStorageUnknown = errors.New("lingo config: server storage driver is invalid")
var ErrServerStorageDSNRequired = errors.New("lingo config: server storage DSN is required for this driver")
var ErrServerLLMModelRequired = errors.New("lingo config: llm engine requires a model")
var ErrServerLLMBaseURLRequired = errors.New("lingo config: llm engine requires a base URL")

// Config aggregates feature flags and adapter bindings for the lingo module.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	Enabled       bool
	Backend       BackendConfig
	Languages     LanguagesConfig
	Translation   TranslationConfig
	Capture       CaptureConfig
	History       HistoryConfig
	Conversations ConversationConfig
	Cache         CacheConfig
	Logging       LoggingConfig
	Server        ServerConfig
	Features      Features
}

// BackendConfig points the module at the translation backend.
type BackendConfig struct {
	BaseURL    string
	Timeout    time.Duration
	ClientName string
}

// LanguagesConfig controls catalog seeding and refresh behaviour.
type LanguagesConfig struct {
	SeedDefaults    bool
	RefreshInterval time.Duration
}

// TranslationConfig captures the initial language pair.
type TranslationConfig struct {
	DefaultSource string
	DefaultTarget string
}

// CaptureConfig tunes image acquisition.
type CaptureConfig struct {
	PickQuality int
}

// HistoryConfig bounds the recent-results cache and server-side retention.
type HistoryConfig struct {
	RecentLimit int
	FetchLimit  int
	// Retention caps how many entries the server keeps. Zero keeps everything.
	Retention int
}

// ConversationConfig captures conversation defaults.
type ConversationConfig struct {
	DefaultSender string
}

// CacheConfig captures repository cache behaviour toggles.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// ServerConfig drives the embedded HTTP server.
type ServerConfig struct {
	Enabled  bool
	Addr     string
	BasePath string
	Engine   string
	Storage  ServerStorageConfig
	LLM      LLMConfig
}

// ServerStorageConfig selects the server persistence driver.
type ServerStorageConfig struct {
	Driver string
	DSN    string
}

// LLMConfig configures the OpenAI-compatible translation engine.
type LLMConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Proxy   string
	Timeout time.Duration
}

// Features toggles module functionality.
type Features struct {
	Conversations bool
	Scheduling    bool
	Logger        bool
}

// DefaultConfig returns opinionated defaults matching the stock backend layout.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Backend: BackendConfig{
			BaseURL:    "http://localhost:8000",
			Timeout:    30 * time.Second,
			ClientName: "go-lingo",
		},
		Languages: LanguagesConfig{
			SeedDefaults: true,
		},
		Translation: TranslationConfig{
			DefaultSource: "auto",
			DefaultTarget: "es",
		},
		Capture: CaptureConfig{
			PickQuality: 70,
		},
		History: HistoryConfig{
			RecentLimit: 5,
			FetchLimit:  50,
		},
		Conversations: ConversationConfig{
			DefaultSender: "me",
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
		Server: ServerConfig{
			Addr:     ":8000",
			BasePath: "/api",
			Engine:   "stub",
			Storage: ServerStorageConfig{
				Driver: "memory",
			},
		},
		Features: Features{
			Conversations: true,
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if base := strings.TrimSpace(cfg.Backend.BaseURL); base != "" {
		parsed, err := url.Parse(base)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("%w: %s", ErrBackendBaseURLInvalid, base)
		}
	}
	if cfg.Backend.Timeout < 0 {
		return ErrBackendTimeoutInvalid
	}
	if strings.TrimSpace(cfg.Translation.DefaultTarget) == "" {
		return ErrDefaultTargetRequired
	}
	if cfg.Languages.RefreshInterval < 0 {
		return ErrRefreshIntervalInvalid
	}
	if cfg.Capture.PickQuality < 1 || cfg.Capture.PickQuality > 100 {
		return ErrPickQualityInvalid
	}
	if cfg.History.RecentLimit < 1 {
		return ErrRecentLimitInvalid
	}
	if cfg.History.FetchLimit < 1 {
		return ErrFetchLimitInvalid
	}
	if cfg.History.RecentLimit > cfg.History.FetchLimit {
		return ErrRecentExceedsFetch
	}
	if cfg.History.Retention < 0 {
		return ErrRetentionInvalid
	}
	if cfg.Features.Scheduling && cfg.Languages.RefreshInterval == 0 && cfg.History.Retention == 0 {
		return ErrSchedulingRequiresWork
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	if cfg.Server.Enabled {
		if strings.TrimSpace(cfg.Server.Addr) == "" {
			return ErrServerAddrRequired
		}
		engine := strings.ToLower(strings.TrimSpace(cfg.Server.Engine))
		switch engine {
		case "", "stub":
		case "llm":
			if strings.TrimSpace(cfg.Server.LLM.Model) == "" {
				return ErrServerLLMModelRequired
			}
			if strings.TrimSpace(cfg.Server.LLM.BaseURL) == "" {
				return ErrServerLLMBaseURLRequired
			}
		default:
			return fmt.Errorf("%w: %s", ErrServerEngineUnknown, engine)
		}
		driver := strings.ToLower(strings.TrimSpace(cfg.Server.Storage.Driver))
		switch driver {
		case "", "memory":
		case "sqlite", "postgres":
			if strings.TrimSpace(cfg.Server.Storage.DSN) == "" {
				return fmt.Errorf("%w: %s", ErrServerStorageDSNRequired, driver)
			}
		default:
			return fmt.Errorf("%w: %s", ErrServerStorageUnknown, driver)
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
