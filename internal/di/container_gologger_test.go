package di

import (
	"testing"

	"github.com/goliatone/go-lingo/internal/logging/console"
	"github.com/goliatone/go-lingo/internal/logging/gologger"
	"github.com/goliatone/go-lingo/internal/runtimeconfig"
)

func TestConfigureLoggerProviderUsesGoLoggerAdapter(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "json"

	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	provider, ok := container.loggerProvider.(*gologger.Provider)
	if !ok {
		t.Fatalf("expected go-logger provider, got %T", container.loggerProvider)
	}

	logger := provider.GetLogger("lingo.test")
	if logger == nil {
		t.Fatal("expected logger from go-logger provider, got nil")
	}
}

func TestConfigureLoggerProviderDisabledByDefault(t *testing.T) {
	container, err := NewContainer(runtimeconfig.DefaultConfig())
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	if container.loggerProvider != nil {
		t.Fatalf("expected nil logger provider when logging is disabled, got %T", container.loggerProvider)
	}
}

func TestConsoleLevelMapping(t *testing.T) {
	cases := []struct {
		in   string
		want console.Level
	}{
		{"trace", console.LevelTrace},
		{"debug", console.LevelDebug},
		{"info", console.LevelInfo},
		{"WARN", console.LevelWarn},
		{" error ", console.LevelError},
		{"fatal", console.LevelFatal},
	}
	for _, tc := range cases {
		got := consoleLevel(tc.in)
		if got == nil {
			t.Fatalf("consoleLevel(%q) returned nil", tc.in)
		}
		if *got != tc.want {
			t.Fatalf("consoleLevel(%q) = %v, want %v", tc.in, *got, tc.want)
		}
	}

	if got := consoleLevel("verbose"); got != nil {
		t.Fatalf("expected nil for unknown level, got %v", *got)
	}
}
