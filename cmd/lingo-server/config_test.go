package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goliatone/go-lingo/internal/runtimeconfig"
)

func TestLoadServerFile(t *testing.T) {
	t.Run("missing file returns nil", func(t *testing.T) {
		file, err := loadServerFile(filepath.Join(t.TempDir(), ServerFileName))
		if err != nil {
			t.Fatalf("loadServerFile: %v", err)
		}
		if file != nil {
			t.Fatalf("expected nil for missing file, got %+v", file)
		}
	})

	t.Run("parses full file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ServerFileName)
		content := `addr: ":9000"
base_path: "/v1"
engine: "llm"
log_level: "debug"
seed_languages: false
storage:
  driver: "sqlite"
  dsn: "file:lingo.db"
llm:
  base_url: "http://localhost:11434/v1"
  model: "llama3"
  proxy: "http://proxy:3128"
  timeout_seconds: 120
`
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}

		file, err := loadServerFile(path)
		if err != nil {
			t.Fatalf("loadServerFile: %v", err)
		}
		if file == nil {
			t.Fatal("expected parsed file")
		}
		if file.Addr != ":9000" {
			t.Fatalf("Addr = %q", file.Addr)
		}
		if file.Storage.Driver != "sqlite" || file.Storage.DSN != "file:lingo.db" {
			t.Fatalf("Storage = %+v", file.Storage)
		}
		if file.SeedLanguages == nil || *file.SeedLanguages {
			t.Fatalf("SeedLanguages = %v", file.SeedLanguages)
		}
		if file.LLM.TimeoutSeconds != 120 {
			t.Fatalf("TimeoutSeconds = %d", file.LLM.TimeoutSeconds)
		}
	})

	t.Run("malformed yaml errors", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ServerFileName)
		if err := os.WriteFile(path, []byte("addr: [unterminated"), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		if _, err := loadServerFile(path); err == nil {
			t.Fatal("expected parse error")
		}
	})
}

func TestServerFileApply(t *testing.T) {
	seed := false
	file := &ServerFile{
		Addr:          ":9100",
		Engine:        "llm",
		LogLevel:      "warn",
		SeedLanguages: &seed,
		Storage:       StorageSection{Driver: "postgres", DSN: "postgres://localhost/lingo"},
		LLM: LLMSection{
			BaseURL:        "http://localhost:11434/v1",
			Model:          "llama3",
			APIKey:         "secret",
			TimeoutSeconds: 90,
		},
	}

	cfg := runtimeconfig.DefaultConfig()
	file.apply(&cfg)

	if cfg.Server.Addr != ":9100" {
		t.Fatalf("Addr = %q", cfg.Server.Addr)
	}
	if cfg.Server.BasePath != "/api" {
		t.Fatalf("BasePath should keep default, got %q", cfg.Server.BasePath)
	}
	if cfg.Server.Engine != "llm" {
		t.Fatalf("Engine = %q", cfg.Server.Engine)
	}
	if cfg.Logging.Level != "warn" {
		t.Fatalf("Level = %q", cfg.Logging.Level)
	}
	if cfg.Languages.SeedDefaults {
		t.Fatal("SeedDefaults should be disabled")
	}
	if cfg.Server.Storage.Driver != "postgres" {
		t.Fatalf("Driver = %q", cfg.Server.Storage.Driver)
	}
	if cfg.Server.LLM.Timeout != 90*time.Second {
		t.Fatalf("Timeout = %s", cfg.Server.LLM.Timeout)
	}
}

func TestServerFileApplyNilKeepsDefaults(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	want := cfg.Server.Addr

	var file *ServerFile
	file.apply(&cfg)

	if cfg.Server.Addr != want {
		t.Fatalf("Addr changed to %q", cfg.Server.Addr)
	}
}
