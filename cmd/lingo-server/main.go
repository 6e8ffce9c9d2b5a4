// lingo-server is a standalone translation backend speaking the go-lingo wire
// contract: language catalog, text and image translation, history,
// conversations, and status checks.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-lingo/internal/di"
	"github.com/goliatone/go-lingo/internal/engine/llm"
	"github.com/goliatone/go-lingo/internal/runtimeconfig"
	"github.com/goliatone/go-lingo/pkg/storage"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// apiKeyEnv supplies the llm bearer token when the config file leaves it
// blank, keeping keys out of checked-in files.
const apiKeyEnv = "LINGO_LLM_API_KEY"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "lingo-server",
		Short: "Translation backend for go-lingo clients",
		Long: `lingo-server is a standalone translation backend.

Serves the HTTP API go-lingo clients consume: language catalog, text and
image translation, translation history, conversations, and status checks.

Engines:
  stub   deterministic dictionary engine for development and tests
  llm    OpenAI-compatible chat completions endpoint (hosted or local)

Storage drivers:
  memory     in-process only, lost on restart
  sqlite     file-backed via a sqlite DSN
  postgres   shared deployments via a postgres DSN

Configuration comes from ` + ServerFileName + ` in the working directory,
overridden by flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCmd(),
		newVersionCmd(),
	)

	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.SetFlags(0)
		log.Fatalf("lingo-server: %v", err)
	}
}

type serveFlags struct {
	configPath    string
	addr          string
	basePath      string
	engine        string
	logLevel      string
	storageDriver string
	storageDSN    string
	llmBaseURL    string
	llmModel      string
	llmProxy      string
	noSeed        bool
}

func newServeCmd() *cobra.Command {
	flags := &serveFlags{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the translation backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.configPath, "config", "c", ServerFileName, "Config file path")
	cmd.Flags().StringVar(&flags.addr, "addr", ":8000", "Listen address")
	cmd.Flags().StringVar(&flags.basePath, "base-path", "/api", "API base path")
	cmd.Flags().StringVar(&flags.engine, "engine", "stub", "Translation engine: stub or llm")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "info", "Minimum log level")
	cmd.Flags().StringVar(&flags.storageDriver, "storage-driver", "memory", "Storage driver: memory, sqlite, or postgres")
	cmd.Flags().StringVar(&flags.storageDSN, "storage-dsn", "", "Storage DSN for sqlite and postgres")
	cmd.Flags().StringVar(&flags.llmBaseURL, "llm-base-url", "", "LLM chat completions base URL")
	cmd.Flags().StringVar(&flags.llmModel, "llm-model", "", "LLM model identifier")
	cmd.Flags().StringVar(&flags.llmProxy, "llm-proxy", "", "HTTP(S) proxy for LLM requests")
	cmd.Flags().BoolVar(&flags.noSeed, "no-seed", false, "Skip seeding an empty store with the built-in language catalog")

	return cmd
}

func runServe(cmd *cobra.Command, flags *serveFlags) error {
	cfg, err := resolveConfig(cmd, flags)
	if err != nil {
		return err
	}

	db, err := openStorage(cfg)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	containerOpts := []di.Option{}
	if db != nil {
		containerOpts = append(containerOpts, di.WithBunDB(db))
	}
	container, err := di.NewContainer(cfg, containerOpts...)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	if err := container.ServerAPI().Register(mux); err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	log.Printf("lingo-server %s listening on %s (engine=%s storage=%s)",
		version, cfg.Server.Addr, cfg.Server.Engine, cfg.Server.Storage.Driver)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		log.Printf("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}

	return nil
}

// resolveConfig layers defaults, the config file, flags, and the environment
// into a validated runtime configuration.
func resolveConfig(cmd *cobra.Command, flags *serveFlags) (runtimeconfig.Config, error) {
	cfg := runtimeconfig.DefaultConfig()

	// Standalone backend: no client orchestrator, no maintenance jobs.
	cfg.Backend.BaseURL = ""
	cfg.Features.Scheduling = false
	cfg.Server.Enabled = true

	file, err := loadServerFile(flags.configPath)
	if err != nil {
		return cfg, err
	}
	if file == nil && cmd.Flags().Changed("config") {
		return cfg, fmt.Errorf("config file %s not found", flags.configPath)
	}
	file.apply(&cfg)

	flagSetters := map[string]func(){
		"addr":           func() { cfg.Server.Addr = flags.addr },
		"base-path":      func() { cfg.Server.BasePath = flags.basePath },
		"engine":         func() { cfg.Server.Engine = flags.engine },
		"log-level":      func() { cfg.Logging.Level = flags.logLevel },
		"storage-driver": func() { cfg.Server.Storage.Driver = flags.storageDriver },
		"storage-dsn":    func() { cfg.Server.Storage.DSN = flags.storageDSN },
		"llm-base-url":   func() { cfg.Server.LLM.BaseURL = flags.llmBaseURL },
		"llm-model":      func() { cfg.Server.LLM.Model = flags.llmModel },
		"llm-proxy":      func() { cfg.Server.LLM.Proxy = flags.llmProxy },
		"no-seed":        func() { cfg.Languages.SeedDefaults = !flags.noSeed },
	}
	for name, set := range flagSetters {
		if cmd.Flags().Changed(name) {
			set()
		}
	}

	if strings.EqualFold(strings.TrimSpace(cfg.Server.Engine), "llm") {
		if cfg.Server.LLM.BaseURL == "" {
			cfg.Server.LLM.BaseURL = llm.DefaultBaseURL
		}
		if cfg.Server.LLM.Model == "" {
			cfg.Server.LLM.Model = llm.DefaultModel
		}
		if cfg.Server.LLM.APIKey == "" {
			cfg.Server.LLM.APIKey = os.Getenv(apiKeyEnv)
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// openStorage opens and bootstraps the configured database. The memory
// driver returns nil: the container's in-process repositories take over.
func openStorage(cfg runtimeconfig.Config) (*bun.DB, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Server.Storage.Driver))
	if driver == "" || driver == storage.DriverMemory {
		return nil, nil
	}

	db, err := storage.Open(storage.Config{
		Driver: driver,
		DSN:    cfg.Server.Storage.DSN,
	})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := storage.Bootstrap(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display version, commit hash, and build date.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("lingo-server version %s\n", version)
			fmt.Printf("  commit:    %s\n", commit)
			fmt.Printf("  built:     %s\n", date)
		},
	}

	return cmd
}
