package catalogcmd

import (
	"context"
	"strings"
	"time"

	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-lingo/catalog"
	"github.com/goliatone/go-lingo/internal/commands"
	"github.com/goliatone/go-lingo/pkg/interfaces"
)

// Matches the scheduler's job type, so dispatched and worker-driven refreshes
// log under one name.
const refreshLanguagesMessageType = "lingo.languages.refresh"

// RefreshLanguagesCommand re-fetches the language catalog from the backend,
// replacing the cache on success.
type RefreshLanguagesCommand struct{}

// Type implements command.Message.
func (RefreshLanguagesCommand) Type() string { return refreshLanguagesMessageType }

// Validate implements command.Message; the refresh carries no payload.
func (RefreshLanguagesCommand) Validate() error { return nil }

type refreshHandlerConfig struct {
	cronConfig command.HandlerConfig
	timeout    time.Duration
}

// RefreshHandlerOption customises the refresh handler.
type RefreshHandlerOption func(*refreshHandlerConfig)

// RefreshWithCronConfig overrides the cron registration options for the refresh handler.
func RefreshWithCronConfig(config command.HandlerConfig) RefreshHandlerOption {
	return func(cfg *refreshHandlerConfig) {
		cfg.cronConfig = config
	}
}

// RefreshWithCronExpression overrides the cron expression for the refresh handler.
func RefreshWithCronExpression(expression string) RefreshHandlerOption {
	return func(cfg *refreshHandlerConfig) {
		if trimmed := strings.TrimSpace(expression); trimmed != "" {
			cfg.cronConfig.Expression = trimmed
		}
	}
}

// RefreshWithTimeout overrides the default execution timeout.
func RefreshWithTimeout(timeout time.Duration) RefreshHandlerOption {
	return func(cfg *refreshHandlerConfig) {
		cfg.timeout = timeout
	}
}

// RefreshLanguagesHandler drives the catalog cache through the shared command
// foundation.
type RefreshLanguagesHandler struct {
	inner      *commands.Handler[RefreshLanguagesCommand]
	cronConfig command.HandlerConfig
}

// NewRefreshLanguagesHandler constructs a handler wired to the provided catalog service.
func NewRefreshLanguagesHandler(service catalog.Service, logger interfaces.Logger, opts ...RefreshHandlerOption) *RefreshLanguagesHandler {
	cfg := refreshHandlerConfig{
		cronConfig: command.HandlerConfig{
			Expression: "@daily",
		},
		timeout: commands.DefaultCommandTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	exec := func(ctx context.Context, _ RefreshLanguagesCommand) error {
		_, err := service.Refresh(ctx)
		return err
	}

	return &RefreshLanguagesHandler{
		inner: commands.NewHandler[RefreshLanguagesCommand](exec,
			commands.WithLogger[RefreshLanguagesCommand](logger),
			commands.WithOperation[RefreshLanguagesCommand]("languages.refresh"),
			commands.WithTimeout[RefreshLanguagesCommand](cfg.timeout),
		),
		cronConfig: cfg.cronConfig,
	}
}

// Execute satisfies command.Commander[RefreshLanguagesCommand].Execute.
func (h *RefreshLanguagesHandler) Execute(ctx context.Context, msg RefreshLanguagesCommand) error {
	return h.inner.Execute(ctx, msg)
}

// CronHandler satisfies command.CronCommand by binding the refresh to a cron runner.
func (h *RefreshLanguagesHandler) CronHandler() func() error {
	return func() error {
		return h.Execute(context.Background(), RefreshLanguagesCommand{})
	}
}

// CronOptions satisfies command.CronCommand by returning the configured cron metadata.
func (h *RefreshLanguagesHandler) CronOptions() command.HandlerConfig {
	return h.cronConfig
}

// CLIHandler exposes the refresh handler to CLI integrations.
func (h *RefreshLanguagesHandler) CLIHandler() any {
	return h
}

// CLIOptions describes the CLI metadata for the catalog refresh.
func (h *RefreshLanguagesHandler) CLIOptions() command.CLIConfig {
	return command.CLIConfig{
		Path:        []string{"languages", "refresh"},
		Group:       "languages",
		Description: "Re-fetch the language catalog from the backend",
	}
}
