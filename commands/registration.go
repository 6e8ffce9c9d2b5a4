package commands

import (
	"errors"
	"strings"

	command "github.com/goliatone/go-command"
	basecmd "github.com/goliatone/go-lingo/internal/commands"
	catalogcmd "github.com/goliatone/go-lingo/internal/commands/catalog"
	conversationcmd "github.com/goliatone/go-lingo/internal/commands/conversation"
	historycmd "github.com/goliatone/go-lingo/internal/commands/history"
	pipelinecmd "github.com/goliatone/go-lingo/internal/commands/pipeline"
	translatecmd "github.com/goliatone/go-lingo/internal/commands/translate"
	"github.com/goliatone/go-lingo/internal/di"
	"github.com/goliatone/go-lingo/pkg/interfaces"
)

// CommandRegistry records command handlers so hosts can expose them via CLI or cron.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CommandDispatcher subscribes command handlers to a dispatcher implementation.
type CommandDispatcher interface {
	RegisterCommand(handler any) (CommandSubscription, error)
}

// CommandSubscription allows hosts to tear down dispatcher subscriptions.
type CommandSubscription interface {
	Unsubscribe()
}

// CronRegistrar registers command handlers with a cron scheduler.
type CronRegistrar func(command.HandlerConfig, any) error

// RegistrationOptions configures how handlers are registered during construction.
type RegistrationOptions struct {
	Registry       CommandRegistry
	Dispatcher     CommandDispatcher
	CronRegistrar  CronRegistrar
	LoggerProvider interfaces.LoggerProvider
	// RefreshLanguagesCron overrides the default cron expression applied to the catalog refresh handler.
	RefreshLanguagesCron string
}

// RegistrationResult captures the constructed command handlers and any dispatcher subscriptions.
type RegistrationResult struct {
	Handlers      []any
	Subscriptions []CommandSubscription
}

// registrar threads each handler through the optional registry, dispatcher
// and cron integrations, folding every failure into errs so one bad
// integration never hides the others.
type registrar struct {
	opts   RegistrationOptions
	result *RegistrationResult
	errs   error
}

func (r *registrar) add(handler any) {
	if handler == nil {
		return
	}
	r.result.Handlers = append(r.result.Handlers, handler)

	if r.opts.Registry != nil {
		if err := r.opts.Registry.RegisterCommand(handler); err != nil {
			r.errs = errors.Join(r.errs, err)
		}
	}

	if r.opts.Dispatcher != nil {
		subscription, err := r.opts.Dispatcher.RegisterCommand(handler)
		switch {
		case err != nil:
			r.errs = errors.Join(r.errs, err)
		case subscription != nil:
			r.result.Subscriptions = append(r.result.Subscriptions, subscription)
		}
	}

	if r.opts.CronRegistrar == nil {
		return
	}
	if cronCmd, ok := handler.(command.CronCommand); ok {
		if err := r.opts.CronRegistrar(cronCmd.CronOptions(), cronCmd.CronHandler()); err != nil {
			r.errs = errors.Join(r.errs, err)
		}
	}
}

// RegisterContainerCommands builds the command handlers exposed by the provided container and
// optionally registers them with registry/dispatcher/cron integrations.
func RegisterContainerCommands(container *di.Container, opts RegistrationOptions) (*RegistrationResult, error) {
	if container == nil {
		return &RegistrationResult{}, nil
	}

	cfg := container.Config()

	provider := opts.LoggerProvider
	if provider == nil {
		provider = container.LoggerProvider()
	}

	// go-command's Registry wants the cron callback installed before any
	// handler registration happens.
	if opts.Registry != nil && opts.CronRegistrar != nil {
		if reg, ok := opts.Registry.(interface {
			SetCronRegister(func(command.HandlerConfig, any) error) *command.Registry
		}); ok && reg != nil {
			reg.SetCronRegister(opts.CronRegistrar)
		}
	}

	r := &registrar{
		opts: opts,
		result: &RegistrationResult{
			Handlers:      make([]any, 0),
			Subscriptions: make([]CommandSubscription, 0),
		},
	}

	loggerFor := func(module string) interfaces.Logger {
		return basecmd.CommandLogger(provider, module)
	}

	// Translation commands.
	if service := container.TranslateService(); service != nil {
		translateLogger := loggerFor("translate")
		r.add(translatecmd.NewTranslateTextHandler(service, translateLogger))
		r.add(translatecmd.NewSetLanguagePairHandler(service, translateLogger))
		r.add(translatecmd.NewSwapLanguagesHandler(service, translateLogger))
	}

	// Catalog commands.
	if service := container.CatalogService(); service != nil {
		refreshOpts := []catalogcmd.RefreshHandlerOption{}
		if expr := strings.TrimSpace(opts.RefreshLanguagesCron); expr != "" {
			refreshOpts = append(refreshOpts, catalogcmd.RefreshWithCronExpression(expr))
		}
		r.add(catalogcmd.NewRefreshLanguagesHandler(service, loggerFor("catalog"), refreshOpts...))
	}

	// History commands.
	if service := container.HistoryService(); service != nil {
		r.add(historycmd.NewRefreshRecentsHandler(service, loggerFor("history")))
	}

	// Conversation commands.
	if service := container.ConversationService(); service != nil && cfg.Features.Conversations {
		gates := conversationcmd.FeatureGates{
			ConversationsEnabled: func() bool { return cfg.Features.Conversations },
		}
		conversationLogger := loggerFor("conversation")
		r.add(conversationcmd.NewStartConversationHandler(service, conversationLogger, gates))
		r.add(conversationcmd.NewAppendMessageHandler(service, conversationLogger, gates))
	}

	// Pipeline commands.
	if service := container.PipelineService(); service != nil {
		r.add(pipelinecmd.NewTranslateImageHandler(service, loggerFor("pipeline")))
	}

	if len(r.result.Handlers) == 0 {
		if r.errs != nil {
			return r.result, r.errs
		}
		return r.result, errors.New("no command handlers registered; ensure services are configured and required features enabled")
	}
	return r.result, r.errs
}
