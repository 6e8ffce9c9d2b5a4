package di

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-lingo/internal/adapters/noop"
	"github.com/goliatone/go-lingo/internal/capture"
	"github.com/goliatone/go-lingo/internal/catalog"
	"github.com/goliatone/go-lingo/internal/client"
	"github.com/goliatone/go-lingo/internal/conversation"
	"github.com/goliatone/go-lingo/internal/engine"
	"github.com/goliatone/go-lingo/internal/engine/llm"
	"github.com/goliatone/go-lingo/internal/engine/stub"
	"github.com/goliatone/go-lingo/internal/history"
	"github.com/goliatone/go-lingo/internal/jobs"
	"github.com/goliatone/go-lingo/internal/logging"
	"github.com/goliatone/go-lingo/internal/logging/console"
	"github.com/goliatone/go-lingo/internal/logging/gologger"
	"github.com/goliatone/go-lingo/internal/pipeline"
	"github.com/goliatone/go-lingo/internal/runtimeconfig"
	"github.com/goliatone/go-lingo/internal/scheduler"
	"github.com/goliatone/go-lingo/internal/server"
	"github.com/goliatone/go-lingo/internal/status"
	"github.com/goliatone/go-lingo/internal/translate"
	"github.com/goliatone/go-lingo/pkg/interfaces"
	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Backend bundles every remote contract the HTTP client satisfies. An
// injected implementation replaces the built-in client wholesale; the
// container slices it per service.
type Backend interface {
	catalog.Provider
	translate.Backend
	history.Source
	pipeline.Recognizer
	pipeline.ImageTranslator
	conversation.Backend
	status.Reporter
}

// Container wires module dependencies from configuration. Collaborators are
// resolved once during NewContainer; accessors return the finalised bindings.
type Container struct {
	config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider

	bunDB      *bun.DB
	httpClient *http.Client

	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer
	resultCache   interfaces.CacheProvider

	languageRepo     catalog.LanguageRepository
	entryRepo        history.EntryRepository
	conversationRepo conversation.ConversationRepository
	messageRepo      conversation.MessageRepository
	checkRepo        status.CheckRepository

	backend Backend

	imageSource    interfaces.ImageSource
	permissionGate interfaces.PermissionGate

	catalogSvc      catalog.Service
	translateSvc    translate.Service
	historySvc      history.Service
	conversationSvc conversation.Service
	captureSvc      capture.Service
	pipelineSvc     pipeline.Service

	translator engine.Translator
	recognizer engine.Recognizer

	scheduler   interfaces.Scheduler
	worker      *jobs.Worker
	runRecorder jobs.RunRecorder

	serverAPI *server.API

	clock func() time.Time
	newID func() uuid.UUID
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB routes repositories through the given database instead of the
// in-memory defaults.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithHTTPClient overrides the transport used by the built-in backend client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Container) {
		c.httpClient = httpClient
	}
}

// WithBackendClient replaces the built-in backend client.
func WithBackendClient(backend Backend) Option {
	return func(c *Container) {
		c.backend = backend
	}
}

// WithImageSource overrides the default image source binding.
func WithImageSource(source interfaces.ImageSource) Option {
	return func(c *Container) {
		c.imageSource = source
	}
}

// WithPermissionGate overrides the default permission gate binding.
func WithPermissionGate(gate interfaces.PermissionGate) Option {
	return func(c *Container) {
		c.permissionGate = gate
	}
}

// WithLoggerProvider overrides the logging provider resolved from config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithScheduler overrides the default scheduler binding.
func WithScheduler(sched interfaces.Scheduler) Option {
	return func(c *Container) {
		c.scheduler = sched
	}
}

// WithCache overrides the default cache service wiring.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithCacheProvider plugs a host cache in front of the translation backend.
// Repeat requests for the same text and language pair are then served without
// a round trip.
func WithCacheProvider(cache interfaces.CacheProvider) Option {
	return func(c *Container) {
		c.resultCache = cache
	}
}

func WithRunRecorder(recorder jobs.RunRecorder) Option {
	return func(c *Container) {
		c.runRecorder = recorder
	}
}

// WithTranslator overrides the embedded server's translation engine.
func WithTranslator(translator engine.Translator) Option {
	return func(c *Container) {
		c.translator = translator
	}
}

// WithRecognizer overrides the embedded server's OCR engine.
func WithRecognizer(recognizer engine.Recognizer) Option {
	return func(c *Container) {
		c.recognizer = recognizer
	}
}

// WithCatalogService overrides the default catalog service binding.
func WithCatalogService(svc catalog.Service) Option {
	return func(c *Container) {
		c.catalogSvc = svc
	}
}

// WithTranslateService overrides the default translate service binding.
func WithTranslateService(svc translate.Service) Option {
	return func(c *Container) {
		c.translateSvc = svc
	}
}

// WithHistoryService overrides the default history service binding.
func WithHistoryService(svc history.Service) Option {
	return func(c *Container) {
		c.historySvc = svc
	}
}

func WithConversationService(svc conversation.Service) Option {
	return func(c *Container) {
		c.conversationSvc = svc
	}
}

func WithCaptureService(svc capture.Service) Option {
	return func(c *Container) {
		c.captureSvc = svc
	}
}

// WithPipelineService overrides the default pipeline service binding.
func WithPipelineService(svc pipeline.Service) Option {
	return func(c *Container) {
		c.pipelineSvc = svc
	}
}

// WithClock fixes the time source used by scheduling and the server.
func WithClock(clock func() time.Time) Option {
	return func(c *Container) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithIDGenerator fixes the id source used by the embedded server.
func WithIDGenerator(newID func() uuid.UUID) Option {
	return func(c *Container) {
		if newID != nil {
			c.newID = newID
		}
	}
}

// NewContainer validates cfg and resolves every module collaborator.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("di: invalid config: %w", err)
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	c := &Container{
		config:           cfg,
		cacheTTL:         cacheTTL,
		clock:            time.Now,
		newID:            uuid.New,
		languageRepo:     catalog.NewMemoryLanguageRepository(),
		entryRepo:        history.NewMemoryEntryRepository(),
		conversationRepo: conversation.NewMemoryConversationRepository(),
		messageRepo:      conversation.NewMemoryMessageRepository(),
		checkRepo:        status.NewMemoryCheckRepository(),
		imageSource:      noop.ImageSource(),
		permissionGate:   noop.PermissionGate(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLogging(); err != nil {
		return nil, err
	}

	c.configureCacheDefaults()
	c.configureRepositories()

	if err := c.seedLanguages(context.Background()); err != nil {
		return nil, err
	}

	if err := c.configureBackend(); err != nil {
		return nil, err
	}

	c.configureServices()
	c.configureScheduler()
	c.configureWorker()
	c.configureServer()

	return c, nil
}

func (c *Container) configureLogging() error {
	if c.loggerProvider != nil {
		return nil
	}
	if !c.config.Features.Logger {
		return nil
	}

	switch strings.ToLower(strings.TrimSpace(c.config.Logging.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.config.Logging.Level,
			Format:    c.config.Logging.Format,
			AddSource: c.config.Logging.AddSource,
			Focus:     c.config.Logging.Focus,
		})
		if err != nil {
			return fmt.Errorf("di: configure gologger provider: %w", err)
		}
		c.loggerProvider = provider
	default:
		c.loggerProvider = console.NewProvider(console.Options{
			MinLevel: consoleLevel(c.config.Logging.Level),
		})
	}

	return nil
}

// consoleLevel maps a config level onto the console provider's scale. Unknown
// levels return nil so the provider applies its own default.
func consoleLevel(level string) *console.Level {
	var resolved console.Level
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		resolved = console.LevelTrace
	case "debug":
		resolved = console.LevelDebug
	case "info":
		resolved = console.LevelInfo
	case "warn", "warning":
		resolved = console.LevelWarn
	case "error":
		resolved = console.LevelError
	case "fatal":
		resolved = console.LevelFatal
	default:
		return nil
	}
	return &resolved
}

func (c *Container) configureCacheDefaults() {
	if !c.config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() {
	if c.bunDB == nil {
		return
	}

	c.languageRepo = catalog.NewBunLanguageRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.entryRepo = history.NewBunEntryRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.conversationRepo = conversation.NewBunConversationRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.messageRepo = conversation.NewBunMessageRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.checkRepo = status.NewBunCheckRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
}

// seedLanguages fills an empty language store with the fallback catalog.
// Stores that already hold rows are left untouched, whatever they contain,
// so operator edits survive restarts.
func (c *Container) seedLanguages(ctx context.Context) error {
	if !c.config.Languages.SeedDefaults {
		return nil
	}

	logger := logging.ModuleLogger(c.loggerProvider, "lingo.languages")

	existing, err := c.languageRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("di: list languages before seeding: %w", err)
	}
	if len(existing) > 0 {
		logger.Debug("languages.seed.skip", "reason", "store not empty", "count", len(existing))
		return nil
	}

	defaults := catalog.DefaultLanguages()
	for _, language := range defaults {
		if _, err := c.languageRepo.Upsert(ctx, language); err != nil {
			return fmt.Errorf("di: seed language %q: %w", language.Code, err)
		}
	}

	logger.Info("languages.seed.complete", "count", len(defaults))
	return nil
}

func (c *Container) configureBackend() error {
	if c.backend != nil {
		return nil
	}

	baseURL := strings.TrimSpace(c.config.Backend.BaseURL)
	if baseURL == "" {
		return nil
	}

	clientOpts := []client.Option{
		client.WithTimeout(c.config.Backend.Timeout),
		client.WithLogger(logging.ClientLogger(c.loggerProvider)),
	}
	if c.httpClient != nil {
		clientOpts = append(clientOpts, client.WithHTTPClient(c.httpClient))
	}

	backend, err := client.New(baseURL, clientOpts...)
	if err != nil {
		return fmt.Errorf("di: configure backend client: %w", err)
	}
	c.backend = backend

	return nil
}

func (c *Container) configureServices() {
	cfg := c.config

	if c.catalogSvc == nil {
		c.catalogSvc = catalog.NewService(c.backend,
			catalog.WithLogger(logging.CatalogLogger(c.loggerProvider)),
		)
	}

	if c.historySvc == nil {
		c.historySvc = history.NewService(c.backend,
			history.WithLogger(logging.HistoryLogger(c.loggerProvider)),
			history.WithRecentLimit(cfg.History.RecentLimit),
			history.WithFetchLimit(cfg.History.FetchLimit),
		)
	}

	if c.translateSvc == nil {
		translateOpts := []translate.ServiceOption{
			translate.WithLogger(logging.TranslateLogger(c.loggerProvider)),
			translate.WithLanguagePair(cfg.Translation.DefaultSource, cfg.Translation.DefaultTarget),
			translate.WithRecents(c.historySvc),
		}
		if c.resultCache != nil {
			translateOpts = append(translateOpts, translate.WithCache(c.resultCache, c.cacheTTL))
		}
		c.translateSvc = translate.NewService(c.backend, translateOpts...)
	}

	if c.captureSvc == nil {
		c.captureSvc = capture.NewService(c.imageSource, c.permissionGate,
			capture.WithLogger(logging.CaptureLogger(c.loggerProvider)),
			capture.WithPickQuality(cfg.Capture.PickQuality),
		)
	}

	if c.pipelineSvc == nil {
		c.pipelineSvc = pipeline.NewService(c.captureSvc, c.backend, c.backend,
			pipeline.WithLogger(logging.PipelineLogger(c.loggerProvider)),
			pipeline.WithTargetResolver(c.translateSvc),
			pipeline.WithFallbackTarget(cfg.Translation.DefaultTarget),
		)
	}

	if c.conversationSvc == nil {
		if cfg.Features.Conversations {
			c.conversationSvc = conversation.NewService(c.backend,
				conversation.WithLogger(logging.ConversationLogger(c.loggerProvider)),
				conversation.WithDefaultSender(cfg.Conversations.DefaultSender),
				conversation.WithLanguagePair(cfg.Translation.DefaultSource, cfg.Translation.DefaultTarget),
			)
		} else {
			c.conversationSvc = conversation.NewNoOpService()
		}
	}
}

func (c *Container) configureScheduler() {
	logger := logging.ModuleLogger(c.loggerProvider, "lingo.scheduler")

	providerName := "custom"
	if c.scheduler == nil {
		if c.config.Features.Scheduling {
			c.scheduler = scheduler.NewInMemory(scheduler.WithClock(c.clock))
			providerName = "in-memory"
		} else {
			c.scheduler = scheduler.NewNoOp()
			providerName = "no-op"
		}
	}

	logger.Debug("scheduler.configured", "provider", providerName)
}

func (c *Container) configureWorker() {
	if !c.config.Features.Scheduling {
		return
	}

	if c.runRecorder == nil {
		c.runRecorder = jobs.NewInMemoryRunRecorder()
	}

	c.worker = jobs.NewWorker(c.scheduler, c.catalogSvc, c.entryRepo,
		jobs.WithLogger(logging.WorkerLogger(c.loggerProvider)),
		jobs.WithClock(c.clock),
		jobs.WithRunRecorder(c.runRecorder),
		jobs.WithRefreshInterval(c.config.Languages.RefreshInterval),
		jobs.WithRetention(c.config.History.Retention),
	)
}

func (c *Container) configureServer() {
	if !c.config.Server.Enabled {
		return
	}

	c.configureEngines()

	c.serverAPI = server.NewAPI(
		server.WithBasePath(c.config.Server.BasePath),
		server.WithLanguageRepository(c.languageRepo),
		server.WithEntryRepository(c.entryRepo),
		server.WithConversationRepositories(c.conversationRepo, c.messageRepo),
		server.WithStatusRepository(c.checkRepo),
		server.WithTranslator(c.translator),
		server.WithRecognizer(c.recognizer),
		server.WithLogger(logging.ServerLogger(c.loggerProvider)),
		server.WithClock(c.clock),
		server.WithIDGenerator(c.newID),
	)
}

// configureEngines resolves the embedded server's translation and OCR
// engines. A single engine instance backs both roles unless an override
// split them.
func (c *Container) configureEngines() {
	if c.translator != nil && c.recognizer != nil {
		return
	}

	var resolved interface {
		engine.Translator
		engine.Recognizer
	}

	switch strings.ToLower(strings.TrimSpace(c.config.Server.Engine)) {
	case "llm":
		llmCfg := c.config.Server.LLM
		llmOpts := []llm.Option{
			llm.WithAPIKey(llmCfg.APIKey),
			llm.WithModel(llmCfg.Model),
			llm.WithLogger(logging.ModuleLogger(c.loggerProvider, "lingo.engine")),
		}
		if llmCfg.Proxy != "" {
			llmOpts = append(llmOpts, llm.WithProxy(llmCfg.Proxy))
		}
		if llmCfg.Timeout > 0 {
			llmOpts = append(llmOpts, llm.WithTimeout(llmCfg.Timeout))
		}
		resolved = llm.New(llmCfg.BaseURL, llmOpts...)
	default:
		resolved = stub.New()
	}

	if c.translator == nil {
		c.translator = resolved
	}
	if c.recognizer == nil {
		c.recognizer = resolved
	}
}

// Config returns the validated configuration the container was built from.
func (c *Container) Config() runtimeconfig.Config {
	return c.config
}

// LoggerProvider exposes the resolved logging provider. Nil when logging is
// disabled; ModuleLogger treats that as no-op.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// CatalogService returns the configured catalog service.
func (c *Container) CatalogService() catalog.Service {
	return c.catalogSvc
}

// TranslateService returns the configured translate service.
func (c *Container) TranslateService() translate.Service {
	return c.translateSvc
}

// HistoryService returns the configured history service.
func (c *Container) HistoryService() history.Service {
	return c.historySvc
}

// ConversationService returns the configured conversation service.
func (c *Container) ConversationService() conversation.Service {
	return c.conversationSvc
}

// CaptureService returns the configured capture service.
func (c *Container) CaptureService() capture.Service {
	return c.captureSvc
}

func (c *Container) PipelineService() pipeline.Service {
	return c.pipelineSvc
}

// StatusReporter exposes the backend's status contract. Nil when no backend
// is configured.
func (c *Container) StatusReporter() status.Reporter {
	if c.backend == nil {
		return nil
	}
	return c.backend
}

// LanguageRepository exposes the configured language repository.
func (c *Container) LanguageRepository() catalog.LanguageRepository {
	return c.languageRepo
}

// EntryRepository exposes the configured history entry repository.
func (c *Container) EntryRepository() history.EntryRepository {
	return c.entryRepo
}

// ConversationRepository exposes the configured conversation repository.
func (c *Container) ConversationRepository() conversation.ConversationRepository {
	return c.conversationRepo
}

// MessageRepository exposes the configured message repository.
func (c *Container) MessageRepository() conversation.MessageRepository {
	return c.messageRepo
}

// CheckRepository exposes the configured status check repository.
func (c *Container) CheckRepository() status.CheckRepository {
	return c.checkRepo
}

// Scheduler exposes the configured scheduler.
func (c *Container) Scheduler() interfaces.Scheduler {
	return c.scheduler
}

// JobWorker returns the background worker. Nil unless scheduling is enabled.
func (c *Container) JobWorker() *jobs.Worker {
	return c.worker
}

// RunRecorder returns the job run log. Nil unless scheduling is enabled.
func (c *Container) RunRecorder() jobs.RunRecorder {
	return c.runRecorder
}

// ServerAPI returns the embedded HTTP API. Nil unless the server is enabled.
func (c *Container) ServerAPI() *server.API {
	return c.serverAPI
}
