package lingo

import "github.com/goliatone/go-lingo/internal/runtimeconfig"

var (
	ErrBackendBaseURLInvalid    = runtimeconfig.ErrBackendBaseURLInvalid
	ErrBackendTimeoutInvalid    = runtimeconfig.ErrBackendTimeoutInvalid
	ErrDefaultTargetRequired    = runtimeconfig.ErrDefaultTargetRequired
	ErrSchedulingRequiresWork   = runtimeconfig.ErrSchedulingRequiresWork
	ErrRefreshIntervalInvalid   = runtimeconfig.ErrRefreshIntervalInvalid
	ErrPickQualityInvalid       = runtimeconfig.ErrPickQualityInvalid
	ErrRecentLimitInvalid       = runtimeconfig.ErrRecentLimitInvalid
	ErrFetchLimitInvalid        = runtimeconfig.ErrFetchLimitInvalid
	ErrRecentExceedsFetch       = runtimeconfig.ErrRecentExceedsFetch
	ErrRetentionInvalid         = runtimeconfig.ErrRetentionInvalid
	ErrLoggingProviderRequired  = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown   = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid      = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid     = runtimeconfig.ErrLoggingFormatInvalid
	ErrServerAddrRequired       = runtimeconfig.ErrServerAddrRequired
	ErrServerEngineUnknown      = runtimeconfig.ErrServerEngineUnknown
	ErrServerStorageUnknown     = runtimeconfig.ErrServerStorageUnknown
	ErrServerStorageDSNRequired = runtimeconfig.ErrServerStorageDSNRequired
	ErrServerLLMModelRequired   = runtimeconfig.ErrServerLLMModelRequired
	ErrServerLLMBaseURLRequired = runtimeconfig.ErrServerLLMBaseURLRequired
)

type (
	Config              = runtimeconfig.Config
	BackendConfig       = runtimeconfig.BackendConfig
	LanguagesConfig     = runtimeconfig.LanguagesConfig
	TranslationConfig   = runtimeconfig.TranslationConfig
	CaptureConfig       = runtimeconfig.CaptureConfig
	HistoryConfig       = runtimeconfig.HistoryConfig
	ConversationConfig  = runtimeconfig.ConversationConfig
	CacheConfig         = runtimeconfig.CacheConfig
	LoggingConfig       = runtimeconfig.LoggingConfig
	ServerConfig        = runtimeconfig.ServerConfig
	ServerStorageConfig = runtimeconfig.ServerStorageConfig
	LLMConfig           = runtimeconfig.LLMConfig
	Features            = runtimeconfig.Features
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
