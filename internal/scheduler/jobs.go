package scheduler

// Job types dispatched by the maintenance worker.
const (
	JobTypeLanguagesRefresh = "lingo.languages.refresh"
	JobTypeHistoryCleanup   = "lingo.history.cleanup"
)

// Maintenance jobs are process singletons, so their keys are fixed strings:
// enqueueing again replaces the pending run instead of stacking duplicates.
const (
	LanguagesRefreshJobKey = "languages:refresh"
	HistoryCleanupJobKey   = "history:cleanup"
)
