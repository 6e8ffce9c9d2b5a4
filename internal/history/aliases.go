package history

import lingohistory "github.com/goliatone/go-lingo/history"

type (
	Service = lingohistory.Service
	Source  = lingohistory.Source
)

var (
	ErrSourceRequired = lingohistory.ErrSourceRequired
	ErrEntryRequired  = lingohistory.ErrEntryRequired
)
