package status

import lingostatus "github.com/goliatone/go-lingo/status"

type (
	Check    = lingostatus.Check
	Reporter = lingostatus.Reporter
)
