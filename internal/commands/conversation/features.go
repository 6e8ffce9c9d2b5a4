package conversationcmd

import "errors"

// ErrConversationsDisabled reports commands reaching a disabled conversation module.
var ErrConversationsDisabled = errors.New("conversation command: module disabled")

// FeatureGates exposes the runtime toggle required by conversation command
// handlers. Callers supply a closure reading the module config so handlers
// stay decoupled from configuration packages.
type FeatureGates struct {
	ConversationsEnabled func() bool
}

func (g FeatureGates) conversationsEnabled() bool {
	if g.ConversationsEnabled == nil {
		return true
	}
	return g.ConversationsEnabled()
}
