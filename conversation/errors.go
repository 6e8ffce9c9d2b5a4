package conversation

import "errors"

var (
	// ErrFeatureDisabled indicates conversations are disabled via configuration.
	ErrFeatureDisabled = errors.New("conversation: feature disabled")
	// ErrEmptyMessage rejects blank message text before any network call.
	ErrEmptyMessage = errors.New("conversation: message text is empty")
	// ErrBusy indicates an append is already in flight.
	ErrBusy = errors.New("conversation: append already in progress")
	// ErrNoConversation indicates no conversation has been started or loaded.
	ErrNoConversation = errors.New("conversation: no active conversation")
	// ErrBackendRequired indicates the service has no backend wired.
	ErrBackendRequired = errors.New("conversation: backend is required")
	// ErrMessageRequired indicates a nil message was handed to a repository.
	ErrMessageRequired = errors.New("conversation: message is required")
	// ErrConversationRequired indicates a nil conversation was handed to a repository.
	ErrConversationRequired = errors.New("conversation: conversation is required")
)
