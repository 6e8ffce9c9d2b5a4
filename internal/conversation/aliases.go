package conversation

import lingoconversation "github.com/goliatone/go-lingo/conversation"

type (
	Service        = lingoconversation.Service
	Backend        = lingoconversation.Backend
	Conversation   = lingoconversation.Conversation
	Message        = lingoconversation.Message
	MessageKind    = lingoconversation.MessageKind
	MessageRequest = lingoconversation.MessageRequest
)

const (
	MessageKindText  = lingoconversation.MessageKindText
	MessageKindVoice = lingoconversation.MessageKindVoice
	MessageKindImage = lingoconversation.MessageKindImage
)

var (
	ErrFeatureDisabled      = lingoconversation.ErrFeatureDisabled
	ErrEmptyMessage         = lingoconversation.ErrEmptyMessage
	ErrBusy                 = lingoconversation.ErrBusy
	ErrNoConversation       = lingoconversation.ErrNoConversation
	ErrBackendRequired      = lingoconversation.ErrBackendRequired
	ErrMessageRequired      = lingoconversation.ErrMessageRequired
	ErrConversationRequired = lingoconversation.ErrConversationRequired
)
