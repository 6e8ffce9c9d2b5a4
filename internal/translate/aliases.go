package translate

import lingotranslate "github.com/goliatone/go-lingo/translate"

type (
	Service          = lingotranslate.Service
	Backend          = lingotranslate.Backend
	RecentsRefresher = lingotranslate.RecentsRefresher
	Request          = lingotranslate.Request
	Result           = lingotranslate.Result
	State            = lingotranslate.State
)

const SourceAuto = lingotranslate.SourceAuto

var (
	ErrEmptyInput      = lingotranslate.ErrEmptyInput
	ErrBusy            = lingotranslate.ErrBusy
	ErrBackendRequired = lingotranslate.ErrBackendRequired
)
