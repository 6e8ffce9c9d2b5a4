package pipeline

import lingopipeline "github.com/goliatone/go-lingo/pipeline"

type (
	Service          = lingopipeline.Service
	Stage            = lingopipeline.Stage
	Snapshot         = lingopipeline.Snapshot
	Extraction       = lingopipeline.Extraction
	ImageTranslation = lingopipeline.ImageTranslation
	Recognizer       = lingopipeline.Recognizer
	ImageTranslator  = lingopipeline.ImageTranslator
	TargetResolver   = lingopipeline.TargetResolver
	Listener         = lingopipeline.Listener
)

const (
	StageIdle          = lingopipeline.StageIdle
	StageAcquiring     = lingopipeline.StageAcquiring
	StageExtracting    = lingopipeline.StageExtracting
	StageTranslating   = lingopipeline.StageTranslating
	StageSkippedNoText = lingopipeline.StageSkippedNoText
	StageDone          = lingopipeline.StageDone
	StageError         = lingopipeline.StageError
)

var (
	ErrBusy                   = lingopipeline.ErrBusy
	ErrRunSuperseded          = lingopipeline.ErrRunSuperseded
	ErrImageRequired          = lingopipeline.ErrImageRequired
	ErrExtractionFailed       = lingopipeline.ErrExtractionFailed
	ErrRecognizerRequired     = lingopipeline.ErrRecognizerRequired
	ErrTranslatorRequired     = lingopipeline.ErrTranslatorRequired
	ErrCaptureServiceRequired = lingopipeline.ErrCaptureServiceRequired
)
