package pipeline

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-lingo/capture"
	"github.com/goliatone/go-lingo/internal/logging"
	"github.com/goliatone/go-lingo/pkg/interfaces"
	"github.com/goliatone/go-lingo/translate"
)

// DefaultTargetLanguage is used when no target resolver is wired or the
// resolver has nothing selected yet.
const DefaultTargetLanguage = "es"

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithLogger overrides the module logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTargetResolver wires the component that knows the active target
// language, usually the text translation service.
func WithTargetResolver(resolver TargetResolver) ServiceOption {
	return func(s *service) {
		s.target = resolver
	}
}

// WithFallbackTarget sets the target used when no resolver answers.
func WithFallbackTarget(code string) ServiceOption {
	return func(s *service) {
		if trimmed := strings.ToLower(strings.TrimSpace(code)); trimmed != "" {
			s.fallbackTarget = trimmed
		}
	}
}

// WithListener registers an observer for stage transitions.
func WithListener(listener Listener) ServiceOption {
	return func(s *service) {
		s.listener = listener
	}
}

// runState is the mutable state of the active run. A fresh run starts from
// the zero value plus its opening stage.
type runState struct {
	stage           Stage
	image           *interfaces.ImagePayload
	extracted       string
	translated      string
	sourceLang      string
	targetLang      string
	extractionConf  *float64
	translationConf *float64
	notice          string
	lastErr         string
}

type service struct {
	capture        capture.Service
	recognizer     Recognizer
	translator     ImageTranslator
	target         TargetResolver
	logger         interfaces.Logger
	listener       Listener
	fallbackTarget string

	mu    sync.Mutex
	busy  bool
	token uint64
	state runState
}

// NewService constructs the image pipeline. The capture service may be nil
// when only Process is used; the acquisition entry points then fail with
// ErrCaptureServiceRequired.
func NewService(captureService capture.Service, recognizer Recognizer, translator ImageTranslator, opts ...ServiceOption) Service {
	svc := &service{
		capture:        captureService,
		recognizer:     recognizer,
		translator:     translator,
		logger:         logging.NoOp(),
		fallbackTarget: DefaultTargetLanguage,
		state:          runState{stage: StageIdle},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	return svc
}

func (s *service) Process(ctx context.Context, image *interfaces.ImagePayload) (Snapshot, error) {
	if image == nil {
		return s.Snapshot(), ErrImageRequired
	}
	token, snap, err := s.beginRun(StageExtracting, image)
	if err != nil {
		return snap, err
	}
	return s.run(ctx, token, image)
}

func (s *service) CaptureAndTranslate(ctx context.Context) (Snapshot, error) {
	if s.capture == nil {
		return s.Snapshot(), ErrCaptureServiceRequired
	}
	token, snap, err := s.beginRun(StageAcquiring, nil)
	if err != nil {
		return snap, err
	}

	image, err := s.capture.CaptureFromCamera(ctx)
	if err != nil {
		return s.failRun(token, err)
	}
	if image == nil {
		return s.cancelRun(token)
	}
	return s.processAcquired(ctx, token, image)
}

func (s *service) PickAndTranslate(ctx context.Context) (Snapshot, error) {
	if s.capture == nil {
		return s.Snapshot(), ErrCaptureServiceRequired
	}
	token, snap, err := s.beginRun(StageAcquiring, nil)
	if err != nil {
		return snap, err
	}

	image, err := s.capture.PickFromLibrary(ctx)
	if err != nil {
		return s.failRun(token, err)
	}
	if image == nil {
		return s.cancelRun(token)
	}
	return s.processAcquired(ctx, token, image)
}

func (s *service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Reset supersedes any in-flight run: the token moves on, so late responses
// from the old run find a mismatch and are dropped.
func (s *service) Reset() Snapshot {
	s.mu.Lock()
	s.token++
	s.busy = false
	s.state = runState{stage: StageIdle}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.logger.Debug("pipeline.reset", "token", snap.Token)
	s.notify(snap)
	return snap
}

// processAcquired moves an acquired image into extraction. Kept separate from
// run so the acquisition stages share one post-acquisition path.
func (s *service) processAcquired(ctx context.Context, token uint64, image *interfaces.ImagePayload) (Snapshot, error) {
	snap, err := s.transition(token, StageExtracting, func(st *runState) {
		st.image = image.Clone()
	})
	if err != nil {
		return snap, err
	}
	return s.run(ctx, token, image)
}

func (s *service) run(ctx context.Context, token uint64, image *interfaces.ImagePayload) (Snapshot, error) {
	if s.recognizer == nil {
		return s.failRun(token, ErrRecognizerRequired)
	}

	extraction, err := s.recognizer.ExtractText(ctx, image)
	if err != nil {
		return s.failRun(token, fmt.Errorf("%w: %v", ErrExtractionFailed, err))
	}

	text := ""
	var extractionConf *float64
	if extraction != nil {
		text = extraction.Text
		extractionConf = extraction.Confidence
	}

	if strings.TrimSpace(text) == "" {
		// Nothing readable in the image: the run completes without ever
		// calling the translator.
		snap, err := s.transition(token, StageSkippedNoText, func(st *runState) {
			st.extractionConf = extractionConf
		})
		if err != nil {
			return snap, err
		}
		s.logger.Info("pipeline.extraction.empty", "token", token)
		return s.transition(token, StageDone, nil)
	}

	snap, err := s.transition(token, StageTranslating, func(st *runState) {
		st.extracted = text
		st.extractionConf = extractionConf
	})
	if err != nil {
		return snap, err
	}

	if s.translator == nil {
		return s.failRun(token, ErrTranslatorRequired)
	}

	target := s.resolveTarget()
	translation, terr := s.translator.TranslateImage(ctx, image, translate.SourceAuto, target)
	if terr != nil {
		// Degraded completion: the extracted text still lands on screen, the
		// notice explains the missing translation.
		s.logger.Error("pipeline.translation.failed", "error", terr, "target", target, "token", token)
		return s.transition(token, StageDone, func(st *runState) {
			st.targetLang = target
			st.notice = translate.FailureNotice(terr)
		})
	}

	return s.transition(token, StageDone, func(st *runState) {
		if translation == nil {
			return
		}
		st.translated = translation.TranslatedText
		st.sourceLang = translation.SourceLanguage
		st.targetLang = translation.TargetLanguage
		st.translationConf = translation.Confidence
	})
}

// beginRun claims the pipeline for a new run and publishes its opening stage.
// The previous run's results are cleared.
func (s *service) beginRun(stage Stage, image *interfaces.ImagePayload) (uint64, Snapshot, error) {
	s.mu.Lock()
	if s.busy {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return 0, snap, ErrBusy
	}
	s.busy = true
	s.token++
	token := s.token
	s.state = runState{stage: stage, image: image.Clone()}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	logging.WithStage(s.logger, string(stage)).Debug("pipeline.run.started", "token", token)
	s.notify(snap)
	return token, snap, nil
}

// transition advances the run to the next stage. When the run's token no
// longer matches the active one the state is left untouched and the stale run
// is told so.
func (s *service) transition(token uint64, stage Stage, mutate func(*runState)) (Snapshot, error) {
	s.mu.Lock()
	if token != s.token {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		s.logger.Debug("pipeline.result.discarded", "token", token)
		return snap, ErrRunSuperseded
	}
	if mutate != nil {
		mutate(&s.state)
	}
	s.state.stage = stage
	if isTerminal(stage) {
		s.busy = false
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	logging.WithStage(s.logger, string(stage)).Debug("pipeline.stage.changed", "token", token)
	s.notify(snap)
	return snap, nil
}

// failRun settles the run in StageError carrying the cause, unless a newer
// run already took over.
func (s *service) failRun(token uint64, cause error) (Snapshot, error) {
	snap, err := s.transition(token, StageError, func(st *runState) {
		st.lastErr = cause.Error()
	})
	if err != nil {
		return snap, err
	}
	return snap, cause
}

// cancelRun settles a user-cancelled acquisition back to StageIdle with no
// error.
func (s *service) cancelRun(token uint64) (Snapshot, error) {
	snap, err := s.transition(token, StageIdle, func(st *runState) {
		st.image = nil
	})
	if err != nil {
		return snap, err
	}
	s.logger.Debug("pipeline.acquisition.cancelled", "token", token)
	return snap, nil
}

func (s *service) resolveTarget() string {
	if s.target != nil {
		if code := strings.ToLower(strings.TrimSpace(s.target.TargetLanguage())); code != "" {
			return code
		}
	}
	return s.fallbackTarget
}

func (s *service) snapshotLocked() Snapshot {
	return Snapshot{
		Stage:                 s.state.stage,
		Token:                 s.token,
		Image:                 s.state.image.Clone(),
		ExtractedText:         s.state.extracted,
		TranslatedText:        s.state.translated,
		SourceLanguage:        s.state.sourceLang,
		TargetLanguage:        s.state.targetLang,
		ExtractionConfidence:  cloneConfidence(s.state.extractionConf),
		TranslationConfidence: cloneConfidence(s.state.translationConf),
		Notice:                s.state.notice,
		LastError:             s.state.lastErr,
	}
}

func (s *service) notify(snap Snapshot) {
	if s.listener != nil {
		s.listener(snap)
	}
}

func isTerminal(stage Stage) bool {
	switch stage {
	case StageIdle, StageDone, StageError:
		return true
	}
	return false
}

func cloneConfidence(conf *float64) *float64 {
	if conf == nil {
		return nil
	}
	copied := *conf
	return &copied
}
