package pipelinecmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-lingo/internal/commands"
	"github.com/goliatone/go-lingo/pipeline"
	"github.com/goliatone/go-lingo/pkg/interfaces"
)

const translateImageMessageType = "lingo.image.translate"

// Image origins accepted by TranslateImageCommand.
const (
	OriginCamera  = "camera"
	OriginLibrary = "library"
)

// TranslateImageCommand acquires an image from the requested origin and runs
// it through extraction and translation. User cancellation settles the
// pipeline back to idle without failing the command.
type TranslateImageCommand struct {
	Origin string `json:"origin"`
}

// Type implements command.Message.
func (TranslateImageCommand) Type() string { return translateImageMessageType }

// Validate ensures the origin names a supported image source.
func (m TranslateImageCommand) Validate() error {
	errs := validation.Errors{}
	switch m.Origin {
	case OriginCamera, OriginLibrary:
	default:
		errs["origin"] = validation.NewError("lingo.image.translate.origin_invalid", "origin must be camera or library")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// TranslateImageHandler drives the image pipeline through the shared command
// foundation.
type TranslateImageHandler struct {
	inner *commands.Handler[TranslateImageCommand]
}

// NewTranslateImageHandler constructs a handler wired to the provided pipeline service.
func NewTranslateImageHandler(service pipeline.Service, logger interfaces.Logger, opts ...commands.HandlerOption[TranslateImageCommand]) *TranslateImageHandler {
	exec := func(ctx context.Context, msg TranslateImageCommand) error {
		var err error
		switch msg.Origin {
		case OriginCamera:
			_, err = service.CaptureAndTranslate(ctx)
		default:
			_, err = service.PickAndTranslate(ctx)
		}
		return err
	}

	// Image runs are the slowest operations in the module; the default
	// telemetry attaches their duration to every outcome.
	handlerOpts := []commands.HandlerOption[TranslateImageCommand]{
		commands.WithLogger[TranslateImageCommand](logger),
		commands.WithOperation[TranslateImageCommand]("image.translate"),
		commands.WithTelemetry[TranslateImageCommand](commands.DefaultTelemetry[TranslateImageCommand](logger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &TranslateImageHandler{
		inner: commands.NewHandler[TranslateImageCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[TranslateImageCommand].Execute.
func (h *TranslateImageHandler) Execute(ctx context.Context, msg TranslateImageCommand) error {
	return h.inner.Execute(ctx, msg)
}
