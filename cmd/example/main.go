// Command example runs the full translation loop in one process: it starts
// the embedded backend with the deterministic stub engine, points a lingo
// module at it, and walks text translation, the image pipeline, recents,
// conversations, and status checks.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	lingo "github.com/goliatone/go-lingo"
	"github.com/goliatone/go-lingo/conversation"
	"github.com/goliatone/go-lingo/internal/di"
	"github.com/goliatone/go-lingo/pkg/interfaces"
	"github.com/goliatone/go-lingo/translate"
)

// scriptedImageSource feeds the pipeline a fixed phrase as image bytes. The
// stub recognition engine reads the bytes back out as the extracted text, so
// the demo needs no real camera or photo library.
type scriptedImageSource struct {
	phrase string
}

func (s scriptedImageSource) Capture(context.Context) (*interfaces.ImagePayload, error) {
	return s.payload(), nil
}

func (s scriptedImageSource) Pick(context.Context, interfaces.PickOptions) (*interfaces.ImagePayload, error) {
	return s.payload(), nil
}

func (s scriptedImageSource) payload() *interfaces.ImagePayload {
	return &interfaces.ImagePayload{
		URI:  "memory://menu-photo",
		Data: []byte(s.phrase),
		MIME: "text/plain",
	}
}

// memoryCache keeps translation results for the lifetime of the process so
// repeat phrases skip the backend round trip.
type memoryCache struct{ entries sync.Map }

func (c *memoryCache) Get(_ context.Context, key string) (any, error) {
	if value, ok := c.entries.Load(key); ok {
		return value, nil
	}
	return nil, errors.New("miss")
}

func (c *memoryCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	c.entries.Store(key, value)
	return nil
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	c.entries.Delete(key)
	return nil
}

func (c *memoryCache) Clear(context.Context) error {
	c.entries.Range(func(key, _ any) bool {
		c.entries.Delete(key)
		return true
	})
	return nil
}

func main() {
	ctx := context.Background()

	baseURL := startBackend()
	fmt.Printf("embedded backend listening at %s\n", baseURL)

	cfg := lingo.DefaultConfig()
	cfg.Backend.BaseURL = baseURL
	cfg.Backend.ClientName = "lingo-example"
	cfg.Translation.DefaultSource = "auto"
	cfg.Translation.DefaultTarget = "es"

	module, err := lingo.New(cfg,
		di.WithImageSource(scriptedImageSource{phrase: "thank you"}),
		di.WithCacheProvider(&memoryCache{}),
	)
	if err != nil {
		log.Fatalf("initialise lingo: %v", err)
	}

	// Language catalog: loaded once, then resolved from cache.
	languages, err := module.Languages().Load(ctx)
	if err != nil {
		log.Fatalf("load languages: %v", err)
	}
	codes := make([]string, 0, len(languages))
	for _, language := range languages {
		codes = append(codes, language.Code)
	}
	prettyPrint("supported languages", codes)

	// Text translation on the default auto -> es pair.
	translator := module.Translator()
	result, err := translator.Translate(ctx, translate.Request{Text: "hello"})
	if err != nil {
		log.Fatalf("translate text: %v", err)
	}
	prettyPrint("text translation", result)

	// The identical request again is served from the host cache, so the
	// recents list below stays free of duplicates.
	if _, err := translator.Translate(ctx, translate.Request{Text: "hello"}); err != nil {
		log.Fatalf("repeat translate: %v", err)
	}

	// Swapping away from auto detection is refused with a notice.
	state := translator.SwapLanguages()
	fmt.Printf("\nswap with auto source: notice=%q pair=%s->%s\n",
		state.Notice, state.SourceLanguage, state.TargetLanguage)

	translator.SetSourceLanguage("en")
	state = translator.SwapLanguages()
	fmt.Printf("swap after pinning en: pair=%s->%s\n", state.SourceLanguage, state.TargetLanguage)
	translator.SwapLanguages()

	// Image pipeline: acquire, extract, translate.
	snapshot, err := module.Pipeline().PickAndTranslate(ctx)
	if err != nil {
		log.Fatalf("image pipeline: %v", err)
	}
	prettyPrint("image pipeline snapshot", map[string]any{
		"stage":      snapshot.Stage,
		"extracted":  snapshot.ExtractedText,
		"translated": snapshot.TranslatedText,
		"notice":     snapshot.Notice,
	})

	// Recents cache refreshed by the translations above.
	recents := module.History().Recent()
	prettyPrint("recent translations", recents)

	// Conversation: the backend stores and translates each message.
	conversations := module.Conversations()
	conversationID, err := conversations.Start(ctx)
	if err != nil {
		log.Fatalf("start conversation: %v", err)
	}
	fmt.Printf("\nconversation %s started\n", conversationID)

	message, err := conversations.Append(ctx, conversation.MessageRequest{
		Text:   "hola",
		Source: "es",
		Target: "en",
	})
	if err != nil {
		log.Fatalf("append message: %v", err)
	}
	prettyPrint("conversation message", message)

	// Status check registered under the configured client name.
	check, err := module.Status().PostStatus(ctx, cfg.Backend.ClientName)
	if err != nil {
		log.Fatalf("post status: %v", err)
	}
	prettyPrint("status check", check)
}

// startBackend runs the embedded translation backend on a loopback port and
// returns its base URL.
func startBackend() string {
	cfg := lingo.DefaultConfig()
	cfg.Backend.BaseURL = ""
	cfg.Server.Enabled = true
	cfg.Features.Scheduling = false

	backend, err := lingo.New(cfg)
	if err != nil {
		log.Fatalf("initialise backend: %v", err)
	}

	mux := http.NewServeMux()
	if err := backend.Server().Register(mux); err != nil {
		log.Fatalf("register backend routes: %v", err)
	}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		log.Fatalf("listen: %v", err)
	}
	go func() {
		if err := http.Serve(listener, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("backend stopped: %v", err)
		}
	}()

	return "http://" + listener.Addr().String()
}

func prettyPrint(label string, payload any) {
	fmt.Printf("\n%s:\n", label)
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		log.Printf("pretty print %s: %v", label, err)
	}
}
