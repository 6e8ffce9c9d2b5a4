package lingo_test

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	lingo "github.com/goliatone/go-lingo"
	"github.com/goliatone/go-lingo/capture"
	"github.com/goliatone/go-lingo/catalog"
	"github.com/goliatone/go-lingo/conversation"
	"github.com/goliatone/go-lingo/history"
	"github.com/goliatone/go-lingo/pipeline"
	"github.com/goliatone/go-lingo/status"
	"github.com/goliatone/go-lingo/translate"
)

var _ func(*lingo.Module) catalog.Service = (*lingo.Module).Languages
var _ func(*lingo.Module) translate.Service = (*lingo.Module).Translator
var _ func(*lingo.Module) history.Service = (*lingo.Module).History
var _ func(*lingo.Module) conversation.Service = (*lingo.Module).Conversations
var _ func(*lingo.Module) capture.Service = (*lingo.Module).Capture
var _ func(*lingo.Module) pipeline.Service = (*lingo.Module).Pipeline
var _ func(*lingo.Module) status.Reporter = (*lingo.Module).Status
var _ func(*lingo.Module) lingo.LanguageDirectory = (*lingo.Module).LanguageDirectory

var _ catalog.Service = (lingo.CatalogService)(nil)
var _ translate.Service = (lingo.TranslateService)(nil)
var _ history.Service = (lingo.HistoryService)(nil)
var _ conversation.Service = (lingo.ConversationService)(nil)
var _ capture.Service = (lingo.CaptureService)(nil)
var _ pipeline.Service = (lingo.PipelineService)(nil)
var _ status.Reporter = (lingo.StatusReporter)(nil)
var _ lingo.LanguageDirectory = (lingo.LanguageDirectory)(nil)

func TestPublicContractsDoNotReferenceInternalPackages(t *testing.T) {
	t.Parallel()

	types := map[string]reflect.Type{
		"catalog.Service":  reflect.TypeOf((*catalog.Service)(nil)).Elem(),
		"catalog.Language": reflect.TypeOf(catalog.Language{}),

		"translate.Service": reflect.TypeOf((*translate.Service)(nil)).Elem(),
		"translate.Request": reflect.TypeOf(translate.Request{}),
		"translate.Result":  reflect.TypeOf(translate.Result{}),
		"translate.State":   reflect.TypeOf(translate.State{}),

		"history.Service": reflect.TypeOf((*history.Service)(nil)).Elem(),

		"conversation.Service":        reflect.TypeOf((*conversation.Service)(nil)).Elem(),
		"conversation.Conversation":   reflect.TypeOf(conversation.Conversation{}),
		"conversation.Message":        reflect.TypeOf(conversation.Message{}),
		"conversation.MessageRequest": reflect.TypeOf(conversation.MessageRequest{}),

		"capture.Service": reflect.TypeOf((*capture.Service)(nil)).Elem(),

		"pipeline.Service":          reflect.TypeOf((*pipeline.Service)(nil)).Elem(),
		"pipeline.Snapshot":         reflect.TypeOf(pipeline.Snapshot{}),
		"pipeline.Extraction":       reflect.TypeOf(pipeline.Extraction{}),
		"pipeline.ImageTranslation": reflect.TypeOf(pipeline.ImageTranslation{}),

		"status.Reporter": reflect.TypeOf((*status.Reporter)(nil)).Elem(),
		"status.Check":    reflect.TypeOf(status.Check{}),

		"lingo.LanguageDirectory": reflect.TypeOf((*lingo.LanguageDirectory)(nil)).Elem(),
		"lingo.LanguageInfo":      reflect.TypeOf(lingo.LanguageInfo{}),
	}

	for name, typ := range types {
		for _, leak := range internalLeaks(name, typ, map[reflect.Type]bool{}) {
			t.Errorf("public surface leaks internal type: %s", leak)
		}
	}

	module := reflect.TypeOf((*lingo.Module)(nil))
	for _, accessor := range []string{"Languages", "Translator", "History", "Conversations", "Capture", "Pipeline", "Status", "LanguageDirectory"} {
		method, ok := module.MethodByName(accessor)
		if !ok {
			t.Fatalf("expected lingo.Module.%s accessor", accessor)
		}
		if method.Type.NumOut() != 1 {
			t.Fatalf("expected lingo.Module.%s to return one value, got %d", accessor, method.Type.NumOut())
		}
		for _, leak := range internalLeaks("lingo.Module."+accessor, method.Type.Out(0), map[reflect.Type]bool{}) {
			t.Errorf("accessor leaks internal type: %s", leak)
		}
	}
}

// internalLeaks walks every type reachable from typ and reports a path for
// each one declared under an internal package. seen stops recursive types
// from looping.
func internalLeaks(path string, typ reflect.Type, seen map[reflect.Type]bool) []string {
	if typ == nil || seen[typ] {
		return nil
	}
	seen[typ] = true

	var leaks []string
	if strings.Contains(typ.PkgPath(), "/internal/") {
		leaks = append(leaks, fmt.Sprintf("%s refers to %s (%s)", path, typ.String(), typ.PkgPath()))
	}

	switch typ.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Array, reflect.Chan:
		leaks = append(leaks, internalLeaks(path, typ.Elem(), seen)...)
	case reflect.Map:
		leaks = append(leaks, internalLeaks(path, typ.Key(), seen)...)
		leaks = append(leaks, internalLeaks(path, typ.Elem(), seen)...)
	case reflect.Struct:
		for i := 0; i < typ.NumField(); i++ {
			field := typ.Field(i)
			leaks = append(leaks, internalLeaks(path+"."+field.Name, field.Type, seen)...)
		}
	case reflect.Interface:
		for i := 0; i < typ.NumMethod(); i++ {
			method := typ.Method(i)
			leaks = append(leaks, internalLeaks(path+"."+method.Name, method.Type, seen)...)
		}
	case reflect.Func:
		for i := 0; i < typ.NumIn(); i++ {
			leaks = append(leaks, internalLeaks(path, typ.In(i), seen)...)
		}
		for i := 0; i < typ.NumOut(); i++ {
			leaks = append(leaks, internalLeaks(path, typ.Out(i), seen)...)
		}
	}
	return leaks
}
