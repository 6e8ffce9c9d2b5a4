package server

import (
	"context"
	"encoding/base64"
	"net/http"
	"strconv"
	"strings"

	"github.com/goliatone/go-lingo/internal/engine"
	"github.com/goliatone/go-lingo/translate"
)

// fallbackLanguage is used when auto-detection fails or yields a language
// outside the catalog.
const fallbackLanguage = "en"

type textTranslatePayload struct {
	Text           string  `json:"text"`
	SourceLanguage string  `json:"source_language"`
	TargetLanguage string  `json:"target_language"`
	Context        *string `json:"context,omitempty"`
}

type imageTranslatePayload struct {
	ImageBase64    string `json:"image_base64"`
	SourceLanguage string `json:"source_language"`
	TargetLanguage string `json:"target_language"`
}

type imageTranslateResponse struct {
	OriginalText   string   `json:"original_text"`
	TranslatedText string   `json:"translated_text"`
	SourceLanguage string   `json:"source_language"`
	TargetLanguage string   `json:"target_language"`
	Confidence     *float64 `json:"confidence_score"`
}

type ocrExtractPayload struct {
	ImageBase64 string `json:"image_base64"`
}

type ocrExtractResponse struct {
	ExtractedText string   `json:"extracted_text"`
	Confidence    *float64 `json:"confidence_score"`
}

func (api *API) registerTranslationRoutes(mux *http.ServeMux, base string) {
	if mux == nil {
		return
	}
	mux.HandleFunc("POST "+joinPath(base, "translate/text"), api.handleTextTranslate)
	mux.HandleFunc("GET "+joinPath(base, "translate/history"), api.handleTranslationHistory)
	mux.HandleFunc("POST "+joinPath(base, "translate/image"), api.handleImageTranslate)
	mux.HandleFunc("POST "+joinPath(base, "ocr/extract"), api.handleOCRExtract)
}

func (api *API) handleTextTranslate(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.translator == nil || api.entries == nil {
		writeDetail(w, http.StatusServiceUnavailable, "translation engine unavailable")
		return
	}

	var payload textTranslatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	text := strings.TrimSpace(payload.Text)
	if text == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "text is required")
		return
	}
	target := strings.ToLower(strings.TrimSpace(payload.TargetLanguage))
	if target == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "target_language is required")
		return
	}

	source := api.resolveSource(r.Context(), payload.SourceLanguage, text)

	translated := text
	confidence := 1.0
	if source != target {
		answer, err := api.translator.Translate(r.Context(), engine.Request{
			Text:    text,
			Source:  source,
			Target:  target,
			Context: derefString(payload.Context),
		})
		if err != nil {
			api.logger.Error("server.translate.failed", "error", err)
			writeDetail(w, http.StatusInternalServerError, "Translation failed: "+err.Error())
			return
		}
		translated = answer.Text
		if answer.Confidence != nil {
			confidence = *answer.Confidence
		}
	}

	record := &translate.Result{
		ID:             api.newID(),
		OriginalText:   text,
		TranslatedText: translated,
		SourceLanguage: source,
		TargetLanguage: target,
		Context:        payload.Context,
		Confidence:     &confidence,
		Timestamp:      api.clock().UTC(),
	}
	stored, err := api.entries.Create(r.Context(), record)
	if err != nil {
		api.logger.Error("server.history.store.failed", "error", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stored)
}

func (api *API) handleTranslationHistory(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.entries == nil {
		writeDetail(w, http.StatusServiceUnavailable, "translation history unavailable")
		return
	}

	limit := 50
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeDetail(w, http.StatusUnprocessableEntity, "limit must be an integer")
			return
		}
		limit = parsed
	}

	entries, err := api.entries.List(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if entries == nil {
		entries = []*translate.Result{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (api *API) handleImageTranslate(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.translator == nil || api.recognizer == nil {
		writeDetail(w, http.StatusServiceUnavailable, "image translation unavailable")
		return
	}

	var payload imageTranslatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	target := strings.ToLower(strings.TrimSpace(payload.TargetLanguage))
	if target == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "target_language is required")
		return
	}
	image, err := decodeImagePayload(payload.ImageBase64)
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	recognition, err := api.recognizer.Extract(r.Context(), image, "")
	if err != nil {
		api.logger.Error("server.ocr.failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Text extraction failed: "+err.Error())
		return
	}

	response := imageTranslateResponse{
		OriginalText:   recognition.Text,
		TargetLanguage: target,
		Confidence:     recognition.Confidence,
	}
	if recognition.Text == "" {
		response.SourceLanguage = strings.ToLower(strings.TrimSpace(payload.SourceLanguage))
		writeJSON(w, http.StatusOK, response)
		return
	}

	source := api.resolveSource(r.Context(), payload.SourceLanguage, recognition.Text)
	response.SourceLanguage = source

	if source == target {
		confidence := 1.0
		response.TranslatedText = recognition.Text
		response.Confidence = &confidence
		writeJSON(w, http.StatusOK, response)
		return
	}

	answer, err := api.translator.Translate(r.Context(), engine.Request{
		Text:   recognition.Text,
		Source: source,
		Target: target,
	})
	if err != nil {
		api.logger.Error("server.translate.failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Translation failed: "+err.Error())
		return
	}
	response.TranslatedText = answer.Text
	if answer.Confidence != nil {
		response.Confidence = answer.Confidence
	}
	writeJSON(w, http.StatusOK, response)
}

func (api *API) handleOCRExtract(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.recognizer == nil {
		writeDetail(w, http.StatusServiceUnavailable, "text recognition unavailable")
		return
	}

	var payload ocrExtractPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	image, err := decodeImagePayload(payload.ImageBase64)
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	recognition, err := api.recognizer.Extract(r.Context(), image, "")
	if err != nil {
		api.logger.Error("server.ocr.failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Text extraction failed: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, ocrExtractResponse{
		ExtractedText: recognition.Text,
		Confidence:    recognition.Confidence,
	})
}

// resolveSource normalizes the requested source language. Blank requests
// default to auto-detection; detection errors and codes outside the catalog
// fall back to English, mirroring the behavior clients already rely on.
func (api *API) resolveSource(ctx context.Context, requested, text string) string {
	source := strings.ToLower(strings.TrimSpace(requested))
	if source != "" && source != translate.SourceAuto {
		return source
	}

	detected, err := api.translator.Detect(ctx, text)
	if err != nil {
		api.logger.Warn("server.detect.failed", "error", err)
		return fallbackLanguage
	}
	detected = strings.ToLower(strings.TrimSpace(detected))
	if detected == "" {
		return fallbackLanguage
	}
	if api.languages != nil {
		if _, err := api.languages.GetByCode(ctx, detected); err != nil {
			api.logger.Debug("server.detect.unsupported", "detected", detected)
			return fallbackLanguage
		}
	}
	return detected
}

func decodeImagePayload(encoded string) ([]byte, error) {
	trimmed := strings.TrimSpace(encoded)
	if trimmed == "" {
		return nil, errImageRequired
	}
	data, err := base64.StdEncoding.DecodeString(trimmed)
	if err != nil {
		return nil, errImageEncoding
	}
	return data, nil
}

func derefString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
