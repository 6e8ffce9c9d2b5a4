package server

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-lingo/conversation"
	"github.com/goliatone/go-lingo/internal/engine"
)

type conversationCreateResponse struct {
	ConversationID uuid.UUID `json:"conversation_id"`
}

type messagePayload struct {
	OriginalText   string `json:"original_text"`
	SourceLanguage string `json:"source_language"`
	TargetLanguage string `json:"target_language,omitempty"`
	MessageType    string `json:"message_type"`
	SenderID       string `json:"sender_id"`
}

func (api *API) registerConversationRoutes(mux *http.ServeMux, base string) {
	if mux == nil {
		return
	}
	root := joinPath(base, "conversation")
	mux.HandleFunc("POST "+root+"/create", api.handleConversationCreate)
	mux.HandleFunc("POST "+root+"/{id}/message", api.handleMessageAppend)
	mux.HandleFunc("GET "+root+"/{id}/messages", api.handleMessageList)
}

func (api *API) handleConversationCreate(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.conversations == nil {
		writeDetail(w, http.StatusServiceUnavailable, "conversations unavailable")
		return
	}

	record := &conversation.Conversation{
		ID:        api.newID(),
		CreatedAt: api.clock().UTC(),
	}
	stored, err := api.conversations.Create(r.Context(), record)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, conversationCreateResponse{ConversationID: stored.ID})
}

func (api *API) handleMessageAppend(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.messages == nil {
		writeDetail(w, http.StatusServiceUnavailable, "conversations unavailable")
		return
	}

	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid conversation id")
		return
	}

	var payload messagePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	text := strings.TrimSpace(payload.OriginalText)
	if text == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "original_text is required")
		return
	}
	source := strings.ToLower(strings.TrimSpace(payload.SourceLanguage))
	if source == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "source_language is required")
		return
	}
	kind := strings.TrimSpace(payload.MessageType)
	if kind == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "message_type is required")
		return
	}
	sender := strings.TrimSpace(payload.SenderID)
	if sender == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "sender_id is required")
		return
	}
	target := strings.ToLower(strings.TrimSpace(payload.TargetLanguage))

	message := &conversation.Message{
		ID:             api.newID(),
		ConversationID: id,
		SenderID:       sender,
		Kind:           conversation.MessageKind(kind),
		OriginalText:   text,
		SourceLanguage: source,
		TargetLanguage: target,
		Timestamp:      api.clock().UTC(),
	}

	// The backend owns translation: a distinct target language means the
	// stored message carries both texts.
	if target != "" && target != source {
		if api.translator == nil {
			writeDetail(w, http.StatusServiceUnavailable, "translation engine unavailable")
			return
		}
		answer, err := api.translator.Translate(r.Context(), engine.Request{
			Text:   text,
			Source: source,
			Target: target,
		})
		if err != nil {
			api.logger.Error("server.translate.failed", "error", err)
			writeDetail(w, http.StatusInternalServerError, "Translation failed: "+err.Error())
			return
		}
		message.TranslatedText = answer.Text
		message.IsTranslated = true
	}

	stored, err := api.messages.Append(r.Context(), message)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stored)
}

func (api *API) handleMessageList(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.messages == nil {
		writeDetail(w, http.StatusServiceUnavailable, "conversations unavailable")
		return
	}

	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid conversation id")
		return
	}

	messages, err := api.messages.ListByConversation(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if messages == nil {
		messages = []*conversation.Message{}
	}
	writeJSON(w, http.StatusOK, messages)
}
