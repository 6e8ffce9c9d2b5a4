package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-lingo/internal/catalog"
	"github.com/goliatone/go-lingo/internal/conversation"
	"github.com/goliatone/go-lingo/internal/status"
)

// errorResponse is the failure body the client parses: a single
// human-readable detail string.
type errorResponse struct {
	Detail string `json:"detail"`
}

func joinPath(base, suffix string) string {
	trimmedBase := strings.TrimSpace(base)
	trimmedSuffix := strings.TrimSpace(suffix)
	if trimmedBase == "" {
		if trimmedSuffix == "" {
			return "/"
		}
		return "/" + strings.Trim(trimmedSuffix, "/")
	}
	baseClean := "/" + strings.Trim(trimmedBase, "/")
	if trimmedSuffix == "" {
		return baseClean
	}
	return baseClean + "/" + strings.Trim(trimmedSuffix, "/")
}

func decodeJSON(r *http.Request, target any) error {
	if r == nil || r.Body == nil {
		return io.EOF
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	if err := decoder.Decode(target); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, code int, payload any) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeDetail(w http.ResponseWriter, code int, detail string) {
	writeJSON(w, code, errorResponse{Detail: detail})
}

func writeError(w http.ResponseWriter, err error) {
	code, payload := mapError(err)
	writeJSON(w, code, payload)
}

func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{Detail: "unknown error"}
	}

	var catalogNotFound *catalog.NotFoundError
	if errors.As(err, &catalogNotFound) {
		return http.StatusNotFound, errorResponse{Detail: catalogNotFound.Error()}
	}

	var conversationNotFound *conversation.NotFoundError
	if errors.As(err, &conversationNotFound) {
		return http.StatusNotFound, errorResponse{Detail: conversationNotFound.Error()}
	}

	if errors.Is(err, status.ErrClientNameRequired) ||
		errors.Is(err, catalog.ErrLanguageCodeRequired) {
		return http.StatusUnprocessableEntity, errorResponse{Detail: err.Error()}
	}

	return http.StatusInternalServerError, errorResponse{Detail: err.Error()}
}

func parseUUID(value string) (uuid.UUID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return uuid.Nil, errors.New("uuid required")
	}
	parsed, err := uuid.Parse(trimmed)
	if err != nil {
		return uuid.Nil, err
	}
	return parsed, nil
}
