package server

import (
	"net/http"
	"strings"

	"github.com/goliatone/go-lingo/status"
)

type statusCreatePayload struct {
	ClientName string `json:"client_name"`
}

func (api *API) registerStatusRoutes(mux *http.ServeMux, base string) {
	if mux == nil {
		return
	}
	root := joinPath(base, "status")
	mux.HandleFunc("GET "+root, api.handleStatusList)
	mux.HandleFunc("POST "+root, api.handleStatusCreate)
}

func (api *API) handleStatusCreate(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.checks == nil {
		writeDetail(w, http.StatusServiceUnavailable, "status checks unavailable")
		return
	}

	var payload statusCreatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	name := strings.TrimSpace(payload.ClientName)
	if name == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "client_name is required")
		return
	}

	stored, err := api.checks.Upsert(r.Context(), &status.Check{
		ClientName: name,
		Timestamp:  api.clock().UTC(),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stored)
}

func (api *API) handleStatusList(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.checks == nil {
		writeDetail(w, http.StatusServiceUnavailable, "status checks unavailable")
		return
	}

	checks, err := api.checks.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if checks == nil {
		checks = []*status.Check{}
	}
	writeJSON(w, http.StatusOK, checks)
}
