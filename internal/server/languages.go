package server

import "net/http"

type languagePayload struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	NativeName string `json:"native_name"`
}

func (api *API) registerLanguageRoutes(mux *http.ServeMux, base string) {
	if mux == nil {
		return
	}
	mux.HandleFunc("GET "+joinPath(base, "languages"), api.handleLanguageList)
}

func (api *API) handleLanguageList(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.languages == nil {
		writeDetail(w, http.StatusServiceUnavailable, "language catalog unavailable")
		return
	}
	records, err := api.languages.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	payload := make([]languagePayload, 0, len(records))
	for _, language := range records {
		if language == nil || !language.IsActive {
			continue
		}
		payload = append(payload, languagePayload{
			Code:       language.Code,
			Name:       language.Name,
			NativeName: language.NativeName,
		})
	}
	writeJSON(w, http.StatusOK, payload)
}
