package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/soridam/announcer/config"
	"github.com/soridam/announcer/pkg/pipeline"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	*config.Config
}

func New(cfg *config.Config) (*Handler, error) {
	h := &Handler{
		Config: cfg,
	}

	return h, nil
}

func (h *Handler) Attach(r chi.Router) {
	r.Post("/announce", h.handleAnnounce)
}

func writeJson(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	enc.Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	code := "internal_error"
	message := http.StatusText(http.StatusInternalServerError)
	status := http.StatusInternalServerError

	var perr *pipeline.Error

	if errors.As(err, &perr) {
		code = string(perr.Code)
		message = perr.Message

		if perr.Code == pipeline.CodeValidation {
			status = http.StatusBadRequest
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   code,
		Message: message,
	})
}
