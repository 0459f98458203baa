package api

import (
	"encoding/json"
	"net/http"

	"github.com/soridam/announcer/pkg/audio"
	"github.com/soridam/announcer/pkg/pipeline"
)

func (h *Handler) handleAnnounce(w http.ResponseWriter, r *http.Request) {
	var req AnnounceRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, pipeline.Validationf("invalid request body"))
		return
	}

	announcer, err := h.Announcer()

	if err != nil {
		writeError(w, err)
		return
	}

	result, err := announcer.Generate(r.Context(), pipeline.Request{
		Keyword: req.Keyword,
		Mood:    req.Mood,

		BackgroundURL: req.BGMURL,
	})

	if err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, AnnounceResponse{
		Script: result.Script,

		Audio:       result.Audio.Content,
		ContentType: audio.TypeMP3,
	})
}
