package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"meetingreel/core/media"
	"meetingreel/core/reel"
	"meetingreel/logger"
	"meetingreel/model"
)

// ReelHandler serves the reel generation API.
type ReelHandler struct {
	pipeline *reel.Pipeline
	engine   media.Engine
}

// NewReelHandler creates the HTTP handler around a pipeline.
func NewReelHandler(pipeline *reel.Pipeline, engine media.Engine) *ReelHandler {
	return &ReelHandler{pipeline: pipeline, engine: engine}
}

// CreateReelHandler runs one pipeline invocation for the posted request and
// returns the resulting artifact. Input errors map to 400; anything the
// fallback cascade could not absorb maps to 500.
func (h *ReelHandler) CreateReelHandler(w http.ResponseWriter, r *http.Request) {
	var req model.ReelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Meeting.ID == "" {
		http.Error(w, "meeting.id is required", http.StatusBadRequest)
		return
	}
	if req.SourcePath == "" {
		http.Error(w, "sourcePath is required", http.StatusBadRequest)
		return
	}

	result, err := h.pipeline.GenerateHighlightReel(r.Context(), req)
	if err != nil {
		if isInputError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		logger.Error("reel generation failed",
			logger.String("meetingId", req.Meeting.ID),
			logger.ErrorField(err))
		http.Error(w, "reel generation failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// HealthHandler reports service liveness and engine availability.
func (h *ReelHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":          "ok",
		"engineAvailable": h.engine.Available(),
	})
}

// isInputError reports whether err is a caller mistake rather than a
// pipeline failure.
func isInputError(err error) bool {
	return errors.Is(err, reel.ErrNoHighlights) ||
		errors.Is(err, reel.ErrSourceMissing) ||
		errors.Is(err, reel.ErrInvalidHighlight)
}
