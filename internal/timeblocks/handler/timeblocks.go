package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"timegrid/internal/timeblocks/service"
	httputil "timegrid/pkg/http"
	"timegrid/pkg/logger"
	"timegrid/pkg/model"
)

type TimeBlockHandler struct {
	service service.TimeBlockService
	log     *logger.Logger
}

func NewTimeBlockHandler(service service.TimeBlockService, log *logger.Logger) *TimeBlockHandler {
	return &TimeBlockHandler{
		service: service,
		log:     log,
	}
}

// Preview computes and reconciles the weekly grid without persisting it.
func (h *TimeBlockHandler) Preview(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var cfg model.BlockConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Preview", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	preview, err := h.service.Preview(r.Context(), &cfg)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Preview", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, preview); err != nil {
		h.log.Error("failed to write success response", "handler", "Preview", "operation", "WriteSuccess", "error", err)
	}
}

// Generate runs the full pipeline and submits the grid upstream.
func (h *TimeBlockHandler) Generate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var cfg model.BlockConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Generate", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	outcome, err := h.service.Generate(r.Context(), &cfg)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Generate", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, outcome); err != nil {
		h.log.Error("failed to write created response", "handler", "Generate", "operation", "WriteCreated", "error", err)
	}
}

func (h *TimeBlockHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/timeblocks/preview", h.Preview)
	router.POST("/api/v1/timeblocks/generate", h.Generate)
}
