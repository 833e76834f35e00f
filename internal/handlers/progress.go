package handlers

import (
	"net/http"
	"strconv"

	"signquiz-backend/internal/middleware"
	"signquiz-backend/internal/models"
	"signquiz-backend/internal/services"
)

const maxRecentLimit = 50

type ProgressHandler struct {
	progress *services.ProgressService
}

func NewProgressHandler(progressService *services.ProgressService) *ProgressHandler {
	return &ProgressHandler{progress: progressService}
}

type overviewResponse struct {
	*services.Overview
	Notice string `json:"notice,omitempty"`
}

type recentResponse struct {
	Recent   []models.AnswerEvent `json:"recent"`
	Fallback bool                 `json:"fallback"`
	Notice   string               `json:"notice,omitempty"`
}

func (h *ProgressHandler) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.progress.Overview(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	resp := overviewResponse{Overview: overview}
	if overview.Fallback {
		resp.Notice = fallbackNotice
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *ProgressHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxRecentLimit {
			writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed",
				map[string]string{"limit": "Must be between 1 and 50"}, r))
			return
		}
		limit = n
	}

	recent, usedFallback := h.progress.Recent(r.Context(), middleware.GetUserID(r.Context()), limit)
	resp := recentResponse{Recent: recent, Fallback: usedFallback}
	if usedFallback {
		resp.Notice = fallbackNotice
	}
	writeJSON(w, http.StatusOK, resp)
}
