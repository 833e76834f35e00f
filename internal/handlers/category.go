package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"signquiz-backend/internal/models"
	"signquiz-backend/internal/services"
)

type CategoryHandler struct {
	catalog *services.CatalogProvider
	bank    *services.QuestionBank
}

func NewCategoryHandler(catalog *services.CatalogProvider, bank *services.QuestionBank) *CategoryHandler {
	return &CategoryHandler{catalog: catalog, bank: bank}
}

type categoriesResponse struct {
	Categories []models.Category `json:"categories"`
	Fallback   bool              `json:"fallback"`
	Notice     string            `json:"notice,omitempty"`
}

type questionsResponse struct {
	CategoryID string                  `json:"category_id"`
	Questions  []models.PublicQuestion `json:"questions"`
	Fallback   bool                    `json:"fallback"`
	Notice     string                  `json:"notice,omitempty"`
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, usedFallback := h.catalog.ListCategories(r.Context())
	if categories == nil {
		categories = []models.Category{}
	}

	resp := categoriesResponse{Categories: categories, Fallback: usedFallback}
	if usedFallback {
		resp.Notice = fallbackNotice
	}
	writeJSON(w, http.StatusOK, resp)
}

// Questions lists a category's questions without their correct answers.
func (h *CategoryHandler) Questions(w http.ResponseWriter, r *http.Request) {
	categoryID := strings.TrimSpace(chi.URLParam(r, "categoryId"))
	if categoryID == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid category ID", r))
		return
	}

	questions, usedFallback := h.bank.ListQuestions(r.Context(), categoryID)
	public := make([]models.PublicQuestion, 0, len(questions))
	for _, q := range questions {
		public = append(public, q.Public())
	}

	resp := questionsResponse{CategoryID: categoryID, Questions: public, Fallback: usedFallback}
	if usedFallback {
		resp.Notice = fallbackNotice
	}
	writeJSON(w, http.StatusOK, resp)
}
