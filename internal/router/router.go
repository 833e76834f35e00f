package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"signquiz-backend/internal/handlers"
	"signquiz-backend/internal/middleware"
	"signquiz-backend/internal/websocket"
)

func New(
	categoryHandler *handlers.CategoryHandler,
	quizHandler *handlers.QuizHandler,
	progressHandler *handlers.ProgressHandler,
	startLimiter *middleware.RateLimiter,
	wsHub *websocket.Hub,
	frontendURL string,
	defaultUserID string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.UserIdentity(defaultUserID))

		// ──── Catalog Routes ────
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", categoryHandler.List)
			r.Get("/{categoryId}/questions", categoryHandler.Questions)
		})

		// ──── Quiz Session Routes ────
		r.Route("/quiz-sessions", func(r chi.Router) {
			r.With(startLimiter.Middleware).Post("/", quizHandler.Start)
			r.Get("/{id}", quizHandler.Get)
			r.Delete("/{id}", quizHandler.Discard)
			r.Post("/{id}/select", quizHandler.Select)
			r.Post("/{id}/submit", quizHandler.Submit)
			r.Post("/{id}/advance", quizHandler.Advance)
			r.Get("/{id}/summary", quizHandler.Summary)
			r.Post("/{id}/record", quizHandler.Record)
		})

		// ──── Progress Routes ────
		r.Route("/progress", func(r chi.Router) {
			r.Get("/", progressHandler.Overview)
			r.Get("/recent", progressHandler.Recent)
		})

		// ──── WebSocket ────
		r.Get("/ws", wsHub.HandleWebSocket)
	})

	return r
}
