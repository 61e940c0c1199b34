package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ayumu838/kotoba-api/internal/api"
	apiMiddleware "github.com/ayumu838/kotoba-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.tokenVerifier)

	studyHandler := api.NewStudyHandler(app.reviewService, app.logger)
	quizHandler := api.NewQuizHandler(app.reviewService, app.logger)
	reviewHandler := api.NewReviewHandler(app.reviewService, app.logger)
	progressHandler := api.NewProgressHandler(app.progressService, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Study session endpoints
			r.Get("/study", studyHandler.GetAllSession)
			r.Get("/decks/{id}/study", studyHandler.GetDeckSession)

			// Quiz endpoint
			r.Get("/quiz", quizHandler.GetQuiz)

			// Review submission endpoint
			r.Post("/reviews", reviewHandler.SubmitReview)

			// Progress endpoints
			r.Get("/decks/{id}/progress", progressHandler.GetDeckProgress)
			r.Get("/streak", progressHandler.GetStreak)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
