package api

import (
	"log/slog"
	"net/http"

	"github.com/ayumu838/kotoba-api/internal/api/shared"
	"github.com/ayumu838/kotoba-api/internal/platform/logger"
	"github.com/ayumu838/kotoba-api/internal/service/review"
)

// QuizHandler handles quiz HTTP requests
type QuizHandler struct {
	reviewService review.Service
	logger        *slog.Logger
}

// NewQuizHandler creates a new QuizHandler
func NewQuizHandler(reviewService review.Service, logger *slog.Logger) *QuizHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for QuizHandler")
	}

	return &QuizHandler{
		reviewService: reviewService,
		logger:        logger.With(slog.String("component", "quiz_handler")),
	}
}

// GetQuiz handles GET /quiz requests.
// It generates a weighted multiple-choice quiz from the user's card pool.
func (h *QuizHandler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	questions, err := h.reviewService.Quiz(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("generated quiz",
		slog.String("user_id", userID.String()),
		slog.Int("question_count", len(questions)))
	shared.RespondWithJSON(w, r, http.StatusOK, questionsToResponse(questions))
}
