package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/ayumu838/kotoba-api/internal/api/shared"
	"github.com/ayumu838/kotoba-api/internal/platform/logger"
	"github.com/ayumu838/kotoba-api/internal/service/progress"
)

// ProgressHandler handles progress analytics HTTP requests
type ProgressHandler struct {
	progressService progress.Service
	logger          *slog.Logger
}

// NewProgressHandler creates a new ProgressHandler
func NewProgressHandler(progressService progress.Service, logger *slog.Logger) *ProgressHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ProgressHandler")
	}

	return &ProgressHandler{
		progressService: progressService,
		logger:          logger.With(slog.String("component", "progress_handler")),
	}
}

// GetDeckProgress handles GET /decks/{id}/progress requests.
func (h *ProgressHandler) GetDeckProgress(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	deckID, err := getPathUUID(r, "id")
	if err != nil {
		log.Warn("invalid deck ID in URL path", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid deck ID")
		return
	}

	deckProgress, err := h.progressService.DeckProgress(r.Context(), userID, deckID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, deckProgress)
}

// GetStreak handles GET /streak requests.
func (h *ProgressHandler) GetStreak(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	streak, err := h.progressService.Streak(r.Context(), userID, time.Now().UTC())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, StreakResponse{StreakDays: streak})
}
