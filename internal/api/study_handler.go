package api

import (
	"log/slog"
	"net/http"

	"github.com/ayumu838/kotoba-api/internal/api/shared"
	"github.com/ayumu838/kotoba-api/internal/platform/logger"
	"github.com/ayumu838/kotoba-api/internal/service/review"
)

// StudyHandler handles study session HTTP requests
type StudyHandler struct {
	reviewService review.Service
	logger        *slog.Logger
}

// NewStudyHandler creates a new StudyHandler
func NewStudyHandler(reviewService review.Service, logger *slog.Logger) *StudyHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for StudyHandler")
	}

	return &StudyHandler{
		reviewService: reviewService,
		logger:        logger.With(slog.String("component", "study_handler")),
	}
}

// GetDeckSession handles GET /decks/{id}/study requests.
// It builds a study session limited to one deck.
func (h *StudyHandler) GetDeckSession(w http.ResponseWriter, r *http.Request) {
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

	cards, err := h.reviewService.DeckSession(r.Context(), userID, deckID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("built deck study session",
		slog.String("user_id", userID.String()),
		slog.String("deck_id", deckID.String()),
		slog.Int("card_count", len(cards)))
	shared.RespondWithJSON(w, r, http.StatusOK, cardsToSessionResponse(cards))
}

// GetAllSession handles GET /study requests.
// It builds a study session drawing from every deck the user owns.
func (h *StudyHandler) GetAllSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	cards, err := h.reviewService.AllSession(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("built cross-deck study session",
		slog.String("user_id", userID.String()),
		slog.Int("card_count", len(cards)))
	shared.RespondWithJSON(w, r, http.StatusOK, cardsToSessionResponse(cards))
}
