package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ayumu838/kotoba-api/internal/domain"
	"github.com/ayumu838/kotoba-api/internal/domain/srs"
	"github.com/ayumu838/kotoba-api/internal/platform/logger"
	"github.com/ayumu838/kotoba-api/internal/session"
	"github.com/ayumu838/kotoba-api/internal/store"
)

// Verify interface compliance at compile time
var _ Service = (*serviceImpl)(nil)

// serviceImpl implements the Service interface.
type serviceImpl struct {
	txRunner    store.TxRunner
	deckStore   store.DeckStore
	cardStore   store.CardStore
	stateStore  store.ReviewStateStore
	eventStore  store.ReviewEventStore
	srsService  srs.Service
	quizBuilder *session.QuizBuilder
	logger      *slog.Logger
}

// NewService creates a new review Service implementation.
func NewService(
	txRunner store.TxRunner,
	deckStore store.DeckStore,
	cardStore store.CardStore,
	stateStore store.ReviewStateStore,
	eventStore store.ReviewEventStore,
	srsService srs.Service,
	quizBuilder *session.QuizBuilder,
	logger *slog.Logger,
) Service {
	if txRunner == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("txRunner cannot be nil")
	}
	if deckStore == nil || cardStore == nil || stateStore == nil || eventStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("stores cannot be nil")
	}
	if srsService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("srsService cannot be nil")
	}
	if quizBuilder == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("quizBuilder cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &serviceImpl{
		txRunner:    txRunner,
		deckStore:   deckStore,
		cardStore:   cardStore,
		stateStore:  stateStore,
		eventStore:  eventStore,
		srsService:  srsService,
		quizBuilder: quizBuilder,
		logger:      logger.With(slog.String("component", "review_service")),
	}
}

// DeckSession implements Service.DeckSession.
func (s *serviceImpl) DeckSession(
	ctx context.Context,
	userID, deckID uuid.UUID,
) ([]*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	deck, err := s.deckStore.GetByID(ctx, deckID)
	if err != nil {
		if errors.Is(err, store.ErrDeckNotFound) {
			return nil, ErrDeckNotFound
		}
		return nil, fmt.Errorf("failed to get deck: %w", err)
	}

	if !deck.AccessibleBy(userID) {
		log.Warn("deck access denied",
			slog.String("user_id", userID.String()),
			slog.String("deck_id", deckID.String()))
		return nil, ErrDeckAccessDenied
	}

	cards, err := s.cardStore.ListByDeck(ctx, deckID)
	if err != nil {
		return nil, fmt.Errorf("failed to list deck cards: %w", err)
	}

	states, err := s.stateStore.GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load review states: %w", err)
	}

	picked := session.BuildStudySession(cards, states, session.DeckStudyLimit, time.Now().UTC())

	log.Debug("built deck study session",
		slog.String("user_id", userID.String()),
		slog.String("deck_id", deckID.String()),
		slog.Int("pool_size", len(cards)),
		slog.Int("session_size", len(picked)))
	return picked, nil
}

// AllSession implements Service.AllSession.
func (s *serviceImpl) AllSession(ctx context.Context, userID uuid.UUID) ([]*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	cards, err := s.cardStore.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user cards: %w", err)
	}

	states, err := s.stateStore.GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load review states: %w", err)
	}

	picked := session.BuildStudySession(cards, states, session.AllStudyLimit, time.Now().UTC())

	log.Debug("built cross-deck study session",
		slog.String("user_id", userID.String()),
		slog.Int("pool_size", len(cards)),
		slog.Int("session_size", len(picked)))
	return picked, nil
}

// Quiz implements Service.Quiz.
func (s *serviceImpl) Quiz(ctx context.Context, userID uuid.UUID) ([]session.Question, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	cards, err := s.cardStore.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user cards: %w", err)
	}

	if len(cards) < session.QuizMinCards {
		log.Debug("card pool too small for a quiz",
			slog.String("user_id", userID.String()),
			slog.Int("pool_size", len(cards)))
		return nil, ErrNotEnoughCards
	}

	states, err := s.stateStore.GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load review states: %w", err)
	}

	questions := s.quizBuilder.BuildQuiz(cards, states)

	log.Debug("built quiz",
		slog.String("user_id", userID.String()),
		slog.Int("pool_size", len(cards)),
		slog.Int("question_count", len(questions)))
	return questions, nil
}

// SubmitReview implements Service.SubmitReview.
func (s *serviceImpl) SubmitReview(
	ctx context.Context,
	userID uuid.UUID,
	sub Submission,
) (*domain.ReviewState, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Validate before any scheduling or storage work. The scheduler is never
	// called with a bad rating.
	if !sub.Rating.IsValid() {
		return nil, ErrInvalidRating
	}
	if !sub.Mode.IsValid() {
		return nil, ErrInvalidMode
	}

	now := time.Now().UTC()

	var updated *domain.ReviewState
	err := s.txRunner.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		cardStore := s.cardStore.WithTx(tx)
		stateStore := s.stateStore.WithTx(tx)
		eventStore := s.eventStore.WithTx(tx)

		card, err := cardStore.GetByID(ctx, sub.CardID)
		if err != nil {
			if errors.Is(err, store.ErrCardNotFound) {
				return ErrCardNotFound
			}
			return fmt.Errorf("failed to get card: %w", err)
		}

		// Only the owner's reviews may mutate the owner's schedule.
		if card.UserID != userID {
			log.Warn("user does not own card",
				slog.String("user_id", userID.String()),
				slog.String("card_id", sub.CardID.String()),
				slog.String("owner_id", card.UserID.String()))
			return ErrCardNotOwned
		}

		state, err := stateStore.Get(ctx, userID, sub.CardID)
		if err != nil {
			if !store.IsNotFoundError(err) {
				return fmt.Errorf("failed to get review state: %w", err)
			}
			// First review of this card: seed the scheduler defaults.
			state, err = domain.NewReviewState(userID, sub.CardID)
			if err != nil {
				return fmt.Errorf("failed to create review state: %w", err)
			}
		}

		newState, err := s.srsService.CalculateNextReview(state, sub.Rating, now)
		if err != nil {
			return fmt.Errorf("failed to calculate next review: %w", err)
		}

		if err := stateStore.Upsert(ctx, newState); err != nil {
			return fmt.Errorf("failed to upsert review state: %w", err)
		}

		event, err := domain.NewReviewEvent(
			userID, card.ID, card.DeckID, sub.Rating, sub.IsCorrect, sub.Mode,
		)
		if err != nil {
			return fmt.Errorf("failed to create review event: %w", err)
		}
		if err := eventStore.Append(ctx, event); err != nil {
			return fmt.Errorf("failed to append review event: %w", err)
		}

		updated = newState
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrCardNotFound) ||
			errors.Is(err, ErrCardNotOwned) {
			return nil, err
		}

		log.Error("failed to submit review",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("card_id", sub.CardID.String()))
		return nil, &ServiceError{Operation: "submit_review", Message: "failed to submit review", Err: err}
	}

	log.Debug("processed review",
		slog.String("user_id", userID.String()),
		slog.String("card_id", sub.CardID.String()),
		slog.String("rating", string(sub.Rating)),
		slog.Float64("ease_factor", updated.EaseFactor),
		slog.Int("interval", updated.Interval),
		slog.Time("next_review_at", updated.NextReviewAt))

	return updated, nil
}
