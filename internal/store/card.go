package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/ayumu838/kotoba-api/internal/domain"
)

// CardStore defines the read-side card persistence interface consumed by the
// review core. Card creation and editing belong to the application layer and
// are not part of this interface.
type CardStore interface {
	// GetByID retrieves a card by its unique ID.
	// Returns ErrCardNotFound if the card does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error)

	// ListByDeck retrieves all cards in a deck ordered by creation time.
	ListByDeck(ctx context.Context, deckID uuid.UUID) ([]*domain.Card, error)

	// ListByUser retrieves all of a user's cards across decks ordered by
	// creation time.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Card, error)

	// WithTx returns a CardStore bound to the given transaction.
	WithTx(tx *sql.Tx) CardStore
}

// DeckStore defines deck lookup for session building and access checks.
type DeckStore interface {
	// GetByID retrieves a deck by its unique ID.
	// Returns ErrDeckNotFound if the deck does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error)

	// WithTx returns a DeckStore bound to the given transaction.
	WithTx(tx *sql.Tx) DeckStore
}
