package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ayumu838/kotoba-api/internal/domain"
	"github.com/ayumu838/kotoba-api/internal/store"
)

// PostgresCardStore implements the store.CardStore interface using a
// PostgreSQL database as the storage backend. The review core only reads
// cards, so the store exposes lookups and listings.
type PostgresCardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCardStore creates a new PostgreSQL implementation of the
// CardStore interface. If logger is nil, a default logger is used.
func NewPostgresCardStore(db store.DBTX, logger *slog.Logger) *PostgresCardStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCardStore{
		db:     db,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

// Ensure PostgresCardStore implements store.CardStore interface
var _ store.CardStore = (*PostgresCardStore)(nil)

// cardColumns is the shared select list for card queries. Examples are
// stored as JSONB; nullable text columns are coalesced to empty strings.
const cardColumns = `
	id, deck_id, user_id, word,
	COALESCE(reading, ''), meaning,
	COALESCE(part_of_speech, ''), COALESCE(level, ''),
	COALESCE(examples, '[]'::jsonb),
	COALESCE(memo, ''), COALESCE(image_url, ''), COALESCE(audio_url, ''),
	created_at`

// scanCard reads one card row from a *sql.Row or *sql.Rows scanner.
func scanCard(scan func(dest ...any) error) (*domain.Card, error) {
	card := &domain.Card{}
	var examples []byte

	err := scan(
		&card.ID,
		&card.DeckID,
		&card.UserID,
		&card.Word,
		&card.Reading,
		&card.Meaning,
		&card.PartOfSpeech,
		&card.Level,
		&examples,
		&card.Memo,
		&card.ImageURL,
		&card.AudioURL,
		&card.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(examples, &card.Examples); err != nil {
		return nil, fmt.Errorf("failed to decode card examples: %w", err)
	}

	return card, nil
}

// GetByID implements store.CardStore.GetByID.
// Returns store.ErrCardNotFound if the card does not exist.
func (s *PostgresCardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE id = $1`

	card, err := scanCard(s.db.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to get card: %w", err)
	}

	return card, nil
}

// ListByDeck implements store.CardStore.ListByDeck. Cards come back in
// creation order, which is also the presentation order of study sessions.
func (s *PostgresCardStore) ListByDeck(ctx context.Context, deckID uuid.UUID) ([]*domain.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE deck_id = $1 ORDER BY created_at, id`
	return s.list(ctx, query, deckID)
}

// ListByUser implements store.CardStore.ListByUser.
func (s *PostgresCardStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE user_id = $1 ORDER BY created_at, id`
	return s.list(ctx, query, userID)
}

func (s *PostgresCardStore) list(ctx context.Context, query string, arg any) ([]*domain.Card, error) {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			s.logger.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	var cards []*domain.Card
	for rows.Next() {
		card, err := scanCard(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cards: %w", err)
	}

	return cards, nil
}

// WithTx implements store.CardStore.WithTx.
func (s *PostgresCardStore) WithTx(tx *sql.Tx) store.CardStore {
	return &PostgresCardStore{
		db:     tx,
		logger: s.logger,
	}
}
