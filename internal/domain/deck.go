package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Deck-specific validation errors
var (
	ErrDeckIDEmpty       = errors.New("deck ID cannot be empty")
	ErrDeckUserIDEmpty   = errors.New("deck user ID cannot be empty")
	ErrDeckNameEmpty     = errors.New("deck name cannot be empty")
	ErrDeckLanguageEmpty = errors.New("deck language cannot be empty")
)

// Deck groups a user's cards for one target language. Public decks are
// readable (and studiable) by any user; only the owner's reviews mutate
// that owner's scheduling state.
type Deck struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Name        string    `json:"name"`
	Language    string    `json:"language"`
	Accent      string    `json:"accent,omitempty"`
	Description string    `json:"description,omitempty"`
	IsPublic    bool      `json:"is_public"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewDeck creates a new Deck with a generated ID and creation timestamp.
// Returns an error if validation fails.
func NewDeck(userID uuid.UUID, name, language string) (*Deck, error) {
	deck := &Deck{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Language:  language,
		CreatedAt: time.Now().UTC(),
	}

	if err := deck.Validate(); err != nil {
		return nil, err
	}

	return deck, nil
}

// Validate checks if the Deck has valid data.
func (d *Deck) Validate() error {
	if d.ID == uuid.Nil {
		return ErrDeckIDEmpty
	}

	if d.UserID == uuid.Nil {
		return ErrDeckUserIDEmpty
	}

	if d.Name == "" {
		return ErrDeckNameEmpty
	}

	if d.Language == "" {
		return ErrDeckLanguageEmpty
	}

	return nil
}

// AccessibleBy reports whether the given user may read and study the deck.
func (d *Deck) AccessibleBy(userID uuid.UUID) bool {
	return d.IsPublic || d.UserID == userID
}
