package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Card-specific validation errors
var (
	// ErrCardIDEmpty is returned when a card ID is empty or nil.
	ErrCardIDEmpty = errors.New("card ID cannot be empty")

	// ErrCardUserIDEmpty is returned when a card's user ID is empty or nil.
	ErrCardUserIDEmpty = errors.New("card user ID cannot be empty")

	// ErrCardDeckIDEmpty is returned when a card's deck ID is empty or nil.
	ErrCardDeckIDEmpty = errors.New("card deck ID cannot be empty")

	// ErrCardWordEmpty is returned when a card's word is empty.
	ErrCardWordEmpty = errors.New("card word cannot be empty")

	// ErrCardMeaningEmpty is returned when a card's meaning is empty.
	ErrCardMeaningEmpty = errors.New("card meaning cannot be empty")
)

// Card represents one vocabulary entry in a deck. The review core reads
// cards but never writes them; quiz generation uses Meaning to build the
// correct choice and distractors.
type Card struct {
	ID           uuid.UUID `json:"id"`
	DeckID       uuid.UUID `json:"deck_id"`
	UserID       uuid.UUID `json:"user_id"`
	Word         string    `json:"word"`
	Reading      string    `json:"reading,omitempty"`
	Meaning      string    `json:"meaning"`
	PartOfSpeech string    `json:"part_of_speech,omitempty"`
	Level        string    `json:"level,omitempty"`
	Examples     []string  `json:"examples,omitempty"`
	Memo         string    `json:"memo,omitempty"`
	ImageURL     string    `json:"image_url,omitempty"`
	AudioURL     string    `json:"audio_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewCard creates a new Card with a generated ID and creation timestamp.
// Returns an error if validation fails.
func NewCard(userID, deckID uuid.UUID, word, meaning string) (*Card, error) {
	card := &Card{
		ID:        uuid.New(),
		DeckID:    deckID,
		UserID:    userID,
		Word:      word,
		Meaning:   meaning,
		CreatedAt: time.Now().UTC(),
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Card has valid data.
func (c *Card) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCardIDEmpty
	}

	if c.UserID == uuid.Nil {
		return ErrCardUserIDEmpty
	}

	if c.DeckID == uuid.Nil {
		return ErrCardDeckIDEmpty
	}

	if c.Word == "" {
		return ErrCardWordEmpty
	}

	if c.Meaning == "" {
		return ErrCardMeaningEmpty
	}

	return nil
}
