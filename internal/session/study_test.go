package session

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/ayumu838/kotoba-api/internal/domain"
)

func makeCards(n int) []*domain.Card {
	userID := uuid.New()
	deckID := uuid.New()
	cards := make([]*domain.Card, 0, n)
	for i := 0; i < n; i++ {
		cards = append(cards, &domain.Card{
			ID:      uuid.New(),
			DeckID:  deckID,
			UserID:  userID,
			Word:    fmt.Sprintf("word-%d", i),
			Meaning: fmt.Sprintf("meaning-%d", i),
		})
	}
	return cards
}

func stateDueAt(card *domain.Card, at time.Time) *domain.ReviewState {
	return &domain.ReviewState{
		UserID:       card.UserID,
		CardID:       card.ID,
		EaseFactor:   2.5,
		Interval:     1,
		Repetitions:  1,
		NextReviewAt: at,
	}
}

func TestBuildStudySessionDueSelection(t *testing.T) {
	t.Parallel()
	now := time.Now().UTC()
	cards := makeCards(4)

	states := map[uuid.UUID]*domain.ReviewState{
		// cards[0] has no state: always due.
		cards[1].ID: stateDueAt(cards[1], now.Add(-time.Hour)),  // overdue
		cards[2].ID: stateDueAt(cards[2], now),                  // due exactly now
		cards[3].ID: stateDueAt(cards[3], now.Add(48*time.Hour)), // future
	}

	got := BuildStudySession(cards, states, DeckStudyLimit, now)

	assert.Equal(t, []*domain.Card{cards[0], cards[1], cards[2]}, got,
		"due cards in input order, future card excluded")
}

func TestBuildStudySessionCap(t *testing.T) {
	t.Parallel()
	now := time.Now().UTC()
	cards := makeCards(30)

	got := BuildStudySession(cards, nil, DeckStudyLimit, now)

	assert.Len(t, got, DeckStudyLimit)
	assert.Equal(t, cards[:DeckStudyLimit], got)
}

func TestBuildStudySessionFallbackWhenNothingDue(t *testing.T) {
	t.Parallel()
	now := time.Now().UTC()
	cards := makeCards(3)

	states := make(map[uuid.UUID]*domain.ReviewState, len(cards))
	for _, card := range cards {
		states[card.ID] = stateDueAt(card, now.Add(24*time.Hour))
	}

	got := BuildStudySession(cards, states, DeckStudyLimit, now)

	assert.Equal(t, cards, got, "session falls back to the full pool when nothing is due")
}

func TestBuildStudySessionFallbackRespectsCap(t *testing.T) {
	t.Parallel()
	now := time.Now().UTC()
	cards := makeCards(AllStudyLimit + 10)

	states := make(map[uuid.UUID]*domain.ReviewState, len(cards))
	for _, card := range cards {
		states[card.ID] = stateDueAt(card, now.Add(24*time.Hour))
	}

	got := BuildStudySession(cards, states, AllStudyLimit, now)

	assert.Len(t, got, AllStudyLimit)
}

func TestBuildStudySessionEmptyPool(t *testing.T) {
	t.Parallel()

	got := BuildStudySession(nil, nil, DeckStudyLimit, time.Now().UTC())

	assert.Empty(t, got)
}
