// Package session builds study sessions and quizzes from a snapshot of a
// user's cards and their review states. All selection logic here is
// read-only and pure given its inputs; randomness is injected so tests can
// be deterministic.
package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/ayumu838/kotoba-api/internal/domain"
)

// Session caps. A single-deck session presents at most 20 cards; studying
// across all decks at once allows 50.
const (
	DeckStudyLimit = 20
	AllStudyLimit  = 50
)

// BuildStudySession selects and orders the cards to present in one
// flashcard session.
//
// A card is due when it has no review state or its next review time has
// passed. Due cards are taken up to limit, preserving input order. When
// nothing is due the first limit cards are presented instead, so a session
// is never empty while the deck has cards at all. Zero cards in, zero cards
// out; never an error.
func BuildStudySession(
	cards []*domain.Card,
	states map[uuid.UUID]*domain.ReviewState,
	limit int,
	now time.Time,
) []*domain.Card {
	due := make([]*domain.Card, 0, len(cards))
	for _, card := range cards {
		state, ok := states[card.ID]
		if !ok || state.IsDue(now) {
			due = append(due, card)
		}
	}

	if len(due) > 0 {
		if len(due) > limit {
			due = due[:limit]
		}
		return due
	}

	// Nothing due: fall back to the front of the pool so the learner can
	// still study ahead of schedule.
	if len(cards) > limit {
		cards = cards[:limit]
	}
	return append([]*domain.Card(nil), cards...)
}
