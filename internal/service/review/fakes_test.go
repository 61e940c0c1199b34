package review

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/ayumu838/kotoba-api/internal/domain"
	"github.com/ayumu838/kotoba-api/internal/store"
)

// In-memory fakes for the store interfaces. WithTx returns the receiver:
// these fakes have no transaction semantics beyond call recording.

type fakeTxRunner struct {
	beginErr error
}

func (r *fakeTxRunner) RunInTransaction(ctx context.Context, fn store.TxFn) error {
	if r.beginErr != nil {
		return r.beginErr
	}
	return fn(ctx, nil)
}

type fakeDeckStore struct {
	decks map[uuid.UUID]*domain.Deck
}

func newFakeDeckStore(decks ...*domain.Deck) *fakeDeckStore {
	s := &fakeDeckStore{decks: make(map[uuid.UUID]*domain.Deck)}
	for _, d := range decks {
		s.decks[d.ID] = d
	}
	return s
}

func (s *fakeDeckStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Deck, error) {
	deck, ok := s.decks[id]
	if !ok {
		return nil, store.ErrDeckNotFound
	}
	return deck, nil
}

func (s *fakeDeckStore) WithTx(*sql.Tx) store.DeckStore { return s }

type fakeCardStore struct {
	cards []*domain.Card
}

func (s *fakeCardStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Card, error) {
	for _, c := range s.cards {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, store.ErrCardNotFound
}

func (s *fakeCardStore) ListByDeck(_ context.Context, deckID uuid.UUID) ([]*domain.Card, error) {
	var out []*domain.Card
	for _, c := range s.cards {
		if c.DeckID == deckID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *fakeCardStore) ListByUser(_ context.Context, userID uuid.UUID) ([]*domain.Card, error) {
	var out []*domain.Card
	for _, c := range s.cards {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *fakeCardStore) WithTx(*sql.Tx) store.CardStore { return s }

type fakeStateStore struct {
	states  map[uuid.UUID]*domain.ReviewState // keyed by card ID, single user
	upserts int
}

func newFakeStateStore(states ...*domain.ReviewState) *fakeStateStore {
	s := &fakeStateStore{states: make(map[uuid.UUID]*domain.ReviewState)}
	for _, st := range states {
		s.states[st.CardID] = st
	}
	return s
}

func (s *fakeStateStore) Get(_ context.Context, _, cardID uuid.UUID) (*domain.ReviewState, error) {
	state, ok := s.states[cardID]
	if !ok {
		return nil, store.ErrReviewStateNotFound
	}
	return state, nil
}

func (s *fakeStateStore) GetByUser(context.Context, uuid.UUID) (map[uuid.UUID]*domain.ReviewState, error) {
	return s.states, nil
}

func (s *fakeStateStore) Upsert(_ context.Context, state *domain.ReviewState) error {
	if err := state.Validate(); err != nil {
		return err
	}
	s.states[state.CardID] = state
	s.upserts++
	return nil
}

func (s *fakeStateStore) WithTx(*sql.Tx) store.ReviewStateStore { return s }

type fakeEventStore struct {
	events    []*domain.ReviewEvent
	days      []time.Time
	appendErr error
}

func (s *fakeEventStore) Append(_ context.Context, event *domain.ReviewEvent) error {
	if s.appendErr != nil {
		return s.appendErr
	}
	s.events = append(s.events, event)
	return nil
}

func (s *fakeEventStore) RecentReviewDays(context.Context, uuid.UUID, int) ([]time.Time, error) {
	return s.days, nil
}

func (s *fakeEventStore) CountCorrectByDeck(context.Context, uuid.UUID, uuid.UUID) (int, error) {
	count := 0
	for _, e := range s.events {
		if e.IsCorrect {
			count++
		}
	}
	return count, nil
}

func (s *fakeEventStore) WithTx(*sql.Tx) store.ReviewEventStore { return s }
