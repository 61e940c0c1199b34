package progress

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayumu838/kotoba-api/internal/domain"
	"github.com/ayumu838/kotoba-api/internal/store"
)

type fakeDeckStore struct {
	decks map[uuid.UUID]*domain.Deck
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
	states map[uuid.UUID]*domain.ReviewState
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
	s.states[state.CardID] = state
	return nil
}

func (s *fakeStateStore) WithTx(*sql.Tx) store.ReviewStateStore { return s }

type fakeEventStore struct {
	days         []time.Time
	correctCount int
}

func (s *fakeEventStore) Append(context.Context, *domain.ReviewEvent) error { return nil }

func (s *fakeEventStore) RecentReviewDays(context.Context, uuid.UUID, int) ([]time.Time, error) {
	return s.days, nil
}

func (s *fakeEventStore) CountCorrectByDeck(context.Context, uuid.UUID, uuid.UUID) (int, error) {
	return s.correctCount, nil
}

func (s *fakeEventStore) WithTx(*sql.Tx) store.ReviewEventStore { return s }

func stateWithInterval(userID, cardID uuid.UUID, interval int) *domain.ReviewState {
	return &domain.ReviewState{
		UserID:       userID,
		CardID:       cardID,
		EaseFactor:   domain.DefaultEaseFactor,
		Interval:     interval,
		Repetitions:  1,
		NextReviewAt: time.Now().UTC().AddDate(0, 0, interval),
	}
}

func TestDeckProgress(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	deck, err := domain.NewDeck(userID, "N5 Vocabulary", "ja")
	require.NoError(t, err)

	mkCard := func(word, meaning string) *domain.Card {
		card, err := domain.NewCard(userID, deck.ID, word, meaning)
		require.NoError(t, err)
		return card
	}

	learned := mkCard("犬", "dog")
	maturing := mkCard("猫", "cat")
	fresh := mkCard("鳥", "bird")
	unseen := mkCard("魚", "fish")

	states := map[uuid.UUID]*domain.ReviewState{
		learned.ID:  stateWithInterval(userID, learned.ID, 30),
		maturing.ID: stateWithInterval(userID, maturing.ID, 21),
		fresh.ID:    stateWithInterval(userID, fresh.ID, 3),
	}

	svc := NewService(
		&fakeDeckStore{decks: map[uuid.UUID]*domain.Deck{deck.ID: deck}},
		&fakeCardStore{cards: []*domain.Card{learned, maturing, fresh, unseen}},
		&fakeStateStore{states: states},
		&fakeEventStore{correctCount: 12},
		nil,
	)

	got, err := svc.DeckProgress(context.Background(), userID, deck.ID)
	require.NoError(t, err)

	assert.Equal(t, deck.ID, got.DeckID)
	assert.Equal(t, 4, got.TotalCards)
	assert.Equal(t, 2, got.Learned) // the 21-day interval is already mature
	assert.Equal(t, 1, got.Learning)
	assert.Equal(t, 1, got.Unseen)
	assert.Equal(t, 12, got.CorrectReviews)
}

func TestDeckProgressAccess(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	strangerID := uuid.New()
	deck, err := domain.NewDeck(ownerID, "Private", "ja")
	require.NoError(t, err)

	svc := NewService(
		&fakeDeckStore{decks: map[uuid.UUID]*domain.Deck{deck.ID: deck}},
		&fakeCardStore{},
		&fakeStateStore{states: map[uuid.UUID]*domain.ReviewState{}},
		&fakeEventStore{},
		nil,
	)

	_, err = svc.DeckProgress(context.Background(), strangerID, deck.ID)
	assert.ErrorIs(t, err, ErrDeckAccessDenied)

	_, err = svc.DeckProgress(context.Background(), ownerID, uuid.New())
	assert.ErrorIs(t, err, ErrDeckNotFound)
}

func TestCurrentStreak(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)
	day := func(offset int) time.Time {
		return now.Truncate(24 * time.Hour).AddDate(0, 0, offset)
	}

	tests := []struct {
		name string
		days []time.Time
		want int
	}{
		{
			name: "no reviews",
			days: nil,
			want: 0,
		},
		{
			name: "single review today",
			days: []time.Time{day(0)},
			want: 1,
		},
		{
			name: "anchored on yesterday",
			days: []time.Time{day(-1), day(-2), day(-3)},
			want: 3,
		},
		{
			name: "newest day too old",
			days: []time.Time{day(-2), day(-3)},
			want: 0,
		},
		{
			name: "gap breaks the streak",
			days: []time.Time{day(0), day(-1), day(-3), day(-4)},
			want: 2,
		},
		{
			name: "long unbroken run",
			days: []time.Time{day(0), day(-1), day(-2), day(-3), day(-4)},
			want: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, currentStreak(tt.days, now))
		})
	}
}

func TestStreakUsesEventStore(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	today := now.Truncate(24 * time.Hour)

	svc := NewService(
		&fakeDeckStore{},
		&fakeCardStore{},
		&fakeStateStore{states: map[uuid.UUID]*domain.ReviewState{}},
		&fakeEventStore{days: []time.Time{today, today.AddDate(0, 0, -1)}},
		nil,
	)

	streak, err := svc.Streak(context.Background(), uuid.New(), now)
	require.NoError(t, err)
	assert.Equal(t, 2, streak)
}
