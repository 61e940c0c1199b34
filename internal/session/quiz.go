package session

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/ayumu838/kotoba-api/internal/domain"
)

// Quiz shape constants.
const (
	// QuizSize is the number of questions in a quiz.
	QuizSize = 10

	// QuizMinCards is the smallest card pool a quiz can be built from:
	// one correct choice plus three distinct wrong ones.
	QuizMinCards = 4

	// distractorCount is the target number of wrong choices per question.
	distractorCount = 3
)

// Per-quiz difficulty targets out of QuizSize. The quiz is biased toward
// cards the learner struggles with while still exercising known material.
const (
	hardTarget   = 5
	normalTarget = 3
	easyTarget   = 2
)

// Ease-factor boundaries for difficulty classification.
const (
	hardEaseBelow = 1.8
	easyEaseFrom  = 2.3
)

// Question is one multiple-choice quiz question. The correct meaning appears
// exactly once in Choices; the remaining choices are meanings of other cards.
type Question struct {
	CardID         uuid.UUID `json:"card_id"`
	DeckID         uuid.UUID `json:"deck_id"`
	Word           string    `json:"word"`
	Reading        string    `json:"reading,omitempty"`
	CorrectMeaning string    `json:"correct_meaning"`
	Choices        []string  `json:"choices"`
}

// difficulty buckets cards by how well the learner knows them, using the
// ease factor as a continuously updated proxy.
type difficulty int

const (
	difficultyHard difficulty = iota
	difficultyNormal
	difficultyEasy
)

// classify buckets a card by its latest review state. Cards that have never
// been reviewed carry no signal either way and count as normal.
func classify(state *domain.ReviewState) difficulty {
	if state == nil {
		return difficultyNormal
	}
	switch {
	case state.EaseFactor < hardEaseBelow:
		return difficultyHard
	case state.EaseFactor < easyEaseFrom:
		return difficultyNormal
	default:
		return difficultyEasy
	}
}

// QuizBuilder assembles weighted multiple-choice quizzes. The random source
// is injected so selection and choice order are reproducible under test.
type QuizBuilder struct {
	rng *rand.Rand
}

// NewQuizBuilder creates a QuizBuilder using the given random source.
func NewQuizBuilder(rng *rand.Rand) *QuizBuilder {
	if rng == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("rng cannot be nil for QuizBuilder")
	}
	return &QuizBuilder{rng: rng}
}

// BuildQuiz produces up to QuizSize questions drawn from the user's whole
// card pool, targeting a 5 hard : 3 normal : 2 easy mix.
//
// Each difficulty bucket is shuffled independently and its target count
// taken; if a bucket is under-supplied the shortfall is backfilled from the
// shuffled remainder of the pool. The final selection is shuffled once more
// so bucket order does not leak into presentation order.
//
// Callers are responsible for the len(cards) >= QuizMinCards precondition;
// smaller pools simply yield fewer, thinner questions.
func (b *QuizBuilder) BuildQuiz(
	cards []*domain.Card,
	states map[uuid.UUID]*domain.ReviewState,
) []Question {
	buckets := map[difficulty][]*domain.Card{}
	for _, card := range cards {
		d := classify(states[card.ID])
		buckets[d] = append(buckets[d], card)
	}

	// Fixed iteration order keeps the builder deterministic for a given seed.
	for _, d := range []difficulty{difficultyHard, difficultyNormal, difficultyEasy} {
		b.shuffleCards(buckets[d])
	}

	picked := make([]*domain.Card, 0, QuizSize)
	picked = append(picked, take(buckets[difficultyHard], hardTarget)...)
	picked = append(picked, take(buckets[difficultyNormal], normalTarget)...)
	picked = append(picked, take(buckets[difficultyEasy], easyTarget)...)

	if len(picked) < QuizSize {
		remaining := make([]*domain.Card, 0, len(cards))
		remaining = append(remaining, drop(buckets[difficultyHard], hardTarget)...)
		remaining = append(remaining, drop(buckets[difficultyNormal], normalTarget)...)
		remaining = append(remaining, drop(buckets[difficultyEasy], easyTarget)...)
		b.shuffleCards(remaining)
		picked = append(picked, take(remaining, QuizSize-len(picked))...)
	}

	b.shuffleCards(picked)

	questions := make([]Question, 0, len(picked))
	for _, card := range picked {
		questions = append(questions, b.buildQuestion(card, cards))
	}
	return questions
}

// buildQuestion assembles one question around card. Distractor candidates
// exclude the card itself and any card whose meaning string is identical,
// otherwise two "correct" answers could appear in the same choice list.
// The take is best effort: a homogeneous pool may yield fewer than three
// distractors, and the question ships with fewer choices.
func (b *QuizBuilder) buildQuestion(card *domain.Card, pool []*domain.Card) Question {
	candidates := make([]*domain.Card, 0, len(pool))
	for _, c := range pool {
		if c.ID != card.ID && c.Meaning != card.Meaning {
			candidates = append(candidates, c)
		}
	}
	b.shuffleCards(candidates)

	choices := make([]string, 0, distractorCount+1)
	choices = append(choices, card.Meaning)
	for _, c := range take(candidates, distractorCount) {
		choices = append(choices, c.Meaning)
	}
	b.rng.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})

	return Question{
		CardID:         card.ID,
		DeckID:         card.DeckID,
		Word:           card.Word,
		Reading:        card.Reading,
		CorrectMeaning: card.Meaning,
		Choices:        choices,
	}
}

func (b *QuizBuilder) shuffleCards(cards []*domain.Card) {
	b.rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}

// take returns the first n elements, or all of them when fewer exist.
func take(cards []*domain.Card, n int) []*domain.Card {
	if len(cards) < n {
		n = len(cards)
	}
	return cards[:n]
}

// drop returns the elements after the first n, or nothing when fewer exist.
func drop(cards []*domain.Card, n int) []*domain.Card {
	if len(cards) < n {
		return nil
	}
	return cards[n:]
}
