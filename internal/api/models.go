package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/ayumu838/kotoba-api/internal/domain"
	"github.com/ayumu838/kotoba-api/internal/session"
)

// Common request/response structures

// CardResponse represents the response data for a single card.
type CardResponse struct {
	ID           uuid.UUID `json:"id"`
	DeckID       uuid.UUID `json:"deck_id"`
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

// StudySessionResponse wraps the ordered cards of one study session.
type StudySessionResponse struct {
	Cards []CardResponse `json:"cards"`
	Count int            `json:"count"`
}

// QuizQuestionResponse represents one multiple-choice quiz question.
type QuizQuestionResponse struct {
	CardID  uuid.UUID `json:"card_id"`
	DeckID  uuid.UUID `json:"deck_id"`
	Word    string    `json:"word"`
	Reading string    `json:"reading,omitempty"`
	Choices []string  `json:"choices"`
}

// QuizResponse wraps a generated quiz. The correct answers stay server-side;
// clients grade by submitting reviews.
type QuizResponse struct {
	Questions []QuizQuestionResponse `json:"questions"`
	Count     int                    `json:"count"`
}

// SubmitReviewRequest defines the payload for the review submission endpoint.
type SubmitReviewRequest struct {
	CardID    uuid.UUID `json:"card_id"    validate:"required"`
	Rating    string    `json:"rating"     validate:"required,oneof=easy normal hard"`
	IsCorrect bool      `json:"is_correct"`
	Mode      string    `json:"mode"       validate:"required,oneof=flashcard fill_in_blank"`
}

// ReviewStateResponse represents the updated schedule after a review.
type ReviewStateResponse struct {
	CardID       uuid.UUID `json:"card_id"`
	EaseFactor   float64   `json:"ease_factor"`
	Interval     int       `json:"interval"`
	Repetitions  int       `json:"repetitions"`
	NextReviewAt time.Time `json:"next_review_at"`
}

// StreakResponse represents the user's current study streak.
type StreakResponse struct {
	StreakDays int `json:"streak_days"`
}

func cardToResponse(card *domain.Card) CardResponse {
	return CardResponse{
		ID:           card.ID,
		DeckID:       card.DeckID,
		Word:         card.Word,
		Reading:      card.Reading,
		Meaning:      card.Meaning,
		PartOfSpeech: card.PartOfSpeech,
		Level:        card.Level,
		Examples:     card.Examples,
		Memo:         card.Memo,
		ImageURL:     card.ImageURL,
		AudioURL:     card.AudioURL,
		CreatedAt:    card.CreatedAt,
	}
}

func cardsToSessionResponse(cards []*domain.Card) StudySessionResponse {
	out := make([]CardResponse, 0, len(cards))
	for _, card := range cards {
		out = append(out, cardToResponse(card))
	}
	return StudySessionResponse{Cards: out, Count: len(out)}
}

func questionsToResponse(questions []session.Question) QuizResponse {
	out := make([]QuizQuestionResponse, 0, len(questions))
	for _, q := range questions {
		out = append(out, QuizQuestionResponse{
			CardID:  q.CardID,
			DeckID:  q.DeckID,
			Word:    q.Word,
			Reading: q.Reading,
			Choices: q.Choices,
		})
	}
	return QuizResponse{Questions: out, Count: len(out)}
}

func stateToResponse(state *domain.ReviewState) ReviewStateResponse {
	return ReviewStateResponse{
		CardID:       state.CardID,
		EaseFactor:   state.EaseFactor,
		Interval:     state.Interval,
		Repetitions:  state.Repetitions,
		NextReviewAt: state.NextReviewAt,
	}
}
