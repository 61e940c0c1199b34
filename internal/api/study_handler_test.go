package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ayumu838/kotoba-api/internal/domain"
	"github.com/ayumu838/kotoba-api/internal/service/review"
	"github.com/ayumu838/kotoba-api/internal/session"
)

func sampleCard(userID, deckID uuid.UUID, word, meaning string) *domain.Card {
	return &domain.Card{
		ID:        uuid.New(),
		DeckID:    deckID,
		UserID:    userID,
		Word:      word,
		Meaning:   meaning,
		CreatedAt: time.Now().UTC(),
	}
}

func TestGetDeckSession(t *testing.T) {
	userID := uuid.New()
	deckID := uuid.New()
	cards := []*domain.Card{
		sampleCard(userID, deckID, "犬", "dog"),
		sampleCard(userID, deckID, "猫", "cat"),
	}

	tests := []struct {
		name           string
		userIDInCtx    uuid.UUID
		pathDeckID     string
		serviceResult  []*domain.Card
		serviceError   error
		expectedStatus int
		expectedCount  int
	}{
		{
			name:           "Success",
			userIDInCtx:    userID,
			pathDeckID:     deckID.String(),
			serviceResult:  cards,
			expectedStatus: http.StatusOK,
			expectedCount:  2,
		},
		{
			name:           "Empty Session",
			userIDInCtx:    userID,
			pathDeckID:     deckID.String(),
			serviceResult:  nil,
			expectedStatus: http.StatusOK,
			expectedCount:  0,
		},
		{
			name:           "Missing User ID",
			userIDInCtx:    uuid.Nil,
			pathDeckID:     deckID.String(),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Invalid Deck ID",
			userIDInCtx:    userID,
			pathDeckID:     "not-a-uuid",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Deck Not Found",
			userIDInCtx:    userID,
			pathDeckID:     deckID.String(),
			serviceError:   review.ErrDeckNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Access Denied",
			userIDInCtx:    userID,
			pathDeckID:     deckID.String(),
			serviceError:   review.ErrDeckAccessDenied,
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockService := &mockReviewService{
				deckSessionFn: func(ctx context.Context, userID, deckID uuid.UUID) ([]*domain.Card, error) {
					return tc.serviceResult, tc.serviceError
				},
			}
			handler := NewStudyHandler(mockService, slog.Default())

			router := chi.NewRouter()
			router.Get("/api/decks/{id}/study", handler.GetDeckSession)

			req, err := http.NewRequest("GET", "/api/decks/"+tc.pathDeckID+"/study", nil)
			if err != nil {
				t.Fatal(err)
			}
			req = withUserID(req, tc.userIDInCtx)

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			if rr.Code != tc.expectedStatus {
				t.Errorf("expected status %d, got %d", tc.expectedStatus, rr.Code)
			}

			if tc.expectedStatus == http.StatusOK {
				var resp StudySessionResponse
				if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if resp.Count != tc.expectedCount {
					t.Errorf("expected %d cards, got %d", tc.expectedCount, resp.Count)
				}
			}
		})
	}
}

func TestGetAllSession(t *testing.T) {
	userID := uuid.New()
	deckID := uuid.New()

	mockService := &mockReviewService{
		allSessionFn: func(ctx context.Context, gotUserID uuid.UUID) ([]*domain.Card, error) {
			if gotUserID != userID {
				t.Errorf("expected user ID %s, got %s", userID, gotUserID)
			}
			return []*domain.Card{sampleCard(userID, deckID, "鳥", "bird")}, nil
		},
	}
	handler := NewStudyHandler(mockService, slog.Default())

	req, err := http.NewRequest("GET", "/api/study", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = withUserID(req, userID)

	rr := httptest.NewRecorder()
	handler.GetAllSession(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	var resp StudySessionResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != 1 {
		t.Errorf("expected 1 card, got %d", resp.Count)
	}
	if resp.Cards[0].Word != "鳥" {
		t.Errorf("expected word 鳥, got %s", resp.Cards[0].Word)
	}
}

func TestGetQuiz(t *testing.T) {
	userID := uuid.New()
	deckID := uuid.New()

	questions := []session.Question{
		{
			CardID:         uuid.New(),
			DeckID:         deckID,
			Word:           "犬",
			CorrectMeaning: "dog",
			Choices:        []string{"cat", "dog", "bird", "fish"},
		},
	}

	tests := []struct {
		name           string
		serviceResult  []session.Question
		serviceError   error
		expectedStatus int
	}{
		{
			name:           "Success",
			serviceResult:  questions,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Not Enough Cards",
			serviceError:   review.ErrNotEnoughCards,
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockService := &mockReviewService{
				quizFn: func(ctx context.Context, userID uuid.UUID) ([]session.Question, error) {
					return tc.serviceResult, tc.serviceError
				},
			}
			handler := NewQuizHandler(mockService, slog.Default())

			req, err := http.NewRequest("GET", "/api/quiz", nil)
			if err != nil {
				t.Fatal(err)
			}
			req = withUserID(req, userID)

			rr := httptest.NewRecorder()
			handler.GetQuiz(rr, req)

			if rr.Code != tc.expectedStatus {
				t.Errorf("expected status %d, got %d", tc.expectedStatus, rr.Code)
			}

			if tc.expectedStatus == http.StatusOK {
				var resp QuizResponse
				if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if resp.Count != 1 {
					t.Errorf("expected 1 question, got %d", resp.Count)
				}
				// The correct answer must not be labeled in the payload.
				if resp.Questions[0].Choices == nil {
					t.Error("expected choices in quiz question")
				}
			}
		})
	}
}
