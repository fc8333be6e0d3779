package api

import (
	"time"

	"github.com/pkarhu/rehearse/internal/domain"
	"github.com/pkarhu/rehearse/internal/service/review"
)

// DeckResponse represents one deck in the deck listing.
type DeckResponse struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	Description          string `json:"description,omitempty"`
	AllowDirectionChange bool   `json:"allow_direction_change"`
	CardCount            int    `json:"card_count"`
}

// CardResponse represents the card currently being asked.
type CardResponse struct {
	ID              string    `json:"id"`
	DeckID          string    `json:"deck_id"`
	Front           string    `json:"front"`
	Back            string    `json:"back"`
	AudioFront      string    `json:"audio_front,omitempty"`
	AudioBack       string    `json:"audio_back,omitempty"`
	ActiveDirection string    `json:"active_direction"`
	Repetition      int       `json:"repetition"`
	IntervalDays    float64   `json:"interval_days"`
	EaseFactor      float64   `json:"ease_factor"`
	NextReviewDate  time.Time `json:"next_review_date"`
}

// PromptResponse is the shape shared by every session endpoint: either the
// next card to review, or done.
type PromptResponse struct {
	Done           bool          `json:"done"`
	Card           *CardResponse `json:"card,omitempty"`
	AskedDirection string        `json:"asked_direction,omitempty"`
	Remaining      int           `json:"remaining"`
}

func cardToResponse(card *domain.Card) *CardResponse {
	return &CardResponse{
		ID:              card.ID,
		DeckID:          card.DeckID,
		Front:           card.Front,
		Back:            card.Back,
		AudioFront:      card.AudioFront,
		AudioBack:       card.AudioBack,
		ActiveDirection: string(card.ActiveDirection),
		Repetition:      card.Repetition,
		IntervalDays:    card.Interval,
		EaseFactor:      card.EaseFactor,
		NextReviewDate:  card.NextReviewDate,
	}
}

func promptToResponse(prompt *review.Prompt) PromptResponse {
	return PromptResponse{
		Done:           false,
		Card:           cardToResponse(prompt.Card),
		AskedDirection: string(prompt.AskedDirection),
		Remaining:      prompt.Remaining,
	}
}

func doneResponse() PromptResponse {
	return PromptResponse{Done: true}
}
