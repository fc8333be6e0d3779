// Package api provides HTTP handlers for the API.
package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/pkarhu/rehearse/internal/api/shared"
	"github.com/pkarhu/rehearse/internal/domain"
	"github.com/pkarhu/rehearse/internal/platform/logger"
	"github.com/pkarhu/rehearse/internal/service/review"
)

// ReviewHandler handles review session HTTP requests.
type ReviewHandler struct {
	reviewService review.ReviewService
	logger        *slog.Logger
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService review.ReviewService, log *slog.Logger) *ReviewHandler {
	if reviewService == nil {
		panic("reviewService cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &ReviewHandler{
		reviewService: reviewService,
		logger:        log.With(slog.String("component", "review_handler")),
	}
}

// StartSessionRequest represents the request body for starting a session.
type StartSessionRequest struct {
	DeckIDs []string `json:"deck_ids" validate:"required,min=1,dive,required"`
}

// StartSession handles POST /session requests. It begins a review session
// over the requested deck set and returns the first prompt.
func (h *ReviewHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req StartSessionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Debug("malformed session request", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "At least one deck must be selected")
		return
	}

	prompt, err := h.reviewService.StartSession(r.Context(), req.DeckIDs)
	if errors.Is(err, review.ErrNoCardsDue) {
		shared.RespondWithJSON(w, r, http.StatusOK, doneResponse())
		return
	}
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("session started",
		slog.Any("deck_ids", req.DeckIDs),
		slog.String("card_id", prompt.Card.ID))
	shared.RespondWithJSON(w, r, http.StatusOK, promptToResponse(prompt))
}

// GetNextCard handles GET /review/next requests. It returns the card
// currently being asked, or done when nothing is due.
func (h *ReviewHandler) GetNextCard(w http.ResponseWriter, r *http.Request) {
	prompt, err := h.reviewService.CurrentPrompt(r.Context())
	if errors.Is(err, review.ErrNoCardsDue) {
		shared.RespondWithJSON(w, r, http.StatusOK, doneResponse())
		return
	}
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, promptToResponse(prompt))
}

// SubmitAnswerRequest represents the request body for grading the current card.
type SubmitAnswerRequest struct {
	Grade string `json:"grade" validate:"required,oneof=again hard good"`
}

// SubmitAnswer handles POST /review/answer requests. It grades the current
// card and returns the next prompt.
func (h *ReviewHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req SubmitAnswerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Debug("malformed answer request", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			"Invalid answer: grade must be one of again, hard, good")
		return
	}

	answer := review.ReviewAnswer{Grade: domain.ReviewGrade(req.Grade)}
	prompt, err := h.reviewService.SubmitAnswer(r.Context(), answer)
	if errors.Is(err, review.ErrNoCardsDue) {
		// The answer was recorded; there is just nothing else to ask.
		shared.RespondWithJSON(w, r, http.StatusOK, doneResponse())
		return
	}
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("answer recorded",
		slog.String("grade", req.Grade),
		slog.String("next_card_id", prompt.Card.ID))
	shared.RespondWithJSON(w, r, http.StatusOK, promptToResponse(prompt))
}
