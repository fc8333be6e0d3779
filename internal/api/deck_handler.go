package api

import (
	"log/slog"
	"net/http"

	"github.com/pkarhu/rehearse/internal/api/shared"
	"github.com/pkarhu/rehearse/internal/deck"
)

// DeckHandler serves the deck listing. Decks are loaded once at startup;
// deck files do not change while the server runs.
type DeckHandler struct {
	decks  []*deck.Deck
	logger *slog.Logger
}

// NewDeckHandler creates a new DeckHandler.
func NewDeckHandler(decks []*deck.Deck, log *slog.Logger) *DeckHandler {
	if log == nil {
		log = slog.Default()
	}

	return &DeckHandler{
		decks:  decks,
		logger: log.With(slog.String("component", "deck_handler")),
	}
}

// ListDecks handles GET /decks requests.
func (h *DeckHandler) ListDecks(w http.ResponseWriter, r *http.Request) {
	response := make([]DeckResponse, 0, len(h.decks))
	for _, d := range h.decks {
		response = append(response, DeckResponse{
			ID:                   d.ID,
			Name:                 d.Name,
			Description:          d.Description,
			AllowDirectionChange: d.AllowDirectionChange,
			CardCount:            len(d.Cards),
		})
	}

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}
