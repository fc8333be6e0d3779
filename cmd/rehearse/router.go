package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkarhu/rehearse/internal/api"
	apiMiddleware "github.com/pkarhu/rehearse/internal/api/middleware"
)

// newRouter configures the application router with all routes and middleware.
func newRouter(
	deckHandler *api.DeckHandler,
	reviewHandler *api.ReviewHandler,
	log *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace)

	r.Route("/api", func(r chi.Router) {
		r.Get("/decks", deckHandler.ListDecks)
		r.Post("/session", reviewHandler.StartSession)
		r.Get("/review/next", reviewHandler.GetNextCard)
		r.Post("/review/answer", reviewHandler.SubmitAnswer)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			log.Error("failed to write health check response", slog.String("error", err.Error()))
		}
	})

	return r
}
