package server

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"
)

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	Catalog  CatalogSource
	Sessions *Sessions
	Broker   *Broker
	Metrics  *Metrics
	SPADir   string
}

func addRoutes(r chi.Router, logger *slog.Logger, deps Deps) {
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("feedmap API", "/openapi.json", "/docs"))
	r.Handle("/metrics", deps.Metrics.Handler())

	r.Get("/api/catalog", handleCatalog(logger, deps.Catalog))
	r.Get("/api/catalog/{itemID}", handleCatalogItem(logger, deps.Catalog))
	r.Post("/api/sessions", handleCreateSession(logger, deps.Catalog, deps.Sessions))

	// Per-session routes; {id} resolved by sessionMiddleware.
	r.Route("/api/sessions/{id}", func(r chi.Router) {
		r.Use(sessionMiddleware(deps.Sessions))
		r.Get("/", handleGetSession())
		r.Delete("/", handleDeleteSession(deps.Sessions))
		r.Post("/gestures", handleGesture(deps.Metrics))
		r.Put("/viewport", handleViewport())
		r.Put("/filter", handleFilter())
		r.Put("/anchor", handleAnchor())
		r.Post("/map/pins/{itemID}", handlePinTap())
		r.Post("/map/background", handleBackgroundTap())
		r.Post("/detail/close", handleCloseDetail())
		r.Get("/events", handleEvents(deps.Broker))
		r.Get("/stream", handleStream(logger, deps.Broker, deps.Metrics))
	})

	if deps.SPADir != "" {
		if info, err := os.Stat(deps.SPADir); err == nil && info.IsDir() {
			logger.Info("serving SPA", "dir", deps.SPADir)
			r.NotFound(handleSPA(deps.SPADir))
		}
	}
}
