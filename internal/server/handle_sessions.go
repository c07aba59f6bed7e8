package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/heilocal/feedmap/internal/carousel"
	"github.com/heilocal/feedmap/internal/catalog"
	"github.com/heilocal/feedmap/internal/feedsync"
	"github.com/heilocal/feedmap/internal/geo"
)

type CreateSessionRequest struct {
	Anchor         *geo.Coordinate `json:"anchor,omitempty"`
	Category       string          `json:"category,omitempty"`
	ViewportExtent float64         `json:"viewportExtent,omitempty"`
}

type SessionResponse struct {
	ID          string          `json:"id"`
	Filter      catalog.Filter  `json:"filter"`
	Anchor      *geo.Coordinate `json:"anchor,omitempty"`
	Items       []ItemResponse  `json:"items"`
	Carousel    carousel.State  `json:"carousel"`
	VisualIndex int             `json:"visualIndex"`
	CurrentID   string          `json:"currentId,omitempty"`
	DetailID    string          `json:"detailId,omitempty"`
	Empty       bool            `json:"empty"`
}

func newSessionResponse(id string, v feedsync.View) SessionResponse {
	return SessionResponse{
		ID:          id,
		Filter:      v.Filter,
		Anchor:      v.Anchor,
		Items:       toItemResponses(v.Items),
		Carousel:    v.Carousel,
		VisualIndex: v.Visual,
		CurrentID:   v.CurrentID,
		DetailID:    v.DetailID,
		Empty:       v.Empty,
	}
}

type ViewportRequest struct {
	Extent float64 `json:"extent"`
}

type FilterRequest struct {
	Category string `json:"category"`
}

type AnchorRequest struct {
	Anchor *geo.Coordinate `json:"anchor"`
}

func handleCreateSession(logger *slog.Logger, items CatalogSource, sessions *Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateSessionRequest
		if err := readOptionalJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		filter, err := catalog.ParseFilter(req.Category)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.Anchor != nil && !req.Anchor.Valid() {
			writeError(w, http.StatusBadRequest, "anchor out of range")
			return
		}

		all, err := items.List(r.Context())
		if err != nil {
			logger.Error("listing catalog", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		var view feedsync.View
		s, err := sessions.Create(r.Context(), all, func(c *feedsync.Coordinator) {
			c.SetFilter(filter)
			c.SetAnchor(req.Anchor)
			if req.ViewportExtent > 0 {
				c.SetViewportExtent(req.ViewportExtent)
			}
		})
		if err != nil {
			logger.Error("creating session", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if err := s.Do(r.Context(), func(c *feedsync.Coordinator) { view = c.View() }); err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusCreated, newSessionResponse(s.ID, view))
	}
}

func handleGetSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, ok := onSession(w, r, nil)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, newSessionResponse(sessionFrom(r).ID, view))
	}
}

func handleDeleteSession(sessions *Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := sessions.Delete(sessionFrom(r).ID); err != nil {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleViewport() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ViewportRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		view, ok := onSession(w, r, func(c *feedsync.Coordinator) {
			c.SetViewportExtent(req.Extent)
		})
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, newSessionResponse(sessionFrom(r).ID, view))
	}
}

func handleFilter() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req FilterRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		filter, err := catalog.ParseFilter(req.Category)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		view, ok := onSession(w, r, func(c *feedsync.Coordinator) {
			c.SetFilter(filter)
		})
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, newSessionResponse(sessionFrom(r).ID, view))
	}
}

func handleAnchor() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AnchorRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Anchor != nil && !req.Anchor.Valid() {
			writeError(w, http.StatusBadRequest, "anchor out of range")
			return
		}

		view, ok := onSession(w, r, func(c *feedsync.Coordinator) {
			c.SetAnchor(req.Anchor)
		})
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, newSessionResponse(sessionFrom(r).ID, view))
	}
}

func handlePinTap() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID := chi.URLParam(r, "itemID")

		var found bool
		view, ok := onSession(w, r, func(c *feedsync.Coordinator) {
			found = c.PinTapped(itemID)
		})
		if !ok {
			return
		}
		if !found {
			writeError(w, http.StatusNotFound, "item not in feed")
			return
		}
		writeJSON(w, http.StatusOK, newSessionResponse(sessionFrom(r).ID, view))
	}
}

func handleBackgroundTap() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, ok := onSession(w, r, (*feedsync.Coordinator).BackgroundTapped)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, newSessionResponse(sessionFrom(r).ID, view))
	}
}

func handleCloseDetail() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, ok := onSession(w, r, (*feedsync.Coordinator).CloseDetail)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, newSessionResponse(sessionFrom(r).ID, view))
	}
}
