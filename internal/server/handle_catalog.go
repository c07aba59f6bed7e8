package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/heilocal/feedmap/internal/catalog"
	"github.com/heilocal/feedmap/internal/geo"
)

// CatalogSource supplies the catalog snapshot. *catalog.Store satisfies it.
type CatalogSource interface {
	List(ctx context.Context) ([]catalog.Item, error)
	Get(ctx context.Context, id string) (catalog.Item, error)
}

type CatalogQuery struct {
	Category string   `schema:"category" query:"category" description:"All, Restaurants or Coffee"`
	Lat      *float64 `schema:"lat" query:"lat" description:"Anchor latitude"`
	Lng      *float64 `schema:"lng" query:"lng" description:"Anchor longitude"`
}

type ItemQuery struct {
	Lat *float64 `schema:"lat" query:"lat" description:"Anchor latitude"`
	Lng *float64 `schema:"lng" query:"lng" description:"Anchor longitude"`
}

type ItemResponse struct {
	catalog.RankedItem
	Distance string `json:"distance,omitempty"`
	PlusCode string `json:"plusCode,omitempty"`
}

type CatalogResponse struct {
	Filter catalog.Filter  `json:"filter"`
	Anchor *geo.Coordinate `json:"anchor,omitempty"`
	Items  []ItemResponse  `json:"items"`
}

func toItemResponses(ranked []catalog.RankedItem) []ItemResponse {
	out := make([]ItemResponse, len(ranked))
	for i, r := range ranked {
		out[i] = ItemResponse{RankedItem: r}
		if r.HasDistance {
			out[i].Distance = geo.FormatDistance(r.DistanceKm)
		}
		if r.Coordinate.Valid() {
			out[i].PlusCode = geo.PlusCode(r.Coordinate)
		}
	}
	return out
}

var (
	errAnchorRange   = errors.New("anchor out of range")
	errAnchorPartial = errors.New("lat and lng must be given together")
)

// queryAnchor builds the optional ranking anchor from lat/lng query values.
func queryAnchor(lat, lng *float64) (*geo.Coordinate, error) {
	switch {
	case lat != nil && lng != nil:
		anchor := &geo.Coordinate{Latitude: *lat, Longitude: *lng}
		if !anchor.Valid() {
			return nil, errAnchorRange
		}
		return anchor, nil
	case lat != nil || lng != nil:
		return nil, errAnchorPartial
	}
	return nil, nil
}

func handleCatalog(logger *slog.Logger, items CatalogSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var q CatalogQuery
		if err := readQuery(r, &q); err != nil {
			writeError(w, http.StatusBadRequest, "invalid query")
			return
		}

		filter, err := catalog.ParseFilter(q.Category)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		anchor, err := queryAnchor(q.Lat, q.Lng)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		all, err := items.List(r.Context())
		if err != nil {
			logger.Error("listing catalog", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, CatalogResponse{
			Filter: filter,
			Anchor: anchor,
			Items:  toItemResponses(catalog.Rank(filter.Apply(all), anchor)),
		})
	}
}

func handleCatalogItem(logger *slog.Logger, items CatalogSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var q ItemQuery
		if err := readQuery(r, &q); err != nil {
			writeError(w, http.StatusBadRequest, "invalid query")
			return
		}
		anchor, err := queryAnchor(q.Lat, q.Lng)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		id := chi.URLParam(r, "itemID")
		it, err := items.Get(r.Context(), id)
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "item not found")
			return
		}
		if err != nil {
			logger.Error("getting catalog item", "item", id, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, toItemResponses(catalog.Rank([]catalog.Item{it}, anchor))[0])
	}
}
