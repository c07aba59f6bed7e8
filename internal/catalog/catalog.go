// Package catalog holds the discoverable places shown in the feed and ranks
// them by distance from the user.
package catalog

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/heilocal/feedmap/internal/geo"
)

type Category string

const (
	Restaurants Category = "Restaurants"
	Coffee      Category = "Coffee"
)

// Filter selects a subset of the catalog. FilterAll keeps everything.
type Filter string

const FilterAll Filter = "All"

func ParseFilter(s string) (Filter, error) {
	switch {
	case s == "", strings.EqualFold(s, string(FilterAll)):
		return FilterAll, nil
	case strings.EqualFold(s, string(Restaurants)):
		return Filter(Restaurants), nil
	case strings.EqualFold(s, string(Coffee)):
		return Filter(Coffee), nil
	}
	return "", fmt.Errorf("unknown category filter %q", s)
}

// Item is one place. Items are immutable once loaded.
type Item struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Category    Category       `json:"category"`
	Coordinate  geo.Coordinate `json:"coordinate"`
	Address     string         `json:"address,omitempty"`
	OpenTime    string         `json:"openTime,omitempty"`
	PriceRange  string         `json:"priceRange,omitempty"`
	Description string         `json:"description,omitempty"`
	Rating      float64        `json:"rating,omitempty"`
	RatingCount int            `json:"ratingCount,omitempty"`
	VideoURL    string         `json:"videoUrl,omitempty"`
	ImageURL    string         `json:"imageUrl,omitempty"`
}

// RankedItem is an Item with its distance from the anchor. HasDistance is
// false when ranking ran without an anchor.
type RankedItem struct {
	Item
	DistanceKm  float64 `json:"distanceKm"`
	HasDistance bool    `json:"hasDistance"`
}

// Apply returns the items matching f, in catalog order.
func (f Filter) Apply(items []Item) []Item {
	if f == "" || f == FilterAll {
		return slices.Clone(items)
	}
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if Filter(it.Category) == f {
			out = append(out, it)
		}
	}
	return out
}

// Rank orders items by distance from anchor, nearest first. Equal distances
// keep catalog order. A nil anchor keeps catalog order and leaves distances
// unset. Items whose distance is not finite go last.
func Rank(items []Item, anchor *geo.Coordinate) []RankedItem {
	ranked := make([]RankedItem, len(items))
	for i, it := range items {
		ranked[i] = RankedItem{Item: it}
	}
	if anchor == nil {
		return ranked
	}

	for i := range ranked {
		ranked[i].DistanceKm = geo.Distance(*anchor, ranked[i].Coordinate)
		ranked[i].HasDistance = true
	}
	slices.SortStableFunc(ranked, func(a, b RankedItem) int {
		aBad, bBad := !finite(a.DistanceKm), !finite(b.DistanceKm)
		switch {
		case aBad && bBad:
			return 0
		case aBad:
			return 1
		case bBad:
			return -1
		}
		return cmp.Compare(a.DistanceKm, b.DistanceKm)
	})
	return ranked
}

// IDs returns the item ids in order.
func IDs(ranked []RankedItem) []string {
	ids := make([]string, len(ranked))
	for i, r := range ranked {
		ids[i] = r.ID
	}
	return ids
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
