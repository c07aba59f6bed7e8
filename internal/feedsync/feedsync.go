// Package feedsync keeps the feed carousel and the map in lockstep.
//
// A Coordinator owns the catalog snapshot, the active filter and anchor, the
// carousel and the gesture normalizer for one feed. It is not safe for
// concurrent use: every call, including timer callbacks, must run on the
// scheduler's goroutine.
package feedsync

import (
	"log/slog"
	"time"

	"github.com/heilocal/feedmap/internal/carousel"
	"github.com/heilocal/feedmap/internal/catalog"
	"github.com/heilocal/feedmap/internal/geo"
	"github.com/heilocal/feedmap/internal/gesture"
	"github.com/heilocal/feedmap/internal/timer"
)

// MapProvider is the map the feed drives. It never opens detail UI.
type MapProvider interface {
	SetCenter(c geo.Coordinate)
	// SetSelectedPin highlights the pin of id. An empty id clears it.
	SetSelectedPin(id string)
}

// Listener receives the feed's outbound notifications.
type Listener interface {
	// CurrentItemChanged is a soft select: the map follows, nothing opens.
	CurrentItemChanged(item catalog.RankedItem)
	// DetailRequested fires only for a hard select from the map.
	DetailRequested(item catalog.RankedItem)
	DetailClosed(id string)
}

type Option func(*options)

type options struct {
	logger       *slog.Logger
	centerOffset float64
	policy       gesture.Policy
	carousel     []carousel.Option
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithCenterOffset shifts the map centre east of the selected pin by deg
// degrees of longitude so the pin stays visible beside the detail overlay.
func WithCenterOffset(deg float64) Option {
	return func(o *options) { o.centerOffset = deg }
}

func WithPolicy(p gesture.Policy) Option {
	return func(o *options) { o.policy = p }
}

func WithSnapDuration(d time.Duration) Option {
	return func(o *options) { o.carousel = append(o.carousel, carousel.WithSnapDuration(d)) }
}

func WithViewportExtent(px float64) Option {
	return func(o *options) { o.carousel = append(o.carousel, carousel.WithViewportExtent(px)) }
}

type Coordinator struct {
	log          *slog.Logger
	maps         MapProvider
	listener     Listener
	centerOffset float64

	items  []catalog.Item
	filter catalog.Filter
	anchor *geo.Coordinate
	ranked []catalog.RankedItem
	byID   map[string]int

	feed     *carousel.Model
	gestures *gesture.Normalizer

	lastEmitted string
	detailID    string
}

// New returns a coordinator with an empty catalog. maps and listener may be
// nil.
func New(sched timer.Scheduler, maps MapProvider, listener Listener, opts ...Option) *Coordinator {
	o := options{
		logger: slog.Default(),
		policy: gesture.DefaultPolicy(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	c := &Coordinator{
		log:          o.logger,
		maps:         maps,
		listener:     listener,
		centerOffset: o.centerOffset,
		filter:       catalog.FilterAll,
		byID:         map[string]int{},
	}
	c.feed = carousel.New(sched, o.carousel...)
	c.gestures = gesture.New(c.feed, sched, o.policy)
	c.feed.Observe(c.sync)
	return c
}

// SetCatalog replaces the catalog snapshot. Any gesture in progress is
// abandoned and the feed restarts at the nearest item.
func (c *Coordinator) SetCatalog(items []catalog.Item) {
	c.items = append(c.items[:0:0], items...)
	c.rebuild("catalog")
}

func (c *Coordinator) SetFilter(f catalog.Filter) {
	if f == "" {
		f = catalog.FilterAll
	}
	if f == c.filter {
		return
	}
	c.filter = f
	c.rebuild("filter")
}

// SetAnchor sets the user's position used for ranking. nil ranks in catalog
// order.
func (c *Coordinator) SetAnchor(anchor *geo.Coordinate) {
	if sameAnchor(c.anchor, anchor) {
		return
	}
	if anchor != nil {
		a := *anchor
		anchor = &a
	}
	c.anchor = anchor
	c.rebuild("anchor")
}

func sameAnchor(a, b *geo.Coordinate) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (c *Coordinator) Filter() catalog.Filter { return c.filter }

func (c *Coordinator) Anchor() *geo.Coordinate {
	if c.anchor == nil {
		return nil
	}
	a := *c.anchor
	return &a
}

func (c *Coordinator) rebuild(reason string) {
	c.ranked = catalog.Rank(c.filter.Apply(c.items), c.anchor)
	c.byID = make(map[string]int, len(c.ranked))
	for i, r := range c.ranked {
		if _, dup := c.byID[r.ID]; !dup {
			c.byID[r.ID] = i
		}
	}

	c.gestures.Reset()
	if c.detailID != "" {
		if _, ok := c.byID[c.detailID]; !ok {
			c.closeDetail()
		}
	}
	c.feed.Reset(catalog.IDs(c.ranked))

	c.log.Debug("feed reset", "reason", reason, "filter", c.filter, "items", len(c.ranked))
}

// HandleGesture feeds one raw input event to the normalizer.
func (c *Coordinator) HandleGesture(ev gesture.Event) gesture.Outcome {
	return c.gestures.Handle(ev)
}

func (c *Coordinator) SetViewportExtent(px float64) {
	c.feed.SetViewportExtent(px)
}

// PinTapped is a hard select: the feed jumps to id and its detail opens. It
// reports false when id is not in the current feed.
func (c *Coordinator) PinTapped(id string) bool {
	i, ok := c.byID[id]
	if !ok {
		return false
	}
	jumped := c.feed.ForceJumpTo(id)
	c.detailID = id
	c.log.Debug("hard select", "item", id, "jumped", jumped)
	if c.listener != nil {
		c.listener.DetailRequested(c.ranked[i])
	}
	return true
}

// BackgroundTapped deselects: the detail closes, the feed stays put.
func (c *Coordinator) BackgroundTapped() {
	c.closeDetail()
}

func (c *Coordinator) CloseDetail() {
	c.closeDetail()
}

func (c *Coordinator) closeDetail() {
	if c.detailID == "" {
		return
	}
	id := c.detailID
	c.detailID = ""
	if c.listener != nil {
		c.listener.DetailClosed(id)
	}
}

// sync runs after every carousel change and emits a soft select when the
// item under the viewport changed.
func (c *Coordinator) sync(s carousel.Snapshot) {
	if s.Empty() {
		if c.lastEmitted != "" && c.maps != nil {
			c.maps.SetSelectedPin("")
		}
		c.lastEmitted = ""
		return
	}
	if s.CurrentID == c.lastEmitted {
		return
	}
	c.lastEmitted = s.CurrentID

	item := c.ranked[c.byID[s.CurrentID]]
	if c.maps != nil {
		c.maps.SetSelectedPin(item.ID)
		c.maps.SetCenter(c.center(item.Coordinate))
	}
	if c.listener != nil {
		c.listener.CurrentItemChanged(item)
	}
}

func (c *Coordinator) center(at geo.Coordinate) geo.Coordinate {
	return geo.Coordinate{Latitude: at.Latitude, Longitude: at.Longitude + c.centerOffset}
}

// View is a consistent read of the feed.
type View struct {
	Filter    catalog.Filter       `json:"filter"`
	Anchor    *geo.Coordinate      `json:"anchor,omitempty"`
	Items     []catalog.RankedItem `json:"items"`
	Carousel  carousel.State       `json:"carousel"`
	Visual    int                  `json:"visualIndex"`
	CurrentID string               `json:"currentId,omitempty"`
	DetailID  string               `json:"detailId,omitempty"`
	Empty     bool                 `json:"empty"`
}

func (c *Coordinator) View() View {
	s := c.feed.Snapshot()
	return View{
		Filter:    c.filter,
		Anchor:    c.Anchor(),
		Items:     append(make([]catalog.RankedItem, 0, len(c.ranked)), c.ranked...),
		Carousel:  s.State,
		Visual:    s.VisualIndex,
		CurrentID: s.CurrentID,
		DetailID:  c.detailID,
		Empty:     s.Empty(),
	}
}
