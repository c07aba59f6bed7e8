package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/heilocal/feedmap/internal/feedsync"
	"github.com/heilocal/feedmap/internal/gesture"
)

// StreamFrame is one inbound WebSocket message. Type selects the action;
// gesture frames carry the GestureRequest fields.
type StreamFrame struct {
	Type string `json:"type" enum:"gesture,pin,background,closeDetail,viewport"`
	GestureRequest
	ItemID string  `json:"itemId,omitempty"`
	Extent float64 `json:"extent,omitempty"`
}

type streamError struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

// handleStream upgrades to a WebSocket carrying input frames in and session
// events out.
func handleStream(logger *slog.Logger, broker *Broker, metrics *Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := sessionFrom(r)

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true,
		})
		if err != nil {
			logger.Error("websocket accept failed", "error", err)
			return
		}
		defer conn.CloseNow()

		ch := broker.Subscribe(s.ID)
		defer broker.Unsubscribe(s.ID, ch)

		// Registered after Unsubscribe so cancel runs first.
		ctx, cancel := context.WithTimeout(r.Context(), 30*time.Minute)
		defer cancel()

		go func() {
			defer cancel()
			send := func(data []byte) error {
				err := conn.Write(ctx, websocket.MessageText, data)
				if err != nil {
					logger.Debug("websocket write failed", "error", err)
				}
				return err
			}
			if forwardEvents(ctx, ch, send) {
				conn.Close(websocket.StatusGoingAway, "session closed")
			}
		}()

		for {
			var frame StreamFrame
			if err := wsjson.Read(ctx, conn, &frame); err != nil {
				logger.Debug("websocket read ended", "error", err)
				return
			}

			if err := applyFrame(ctx, s, metrics, frame); err != nil {
				if err := wsjson.Write(ctx, conn, streamError{Type: "error", Error: err.Error()}); err != nil {
					return
				}
			}
		}
	}
}

// forwardEvents sends events from ch until ctx ends, a send fails or ch is
// closed. It reports true only when ch was closed while ctx was still live,
// meaning the session itself went away.
func forwardEvents(ctx context.Context, ch <-chan []byte, send func([]byte) error) bool {
	for {
		select {
		case <-ctx.Done():
			return false
		case data, open := <-ch:
			if !open {
				return ctx.Err() == nil
			}
			if err := send(data); err != nil {
				return false
			}
		}
	}
}

var errUnknownItem = errors.New("item not in feed")

func applyFrame(ctx context.Context, s *Session, metrics *Metrics, f StreamFrame) error {
	switch f.Type {
	case "gesture", "":
		ev, err := f.GestureRequest.event()
		if err != nil {
			return err
		}
		var outcome gesture.Outcome
		err = s.Do(ctx, func(c *feedsync.Coordinator) { outcome = c.HandleGesture(ev) })
		if err == nil {
			metrics.gesture(ev.Channel().String(), outcomeLabel(outcome))
		}
		return err
	case "pin":
		var found bool
		if err := s.Do(ctx, func(c *feedsync.Coordinator) { found = c.PinTapped(f.ItemID) }); err != nil {
			return err
		}
		if !found {
			return errUnknownItem
		}
		return nil
	case "background":
		return s.Do(ctx, (*feedsync.Coordinator).BackgroundTapped)
	case "closeDetail":
		return s.Do(ctx, (*feedsync.Coordinator).CloseDetail)
	case "viewport":
		return s.Do(ctx, func(c *feedsync.Coordinator) { c.SetViewportExtent(f.Extent) })
	}
	return errors.New("unknown frame type " + f.Type)
}
