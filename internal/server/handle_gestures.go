package server

import (
	"net/http"

	"github.com/heilocal/feedmap/internal/feedsync"
	"github.com/heilocal/feedmap/internal/gesture"
)

// GestureRequest is one raw input event. Touch and pointer events carry a
// phase and the vertical position Y; wheel events carry DeltaY.
type GestureRequest struct {
	Channel string  `json:"channel" enum:"touch,pointer,wheel"`
	Phase   string  `json:"phase,omitempty" enum:"start,move,end,cancel"`
	Y       float64 `json:"y,omitempty"`
	DeltaY  float64 `json:"deltaY,omitempty"`
}

func (g GestureRequest) event() (gesture.Event, error) {
	ch, err := gesture.ParseChannel(g.Channel)
	if err != nil {
		return nil, err
	}
	if ch == gesture.ChannelWheel {
		return gesture.WheelScroll{DeltaY: g.DeltaY}, nil
	}

	phase, err := gesture.ParsePhase(g.Phase)
	if err != nil {
		return nil, err
	}
	if ch == gesture.ChannelTouch {
		return gesture.TouchDrag{Phase: phase, Y: g.Y}, nil
	}
	return gesture.PointerDrag{Phase: phase, Y: g.Y}, nil
}

type OutcomeResponse struct {
	Offset    float64 `json:"offset"`
	Commit    string  `json:"commit"`
	Abandoned bool    `json:"abandoned,omitempty"`
	Ignored   bool    `json:"ignored,omitempty"`
}

type GestureResponse struct {
	Outcome OutcomeResponse `json:"outcome"`
	Session SessionResponse `json:"session"`
}

func newOutcomeResponse(o gesture.Outcome) OutcomeResponse {
	return OutcomeResponse{
		Offset:    o.Offset,
		Commit:    o.Commit.String(),
		Abandoned: o.Abandoned,
		Ignored:   o.Ignored,
	}
}

// outcomeLabel is the metrics label for an outcome.
func outcomeLabel(o gesture.Outcome) string {
	switch {
	case o.Ignored:
		return "ignored"
	case o.Abandoned:
		return "abandoned"
	case o.Commit != gesture.DirectionNone:
		return "commit_" + o.Commit.String()
	}
	return "moved"
}

func handleGesture(metrics *Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req GestureRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		ev, err := req.event()
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		var outcome gesture.Outcome
		view, ok := onSession(w, r, func(c *feedsync.Coordinator) {
			outcome = c.HandleGesture(ev)
		})
		if !ok {
			return
		}
		metrics.gesture(ev.Channel().String(), outcomeLabel(outcome))

		writeJSON(w, http.StatusOK, GestureResponse{
			Outcome: newOutcomeResponse(outcome),
			Session: newSessionResponse(sessionFrom(r).ID, view),
		})
	}
}
