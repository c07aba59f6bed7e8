package gesture

import (
	"fmt"
	"strings"
)

// Channel identifies the input device family that produced an event.
type Channel int

const (
	ChannelNone Channel = iota
	ChannelTouch
	ChannelPointer
	ChannelWheel
)

func (c Channel) String() string {
	switch c {
	case ChannelTouch:
		return "touch"
	case ChannelPointer:
		return "pointer"
	case ChannelWheel:
		return "wheel"
	default:
		return "none"
	}
}

func ParseChannel(s string) (Channel, error) {
	switch strings.ToLower(s) {
	case "touch":
		return ChannelTouch, nil
	case "pointer", "mouse":
		return ChannelPointer, nil
	case "wheel":
		return ChannelWheel, nil
	}
	return ChannelNone, fmt.Errorf("unknown gesture channel %q", s)
}

// Phase is the lifecycle step of a drag.
type Phase int

const (
	PhaseStart Phase = iota
	PhaseMove
	PhaseEnd
	PhaseCancel
)

func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhaseMove:
		return "move"
	case PhaseEnd:
		return "end"
	case PhaseCancel:
		return "cancel"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

func ParsePhase(s string) (Phase, error) {
	switch strings.ToLower(s) {
	case "start", "down":
		return PhaseStart, nil
	case "move":
		return PhaseMove, nil
	case "end", "up":
		return PhaseEnd, nil
	case "cancel", "leave":
		return PhaseCancel, nil
	}
	return 0, fmt.Errorf("unknown gesture phase %q", s)
}

// Event is one raw input. It is one of TouchDrag, PointerDrag or
// WheelScroll.
type Event interface {
	Channel() Channel
	isEvent()
}

// TouchDrag is a touch at vertical screen position Y.
type TouchDrag struct {
	Phase Phase
	Y     float64
}

// PointerDrag is a mouse button event at vertical screen position Y.
type PointerDrag struct {
	Phase Phase
	Y     float64
}

// WheelScroll is one wheel tick; positive DeltaY scrolls toward the next item.
type WheelScroll struct {
	DeltaY float64
}

func (TouchDrag) Channel() Channel   { return ChannelTouch }
func (PointerDrag) Channel() Channel { return ChannelPointer }
func (WheelScroll) Channel() Channel { return ChannelWheel }

func (TouchDrag) isEvent()   {}
func (PointerDrag) isEvent() {}
func (WheelScroll) isEvent() {}

// Direction is the commit a gesture produced, if any.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionNext
	DirectionPrev
)

func (d Direction) String() string {
	switch d {
	case DirectionNext:
		return "next"
	case DirectionPrev:
		return "prev"
	}
	return "none"
}

// Outcome is the normalized form of one event.
type Outcome struct {
	Offset    float64
	Commit    Direction
	Abandoned bool
	Ignored   bool
}
