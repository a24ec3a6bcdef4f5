package scroll

import "time"

// Action identifies a pointer event kind.
type Action uint8

const (
	ActionDown Action = iota + 1
	ActionMove
	ActionUp
	ActionCancel
)

func (a Action) String() string {
	switch a {
	case ActionDown:
		return "down"
	case ActionMove:
		return "move"
	case ActionUp:
		return "up"
	case ActionCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// PointerEvent is a single pointer sample in container coordinates.
type PointerEvent struct {
	Action Action
	X      float32
	Y      float32
	Time   time.Time
}

// ShouldIntercept reports whether the container claims the event before its
// children see it. Presses and releases always reach children so taps keep
// working; any move is claimed for scrolling.
func ShouldIntercept(a Action) bool {
	return a == ActionMove
}
