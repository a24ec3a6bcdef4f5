package flowlayout

import (
	"time"

	"golang.org/x/mobile/event/touch"

	"github.com/agiangrant/flowlayout/scroll"
)

// HandleTouch feeds a golang.org/x/mobile touch event through HandlePointer.
// Only the first sequence to begin drives the container; other concurrent
// fingers are ignored until it ends. The event carries no timestamp, so the
// host passes the time it was received.
func (f *FlowLayout) HandleTouch(e touch.Event, at time.Time) bool {
	var action scroll.Action
	switch e.Type {
	case touch.TypeBegin:
		if f.touchActive {
			return false
		}
		f.touchActive = true
		f.touchSeq = e.Sequence
		action = scroll.ActionDown
	case touch.TypeMove:
		if !f.touchActive || e.Sequence != f.touchSeq {
			return false
		}
		action = scroll.ActionMove
	case touch.TypeEnd:
		if !f.touchActive || e.Sequence != f.touchSeq {
			return false
		}
		f.touchActive = false
		action = scroll.ActionUp
	default:
		return false
	}
	return f.HandlePointer(scroll.PointerEvent{Action: action, X: e.X, Y: e.Y, Time: at})
}

// CancelTouch abandons the active touch sequence, for example when the host
// window loses focus mid-gesture.
func (f *FlowLayout) CancelTouch(at time.Time) {
	if !f.touchActive {
		return
	}
	f.touchActive = false
	f.HandlePointer(scroll.PointerEvent{Action: scroll.ActionCancel, Time: at})
}
