package flowlayout

import (
	"time"

	"github.com/agiangrant/flowlayout/scroll"
)

// ============================================================================
// Pointer Dispatch
// ============================================================================

// InterceptPointer reports whether the container claims ev before its
// children see it. Only moves are claimed; presses and releases reach
// children so taps keep working.
func (f *FlowLayout) InterceptPointer(ev scroll.PointerEvent) bool {
	return scroll.ShouldIntercept(ev.Action)
}

// HandlePointer runs one pointer event through tap detection and the scroll
// state machine. Coordinates are relative to the container's top-left
// corner. It returns true when the event was consumed, either for scrolling
// or because it completed a tap on a child.
func (f *FlowLayout) HandlePointer(ev scroll.PointerEvent) bool {
	switch ev.Action {
	case scroll.ActionDown:
		f.pressed = f.hitTest(ev.X, ev.Y)
		f.scroller.HandlePointer(ev)
		return f.pressed >= 0

	case scroll.ActionMove:
		consumed := f.scroller.HandlePointer(ev)
		if f.scroller.State() == scroll.StateDragging {
			// A drag is never a tap
			f.pressed = -1
		}
		return consumed

	case scroll.ActionUp:
		pressed := f.pressed
		f.pressed = -1
		if f.scroller.HandlePointer(ev) {
			return true
		}
		if pressed >= 0 && f.hitTest(ev.X, ev.Y) == pressed {
			f.activate(f.placements[pressed])
			return true
		}
		return false

	case scroll.ActionCancel:
		f.pressed = -1
		f.scroller.HandlePointer(ev)
		return false
	}
	return false
}

// hitTest returns the placement under a container point, or -1.
func (f *FlowLayout) hitTest(x, y float32) int {
	cx := int(x)
	cy := int(y) + f.scroller.Offset()
	for i, p := range f.placements {
		if p.Rect.Contains(cx, cy) {
			return i
		}
	}
	return -1
}

// Tap activates the child under a container point. It reports whether a
// child was hit.
func (f *FlowLayout) Tap(x, y float32) bool {
	i := f.hitTest(x, y)
	if i < 0 {
		return false
	}
	f.activate(f.placements[i])
	return true
}

// Activate fires the activation handler for the placed child at index. It
// reports false when the child is not shown.
func (f *FlowLayout) Activate(index int) bool {
	for _, p := range f.placements {
		if p.Child.Index == index {
			f.activate(p)
			return true
		}
	}
	return false
}

func (f *FlowLayout) activate(p placed) {
	f.log.Debug("child activated", "row", p.Row, "index", p.Child.Index)
	if f.onActivated != nil {
		f.onActivated(Activation{Row: p.Row, Index: p.Child.Index, Child: p.child})
	}
}

// ============================================================================
// Scrolling
// ============================================================================

// OnScrollStateChanged sets a listener for scroll state transitions. A
// transition to scroll.StateIdle means a drag, fling or programmatic scroll
// finished.
func (f *FlowLayout) OnScrollStateChanged(fn func(scroll.State)) {
	f.onScrollState = fn
}

// Tick advances a running fling or animated scroll. Hosts call it once per
// frame while it returns true.
func (f *FlowLayout) Tick(now time.Time) bool {
	return f.scroller.Tick(now)
}

// ScrollOffset returns the current vertical scroll offset.
func (f *FlowLayout) ScrollOffset() int { return f.scroller.Offset() }

// MaxScrollOffset returns the largest valid scroll offset.
func (f *FlowLayout) MaxScrollOffset() int { return f.scroller.MaxOffset() }

// ScrollState returns the scroll controller's state.
func (f *FlowLayout) ScrollState() scroll.State { return f.scroller.State() }

// ScrollToTop scrolls to offset 0.
func (f *FlowLayout) ScrollToTop(animate bool) {
	f.scrollTo(0, animate)
}

// ScrollToBottom scrolls to the largest valid offset.
func (f *FlowLayout) ScrollToBottom(animate bool) {
	f.scrollTo(f.scroller.MaxOffset(), animate)
}

// ScrollToOffset scrolls to px. Offsets outside the valid range go to the
// nearest end.
func (f *FlowLayout) ScrollToOffset(px int, animate bool) {
	switch {
	case px <= 0:
		f.ScrollToTop(animate)
	case px >= f.scroller.MaxOffset():
		f.ScrollToBottom(animate)
	default:
		f.scrollTo(px, animate)
	}
}

// ScrollToRow scrolls by the summed heights of rows 1..n, so row n+1 lands
// at the top of the viewport.
func (f *FlowLayout) ScrollToRow(n int, animate bool) {
	rows := f.result.Rows
	switch {
	case n <= 0:
		f.ScrollToTop(animate)
	case n >= len(rows):
		f.ScrollToBottom(animate)
	default:
		offset := 0
		for _, r := range rows[:n] {
			offset += r.Height
		}
		f.ScrollToOffset(offset, animate)
	}
}

func (f *FlowLayout) scrollTo(y int, animate bool) {
	if animate {
		f.scroller.SmoothScrollTo(y, f.now())
		return
	}
	f.scroller.SetOffset(y)
}
