// Package flowlayout arranges a variable number of children left to right,
// wrapping to a new row when horizontal space runs out. Rows may be capped,
// aligned with one of four gravities, and scrolled vertically with drag and
// fling when the content outgrows the viewport.
//
// A FlowLayout is driven entirely by its host: the host calls Layout when the
// container is measured, feeds pointer events through HandlePointer (or
// HandleTouch), and calls Tick once per frame while an animation runs.
// Nothing here starts goroutines or timers, and nothing is safe for
// concurrent use.
package flowlayout

import (
	"log/slog"
	"os"
	"time"

	"golang.org/x/mobile/event/touch"

	"github.com/agiangrant/flowlayout/layout"
	"github.com/agiangrant/flowlayout/scroll"
)

// HeightMode says how the container's height is decided.
type HeightMode uint8

const (
	// HeightWrap is exactly the content height.
	HeightWrap HeightMode = iota
	// HeightExact uses MeasureSpec.Height regardless of content.
	HeightExact
	// HeightAtMost grows with content up to MeasureSpec.Height.
	HeightAtMost
)

// MeasureSpec is the size constraint the host lays the container out under.
type MeasureSpec struct {
	Width      int
	Height     int
	HeightMode HeightMode
}

// LayoutResult is the immutable outcome of one layout pass. Rectangles are in
// content coordinates: padding is applied, the scroll offset is not.
type LayoutResult struct {
	Rows []layout.Row

	Width  int // measured container width
	Height int // measured container (viewport) height

	ContentHeight     int // rows plus vertical padding
	MaxScrollOffset   int
	VisibleChildCount int
	TotalChildCount   int // children that are not hidden
	AllChildrenShown  bool
	Truncated         bool
}

// RowCount returns the number of rows shown.
func (r LayoutResult) RowCount() int { return len(r.Rows) }

// placed is a laid-out child with the handle the adapter created for it.
type placed struct {
	layout.Placement
	child Child
}

// FlowLayout is the flow-wrapping container. The zero value is not usable;
// create one with New.
type FlowLayout struct {
	measurer Measurer
	adapter  Adapter
	// unregisters the adapter observer, if any
	unobserve func()

	maxRows int
	gravity layout.Gravity
	padding layout.Insets

	scroller  *scroll.Controller
	estimator scroll.VelocityEstimator

	// Last completed pass
	result     LayoutResult
	placements []placed
	created    []Child
	laidOut    bool

	// adapter count seen by the last pass, hidden children included
	adapterCount int

	needsLayout bool

	// Tap tracking: index into placements, -1 when nothing is pressed
	pressed int

	// Touch bridge: the sequence currently driving the container
	touchSeq    touch.Sequence
	touchActive bool

	log *slog.Logger
	now func() time.Time

	onLayoutFinished func(LayoutFinished)
	onActivated      func(Activation)
	onRequestLayout  func()
	onScroll         func(offset int)
	onScrollState    func(scroll.State)
}

// New creates an unbound container. Invalid config values fall back to their
// defaults with a warning.
func New(measurer Measurer, cfg Config, opts ...Option) *FlowLayout {
	f := &FlowLayout{
		measurer:    measurer,
		pressed:     -1,
		needsLayout: true,
		log:         defaultLogger(cfg.Debug),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.maxRows = layout.NormalizeMaxRows(cfg.MaxRowCount)
	f.gravity = cfg.resolveGravity(f.log)
	f.padding = cfg.resolvePadding(f.log)

	f.scroller = scroll.NewController(cfg.ScrollSettings(f.log))
	f.scroller.SetVelocityEstimator(f.estimator)
	f.scroller.OnScroll(func(offset int) {
		if f.onScroll != nil {
			f.onScroll(offset)
		}
	})
	f.scroller.OnStateChange(func(s scroll.State) {
		f.log.Debug("scroll state", "state", s, "offset", f.scroller.Offset())
		if f.onScrollState != nil {
			f.onScrollState(s)
		}
	})
	return f
}

func defaultLogger(debug bool) *slog.Logger {
	if debug {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.DiscardHandler)
}

// ============================================================================
// Configuration
// ============================================================================

// SetAdapter binds the data source, replacing any previous one. Passing nil
// unbinds the container. Observable adapters trigger a relayout on change.
func (f *FlowLayout) SetAdapter(a Adapter) {
	if f.unobserve != nil {
		f.unobserve()
		f.unobserve = nil
	}
	// Old children go back to the adapter that created them
	f.releaseChildren()
	f.adapter = a
	if obs, ok := a.(Observable); ok {
		f.unobserve = obs.RegisterObserver(f.NotifyDataSetChanged)
	}
	f.scroller.SetOffset(0)
	f.requestLayout("adapter")
}

// Adapter returns the bound data source, or nil.
func (f *FlowLayout) Adapter() Adapter { return f.adapter }

// NotifyDataSetChanged requests a relayout after the data changed. The scroll
// offset is kept and clamped by the next pass.
func (f *FlowLayout) NotifyDataSetChanged() {
	f.requestLayout("data")
}

// SetMaxRowCount bounds the number of rows. Negative values mean unbounded.
//
// A value equivalent to the current one is stored without a relayout: equal
// after normalization, or, once a pass has shown every child, unbounded or
// at least that pass's row count. A zero bound is only equivalent for an
// empty adapter. Any other value resets the scroll offset and requests a
// relayout.
func (f *FlowLayout) SetMaxRowCount(n int) {
	n = layout.NormalizeMaxRows(n)
	if f.equivalentRowBound(n) {
		f.maxRows = n
		return
	}
	f.maxRows = n
	f.scroller.SetOffset(0)
	f.requestLayout("max rows")
}

func (f *FlowLayout) equivalentRowBound(n int) bool {
	if n == f.maxRows {
		return true
	}
	if f.adapter == nil || !f.laidOut || f.needsLayout || !f.result.AllChildrenShown {
		return false
	}
	// A zero bound never measures, so hidden children count as not shown
	if n == 0 {
		return f.adapterCount == 0
	}
	return n == layout.Unbounded || n >= f.result.RowCount()
}

// MaxRowCount returns the row bound, layout.Unbounded when there is none.
func (f *FlowLayout) MaxRowCount() int { return f.maxRows }

// SetHorizontalGravity changes row alignment. Unknown gravities fall back to
// layout.GravityLeft.
func (f *FlowLayout) SetHorizontalGravity(g layout.Gravity) {
	if !g.Valid() {
		f.log.Warn("invalid gravity, using left", "gravity", g)
		g = layout.GravityLeft
	}
	if g == f.gravity {
		return
	}
	f.gravity = g
	f.scroller.SetOffset(0)
	f.requestLayout("gravity")
}

// Gravity returns the row alignment.
func (f *FlowLayout) Gravity() layout.Gravity { return f.gravity }

// SetPadding changes the container padding. Negative edges are treated as 0.
func (f *FlowLayout) SetPadding(p layout.Insets) {
	p = clampInsets(p)
	if p == f.padding {
		return
	}
	f.padding = p
	f.requestLayout("padding")
}

// Padding returns the container padding.
func (f *FlowLayout) Padding() layout.Insets { return f.padding }

// NeedsLayout reports whether a relayout was requested since the last pass.
func (f *FlowLayout) NeedsLayout() bool { return f.needsLayout }

func (f *FlowLayout) requestLayout(reason string) {
	f.needsLayout = true
	f.log.Debug("layout requested", "reason", reason)
	if f.onRequestLayout != nil {
		f.onRequestLayout()
	}
}

// ============================================================================
// Layout Pass
// ============================================================================

// Layout runs one full measure and layout pass under spec. Every child
// created by the previous pass is discarded first. The scroll offset is
// clamped into the new range and the layout-finished listener fires, except
// while no adapter is bound.
func (f *FlowLayout) Layout(spec MeasureSpec) LayoutResult {
	f.releaseChildren()
	f.pressed = -1

	width := max(spec.Width, 0)
	contentWidth := max(width-f.padding.Horizontal(), 0)

	if f.adapter == nil {
		f.adapterCount = 0
		res := LayoutResult{
			Width:            width,
			ContentHeight:    f.padding.Vertical(),
			AllChildrenShown: true,
		}
		f.commit(res, spec)
		return f.result
	}

	count := max(f.adapter.Count(), 0)
	f.adapterCount = count
	res := LayoutResult{Width: width, TotalChildCount: count}

	if count > 0 && f.maxRows != 0 {
		specs := layout.AcquireSpecs(count)
		constraints := Constraints{AvailableWidth: contentWidth, AvailableHeight: availableHeight(spec)}

		hidden := 0
		for i := 0; i < count; i++ {
			child := f.adapter.CreateChild(i)
			f.created = append(f.created, child)

			m := f.measurer.MeasureChild(child, constraints)
			if m.Hidden {
				hidden++
				continue
			}
			specs = append(specs, layout.ChildSpec{
				Index:  i,
				Width:  max(m.Width, 0),
				Height: max(m.Height, 0),
				Margin: clampInsets(m.Margin),
			})
		}

		packed := layout.Pack(specs, contentWidth, f.maxRows)
		layout.ReleaseSpecs(specs)
		layout.Align(packed.Rows, contentWidth, f.gravity)

		for r := range packed.Rows {
			row := &packed.Rows[r]
			row.Top += f.padding.Top
			for c := range row.Children {
				p := &row.Children[c]
				p.Rect = p.Rect.Offset(f.padding.Left, f.padding.Top)
				f.placements = append(f.placements, placed{Placement: *p, child: f.created[p.Child.Index]})
			}
		}

		res.Rows = packed.Rows
		res.TotalChildCount = count - hidden
		res.VisibleChildCount = packed.Visible
		res.Truncated = packed.Truncated
		res.ContentHeight = packed.ContentHeight
	} else if count > 0 {
		// A zero row bound shows nothing without creating children
		res.Truncated = true
	}

	res.ContentHeight += f.padding.Vertical()
	res.AllChildrenShown = !res.Truncated && res.VisibleChildCount == res.TotalChildCount
	f.commit(res, spec)

	f.log.Debug("layout",
		"rows", f.result.RowCount(),
		"visible", f.result.VisibleChildCount,
		"total", f.result.TotalChildCount,
		"content_height", f.result.ContentHeight,
		"max_scroll", f.result.MaxScrollOffset,
	)
	f.fireLayoutFinished(LayoutFinished{
		TotalRows:       f.result.RowCount(),
		VisibleChildren: f.result.VisibleChildCount,
		AllShown:        f.result.AllChildrenShown,
	})
	return f.result
}

// commit finishes a pass: measured height, scroll range and bookkeeping.
func (f *FlowLayout) commit(res LayoutResult, spec MeasureSpec) {
	switch spec.HeightMode {
	case HeightExact:
		res.Height = max(spec.Height, 0)
	case HeightAtMost:
		res.Height = min(res.ContentHeight, max(spec.Height, 0))
	default:
		res.Height = res.ContentHeight
	}
	res.MaxScrollOffset = max(res.ContentHeight-res.Height, 0)

	// Clamps the offset before anyone can observe the new rectangles
	f.scroller.SetMaxOffset(res.MaxScrollOffset)

	f.result = res
	f.laidOut = true
	f.needsLayout = false
}

func availableHeight(spec MeasureSpec) int {
	if spec.HeightMode == HeightWrap {
		return layout.Unbounded
	}
	return max(spec.Height, 0)
}

func (f *FlowLayout) releaseChildren() {
	var rel Releaser
	if r, ok := f.adapter.(Releaser); ok {
		rel = r
	} else if r, ok := f.measurer.(Releaser); ok {
		rel = r
	}
	if rel != nil {
		for _, c := range f.created {
			rel.ReleaseChild(c)
		}
	}
	clear(f.created)
	f.created = f.created[:0]
	f.placements = f.placements[:0]
}

// ============================================================================
// Accessors
// ============================================================================

// Result returns the last completed pass.
func (f *FlowLayout) Result() LayoutResult { return f.result }

// ShowRowCount returns the number of rows shown by the last pass.
func (f *FlowLayout) ShowRowCount() int { return f.result.RowCount() }

// AllChildrenShown reports whether the last pass placed every child.
func (f *FlowLayout) AllChildrenShown() bool { return f.result.AllChildrenShown }

// VisibleChildCount returns how many children the last pass placed.
func (f *FlowLayout) VisibleChildCount() int { return f.result.VisibleChildCount }

// Placements returns the placed children of the last pass in index order.
// Rectangles are in content coordinates.
func (f *FlowLayout) Placements() []layout.Placement {
	out := make([]layout.Placement, len(f.placements))
	for i, p := range f.placements {
		out[i] = p.Placement
	}
	return out
}

// ChildAt returns the child created for index by the last pass.
func (f *FlowLayout) ChildAt(index int) (Child, bool) {
	if index < 0 || index >= len(f.created) {
		return nil, false
	}
	return f.created[index], true
}

// Item returns the adapter's item at index when the adapter is an
// ItemAdapter.
func (f *FlowLayout) Item(index int) (any, bool) {
	ia, ok := f.adapter.(ItemAdapter)
	if !ok || index < 0 || index >= ia.Count() {
		return nil, false
	}
	return ia.Item(index), true
}
