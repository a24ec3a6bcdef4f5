package flowlayout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agiangrant/flowlayout/layout"
)

type box struct {
	W, H   int
	Margin layout.Insets
	Hidden bool
}

var measureBox = MeasureFunc(func(child Child, _ Constraints) Measurement {
	b := child.(box)
	return Measurement{Width: b.W, Height: b.H, Margin: b.Margin, Hidden: b.Hidden}
})

func boxes(n, w, h int) []box {
	out := make([]box, n)
	for i := range out {
		out[i] = box{W: w, H: h}
	}
	return out
}

func configWithRows(maxRows int) Config {
	cfg := DefaultConfig()
	cfg.MaxRowCount = maxRows
	return cfg
}

// viewport is a 300x100 container: 50x40 boxes pack six to a row.
var viewport = MeasureSpec{Width: 300, Height: 100, HeightMode: HeightExact}

func newFlow(cfg Config, items []box) (*FlowLayout, *SliceAdapter[box]) {
	f := New(measureBox, cfg)
	a := NewSliceAdapter(items)
	f.SetAdapter(a)
	return f, a
}

func TestRowBoundScenario(t *testing.T) {
	f, _ := newFlow(configWithRows(3), boxes(30, 50, 40))

	var finished []LayoutFinished
	f.OnLayoutFinished(func(ev LayoutFinished) { finished = append(finished, ev) })

	res := f.Layout(viewport)
	assert.Equal(t, 3, res.RowCount())
	assert.Equal(t, 18, res.VisibleChildCount)
	assert.True(t, res.Truncated)
	assert.False(t, res.AllChildrenShown)
	assert.Equal(t, 120, res.ContentHeight)
	assert.Equal(t, 20, res.MaxScrollOffset)

	f.ScrollToOffset(15, false)
	require.Equal(t, 15, f.ScrollOffset())

	f.SetMaxRowCount(layout.Unbounded)
	assert.Equal(t, 0, f.ScrollOffset())
	assert.True(t, f.NeedsLayout())

	res = f.Layout(viewport)
	assert.Equal(t, 5, res.RowCount())
	assert.Equal(t, 30, res.VisibleChildCount)
	assert.False(t, res.Truncated)
	assert.True(t, res.AllChildrenShown)
	assert.Equal(t, 100, res.MaxScrollOffset)

	assert.Equal(t, []LayoutFinished{
		{TotalRows: 3, VisibleChildren: 18, AllShown: false},
		{TotalRows: 5, VisibleChildren: 30, AllShown: true},
	}, finished)
}

func TestSetMaxRowCountEquivalence(t *testing.T) {
	f, _ := newFlow(DefaultConfig(), boxes(30, 50, 40))
	requests := 0
	f.OnRequestLayout(func() { requests++ })
	f.Layout(viewport)

	f.ScrollToOffset(50, false)

	tests := []struct {
		name      string
		rows      int
		relayout  bool
		wantStore int
	}{
		{name: "same unbounded", rows: layout.Unbounded, wantStore: layout.Unbounded},
		{name: "other negative", rows: -7, wantStore: layout.Unbounded},
		{name: "exact row count", rows: 5, wantStore: 5},
		{name: "larger bound", rows: 12, wantStore: 12},
		{name: "same bound", rows: 12, wantStore: 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f.SetMaxRowCount(tt.rows)
			assert.Equal(t, tt.wantStore, f.MaxRowCount())
			assert.Zero(t, requests)
			assert.Equal(t, 50, f.ScrollOffset())
			assert.False(t, f.NeedsLayout())
		})
	}

	f.SetMaxRowCount(4)
	assert.Equal(t, 1, requests)
	assert.Equal(t, 0, f.ScrollOffset())

	// Nothing to compare against until the pending pass runs
	f.SetMaxRowCount(20)
	assert.Equal(t, 2, requests)

	res := f.Layout(viewport)
	assert.True(t, res.AllChildrenShown)
}

func TestEquivalentBoundsProduceSameResult(t *testing.T) {
	items := boxes(17, 70, 30)
	unbounded, _ := newFlow(DefaultConfig(), items)
	bounded, _ := newFlow(configWithRows(layout.RowsNeeded(specsFor(items), 300)), items)

	a := unbounded.Layout(viewport)
	b := bounded.Layout(viewport)
	assert.Equal(t, a, b)
}

func specsFor(items []box) []layout.ChildSpec {
	specs := make([]layout.ChildSpec, len(items))
	for i, b := range items {
		specs[i] = layout.ChildSpec{Index: i, Width: b.W, Height: b.H, Margin: b.Margin}
	}
	return specs
}

func TestZeroRowBound(t *testing.T) {
	created := 0
	f := New(MeasureFunc(func(child Child, c Constraints) Measurement {
		return measureBox(child, c)
	}), configWithRows(0))
	a := &countingAdapter{items: boxes(4, 10, 10), created: &created}
	f.SetAdapter(a)

	var got LayoutFinished
	f.OnLayoutFinished(func(ev LayoutFinished) { got = ev })

	res := f.Layout(viewport)
	assert.Zero(t, res.RowCount())
	assert.Zero(t, res.VisibleChildCount)
	assert.True(t, res.Truncated)
	assert.False(t, res.AllChildrenShown)
	assert.Zero(t, created)
	assert.Equal(t, LayoutFinished{}, got)
}

func TestEmptyAndUnbound(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Padding = PaddingConfig{Top: 4, Bottom: 6}

	t.Run("unbound", func(t *testing.T) {
		f := New(measureBox, cfg)
		fired := false
		f.OnLayoutFinished(func(LayoutFinished) { fired = true })

		res := f.Layout(MeasureSpec{Width: 300})
		assert.False(t, fired)
		assert.Equal(t, 10, res.Height)
		assert.Zero(t, res.MaxScrollOffset)
		assert.Empty(t, res.Rows)
	})

	t.Run("empty adapter", func(t *testing.T) {
		f, _ := newFlow(cfg, nil)
		var got *LayoutFinished
		f.OnLayoutFinished(func(ev LayoutFinished) { got = &ev })

		res := f.Layout(MeasureSpec{Width: 300})
		require.NotNil(t, got)
		assert.Equal(t, LayoutFinished{AllShown: true}, *got)
		assert.Equal(t, 10, res.ContentHeight)
		assert.True(t, res.AllChildrenShown)
	})
}

func TestPaddingAndGravity(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Gravity = "center"
	cfg.Padding = PaddingConfig{Left: 10, Top: 5, Right: 10, Bottom: 5}
	f, _ := newFlow(cfg, boxes(4, 50, 20))

	res := f.Layout(MeasureSpec{Width: 320})
	require.Equal(t, 1, res.RowCount())
	// content width 300, row uses 200
	var xs []int
	for _, p := range f.Placements() {
		xs = append(xs, p.Rect.X)
		assert.Equal(t, 5, p.Rect.Y)
	}
	assert.Equal(t, []int{60, 110, 160, 210}, xs)
	assert.Equal(t, 30, res.Height)
	assert.Equal(t, 5, res.Rows[0].Top)

	f.SetHorizontalGravity(layout.GravityRight)
	f.Layout(MeasureSpec{Width: 320})
	assert.Equal(t, 110, f.Placements()[0].Rect.X)
}

func TestSetHorizontalGravity(t *testing.T) {
	f, _ := newFlow(DefaultConfig(), boxes(30, 50, 40))
	requests := 0
	f.OnRequestLayout(func() { requests++ })
	f.Layout(viewport)
	f.ScrollToOffset(30, false)

	f.SetHorizontalGravity(layout.Gravity(42))
	assert.Equal(t, layout.GravityLeft, f.Gravity())
	assert.Zero(t, requests)
	assert.Equal(t, 30, f.ScrollOffset())

	f.SetHorizontalGravity(layout.GravityLeftRight)
	assert.Equal(t, 1, requests)
	assert.Equal(t, 0, f.ScrollOffset())

	f.SetHorizontalGravity(layout.GravityLeftRight)
	assert.Equal(t, 1, requests)
}

func TestHiddenChildren(t *testing.T) {
	items := boxes(5, 50, 40)
	items[2].Hidden = true
	f, _ := newFlow(DefaultConfig(), items)

	res := f.Layout(viewport)
	assert.Equal(t, 4, res.VisibleChildCount)
	assert.Equal(t, 4, res.TotalChildCount)
	assert.True(t, res.AllChildrenShown)

	var indices []int
	for _, p := range f.Placements() {
		indices = append(indices, p.Child.Index)
	}
	assert.Equal(t, []int{0, 1, 3, 4}, indices)
	assert.Equal(t, 100, f.Placements()[2].Rect.X)
	assert.False(t, f.Activate(2))
	assert.True(t, f.Activate(3))
}

func TestHeightModes(t *testing.T) {
	items := boxes(30, 50, 40)
	tests := []struct {
		name       string
		spec       MeasureSpec
		wantHeight int
		wantMax    int
	}{
		{name: "wrap", spec: MeasureSpec{Width: 300}, wantHeight: 200, wantMax: 0},
		{name: "exact", spec: MeasureSpec{Width: 300, Height: 120, HeightMode: HeightExact}, wantHeight: 120, wantMax: 80},
		{name: "at most, capped", spec: MeasureSpec{Width: 300, Height: 150, HeightMode: HeightAtMost}, wantHeight: 150, wantMax: 50},
		{name: "at most, fits", spec: MeasureSpec{Width: 300, Height: 500, HeightMode: HeightAtMost}, wantHeight: 200, wantMax: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, _ := newFlow(DefaultConfig(), items)
			res := f.Layout(tt.spec)
			assert.Equal(t, tt.wantHeight, res.Height)
			assert.Equal(t, tt.wantMax, res.MaxScrollOffset)
			assert.Equal(t, tt.wantMax, f.MaxScrollOffset())
		})
	}
}

func TestConstraintsPassedToMeasurer(t *testing.T) {
	var seen []Constraints
	f := New(MeasureFunc(func(child Child, c Constraints) Measurement {
		seen = append(seen, c)
		return measureBox(child, c)
	}), DefaultConfig())
	f.SetAdapter(NewSliceAdapter(boxes(2, 10, 10)))
	f.SetPadding(layout.Insets{Left: 8, Right: 12})

	f.Layout(MeasureSpec{Width: 200, Height: 90, HeightMode: HeightAtMost})
	f.Layout(MeasureSpec{Width: 200})

	assert.Equal(t, []Constraints{
		{AvailableWidth: 180, AvailableHeight: 90},
		{AvailableWidth: 180, AvailableHeight: 90},
		{AvailableWidth: 180, AvailableHeight: layout.Unbounded},
		{AvailableWidth: 180, AvailableHeight: layout.Unbounded},
	}, seen)
}

func TestDataChangeClampsScroll(t *testing.T) {
	f, a := newFlow(DefaultConfig(), boxes(30, 50, 40))
	requests := 0
	f.OnRequestLayout(func() { requests++ })
	f.Layout(viewport)
	f.ScrollToBottom(false)
	require.Equal(t, 100, f.ScrollOffset())

	a.SetItems(boxes(20, 50, 40))
	assert.Equal(t, 1, requests)
	assert.Equal(t, 100, f.ScrollOffset())

	res := f.Layout(viewport)
	assert.Equal(t, 60, res.MaxScrollOffset)
	assert.Equal(t, 60, f.ScrollOffset())

	a.SetItems(boxes(3, 50, 40))
	f.Layout(viewport)
	assert.Equal(t, 0, f.ScrollOffset())
}

func TestSetAdapterSwapsObserver(t *testing.T) {
	f, first := newFlow(DefaultConfig(), boxes(3, 10, 10))
	requests := 0
	f.OnRequestLayout(func() { requests++ })

	second := NewSliceAdapter(boxes(1, 10, 10))
	f.SetAdapter(second)
	require.Equal(t, 1, requests)

	first.Append(box{W: 1, H: 1})
	assert.Equal(t, 1, requests)

	second.Append(box{W: 1, H: 1})
	assert.Equal(t, 2, requests)

	item, ok := f.Item(1)
	require.True(t, ok)
	assert.Equal(t, box{W: 1, H: 1}, item)
	_, ok = f.Item(5)
	assert.False(t, ok)
}

func TestUnbindDuringNotification(t *testing.T) {
	a := NewSliceAdapter(boxes(3, 10, 10))
	flows := make([]*FlowLayout, 3)
	requests := make([]int, 3)
	for i := range flows {
		flows[i] = New(measureBox, DefaultConfig())
		flows[i].SetAdapter(a)
		flows[i].OnRequestLayout(func() { requests[i]++ })
	}
	// The first container drops the shared adapter from inside its callback
	flows[0].OnRequestLayout(func() {
		requests[0]++
		if flows[0].Adapter() != nil {
			flows[0].SetAdapter(nil)
		}
	})

	a.Append(box{W: 1, H: 1})
	assert.Nil(t, flows[0].Adapter())
	assert.Equal(t, []int{2, 1, 1}, requests)

	a.Append(box{W: 1, H: 1})
	assert.Equal(t, []int{2, 2, 2}, requests)
}

func TestBaseAdapterUnregister(t *testing.T) {
	var b BaseAdapter
	var calls []string
	var unregisterB func()
	b.RegisterObserver(func() {
		calls = append(calls, "a")
		unregisterB()
	})
	unregisterB = b.RegisterObserver(func() { calls = append(calls, "b") })
	b.RegisterObserver(func() { calls = append(calls, "c") })

	b.NotifyChanged()
	assert.Equal(t, []string{"a", "b", "c"}, calls)

	calls = nil
	b.NotifyChanged()
	assert.Equal(t, []string{"a", "c"}, calls)

	unregisterB()
	assert.Len(t, b.observers, 2)
}

func TestZeroBoundAfterHiddenChildren(t *testing.T) {
	items := boxes(3, 10, 10)
	for i := range items {
		items[i].Hidden = true
	}
	f, _ := newFlow(configWithRows(1), items)
	requests := 0
	f.OnRequestLayout(func() { requests++ })

	res := f.Layout(viewport)
	require.True(t, res.AllChildrenShown)
	require.Zero(t, res.TotalChildCount)

	// Hidden children are only discovered by measuring, which a zero bound skips
	f.SetMaxRowCount(0)
	assert.Equal(t, 1, requests)
	assert.True(t, f.NeedsLayout())

	res = f.Layout(viewport)
	assert.True(t, res.Truncated)
	assert.False(t, res.AllChildrenShown)
	assert.Equal(t, 3, res.TotalChildCount)
}

func TestZeroBoundOnEmptyAdapter(t *testing.T) {
	f, _ := newFlow(configWithRows(1), nil)
	requests := 0
	f.OnRequestLayout(func() { requests++ })
	before := f.Layout(viewport)

	f.SetMaxRowCount(0)
	assert.Zero(t, requests)
	assert.Equal(t, 0, f.MaxRowCount())
	assert.Equal(t, before, f.Layout(viewport))
}

func TestRowBoundWhileUnbound(t *testing.T) {
	f := New(measureBox, configWithRows(3))
	requests := 0
	f.OnRequestLayout(func() { requests++ })

	res := f.Layout(viewport)
	require.True(t, res.AllChildrenShown)
	require.False(t, f.NeedsLayout())

	f.SetMaxRowCount(5)
	assert.Equal(t, 1, requests)
	assert.True(t, f.NeedsLayout())
}

func TestChildrenReleasedEachPass(t *testing.T) {
	created := 0
	a := &countingAdapter{items: boxes(3, 10, 10), created: &created}
	f := New(measureBox, DefaultConfig())
	f.SetAdapter(a)

	f.Layout(viewport)
	assert.Equal(t, 3, created)
	assert.Empty(t, a.released)

	f.Layout(viewport)
	assert.Equal(t, 6, created)
	assert.Len(t, a.released, 3)

	f.SetAdapter(nil)
	assert.Len(t, a.released, 6)
}

type countingAdapter struct {
	items    []box
	created  *int
	released []Child
}

func (c *countingAdapter) Count() int { return len(c.items) }

func (c *countingAdapter) CreateChild(i int) Child {
	*c.created++
	return c.items[i]
}

func (c *countingAdapter) ReleaseChild(child Child) {
	c.released = append(c.released, child)
}
