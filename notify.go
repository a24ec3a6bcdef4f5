package flowlayout

// LayoutFinished is delivered after every completed layout pass.
type LayoutFinished struct {
	TotalRows       int
	VisibleChildren int
	AllShown        bool
}

// Activation reports a placed child that was tapped or activated.
type Activation struct {
	Row   int // 1-based
	Index int
	Child Child
}

// OnLayoutFinished sets the listener fired at the end of each pass.
// Passing nil removes it.
func (f *FlowLayout) OnLayoutFinished(fn func(LayoutFinished)) {
	f.onLayoutFinished = fn
}

// RemoveLayoutFinishedListener removes the layout-finished listener.
func (f *FlowLayout) RemoveLayoutFinishedListener() {
	f.onLayoutFinished = nil
}

// OnChildActivated sets the single handler that receives every activation.
func (f *FlowLayout) OnChildActivated(fn func(Activation)) {
	f.onActivated = fn
}

// OnRequestLayout sets a callback fired when the container needs a new
// layout pass (data change, row bound, gravity, padding).
func (f *FlowLayout) OnRequestLayout(fn func()) {
	f.onRequestLayout = fn
}

// OnScroll sets a callback fired whenever the scroll offset changes.
func (f *FlowLayout) OnScroll(fn func(offset int)) {
	f.onScroll = fn
}

func (f *FlowLayout) fireLayoutFinished(ev LayoutFinished) {
	if f.onLayoutFinished != nil {
		f.onLayoutFinished(ev)
	}
}
