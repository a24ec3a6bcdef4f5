package flowlayout

import (
	"slices"

	"github.com/agiangrant/flowlayout/layout"
)

// Child is an opaque handle to a child element created by the host toolkit.
type Child = any

// Adapter is the data source a FlowLayout renders.
type Adapter interface {
	// Count returns the number of children. Negative counts are treated as 0.
	Count() int
	// CreateChild builds the child element for index. It is called once per
	// index on every layout pass.
	CreateChild(index int) Child
}

// ItemAdapter is an Adapter that also exposes its underlying items.
type ItemAdapter interface {
	Adapter
	Item(index int) any
}

// Observable is implemented by adapters that can announce data changes.
// RegisterObserver returns a function that removes the observer again.
type Observable interface {
	RegisterObserver(fn func()) (unregister func())
}

// Releaser is optionally implemented by an Adapter or Measurer that wants
// children handed back before the next pass recreates them.
type Releaser interface {
	ReleaseChild(child Child)
}

// Constraints bound the size a child may measure to.
type Constraints struct {
	AvailableWidth  int
	AvailableHeight int // layout.Unbounded when the container wraps its content
}

// Measurement is what the host reports for one child.
type Measurement struct {
	Width  int
	Height int
	Margin layout.Insets
	// Hidden children are created but take no space and are never counted
	// as visible.
	Hidden bool
}

// Measurer measures children created by the adapter. It must be
// deterministic for a fixed child and constraints within one pass.
type Measurer interface {
	MeasureChild(child Child, c Constraints) Measurement
}

// MeasureFunc adapts a plain function to Measurer.
type MeasureFunc func(child Child, c Constraints) Measurement

// MeasureChild implements Measurer.
func (f MeasureFunc) MeasureChild(child Child, c Constraints) Measurement {
	return f(child, c)
}

// BaseAdapter implements Observable. Embed it in an adapter and call
// NotifyChanged after mutating the data.
type BaseAdapter struct {
	observers []observer
	nextID    int
}

type observer struct {
	id int
	fn func()
}

// RegisterObserver implements Observable.
func (b *BaseAdapter) RegisterObserver(fn func()) func() {
	if fn == nil {
		return func() {}
	}
	b.nextID++
	id := b.nextID
	b.observers = append(b.observers, observer{id: id, fn: fn})
	return func() {
		i := slices.IndexFunc(b.observers, func(o observer) bool { return o.id == id })
		if i < 0 {
			return
		}
		// Copy on write: a NotifyChanged in progress keeps ranging over the
		// old slice, so unbinding from a callback never skips a neighbor.
		b.observers = slices.Delete(slices.Clone(b.observers), i, i+1)
	}
}

// NotifyChanged tells every registered observer that the data changed.
// Observers registered or removed by a callback take effect from the next
// call.
func (b *BaseAdapter) NotifyChanged() {
	for _, o := range b.observers {
		o.fn()
	}
}

// SliceAdapter serves a fixed slice of items. CreateChild returns the item
// itself, which suits hosts whose measurer works on the data directly.
type SliceAdapter[T any] struct {
	BaseAdapter
	items []T
}

// NewSliceAdapter creates an adapter over items.
func NewSliceAdapter[T any](items []T) *SliceAdapter[T] {
	return &SliceAdapter[T]{items: items}
}

// Count implements Adapter.
func (s *SliceAdapter[T]) Count() int { return len(s.items) }

// CreateChild implements Adapter.
func (s *SliceAdapter[T]) CreateChild(index int) Child { return s.items[index] }

// Item implements ItemAdapter.
func (s *SliceAdapter[T]) Item(index int) any { return s.items[index] }

// Items returns the current items.
func (s *SliceAdapter[T]) Items() []T { return s.items }

// SetItems replaces the items and notifies observers.
func (s *SliceAdapter[T]) SetItems(items []T) {
	s.items = items
	s.NotifyChanged()
}

// Append adds items and notifies observers.
func (s *SliceAdapter[T]) Append(items ...T) {
	s.items = append(s.items, items...)
	s.NotifyChanged()
}
