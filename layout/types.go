package layout

// Unbounded is the max row count meaning "no row limit".
// Any negative row count is treated as Unbounded.
const Unbounded = -1

// NormalizeMaxRows maps every negative value onto Unbounded.
func NormalizeMaxRows(n int) int {
	if n < 0 {
		return Unbounded
	}
	return n
}

// Insets holds per-edge pixel amounts (margins or padding).
type Insets struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

// Horizontal returns Left + Right.
func (i Insets) Horizontal() int { return i.Left + i.Right }

// Vertical returns Top + Bottom.
func (i Insets) Vertical() int { return i.Top + i.Bottom }

// Rect is an integer pixel rectangle.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Right returns the exclusive right edge.
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() int { return r.Y + r.Height }

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Offset returns the rectangle translated by dx, dy.
func (r Rect) Offset(dx, dy int) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// ChildSpec is one measured child for a single layout pass.
type ChildSpec struct {
	Index  int
	Width  int
	Height int
	Margin Insets
}

// FullWidth is the horizontal space the child consumes in a row.
func (c ChildSpec) FullWidth() int { return c.Width + c.Margin.Horizontal() }

// FullHeight is the vertical space the child consumes in a row.
func (c ChildSpec) FullHeight() int { return c.Height + c.Margin.Vertical() }

// Placement is a child assigned to a row with its rectangle.
type Placement struct {
	Child ChildSpec
	Row   int
	Rect  Rect
}

// Row is a horizontal band of children sharing a common top.
type Row struct {
	Number    int // 1-based
	Top       int
	UsedWidth int
	Height    int
	Children  []Placement
}

// PackResult is the output of Pack.
type PackResult struct {
	Rows          []Row
	ContentHeight int // sum of row heights, padding excluded
	Visible       int
	Truncated     bool
}
