package layout

import (
	"fmt"
	"strings"
)

// Gravity is the horizontal alignment policy applied to each packed row.
type Gravity uint8

const (
	// GravityLeft keeps rows left-packed (default).
	GravityLeft Gravity = iota
	// GravityRight shifts each row flush against the right edge.
	GravityRight
	// GravityLeftRight spreads children across the row, first child at the left edge.
	GravityLeftRight
	// GravityCenter centers each row.
	GravityCenter
)

// Valid reports whether g is one of the known gravities.
func (g Gravity) Valid() bool { return g <= GravityCenter }

func (g Gravity) String() string {
	switch g {
	case GravityLeft:
		return "left"
	case GravityRight:
		return "right"
	case GravityLeftRight:
		return "left-right"
	case GravityCenter:
		return "center"
	default:
		return fmt.Sprintf("Gravity(%d)", uint8(g))
	}
}

// ParseGravity converts a gravity name. The empty string is GravityLeft.
// Utility-class spellings (justify-start, justify-end, justify-between,
// justify-center) are accepted too.
func ParseGravity(s string) (Gravity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "left", "start", "justify-start":
		return GravityLeft, nil
	case "right", "end", "justify-end":
		return GravityRight, nil
	case "left-right", "left_right", "justify", "justify-between":
		return GravityLeftRight, nil
	case "center", "centre", "justify-center":
		return GravityCenter, nil
	default:
		return GravityLeft, fmt.Errorf("unknown gravity %q", s)
	}
}

// Offsets returns the horizontal offset to add to each child of row.
func Offsets(row Row, availableWidth int, g Gravity) []int {
	n := len(row.Children)
	offsets := make([]int, n)
	if n == 0 {
		return offsets
	}

	free := availableWidth - row.UsedWidth
	switch g {
	case GravityRight:
		for i := range offsets {
			offsets[i] = free
		}
	case GravityCenter:
		for i := range offsets {
			offsets[i] = free / 2
		}
	case GravityLeftRight:
		if n > 1 {
			// Per-gap step is truncated once, so the last child may stop
			// short of the right edge by up to n-2 pixels.
			step := free / (n - 1)
			for i := range offsets {
				offsets[i] = i * step
			}
		}
	}
	return offsets
}

// Align applies gravity offsets to every row in place. Unknown gravities
// behave like GravityLeft.
func Align(rows []Row, availableWidth int, g Gravity) {
	if !g.Valid() || g == GravityLeft {
		return
	}
	for r := range rows {
		offsets := Offsets(rows[r], availableWidth, g)
		for i := range rows[r].Children {
			rows[r].Children[i].Rect.X += offsets[i]
		}
	}
}
