package layout

// Pack assigns children to rows left to right, wrapping when the next child
// no longer fits in availableWidth. Packing is greedy: a child is never moved
// back to an earlier row. A child wider than availableWidth still gets a row
// of its own.
//
// maxRows bounds the number of rows; Unbounded (or any negative value)
// disables the bound. When the bound stops packing, Truncated is set and the
// remaining children are not placed.
//
// Rectangles are relative to the content origin: x starts at 0 on every row
// and y is the row's Top plus the child's top margin.
func Pack(children []ChildSpec, availableWidth, maxRows int) PackResult {
	maxRows = NormalizeMaxRows(maxRows)

	var res PackResult
	if len(children) == 0 {
		return res
	}
	if maxRows == 0 {
		res.Truncated = true
		return res
	}

	var (
		cur      Row
		rowWidth int
		top      int
	)
	cur.Number = 1

	for _, child := range children {
		fullWidth := child.FullWidth()
		fullHeight := child.FullHeight()

		// Always put at least one child per row
		if len(cur.Children) > 0 && rowWidth+fullWidth > availableWidth {
			cur.UsedWidth = rowWidth
			res.Rows = append(res.Rows, cur)
			top += cur.Height

			next := cur.Number + 1
			if maxRows != Unbounded && next > maxRows {
				res.Truncated = true
				res.ContentHeight = top
				return res
			}
			cur = Row{Number: next, Top: top}
			rowWidth = 0
		}

		cur.Children = append(cur.Children, Placement{
			Child: child,
			Row:   cur.Number,
			Rect: Rect{
				X:      rowWidth + child.Margin.Left,
				Y:      top + child.Margin.Top,
				Width:  child.Width,
				Height: child.Height,
			},
		})
		rowWidth += fullWidth
		if fullHeight > cur.Height {
			cur.Height = fullHeight
		}
		res.Visible++
	}

	cur.UsedWidth = rowWidth
	res.Rows = append(res.Rows, cur)
	res.ContentHeight = top + cur.Height
	return res
}

// RowsNeeded reports how many rows Pack would produce for children without
// any row bound.
func RowsNeeded(children []ChildSpec, availableWidth int) int {
	return len(Pack(children, availableWidth, Unbounded).Rows)
}
