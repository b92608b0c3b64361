package doc

import (
	"sort"

	"github.com/tsawler/wordbin/sprm"
)

// gridTolerance is the distance in twips under which two column boundaries
// are the same grid line.
const gridTolerance = 5

// StoreRowProperties binds the row's cells to the table properties of its
// row-end mark and collapses horizontally merged cells into their left
// neighbour, which takes over their right edge, right border and content.
func (d *Document) StoreRowProperties(row *Row, tap *sprm.Tap) {
	row.Tap = tap
	n := len(tap.Cells)
	for i, c := range row.Cells {
		if i >= n {
			break
		}
		c.Tc = tap.Cells[i]
		c.Header = tap.Header
		if i+1 < len(tap.Centers) {
			c.Left, c.Right = int32(tap.Centers[i]), int32(tap.Centers[i+1])
		}
		c.Brc = c.Tc.Brc
		outer := [4]int{sprm.SideInsideH, sprm.SideInsideV, sprm.SideInsideH, sprm.SideInsideV}
		if i == 0 {
			outer[sprm.SideLeft] = sprm.SideLeft
		}
		if i == n-1 {
			outer[sprm.SideRight] = sprm.SideRight
		}
		for side, tb := range outer {
			if c.Brc[side].None() {
				c.Brc[side] = tap.Borders[tb]
			}
		}
	}

	kept := row.Cells[:0]
	for _, c := range row.Cells {
		if c.Tc.Merged && !c.Tc.FirstMerged && len(kept) > 0 {
			left := kept[len(kept)-1]
			left.Right = c.Right
			left.Brc[sprm.SideRight] = c.Brc[sprm.SideRight]
			d.appendCellChain(left, c)
			continue
		}
		kept = append(kept, c)
	}
	row.Cells = kept
}

// appendCellChain moves the parts of src to the end of dst's chain.
func (d *Document) appendCellChain(dst, src *Cell) {
	if src.First == 0 {
		return
	}
	if dst.First == 0 {
		dst.First = src.First
		return
	}
	chain := d.parts.Chain(dst.First)
	last := chain[len(chain)-1]
	first := d.parts.Get(src.First)
	last.Next, first.Prev = first.ID, last.ID
}

// postProcessTable reconciles the column boundaries of all rows onto one
// grid and derives column and row spans.
func (d *Document) postProcessTable(t *Table) {
	holder := d.parts.Get(t.Holder)
	sec := d.SectionAt(holder.StartCP)
	t.TextWidth = sec.Sep.TextWidth()
	outerRowBorders(t)

	for _, r := range t.Rows {
		if r.Tap == nil || len(r.Tap.Centers) < len(r.Cells)+1 {
			d.layoutEvenly(r, t.TextWidth)
		}
	}

	var edges []int32
	for _, r := range t.Rows {
		for _, c := range r.Cells {
			edges = append(edges, c.Left, c.Right)
		}
	}
	t.Grid = clusterEdges(edges, gridTolerance)

	for _, r := range t.Rows {
		for _, c := range r.Cells {
			c.GridStart = nearestEdge(t.Grid, c.Left)
			end := nearestEdge(t.Grid, c.Right)
			c.ColSpan = max(1, end-c.GridStart)
			c.RowSpan = 1
		}
	}
	verticalMerges(t)
}

// outerRowBorders gives the first row the table's top border and the last
// row its bottom border where the cells set none of their own. Rows take the
// inside border when their properties are stored.
func outerRowBorders(t *Table) {
	if len(t.Rows) == 0 {
		return
	}
	edge := func(r *Row, side int) {
		if r.Tap == nil {
			return
		}
		for _, c := range r.Cells {
			if c.Tc.Brc[side].None() {
				c.Brc[side] = r.Tap.Borders[side]
			}
		}
	}
	edge(t.Rows[0], sprm.SideTop)
	edge(t.Rows[len(t.Rows)-1], sprm.SideBottom)
}

// layoutEvenly gives a row without usable boundaries equal cells across the
// text width, keeping whatever left edge it had.
func (d *Document) layoutEvenly(r *Row, width int) {
	n := len(r.Cells)
	if n == 0 {
		return
	}
	if width <= 0 {
		sep := sprm.DefaultSep()
		width = sep.TextWidth()
	}
	step := int32(width / n)
	for i, c := range r.Cells {
		c.Left = int32(i) * step
		c.Right = int32(i+1) * step
	}
}

// clusterEdges sorts edges and merges those within tol of the first edge of
// their cluster.
func clusterEdges(edges []int32, tol int32) []int32 {
	if len(edges) == 0 {
		return nil
	}
	sorted := append([]int32(nil), edges...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	grid := []int32{sorted[0]}
	for _, e := range sorted[1:] {
		if e-grid[len(grid)-1] > tol {
			grid = append(grid, e)
		}
	}
	return grid
}

// nearestEdge returns the index of the grid line closest to e.
func nearestEdge(grid []int32, e int32) int {
	i := sort.Search(len(grid), func(i int) bool { return grid[i] >= e })
	switch {
	case i == len(grid):
		return len(grid) - 1
	case i > 0 && e-grid[i-1] < grid[i]-e:
		return i - 1
	}
	return i
}

// verticalMerges sets row spans: a cell that starts a vertical merge spans
// every following row whose cell at the same grid column continues it. The
// top cell takes the bottom border of the last merged cell.
func verticalMerges(t *Table) {
	for ri, r := range t.Rows {
		for _, c := range r.Cells {
			if !c.Tc.VertMerge || !c.Tc.VertRestart || c.Continued {
				continue
			}
			last := c
			for _, below := range t.Rows[ri+1:] {
				next := findCellAtColumn(below, c.GridStart)
				if next == nil || !next.Tc.VertMerge || next.Tc.VertRestart {
					break
				}
				next.Continued = true
				c.RowSpan++
				last = next
			}
			c.Brc[sprm.SideBottom] = last.Brc[sprm.SideBottom]
		}
	}
}

// findCellAtColumn returns the cell of r starting at grid column col.
func findCellAtColumn(r *Row, col int) *Cell {
	for _, c := range r.Cells {
		if c.GridStart == col {
			return c
		}
		if c.GridStart > col {
			break
		}
	}
	return nil
}

// Columns returns the number of grid columns.
func (t *Table) Columns() int {
	if len(t.Grid) < 2 {
		return 1
	}
	return len(t.Grid) - 1
}

// Widths returns the width of each grid column in twips.
func (t *Table) Widths() []int32 {
	if len(t.Grid) < 2 {
		return nil
	}
	w := make([]int32, len(t.Grid)-1)
	for i := range w {
		w[i] = t.Grid[i+1] - t.Grid[i]
	}
	return w
}
