package tetris

import "termtris/types"

// Grid is the fixed-size matrix of locked blocks, indexed as cells[y][x].
type Grid struct {
	rows  int
	cols  int
	cells [][]types.Cell
}

// NewGrid creates a grid with every cell empty.
func NewGrid(rows, cols int) *Grid {
	g := &Grid{rows: rows, cols: cols, cells: make([][]types.Cell, rows)}
	for y := range g.cells {
		g.cells[y] = make([]types.Cell, cols)
	}
	return g
}

// Rows returns the number of rows.
func (g *Grid) Rows() int {
	return g.rows
}

// Cols returns the number of columns.
func (g *Grid) Cols() int {
	return g.cols
}

// InBounds reports whether (x, y) lies inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.cols && y >= 0 && y < g.rows
}

// IsOccupied reports whether the in-bounds cell (x, y) is filled.
// Out-of-bounds positions report false; treating them as blocked is up to the caller.
func (g *Grid) IsOccupied(x, y int) bool {
	if !g.InBounds(x, y) {
		return false
	}
	return g.cells[y][x].Filled()
}

// At returns the cell tag at (x, y), or Empty outside the grid.
func (g *Grid) At(x, y int) types.Cell {
	if !g.InBounds(x, y) {
		return types.Empty
	}
	return g.cells[y][x]
}

// Place marks every block of shape, offset by (x, y), as filled with the shape's tag.
// Callers check for collisions first; cells that would fall outside the grid are skipped.
func (g *Grid) Place(shape Shape, x, y int) {
	tag := types.Cell(shape.Kind + 1)
	for row, line := range shape.Cells {
		for col, set := range line {
			if set && g.InBounds(x+col, y+row) {
				g.cells[y+row][x+col] = tag
			}
		}
	}
}

// FindFullRows returns the indices of completely filled rows, top to bottom.
func (g *Grid) FindFullRows() []int {
	var full []int
	for y, line := range g.cells {
		complete := true
		for _, c := range line {
			if !c.Filled() {
				complete = false
				break
			}
		}
		if complete {
			full = append(full, y)
		}
	}
	return full
}

// ClearRows removes the given rows in one batch and inserts as many empty rows at the
// top, keeping the relative order of the remaining rows. Unknown or duplicate indices
// are ignored. Returns the number of rows removed.
func (g *Grid) ClearRows(rows []int) int {
	drop := make(map[int]bool, len(rows))
	for _, y := range rows {
		if y >= 0 && y < g.rows {
			drop[y] = true
		}
	}
	if len(drop) == 0 {
		return 0
	}

	kept := make([][]types.Cell, 0, g.rows)
	for i := 0; i < len(drop); i++ {
		kept = append(kept, make([]types.Cell, g.cols))
	}
	for y, line := range g.cells {
		if !drop[y] {
			kept = append(kept, line)
		}
	}
	g.cells = kept
	return len(drop)
}

// Reset empties every cell.
func (g *Grid) Reset() {
	for _, line := range g.cells {
		for x := range line {
			line[x] = types.Empty
		}
	}
}

// Cells returns a deep copy of the cell matrix.
func (g *Grid) Cells() [][]types.Cell {
	out := make([][]types.Cell, g.rows)
	for y, line := range g.cells {
		out[y] = append([]types.Cell(nil), line...)
	}
	return out
}
