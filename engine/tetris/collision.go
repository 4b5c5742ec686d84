package tetris

// Collides reports whether shape placed with its top-left cell at (x, y) overlaps an
// occupied cell or leaves the grid on any side.
func Collides(g *Grid, x, y int, shape Shape) bool {
	for row, line := range shape.Cells {
		for col, set := range line {
			if !set {
				continue
			}
			if !g.InBounds(x+col, y+row) || g.IsOccupied(x+col, y+row) {
				return true
			}
		}
	}
	return false
}
