package tetris

import "termtris/types"

// Piece is the active piece: a shape in play and the grid position of its top-left cell.
// Every command is checked against the grid and silently rejected on collision.
type Piece struct {
	Shape Shape
	X     int
	Y     int
	grid  *Grid
}

// NewPiece places a copy of shape at (x, y) on grid. Placement is not validated.
func NewPiece(grid *Grid, shape Shape, x, y int) *Piece {
	return &Piece{Shape: shape.Clone(), X: x, Y: y, grid: grid}
}

// MoveHorizontal shifts the piece by dir columns if the target is free.
// Returns true if the piece moved.
func (p *Piece) MoveHorizontal(dir int) bool {
	if Collides(p.grid, p.X+dir, p.Y, p.Shape) {
		return false
	}
	p.X += dir
	return true
}

// Drop moves the piece down one row if the row below is free.
// It returns false when the piece can fall no further and must lock.
func (p *Piece) Drop() bool {
	if Collides(p.grid, p.X, p.Y+1, p.Shape) {
		return false
	}
	p.Y++
	return true
}

// Rotate turns the piece clockwise in place if the rotated shape fits at the same offset.
func (p *Piece) Rotate() bool {
	rotated := p.Shape.Rotate()
	if Collides(p.grid, p.X, p.Y, rotated) {
		return false
	}
	p.Shape = rotated
	return true
}

// Blocked reports whether the piece overlaps the grid at its current position.
func (p *Piece) Blocked() bool {
	return Collides(p.grid, p.X, p.Y, p.Shape)
}

// State returns a copy of the piece for rendering.
func (p *Piece) State() *types.PieceState {
	s := p.Shape.Clone()
	return &types.PieceState{Kind: s.Kind, Cells: s.Cells, X: p.X, Y: p.Y}
}
