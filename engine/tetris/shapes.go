package tetris

import "math/rand/v2"

// Shape is one rotation state of a piece: a rectangular block matrix indexed as Cells[row][col].
// Catalog shapes are templates and must not be mutated; use Clone for a piece in play.
type Shape struct {
	Kind  int
	Cells [][]bool
}

// Width returns the number of columns.
func (s Shape) Width() int {
	if len(s.Cells) == 0 {
		return 0
	}
	return len(s.Cells[0])
}

// Height returns the number of rows.
func (s Shape) Height() int {
	return len(s.Cells)
}

// Clone returns a deep copy.
func (s Shape) Clone() Shape {
	cells := make([][]bool, len(s.Cells))
	for i, row := range s.Cells {
		cells[i] = append([]bool(nil), row...)
	}
	return Shape{Kind: s.Kind, Cells: cells}
}

// Rotate returns the shape turned 90° clockwise: the matrix is transposed and each
// resulting row reversed. No offset correction is applied.
func (s Shape) Rotate() Shape {
	h, w := s.Height(), s.Width()
	cells := make([][]bool, w)
	for col := 0; col < w; col++ {
		cells[col] = make([]bool, h)
		for row := 0; row < h; row++ {
			cells[col][h-1-row] = s.Cells[row][col]
		}
	}
	return Shape{Kind: s.Kind, Cells: cells}
}

// Equal reports whether both shapes have the same kind and block matrix.
func (s Shape) Equal(o Shape) bool {
	if s.Kind != o.Kind || s.Height() != o.Height() || s.Width() != o.Width() {
		return false
	}
	for row := range s.Cells {
		for col := range s.Cells[row] {
			if s.Cells[row][col] != o.Cells[row][col] {
				return false
			}
		}
	}
	return true
}

// Piece kinds, in catalog order.
const (
	KindI = iota
	KindT
	KindO
	KindS
	KindZ
	KindL
	KindJ
)

// KindNames maps a kind to its letter.
var KindNames = [...]string{"I", "T", "O", "S", "Z", "L", "J"}

var catalog = [...]Shape{
	{KindI, [][]bool{{true, true, true, true}}},
	{KindT, [][]bool{{true, true, true}, {false, true, false}}},
	{KindO, [][]bool{{true, true}, {true, true}}},
	{KindS, [][]bool{{true, true, false}, {false, true, true}}},
	{KindZ, [][]bool{{false, true, true}, {true, true, false}}},
	{KindL, [][]bool{{true, true, true}, {true, false, false}}},
	{KindJ, [][]bool{{true, true, true}, {false, false, true}}},
}

// AllShapes returns copies of the seven catalog templates in order.
func AllShapes() []Shape {
	out := make([]Shape, len(catalog))
	for i, s := range catalog {
		out[i] = s.Clone()
	}
	return out
}

// RandomShape returns a copy of a uniformly chosen catalog shape.
// Draws are independent; there is no bag or history.
func RandomShape(r *rand.Rand) Shape {
	return catalog[r.IntN(len(catalog))].Clone()
}
