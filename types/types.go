// Package types contains shared data structures for termtris.
package types

import "encoding/json"

// Status is the lifecycle state of a game session.
type Status int

const (
	NotStarted Status = iota
	Running
	GameOver
)

func (s Status) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case Running:
		return "running"
	case GameOver:
		return "game_over"
	}
	return "unknown"
}

// MarshalJSON encodes the status by name.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Cell is a grid cell tag. 0 is empty; k+1 marks a block left by catalog shape k.
type Cell uint8

// Empty is the tag of an unoccupied cell.
const Empty Cell = 0

// Filled returns true if the cell holds a block.
func (c Cell) Filled() bool {
	return c != Empty
}

// Kind returns the catalog index of the shape that left this block, or -1 if empty.
func (c Cell) Kind() int {
	if c == Empty {
		return -1
	}
	return int(c) - 1
}

// PieceState is a shape matrix placed at an offset. Cells is indexed as Cells[row][col].
type PieceState struct {
	Kind  int      `json:"kind"`
	Cells [][]bool `json:"cells"`
	X     int      `json:"x"`
	Y     int      `json:"y"`
}

// Width returns the shape width.
func (p *PieceState) Width() int {
	if len(p.Cells) == 0 {
		return 0
	}
	return len(p.Cells[0])
}

// Height returns the shape height.
func (p *PieceState) Height() int {
	return len(p.Cells)
}

// Covers reports whether the piece has a block at absolute board position (x, y).
func (p *PieceState) Covers(x, y int) bool {
	row, col := y-p.Y, x-p.X
	if row < 0 || row >= p.Height() || col < 0 || col >= p.Width() {
		return false
	}
	return p.Cells[row][col]
}

// Snapshot is the complete state a renderer reads for one frame.
// Board is indexed as Board[y][x].
type Snapshot struct {
	Board      [][]Cell    `json:"board"`
	Active     *PieceState `json:"active,omitempty"`
	Next       *PieceState `json:"next,omitempty"`
	Score      int         `json:"score"`
	Level      int         `json:"level"`
	IntervalMs int         `json:"interval_ms"`
	Lines      int         `json:"lines"`
	Pieces     int         `json:"pieces"`
	Status     Status      `json:"status"`
}

// Finished returns true if the game is over.
func (s *Snapshot) Finished() bool {
	return s.Status == GameOver
}

// Height returns the board height.
func (s *Snapshot) Height() int {
	return len(s.Board)
}

// Width returns the board width.
func (s *Snapshot) Width() int {
	if s.Height() == 0 {
		return 0
	}
	return len(s.Board[0])
}

// CellAt returns what a renderer should draw at (x, y): the active piece wins over
// the locked board. The second result is true if the cell comes from the active piece.
func (s *Snapshot) CellAt(x, y int) (Cell, bool) {
	if s.Active != nil && s.Active.Covers(x, y) {
		return Cell(s.Active.Kind + 1), true
	}
	if y < 0 || y >= s.Height() || x < 0 || x >= s.Width() {
		return Empty, false
	}
	return s.Board[y][x], false
}

// NewSnapshot creates an empty snapshot of the given size.
func NewSnapshot(rows, cols int) *Snapshot {
	board := make([][]Cell, rows)
	for i := range board {
		board[i] = make([]Cell, cols)
	}
	return &Snapshot{
		Board:  board,
		Level:  1,
		Status: NotStarted,
	}
}
