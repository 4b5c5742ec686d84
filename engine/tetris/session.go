// Package tetris implements the falling-block game core: grid, piece catalog,
// collision checks, piece movement and the session state machine.
package tetris

import (
	"errors"
	"io"
	"log"
	"math/rand/v2"
	"time"

	"termtris/engine"
	"termtris/types"
)

var debugLog = log.New(io.Discard, "", log.Ltime|log.Lmicroseconds)

// SetDebugOutput sends session debug logging to w.
func SetDebugOutput(w io.Writer) {
	debugLog.SetOutput(w)
}

// ErrAlreadyStarted is returned by Start when the session is running or finished.
var ErrAlreadyStarted = errors.New("session already started")

var _ engine.GameEngine = (*Session)(nil)

// Session owns all mutable game state and implements engine.GameEngine.
// It is not safe for concurrent use.
type Session struct {
	config   engine.GameConfig
	rng      *rand.Rand
	grid     *Grid
	active   *Piece
	next     *Shape
	score    int
	level    int
	lines    int
	pieces   int
	interval time.Duration
	status   types.Status
	lastDrop time.Time

	lockCallback func(cleared int, snap *types.Snapshot)
	endCallback  func(finalScore int)
}

// NewSession creates a session in the not-started state.
func NewSession(cfg engine.GameConfig) *Session {
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	s := &Session{
		config: cfg,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		grid:   NewGrid(engine.Rows, engine.Cols),
	}
	s.Reset()
	return s
}

// Reset discards the current game and returns to the not-started state.
func (s *Session) Reset() {
	s.grid.Reset()
	s.active = nil
	s.next = nil
	s.score = 0
	s.level = 1
	s.lines = 0
	s.pieces = 0
	s.interval = engine.InitialInterval
	s.status = types.NotStarted
}

// Start initializes the grid, draws the first next shape and spawns the first piece.
func (s *Session) Start(now time.Time) error {
	if s.status != types.NotStarted {
		return ErrAlreadyStarted
	}
	s.grid.Reset()
	s.status = types.Running
	s.lastDrop = now
	next := RandomShape(s.rng)
	s.next = &next
	debugLog.Printf("Start: seed=%d", s.config.Seed)
	s.spawn()
	if s.status == types.GameOver {
		s.notifyEnd()
	}
	return nil
}

// Frame advances gravity once if more than the drop interval has passed since the last advance.
func (s *Session) Frame(now time.Time) bool {
	if s.status != types.Running {
		return false
	}
	if now.Sub(s.lastDrop) <= s.interval {
		return false
	}
	s.lastDrop = now
	return s.Tick()
}

// Tick moves the active piece down one row, or locks it when it cannot fall.
func (s *Session) Tick() bool {
	if s.status != types.Running {
		return false
	}
	if s.active.Drop() {
		return true
	}
	s.lock()
	return true
}

// MoveLeft shifts the active piece one column left if free.
func (s *Session) MoveLeft() bool {
	if s.status != types.Running {
		return false
	}
	return s.active.MoveHorizontal(-1)
}

// MoveRight shifts the active piece one column right if free.
func (s *Session) MoveRight() bool {
	if s.status != types.Running {
		return false
	}
	return s.active.MoveHorizontal(1)
}

// SoftDrop moves the active piece down one row if free. It never locks.
func (s *Session) SoftDrop() bool {
	if s.status != types.Running {
		return false
	}
	return s.active.Drop()
}

// Rotate turns the active piece clockwise if the result fits.
func (s *Session) Rotate() bool {
	if s.status != types.Running {
		return false
	}
	return s.active.Rotate()
}

// Status returns the lifecycle state.
func (s *Session) Status() types.Status {
	return s.status
}

// Score returns the current score.
func (s *Session) Score() int {
	return s.score
}

// Level returns the current level.
func (s *Session) Level() int {
	return s.level
}

// Interval returns the current drop interval.
func (s *Session) Interval() time.Duration {
	return s.interval
}

// OnLock registers a callback run after each lock.
func (s *Session) OnLock(fn func(cleared int, snap *types.Snapshot)) {
	s.lockCallback = fn
}

// OnGameOver registers a callback run when the game ends.
func (s *Session) OnGameOver(fn func(finalScore int)) {
	s.endCallback = fn
}

// Snapshot returns a deep copy of the session state.
func (s *Session) Snapshot() *types.Snapshot {
	snap := &types.Snapshot{
		Board:      s.grid.Cells(),
		Score:      s.score,
		Level:      s.level,
		IntervalMs: int(s.interval / time.Millisecond),
		Lines:      s.lines,
		Pieces:     s.pieces,
		Status:     s.status,
	}
	if s.active != nil {
		snap.Active = s.active.State()
	}
	if s.next != nil {
		n := s.next.Clone()
		snap.Next = &types.PieceState{Kind: n.Kind, Cells: n.Cells}
	}
	return snap
}

// spawn makes the next shape active at the top center and draws a new next shape.
// A spawn that overlaps the grid ends the game.
func (s *Session) spawn() {
	var shape Shape
	if s.next != nil {
		shape = *s.next
	} else {
		shape = RandomShape(s.rng)
	}
	next := RandomShape(s.rng)
	s.next = &next

	x := s.grid.Cols()/2 - shape.Width()/2
	s.active = NewPiece(s.grid, shape, x, 0)
	if s.active.Blocked() {
		s.status = types.GameOver
		debugLog.Printf("spawn: %s blocked at x=%d, game over score=%d", KindNames[shape.Kind], x, s.score)
	}
}

// lock merges the active piece into the grid, clears full rows, scores them and spawns.
func (s *Session) lock() {
	s.grid.Place(s.active.Shape, s.active.X, s.active.Y)
	s.pieces++

	cleared := s.grid.ClearRows(s.grid.FindFullRows())
	if cleared > 0 {
		previous := s.score
		s.score += cleared * engine.ScorePerLine
		s.lines += cleared
		debugLog.Printf("lock: cleared=%d score=%d", cleared, s.score)
		if s.score/engine.LevelThreshold > previous/engine.LevelThreshold {
			s.levelUp()
		}
	}

	s.spawn()
	if s.lockCallback != nil {
		s.lockCallback(cleared, s.Snapshot())
	}
	if s.status == types.GameOver {
		s.notifyEnd()
	}
}

// levelUp raises the level by one and shortens the drop interval down to the floor.
func (s *Session) levelUp() {
	s.level++
	s.interval -= engine.IntervalStep
	if s.interval < engine.MinInterval {
		s.interval = engine.MinInterval
	}
	debugLog.Printf("levelUp: level=%d interval=%s", s.level, s.interval)
}

func (s *Session) notifyEnd() {
	if s.endCallback != nil {
		s.endCallback(s.score)
	}
}
