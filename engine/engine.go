// Package engine defines the interface between a falling-block game core and its adapters.
package engine

import (
	"time"

	"termtris/types"
)

// Fixed gameplay constants.
const (
	Rows            = 20
	Cols            = 10
	CellSize        = 30 // pixels per cell for graphical renderers
	InitialInterval = 1000 * time.Millisecond
	MinInterval     = 100 * time.Millisecond
	IntervalStep    = 100 * time.Millisecond
	ScorePerLine    = 100
	LevelThreshold  = 1000
)

// GameEngine is what render and input adapters see of a game session.
// All methods must be called from a single goroutine.
type GameEngine interface {
	// Start begins a new game. It fails if the session has already been started.
	Start(now time.Time) error

	// Frame advances gravity by at most one row if more than the current drop
	// interval has elapsed since the last advance. Returns true if state changed.
	Frame(now time.Time) bool

	// Tick performs one gravity step unconditionally, locking the piece if it cannot fall.
	Tick() bool

	// MoveLeft, MoveRight, SoftDrop and Rotate apply an input command.
	// They return false if the command was rejected or the game is not running.
	MoveLeft() bool
	MoveRight() bool
	SoftDrop() bool
	Rotate() bool

	// Status returns the lifecycle state.
	Status() types.Status

	// Snapshot returns a copy of everything a renderer needs.
	Snapshot() *types.Snapshot

	// OnLock registers a callback run after each piece locks and the next one spawns.
	OnLock(func(cleared int, snap *types.Snapshot))

	// OnGameOver registers a callback run once when the game ends.
	OnGameOver(func(finalScore int))

	// Reset discards the current game and returns to the not-started state.
	Reset()
}

// GameConfig holds configuration for starting a new game.
type GameConfig struct {
	Seed uint64 // RNG seed; 0 seeds from the clock
}

// DefaultConfig returns a reasonable default configuration.
func DefaultConfig() GameConfig {
	return GameConfig{}
}
