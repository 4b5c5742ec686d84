package tetris

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"termtris/engine"
	"termtris/types"
)

var t0 = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func newRunningSession(t *testing.T) *Session {
	t.Helper()
	s := NewSession(engine.GameConfig{Seed: 7})
	require.NoError(t, s.Start(t0))
	require.Equal(t, types.Running, s.Status())
	return s
}

// lockSquareAt replaces the active piece with an O resting at (x, y) and lets gravity lock it.
func lockSquareAt(t *testing.T, s *Session, x, y int) {
	t.Helper()
	require.False(t, Collides(s.grid, x, y, catalog[KindO]), "square must fit")
	require.True(t, Collides(s.grid, x, y+1, catalog[KindO]), "square must be resting")
	s.active = NewPiece(s.grid, catalog[KindO], x, y)
	require.True(t, s.Tick())
}

func TestSessionStart(t *testing.T) {
	s := NewSession(engine.GameConfig{Seed: 3})
	assert.Equal(t, types.NotStarted, s.Status())
	assert.False(t, s.MoveLeft())
	assert.False(t, s.Rotate())
	assert.False(t, s.Tick())
	assert.False(t, s.Frame(t0.Add(time.Hour)))

	require.NoError(t, s.Start(t0))
	assert.Equal(t, types.Running, s.Status())
	assert.ErrorIs(t, s.Start(t0), ErrAlreadyStarted)

	snap := s.Snapshot()
	require.NotNil(t, snap.Active)
	require.NotNil(t, snap.Next)
	assert.Equal(t, 0, snap.Active.Y)
	assert.Equal(t, engine.Cols/2-snap.Active.Width()/2, snap.Active.X)
	assert.Equal(t, 1, snap.Level)
	assert.Equal(t, 1000, snap.IntervalMs)
	assert.Equal(t, 0, snap.Score)
}

func TestSessionSameSeedSamePieces(t *testing.T) {
	a := NewSession(engine.GameConfig{Seed: 99})
	b := NewSession(engine.GameConfig{Seed: 99})
	require.NoError(t, a.Start(t0))
	require.NoError(t, b.Start(t0))
	for i := 0; i < 10; i++ {
		require.Equal(t, a.Snapshot().Active.Kind, b.Snapshot().Active.Kind)
		require.Equal(t, a.Snapshot().Next.Kind, b.Snapshot().Next.Kind)
		a.spawn()
		b.spawn()
	}
}

func TestSessionFrameGating(t *testing.T) {
	s := newRunningSession(t)
	y := s.active.Y

	assert.False(t, s.Frame(t0.Add(500*time.Millisecond)))
	assert.False(t, s.Frame(t0.Add(1000*time.Millisecond)), "advance needs strictly more than the interval")
	assert.Equal(t, y, s.active.Y)

	assert.True(t, s.Frame(t0.Add(1001*time.Millisecond)))
	assert.Equal(t, y+1, s.active.Y)

	// The clock restarts at the last advance, so one advance per interval at most.
	assert.False(t, s.Frame(t0.Add(1500*time.Millisecond)))
	assert.False(t, s.Frame(t0.Add(2001*time.Millisecond)))
	assert.True(t, s.Frame(t0.Add(2002*time.Millisecond)))
	assert.Equal(t, y+2, s.active.Y)
}

func TestSessionRejectedMoveLeavesState(t *testing.T) {
	s := newRunningSession(t)
	s.active = NewPiece(s.grid, catalog[KindT], 0, 4)
	before := s.Snapshot()

	assert.False(t, s.MoveLeft())
	assert.Equal(t, before, s.Snapshot())

	assert.True(t, s.MoveRight())
	assert.Equal(t, 1, s.active.X)
}

func TestSessionSoftDropNeverLocks(t *testing.T) {
	s := newRunningSession(t)
	s.active = NewPiece(s.grid, catalog[KindO], 4, 17)

	assert.True(t, s.SoftDrop())
	assert.False(t, s.SoftDrop())
	assert.Equal(t, 18, s.active.Y)
	assert.Equal(t, 0, s.Snapshot().Pieces)
	assert.Empty(t, s.grid.FindFullRows())
	assert.False(t, s.grid.IsOccupied(4, 19))
}

func TestSessionLock(t *testing.T) {
	t.Run("next piece becomes active", func(t *testing.T) {
		s := newRunningSession(t)
		next := s.Snapshot().Next.Kind
		lockSquareAt(t, s, 0, 18)

		snap := s.Snapshot()
		assert.Equal(t, next, snap.Active.Kind)
		assert.Equal(t, 0, snap.Active.Y)
		assert.Equal(t, 1, snap.Pieces)
		assert.Equal(t, KindO, snap.Board[19][0].Kind())
		assert.Equal(t, KindO, snap.Board[18][1].Kind())
	})

	t.Run("two lines clear in one batch", func(t *testing.T) {
		s := newRunningSession(t)
		fillRow(s.grid, 18, 0, 1)
		fillRow(s.grid, 19, 0, 1)
		s.grid.cells[17][5] = types.Cell(3)

		var cleared int
		var locked *types.Snapshot
		s.OnLock(func(n int, snap *types.Snapshot) {
			cleared = n
			locked = snap
		})
		lockSquareAt(t, s, 0, 18)

		assert.Equal(t, 2, cleared)
		require.NotNil(t, locked)
		assert.Equal(t, 200, s.Score())
		assert.Equal(t, 2, locked.Lines)

		requireDimensions(t, s.grid, engine.Rows, engine.Cols)
		assert.Empty(t, s.grid.FindFullRows())
		// Everything above the cleared rows moved down by two.
		assert.True(t, s.grid.IsOccupied(5, 19))
		for y := 0; y < 19; y++ {
			for x := 0; x < engine.Cols; x++ {
				assert.False(t, s.grid.IsOccupied(x, y), "cell (%d,%d)", x, y)
			}
		}
	})

	t.Run("no clear no score", func(t *testing.T) {
		s := newRunningSession(t)
		lockSquareAt(t, s, 3, 18)
		assert.Equal(t, 0, s.Score())
		assert.Equal(t, 1, s.Level())
	})
}

func TestSessionLeveling(t *testing.T) {
	t.Run("landing on 1000 levels up", func(t *testing.T) {
		s := newRunningSession(t)
		s.score = 900
		fillRow(s.grid, 19, 0, 1)
		lockSquareAt(t, s, 0, 18)

		assert.Equal(t, 1000, s.Score())
		assert.Equal(t, 2, s.Level())
		assert.Equal(t, 900*time.Millisecond, s.Interval())
	})

	t.Run("crossing 1000 in one batch levels up once", func(t *testing.T) {
		s := newRunningSession(t)
		s.score = 900
		fillRow(s.grid, 18, 0, 1)
		fillRow(s.grid, 19, 0, 1)
		lockSquareAt(t, s, 0, 18)

		assert.Equal(t, 1100, s.Score())
		assert.Equal(t, 2, s.Level())
		assert.Equal(t, 900*time.Millisecond, s.Interval())
	})

	t.Run("no threshold crossed", func(t *testing.T) {
		s := newRunningSession(t)
		s.score = 1000
		s.level = 2
		s.interval = 900 * time.Millisecond
		fillRow(s.grid, 18, 0, 1)
		fillRow(s.grid, 19, 0, 1)
		lockSquareAt(t, s, 0, 18)

		assert.Equal(t, 1200, s.Score())
		assert.Equal(t, 2, s.Level())
		assert.Equal(t, 900*time.Millisecond, s.Interval())
	})

	t.Run("interval floor", func(t *testing.T) {
		s := newRunningSession(t)
		s.score = 9900
		s.level = 10
		s.interval = engine.MinInterval
		fillRow(s.grid, 19, 0, 1)
		lockSquareAt(t, s, 0, 18)

		assert.Equal(t, 11, s.Level())
		assert.Equal(t, engine.MinInterval, s.Interval())
	})
}

func TestSessionGameOver(t *testing.T) {
	s := newRunningSession(t)
	// Block the spawn area without completing any row.
	for y := 0; y < 2; y++ {
		for x := 2; x < 8; x++ {
			s.grid.cells[y][x] = types.Cell(1)
		}
	}

	final := -1
	s.OnGameOver(func(score int) { final = score })
	s.score = 300
	lockSquareAt(t, s, 0, 18)

	require.Equal(t, types.GameOver, s.Status())
	assert.Equal(t, 300, final)
	assert.True(t, s.Snapshot().Finished())

	frozen := s.Snapshot()
	assert.False(t, s.Tick())
	assert.False(t, s.Frame(t0.Add(time.Hour)))
	assert.False(t, s.MoveLeft())
	assert.False(t, s.MoveRight())
	assert.False(t, s.SoftDrop())
	assert.False(t, s.Rotate())
	assert.Equal(t, frozen, s.Snapshot())
	assert.ErrorIs(t, s.Start(t0), ErrAlreadyStarted)

	s.Reset()
	assert.Equal(t, types.NotStarted, s.Status())
	assert.Equal(t, 0, s.Score())
	require.NoError(t, s.Start(t0))
	assert.False(t, s.grid.IsOccupied(4, 0))
}
