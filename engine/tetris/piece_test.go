package tetris

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"termtris/types"
)

func TestPieceMoveHorizontal(t *testing.T) {
	g := NewGrid(20, 10)

	t.Run("rejected at the left wall", func(t *testing.T) {
		p := NewPiece(g, catalog[KindT], 0, 5)
		before := p.Shape.Clone()
		assert.False(t, p.MoveHorizontal(-1))
		assert.Equal(t, 0, p.X)
		assert.Equal(t, 5, p.Y)
		assert.True(t, before.Equal(p.Shape))
	})

	t.Run("rejected at the right wall", func(t *testing.T) {
		p := NewPiece(g, catalog[KindO], 8, 0)
		assert.False(t, p.MoveHorizontal(1))
		assert.Equal(t, 8, p.X)
	})

	t.Run("moves when free", func(t *testing.T) {
		p := NewPiece(g, catalog[KindO], 4, 0)
		assert.True(t, p.MoveHorizontal(1))
		assert.True(t, p.MoveHorizontal(-1))
		assert.True(t, p.MoveHorizontal(-1))
		assert.Equal(t, 3, p.X)
	})

	t.Run("blocked by a locked block", func(t *testing.T) {
		g := NewGrid(20, 10)
		g.cells[0][6] = types.Cell(1)
		p := NewPiece(g, catalog[KindO], 4, 0)
		assert.False(t, p.MoveHorizontal(1))
		assert.Equal(t, 4, p.X)
	})
}

func TestPieceDrop(t *testing.T) {
	g := NewGrid(20, 10)
	p := NewPiece(g, catalog[KindO], 4, 0)

	falls := 0
	for p.Drop() {
		falls++
	}
	assert.Equal(t, 18, falls)
	assert.Equal(t, 18, p.Y)
	assert.False(t, p.Drop(), "resting piece must lock")

	g.cells[5][0] = types.Cell(1)
	q := NewPiece(g, catalog[KindI], 0, 3)
	assert.True(t, q.Drop())
	assert.False(t, q.Drop(), "stopped by the block below")
	assert.Equal(t, 4, q.Y)
}

func TestPieceRotate(t *testing.T) {
	t.Run("four accepted turns restore every shape", func(t *testing.T) {
		g := NewGrid(20, 10)
		for _, s := range AllShapes() {
			p := NewPiece(g, s, 3, 5)
			for i := 0; i < 4; i++ {
				require.True(t, p.Rotate(), "%s turn %d", KindNames[s.Kind], i)
			}
			assert.True(t, s.Equal(p.Shape), "%s", KindNames[s.Kind])
			assert.Equal(t, 3, p.X)
			assert.Equal(t, 5, p.Y)
		}
	})

	t.Run("rejected near the floor", func(t *testing.T) {
		g := NewGrid(20, 10)
		p := NewPiece(g, catalog[KindI], 3, 19)
		assert.False(t, p.Rotate())
		assert.True(t, catalog[KindI].Equal(p.Shape))
	})

	t.Run("vertical I at the right wall cannot turn", func(t *testing.T) {
		g := NewGrid(20, 10)
		p := NewPiece(g, catalog[KindI].Rotate(), 9, 5)
		assert.False(t, p.Rotate())
		assert.Equal(t, 1, p.Shape.Width())
	})
}

func TestPieceState(t *testing.T) {
	g := NewGrid(20, 10)
	p := NewPiece(g, catalog[KindL], 2, 7)
	st := p.State()
	assert.Equal(t, KindL, st.Kind)
	assert.Equal(t, 2, st.X)
	assert.Equal(t, 7, st.Y)

	st.Cells[0][0] = false
	assert.True(t, p.Shape.Cells[0][0], "state must be a copy")
}
