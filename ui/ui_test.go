package ui

import (
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"termtris/config"
	"termtris/engine"
	"termtris/engine/tetris"
	"termtris/types"
)

func testConfig() *config.Config {
	c := config.DefaultConfig
	return &c
}

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("")
	require.NoError(t, s.Init())
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func runeAt(s tcell.Screen, x, y int) rune {
	r, _, _, _ := s.GetContent(x, y)
	return r
}

func stubClipboard(t *testing.T, write func(string) error) {
	t.Helper()
	orig := writeClipboard
	writeClipboard = write
	t.Cleanup(func() { writeClipboard = orig })
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func char(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestPlayfieldDraw(t *testing.T) {
	cfg := testConfig()
	field := NewPlayfield(tview.NewApplication(), cfg, tview.NewTextView())
	snap := types.NewSnapshot(engine.Rows, engine.Cols)
	snap.Board[19][0] = types.Cell(1)
	snap.Active = &types.PieceState{Kind: 2, Cells: [][]bool{{true, true}, {true, true}}, X: 4, Y: 0}
	field.Snapshot = snap

	screen := newSimScreen(t, 40, 25)
	field.Box.SetRect(0, 0, 40, 25)
	field.Box.Draw(screen)

	// 22 columns wide (10 cells, 2 characters each, plus walls) centered in 40.
	left := 9
	assert.Equal(t, '│', runeAt(screen, left, 0))
	assert.Equal(t, '│', runeAt(screen, left+21, 10))
	assert.Equal(t, '└', runeAt(screen, left, 20))
	assert.Equal(t, '┘', runeAt(screen, left+21, 20))

	assert.Equal(t, cfg.Theme.Symbols.Block, runeAt(screen, left+1, 19), "locked cell")
	assert.Equal(t, cfg.Theme.Symbols.Block, runeAt(screen, left+2, 19))
	assert.Equal(t, cfg.Theme.Symbols.Block, runeAt(screen, left+1+8, 0), "active piece")
	assert.Equal(t, cfg.Theme.Symbols.Empty, runeAt(screen, left+1, 0), "grid dot")

	_, _, style, _ := screen.GetContent(left+1, 19)
	fg, _, _ := style.Decompose()
	assert.Equal(t, tcell.PaletteColor(cfg.PieceColor(0)), fg)
}

func TestPlayfieldGameOverBanner(t *testing.T) {
	field := NewPlayfield(tview.NewApplication(), testConfig(), tview.NewTextView())
	field.Snapshot.Status = types.GameOver

	screen := newSimScreen(t, 40, 25)
	field.Box.SetRect(0, 0, 40, 25)
	field.Box.Draw(screen)

	row := ""
	for x := 0; x < 40; x++ {
		row += string(runeAt(screen, x, 10))
	}
	assert.Contains(t, row, "GAME OVER")
	assert.True(t, field.IsFinished())
}

func TestPlayfieldConnectEngine(t *testing.T) {
	hint := tview.NewTextView()
	field := NewPlayfield(tview.NewApplication(), testConfig(), hint)
	CreateGameLayout(field, hint)
	t.Cleanup(field.Close)

	require.NoError(t, field.ConnectEngine(tetris.NewSession(engine.GameConfig{Seed: 5})))
	require.Equal(t, types.Running, field.Snapshot.Status)
	require.NotNil(t, field.Snapshot.Active)
	assert.Contains(t, hint.GetText(true), "Playing")
	assert.Contains(t, field.infoPanel.Box().GetText(true), "Level:")

	err := field.ConnectEngine(tetris.NewSession(engine.GameConfig{Seed: 6}))
	assert.ErrorIs(t, err, ErrGameRunning)

	x := field.Snapshot.Active.X
	field.MoveLeft()
	assert.Equal(t, x-1, field.Snapshot.Active.X)
	field.MoveRight()
	assert.Equal(t, x, field.Snapshot.Active.X)

	field.Close()
	assert.Equal(t, types.NotStarted, field.Snapshot.Status)
	assert.Contains(t, hint.GetText(true), "Not started")

	require.NoError(t, field.Restart())
	assert.Equal(t, types.Running, field.Snapshot.Status)
}

func TestFocusLayoutDropsInfoPanel(t *testing.T) {
	hint := tview.NewTextView()
	field := NewPlayfield(tview.NewApplication(), testConfig(), hint)
	frame := CreateGameLayout(field, hint)
	require.NotNil(t, field.infoPanel)

	assert.True(t, field.ToggleFocusMode())
	BuildFocusLayout(frame, field)
	assert.Nil(t, field.infoPanel)
	assert.Contains(t, hint.GetText(true), "f to toggle")

	assert.False(t, field.ToggleFocusMode())
	RebuildNormalLayout(frame, field, hint)
	assert.NotNil(t, field.infoPanel)
}

func TestInfoPanelShowsStatsAndNext(t *testing.T) {
	panel := NewGameInfoPanel(testConfig())
	snap := types.NewSnapshot(engine.Rows, engine.Cols)
	snap.Status = types.Running
	snap.Score = 1200
	snap.Level = 2
	snap.IntervalMs = 900
	snap.Lines = 12
	snap.Next = &types.PieceState{Kind: 1, Cells: [][]bool{{true, true, true}, {false, true, false}}}
	panel.SetSnapshot(snap)

	text := panel.Box().GetText(true)
	assert.Contains(t, text, "1200")
	assert.Contains(t, text, "900ms")
	assert.Contains(t, text, "T piece")
	assert.NotContains(t, text, "GAME OVER")

	snap.Status = types.GameOver
	panel.SetSnapshot(snap)
	assert.Contains(t, panel.Box().GetText(true), "GAME OVER")
}

func TestGameOverCard(t *testing.T) {
	var copied string
	stubClipboard(t, func(s string) error {
		copied = s
		return nil
	})

	restarts, menus := 0, 0
	card := NewGameOverCard(func() { restarts++ }, func() { menus++ })
	snap := types.NewSnapshot(engine.Rows, engine.Cols)
	snap.Score = 1700
	card.SetResult(snap)
	handle := card.InputHandler()
	noFocus := func(p tview.Primitive) {}

	handle(char('c'), noFocus)
	assert.Equal(t, "1700", copied)
	assert.Equal(t, "score copied", card.status)

	handle(key(tcell.KeyEnter), noFocus)
	assert.Equal(t, 0, restarts, "copy button keeps focus after its shortcut")

	handle(key(tcell.KeyTab), noFocus)
	handle(key(tcell.KeyEnter), noFocus)
	assert.Equal(t, 1, menus)

	handle(key(tcell.KeyTab), noFocus)
	handle(key(tcell.KeyEnter), noFocus)
	assert.Equal(t, 1, restarts, "focus wraps back to the first button")

	handle(char('m'), noFocus)
	assert.Equal(t, 2, menus)

	card.SetResult(snap)
	assert.Equal(t, 0, card.focus)
	assert.Empty(t, card.status)

	screen := newSimScreen(t, GameOverCardWidth, GameOverCardHeight)
	card.SetRect(0, 0, GameOverCardWidth, GameOverCardHeight)
	card.Draw(screen)
	assert.Equal(t, '╭', runeAt(screen, 0, 0))
}

func TestGameOverCardClipboardFailure(t *testing.T) {
	stubClipboard(t, func(string) error { return errors.New("no display") })

	card := NewGameOverCard(nil, nil)
	card.SetResult(types.NewSnapshot(engine.Rows, engine.Cols))
	card.InputHandler()(char('c'), func(tview.Primitive) {})
	assert.Equal(t, "clipboard unavailable", card.status)
}

func TestParseSeed(t *testing.T) {
	assert.Equal(t, uint64(0), parseSeed(""))
	assert.Equal(t, uint64(42), parseSeed(" 42 "))
	assert.Equal(t, uint64(0), parseSeed("99999999999999999999999"))
}
