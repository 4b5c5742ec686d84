// Package ui specifies custom controls for tview to play a falling-block game in the terminal.
package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"termtris/config"
	"termtris/engine"
	"termtris/types"
)

// ErrGameRunning is returned when a game is started while another one is still running.
var ErrGameRunning = errors.New("a game is already running")

type PlayfieldUI struct {
	Box         *tview.Box
	Snapshot    *types.Snapshot
	hint        *tview.TextView
	cfg         *config.Config
	app         *tview.Application
	eng         engine.GameEngine
	styles      []tcell.Color
	infoPanel   *GameInfoPanel
	focusMode   bool
	lastCleared int
	stopFrames  context.CancelFunc
	onGameOver  func(snap *types.Snapshot)
}

// ToggleFocusMode toggles focus mode and returns the new state.
func (g *PlayfieldUI) ToggleFocusMode() bool {
	g.focusMode = !g.focusMode
	g.refreshHint()
	return g.focusMode
}

// SetFocusMode sets focus mode to the given state.
func (g *PlayfieldUI) SetFocusMode(enabled bool) {
	g.focusMode = enabled
	g.refreshHint()
}

// IsFocusMode returns true if focus mode is enabled.
func (g *PlayfieldUI) IsFocusMode() bool {
	return g.focusMode
}

// OnGameOver registers a callback run on the UI goroutine when the game ends.
func (g *PlayfieldUI) OnGameOver(fn func(snap *types.Snapshot)) {
	g.onGameOver = fn
}

func NewPlayfield(app *tview.Application, c *config.Config, hint *tview.TextView) *PlayfieldUI {
	field := &PlayfieldUI{
		Box:      tview.NewBox(),
		Snapshot: types.NewSnapshot(engine.Rows, engine.Cols),
		hint:     hint,
		app:      app,
	}
	field.SetConfig(c)
	field.Box.SetDrawFunc(func(screen tcell.Screen, x int, y int, width int, height int) (int, int, int, int) {
		snap := field.Snapshot
		if snap == nil || snap.Width() == 0 {
			return x, y, 1, 1
		}
		// 2 characters per cell for square appearance, plus a border column each side
		boardW, boardH := snap.Width()*2+2, snap.Height()+1
		left := x
		if width > boardW {
			left = x + (width-boardW)/2
		}
		field.drawBorder(screen, left, y, boardW, boardH)

		for boardY := 0; boardY < snap.Height(); boardY++ {
			for boardX := 0; boardX < snap.Width(); boardX++ {
				cell, _ := snap.CellAt(boardX, boardY)
				field.drawCell(screen, cell, boardX, boardY, left+1, y)
			}
		}
		if snap.Finished() {
			drawCentered(screen, left, y+boardH/2, boardW, " GAME OVER ",
				tcell.StyleDefault.Foreground(MenuColors.Danger).Background(MenuColors.CardBG).Bold(true))
		}
		return x, y, width, height
	})
	return field
}

// ConnectEngine starts a game on e and drives it with a frame loop until the game ends.
func (g *PlayfieldUI) ConnectEngine(e engine.GameEngine) error {
	if g.eng != nil && g.eng.Status() == types.Running {
		return ErrGameRunning
	}
	g.eng = e
	g.lastCleared = 0

	e.OnLock(func(cleared int, snap *types.Snapshot) {
		g.lastCleared = cleared
		g.Snapshot = snap
	})

	e.OnGameOver(func(finalScore int) {
		g.sync()
		if g.onGameOver != nil {
			g.onGameOver(g.Snapshot)
		}
	})

	if err := e.Start(time.Now()); err != nil {
		return fmt.Errorf("start game: %w", err)
	}
	g.sync()

	ctx, cancel := context.WithCancel(context.Background())
	g.stopFrames = cancel
	go engine.RunFrames(ctx, e, engine.FramePeriod, func(frame func()) {
		g.app.QueueUpdateDraw(func() {
			frame()
			g.sync()
		})
	})
	return nil
}

// Restart resets the connected engine and starts a new game on it.
func (g *PlayfieldUI) Restart() error {
	if g.eng == nil {
		return errors.New("no engine connected")
	}
	eng := g.eng
	g.Close()
	return g.ConnectEngine(eng)
}

// MoveLeft, MoveRight, SoftDrop and Rotate forward input to the engine.
func (g *PlayfieldUI) MoveLeft()  { g.command(engine.GameEngine.MoveLeft) }
func (g *PlayfieldUI) MoveRight() { g.command(engine.GameEngine.MoveRight) }
func (g *PlayfieldUI) SoftDrop()  { g.command(engine.GameEngine.SoftDrop) }
func (g *PlayfieldUI) Rotate()    { g.command(engine.GameEngine.Rotate) }

func (g *PlayfieldUI) command(cmd func(engine.GameEngine) bool) {
	if g.eng == nil {
		return
	}
	if cmd(g.eng) {
		g.sync()
	}
}

// Close stops the frame loop and discards the running game.
func (g *PlayfieldUI) Close() {
	if g.stopFrames != nil {
		g.stopFrames()
		g.stopFrames = nil
	}
	if g.eng == nil {
		return
	}
	g.eng.Reset()
	g.sync()
}

// IsFinished returns true if the game is over.
func (g *PlayfieldUI) IsFinished() bool {
	return g.Snapshot != nil && g.Snapshot.Finished()
}

func (g *PlayfieldUI) SetConfig(c *config.Config) {
	g.styles = []tcell.Color{
		tcell.PaletteColor(c.Theme.Colors.BoardColor),  // 0
		tcell.PaletteColor(c.Theme.Colors.GridColor),   // 1
		tcell.PaletteColor(c.Theme.Colors.BorderColor), // 2
		tcell.PaletteColor(c.Theme.Colors.TextColor),   // 3
		tcell.PaletteColor(c.Theme.Colors.AccentColor), // 4
	}
	g.cfg = c
	if g.infoPanel != nil {
		g.infoPanel.SetConfig(c)
	}
}

// sync pulls a fresh snapshot from the engine and updates the side panels.
func (g *PlayfieldUI) sync() {
	if g.eng != nil {
		g.Snapshot = g.eng.Snapshot()
	}
	g.refreshHint()
}

func (g *PlayfieldUI) refreshHint() {
	if g.infoPanel != nil {
		g.infoPanel.SetSnapshot(g.Snapshot)
	}

	if g.focusMode {
		g.hint.SetText("  f to toggle")
		return
	}

	var statusLine, controlsLine string
	switch {
	case g.Snapshot == nil || g.Snapshot.Status == types.NotStarted:
		statusLine = "  ◌ Not started\n"
		controlsLine = "  q · return to menu"
	case g.Snapshot.Finished():
		statusLine = fmt.Sprintf("  ■ Game over · final score %d\n", g.Snapshot.Score)
		controlsLine = "  q · return to menu"
	default:
		statusLine = "  ▶ Playing"
		if g.lastCleared > 0 {
			statusLine += fmt.Sprintf(" · cleared %d", g.lastCleared)
		}
		statusLine += "\n"
		controlsLine = "  ←→/hl move  ↓/j drop  ↑/k/space rotate  f focus  q quit"
	}

	g.hint.SetText(statusLine + controlsLine)
}

// drawCell draws one board cell (2 characters wide).
func (g *PlayfieldUI) drawCell(s tcell.Screen, cell types.Cell, x, y, l, t int) {
	board := g.styles[0]
	if !cell.Filled() {
		style := tcell.StyleDefault.Background(board).Foreground(g.styles[1])
		r := ' '
		if g.cfg.Theme.DrawGrid {
			r = g.cfg.Theme.Symbols.Empty
		}
		s.SetContent(l+x*2, t+y, r, nil, style)
		s.SetContent(l+x*2+1, t+y, ' ', nil, style)
		return
	}

	color := tcell.PaletteColor(g.cfg.PieceColor(cell.Kind()))
	style := tcell.StyleDefault.Background(board).Foreground(color)
	if g.cfg.Theme.DrawBlockBackground {
		style = style.Background(color)
	}
	s.SetContent(l+x*2, t+y, g.cfg.Theme.Symbols.Block, nil, style)
	s.SetContent(l+x*2+1, t+y, g.cfg.Theme.Symbols.Block, nil, style)
}

// drawBorder draws the well: side walls and a floor, open at the top.
func (g *PlayfieldUI) drawBorder(s tcell.Screen, l, t, w, h int) {
	style := tcell.StyleDefault.Foreground(g.styles[2])
	for row := t; row < t+h-1; row++ {
		s.SetContent(l, row, '│', nil, style)
		s.SetContent(l+w-1, row, '│', nil, style)
	}
	s.SetContent(l, t+h-1, '└', nil, style)
	for col := l + 1; col < l+w-1; col++ {
		s.SetContent(col, t+h-1, '─', nil, style)
	}
	s.SetContent(l+w-1, t+h-1, '┘', nil, style)
}

// drawCentered writes text centered in a span of width columns starting at x.
func drawCentered(s tcell.Screen, x, y, width int, text string, style tcell.Style) {
	runes := []rune(text)
	start := x + (width-len(runes))/2
	for i, ch := range runes {
		s.SetContent(start+i, y, ch, nil, style)
	}
}
