// Package gui renders a game session in a desktop window with ebiten.
package gui

import (
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"

	"termtris/config"
	"termtris/engine"
	"termtris/types"
)

const (
	panelWidth   = 160
	previewCell  = engine.CellSize / 2
	lineHeight   = 18
	repeatDelay  = 10 // ticks before a held key repeats
	repeatPeriod = 3
)

var face = text.NewGoXFace(basicfont.Face7x13)

// Game adapts a GameEngine to ebiten.Game. Ebiten calls Update and Draw on one goroutine,
// so the engine is never shared.
type Game struct {
	eng         engine.GameEngine
	cfg         *config.Config
	lastCleared int
	now         func() time.Time
}

func NewGame(eng engine.GameEngine, cfg *config.Config) *Game {
	g := &Game{
		eng: eng,
		cfg: cfg,
		now: time.Now,
	}
	eng.OnLock(func(cleared int, snap *types.Snapshot) {
		if cleared > 0 {
			g.lastCleared = cleared
		}
	})
	eng.OnGameOver(func(finalScore int) {
		log.Printf("game over: score %d", finalScore)
	})
	return g
}

// ScreenSize returns the logical size of the window contents.
func ScreenSize() (int, int) {
	return engine.Cols*engine.CellSize + panelWidth, engine.Rows * engine.CellSize
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	switch g.eng.Status() {
	case types.NotStarted:
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			return g.start()
		}
		return nil
	case types.GameOver:
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			g.eng.Reset()
			return g.start()
		}
		return nil
	}

	if keyFires(ebiten.KeyArrowLeft) {
		g.eng.MoveLeft()
	}
	if keyFires(ebiten.KeyArrowRight) {
		g.eng.MoveRight()
	}
	if keyFires(ebiten.KeyArrowDown) {
		g.eng.SoftDrop()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.eng.Rotate()
	}
	g.eng.Frame(g.now())
	return nil
}

func (g *Game) start() error {
	g.lastCleared = 0
	if err := g.eng.Start(g.now()); err != nil {
		return fmt.Errorf("start game: %w", err)
	}
	return nil
}

// keyFires reports a fresh press, then repeats while the key is held.
func keyFires(key ebiten.Key) bool {
	return repeats(inpututil.KeyPressDuration(key))
}

func repeats(ticks int) bool {
	if ticks == 1 {
		return true
	}
	return ticks >= repeatDelay && (ticks-repeatDelay)%repeatPeriod == 0
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Black)
	snap := g.eng.Snapshot()
	g.drawBoard(screen, snap)
	g.drawPanel(screen, snap)

	switch snap.Status {
	case types.NotStarted:
		g.drawBanner(screen, "TERMTRIS", "Enter to start")
	case types.GameOver:
		g.drawBanner(screen, "GAME OVER", fmt.Sprintf("Score %d - Enter to restart", snap.Score))
	}
}

func (g *Game) drawBoard(screen *ebiten.Image, snap *types.Snapshot) {
	cs := float32(engine.CellSize)
	w, h := float32(snap.Width())*cs, float32(snap.Height())*cs
	vector.DrawFilledRect(screen, 0, 0, w, h, PaletteRGBA(g.cfg.Theme.Colors.BoardColor), false)

	if g.cfg.Theme.DrawGrid {
		grid := PaletteRGBA(g.cfg.Theme.Colors.GridColor)
		for x := 1; x < snap.Width(); x++ {
			vector.StrokeLine(screen, float32(x)*cs, 0, float32(x)*cs, h, 1, grid, false)
		}
		for y := 1; y < snap.Height(); y++ {
			vector.StrokeLine(screen, 0, float32(y)*cs, w, float32(y)*cs, 1, grid, false)
		}
	}

	for y := 0; y < snap.Height(); y++ {
		for x := 0; x < snap.Width(); x++ {
			cell, _ := snap.CellAt(x, y)
			if !cell.Filled() {
				continue
			}
			drawBlock(screen, float32(x)*cs, float32(y)*cs, cs, PaletteRGBA(g.cfg.PieceColor(cell.Kind())))
		}
	}
	vector.StrokeRect(screen, 0, 0, w, h, 2, PaletteRGBA(g.cfg.Theme.Colors.BorderColor), false)
}

func (g *Game) drawPanel(screen *ebiten.Image, snap *types.Snapshot) {
	left := float64(snap.Width()*engine.CellSize + 16)
	fg := PaletteRGBA(g.cfg.Theme.Colors.TextColor)
	accent := PaletteRGBA(g.cfg.Theme.Colors.AccentColor)

	y := 16.0
	drawText(screen, "NEXT", left, y, accent)
	y += lineHeight
	if snap.Next != nil {
		c := PaletteRGBA(g.cfg.PieceColor(snap.Next.Kind))
		for row, cells := range snap.Next.Cells {
			for col, set := range cells {
				if set {
					drawBlock(screen, float32(left)+float32(col*previewCell), float32(y)+float32(row*previewCell), previewCell, c)
				}
			}
		}
	}
	y += 4*previewCell + lineHeight

	stats := []struct {
		label string
		value int
	}{
		{"SCORE", snap.Score},
		{"LEVEL", snap.Level},
		{"LINES", snap.Lines},
		{"PIECES", snap.Pieces},
	}
	for _, s := range stats {
		drawText(screen, s.label, left, y, accent)
		drawText(screen, fmt.Sprint(s.value), left, y+lineHeight, fg)
		y += 2*lineHeight + 6
	}
	drawText(screen, fmt.Sprintf("%dms", snap.IntervalMs), left, y, colornames.Gray)
	if g.lastCleared > 0 {
		drawText(screen, fmt.Sprintf("cleared %d", g.lastCleared), left, y+lineHeight, colornames.Gray)
	}
}

func (g *Game) drawBanner(screen *ebiten.Image, title, hint string) {
	w, h := ScreenSize()
	vector.DrawFilledRect(screen, 0, float32(h/2-40), float32(w), 80, color.RGBA{A: 200}, false)
	drawText(screen, title, float64(w/2-len(title)*7/2), float64(h/2-24), colornames.Orangered)
	drawText(screen, hint, float64(w/2-len(hint)*7/2), float64(h/2+4), colornames.White)
}

func drawBlock(screen *ebiten.Image, x, y, size float32, c color.RGBA) {
	vector.DrawFilledRect(screen, x+1, y+1, size-2, size-2, c, false)
}

func drawText(screen *ebiten.Image, s string, x, y float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, face, op)
}

// Layout keeps the logical size fixed and lets ebiten scale the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenSize()
}

// PaletteRGBA converts a 256-color palette index to RGBA, falling back to white.
func PaletteRGBA(code int) color.RGBA {
	if code < 0 || code > 255 {
		return colornames.White
	}
	r, gr, b := tcell.PaletteColor(code).RGB()
	if r < 0 || gr < 0 || b < 0 {
		return colornames.White
	}
	return color.RGBA{R: uint8(r), G: uint8(gr), B: uint8(b), A: 0xff}
}
