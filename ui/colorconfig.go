package ui

import (
	"fmt"
	"log"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"termtris/config"
)

// ColorConfigUI provides a color configuration screen with live preview.
type ColorConfigUI struct {
	flex      *tview.Flex
	colorList *tview.List
	preview   *tview.Box
	cfg       *config.Config
	onDone    func()

	selectedBoardColor int
	selectedPalette    [7]int
	editingPieces      bool // true = editing the piece palette, false = board color
}

// Dark backgrounds that keep saturated pieces readable.
var boardColors = []struct {
	code int
	name string
}{
	{16, "True Black"},
	{232, "Black"},
	{234, "Charcoal"},
	{236, "Dark Gray"},
	{238, "Slate"},
	{17, "Navy Blue"},
	{18, "Deep Blue"},
	{22, "Dark Green"},
	{23, "Teal"},
	{52, "Dark Maroon"},
	{53, "Plum"},
	{54, "Purple"},
	{58, "Olive"},
	{60, "Nord Blue"},
	{94, "Saddle Brown"},
}

// Piece palettes in I, T, O, S, Z, L, J order.
var piecePalettes = []struct {
	name   string
	colors [7]int
}{
	{"Classic", [7]int{51, 93, 226, 46, 196, 208, 21}},
	{"Ocean Neon", [7]int{45, 51, 39, 44, 50, 81, 75}},
	{"Amber", [7]int{220, 222, 214, 208, 215, 223, 216}},
	{"Forest CRT", [7]int{47, 77, 64, 48, 71, 106, 35}},
	{"Sunset", [7]int{203, 211, 221, 215, 197, 209, 219}},
	{"Grayscale", [7]int{255, 252, 250, 248, 246, 244, 242}},
}

// previewPieces lays out a few locked pieces: kind, x, y in a 6x6 grid.
var previewPieces = [][3]int{
	{0, 0, 5}, {0, 1, 5}, {0, 2, 5}, {0, 3, 5},
	{2, 4, 4}, {2, 5, 4}, {2, 4, 5}, {2, 5, 5},
	{1, 1, 3}, {1, 2, 3}, {1, 3, 3}, {1, 2, 4},
	{3, 0, 3}, {3, 0, 4}, {4, 5, 2}, {4, 5, 3},
	{5, 3, 1}, {5, 3, 2}, {6, 1, 0}, {6, 1, 1},
}

// NewColorConfig creates a new color configuration screen.
func NewColorConfig(cfg *config.Config, onDone func()) *ColorConfigUI {
	cc := &ColorConfigUI{
		cfg:                cfg,
		onDone:             onDone,
		selectedBoardColor: cfg.Theme.Colors.BoardColor,
		selectedPalette:    cfg.Theme.Colors.PieceColors,
	}

	cc.colorList = tview.NewList()
	cc.colorList.SetBorder(true)
	cc.colorList.ShowSecondaryText(false)
	cc.populateColorList()

	cc.colorList.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		cc.highlight(index)
	})

	cc.colorList.SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		cc.highlight(index)
		if cc.editingPieces {
			cc.cfg.Theme.Colors.PieceColors = cc.selectedPalette
			cc.save()
			cc.editingPieces = false
			cc.populateColorList()
			return
		}
		cc.cfg.Theme.Colors.BoardColor = cc.selectedBoardColor
		cc.save()
		onDone()
	})

	cc.preview = tview.NewBox()
	cc.preview.SetBorder(true)
	cc.preview.SetTitle(" Preview ")
	cc.preview.SetDrawFunc(cc.drawPreview)

	cc.flex = tview.NewFlex().
		AddItem(cc.colorList, 34, 0, true).
		AddItem(cc.preview, 0, 1, false)

	return cc
}

func (cc *ColorConfigUI) save() {
	if err := cc.cfg.Save(); err != nil {
		log.Printf("save config: %v", err)
	}
}

// highlight previews the list entry at index without saving it.
func (cc *ColorConfigUI) highlight(index int) {
	if cc.editingPieces {
		if index >= 0 && index < len(piecePalettes) {
			cc.selectedPalette = piecePalettes[index].colors
		}
		return
	}
	if index >= 0 && index < len(boardColors) {
		cc.selectedBoardColor = boardColors[index].code
	}
}

// populateColorList fills the list with appropriate colors based on editing mode.
func (cc *ColorConfigUI) populateColorList() {
	cc.colorList.Clear()

	if cc.editingPieces {
		cc.colorList.SetTitle(" Piece Colors (Tab: board) ")
		for i, p := range piecePalettes {
			swatch := ""
			for _, code := range p.colors {
				swatch += fmt.Sprintf("[#%06x]█[-]", tcell.PaletteColor(code).Hex())
			}
			cc.colorList.AddItem(fmt.Sprintf("%s %s", swatch, p.name), "", rune('a'+i), nil)
		}
		for i, p := range piecePalettes {
			if p.colors == cc.selectedPalette {
				cc.colorList.SetCurrentItem(i)
				break
			}
		}
		return
	}

	cc.colorList.SetTitle(" Board Color (Tab: pieces) ")
	for i, c := range boardColors {
		cc.colorList.AddItem(fmt.Sprintf("[#%06x]████[-] %s (%d)",
			tcell.PaletteColor(c.code).Hex(), c.name, c.code),
			"", rune('a'+i), nil)
	}
	for i, c := range boardColors {
		if c.code == cc.selectedBoardColor {
			cc.colorList.SetCurrentItem(i)
			break
		}
	}
}

func (cc *ColorConfigUI) drawPreview(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	const size = 6
	if width < 20 || height < size+4 {
		return x, y, width, height
	}

	board := tcell.PaletteColor(cc.selectedBoardColor)
	gridStyle := tcell.StyleDefault.Background(board).Foreground(tcell.PaletteColor(cc.cfg.Theme.Colors.GridColor))
	startX := x + 2
	startY := y + 1

	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			empty := ' '
			if cc.cfg.Theme.DrawGrid {
				empty = cc.cfg.Theme.Symbols.Empty
			}
			screen.SetContent(startX+col*2, startY+row, empty, nil, gridStyle)
			screen.SetContent(startX+col*2+1, startY+row, ' ', nil, gridStyle)
		}
	}

	for _, p := range previewPieces {
		color := tcell.PaletteColor(cc.selectedPalette[p[0]])
		style := tcell.StyleDefault.Background(board).Foreground(color)
		if cc.cfg.Theme.DrawBlockBackground {
			style = style.Background(color)
		}
		block := cc.cfg.Theme.Symbols.Block
		screen.SetContent(startX+p[1]*2, startY+p[2], block, nil, style)
		screen.SetContent(startX+p[1]*2+1, startY+p[2], block, nil, style)
	}

	info := fmt.Sprintf("Board: %d", cc.selectedBoardColor)
	if cc.editingPieces {
		info = fmt.Sprintf("Pieces: %v", cc.selectedPalette)
	}
	for i, ch := range info {
		if startX+i < x+width-1 {
			screen.SetContent(startX+i, startY+size+1, ch, nil, tcell.StyleDefault)
		}
	}

	return x, y, width, height
}

// Flex returns the flex container for this UI.
func (cc *ColorConfigUI) Flex() *tview.Flex {
	return cc.flex
}

// SetInputCapture sets the input capture for the color list.
func (cc *ColorConfigUI) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	cc.colorList.SetInputCapture(capture)
}

// ToggleMode switches between board color and piece palette editing.
func (cc *ColorConfigUI) ToggleMode() {
	cc.editingPieces = !cc.editingPieces
	cc.populateColorList()
}

// Reload picks up the current config values, for example after a theme change.
func (cc *ColorConfigUI) Reload() {
	cc.selectedBoardColor = cc.cfg.Theme.Colors.BoardColor
	cc.selectedPalette = cc.cfg.Theme.Colors.PieceColors
	cc.editingPieces = false
	cc.populateColorList()
}
