package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"termtris/config"
	"termtris/types"
)

const infoPanelWidth = 24

var kindNames = []string{"I", "T", "O", "S", "Z", "L", "J"}

// GameInfoPanel displays score, level and the next piece alongside the playfield.
type GameInfoPanel struct {
	box      *tview.TextView
	snapshot *types.Snapshot
	cfg      *config.Config
}

// NewGameInfoPanel creates a new game info panel.
func NewGameInfoPanel(c *config.Config) *GameInfoPanel {
	panel := &GameInfoPanel{
		box: tview.NewTextView(),
		cfg: c,
	}

	panel.box.SetDynamicColors(true)
	panel.box.SetBorder(false)
	panel.box.SetTextAlign(tview.AlignLeft)

	return panel
}

// Box returns the underlying tview component.
func (p *GameInfoPanel) Box() *tview.TextView {
	return p.box
}

// SetSnapshot updates the panel with the current game state.
func (p *GameInfoPanel) SetSnapshot(snap *types.Snapshot) {
	p.snapshot = snap
	p.refresh()
}

func (p *GameInfoPanel) SetConfig(c *config.Config) {
	p.cfg = c
	p.refresh()
}

func (p *GameInfoPanel) refresh() {
	if p.snapshot == nil {
		p.box.SetText("")
		return
	}
	snap := p.snapshot

	var text strings.Builder
	text.WriteString("[white::b]Game Info[-:-:-]\n")
	text.WriteString("[dimgray]──────────────────────[-:-:-]\n")
	fmt.Fprintf(&text, "[white]Score:[-:-:-]    %d\n", snap.Score)
	fmt.Fprintf(&text, "[white]Level:[-:-:-]    %d\n", snap.Level)
	fmt.Fprintf(&text, "[white]Interval:[-:-:-] %dms\n", snap.IntervalMs)
	fmt.Fprintf(&text, "[white]Lines:[-:-:-]    %d\n", snap.Lines)
	fmt.Fprintf(&text, "[white]Pieces:[-:-:-]   %d\n", snap.Pieces)

	text.WriteString("\n[white::b]Next[-:-:-]\n")
	text.WriteString("[dimgray]──────────────────────[-:-:-]\n")
	if snap.Next == nil {
		text.WriteString("[dimgray]  (none)[-]\n")
	} else {
		text.WriteString(p.previewText(snap.Next))
	}

	if snap.Finished() {
		text.WriteString("\n[red::b]GAME OVER[-:-:-]\n")
	}
	p.box.SetText(text.String())
}

// previewText renders a piece matrix as colored blocks, 2 characters per cell.
func (p *GameInfoPanel) previewText(piece *types.PieceState) string {
	color := tcell.PaletteColor(p.cfg.PieceColor(piece.Kind)).Hex()
	block := string([]rune{p.cfg.Theme.Symbols.Block, p.cfg.Theme.Symbols.Block})

	var b strings.Builder
	for _, row := range piece.Cells {
		b.WriteString("  ")
		for _, set := range row {
			if set {
				fmt.Fprintf(&b, "[#%06x]%s[-]", color, block)
			} else {
				b.WriteString("  ")
			}
		}
		b.WriteString("\n")
	}
	if piece.Kind >= 0 && piece.Kind < len(kindNames) {
		fmt.Fprintf(&b, "[dimgray]  %s piece[-]\n", kindNames[piece.Kind])
	}
	return b.String()
}

// CreateGameLayout creates the main game layout with playfield and side panel.
func CreateGameLayout(field *PlayfieldUI, hint *tview.TextView) *tview.Flex {
	mainFlex := tview.NewFlex()
	RebuildNormalLayout(mainFlex, field, hint)
	return mainFlex
}

// CenterPrimitive centers p horizontally, and vertically when height is positive.
func CenterPrimitive(p tview.Primitive, width, height int) *tview.Flex {
	centered := tview.NewFlex().SetDirection(tview.FlexColumn)
	centered.AddItem(nil, 0, 1, false)
	centered.AddItem(p, width, 0, true)
	centered.AddItem(nil, 0, 1, false)
	if height <= 0 {
		return centered
	}

	outer := tview.NewFlex().SetDirection(tview.FlexRow)
	outer.AddItem(nil, 0, 1, false)
	outer.AddItem(centered, height, 0, true)
	outer.AddItem(nil, 0, 1, false)
	return outer
}

// RebuildNormalLayout restores the normal game layout with playfield, info panel, and hint.
func RebuildNormalLayout(gameFrame *tview.Flex, field *PlayfieldUI, hint *tview.TextView) {
	gameFrame.Clear()

	infoPanel := NewGameInfoPanel(field.cfg)
	field.infoPanel = infoPanel
	infoPanel.SetSnapshot(field.Snapshot)

	boardRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	boardRow.AddItem(field.Box, 0, 1, true)
	boardRow.AddItem(infoPanel.Box(), infoPanelWidth, 0, false)

	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(boardRow, 0, 1, true)
	gameFrame.AddItem(hint, 2, 0, false)
}

// BuildFocusLayout builds the focus mode layout with just the centered playfield.
func BuildFocusLayout(gameFrame *tview.Flex, field *PlayfieldUI) {
	gameFrame.Clear()
	field.infoPanel = nil

	width, height := 22, 21
	if field.Snapshot != nil && field.Snapshot.Width() > 0 {
		width = field.Snapshot.Width()*2 + 2
		height = field.Snapshot.Height() + 1
	}

	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(CenterPrimitive(field.Box, width, height), 0, 1, true)
}
