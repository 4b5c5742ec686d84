package ui

import (
	"fmt"
	"strconv"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"termtris/types"
)

const (
	GameOverCardWidth  = 40
	GameOverCardHeight = 15
)

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// GameOverCard summarizes a finished game and offers to restart, copy the score or leave.
type GameOverCard struct {
	*MenuCard
	result  *types.Snapshot
	buttons []*MenuButton
	focus   int
	status  string
}

// NewGameOverCard creates the card. onRestart and onMenu run on the UI goroutine.
func NewGameOverCard(onRestart, onMenu func()) *GameOverCard {
	card := &GameOverCard{
		MenuCard: NewMenuCard("GAME OVER"),
	}
	card.MenuCard.SetAccent(MenuColors.Danger)
	card.buttons = []*MenuButton{
		NewMenuButton("Play again", true, onRestart),
		NewMenuButton("Copy score", false, card.copyScore),
		NewMenuButton("Menu", false, onMenu),
	}
	card.setFocus(0)
	return card
}

// SetResult shows the final state of a game and resets the button focus.
func (c *GameOverCard) SetResult(snap *types.Snapshot) {
	c.result = snap
	c.status = ""
	c.setFocus(0)
}

func (c *GameOverCard) copyScore() {
	if c.result == nil {
		return
	}
	if err := writeClipboard(strconv.Itoa(c.result.Score)); err != nil {
		c.status = "clipboard unavailable"
		return
	}
	c.status = "score copied"
}

func (c *GameOverCard) setFocus(i int) {
	n := len(c.buttons)
	c.focus = ((i % n) + n) % n
	for j, b := range c.buttons {
		b.SetFocused(j == c.focus)
	}
}

func (c *GameOverCard) Focus(delegate func(p tview.Primitive)) {
	c.MenuCard.SetFocused(true)
	c.Box.Focus(delegate)
}

func (c *GameOverCard) Blur() {
	c.MenuCard.SetFocused(false)
	c.Box.Blur()
}

func (c *GameOverCard) Draw(screen tcell.Screen) {
	c.MenuCard.Draw(screen)
	x, _, width, height := c.GetInnerRect()
	if width < 10 || height < 5 || c.result == nil {
		return
	}

	label := tcell.StyleDefault.Foreground(MenuColors.Label).Background(MenuColors.CardBG)
	value := tcell.StyleDefault.Foreground(MenuColors.Score).Background(MenuColors.CardBG).Bold(true)
	hint := tcell.StyleDefault.Foreground(MenuColors.Hint).Background(MenuColors.CardBG)

	row := c.ContentTop() + 1
	stats := []struct {
		name  string
		value string
	}{
		{"Final score", strconv.Itoa(c.result.Score)},
		{"Level", strconv.Itoa(c.result.Level)},
		{"Lines", strconv.Itoa(c.result.Lines)},
		{"Pieces", strconv.Itoa(c.result.Pieces)},
	}
	for _, s := range stats {
		for i, ch := range fmt.Sprintf("%-12s", s.name) {
			screen.SetContent(x+4+i, row, ch, nil, label)
		}
		for i, ch := range s.value {
			screen.SetContent(x+17+i, row, ch, nil, value)
		}
		row++
	}

	row++
	total := 0
	for _, b := range c.buttons {
		total += b.Width() + 1
	}
	col := x + (width-total+1)/2
	for _, b := range c.buttons {
		col += b.Draw(screen, col, row) + 1
	}

	if c.status != "" {
		drawCentered(screen, x, row+2, width, c.status, hint)
	}
}

func (c *GameOverCard) InputHandler() func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
	return c.WrapInputHandler(func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyBacktab:
			c.setFocus(c.focus - 1)
			return
		case tcell.KeyRight, tcell.KeyTab:
			c.setFocus(c.focus + 1)
			return
		case tcell.KeyRune:
			for i, b := range c.buttons {
				if b.MatchesShortcut(event.Rune()) {
					c.setFocus(i)
					b.HandleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
					return
				}
			}
		}
		c.buttons[c.focus].HandleKey(event)
	})
}
