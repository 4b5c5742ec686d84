package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// MenuCard is a styled card container with rounded borders and a title row.
type MenuCard struct {
	*tview.Box
	title   string
	accent  tcell.Color
	focused bool
}

func NewMenuCard(title string) *MenuCard {
	return &MenuCard{
		Box:    tview.NewBox(),
		title:  title,
		accent: MenuColors.TitleAccent,
	}
}

// SetAccent changes the color of the title decoration.
func (c *MenuCard) SetAccent(color tcell.Color) *MenuCard {
	c.accent = color
	return c
}

// Draw renders the card background, borders and title. Content starts at ContentTop.
func (c *MenuCard) Draw(screen tcell.Screen) {
	c.Box.DrawForSubclass(screen, c)

	x, y, width, height := c.GetInnerRect()
	if width < 10 || height < 5 {
		return
	}

	borderStyle := c.borderStyle()
	bgStyle := tcell.StyleDefault.Background(MenuColors.CardBG)

	for row := y; row < y+height; row++ {
		for col := x; col < x+width; col++ {
			screen.SetContent(col, row, ' ', nil, bgStyle)
		}
	}

	c.drawEdge(screen, y, '╭', '─', '╮')
	for row := y + 1; row < y+height-1; row++ {
		screen.SetContent(x, row, '│', nil, borderStyle)
		screen.SetContent(x+width-1, row, '│', nil, borderStyle)
	}
	c.drawEdge(screen, y+height-1, '╰', '─', '╯')

	if c.title == "" {
		return
	}
	titleStyle := tcell.StyleDefault.Foreground(MenuColors.Title).Background(MenuColors.CardBG).Bold(true)
	accentStyle := tcell.StyleDefault.Foreground(c.accent).Background(MenuColors.CardBG)

	title := []rune(c.title)
	titleX := x + (width-len(title)-3)/2
	screen.SetContent(titleX, y+2, '▦', nil, accentStyle)
	for i, ch := range title {
		screen.SetContent(titleX+3+i, y+2, ch, nil, titleStyle)
	}
	c.DrawDivider(screen, y+4)
}

// ContentTop returns the first row below the title divider.
func (c *MenuCard) ContentTop() int {
	_, y, _, _ := c.GetInnerRect()
	if c.title == "" {
		return y + 1
	}
	return y + 5
}

// DrawDivider draws a horizontal divider at the given y position.
func (c *MenuCard) DrawDivider(screen tcell.Screen, divY int) {
	c.drawEdge(screen, divY, '├', '─', '┤')
}

func (c *MenuCard) drawEdge(screen tcell.Screen, row int, left, fill, right rune) {
	x, _, width, _ := c.GetInnerRect()
	style := c.borderStyle()
	screen.SetContent(x, row, left, nil, style)
	for col := x + 1; col < x+width-1; col++ {
		screen.SetContent(col, row, fill, nil, style)
	}
	screen.SetContent(x+width-1, row, right, nil, style)
}

func (c *MenuCard) borderStyle() tcell.Style {
	color := MenuColors.Border
	if c.focused {
		color = MenuColors.BorderFocus
	}
	return tcell.StyleDefault.Foreground(color).Background(MenuColors.CardBG)
}

func (c *MenuCard) SetFocused(focused bool) {
	c.focused = focused
}
