package ui

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// MenuButton is a pill-shaped button drawn inside a MenuCard.
type MenuButton struct {
	label    string
	shortcut rune
	primary  bool
	focused  bool
	onSelect func()
}

// NewMenuButton creates a new menu button. The first letter of the label selects it from the keyboard.
func NewMenuButton(label string, primary bool, onSelect func()) *MenuButton {
	b := &MenuButton{
		label:    label,
		primary:  primary,
		onSelect: onSelect,
	}
	for _, r := range label {
		b.shortcut = unicode.ToLower(r)
		break
	}
	return b
}

func (b *MenuButton) SetFocused(focused bool) {
	b.focused = focused
}

// HandleKey processes keyboard input. Returns true if handled.
func (b *MenuButton) HandleKey(event *tcell.EventKey) bool {
	pressed := event.Key() == tcell.KeyEnter ||
		(b.focused && event.Key() == tcell.KeyRune && event.Rune() == ' ')
	if !pressed {
		return false
	}
	if b.onSelect != nil {
		b.onSelect()
	}
	return true
}

// MatchesShortcut reports whether r is this button's shortcut letter.
func (b *MenuButton) MatchesShortcut(r rune) bool {
	return b.shortcut != 0 && unicode.ToLower(r) == b.shortcut
}

func (b *MenuButton) text() string {
	if b.primary {
		return "▶ " + b.label
	}
	return b.label
}

// Draw renders the button at the given position and returns the width used.
func (b *MenuButton) Draw(screen tcell.Screen, x, y int) int {
	label := []rune(b.text())
	width := len(label) + 2

	if b.focused {
		style := tcell.StyleDefault.
			Foreground(MenuColors.ButtonText).
			Background(MenuColors.ButtonFocus)
		for i := 0; i < width; i++ {
			screen.SetContent(x+i, y, ' ', nil, style)
		}
		for i, ch := range label {
			screen.SetContent(x+1+i, y, ch, nil, style)
		}
		return width
	}

	dimStyle := tcell.StyleDefault.Foreground(MenuColors.Hint).Background(MenuColors.CardBG)
	bracketStyle := tcell.StyleDefault.Foreground(MenuColors.Border).Background(MenuColors.CardBG)
	screen.SetContent(x, y, '[', nil, bracketStyle)
	for i, ch := range label {
		style := dimStyle
		if i == 0 && !b.primary {
			style = style.Underline(true)
		}
		screen.SetContent(x+1+i, y, ch, nil, style)
	}
	screen.SetContent(x+width-1, y, ']', nil, bracketStyle)
	return width
}

// Width returns the button width including brackets or padding.
func (b *MenuButton) Width() int {
	return len([]rune(b.text())) + 2
}
