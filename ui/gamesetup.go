package ui

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"termtris/config"
	"termtris/engine"
)

// Themes offered by the setup form, in dropdown order.
var setupThemes = []struct {
	name  string
	theme config.Theme
}{
	{"Default", config.DefaultTheme},
	{"Mono", config.MonoTheme},
}

// GameSetupUI provides a form for configuring a new game.
type GameSetupUI struct {
	form     *tview.Form
	flex     *tview.Flex
	onStart  func(engine.GameConfig)
	onCancel func()
	onColors func()
	onTheme  func(config.Theme)

	seed  uint64
	ready bool
}

// NewGameSetup creates a new game setup form. onTheme may be nil.
func NewGameSetup(onStart func(engine.GameConfig), onCancel func(), onColors func(), onTheme func(config.Theme)) *GameSetupUI {
	setup := &GameSetupUI{
		onStart:  onStart,
		onCancel: onCancel,
		onColors: onColors,
		onTheme:  onTheme,
	}

	themeNames := make([]string, len(setupThemes))
	for i, t := range setupThemes {
		themeNames[i] = t.name
	}

	form := tview.NewForm()

	form.AddDropDown("Theme", themeNames, 0, func(option string, index int) {
		if setup.ready && setup.onTheme != nil && index >= 0 && index < len(setupThemes) {
			setup.onTheme(setupThemes[index].theme)
		}
	})

	form.AddInputField("Seed", "", 20, func(text string, lastChar rune) bool {
		return lastChar >= '0' && lastChar <= '9'
	}, func(text string) {
		setup.seed = parseSeed(text)
	})

	form.AddButton("Start Game", func() {
		cfg := engine.DefaultConfig()
		cfg.Seed = setup.seed
		onStart(cfg)
	})

	form.AddButton("Colors", func() {
		if onColors != nil {
			onColors()
		}
	})

	form.AddButton("Quit", func() {
		onCancel()
	})

	form.SetBorder(true)
	form.SetTitle(" New Game ")
	form.SetTitleAlign(tview.AlignCenter)
	form.SetButtonBackgroundColor(tcell.ColorDarkCyan)
	form.SetButtonTextColor(tcell.ColorWhite)

	helpText := tview.NewTextView().
		SetText("Tab: next field  |  Empty seed: random  |  Enter: confirm").
		SetTextAlign(tview.AlignCenter)
	helpText.SetTextColor(tcell.ColorGray)

	flex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(form, 0, 1, true).
		AddItem(helpText, 1, 0, false)

	setup.form = form
	setup.flex = flex
	// The dropdown reports its initial option while being built.
	setup.ready = true
	return setup
}

// parseSeed returns 0, meaning a clock seed, for empty or out of range input.
func parseSeed(text string) uint64 {
	seed, err := strconv.ParseUint(strings.TrimSpace(text), 10, 64)
	if err != nil {
		return 0
	}
	return seed
}

// Form returns the flex container with form and help text.
func (s *GameSetupUI) Form() *tview.Flex {
	return s.flex
}

// SetInputCapture sets the input capture function for the form.
func (s *GameSetupUI) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	s.form.SetInputCapture(capture)
}
