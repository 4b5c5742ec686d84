// termtris is a falling-block puzzle game for the terminal.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"termtris/config"
	"termtris/engine"
	"termtris/engine/tetris"
	"termtris/types"
	"termtris/ui"
)

// Version is set at build time via ldflags
var Version = "dev"

// Command-line flags
var (
	flagQuickStart = flag.Bool("play", false, "Start game immediately with defaults")
	flagFocus      = flag.Bool("focus", false, "Start in focus mode (playfield only)")
	flagSeed       = flag.Uint64("seed", 0, "Piece sequence seed (0 picks one from the clock)")
	flagDebug      = flag.Bool("debug", false, "Write a debug log to the state directory")
	flagVersion    = flag.Bool("version", false, "Print version and exit")
)

var app *tview.Application
var rootPage *tview.Pages
var gameField *ui.PlayfieldUI
var gameFrame *tview.Flex
var gameHint *tview.TextView
var gameOver *ui.GameOverCard
var cfg *config.Config
var lastGame engine.GameConfig

func main() {
	flag.Parse()

	if *flagVersion {
		fmt.Printf("termtris %s\n", Version)
		return
	}

	closeLog, err := setupLogging(*flagDebug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "debug log: %s\n", err)
		os.Exit(1)
	}
	defer closeLog()

	cfg, err = config.InitConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}

	quickStart := *flagQuickStart || *flagFocus || *flagSeed != 0

	app = tview.NewApplication()
	rootPage = tview.NewPages()
	rootPage.SetBorder(true).SetTitle(" ▦ termtris ")

	gameHint = tview.NewTextView()
	gameHint.SetBorder(true)
	gameHint.SetBorderPadding(0, 0, 1, 1)
	gameHint.SetTitle(" Status ")
	gameHint.SetTitleAlign(tview.AlignLeft)
	gameField = ui.NewPlayfield(app, cfg, gameHint)
	gameFrame = ui.CreateGameLayout(gameField, gameHint)

	gameOver = ui.NewGameOverCard(
		func() {
			rootPage.HidePage("gameover")
			startGame(lastGame)
		},
		func() {
			rootPage.HidePage("gameover")
			returnToMenu()
		},
	)
	gameField.OnGameOver(func(snap *types.Snapshot) {
		gameOver.SetResult(snap)
		rootPage.ShowPage("gameover")
		app.SetFocus(gameOver)
	})

	gameField.Box.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft:
			gameField.MoveLeft()
			return nil
		case tcell.KeyRight:
			gameField.MoveRight()
			return nil
		case tcell.KeyDown:
			gameField.SoftDrop()
			return nil
		case tcell.KeyUp:
			gameField.Rotate()
			return nil
		case tcell.KeyRune:
			switch event.Rune() {
			case 'q':
				returnToMenu()
			case 'h':
				gameField.MoveLeft()
			case 'l':
				gameField.MoveRight()
			case 'j':
				gameField.SoftDrop()
			case 'k', ' ':
				gameField.Rotate()
			case 'r':
				startGame(lastGame)
			case 'f':
				if gameField.ToggleFocusMode() {
					ui.BuildFocusLayout(gameFrame, gameField)
				} else {
					ui.RebuildNormalLayout(gameFrame, gameField, gameHint)
				}
			}
			return nil
		}
		return event
	})

	colorConfig := ui.NewColorConfig(cfg, func() {
		gameField.SetConfig(cfg)
		rootPage.SwitchToPage("setup")
	})
	colorConfig.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEsc || (event.Key() == tcell.KeyRune && event.Rune() == 'q') {
			gameField.SetConfig(cfg)
			rootPage.SwitchToPage("setup")
			return nil
		}
		if event.Key() == tcell.KeyTab {
			colorConfig.ToggleMode()
			return nil
		}
		return event
	})

	setupUI := ui.NewGameSetup(
		func(gameCfg engine.GameConfig) {
			startGame(gameCfg)
		},
		func() {
			app.Stop()
		},
		func() {
			rootPage.SwitchToPage("colors")
		},
		func(theme config.Theme) {
			cfg.Theme = theme
			gameField.SetConfig(cfg)
			colorConfig.Reload()
		},
	)

	rootPage.AddPage("setup", ui.CenterPrimitive(setupUI.Form(), 60, 0), true, !quickStart)
	rootPage.AddPage("gameview", gameFrame, true, quickStart)
	rootPage.AddPage("colors", colorConfig.Flex(), true, false)
	rootPage.AddPage("gameover", ui.CenterPrimitive(gameOver, ui.GameOverCardWidth, ui.GameOverCardHeight), true, false)

	if quickStart {
		gameCfg := engine.DefaultConfig()
		gameCfg.Seed = *flagSeed
		startGame(gameCfg)
		if *flagFocus {
			gameField.SetFocusMode(true)
			ui.BuildFocusLayout(gameFrame, gameField)
		}
	}

	if err := app.SetRoot(rootPage, true).Run(); err != nil {
		log.Printf("terminal: %v", err)
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

// setupLogging sends package logs to the debug file when enabled and discards them otherwise.
func setupLogging(debug bool) (func(), error) {
	if !debug {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	path, err := config.DebugLogPath()
	if err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	log.SetOutput(f)
	tetris.SetDebugOutput(f)
	log.Printf("termtris %s starting", Version)
	return func() { f.Close() }, nil
}

// startGame discards any running game and starts a new one with the given configuration.
func startGame(gameCfg engine.GameConfig) {
	lastGame = gameCfg
	gameField.Close()

	eng := tetris.NewSession(gameCfg)
	if err := gameField.ConnectEngine(eng); err != nil {
		modal := tview.NewModal().
			SetText(fmt.Sprintf("Failed to start game:\n%s", err.Error())).
			AddButtons([]string{"OK"}).
			SetDoneFunc(func(buttonIndex int, buttonLabel string) {
				rootPage.HidePage("error")
			})
		rootPage.AddPage("error", modal, true, true)
		return
	}
	rootPage.SwitchToPage("gameview")
}

func returnToMenu() {
	gameField.Close()
	rootPage.SwitchToPage("setup")
}
