// termtris-gui plays termtris in a desktop window.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"termtris/config"
	"termtris/engine"
	"termtris/engine/tetris"
	"termtris/gui"
)

var (
	flagSeed  = flag.Uint64("seed", 0, "Piece sequence seed (0 picks one from the clock)")
	flagScale = flag.Int("scale", 0, "Window scale 1-4 (0 uses the config file)")
	flagDebug = flag.Bool("debug", false, "Log engine events to stderr")
)

func main() {
	flag.Parse()

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatal(err)
	}
	if *flagScale != 0 {
		cfg.GUI.Scale = *flagScale
		if err := cfg.Validate(); err != nil {
			log.Fatal(err)
		}
	}
	if *flagDebug {
		tetris.SetDebugOutput(os.Stderr)
	}

	gameCfg := engine.DefaultConfig()
	gameCfg.Seed = *flagSeed
	game := gui.NewGame(tetris.NewSession(gameCfg), cfg)

	w, h := gui.ScreenSize()
	ebiten.SetWindowTitle("termtris")
	ebiten.SetWindowSize(w*cfg.GUI.Scale, h*cfg.GUI.Scale)
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
