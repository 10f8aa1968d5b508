package main

import (
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/stickclash/common"
)

func main() {
	if err := loadEnv(".env"); err != nil {
		log.Fatalf("env: %v", err)
	}
	cfg, err := parseConfig(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	if cfg.BaseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth*2, common.BaseHeight*2)
	ebiten.SetWindowTitle("stickclash")

	game, err := NewGame(cfg)
	if err != nil {
		log.Fatal(err)
	}

	if err := game.run(); err != nil {
		log.Fatal(err)
	}
}
