package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	sceneName := flag.String("scene", "arena.yaml", "scene file in prefabs/scenes/ (basename, .yaml required)")
	zoom := flag.Float64("zoom", 1, "world to screen scale")
	paused := flag.Bool("paused", false, "start paused; N steps one tick")
	flag.Parse()

	game, err := NewGame(*sceneName, *zoom, *paused)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("collide viewer")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
