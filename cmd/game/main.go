package main

import (
	"flag"
	"log"

	"github.com/bmccall17/rampart-remake-sub000/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	var seed int64
	var mapPath string
	var scoresPath string
	var verbose bool

	flag.Int64Var(&seed, "seed", 0, "RNG seed (0 = time-based)")
	flag.StringVar(&mapPath, "map", "", "path to a JSON map definition (empty = generated island)")
	flag.StringVar(&scoresPath, "scores", "rampart_scores.json", "high score file (empty = disabled)")
	flag.BoolVar(&verbose, "verbose", false, "record verbose sim log entries")
	flag.Parse()

	cfg := game.DefaultConfig()
	cfg.Seed = seed
	cfg.VerboseLog = verbose
	if mapPath != "" {
		def, err := game.LoadMapDef(mapPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg.Map = def
	}

	g, err := game.New(cfg, scoresPath)
	if err != nil {
		log.Fatal(err)
	}
	w, h := g.WindowSize()
	ebiten.SetWindowTitle("Rampart Remake")
	ebiten.SetWindowSize(w, h)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
