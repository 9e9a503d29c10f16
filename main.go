package main

import (
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug mode")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	levelName := flag.String("level", "1", "level name in prefabs/ (level_<name>.yaml, or a file name)")
	seed := flag.Int64("seed", 0, "peg layout seed (0 uses the clock)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	game, err := NewGame(*levelName, *seed, *debug)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	ebiten.SetWindowSize(game.spec.Screen.Width, game.spec.Screen.Height)
	ebiten.SetWindowTitle(game.spec.Title)
	ebiten.SetTPS(int(1/game.trajectory.World().TimeStep() + 0.5))

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
