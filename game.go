package main

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/pegshot/ecs"
	"github.com/milk9111/pegshot/ecs/component"
	"github.com/milk9111/pegshot/ecs/entity"
	"github.com/milk9111/pegshot/ecs/system"
	"github.com/milk9111/pegshot/prefabs"
	"github.com/milk9111/pegshot/trajectory"
)

type Game struct {
	levelName string
	seed      int64
	debug     bool

	spec       prefabs.GameSpec
	world      *ecs.World
	mirror     *trajectory.World
	trajectory *system.TrajectorySystem

	hud     *HUD
	pauseUI *ebitenui.UI
	watcher *prefabs.Watcher
}

func NewGame(levelName string, seed int64, debug bool) (*Game, error) {
	g := &Game{levelName: levelName, seed: seed, debug: debug, hud: NewHUD()}
	if err := g.load(); err != nil {
		return nil, err
	}

	if w, err := prefabs.NewWatcher("prefabs", filepath.Join("prefabs", "scripts")); err == nil {
		g.watcher = w
	} else if debug {
		log.Printf("prefabs: hot reload disabled: %v", err)
	}
	return g, nil
}

// load builds a fresh world from the current prefabs. On error the running
// world is left untouched.
func (g *Game) load() error {
	spec, err := prefabs.LoadGameSpec()
	if err != nil {
		return err
	}
	level, err := prefabs.LoadLevelSpec(g.levelName)
	if err != nil {
		return err
	}

	cfg := spec.Physics.TrajectoryConfig()
	mirror, err := trajectory.NewWorld(cfg)
	if err != nil {
		return fmt.Errorf("game: shadow world: %w", err)
	}
	physics, err := system.NewPhysicsSystem(cfg)
	if err != nil {
		mirror.Close()
		return fmt.Errorf("game: physics: %w", err)
	}

	ballCollider, ballMass, err := entity.BallTemplate()
	if err != nil {
		mirror.Close()
		return err
	}

	w := ecs.NewWorld()
	if err := entity.BuildArena(w, spec, level, g.seed); err != nil {
		mirror.Close()
		return err
	}

	dt := physics.TimeStep()
	arena := spec.Arena
	ts := system.NewTrajectorySystem(mirror, system.TrajectoryBall{Collider: ballCollider, Mass: ballMass},
		spec.Trajectory.MaxCollisions, spec.Trajectory.MaxSteps)
	ts.SetDebug(g.debug)
	if err := ts.Validate(w); err != nil {
		mirror.Close()
		return fmt.Errorf("game: %w", err)
	}

	w.AddSystem(system.NewInputSystem())
	w.AddSystem(system.NewPauseSystem())
	w.AddSystem(system.NewLauncherSystem(0, arena.Width))
	w.AddSystem(system.NewPathSystem(dt))
	w.AddSystem(physics)
	w.AddSystem(system.NewBallSystem(cp.Vector{X: arena.Width / 2, Y: arena.Height / 2}, spec.Ball.DespawnDistance))
	w.AddSystem(system.NewPegSystem(spec.Cleanup.Interval, dt))
	w.AddSystem(ts)
	w.AddSystem(system.NewRenderSystem())
	if g.debug {
		w.AddSystem(system.NewPhysicsDebugSystem(mirror, physics))
	}

	if g.mirror != nil {
		g.mirror.Close()
	}
	g.spec = spec
	g.world = w
	g.mirror = mirror
	g.trajectory = ts
	g.pauseUI = NewPauseUI(spec.Screen.Width, spec.Screen.Height, g.resume)
	return nil
}

func (g *Game) resume() {
	if game := g.gameState(); game != nil {
		game.Paused = false
	}
}

func (g *Game) gameState() *component.Game {
	e, ok := ecs.First(g.world, component.GameComponent.Kind())
	if !ok {
		return nil
	}
	game, _ := ecs.Get(g.world, e, component.GameComponent.Kind())
	return game
}

func (g *Game) Update() error {
	g.pollReload()

	g.world.Update()

	game := g.gameState()
	if game == nil {
		return nil
	}
	g.hud.Update(*game)
	if game.Paused {
		g.pauseUI.Update()
	}
	return nil
}

func (g *Game) pollReload() {
	if g.watcher == nil {
		return
	}
	changed := g.watcher.Poll()
	select {
	case err := <-g.watcher.Errors:
		if err != nil {
			log.Printf("prefabs: watch: %v", err)
		}
	default:
	}
	if len(changed) == 0 {
		return
	}
	if err := g.load(); err != nil {
		log.Printf("prefabs: reload after %s: %v", strings.Join(changed, ", "), err)
		return
	}
	if g.debug {
		log.Printf("prefabs: reloaded after %d change(s)", len(changed))
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	if bg := g.spec.Screen.Background; bg != nil && bg.Color != nil {
		screen.Fill(bg.Color)
	}
	g.world.Draw(screen)
	g.hud.ui.Draw(screen)
	if game := g.gameState(); game != nil && game.Paused {
		g.pauseUI.Draw(screen)
	}
	if g.debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.2f  mirrored: %d", ebiten.ActualFPS(), g.mirror.Len()))
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.spec.Screen.Width, g.spec.Screen.Height
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	if g.mirror != nil {
		g.mirror.Close()
	}
}
