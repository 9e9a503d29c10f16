package system

import (
	"fmt"
	"log"
	"time"

	"github.com/milk9111/pegshot/ecs"
	"github.com/milk9111/pegshot/ecs/component"
	"github.com/milk9111/pegshot/trajectory"
)

// TrajectoryBall describes the ball the launcher would fire.
type TrajectoryBall struct {
	Collider component.Collider
	Mass     float64
}

// TrajectorySystem keeps the shadow world in step with live colliders and
// writes the predicted flight of the next shot onto the launcher. It must run
// after every system that moves, reshapes or despawns colliders.
type TrajectorySystem struct {
	mirror        *trajectory.World
	ball          TrajectoryBall
	maxCollisions int
	maxSteps      int

	result trajectory.Result

	debug     bool
	frames    int
	simulated time.Duration
}

func NewTrajectorySystem(mirror *trajectory.World, ball TrajectoryBall, maxCollisions, maxSteps int) *TrajectorySystem {
	return &TrajectorySystem{
		mirror:        mirror,
		ball:          ball,
		maxCollisions: maxCollisions,
		maxSteps:      maxSteps,
	}
}

// SetDebug enables a once-per-second shadow world summary in the log.
func (ts *TrajectorySystem) SetDebug(on bool) {
	ts.debug = on
}

// Validate reports the first collider, the ball's included, that the shadow
// world could not mirror.
func (ts *TrajectorySystem) Validate(w *ecs.World) error {
	if ts == nil || ts.mirror == nil {
		return nil
	}
	scaler := ts.mirror.Scaler()
	if _, err := scaler.Shape(ts.ball.Collider.Shape); err != nil {
		return fmt.Errorf("trajectory: ball shape: %w", err)
	}
	var firstErr error
	ecs.ForEach(w, component.ColliderComponent.Kind(), func(e ecs.Entity, c *component.Collider) {
		if firstErr != nil {
			return
		}
		if _, err := scaler.Shape(c.Shape); err != nil {
			firstErr = fmt.Errorf("trajectory: collider on entity %d: %w", e, err)
		}
	})
	return firstErr
}

func (ts *TrajectorySystem) World() *trajectory.World {
	return ts.mirror
}

func (ts *TrajectorySystem) Update(w *ecs.World) {
	if ts == nil || w == nil || ts.mirror == nil {
		return
	}

	ts.mirror.Apply(ts.collectChanges(w))

	launcherEntity, ok := ecs.First(w, component.LauncherComponent.Kind())
	if !ok {
		return
	}
	preview, ok := ecs.Get(w, launcherEntity, component.TrajectoryPreviewComponent.Kind())
	if !ok {
		return
	}

	game, hasGame := gameState(w)
	if hasGame && (game.Paused || game.Phase != component.PhaseLauncher) {
		preview.Positions = preview.Positions[:0]
		preview.Contacts = preview.Contacts[:0]
		return
	}

	launcher, _ := ecs.Get(w, launcherEntity, component.LauncherComponent.Kind())
	t, ok := ecs.Get(w, launcherEntity, component.TransformComponent.Kind())
	if !ok || launcher == nil {
		return
	}

	start := time.Now()
	err := ts.mirror.Simulate(trajectory.Launch{
		Origin:        t.Vector(),
		Velocity:      launcher.Velocity(),
		Shape:         ts.ball.Collider.Shape,
		Restitution:   ts.ball.Collider.Restitution,
		Friction:      ts.ball.Collider.Friction,
		Mass:          ts.ball.Mass,
		MaxCollisions: ts.maxCollisions,
		MaxSteps:      ts.maxSteps,
	}, &ts.result)
	if err != nil {
		log.Printf("trajectory: simulate: %v", err)
	}
	ts.simulated += time.Since(start)

	preview.Positions = append(preview.Positions[:0], ts.result.Positions...)
	preview.Contacts = append(preview.Contacts[:0], ts.result.Contacts...)

	ts.logStats()
}

func (ts *TrajectorySystem) logStats() {
	if !ts.debug {
		return
	}
	ts.frames++
	if float64(ts.frames)*ts.mirror.TimeStep() < 1 {
		return
	}
	log.Printf("trajectory: %d colliders, %d steps, %d contacts, %v avg simulate",
		ts.mirror.Len(), len(ts.result.Positions), len(ts.result.Contacts), ts.simulated/time.Duration(ts.frames))
	ts.frames = 0
	ts.simulated = 0
}

func (ts *TrajectorySystem) collectChanges(w *ecs.World) trajectory.Changes {
	var changes trajectory.Changes

	obstacle := func(e ecs.Entity) (*component.Collider, *component.Transform, bool) {
		if ecs.Has(w, e, component.BallTagComponent.Kind()) {
			return nil, nil, false
		}
		c, okC := ecs.Get(w, e, component.ColliderComponent.Kind())
		t, okT := ecs.Get(w, e, component.TransformComponent.Kind())
		return c, t, okC && okT
	}
	collider := func(c *component.Collider) trajectory.Collider {
		return trajectory.Collider{Shape: c.Shape, Restitution: c.Restitution, Friction: c.Friction}
	}

	for _, e := range ecs.Changed(w, component.ColliderComponent.Kind()) {
		if c, _, ok := obstacle(e); ok {
			changes.ShapeChanged = append(changes.ShapeChanged, trajectory.ShapeChange{ID: trajectory.EntityID(e), Collider: collider(c)})
		}
	}
	for _, e := range ecs.Changed(w, component.TransformComponent.Kind()) {
		if _, t, ok := obstacle(e); ok {
			changes.Moved = append(changes.Moved, trajectory.Move{ID: trajectory.EntityID(e), Position: t.Vector()})
		}
	}

	seen := make(map[ecs.Entity]struct{})
	added := append(ecs.Added(w, component.ColliderComponent.Kind()), ecs.Added(w, component.TransformComponent.Kind())...)
	for _, e := range added {
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		if c, t, ok := obstacle(e); ok {
			changes.Added = append(changes.Added, trajectory.Addition{ID: trajectory.EntityID(e), Collider: collider(c), Position: t.Vector()})
		}
	}

	clear(seen)
	removed := append(ecs.Removed(w, component.ColliderComponent.Kind()), ecs.Removed(w, component.TransformComponent.Kind())...)
	for _, e := range removed {
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		changes.Removed = append(changes.Removed, trajectory.EntityID(e))
	}

	return changes
}
