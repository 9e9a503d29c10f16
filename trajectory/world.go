// Package trajectory predicts where a launched ball will travel by simulating it in a
// private shadow space that mirrors the live level's static colliders.
package trajectory

import (
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/pegshot/shape"
)

var (
	ErrInvalidScale  = errors.New("trajectory: invalid scale")
	ErrInvalidLaunch = errors.New("trajectory: invalid launch")
)

const (
	collisionTypeObstacle cp.CollisionType = iota + 1
	collisionTypeBall
)

const (
	DefaultTimeStep      = 1.0 / 60.0
	DefaultIterations    = 10
	DefaultCollisionSlop = 0.005
)

// EntityID identifies a live-world entity whose collider is mirrored.
type EntityID uint64

// Collider is the geometry and material of one live collider, in render units.
type Collider struct {
	Shape       shape.Shape
	Restitution shape.Restitution
	Friction    float64
}

// Config is read once when a session starts.
type Config struct {
	// Scale is render units per physics unit.
	Scale float64
	// Gravity of the live world, in render units per second squared.
	Gravity      cp.Vector
	Subdivisions int
	// TimeStep must match the live physics step so predictions line up with real motion.
	TimeStep      float64
	Iterations    uint
	CollisionSlop float64
}

// World is the shadow world. It owns its space exclusively and is only stepped from
// Simulate.
type World struct {
	scaler  Scaler
	gravity cp.Vector
	dt      float64

	space   *cp.Space
	static  map[EntityID]*obstacle
	byShape map[*cp.Shape]EntityID

	ball        *transientBall
	contacts    []stepContact
	encountered map[EntityID]struct{}
}

type obstacle struct {
	body        *cp.Body
	shape       *cp.Shape
	restitution shape.Restitution
}

type stepContact struct {
	shape  *cp.Shape
	points int
}

// NewWorld creates an empty shadow world.
func NewWorld(cfg Config) (*World, error) {
	scaler, err := NewScaler(cfg.Scale, cfg.Subdivisions)
	if err != nil {
		return nil, err
	}
	dt := cfg.TimeStep
	if !(dt > 0) {
		dt = DefaultTimeStep
	}
	iterations := cfg.Iterations
	if iterations == 0 {
		iterations = DefaultIterations
	}
	slop := cfg.CollisionSlop
	if !(slop > 0) {
		slop = DefaultCollisionSlop
	}

	space := cp.NewSpace()
	space.Iterations = iterations
	gravity := scaler.ToPhysics(cfg.Gravity)
	space.SetGravity(gravity)
	space.SetCollisionSlop(slop)

	w := &World{
		scaler:      scaler,
		gravity:     gravity,
		dt:          dt,
		space:       space,
		static:      make(map[EntityID]*obstacle),
		byShape:     make(map[*cp.Shape]EntityID),
		encountered: make(map[EntityID]struct{}),
	}
	w.setupHandlers()
	return w, nil
}

// MustNewWorld is NewWorld for configurations validated at startup.
func MustNewWorld(cfg Config) *World {
	w, err := NewWorld(cfg)
	if err != nil {
		panic(fmt.Sprintf("trajectory: new world: %v", err))
	}
	return w
}

// Close releases every collider. The world is unusable afterwards.
func (w *World) Close() {
	if w == nil || w.space == nil {
		return
	}
	for id := range w.static {
		w.Remove(id)
	}
	w.ball = nil
	w.space = nil
}

func (w *World) Scaler() Scaler {
	return w.scaler
}

// Gravity returns the shadow gravity in physics units.
func (w *World) Gravity() cp.Vector {
	return w.gravity
}

func (w *World) TimeStep() float64 {
	return w.dt
}

// DynamicBodyCount counts dynamic bodies currently in the shadow space.
func (w *World) DynamicBodyCount() int {
	if w == nil || w.space == nil {
		return 0
	}
	n := 0
	w.space.EachBody(func(b *cp.Body) {
		if b.GetType() == cp.BODY_DYNAMIC {
			n++
		}
	})
	return n
}

func (w *World) setupHandlers() {
	handler := w.space.NewCollisionHandler(collisionTypeBall, collisionTypeObstacle)
	handler.UserData = w
	handler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*World)
		if !ok || world == nil || world.ball == nil {
			return true
		}
		a, b := arb.Shapes()
		other := a
		if a == world.ball.shape {
			other = b
		}
		world.contacts = append(world.contacts, stepContact{shape: other, points: arb.Count()})
		return true
	}
}

// DrawDebug draws the mirrored geometry in physics units.
func (w *World) DrawDebug(d cp.Drawer) {
	if w == nil || w.space == nil || d == nil {
		return
	}
	cp.DrawSpace(w.space, d)
}
