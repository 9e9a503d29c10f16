package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/pegshot/ecs"
	"github.com/milk9111/pegshot/ecs/component"
	"github.com/milk9111/pegshot/shape"
	"github.com/milk9111/pegshot/trajectory"
)

type eventRecorder struct {
	hits []ecs.CollisionEvent
}

func (r *eventRecorder) Update(w *ecs.World) {
	for _, evt := range w.Events().Of(ecs.EventBallHit) {
		if hit, ok := evt.Data.(ecs.CollisionEvent); ok {
			r.hits = append(r.hits, hit)
		}
	}
}

func newTestPhysics(t *testing.T, gravity cp.Vector) *PhysicsSystem {
	t.Helper()
	ps, err := NewPhysicsSystem(trajectory.Config{Scale: 100, Gravity: gravity, Subdivisions: 10})
	if err != nil {
		t.Fatalf("new physics: %v", err)
	}
	return ps
}

func spawnBody(t *testing.T, w *ecs.World, kind component.BodyKind, pos, vel cp.Vector, s shape.Shape) ecs.Entity {
	t.Helper()
	e := spawnCollider(t, w, pos, s)
	mustAdd(t, w, e, component.RigidBodyComponent.Kind(), &component.RigidBody{Kind: kind, Mass: 1, Velocity: vel})
	return e
}

func spawnBall(t *testing.T, w *ecs.World, pos, vel cp.Vector) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	mustAdd(t, w, e, component.BallTagComponent.Kind(), &component.BallTag{})
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{X: pos.X, Y: pos.Y})
	col := testBall().Collider
	mustAdd(t, w, e, component.ColliderComponent.Kind(), &col)
	mustAdd(t, w, e, component.RigidBodyComponent.Kind(), &component.RigidBody{Kind: component.BodyDynamic, Mass: 1, Velocity: vel})
	return e
}

func TestPhysicsSystemEmitsBallHit(t *testing.T) {
	w := ecs.NewWorld()
	ps := newTestPhysics(t, cp.Vector{})
	rec := &eventRecorder{}
	w.AddSystem(ps)
	w.AddSystem(rec)

	peg := spawnBody(t, w, component.BodyFixed, cp.Vector{X: 0, Y: 100}, cp.Vector{}, shape.Ball{Radius: 10})
	ball := spawnBall(t, w, cp.Vector{}, cp.Vector{Y: 300})

	for i := 0; i < 60 && len(rec.hits) == 0; i++ {
		w.Update()
	}
	if len(rec.hits) == 0 {
		t.Fatalf("expected a ball hit event")
	}
	if rec.hits[0].Ball != ball || rec.hits[0].Other != peg {
		t.Fatalf("unexpected hit %+v", rec.hits[0])
	}

	tr, _ := ecs.Get(w, ball, component.TransformComponent.Kind())
	if tr.Y > 100-10 {
		t.Fatalf("ball passed through the peg, at %v", tr)
	}
	if ps.BodyCount() != 2 {
		t.Fatalf("expected 2 live bodies, got %d", ps.BodyCount())
	}
}

func TestPhysicsSystemIntegratesInRenderUnits(t *testing.T) {
	w := ecs.NewWorld()
	ps := newTestPhysics(t, cp.Vector{Y: 235.44})
	w.AddSystem(ps)

	ball := spawnBall(t, w, cp.Vector{X: 10, Y: 10}, cp.Vector{X: 60})
	for i := 0; i < 60; i++ {
		w.Update()
	}
	tr, _ := ecs.Get(w, ball, component.TransformComponent.Kind())
	// One second of flight: x = 10 + 60, y = 10 + g/2 within integration error.
	if tr.X < 68 || tr.X > 72 {
		t.Fatalf("unexpected x after 1s: %v", tr.X)
	}
	if tr.Y < 10+235.44/2-5 || tr.Y > 10+235.44/2+5 {
		t.Fatalf("unexpected y after 1s: %v", tr.Y)
	}
}

func TestPhysicsSystemCleansUpDespawned(t *testing.T) {
	w := ecs.NewWorld()
	ps := newTestPhysics(t, cp.Vector{})
	w.AddSystem(ps)

	a := spawnBody(t, w, component.BodyFixed, cp.Vector{}, cp.Vector{}, shape.Ball{Radius: 5})
	spawnBody(t, w, component.BodyKinematic, cp.Vector{X: 50}, cp.Vector{}, shape.Cuboid{HalfWidth: 5, HalfHeight: 5})
	w.Update()
	if ps.BodyCount() != 2 {
		t.Fatalf("expected 2 bodies, got %d", ps.BodyCount())
	}

	ecs.DestroyEntity(w, a)
	w.Update()
	if ps.BodyCount() != 1 {
		t.Fatalf("expected 1 body after despawn, got %d", ps.BodyCount())
	}
}

func TestPhysicsSystemFollowsKinematicTransform(t *testing.T) {
	w := ecs.NewWorld()
	ps := newTestPhysics(t, cp.Vector{})
	w.AddSystem(ps)

	e := spawnBody(t, w, component.BodyKinematic, cp.Vector{}, cp.Vector{}, shape.Cuboid{HalfWidth: 5, HalfHeight: 5})
	w.Update()
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{X: 30})
	w.Update()

	rb, _ := ecs.Get(w, e, component.RigidBodyComponent.Kind())
	if rb.Body == nil {
		t.Fatalf("rigid body was not linked to a chipmunk body")
	}
	if got := rb.Body.Position().X * 100; got < 29.9 || got > 30.1 {
		t.Fatalf("kinematic body at x=%v, expected 30", got)
	}
}

func TestPhysicsSystemFixedBodyMovedIntoPath(t *testing.T) {
	w := ecs.NewWorld()
	ps := newTestPhysics(t, cp.Vector{})
	rec := &eventRecorder{}
	w.AddSystem(ps)
	w.AddSystem(rec)

	peg := spawnBody(t, w, component.BodyFixed, cp.Vector{X: 300, Y: 100}, cp.Vector{}, shape.Ball{Radius: 10})
	w.Update()
	mustAdd(t, w, peg, component.TransformComponent.Kind(), &component.Transform{X: 0, Y: 100})
	w.Update()

	spawnBall(t, w, cp.Vector{}, cp.Vector{Y: 300})
	for i := 0; i < 60 && len(rec.hits) == 0; i++ {
		w.Update()
	}
	if len(rec.hits) == 0 || rec.hits[0].Other != peg {
		t.Fatalf("expected the moved peg to be hit, got %v", rec.hits)
	}
}
