package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/pegshot/ecs"
	"github.com/milk9111/pegshot/ecs/component"
	"github.com/milk9111/pegshot/shape"
	"github.com/milk9111/pegshot/trajectory"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypeBall
)

// PhysicsSystem owns the live Chipmunk space. Bodies live in physics units;
// transforms stay in render units.
type PhysicsSystem struct {
	space  *cp.Space
	scaler trajectory.Scaler
	dt     float64

	entities map[ecs.Entity]*bodyInfo
	shapes   map[*cp.Shape]ecs.Entity
	hits     []ecs.CollisionEvent

	// ballRestitution is baked into every obstacle, and ball shapes get 1,
	// so Chipmunk's product rule yields the combined coefficient.
	ballRestitution shape.Restitution
}

type bodyInfo struct {
	body        *cp.Body
	shape       *cp.Shape
	kind        component.BodyKind
	ball        bool
	geometry    shape.Shape
	restitution shape.Restitution
	friction    float64
}

func NewPhysicsSystem(cfg trajectory.Config) (*PhysicsSystem, error) {
	scaler, err := trajectory.NewScaler(cfg.Scale, cfg.Subdivisions)
	if err != nil {
		return nil, err
	}
	dt := cfg.TimeStep
	if !(dt > 0) {
		dt = trajectory.DefaultTimeStep
	}
	iterations := cfg.Iterations
	if iterations == 0 {
		iterations = trajectory.DefaultIterations
	}

	space := cp.NewSpace()
	space.Iterations = iterations
	space.SetGravity(scaler.ToPhysics(cfg.Gravity))
	if cfg.CollisionSlop > 0 {
		space.SetCollisionSlop(cfg.CollisionSlop)
	} else {
		space.SetCollisionSlop(trajectory.DefaultCollisionSlop)
	}

	ps := &PhysicsSystem{
		space:    space,
		scaler:   scaler,
		dt:       dt,
		entities: make(map[ecs.Entity]*bodyInfo),
		shapes:   make(map[*cp.Shape]ecs.Entity),
	}
	ps.setupHandlers()
	return ps, nil
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) TimeStep() float64 {
	return ps.dt
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil || ps.space == nil {
		return
	}
	if game, ok := gameState(w); ok && game.Paused {
		return
	}

	ps.cleanupEntities(w)
	ps.syncEntities(w)

	ps.hits = ps.hits[:0]
	ps.space.Step(ps.dt)

	ps.syncTransforms(w)
	for _, hit := range ps.hits {
		w.Events().Push(ecs.Event{Type: ecs.EventBallHit, Data: hit})
	}
}

func (ps *PhysicsSystem) setupHandlers() {
	handler := ps.space.NewCollisionHandler(collisionTypeBall, collisionTypeSolid)
	handler.UserData = ps
	handler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return true
		}
		a, b := arb.Shapes()
		ball, okA := sys.shapes[a]
		other, okB := sys.shapes[b]
		if !okA || !okB {
			return true
		}
		sys.hits = append(sys.hits, ecs.CollisionEvent{Ball: ball, Other: other})
		return true
	}
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ecs.ForEach3(w, component.RigidBodyComponent.Kind(), component.ColliderComponent.Kind(), component.TransformComponent.Kind(),
		func(e ecs.Entity, rb *component.RigidBody, col *component.Collider, t *component.Transform) {
			info := ps.entities[e]
			if info == nil {
				info = ps.createBodyInfo(w, e, rb, col, t)
				if info == nil {
					return
				}
				ps.entities[e] = info
				rb.Body = info.body
				rb.Shape = info.shape
				if err := ecs.Add(w, e, component.RigidBodyComponent.Kind(), rb); err != nil {
					panic("physics system: update rigid body: " + err.Error())
				}
				return
			}

			if !shape.Equal(info.geometry, col.Shape) || info.restitution != col.Restitution || info.friction != col.Friction {
				ps.rebuildShape(e, info, col)
				rb.Shape = info.shape
			}

			target := ps.scaler.ToPhysics(t.Vector())
			switch info.kind {
			case component.BodyFixed:
				if info.body.Position() != target {
					ps.space.RemoveShape(info.shape)
					info.body.SetPosition(target)
					ps.space.AddShape(info.shape)
				}
			case component.BodyKinematic:
				info.body.SetVelocityVector(target.Sub(info.body.Position()).Mult(1 / ps.dt))
			}
		})
}

func (ps *PhysicsSystem) createBodyInfo(w *ecs.World, e ecs.Entity, rb *component.RigidBody, col *component.Collider, t *component.Transform) *bodyInfo {
	scaled, err := ps.scaler.Shape(col.Shape)
	if err != nil {
		return nil
	}

	info := &bodyInfo{
		kind:        rb.Kind,
		ball:        ecs.Has(w, e, component.BallTagComponent.Kind()),
		geometry:    col.Shape,
		restitution: col.Restitution,
		friction:    col.Friction,
	}

	switch rb.Kind {
	case component.BodyDynamic:
		mass := rb.Mass
		if mass <= 0 {
			mass = 1
		}
		info.body = cp.NewBody(mass, momentFor(scaled, mass))
		info.body.SetVelocityVector(ps.scaler.ToPhysics(rb.Velocity))
	case component.BodyKinematic:
		info.body = cp.NewKinematicBody()
	default:
		info.body = cp.NewStaticBody()
	}
	info.body.SetPosition(ps.scaler.ToPhysics(t.Vector()))
	ps.space.AddBody(info.body)

	info.shape = ps.attach(e, info, scaled)
	if info.ball {
		ps.ballRestitution = col.Restitution
		ps.applyRestitution()
	}
	return info
}

func (ps *PhysicsSystem) rebuildShape(e ecs.Entity, info *bodyInfo, col *component.Collider) {
	scaled, err := ps.scaler.Shape(col.Shape)
	if err != nil {
		return
	}
	ps.space.RemoveShape(info.shape)
	delete(ps.shapes, info.shape)
	info.geometry = col.Shape
	info.restitution = col.Restitution
	info.friction = col.Friction
	info.shape = ps.attach(e, info, scaled)
}

func (ps *PhysicsSystem) attach(e ecs.Entity, info *bodyInfo, scaled shape.Shape) *cp.Shape {
	s := scaled.New(info.body)
	s.SetFriction(info.friction)
	if info.ball {
		s.SetCollisionType(collisionTypeBall)
		s.SetElasticity(1)
	} else {
		s.SetCollisionType(collisionTypeSolid)
		s.SetElasticity(ps.ballRestitution.Pair(info.restitution))
	}
	ps.space.AddShape(s)
	ps.shapes[s] = e
	return s
}

func (ps *PhysicsSystem) applyRestitution() {
	for _, info := range ps.entities {
		if !info.ball {
			info.shape.SetElasticity(ps.ballRestitution.Pair(info.restitution))
		}
	}
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	for e, info := range ps.entities {
		if info.kind != component.BodyDynamic {
			continue
		}
		pos := ps.scaler.ToRender(info.body.Position())
		if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: pos.X, Y: pos.Y}); err != nil {
			panic("physics system: update transform: " + err.Error())
		}
		if rb, ok := ecs.Get(w, e, component.RigidBodyComponent.Kind()); ok {
			rb.Velocity = ps.scaler.ToRender(info.body.Velocity())
		}
	}
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		keep := ecs.IsAlive(w, e) &&
			ecs.Has(w, e, component.RigidBodyComponent.Kind()) &&
			ecs.Has(w, e, component.ColliderComponent.Kind())
		if keep {
			continue
		}
		ps.space.RemoveShape(info.shape)
		ps.space.RemoveBody(info.body)
		delete(ps.shapes, info.shape)
		delete(ps.entities, e)
	}
}

// BodyCount reports the number of live bodies, for debug output.
func (ps *PhysicsSystem) BodyCount() int {
	return len(ps.entities)
}

func momentFor(s shape.Shape, mass float64) float64 {
	if b, ok := s.(shape.Ball); ok {
		return cp.MomentForCircle(mass, 0, b.Radius, cp.Vector{})
	}
	hx, hy := shape.Extents(s)
	return cp.MomentForBox(mass, hx*2, hy*2)
}
