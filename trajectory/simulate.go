package trajectory

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/pegshot/shape"
)

const defaultBallMass = 1.0

// Launch describes the ball to predict, in render units.
type Launch struct {
	Origin      cp.Vector
	Velocity    cp.Vector
	Shape       shape.Shape
	Restitution shape.Restitution
	Friction    float64
	Mass        float64

	// MaxCollisions stops the simulation after this many distinct obstacles were hit.
	MaxCollisions int
	// MaxSteps bounds the number of integration steps.
	MaxSteps int
}

// Result holds the samples of one simulation, in render units. Simulate overwrites it.
type Result struct {
	// Positions has one entry per integration step.
	Positions []cp.Vector
	// Contacts has the ball position at the first contact with each distinct obstacle.
	Contacts []cp.Vector
	// Hits names the obstacle of each entry in Contacts.
	Hits []EntityID
}

func (r *Result) reset() {
	r.Positions = r.Positions[:0]
	r.Contacts = r.Contacts[:0]
	r.Hits = r.Hits[:0]
}

// transientBall is reused across calls. Its shape is out of the space between calls, and
// removing a shape drops every cached arbiter that references it.
type transientBall struct {
	body     *cp.Body
	shape    *cp.Shape
	geometry shape.Shape
	mass     float64
}

// Simulate forward-integrates l through the mirrored geometry and writes the sampled
// path and first contacts into out. The ball is removed from the shadow space before
// Simulate returns, however the loop ends.
func (w *World) Simulate(l Launch, out *Result) error {
	if out == nil {
		return fmt.Errorf("%w: nil result", ErrInvalidLaunch)
	}
	out.reset()
	if w == nil || w.space == nil {
		return fmt.Errorf("%w: world closed", ErrInvalidLaunch)
	}
	if l.MaxCollisions < 1 || l.MaxSteps < 1 {
		return fmt.Errorf("%w: max collisions %d, max steps %d", ErrInvalidLaunch, l.MaxCollisions, l.MaxSteps)
	}
	scaled, err := w.scaler.Shape(l.Shape)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidLaunch, err)
	}

	ball := w.prepareBall(scaled, l)
	w.applyRestitution(l.Restitution)

	w.space.AddBody(ball.body)
	w.space.AddShape(ball.shape)
	defer func() {
		w.space.RemoveShape(ball.shape)
		w.space.RemoveBody(ball.body)
		w.contacts = w.contacts[:0]
	}()

	clear(w.encountered)
	remaining := l.MaxCollisions
	for step := 0; step < l.MaxSteps; step++ {
		w.contacts = w.contacts[:0]
		w.space.Step(w.dt)

		pos := w.scaler.ToRender(ball.body.Position())
		out.Positions = append(out.Positions, pos)

		for _, c := range w.contacts {
			// Chipmunk can keep a pair alive with no contact points; that is proximity,
			// not a hit. Genuine grazes with no points are lost too.
			if c.points == 0 {
				continue
			}
			id, ok := w.byShape[c.shape]
			if !ok {
				continue
			}
			if _, seen := w.encountered[id]; seen {
				continue
			}
			w.encountered[id] = struct{}{}
			out.Contacts = append(out.Contacts, pos)
			out.Hits = append(out.Hits, id)
			remaining--
			if remaining == 0 {
				return nil
			}
		}
	}
	return nil
}

func (w *World) prepareBall(scaled shape.Shape, l Launch) *transientBall {
	mass := l.Mass
	if !(mass > 0) {
		mass = defaultBallMass
	}
	if w.ball == nil || !shape.Equal(w.ball.geometry, scaled) || w.ball.mass != mass {
		body := cp.NewBody(mass, momentFor(scaled, mass))
		w.ball = &transientBall{
			body:     body,
			shape:    scaled.New(body),
			geometry: scaled,
			mass:     mass,
		}
		w.ball.shape.SetCollisionType(collisionTypeBall)
	}

	ball := w.ball
	ball.shape.SetFriction(l.Friction)
	ball.body.SetPosition(w.scaler.ToPhysics(l.Origin))
	ball.body.SetVelocityVector(w.scaler.ToPhysics(l.Velocity))
	ball.body.SetAngle(0)
	ball.body.SetAngularVelocity(0)
	return ball
}

// applyRestitution bakes the combined coefficient of each ball/obstacle pair into the
// obstacle. Chipmunk multiplies the two shape elasticities, so the ball side is 1.
func (w *World) applyRestitution(r shape.Restitution) {
	w.ball.shape.SetElasticity(1)
	for _, o := range w.static {
		o.shape.SetElasticity(r.Pair(o.restitution))
	}
}

func momentFor(s shape.Shape, mass float64) float64 {
	if b, ok := s.(shape.Ball); ok {
		return cp.MomentForCircle(mass, 0, b.Radius, cp.Vector{})
	}
	hx, hy := shape.Extents(s)
	m := cp.MomentForBox(mass, hx*2, hy*2)
	if math.IsNaN(m) || m <= 0 {
		return math.Inf(1)
	}
	return m
}
