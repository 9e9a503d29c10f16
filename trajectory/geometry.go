package trajectory

import (
	"log"
	"sort"

	"github.com/jakecoffman/cp"
)

// Add mirrors a live collider as a fixed obstacle. It does nothing when id is already
// mirrored; UpdateShape and MoveTo cover mutation.
func (w *World) Add(id EntityID, c Collider, pos cp.Vector) {
	if w == nil || w.space == nil {
		return
	}
	if _, ok := w.static[id]; ok {
		return
	}

	scaled, err := w.scaler.Shape(c.Shape)
	if err != nil {
		log.Printf("trajectory: add entity %d: %v", id, err)
		return
	}

	body := cp.NewStaticBody()
	body.SetPosition(w.scaler.ToPhysics(pos))
	w.space.AddBody(body)

	o := &obstacle{body: body, restitution: c.Restitution}
	o.shape = w.attach(scaled.New(body), c)
	w.static[id] = o
	w.byShape[o.shape] = id
}

// UpdateShape replaces the geometry and material of a mirrored collider.
func (w *World) UpdateShape(id EntityID, c Collider) {
	if w == nil || w.space == nil {
		return
	}
	o, ok := w.static[id]
	if !ok {
		return
	}

	scaled, err := w.scaler.Shape(c.Shape)
	if err != nil {
		log.Printf("trajectory: update entity %d: %v", id, err)
		return
	}

	delete(w.byShape, o.shape)
	w.space.RemoveShape(o.shape)
	o.restitution = c.Restitution
	o.shape = w.attach(scaled.New(o.body), c)
	w.byShape[o.shape] = id
}

// MoveTo sets the render-space position of a mirrored collider.
func (w *World) MoveTo(id EntityID, pos cp.Vector) {
	if w == nil || w.space == nil {
		return
	}
	o, ok := w.static[id]
	if !ok {
		return
	}
	// Static shapes only refresh their bounds on insertion.
	w.space.RemoveShape(o.shape)
	o.body.SetPosition(w.scaler.ToPhysics(pos))
	w.space.AddShape(o.shape)
}

// Remove forgets a mirrored collider. Removing an unknown id is a no-op, so it is safe
// to call more than once.
func (w *World) Remove(id EntityID) {
	if w == nil || w.space == nil {
		return
	}
	o, ok := w.static[id]
	if !ok {
		return
	}
	delete(w.byShape, o.shape)
	delete(w.static, id)
	w.space.RemoveShape(o.shape)
	w.space.RemoveBody(o.body)
}

// Has reports whether id is mirrored.
func (w *World) Has(id EntityID) bool {
	if w == nil {
		return false
	}
	_, ok := w.static[id]
	return ok
}

// Len returns the number of mirrored colliders.
func (w *World) Len() int {
	if w == nil {
		return 0
	}
	return len(w.static)
}

// Entities returns the mirrored ids in ascending order.
func (w *World) Entities() []EntityID {
	if w == nil {
		return nil
	}
	out := make([]EntityID, 0, len(w.static))
	for id := range w.static {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Position returns the render-space position of a mirrored collider.
func (w *World) Position(id EntityID) (cp.Vector, bool) {
	if w == nil {
		return cp.Vector{}, false
	}
	o, ok := w.static[id]
	if !ok {
		return cp.Vector{}, false
	}
	return w.scaler.ToRender(o.body.Position()), true
}

func (w *World) attach(s *cp.Shape, c Collider) *cp.Shape {
	s.SetCollisionType(collisionTypeObstacle)
	s.SetElasticity(c.Restitution.Coefficient)
	s.SetFriction(c.Friction)
	w.space.AddShape(s)
	return s
}
