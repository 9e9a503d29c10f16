package system

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/pegshot/ecs"
	"github.com/milk9111/pegshot/ecs/component"
)

func TestPathSystem(t *testing.T) {
	square := []cp.Vector{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100}}

	tests := []struct {
		name   string
		points []cp.Vector
		speed  float64
		frames int
		want   cp.Vector
	}{
		{"first_segment", square, 60, 30, cp.Vector{X: 30, Y: 0}},
		{"turns_corner", square, 60, 120, cp.Vector{X: 100, Y: 20}},
		{"loops", square, 60, 420, cp.Vector{X: 20, Y: 0}},
		{"zero_length_loop_stays", []cp.Vector{{X: 5, Y: 5}, {X: 5, Y: 5}}, 60, 10, cp.Vector{X: 5, Y: 5}},
		{"single_point_ignored", []cp.Vector{{X: 1, Y: 1}}, 60, 10, cp.Vector{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			w.AddSystem(NewPathSystem(1.0 / 60))
			e := ecs.CreateEntity(w)
			mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{})
			mustAdd(t, w, e, component.PathComponent.Kind(), &component.Path{Points: tc.points, Speed: tc.speed})

			for i := 0; i < tc.frames; i++ {
				w.Update()
			}
			tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
			if math.Abs(tr.X-tc.want.X) > 1e-6 || math.Abs(tr.Y-tc.want.Y) > 1e-6 {
				t.Fatalf("expected %v, got (%v, %v)", tc.want, tr.X, tr.Y)
			}
		})
	}
}

func TestPathSystemMarksTransformChanged(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{})
	mustAdd(t, w, e, component.PathComponent.Kind(), &component.Path{Points: []cp.Vector{{}, {X: 10}}, Speed: 60})
	w.Update()

	NewPathSystem(1.0 / 60).Update(w)
	if got := ecs.Changed(w, component.TransformComponent.Kind()); len(got) != 1 || got[0] != e {
		t.Fatalf("expected moved transform to be logged as changed, got %v", got)
	}
}
