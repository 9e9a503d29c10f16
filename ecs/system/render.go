package system

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/pegshot/ecs"
	"github.com/milk9111/pegshot/ecs/component"
	"github.com/milk9111/pegshot/shape"
	"golang.org/x/image/colornames"
)

var (
	wallColor      color.Color = colornames.Slategray
	pegColor       color.Color = colornames.Steelblue
	targetColor    color.Color = colornames.Orange
	hitPegColor    color.Color = colornames.Lightyellow
	ballColor      color.Color = colornames.White
	launcherColor  color.Color = colornames.Lightgreen
	previewColor   color.Color = color.RGBA{R: 255, G: 255, B: 255, A: 96}
	contactColor   color.Color = colornames.Red
	colliderStroke float32     = 1.5
)

// RenderSystem draws colliders, the launcher and the predicted trajectory.
type RenderSystem struct{}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

func (r *RenderSystem) Update(w *ecs.World) {}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	ecs.ForEach2(w, component.ColliderComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, c *component.Collider, t *component.Transform) {
		if ecs.Has(w, e, component.BallTagComponent.Kind()) {
			return
		}
		clr := wallColor
		if peg, ok := ecs.Get(w, e, component.PegComponent.Kind()); ok {
			switch {
			case peg.State == component.PegHit:
				clr = hitPegColor
			case peg.Target:
				clr = targetColor
			default:
				clr = pegColor
			}
		}
		drawShape(screen, t.Vector(), c.Shape, clr)
	})

	ecs.ForEach3(w, component.LauncherComponent.Kind(), component.TransformComponent.Kind(), component.TrajectoryPreviewComponent.Kind(),
		func(_ ecs.Entity, l *component.Launcher, t *component.Transform, p *component.TrajectoryPreview) {
			path := previewPath(t.Vector(), p.Positions)
			for i := 1; i < len(path); i++ {
				a, b := path[i-1], path[i]
				vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 1, previewColor, true)
			}
			for _, c := range p.Contacts {
				vector.StrokeCircle(screen, float32(c.X), float32(c.Y), 6, 2, contactColor, true)
			}

			tip := t.Vector().Add(l.Direction.Mult(24))
			vector.StrokeLine(screen, float32(t.X), float32(t.Y), float32(tip.X), float32(tip.Y), 4, launcherColor, true)
			vector.FillCircle(screen, float32(t.X), float32(t.Y), 10, launcherColor, true)
		})

	ecs.ForEach3(w, component.BallTagComponent.Kind(), component.ColliderComponent.Kind(), component.TransformComponent.Kind(),
		func(_ ecs.Entity, _ *component.BallTag, c *component.Collider, t *component.Transform) {
			drawShape(screen, t.Vector(), c.Shape, ballColor)
		})
}

// previewPath is the polyline stroked for a preview, starting at the launcher.
func previewPath(origin cp.Vector, positions []cp.Vector) []cp.Vector {
	if len(positions) == 0 {
		return nil
	}
	path := make([]cp.Vector, 0, len(positions)+1)
	path = append(path, origin)
	return append(path, positions...)
}

func drawShape(screen *ebiten.Image, pos cp.Vector, s shape.Shape, clr color.Color) {
	switch s := s.(type) {
	case shape.Ball:
		vector.FillCircle(screen, float32(pos.X), float32(pos.Y), float32(s.Radius), clr, true)
	case shape.Cuboid:
		vector.FillRect(screen, float32(pos.X-s.HalfWidth), float32(pos.Y-s.HalfHeight), float32(s.HalfWidth*2), float32(s.HalfHeight*2), clr, false)
	case shape.Polygon:
		for i := range s.Verts {
			a := pos.Add(s.Verts[i])
			b := pos.Add(s.Verts[(i+1)%len(s.Verts)])
			vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), colliderStroke, clr, true)
		}
	case shape.Segment:
		a, b := pos.Add(s.A), pos.Add(s.B)
		width := float32(s.Radius * 2)
		if width < colliderStroke {
			width = colliderStroke
		}
		vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), width, clr, true)
	}
}
