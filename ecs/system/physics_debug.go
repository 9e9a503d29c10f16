package system

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/pegshot/ecs"
	"github.com/milk9111/pegshot/trajectory"
)

const (
	debugCircleSegments = 24
	debugDotSize        = 4
)

// PhysicsDebugSystem outlines the live space and the shadow space on top of
// the scene so drift between the two is visible.
type PhysicsDebugSystem struct {
	mirror  *trajectory.World
	physics *PhysicsSystem
	scale   float64
}

func NewPhysicsDebugSystem(mirror *trajectory.World, physics *PhysicsSystem) *PhysicsDebugSystem {
	scale := 1.0
	if mirror != nil {
		scale = mirror.Scaler().Scale()
	}
	return &PhysicsDebugSystem{mirror: mirror, physics: physics, scale: scale}
}

func (d *PhysicsDebugSystem) Update(w *ecs.World) {}

func (d *PhysicsDebugSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if d == nil || screen == nil {
		return
	}
	if live := d.physics.Space(); live != nil {
		cp.DrawSpace(live, &physicsDebugDrawer{
			screen:  screen,
			scale:   d.scale,
			outline: cp.FColor{R: 0.2, G: 0.6, B: 1, A: 0.8},
		})
	}
	d.mirror.DrawDebug(&physicsDebugDrawer{
		screen:  screen,
		scale:   d.scale,
		outline: cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9},
	})

	bodies := 0
	if d.physics != nil {
		bodies = d.physics.BodyCount()
	}
	mirrored := 0
	if d.mirror != nil {
		mirrored = d.mirror.Len()
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("live bodies: %d\nmirrored: %d", bodies, mirrored), 10, 40)
}

// physicsDebugDrawer implements cp.Drawer, mapping physics units to screen
// pixels.
type physicsDebugDrawer struct {
	screen  *ebiten.Image
	scale   float64
	outline cp.FColor
}

func (d *physicsDebugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	if radius <= 0 {
		return
	}
	d.drawCircle(pos, radius, outline)
	end := cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}
	d.drawLine(pos, end, outline)
}

func (d *physicsDebugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
}

func (d *physicsDebugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, outline)
	if radius > 0 {
		d.drawCircle(a, radius, outline)
		d.drawCircle(b, radius, outline)
	}
}

func (d *physicsDebugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	d.drawPolygon(verts[:count], outline)
}

func (d *physicsDebugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	if size <= 0 {
		size = debugDotSize
	}
	half := size / 2 / d.scale
	d.drawLine(cp.Vector{X: pos.X - half, Y: pos.Y}, cp.Vector{X: pos.X + half, Y: pos.Y}, fill)
	d.drawLine(cp.Vector{X: pos.X, Y: pos.Y - half}, cp.Vector{X: pos.X, Y: pos.Y + half}, fill)
}

func (d *physicsDebugDrawer) Flags() uint {
	return cp.DRAW_SHAPES | cp.DRAW_COLLISION_POINTS
}

func (d *physicsDebugDrawer) OutlineColor() cp.FColor {
	return d.outline
}

func (d *physicsDebugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	return cp.FColor{R: d.outline.R, G: d.outline.G, B: d.outline.B, A: 0.3}
}

func (d *physicsDebugDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
}

func (d *physicsDebugDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) Data() interface{} {
	return nil
}

func (d *physicsDebugDrawer) drawLine(a, b cp.Vector, c cp.FColor) {
	x1, y1 := d.toScreen(a)
	x2, y2 := d.toScreen(b)
	vector.StrokeLine(d.screen, x1, y1, x2, y2, 1, toNRGBA(c), true)
}

func (d *physicsDebugDrawer) drawPolygon(verts []cp.Vector, c cp.FColor) {
	for i := range verts {
		d.drawLine(verts[i], verts[(i+1)%len(verts)], c)
	}
}

func (d *physicsDebugDrawer) drawCircle(center cp.Vector, radius float64, c cp.FColor) {
	points := make([]cp.Vector, 0, debugCircleSegments)
	for i := 0; i < debugCircleSegments; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(debugCircleSegments))
		points = append(points, cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius})
	}
	d.drawPolygon(points, c)
}

func (d *physicsDebugDrawer) toScreen(v cp.Vector) (float32, float32) {
	return float32(v.X * d.scale), float32(v.Y * d.scale)
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
