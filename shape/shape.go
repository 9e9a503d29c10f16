// Package shape describes collider geometry independently of any physics space so the
// same description can be built into the live space and the shadow space.
package shape

import (
	"errors"
	"math"

	"github.com/jakecoffman/cp"
)

var ErrDegenerate = errors.New("shape: degenerate geometry")

// DefaultSubdivisions is the vertex count used when a ball has to be turned into a
// polygon by a non-uniform scale.
const DefaultSubdivisions = 10

// Shape is collider geometry centred on its body origin.
type Shape interface {
	// Scale multiplies the geometry component-wise by (sx, sy). Curved shapes that cannot
	// stay curved under the scale are tessellated into subdivisions vertices.
	Scale(sx, sy float64, subdivisions int) (Shape, error)
	// New builds the Chipmunk shape attached to body.
	New(body *cp.Body) *cp.Shape
	Validate() error
}

type Ball struct {
	Radius float64
}

type Cuboid struct {
	HalfWidth  float64
	HalfHeight float64
}

// Polygon is a convex hull; Radius rounds its corners.
type Polygon struct {
	Verts  []cp.Vector
	Radius float64
}

type Segment struct {
	A      cp.Vector
	B      cp.Vector
	Radius float64
}

func (b Ball) Validate() error {
	if !finitePositive(b.Radius) {
		return ErrDegenerate
	}
	return nil
}

func (b Ball) Scale(sx, sy float64, subdivisions int) (Shape, error) {
	if err := checkFactors(sx, sy); err != nil {
		return nil, err
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	ax, ay := math.Abs(sx), math.Abs(sy)
	if ax == ay {
		return Ball{Radius: b.Radius * ax}, nil
	}
	if subdivisions < 3 {
		subdivisions = DefaultSubdivisions
	}
	verts := make([]cp.Vector, subdivisions)
	step := 2 * math.Pi / float64(subdivisions)
	for i := range verts {
		a := float64(i) * step
		verts[i] = cp.Vector{X: math.Cos(a) * b.Radius * ax, Y: math.Sin(a) * b.Radius * ay}
	}
	return Polygon{Verts: verts}, nil
}

func (b Ball) New(body *cp.Body) *cp.Shape {
	return cp.NewCircle(body, b.Radius, cp.Vector{})
}

func (c Cuboid) Validate() error {
	if !finitePositive(c.HalfWidth) || !finitePositive(c.HalfHeight) {
		return ErrDegenerate
	}
	return nil
}

func (c Cuboid) Scale(sx, sy float64, _ int) (Shape, error) {
	if err := checkFactors(sx, sy); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return Cuboid{HalfWidth: c.HalfWidth * math.Abs(sx), HalfHeight: c.HalfHeight * math.Abs(sy)}, nil
}

func (c Cuboid) New(body *cp.Body) *cp.Shape {
	return cp.NewBox(body, c.HalfWidth*2, c.HalfHeight*2, 0)
}

func (p Polygon) Validate() error {
	if len(p.Verts) < 3 || p.Radius < 0 || math.IsNaN(p.Radius) {
		return ErrDegenerate
	}
	if math.Abs(signedArea(p.Verts)) == 0 {
		return ErrDegenerate
	}
	return nil
}

func (p Polygon) Scale(sx, sy float64, _ int) (Shape, error) {
	if err := checkFactors(sx, sy); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	verts := make([]cp.Vector, len(p.Verts))
	for i, v := range p.Verts {
		verts[i] = cp.Vector{X: v.X * sx, Y: v.Y * sy}
	}
	return Polygon{Verts: verts, Radius: p.Radius * math.Min(math.Abs(sx), math.Abs(sy))}, nil
}

func (p Polygon) New(body *cp.Body) *cp.Shape {
	verts := append([]cp.Vector(nil), p.Verts...)
	// Chipmunk wants counter-clockwise winding.
	if signedArea(verts) < 0 {
		for i, j := 0, len(verts)-1; i < j; i, j = i+1, j-1 {
			verts[i], verts[j] = verts[j], verts[i]
		}
	}
	return cp.NewPolyShapeRaw(body, len(verts), verts, p.Radius)
}

func (s Segment) Validate() error {
	if s.A == s.B || s.Radius < 0 || math.IsNaN(s.Radius) {
		return ErrDegenerate
	}
	return nil
}

func (s Segment) Scale(sx, sy float64, _ int) (Shape, error) {
	if err := checkFactors(sx, sy); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return Segment{
		A:      cp.Vector{X: s.A.X * sx, Y: s.A.Y * sy},
		B:      cp.Vector{X: s.B.X * sx, Y: s.B.Y * sy},
		Radius: s.Radius * math.Min(math.Abs(sx), math.Abs(sy)),
	}, nil
}

func (s Segment) New(body *cp.Body) *cp.Shape {
	return cp.NewSegment(body, s.A, s.B, s.Radius)
}

// Equal reports whether a and b describe the same geometry.
func Equal(a, b Shape) bool {
	switch av := a.(type) {
	case Ball:
		bv, ok := b.(Ball)
		return ok && av == bv
	case Cuboid:
		bv, ok := b.(Cuboid)
		return ok && av == bv
	case Segment:
		bv, ok := b.(Segment)
		return ok && av == bv
	case Polygon:
		bv, ok := b.(Polygon)
		if !ok || av.Radius != bv.Radius || len(av.Verts) != len(bv.Verts) {
			return false
		}
		for i := range av.Verts {
			if av.Verts[i] != bv.Verts[i] {
				return false
			}
		}
		return true
	}
	return false
}

// Extents returns the half size of the shape's bounding box around its origin.
func Extents(s Shape) (float64, float64) {
	switch v := s.(type) {
	case Ball:
		return v.Radius, v.Radius
	case Cuboid:
		return v.HalfWidth, v.HalfHeight
	case Segment:
		return math.Max(math.Abs(v.A.X), math.Abs(v.B.X)) + v.Radius, math.Max(math.Abs(v.A.Y), math.Abs(v.B.Y)) + v.Radius
	case Polygon:
		var hx, hy float64
		for _, p := range v.Verts {
			hx = math.Max(hx, math.Abs(p.X))
			hy = math.Max(hy, math.Abs(p.Y))
		}
		return hx + v.Radius, hy + v.Radius
	}
	return 0, 0
}

func checkFactors(sx, sy float64) error {
	if sx == 0 || sy == 0 || math.IsNaN(sx) || math.IsNaN(sy) || math.IsInf(sx, 0) || math.IsInf(sy, 0) {
		return ErrDegenerate
	}
	return nil
}

func finitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func signedArea(verts []cp.Vector) float64 {
	var area float64
	for i := range verts {
		a := verts[i]
		b := verts[(i+1)%len(verts)]
		area += a.X*b.Y - b.X*a.Y
	}
	return area / 2
}
