package trajectory

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/pegshot/shape"
)

// Scaler converts between render units (pixels) and physics units.
type Scaler struct {
	scale        float64
	subdivisions int
}

// NewScaler returns a scaler for scale render units per physics unit. Shapes that need
// tessellation while scaling use subdivisions vertices.
func NewScaler(scale float64, subdivisions int) (Scaler, error) {
	if !(scale > 0) || math.IsInf(scale, 0) {
		return Scaler{}, fmt.Errorf("%w: %v", ErrInvalidScale, scale)
	}
	if subdivisions < 3 {
		subdivisions = shape.DefaultSubdivisions
	}
	return Scaler{scale: scale, subdivisions: subdivisions}, nil
}

func (s Scaler) Scale() float64 {
	return s.scale
}

func (s Scaler) Subdivisions() int {
	return s.subdivisions
}

func (s Scaler) ToPhysics(v cp.Vector) cp.Vector {
	return cp.Vector{X: v.X / s.scale, Y: v.Y / s.scale}
}

func (s Scaler) ToRender(v cp.Vector) cp.Vector {
	return cp.Vector{X: v.X * s.scale, Y: v.Y * s.scale}
}

// Shape rescales render-space geometry into physics space.
func (s Scaler) Shape(sh shape.Shape) (shape.Shape, error) {
	if sh == nil {
		return nil, shape.ErrDegenerate
	}
	inv := 1 / s.scale
	return sh.Scale(inv, inv, s.subdivisions)
}
