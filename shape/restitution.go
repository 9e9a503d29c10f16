package shape

import (
	"fmt"
	"math"
	"strings"
)

// CombineRule decides how two restitution coefficients merge into the value used for a
// contact pair. When the two sides disagree the rule with the higher priority wins, in
// declaration order.
type CombineRule int

const (
	CombineAverage CombineRule = iota
	CombineMin
	CombineMultiply
	CombineMax
)

func (r CombineRule) String() string {
	switch r {
	case CombineAverage:
		return "average"
	case CombineMin:
		return "min"
	case CombineMultiply:
		return "multiply"
	case CombineMax:
		return "max"
	}
	return fmt.Sprintf("CombineRule(%d)", int(r))
}

func (r CombineRule) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *CombineRule) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "", "average":
		*r = CombineAverage
	case "min":
		*r = CombineMin
	case "multiply":
		*r = CombineMultiply
	case "max":
		*r = CombineMax
	default:
		return fmt.Errorf("shape: unknown combine rule %q", string(text))
	}
	return nil
}

type Restitution struct {
	Coefficient float64
	Combine     CombineRule
}

// Pair returns the restitution applied to a contact between r and other.
func (r Restitution) Pair(other Restitution) float64 {
	rule := r.Combine
	if other.Combine > rule {
		rule = other.Combine
	}
	a, b := r.Coefficient, other.Coefficient
	switch rule {
	case CombineMin:
		return math.Min(a, b)
	case CombineMultiply:
		return a * b
	case CombineMax:
		return math.Max(a, b)
	default:
		return (a + b) / 2
	}
}
