package entity

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/pegshot/prefabs"
)

// PegPlacement is one peg produced by a layout script.
type PegPlacement struct {
	X      float64
	Y      float64
	Round  bool
	Target bool
}

// RunLayout runs a peg layout script with the layout parameters and seed as globals
// and reads back its "pegs" array.
func RunLayout(spec prefabs.LayoutSpec, seed int64) ([]PegPlacement, error) {
	src, err := prefabs.LoadScript(spec.Script)
	if err != nil {
		return nil, fmt.Errorf("layout: load %q: %w", spec.Script, err)
	}

	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap("rand", "math"))
	globals := map[string]any{
		"columns":      spec.Columns,
		"rows":         spec.Rows,
		"origin_x":     spec.OriginX,
		"origin_y":     spec.OriginY,
		"spacing_x":    spec.SpacingX,
		"spacing_y":    spec.SpacingY,
		"target_every": spec.TargetEvery,
		"seed":         seed,
	}
	for name, v := range globals {
		if err := script.Add(name, v); err != nil {
			return nil, fmt.Errorf("layout: set %s: %w", name, err)
		}
	}

	compiled, err := script.Run()
	if err != nil {
		return nil, fmt.Errorf("layout: run %q: %w", spec.Script, err)
	}
	pegs := compiled.Get("pegs")
	if pegs == nil || pegs.IsUndefined() {
		return nil, fmt.Errorf("layout: %q does not define pegs", spec.Script)
	}

	raw := pegs.Array()
	out := make([]PegPlacement, 0, len(raw))
	for i, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("layout: peg %d must be a map", i)
		}
		x, okX := toFloat(m["x"])
		y, okY := toFloat(m["y"])
		if !okX || !okY {
			return nil, fmt.Errorf("layout: peg %d needs numeric x and y", i)
		}
		round, _ := m["round"].(bool)
		target, _ := m["target"].(bool)
		out = append(out, PegPlacement{X: x, Y: y, Round: round, Target: target})
	}
	return out, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}
