package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/pegshot/ecs"
)

func NewLauncherAt(w *ecs.World, pos cp.Vector) (ecs.Entity, error) {
	e, err := BuildEntity(w, "launcher.yaml")
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, e, pos); err != nil {
		return 0, fmt.Errorf("launcher: override transform: %w", err)
	}
	return e, nil
}
