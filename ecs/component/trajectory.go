package component

import "github.com/jakecoffman/cp"

// TrajectoryPreview is the predicted flight of the next shot, in render units.
type TrajectoryPreview struct {
	Positions []cp.Vector
	Contacts  []cp.Vector
}

var TrajectoryPreviewComponent = NewComponent[TrajectoryPreview]()
