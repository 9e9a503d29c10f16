package component

// BallTag marks a live launched ball. Balls are never mirrored as obstacles.
type BallTag struct{}

var BallTagComponent = NewComponent[BallTag]()

type WallTag struct{}

var WallTagComponent = NewComponent[WallTag]()
