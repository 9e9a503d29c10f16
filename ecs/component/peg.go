package component

type PegState uint8

const (
	PegActive PegState = iota
	PegHit
)

type Peg struct {
	Target bool
	Round  bool
	State  PegState
}

var PegComponent = NewComponent[Peg]()
