package component

type Phase uint8

const (
	PhaseLauncher Phase = iota
	PhaseBall
	PhaseCleanup
)

func (p Phase) String() string {
	switch p {
	case PhaseLauncher:
		return "aim"
	case PhaseBall:
		return "ball"
	case PhaseCleanup:
		return "cleanup"
	default:
		return "unknown"
	}
}

// Game is the round state singleton.
type Game struct {
	Phase       Phase
	Score       int
	TargetsLeft int
	Paused      bool
}

func (g Game) Won() bool {
	return g.TargetsLeft == 0
}

var GameComponent = NewComponent[Game]()
