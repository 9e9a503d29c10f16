package component

// Input stores per-frame input state.
type Input struct {
	CursorX float64
	CursorY float64

	MoveLauncher bool
	Shoot        bool
	Pause        bool
}

var InputComponent = NewComponent[Input]()
