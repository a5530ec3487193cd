package square

type State int

const (
	StateNotInitialized         State = iota
	StateInitializedNotVisible        // alive, no surface
	StateVisibleNotActive             // surface shown, no input focus
	StateVisibleActive                // surface shown and focused
)

func (s State) String() string {
	switch s {
	case StateNotInitialized:
		return "not-initialized"
	case StateInitializedNotVisible:
		return "initialized-not-visible"
	case StateVisibleNotActive:
		return "visible-not-active"
	case StateVisibleActive:
		return "visible-active"
	default:
		return "unknown"
	}
}

// Visible reports whether a surface is currently shown.
func (s State) Visible() bool {
	return s == StateVisibleNotActive || s == StateVisibleActive
}
