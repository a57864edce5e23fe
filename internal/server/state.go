package server

// State is a step of the server lifecycle.
type State int

const (
	StateStopped State = iota
	StateSchemaEnsured
	StateServing
)

func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateSchemaEnsured:
		return "schema_ensured"
	case StateServing:
		return "serving"
	default:
		return "unknown"
	}
}
