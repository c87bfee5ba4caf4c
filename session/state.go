package session

// State is the lifecycle phase of a session.
type State int

const (
	Idle State = iota
	Running
	GameOver
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case GameOver:
		return "game_over"
	default:
		return "idle"
	}
}
