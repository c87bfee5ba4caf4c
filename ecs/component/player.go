package component

// Player holds the avatar's movement speed in units per update step.
type Player struct {
	Speed float64
}

var PlayerComponent = NewComponent[Player]()
