package component

// Input stores the directional intent sampled once per update step.
type Input struct {
	Up    bool
	Down  bool
	Left  bool
	Right bool
}

var InputComponent = NewComponent[Input]()
