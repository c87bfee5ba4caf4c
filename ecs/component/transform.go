package component

// Transform is the top-left corner of an entity in arena coordinates.
type Transform struct {
	X float64
	Y float64
}

var TransformComponent = NewComponent[Transform]()
