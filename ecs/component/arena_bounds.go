package component

// ArenaBounds stores the size of the play field.
type ArenaBounds struct {
	Width  float64
	Height float64
}

var ArenaBoundsComponent = NewComponent[ArenaBounds]()
