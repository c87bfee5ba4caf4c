package component

// RenderLayer is used to sort draw order deterministically.
type RenderLayer struct {
	Index int
}

const (
	LayerCats     = 10
	LayerPlayer   = 20
	LayerFeedback = 30
)

var RenderLayerComponent = NewComponent[RenderLayer]()
