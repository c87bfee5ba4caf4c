package component

// Sprite selects the image drawn for an entity. Key is resolved by the
// render registry.
type Sprite struct {
	Key string
}

var SpriteComponent = NewComponent[Sprite]()
