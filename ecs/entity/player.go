package entity

import (
	"github.com/milk9111/catcollector/ecs"
	"github.com/milk9111/catcollector/ecs/component"
	"github.com/milk9111/catcollector/prefabs"
)

func NewPlayer(w *ecs.World, spec prefabs.PlayerSpec) (ecs.Entity, error) {
	return build(w, "player",
		with(component.PlayerTagComponent.Kind(), &component.PlayerTag{}),
		with(component.PlayerComponent.Kind(), &component.Player{Speed: spec.Speed}),
		with(component.InputComponent.Kind(), &component.Input{}),
		with(component.TransformComponent.Kind(), &component.Transform{X: spec.X, Y: spec.Y}),
		with(component.BodyComponent.Kind(), &component.Body{Width: spec.Width, Height: spec.Height}),
		with(component.SpriteComponent.Kind(), &component.Sprite{Key: spec.Sprite}),
		with(component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: component.LayerPlayer}),
	)
}
