package entity

import (
	"github.com/milk9111/catcollector/ecs"
	"github.com/milk9111/catcollector/ecs/component"
	"github.com/milk9111/catcollector/prefabs"
)

// NewArena creates the singleton entity that carries the play field size.
func NewArena(w *ecs.World, spec prefabs.ArenaSpec) (ecs.Entity, error) {
	return build(w, "arena",
		with(component.ArenaBoundsComponent.Kind(), &component.ArenaBounds{Width: spec.Width, Height: spec.Height}),
	)
}
