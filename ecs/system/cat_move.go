package system

import (
	"github.com/milk9111/catcollector/ecs"
	"github.com/milk9111/catcollector/ecs/component"
)

// CatMoveSystem moves every cat by its velocity and bounces it off the arena
// walls. Each axis reflects on its own; the position is not corrected.
type CatMoveSystem struct{}

func NewCatMoveSystem() *CatMoveSystem {
	return &CatMoveSystem{}
}

func (s *CatMoveSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	bounds, ok := arenaBounds(w)
	if !ok {
		return
	}

	ecs.ForEach3(w, component.VelocityComponent.Kind(), component.TransformComponent.Kind(), component.BodyComponent.Kind(), func(_ ecs.Entity, v *component.Velocity, t *component.Transform, b *component.Body) {
		t.X += v.X
		t.Y += v.Y

		if t.X < 0 || t.X+b.Width > bounds.Width {
			v.X = -v.X
		}
		if t.Y < 0 || t.Y+b.Height > bounds.Height {
			v.Y = -v.Y
		}
	})
}
