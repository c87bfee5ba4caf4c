// Package system holds the per-step game systems. Systems are stateless apart
// from their configuration; all game state lives in components.
package system

import (
	"github.com/milk9111/catcollector/common"
	"github.com/milk9111/catcollector/ecs"
	"github.com/milk9111/catcollector/ecs/component"
)

// PlayerMoveSystem applies the sampled Input to the player and keeps the
// player inside the arena.
type PlayerMoveSystem struct{}

func NewPlayerMoveSystem() *PlayerMoveSystem {
	return &PlayerMoveSystem{}
}

func (s *PlayerMoveSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	bounds, ok := arenaBounds(w)
	if !ok {
		return
	}

	ecs.ForEach3(w, component.PlayerComponent.Kind(), component.InputComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.Player, in *component.Input, t *component.Transform) {
		if in.Up {
			t.Y -= p.Speed
		}
		if in.Down {
			t.Y += p.Speed
		}
		if in.Left {
			t.X -= p.Speed
		}
		if in.Right {
			t.X += p.Speed
		}

		body, ok := ecs.Get(w, e, component.BodyComponent.Kind())
		if !ok {
			return
		}
		t.X = common.Clamp(t.X, 0, bounds.Width-body.Width)
		t.Y = common.Clamp(t.Y, 0, bounds.Height-body.Height)
	})
}

func arenaBounds(w *ecs.World) (*component.ArenaBounds, bool) {
	e, ok := ecs.First(w, component.ArenaBoundsComponent.Kind())
	if !ok {
		return nil, false
	}
	return ecs.Get(w, e, component.ArenaBoundsComponent.Kind())
}
