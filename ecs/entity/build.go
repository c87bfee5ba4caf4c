// Package entity builds the player, cat, feedback and arena entities from
// tuning values.
package entity

import (
	"fmt"

	"github.com/milk9111/catcollector/ecs"
	"github.com/milk9111/catcollector/ecs/component"
)

type componentAddFn func(w *ecs.World, e ecs.Entity) error

func with[T any](kind component.ComponentKind[T], value *T) componentAddFn {
	return func(w *ecs.World, e ecs.Entity) error {
		return ecs.Add(w, e, kind, value)
	}
}

// build creates an entity and attaches every component in order. A failed
// add destroys the half-built entity.
func build(w *ecs.World, name string, parts ...componentAddFn) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build %s: world is nil", name)
	}

	e := ecs.CreateEntity(w)
	for i, part := range parts {
		if err := part(w, e); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build %s: component %d: %w", name, i, err)
		}
	}
	return e, nil
}
