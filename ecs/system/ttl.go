package system

import (
	"time"

	"github.com/milk9111/catcollector/ecs"
	"github.com/milk9111/catcollector/ecs/component"
)

// TTLSystem destroys entities whose wall-clock lifetime has run out. Now
// supplies the time of the current step.
type TTLSystem struct {
	Now func() time.Time
}

func NewTTLSystem(now func() time.Time) *TTLSystem {
	return &TTLSystem{Now: now}
}

func (s *TTLSystem) Update(w *ecs.World) {
	if w == nil || s.Now == nil {
		return
	}

	now := s.Now()
	ecs.ForEach(w, component.TTLComponent.Kind(), func(e ecs.Entity, ttl *component.TTL) {
		if ttl.Expired(now) {
			ecs.DestroyEntity(w, e)
		}
	})
}
