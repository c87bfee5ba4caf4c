package system

import (
	"github.com/milk9111/catcollector/ecs"
	"github.com/milk9111/catcollector/ecs/component"
)

// FeedbackSystem drifts and fades floating labels, removing them once they
// are fully transparent.
type FeedbackSystem struct{}

func NewFeedbackSystem() *FeedbackSystem {
	return &FeedbackSystem{}
}

func (s *FeedbackSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.FeedbackComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, f *component.Feedback, t *component.Transform) {
		t.Y += f.DY
		f.Alpha -= f.Fade
		if f.Alpha <= 0 {
			ecs.DestroyEntity(w, e)
		}
	})
}
