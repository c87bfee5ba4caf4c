package entity

import (
	"image/color"

	"github.com/milk9111/catcollector/ecs"
	"github.com/milk9111/catcollector/ecs/component"
	"github.com/milk9111/catcollector/prefabs"
)

// NewFeedback creates a floating label at (x, y) that fades out on its own.
func NewFeedback(w *ecs.World, x, y float64, text string, c color.RGBA, spec prefabs.FeedbackSpec) (ecs.Entity, error) {
	return build(w, "feedback",
		with(component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}),
		with(component.FeedbackComponent.Kind(), &component.Feedback{
			Text:  text,
			Color: c,
			Alpha: 1,
			DY:    spec.DriftPerStep,
			Fade:  spec.FadePerStep,
		}),
		with(component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: component.LayerFeedback}),
	)
}
