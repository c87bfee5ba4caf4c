package system

import (
	"log"

	"github.com/milk9111/catcollector/common"
	"github.com/milk9111/catcollector/ecs"
	"github.com/milk9111/catcollector/ecs/component"
	"github.com/milk9111/catcollector/ecs/entity"
	"github.com/milk9111/catcollector/prefabs"
)

// EventCollect is pushed once per consumed cat. Data is a CollectEvent.
const EventCollect = "collect"

type CollectEvent struct {
	Category component.Category
	Points   int
	X, Y     float64
}

// CollectSystem consumes every cat overlapping the player. The cat's box is
// shrunk by the hitbox inset before the test.
type CollectSystem struct {
	cats     prefabs.CatsSpec
	feedback prefabs.FeedbackSpec

	// OnCollect is called once per consumed cat, before the cat is destroyed.
	OnCollect func(CollectEvent)
}

func NewCollectSystem(cats prefabs.CatsSpec, feedback prefabs.FeedbackSpec, onCollect func(CollectEvent)) *CollectSystem {
	return &CollectSystem{cats: cats, feedback: feedback, OnCollect: onCollect}
}

func (s *CollectSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	pt, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}
	pb, ok := ecs.Get(w, player, component.BodyComponent.Kind())
	if !ok {
		return
	}
	playerBB := pb.BB(pt)

	ecs.ForEach3(w, component.CatComponent.Kind(), component.TransformComponent.Kind(), component.BodyComponent.Kind(), func(e ecs.Entity, cat *component.Cat, t *component.Transform, b *component.Body) {
		hit := common.InsetBB(b.BB(t), s.cats.HitboxInset)
		if !common.Overlaps(playerBB, hit) {
			return
		}

		cs := s.cats.Categories[cat.Category.String()]
		evt := CollectEvent{Category: cat.Category, Points: cs.Points, X: t.X, Y: t.Y}

		if !ecs.DestroyEntity(w, e) {
			return
		}
		if s.OnCollect != nil {
			s.OnCollect(evt)
		}
		w.Events().Push(ecs.Event{Type: EventCollect, Data: evt})

		if _, err := entity.NewFeedback(w, evt.X, evt.Y, cs.Label, cs.RGBA(), s.feedback); err != nil {
			log.Printf("collect: feedback: %v", err)
		}
	})
}
