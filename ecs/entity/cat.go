package entity

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/catcollector/ecs"
	"github.com/milk9111/catcollector/ecs/component"
	"github.com/milk9111/catcollector/prefabs"
)

// RollCategory draws a category in two stages: chonky first, then bad among
// the rest. A cat is never both.
func RollCategory(rng *rand.Rand, chonkyChance, badChance float64) component.Category {
	if rng.Float64() < chonkyChance {
		return component.CategoryChonky
	}
	if rng.Float64() < badChance {
		return component.CategoryBad
	}
	return component.CategoryNormal
}

func rollSpeed(rng *rand.Rand, spec prefabs.CatsSpec) float64 {
	v := rng.Float64()*spec.SpeedRange + spec.MinSpeed
	if rng.IntN(2) == 0 {
		return -v
	}
	return v
}

// SpawnCat places a random cat fully inside the arena. spawnedAt starts its
// time-to-live.
func SpawnCat(w *ecs.World, rng *rand.Rand, arena prefabs.ArenaSpec, spawnedAt time.Time, badChance float64, spec prefabs.CatsSpec) (ecs.Entity, error) {
	if rng == nil {
		return 0, fmt.Errorf("spawn cat: rng is nil")
	}

	category := RollCategory(rng, spec.ChonkyChance, badChance)
	cs, ok := spec.Categories[category.String()]
	if !ok {
		return 0, fmt.Errorf("spawn cat: no tuning for category %s", category)
	}

	size := cs.Size
	vel := cp.Vector{X: rollSpeed(rng, spec), Y: rollSpeed(rng, spec)}
	pos := component.Transform{
		X: rng.Float64() * (arena.Width - size),
		Y: rng.Float64() * (arena.Height - size),
	}

	return build(w, "cat",
		with(component.CatComponent.Kind(), &component.Cat{Category: category}),
		with(component.TransformComponent.Kind(), &pos),
		with(component.BodyComponent.Kind(), &component.Body{Width: size, Height: size}),
		with(component.VelocityComponent.Kind(), &component.Velocity{Vector: vel}),
		with(component.TTLComponent.Kind(), &component.TTL{SpawnedAt: spawnedAt, Duration: spec.TTL()}),
		with(component.SpriteComponent.Kind(), &component.Sprite{Key: cs.Sprite}),
		with(component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: component.LayerCats}),
	)
}
