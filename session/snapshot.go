package session

import (
	"image/color"
	"sort"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/catcollector/difficulty"
	"github.com/milk9111/catcollector/ecs"
	"github.com/milk9111/catcollector/ecs/component"
)

// Sprite is a box to draw with the image registered under Key.
type Sprite struct {
	BB    cp.BB
	Key   string
	Layer int
}

type Cat struct {
	Sprite
	Category component.Category
}

type Label struct {
	Text  string
	X, Y  float64
	Alpha float64
	Color color.RGBA
}

// Snapshot is everything the presentation layer needs for one frame.
type Snapshot struct {
	State    State
	GameOver bool
	SpeedUp  bool

	Arena  cp.BB
	Player Sprite
	Cats   []Cat
	Labels []Label

	Score     int
	Good      int
	Bad       int
	Chonky    int
	Remaining int
	HighScore int
	Level     difficulty.Level
}

// Snapshot captures the current frame. The speed-up banner is judged
// against now.
func (s *Session) Snapshot(now time.Time) Snapshot {
	snap := Snapshot{
		State:     s.state,
		GameOver:  s.state == GameOver,
		Arena:     cp.BB{R: s.spec.Arena.Width, T: s.spec.Arena.Height},
		Score:     s.result.Score,
		Good:      s.result.Good,
		Bad:       s.result.Bad,
		Chonky:    s.result.Chonky,
		Remaining: s.remaining,
		HighScore: s.highScore,
		Level:     s.level,
	}
	if !s.speedUpAt.IsZero() && s.state == Running {
		snap.SpeedUp = now.Sub(s.speedUpAt) < s.spec.Session.SpeedUpBanner()
	}

	if t, ok := ecs.Get(s.world, s.player, component.TransformComponent.Kind()); ok {
		if b, ok := ecs.Get(s.world, s.player, component.BodyComponent.Kind()); ok {
			snap.Player = Sprite{BB: b.BB(t), Key: spriteKey(s.world, s.player), Layer: component.LayerPlayer}
		}
	}

	ecs.ForEach3(s.world, component.CatComponent.Kind(), component.TransformComponent.Kind(), component.BodyComponent.Kind(), func(e ecs.Entity, c *component.Cat, t *component.Transform, b *component.Body) {
		layer := component.LayerCats
		if rl, ok := ecs.Get(s.world, e, component.RenderLayerComponent.Kind()); ok {
			layer = rl.Index
		}
		snap.Cats = append(snap.Cats, Cat{
			Sprite:   Sprite{BB: b.BB(t), Key: spriteKey(s.world, e), Layer: layer},
			Category: c.Category,
		})
	})
	sort.SliceStable(snap.Cats, func(i, j int) bool {
		return snap.Cats[i].Layer < snap.Cats[j].Layer
	})

	ecs.ForEach2(s.world, component.FeedbackComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, f *component.Feedback, t *component.Transform) {
		snap.Labels = append(snap.Labels, Label{Text: f.Text, X: t.X, Y: t.Y, Alpha: f.Alpha, Color: f.Color})
	})

	return snap
}

func spriteKey(w *ecs.World, e ecs.Entity) string {
	if sp, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
		return sp.Key
	}
	return ""
}
