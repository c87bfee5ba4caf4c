package session

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/milk9111/catcollector/clock"
	"github.com/milk9111/catcollector/ecs"
	"github.com/milk9111/catcollector/ecs/component"
	"github.com/milk9111/catcollector/ecs/system"
	"github.com/milk9111/catcollector/prefabs"
	"github.com/milk9111/catcollector/score"
)

const frame = 16 * time.Millisecond

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

type recordingSink struct {
	results []score.Result
}

func (r *recordingSink) Submit(res score.Result) {
	r.results = append(r.results, res)
}

func loadSpec(t *testing.T) *prefabs.GameSpec {
	t.Helper()
	spec, err := prefabs.LoadGameSpec()
	if err != nil {
		t.Fatalf("LoadGameSpec: %v", err)
	}
	return spec
}

func newSession(t *testing.T, seed uint64) (*Session, *recordingSink, *clock.Manual) {
	t.Helper()
	sink := &recordingSink{}
	s, err := New(Config{
		Spec: loadSpec(t),
		Sink: sink,
		Rand: rand.New(rand.NewPCG(seed, seed+1)),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	clk := clock.NewManual(t0)
	if err := s.Start(clk.Now()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return s, sink, clk
}

// run advances the clock frame by frame until it reaches until, feeding
// input from next and handing every drained event to onEvent.
func run(s *Session, clk *clock.Manual, until time.Time, next func() component.Input, onEvent func(ecs.Event)) {
	for clk.Now().Before(until) {
		now := clk.Advance(frame)
		if now.After(until) {
			now = until
			clk.Set(until)
		}
		var in component.Input
		if next != nil {
			in = next()
		}
		s.Update(now, in)
		for _, evt := range s.Events() {
			if onEvent != nil {
				onEvent(evt)
			}
		}
	}
}

func randomInput(rng *rand.Rand) func() component.Input {
	var cur component.Input
	return func() component.Input {
		if rng.IntN(20) == 0 {
			cur = component.Input{
				Up:    rng.IntN(2) == 0,
				Down:  rng.IntN(2) == 0,
				Left:  rng.IntN(2) == 0,
				Right: rng.IntN(2) == 0,
			}
		}
		return cur
	}
}

func playerTransform(t *testing.T, s *Session) *component.Transform {
	t.Helper()
	tr, ok := ecs.Get(s.world, s.player, component.TransformComponent.Kind())
	if !ok {
		t.Fatalf("player has no transform")
	}
	return tr
}

func TestNewRejectsBadConfig(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatalf("expected error for missing spec")
	}

	spec := *loadSpec(t)
	spec.Arena.Width = 0
	if _, err := New(Config{Spec: &spec}); !errors.Is(err, prefabs.ErrInvalidSpec) {
		t.Fatalf("err = %v, want ErrInvalidSpec", err)
	}

	spec = *loadSpec(t)
	spec.Session.SpawnPeriodsMS = nil
	if _, err := New(Config{Spec: &spec}); !errors.Is(err, prefabs.ErrInvalidSpec) {
		t.Fatalf("err = %v, want ErrInvalidSpec", err)
	}
}

func TestFullSession(t *testing.T) {
	s, sink, clk := newSession(t, 1)

	speedUps := 0
	var levels []float64
	onEvent := func(evt ecs.Event) {
		if evt.Type == EventSpeedUp {
			speedUps++
			levels = append(levels, s.Level().BadChance)
		}
	}

	run(s, clk, t0.Add(59*time.Second+500*time.Millisecond), nil, onEvent)
	if s.State() != Running || s.Remaining() != 1 {
		t.Fatalf("at 59.5s state=%s remaining=%d", s.State(), s.Remaining())
	}
	if len(sink.results) != 0 {
		t.Fatalf("submitted before game over")
	}

	run(s, clk, t0.Add(60*time.Second), nil, onEvent)
	if s.State() != GameOver || s.Remaining() != 0 {
		t.Fatalf("at 60s state=%s remaining=%d", s.State(), s.Remaining())
	}
	if len(sink.results) != 1 {
		t.Fatalf("submissions = %d, want 1", len(sink.results))
	}
	if sink.results[0] != s.Result() {
		t.Fatalf("submitted %+v, want %+v", sink.results[0], s.Result())
	}

	if speedUps != 6 {
		t.Fatalf("difficulty steps = %d, want 6", speedUps)
	}
	want := []float64{0.35, 0.45, 0.55, 0.65, 0.70, 0.70}
	for i, got := range levels {
		if math.Abs(got-want[i]) > 1e-9 {
			t.Fatalf("step %d bad chance = %v, want %v", i, got, want[i])
		}
	}
	if lv := s.Level(); lv.BadChance != 0.70 || lv.Speed != 7 {
		t.Fatalf("final level = %+v, want speed 7 chance 0.70", lv)
	}
	p, _ := ecs.Get(s.world, s.player, component.PlayerComponent.Kind())
	if p.Speed != 7 {
		t.Fatalf("player speed = %v, want 7", p.Speed)
	}

	run(s, clk, t0.Add(70*time.Second), nil, nil)
	if len(sink.results) != 1 {
		t.Fatalf("resubmitted after game over: %d", len(sink.results))
	}
	if s.State() != GameOver {
		t.Fatalf("state left GameOver without restart")
	}
}

func TestCountersMatchCollectEvents(t *testing.T) {
	for seed := uint64(1); seed <= 5; seed++ {
		s, sink, clk := newSession(t, seed)
		rng := rand.New(rand.NewPCG(seed, 99))

		collects := 0
		points := 0
		run(s, clk, t0.Add(61*time.Second), randomInput(rng), func(evt ecs.Event) {
			if evt.Type != system.EventCollect {
				return
			}
			collects++
			points += evt.Data.(system.CollectEvent).Points
		})

		res := s.Result()
		if res.Collected() != collects {
			t.Fatalf("seed %d: counters %d != collect events %d", seed, res.Collected(), collects)
		}
		if res.Score != points || res.Score != res.Good-res.Bad+2*res.Chonky {
			t.Fatalf("seed %d: score %d, points %d, counters %+v", seed, res.Score, points, res)
		}
		if len(sink.results) != 1 || sink.results[0] != res {
			t.Fatalf("seed %d: submissions %+v", seed, sink.results)
		}
	}
}

func TestForcedBadCat(t *testing.T) {
	s, _, clk := newSession(t, 2)
	pt := playerTransform(t, s)

	e := ecs.CreateEntity(s.world)
	_ = ecs.Add(s.world, e, component.CatComponent.Kind(), &component.Cat{Category: component.CategoryBad})
	_ = ecs.Add(s.world, e, component.TransformComponent.Kind(), &component.Transform{X: pt.X, Y: pt.Y})
	_ = ecs.Add(s.world, e, component.BodyComponent.Kind(), &component.Body{Width: 48, Height: 48})

	s.Update(clk.Now(), component.Input{})

	res := s.Result()
	if res.Score != -1 || res.Bad != 1 || res.Good != 0 || res.Chonky != 0 {
		t.Fatalf("result = %+v, want score -1 bad 1", res)
	}
	if ecs.IsAlive(s.world, e) {
		t.Fatalf("bad cat should be removed")
	}
	snap := s.Snapshot(clk.Now())
	if len(snap.Labels) != 1 || snap.Labels[0].Text != "-1" {
		t.Fatalf("labels = %+v", snap.Labels)
	}
}

func TestHoldRight(t *testing.T) {
	s, _, clk := newSession(t, 3)
	pt := playerTransform(t, s)
	startX := pt.X

	for i := 0; i < 10; i++ {
		s.Update(clk.Now(), component.Input{Right: true})
	}
	if pt.X != startX+40 || pt.Y != 250 {
		t.Fatalf("player at (%v,%v), want (%v,250)", pt.X, pt.Y, startX+40)
	}
}

func TestRestartResetsEverything(t *testing.T) {
	s, sink, clk := newSession(t, 4)
	rng := rand.New(rand.NewPCG(4, 4))
	run(s, clk, t0.Add(25*time.Second), randomInput(rng), nil)

	if s.Level().BadChance <= 0.25 || ecs.Count(s.world, component.CatComponent.Kind()) == 0 {
		t.Fatalf("partial session did not progress: %+v", s.Level())
	}
	s.result.Score = 17

	restartAt := clk.Now()
	if err := s.Restart(restartAt); err != nil {
		t.Fatalf("Restart: %v", err)
	}

	if s.State() != Running || s.Result() != (score.Result{}) || s.Remaining() != 60 {
		t.Fatalf("after restart state=%s result=%+v remaining=%d", s.State(), s.Result(), s.Remaining())
	}
	if lv := s.Level(); lv.Speed != 4 || lv.BadChance != 0.25 {
		t.Fatalf("level = %+v", lv)
	}
	pt := playerTransform(t, s)
	p, _ := ecs.Get(s.world, s.player, component.PlayerComponent.Kind())
	if pt.X != 400 || pt.Y != 250 || p.Speed != 4 {
		t.Fatalf("player = %+v speed %v", pt, p.Speed)
	}
	if ecs.Count(s.world, component.CatComponent.Kind()) != 0 || ecs.Count(s.world, component.FeedbackComponent.Kind()) != 0 {
		t.Fatalf("entities survived restart")
	}
	snap := s.Snapshot(restartAt)
	if snap.SpeedUp || snap.GameOver || len(snap.Cats) != 0 || len(snap.Labels) != 0 {
		t.Fatalf("snapshot after restart = %+v", snap)
	}
	if s.group.Len() != 4 || s.timers.Len() != 4 {
		t.Fatalf("timers group=%d scheduler=%d, want 4", s.group.Len(), s.timers.Len())
	}

	// Only the new countdown may tick.
	run(s, clk, restartAt.Add(time.Second), nil, nil)
	if s.Remaining() != 59 {
		t.Fatalf("remaining = %d, want 59", s.Remaining())
	}
	if len(sink.results) != 0 {
		t.Fatalf("restart must not submit")
	}
}

func TestRestartFromGameOver(t *testing.T) {
	s, sink, clk := newSession(t, 5)
	run(s, clk, t0.Add(60*time.Second), nil, nil)
	if s.State() != GameOver {
		t.Fatalf("state = %s", s.State())
	}

	if err := s.Restart(clk.Now()); err != nil {
		t.Fatal(err)
	}
	run(s, clk, clk.Now().Add(60*time.Second), nil, nil)
	if len(sink.results) != 2 {
		t.Fatalf("submissions = %d, want one per session", len(sink.results))
	}
}

func TestStaleCallbacksAreIgnored(t *testing.T) {
	s, _, clk := newSession(t, 6)
	oldGen := s.gen

	if err := s.Restart(clk.Now()); err != nil {
		t.Fatal(err)
	}
	s.tick(oldGen, clk.Now().Add(time.Second))
	s.spawn(oldGen, clk.Now().Add(time.Second))

	if s.Remaining() != 60 {
		t.Fatalf("stale countdown changed remaining to %d", s.Remaining())
	}
	if ecs.Count(s.world, component.CatComponent.Kind()) != 0 {
		t.Fatalf("stale spawn created a cat")
	}
}

func TestGameOverFreezesWorld(t *testing.T) {
	s, _, clk := newSession(t, 7)
	run(s, clk, t0.Add(60*time.Second), nil, nil)

	before := s.Snapshot(clk.Now())
	if !before.GameOver || len(before.Cats) == 0 {
		t.Fatalf("expected game over with cats on screen, got %d cats", len(before.Cats))
	}

	run(s, clk, t0.Add(80*time.Second), func() component.Input { return component.Input{Left: true} }, nil)
	after := s.Snapshot(clk.Now())

	if len(after.Cats) != len(before.Cats) || after.Player != before.Player {
		t.Fatalf("world changed during game over")
	}
	for i := range before.Cats {
		if after.Cats[i] != before.Cats[i] {
			t.Fatalf("cat %d moved during game over", i)
		}
	}
	if after.SpeedUp {
		t.Fatalf("banner shown during game over")
	}
}

func TestSpeedUpBanner(t *testing.T) {
	s, _, clk := newSession(t, 8)
	run(s, clk, t0.Add(10*time.Second), nil, nil)

	cases := []struct {
		at   time.Duration
		want bool
	}{
		{10 * time.Second, true},
		{11*time.Second + 199*time.Millisecond, true},
		{11*time.Second + 200*time.Millisecond, false},
	}
	for _, tc := range cases {
		if got := s.Snapshot(t0.Add(tc.at)).SpeedUp; got != tc.want {
			t.Fatalf("banner at %v = %v, want %v", tc.at, got, tc.want)
		}
	}
}

func TestDelayedFramesCatchUp(t *testing.T) {
	smooth, _, clkA := newSession(t, 9)
	run(smooth, clkA, t0.Add(35*time.Second), nil, nil)

	lumpy, _, _ := newSession(t, 9)
	for _, d := range []time.Duration{3 * time.Second, 17 * time.Second, 35 * time.Second} {
		lumpy.Update(t0.Add(d), component.Input{})
	}

	if smooth.Remaining() != 25 || lumpy.Remaining() != 25 {
		t.Fatalf("remaining smooth=%d lumpy=%d, want 25", smooth.Remaining(), lumpy.Remaining())
	}
	if smooth.Level() != lumpy.Level() {
		t.Fatalf("levels differ: %+v vs %+v", smooth.Level(), lumpy.Level())
	}
}

func TestStop(t *testing.T) {
	s, sink, clk := newSession(t, 10)
	run(s, clk, t0.Add(5*time.Second), nil, nil)
	s.Stop()

	if s.State() != Idle || len(ecs.Entities(s.world)) != 0 || s.timers.Len() != 0 {
		t.Fatalf("stop left state=%s entities=%d timers=%d", s.State(), len(ecs.Entities(s.world)), s.timers.Len())
	}
	run(s, clk, t0.Add(90*time.Second), nil, nil)
	if len(sink.results) != 0 || s.State() != Idle {
		t.Fatalf("stopped session kept running")
	}
}

func TestApplyAtRestart(t *testing.T) {
	s, _, clk := newSession(t, 11)

	next := *loadSpec(t)
	next.Session.DurationSeconds = 30
	if err := s.Apply(&next); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if s.Remaining() != 60 {
		t.Fatalf("tuning applied before restart")
	}
	if err := s.Restart(clk.Now()); err != nil {
		t.Fatal(err)
	}
	if s.Remaining() != 30 {
		t.Fatalf("remaining = %d, want 30", s.Remaining())
	}

	bad := next
	bad.Cats.TTLMS = 0
	if err := s.Apply(&bad); !errors.Is(err, prefabs.ErrInvalidSpec) {
		t.Fatalf("err = %v, want ErrInvalidSpec", err)
	}
}

func TestHighScore(t *testing.T) {
	sink := &recordingSink{}
	s, err := New(Config{Spec: loadSpec(t), Sink: sink, HighScore: 3, Rand: rand.New(rand.NewPCG(1, 1))})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Start(t0); err != nil {
		t.Fatal(err)
	}
	s.result.Score = 12
	s.remaining = 1
	s.tick(s.gen, t0.Add(time.Second))
	if s.HighScore() != 12 || s.Snapshot(t0).HighScore != 12 {
		t.Fatalf("high score = %d, want 12", s.HighScore())
	}

	if err := s.Restart(t0); err != nil {
		t.Fatal(err)
	}
	s.result.Score = 5
	s.remaining = 1
	s.tick(s.gen, t0.Add(time.Second))
	if s.HighScore() != 12 {
		t.Fatalf("lower score replaced high score")
	}
}
