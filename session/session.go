// Package session runs one play-through at a time: it owns the score, the
// countdown, the difficulty level and the timers that drive spawning, and
// hands the final tally to a score sink exactly once.
package session

import (
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/milk9111/catcollector/clock"
	"github.com/milk9111/catcollector/difficulty"
	"github.com/milk9111/catcollector/ecs"
	"github.com/milk9111/catcollector/ecs/component"
	"github.com/milk9111/catcollector/ecs/entity"
	"github.com/milk9111/catcollector/ecs/system"
	"github.com/milk9111/catcollector/prefabs"
	"github.com/milk9111/catcollector/score"
)

const (
	EventSpeedUp  = "speed_up"
	EventGameOver = "game_over"
)

// Config describes how to build a Session. Only Spec is required.
type Config struct {
	Spec *prefabs.GameSpec
	// Difficulty overrides the controller named by Spec.
	Difficulty difficulty.Controller
	Sink       score.Sink
	Rand       *rand.Rand
	// HighScore seeds the best score shown before any session ends.
	HighScore int
}

type Session struct {
	spec    *prefabs.GameSpec
	pending *prefabs.GameSpec
	ctrl    difficulty.Controller
	sink    score.Sink
	rng     *rand.Rand

	world   *ecs.World
	systems *ecs.Scheduler
	timers  *clock.Scheduler
	group   clock.Group
	player  ecs.Entity

	state     State
	gen       uint64
	now       time.Time
	result    score.Result
	remaining int
	level     difficulty.Level
	speedUpAt time.Time
	submitted int
	highScore int
}

func New(cfg Config) (*Session, error) {
	if cfg.Spec == nil {
		return nil, errors.New("session: spec is nil")
	}
	if err := cfg.Spec.Validate(); err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	ctrl := cfg.Difficulty
	if ctrl == nil {
		var err error
		if ctrl, err = difficulty.FromSpec(cfg.Spec.Difficulty); err != nil {
			return nil, fmt.Errorf("session: %w", err)
		}
	}

	sink := cfg.Sink
	if sink == nil {
		sink = score.LogSink{}
	}

	rng := cfg.Rand
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}

	return &Session{
		spec:      cfg.Spec,
		ctrl:      ctrl,
		sink:      sink,
		rng:       rng,
		world:     ecs.NewWorld(),
		timers:    clock.NewScheduler(),
		highScore: cfg.HighScore,
	}, nil
}

// Apply validates a new tuning spec and installs it at the next restart.
func (s *Session) Apply(spec *prefabs.GameSpec) error {
	if spec == nil {
		return errors.New("session: spec is nil")
	}
	if err := spec.Validate(); err != nil {
		return fmt.Errorf("session: %w", err)
	}
	s.pending = spec
	return nil
}

// Start begins the first session. It behaves exactly like Restart.
func (s *Session) Start(now time.Time) error {
	return s.Restart(now)
}

// Restart throws away the current play-through, whatever its state, and
// starts a fresh one at now.
func (s *Session) Restart(now time.Time) error {
	s.group.StopAll()
	s.gen++
	s.world.Clear()
	s.state = Idle

	if s.pending != nil {
		ctrl, err := difficulty.FromSpec(s.pending.Difficulty)
		if err != nil {
			log.Printf("session: keeping previous tuning: %v", err)
		} else {
			s.spec, s.ctrl = s.pending, ctrl
		}
		s.pending = nil
	}

	if _, err := entity.NewArena(s.world, s.spec.Arena); err != nil {
		return fmt.Errorf("session: restart: %w", err)
	}
	player, err := entity.NewPlayer(s.world, s.spec.Player)
	if err != nil {
		return fmt.Errorf("session: restart: %w", err)
	}
	s.player = player

	s.systems = ecs.NewScheduler(
		system.NewPlayerMoveSystem(),
		system.NewCatMoveSystem(),
		system.NewCollectSystem(s.spec.Cats, s.spec.Feedback, s.collect),
		system.NewFeedbackSystem(),
		system.NewTTLSystem(func() time.Time { return s.now }),
	)

	s.now = now
	s.result = score.Result{}
	s.remaining = s.spec.Session.DurationSeconds
	s.level = difficulty.Level{Speed: s.spec.Player.Speed, BadChance: s.spec.Difficulty.BadChanceStart}
	s.speedUpAt = time.Time{}
	s.submitted = 0
	s.state = Running

	gen := s.gen
	s.group.Add(s.timers.Every(now, s.spec.Session.Countdown(), func(at time.Time) { s.tick(gen, at) }))
	for _, period := range s.spec.Session.SpawnPeriods() {
		s.group.Add(s.timers.Every(now, period, func(at time.Time) { s.spawn(gen, at) }))
	}
	return nil
}

// Stop cancels every timer and clears the arena. The session can be started
// again afterwards.
func (s *Session) Stop() {
	s.group.StopAll()
	s.gen++
	s.world.Clear()
	s.state = Idle
}

// Update runs one frame at now with the sampled input. Timers due since the
// previous frame fire first. Nothing moves outside Running.
func (s *Session) Update(now time.Time, in component.Input) {
	if s.state == Idle {
		return
	}
	if now.After(s.now) {
		s.now = now
	}
	s.timers.Advance(now)
	if s.state != Running {
		return
	}

	if cur, ok := ecs.Get(s.world, s.player, component.InputComponent.Kind()); ok {
		*cur = in
	}
	s.systems.Update(s.world)
}

func (s *Session) tick(gen uint64, at time.Time) {
	if gen != s.gen || s.state != Running {
		return
	}

	if s.remaining > 0 {
		s.remaining--
		if difficulty.Due(s.remaining, s.spec.Difficulty.EverySeconds) {
			s.stepDifficulty(at)
		}
	}
	if s.remaining <= 0 {
		s.finish()
	}
}

func (s *Session) stepDifficulty(at time.Time) {
	s.level = s.ctrl.Step(s.level)
	if p, ok := ecs.Get(s.world, s.player, component.PlayerComponent.Kind()); ok {
		p.Speed = s.level.Speed
	}
	s.speedUpAt = at
	s.world.Events().Push(ecs.Event{Type: EventSpeedUp, Data: s.level})
}

func (s *Session) finish() {
	s.state = GameOver
	s.group.StopAll()

	if s.submitted > 0 {
		return
	}
	s.submitted++
	if s.result.Score > s.highScore {
		s.highScore = s.result.Score
	}
	s.world.Events().Push(ecs.Event{Type: EventGameOver, Data: s.result})
	s.sink.Submit(s.result)
}

func (s *Session) spawn(gen uint64, at time.Time) {
	if gen != s.gen || s.state != Running {
		return
	}
	if _, err := entity.SpawnCat(s.world, s.rng, s.spec.Arena, at, s.level.BadChance, s.spec.Cats); err != nil {
		log.Printf("session: spawn: %v", err)
	}
}

func (s *Session) collect(evt system.CollectEvent) {
	s.result.Score += evt.Points
	switch evt.Category {
	case component.CategoryChonky:
		s.result.Chonky++
	case component.CategoryBad:
		s.result.Bad++
	default:
		s.result.Good++
	}
}

// Events drains the events raised since the last call: collects, difficulty
// steps and game over.
func (s *Session) Events() []ecs.Event {
	return s.world.Events().Drain()
}

func (s *Session) State() State {
	return s.state
}

func (s *Session) Result() score.Result {
	return s.result
}

func (s *Session) Remaining() int {
	return s.remaining
}

func (s *Session) Level() difficulty.Level {
	return s.level
}

func (s *Session) HighScore() int {
	return s.highScore
}

func (s *Session) Spec() *prefabs.GameSpec {
	return s.spec
}
