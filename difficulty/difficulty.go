// Package difficulty raises player speed and the bad-cat spawn chance as a
// session's countdown crosses fixed boundaries.
package difficulty

import (
	"fmt"
	"strings"

	"github.com/milk9111/catcollector/prefabs"
)

// Level is the tunable state a difficulty step acts on.
type Level struct {
	Speed     float64
	BadChance float64
}

// Controller computes the level after one difficulty step.
type Controller interface {
	Step(Level) Level
}

// Due reports whether a countdown value sits on a step boundary. Zero
// counts, so a 60 second session steps at 50, 40, 30, 20, 10 and 0.
func Due(remaining, every int) bool {
	return every > 0 && remaining >= 0 && remaining%every == 0
}

// Linear adds fixed increments and caps the bad chance.
type Linear struct {
	SpeedStep     float64
	BadChanceStep float64
	BadChanceMax  float64
}

func (l Linear) Step(lv Level) Level {
	return Clamp(lv, Level{
		Speed:     lv.Speed + l.SpeedStep,
		BadChance: lv.BadChance + l.BadChanceStep,
	}, l.BadChanceMax)
}

// Clamp keeps next monotonic with respect to prev and caps the bad chance at
// max.
func Clamp(prev, next Level, max float64) Level {
	if next.Speed < prev.Speed {
		next.Speed = prev.Speed
	}
	if next.BadChance < prev.BadChance {
		next.BadChance = prev.BadChance
	}
	if next.BadChance > max {
		next.BadChance = max
	}
	return next
}

// FromSpec builds the controller configured in the tuning file.
func FromSpec(spec prefabs.DifficultySpec) (Controller, error) {
	linear := Linear{
		SpeedStep:     spec.SpeedStep,
		BadChanceStep: spec.BadChanceStep,
		BadChanceMax:  spec.BadChanceMax,
	}
	if strings.TrimSpace(spec.Script) == "" {
		return linear, nil
	}

	src, err := prefabs.LoadScript(spec.Script)
	if err != nil {
		return nil, fmt.Errorf("difficulty: load script %q: %w", spec.Script, err)
	}
	ctrl, err := NewScript(spec.Script, src, linear)
	if err != nil {
		return nil, fmt.Errorf("difficulty: compile script %q: %w", spec.Script, err)
	}
	return ctrl, nil
}
