package difficulty

import (
	"fmt"
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

const stepDispatchScript = `
__out := step(__in)
`

// Script delegates each step to a tengo function `step(level)` that returns
// a map with `speed` and `bad_chance`. A failing run falls back to the
// linear rule for that step.
type Script struct {
	name     string
	compiled *tengo.Compiled
	fallback Linear
}

func NewScript(name string, src []byte, fallback Linear) (*Script, error) {
	script := tengo.NewScript(append(append([]byte{}, src...), []byte("\n"+stepDispatchScript)...))
	_ = script.Add("__in", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, err
	}
	return &Script{name: name, compiled: compiled, fallback: fallback}, nil
}

func (s *Script) Step(lv Level) Level {
	next, err := s.run(lv)
	if err != nil {
		log.Printf("difficulty: script %s: %v; using linear step", s.name, err)
		return s.fallback.Step(lv)
	}
	return Clamp(lv, next, s.fallback.BadChanceMax)
}

func (s *Script) run(lv Level) (Level, error) {
	in := map[string]any{"speed": lv.Speed, "bad_chance": lv.BadChance}
	if err := s.compiled.Set("__in", in); err != nil {
		return Level{}, err
	}
	if err := s.compiled.Run(); err != nil {
		return Level{}, err
	}

	out := s.compiled.Get("__out").Map()
	if out == nil {
		return Level{}, fmt.Errorf("step must return a map")
	}
	speed, err := number(out, "speed")
	if err != nil {
		return Level{}, err
	}
	chance, err := number(out, "bad_chance")
	if err != nil {
		return Level{}, err
	}
	return Level{Speed: speed, BadChance: chance}, nil
}

func number(m map[string]any, key string) (float64, error) {
	switch v := m[key].(type) {
	case float64:
		return v, nil
	case int64:
		return float64(v), nil
	case nil:
		return 0, fmt.Errorf("step result is missing %q", key)
	default:
		return 0, fmt.Errorf("step result %q is %T, not a number", key, v)
	}
}
