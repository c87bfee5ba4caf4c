package difficulty

import (
	"math"
	"testing"

	"github.com/milk9111/catcollector/prefabs"
)

const eps = 1e-9

func defaultLinear() Linear {
	return Linear{SpeedStep: 0.5, BadChanceStep: 0.10, BadChanceMax: 0.70}
}

func TestDue(t *testing.T) {
	var due []int
	for remaining := 59; remaining >= 0; remaining-- {
		if Due(remaining, 10) {
			due = append(due, remaining)
		}
	}
	want := []int{50, 40, 30, 20, 10, 0}
	if len(due) != len(want) {
		t.Fatalf("expected boundaries %v, got %v", want, due)
	}
	for i := range want {
		if due[i] != want[i] {
			t.Fatalf("expected boundaries %v, got %v", want, due)
		}
	}
	if Due(-10, 10) {
		t.Fatal("negative countdown must not be a boundary")
	}
	if Due(10, 0) {
		t.Fatal("zero interval must never be due")
	}
}

func TestLinearFullSession(t *testing.T) {
	ctrl := defaultLinear()
	lv := Level{Speed: 4, BadChance: 0.25}
	var chances []float64
	for remaining := 59; remaining >= 0; remaining-- {
		if Due(remaining, 10) {
			lv = ctrl.Step(lv)
			chances = append(chances, lv.BadChance)
		}
	}

	if len(chances) != 6 {
		t.Fatalf("expected 6 steps, got %d", len(chances))
	}
	want := []float64{0.35, 0.45, 0.55, 0.65, 0.70, 0.70}
	for i := range want {
		if math.Abs(chances[i]-want[i]) > eps {
			t.Fatalf("step %d chance = %v, want %v", i, chances[i], want[i])
		}
	}
	if math.Abs(lv.Speed-7) > eps {
		t.Fatalf("expected final speed 7, got %v", lv.Speed)
	}
}

func TestClamp(t *testing.T) {
	prev := Level{Speed: 5, BadChance: 0.5}
	got := Clamp(prev, Level{Speed: 3, BadChance: 0.9}, 0.7)
	if got.Speed != 5 {
		t.Fatalf("speed must not decrease, got %v", got.Speed)
	}
	if got.BadChance != 0.7 {
		t.Fatalf("chance must be capped, got %v", got.BadChance)
	}
	got = Clamp(prev, Level{Speed: 6, BadChance: 0.1}, 0.7)
	if got.BadChance != 0.5 {
		t.Fatalf("chance must not decrease, got %v", got.BadChance)
	}
}

func TestScriptMatchesLinear(t *testing.T) {
	src, err := prefabs.LoadScript("difficulty.tengo")
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	script, err := NewScript("difficulty.tengo", src, defaultLinear())
	if err != nil {
		t.Fatalf("NewScript: %v", err)
	}

	linear := defaultLinear()
	a := Level{Speed: 4, BadChance: 0.25}
	b := a
	for i := 0; i < 8; i++ {
		a = linear.Step(a)
		b = script.Step(b)
		if math.Abs(a.Speed-b.Speed) > eps || math.Abs(a.BadChance-b.BadChance) > eps {
			t.Fatalf("step %d diverged: linear=%+v script=%+v", i, a, b)
		}
	}
}

func TestScriptResults(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want Level
	}{
		{
			name: "integer_results",
			src:  `step := func(level) { return {speed: 9, bad_chance: 0} }`,
			want: Level{Speed: 9, BadChance: 0.25},
		},
		{
			name: "result_is_clamped",
			src:  `step := func(level) { return {speed: 1.0, bad_chance: 5.0} }`,
			want: Level{Speed: 4, BadChance: 0.70},
		},
		{
			name: "missing_key_falls_back",
			src:  `step := func(level) { return {speed: 10.0} }`,
			want: Level{Speed: 4.5, BadChance: 0.35},
		},
		{
			name: "non_map_result_falls_back",
			src:  `step := func(level) { return level.speed / 0 }`,
			want: Level{Speed: 4.5, BadChance: 0.35},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := NewScript(tc.name, []byte(tc.src), defaultLinear())
			if err != nil {
				t.Fatalf("NewScript: %v", err)
			}
			got := s.Step(Level{Speed: 4, BadChance: 0.25})
			if math.Abs(got.Speed-tc.want.Speed) > eps || math.Abs(got.BadChance-tc.want.BadChance) > eps {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestNewScriptCompileError(t *testing.T) {
	if _, err := NewScript("broken", []byte(`step := func(level {`), defaultLinear()); err == nil {
		t.Fatal("expected compile error")
	}
}

func TestFromSpec(t *testing.T) {
	spec := prefabs.DifficultySpec{EverySeconds: 10, SpeedStep: 0.5, BadChanceStep: 0.1, BadChanceStart: 0.25, BadChanceMax: 0.7}

	ctrl, err := FromSpec(spec)
	if err != nil {
		t.Fatalf("FromSpec: %v", err)
	}
	if _, ok := ctrl.(Linear); !ok {
		t.Fatalf("expected Linear without a script, got %T", ctrl)
	}

	spec.Script = "scripts/difficulty.tengo"
	ctrl, err = FromSpec(spec)
	if err != nil {
		t.Fatalf("FromSpec with script: %v", err)
	}
	if _, ok := ctrl.(*Script); !ok {
		t.Fatalf("expected *Script, got %T", ctrl)
	}

	spec.Script = "scripts/missing.tengo"
	if _, err := FromSpec(spec); err == nil {
		t.Fatal("expected error for a missing script")
	}
}
