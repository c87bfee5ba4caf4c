package prefabs

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestLoadGameSpecDefaults(t *testing.T) {
	spec, err := LoadGameSpec()
	if err != nil {
		t.Fatalf("LoadGameSpec: %v", err)
	}

	if spec.Arena.Width != 800 || spec.Arena.Height != 500 {
		t.Fatalf("unexpected arena %+v", spec.Arena)
	}
	if spec.Session.DurationSeconds != 60 {
		t.Fatalf("expected 60 second sessions, got %d", spec.Session.DurationSeconds)
	}
	periods := spec.Session.SpawnPeriods()
	want := []time.Duration{time.Second, 1100 * time.Millisecond, 1200 * time.Millisecond}
	if len(periods) != len(want) {
		t.Fatalf("expected %d spawn periods, got %v", len(want), periods)
	}
	for i := range want {
		if periods[i] != want[i] {
			t.Fatalf("spawn period %d = %v, want %v", i, periods[i], want[i])
		}
	}
	if spec.Cats.TTL() != 5*time.Second {
		t.Fatalf("expected 5s ttl, got %v", spec.Cats.TTL())
	}
	if spec.Player.Speed != 4 || spec.Player.X != 400 || spec.Player.Y != 250 {
		t.Fatalf("unexpected player defaults %+v", spec.Player)
	}
	if spec.Difficulty.BadChanceStart != 0.25 || spec.Difficulty.BadChanceMax != 0.70 {
		t.Fatalf("unexpected difficulty %+v", spec.Difficulty)
	}

	chonky := spec.Cats.Categories["chonky"]
	if chonky.Size != 60 || chonky.Points != 2 {
		t.Fatalf("unexpected chonky spec %+v", chonky)
	}
	if got := chonky.RGBA(); got != (color.RGBA{R: 0xff, G: 0xa5, B: 0x00, A: 0xff}) {
		t.Fatalf("unexpected chonky color %v", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(g *GameSpec)
	}{
		{"zero_arena", func(g *GameSpec) { g.Arena.Width = 0 }},
		{"no_spawn_periods", func(g *GameSpec) { g.Session.SpawnPeriodsMS = nil }},
		{"negative_spawn_period", func(g *GameSpec) { g.Session.SpawnPeriodsMS = []int{1000, -1} }},
		{"missing_category", func(g *GameSpec) { delete(g.Cats.Categories, "bad") }},
		{"zero_ttl", func(g *GameSpec) { g.Cats.TTLMS = 0 }},
		{"start_above_max", func(g *GameSpec) { g.Difficulty.BadChanceStart = 0.9 }},
		{"player_too_big", func(g *GameSpec) { g.Player.Width = 1000 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			spec, err := LoadGameSpec()
			if err != nil {
				t.Fatalf("LoadGameSpec: %v", err)
			}
			cats := make(map[string]CategorySpec, len(spec.Cats.Categories))
			for k, v := range spec.Cats.Categories {
				cats[k] = v
			}
			spec.Cats.Categories = cats

			tc.mutate(spec)
			if err := spec.Validate(); !errors.Is(err, ErrInvalidSpec) {
				t.Fatalf("expected ErrInvalidSpec, got %v", err)
			}
		})
	}
}

func TestDiskOverride(t *testing.T) {
	dir := t.TempDir()
	old := Dir
	Dir = dir
	t.Cleanup(func() { Dir = old })

	data, err := PrefabsFS.ReadFile(GameFile)
	if err != nil {
		t.Fatalf("read embedded: %v", err)
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	raw["arena"] = map[string]any{"width": 640, "height": 480}
	out, err := yaml.Marshal(raw)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, GameFile), out, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	spec, err := LoadGameSpec()
	if err != nil {
		t.Fatalf("LoadGameSpec: %v", err)
	}
	if spec.Arena.Width != 640 || spec.Arena.Height != 480 {
		t.Fatalf("disk override ignored, arena=%+v", spec.Arena)
	}
	if _, ok := ModTime(GameFile); !ok {
		t.Fatal("expected ModTime for disk file")
	}
}

func TestYAMLColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{in: `"#ff0000"`, want: color.RGBA{R: 0xff, A: 0xff}},
		{in: `"00800080"`, want: color.RGBA{G: 0x80, A: 0x80}},
		{in: `"#abc"`, wantErr: true},
		{in: `[1, 2]`, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			var c YAMLColor
			err := yaml.Unmarshal([]byte(tc.in), &c)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %s", tc.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unmarshal %s: %v", tc.in, err)
			}
			if c.Color != tc.want {
				t.Fatalf("got %v, want %v", c.Color, tc.want)
			}
		})
	}
}

func TestLoadScript(t *testing.T) {
	for _, name := range []string{"difficulty.tengo", "scripts/difficulty.tengo", "prefabs/scripts/difficulty.tengo"} {
		if _, err := LoadScript(name); err != nil {
			t.Fatalf("LoadScript(%q): %v", name, err)
		}
	}
}

func TestIsTuningFile(t *testing.T) {
	for path, want := range map[string]bool{
		"prefabs/game.yaml":                true,
		"prefabs/scripts/difficulty.tengo": true,
		"prefabs/GAME.YML":                 true,
		"prefabs/notes.txt":                false,
	} {
		if got := IsTuningFile(path); got != want {
			t.Fatalf("IsTuningFile(%q) = %v, want %v", path, got, want)
		}
	}
}
