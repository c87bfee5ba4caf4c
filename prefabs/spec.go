package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// GameFile is the tuning file every session is built from.
const GameFile = "game.yaml"

// ErrInvalidSpec is returned when a tuning file decodes but cannot drive a
// session.
var ErrInvalidSpec = errors.New("prefabs: invalid spec")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type GameSpec struct {
	Name       string         `yaml:"name"`
	Arena      ArenaSpec      `yaml:"arena"`
	Session    SessionSpec    `yaml:"session"`
	Player     PlayerSpec     `yaml:"player"`
	Cats       CatsSpec       `yaml:"cats"`
	Difficulty DifficultySpec `yaml:"difficulty"`
	Feedback   FeedbackSpec   `yaml:"feedback"`
}

// LoadGameSpec loads and validates the tuning file.
func LoadGameSpec() (*GameSpec, error) {
	spec, err := LoadSpec[GameSpec](GameFile)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

type ArenaSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type SessionSpec struct {
	DurationSeconds int   `yaml:"duration_seconds"`
	CountdownMS     int   `yaml:"countdown_ms"`
	SpawnPeriodsMS  []int `yaml:"spawn_periods_ms"`
	SpeedUpBannerMS int   `yaml:"speed_up_banner_ms"`
}

func (s SessionSpec) Countdown() time.Duration {
	return time.Duration(s.CountdownMS) * time.Millisecond
}

func (s SessionSpec) SpawnPeriods() []time.Duration {
	out := make([]time.Duration, 0, len(s.SpawnPeriodsMS))
	for _, ms := range s.SpawnPeriodsMS {
		out = append(out, time.Duration(ms)*time.Millisecond)
	}
	return out
}

func (s SessionSpec) SpeedUpBanner() time.Duration {
	return time.Duration(s.SpeedUpBannerMS) * time.Millisecond
}

type PlayerSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Speed  float64 `yaml:"speed"`
	Sprite string  `yaml:"sprite"`
}

type CatsSpec struct {
	TTLMS        int                     `yaml:"ttl_ms"`
	HitboxInset  float64                 `yaml:"hitbox_inset"`
	ChonkyChance float64                 `yaml:"chonky_chance"`
	MinSpeed     float64                 `yaml:"min_speed"`
	SpeedRange   float64                 `yaml:"speed_range"`
	Categories   map[string]CategorySpec `yaml:"categories"`
}

func (c CatsSpec) TTL() time.Duration {
	return time.Duration(c.TTLMS) * time.Millisecond
}

type CategorySpec struct {
	Size   float64    `yaml:"size"`
	Points int        `yaml:"points"`
	Label  string     `yaml:"label"`
	Color  *YAMLColor `yaml:"color"`
	Sprite string     `yaml:"sprite"`
}

// RGBA returns the label color, white when unset.
func (c CategorySpec) RGBA() color.RGBA {
	if c.Color == nil || c.Color.Color == nil {
		return color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	return color.RGBAModel.Convert(c.Color.Color).(color.RGBA)
}

type DifficultySpec struct {
	EverySeconds   int     `yaml:"every_seconds"`
	SpeedStep      float64 `yaml:"speed_step"`
	BadChanceStart float64 `yaml:"bad_chance_start"`
	BadChanceStep  float64 `yaml:"bad_chance_step"`
	BadChanceMax   float64 `yaml:"bad_chance_max"`
	Script         string  `yaml:"script"`
}

type FeedbackSpec struct {
	FadePerStep  float64 `yaml:"fade_per_step"`
	DriftPerStep float64 `yaml:"drift_per_step"`
}

// CategoryNames lists the keys every tuning file must define under
// cats.categories.
var CategoryNames = []string{"normal", "bad", "chonky"}

// Validate rejects specs a session cannot run with.
func (g *GameSpec) Validate() error {
	var problems []string
	check := func(ok bool, msg string) {
		if !ok {
			problems = append(problems, msg)
		}
	}

	check(g.Arena.Width > 0 && g.Arena.Height > 0, "arena size must be positive")
	check(g.Session.DurationSeconds > 0, "session.duration_seconds must be positive")
	check(g.Session.CountdownMS > 0, "session.countdown_ms must be positive")
	check(len(g.Session.SpawnPeriodsMS) > 0, "session.spawn_periods_ms must not be empty")
	for _, ms := range g.Session.SpawnPeriodsMS {
		check(ms > 0, fmt.Sprintf("spawn period %dms must be positive", ms))
	}
	check(g.Player.Width > 0 && g.Player.Height > 0, "player size must be positive")
	check(g.Player.Width <= g.Arena.Width && g.Player.Height <= g.Arena.Height, "player must fit in the arena")
	check(g.Player.Speed >= 0, "player.speed must not be negative")
	check(g.Cats.TTLMS > 0, "cats.ttl_ms must be positive")
	check(g.Cats.ChonkyChance >= 0 && g.Cats.ChonkyChance <= 1, "cats.chonky_chance must be in [0,1]")
	check(g.Cats.MinSpeed >= 0 && g.Cats.SpeedRange >= 0, "cat speeds must not be negative")
	for _, name := range CategoryNames {
		c, ok := g.Cats.Categories[name]
		check(ok, "cats.categories."+name+" is missing")
		if ok {
			check(c.Size > 0 && c.Size <= g.Arena.Width && c.Size <= g.Arena.Height, "cats.categories."+name+".size must be positive and fit the arena")
		}
	}
	check(g.Difficulty.EverySeconds > 0, "difficulty.every_seconds must be positive")
	check(g.Difficulty.BadChanceStart >= 0 && g.Difficulty.BadChanceStart <= g.Difficulty.BadChanceMax, "difficulty.bad_chance_start must be within [0, bad_chance_max]")
	check(g.Difficulty.BadChanceMax <= 1, "difficulty.bad_chance_max must not exceed 1")
	check(g.Feedback.FadePerStep > 0, "feedback.fade_per_step must be positive")

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidSpec, strings.Join(problems, "; "))
	}
	return nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.RGBA{R: r, G: g, B: b, A: a}
	return nil
}
