package main

import (
	"fmt"
	"image/color"
	"log"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/catcollector/clock"
	"github.com/milk9111/catcollector/ecs/render"
	"github.com/milk9111/catcollector/prefabs"
	"github.com/milk9111/catcollector/score"
	"github.com/milk9111/catcollector/session"
	"golang.design/x/clipboard"
)

var hudPlaceholder = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}

// GameConfig carries everything main resolves before the window opens.
type GameConfig struct {
	Spec      *prefabs.GameSpec
	Sink      score.Sink
	HighScore int
	Debug     bool
	Volume    float64
	Watch     bool
}

type Game struct {
	sess     *session.Session
	clock    clock.Clock
	renderer *render.Renderer
	menu     *Menu
	sounds   *Sounds
	watcher  *prefabs.Watcher

	width, height int
	started       bool
	clipboardOK   bool
}

func NewGame(cfg GameConfig) (*Game, error) {
	sess, err := session.New(session.Config{
		Spec:      cfg.Spec,
		Sink:      cfg.Sink,
		HighScore: cfg.HighScore,
	})
	if err != nil {
		return nil, err
	}

	g := &Game{
		sess:     sess,
		clock:    clock.Real{},
		renderer: render.NewRenderer(cfg.Debug),
		sounds:   LoadSounds(cfg.Volume),
		width:    int(cfg.Spec.Arena.Width),
		height:   int(cfg.Spec.Arena.Height),
	}
	g.menu = NewMenuUI(g, g.width, g.height)

	keys := []string{cfg.Spec.Player.Sprite}
	for _, c := range cfg.Spec.Cats.Categories {
		keys = append(keys, c.Sprite)
	}
	render.Preload(hudPlaceholder, keys...)

	if cfg.Watch {
		w, err := prefabs.NewWatcher()
		if err != nil {
			log.Printf("prefabs: hot reload disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard: %v", err)
	} else {
		g.clipboardOK = true
	}
	return g, nil
}

func (g *Game) start() {
	if g.started {
		return
	}
	g.restart()
}

func (g *Game) restart() {
	if err := g.sess.Restart(g.clock.Now()); err != nil {
		log.Printf("session: restart: %v", err)
		return
	}
	g.started = true
	g.menu.Sync(true)
}

func (g *Game) Update() error {
	g.pollTuning()

	if g.sess.State() != session.Running {
		g.menu.UI.Update()
		if restartPressed() {
			g.restart()
		}
	}

	g.sess.Update(g.clock.Now(), readInput())
	for _, evt := range g.sess.Events() {
		g.sounds.HandleEvent(evt)
		if evt.Type == session.EventGameOver {
			if res, ok := evt.Data.(score.Result); ok {
				g.copyResult(res)
			}
		}
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.sess.Snapshot(g.clock.Now()))
	if g.sess.State() != session.Running {
		g.menu.UI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

// Close releases the tuning watcher.
func (g *Game) Close() {
	g.sess.Stop()
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			log.Printf("prefabs: close watcher: %v", err)
		}
	}
}

// pollTuning drains the watcher without blocking. A valid new tuning file is
// installed at the next restart.
func (g *Game) pollTuning() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path := <-g.watcher.Events:
			if !prefabs.IsTuningFile(path) {
				continue
			}
			spec, err := prefabs.LoadGameSpec()
			if err != nil {
				log.Printf("prefabs: reload after %s: %v", filepath.Base(path), err)
				continue
			}
			if err := g.sess.Apply(spec); err != nil {
				log.Printf("prefabs: reload after %s: %v", filepath.Base(path), err)
				continue
			}
			stamp := "embedded"
			if mt, ok := prefabs.ModTime(prefabs.GameFile); ok {
				stamp = mt.Format(time.TimeOnly)
			}
			log.Printf("prefabs: %s changed (%s %s); applies on next restart", filepath.Base(path), prefabs.GameFile, stamp)
		case err := <-g.watcher.Errors:
			log.Printf("prefabs: watcher: %v", err)
		default:
			return
		}
	}
}

func (g *Game) copyResult(r score.Result) {
	if !g.clipboardOK {
		return
	}
	msg := fmt.Sprintf("Cat Collector: %d points (%d cats, %d bad cats, %d chonky cats)", r.Score, r.Good, r.Bad, r.Chonky)
	clipboard.Write(clipboard.FmtText, []byte(msg))
}
