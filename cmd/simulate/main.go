// Command simulate plays sessions headlessly on a manual clock with random
// input and reports spawn and scoring statistics.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"time"

	"github.com/milk9111/catcollector/clock"
	"github.com/milk9111/catcollector/ecs"
	"github.com/milk9111/catcollector/ecs/component"
	"github.com/milk9111/catcollector/ecs/system"
	"github.com/milk9111/catcollector/prefabs"
	"github.com/milk9111/catcollector/score"
	"github.com/milk9111/catcollector/session"
)

type stats struct {
	Sessions  int
	Collected map[component.Category]int
	Scores    []int
	SpeedUps  int
}

func simulate(spec *prefabs.GameSpec, sessions int, seed uint64, frame time.Duration) (*stats, error) {
	st := &stats{Collected: map[component.Category]int{}}
	sink := score.SinkFunc(func(r score.Result) { st.Scores = append(st.Scores, r.Score) })

	sess, err := session.New(session.Config{
		Spec: spec,
		Sink: sink,
		Rand: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	})
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewPCG(seed+1, seed+2))
	clk := clock.NewManual(time.Unix(0, 0).UTC())
	var in component.Input

	for i := 0; i < sessions; i++ {
		if err := sess.Restart(clk.Now()); err != nil {
			return nil, err
		}
		for sess.State() == session.Running {
			if rng.IntN(15) == 0 {
				in = component.Input{Up: rng.IntN(2) == 0, Down: rng.IntN(2) == 0, Left: rng.IntN(2) == 0, Right: rng.IntN(2) == 0}
			}
			sess.Update(clk.Advance(frame), in)
			for _, evt := range sess.Events() {
				tally(st, evt)
			}
		}
		st.Sessions++
	}
	sess.Stop()
	return st, nil
}

func tally(st *stats, evt ecs.Event) {
	switch evt.Type {
	case system.EventCollect:
		if c, ok := evt.Data.(system.CollectEvent); ok {
			st.Collected[c.Category]++
		}
	case session.EventSpeedUp:
		st.SpeedUps++
	}
}

func (st *stats) report(w io.Writer) {
	total := 0
	for _, n := range st.Collected {
		total += n
	}
	fmt.Fprintf(w, "sessions: %d\n", st.Sessions)
	fmt.Fprintf(w, "difficulty steps per session: %.1f\n", float64(st.SpeedUps)/float64(max(st.Sessions, 1)))
	fmt.Fprintf(w, "cats collected: %d\n", total)
	for _, c := range []component.Category{component.CategoryNormal, component.CategoryBad, component.CategoryChonky} {
		share := 0.0
		if total > 0 {
			share = float64(st.Collected[c]) / float64(total)
		}
		fmt.Fprintf(w, "  %-7s %6d  %5.1f%%\n", c, st.Collected[c], share*100)
	}
	if len(st.Scores) == 0 {
		return
	}
	lo, hi, sum := st.Scores[0], st.Scores[0], 0
	for _, s := range st.Scores {
		lo, hi = min(lo, s), max(hi, s)
		sum += s
	}
	fmt.Fprintf(w, "score: min %d  max %d  mean %.2f\n", lo, hi, float64(sum)/float64(len(st.Scores)))
}

func main() {
	sessions := flag.Int("n", 20, "number of sessions to play")
	seed := flag.Uint64("seed", 1, "random seed")
	frameMS := flag.Int("frame", 16, "frame length in milliseconds")
	tuningDir := flag.String("tuning", prefabs.Dir, "directory with game.yaml overriding the embedded tuning")
	flag.Parse()

	prefabs.Dir = *tuningDir
	spec, err := prefabs.LoadGameSpec()
	if err != nil {
		log.Fatal(err)
	}
	if *frameMS <= 0 {
		log.Fatal("simulate: -frame must be positive")
	}

	st, err := simulate(spec, *sessions, *seed, time.Duration(*frameMS)*time.Millisecond)
	if err != nil {
		log.Fatal(err)
	}
	st.report(os.Stdout)
}
