package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/catcollector/api"
	"github.com/milk9111/catcollector/prefabs"
	"github.com/milk9111/catcollector/score"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug mode")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	tuningDir := flag.String("tuning", prefabs.Dir, "directory with game.yaml and scripts/ overriding the embedded tuning")
	apiURL := flag.String("api", "", "base URL of the score service; empty plays offline")
	name := flag.String("name", "", "player name for the score service and the local leaderboard")
	password := flag.String("password", "", "password for the score service")
	leaderboardPath := flag.String("leaderboard", "leaderboard.yaml", "local leaderboard file; empty disables it")
	volume := flag.Float64("volume", 0.5, "sound volume from 0 to 1")
	watch := flag.Bool("watch", true, "reload tuning files when they change")
	flag.Parse()

	prefabs.Dir = *tuningDir
	spec, err := prefabs.LoadGameSpec()
	if err != nil {
		log.Fatal(err)
	}

	sinks := []score.Sink{score.LogSink{}}
	highScore := 0
	if *leaderboardPath != "" {
		board, err := score.OpenLeaderboard(*leaderboardPath, *name, 10)
		if err != nil {
			log.Printf("score: leaderboard disabled: %v", err)
		} else {
			sinks = append(sinks, board)
			if best, ok := board.Best(); ok {
				highScore = best
			}
		}
	}

	var remote *api.Sink
	if *apiURL != "" {
		client := api.NewClient(*apiURL, nil)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err := client.Login(ctx, *name, *password)
		cancel()
		if err != nil {
			log.Printf("score: playing offline: %v", err)
		} else {
			remote = api.NewSink(client)
			sinks = append(sinks, remote)
		}
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	game, err := NewGame(GameConfig{
		Spec:      spec,
		Sink:      score.Multi(sinks...),
		HighScore: highScore,
		Debug:     *debug,
		Volume:    *volume,
		Watch:     *watch,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	ebiten.SetWindowSize(int(spec.Arena.Width), int(spec.Arena.Height))
	ebiten.SetWindowTitle("Cat Collector")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
	if remote != nil {
		remote.Wait()
	}
}
