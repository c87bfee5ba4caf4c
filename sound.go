package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/catcollector/assets"
	"github.com/milk9111/catcollector/ecs"
	"github.com/milk9111/catcollector/ecs/component"
	"github.com/milk9111/catcollector/ecs/system"
	"github.com/milk9111/catcollector/session"
)

var soundFiles = map[string]string{
	"collect":   "collect.wav",
	"bad":       "bad.wav",
	"chonky":    "chonky.wav",
	"speed_up":  "speed_up.wav",
	"game_over": "game_over.wav",
}

// Sounds plays short cues for session events.
type Sounds struct {
	players map[string]*audio.Player
	volume  float64
}

func LoadSounds(volume float64) *Sounds {
	s := &Sounds{players: map[string]*audio.Player{}, volume: volume}
	for name, file := range soundFiles {
		p, err := assets.LoadAudioPlayer(file)
		if err != nil {
			log.Printf("sound: load %s: %v", file, err)
			continue
		}
		s.players[name] = p
	}
	return s
}

func (s *Sounds) Play(name string) {
	if s == nil || s.volume <= 0 {
		return
	}
	p := s.players[name]
	if p == nil {
		return
	}
	p.SetVolume(s.volume)
	if err := p.Rewind(); err != nil {
		log.Printf("sound: rewind %s: %v", name, err)
		return
	}
	p.Play()
}

// HandleEvent maps a session event to its cue.
func (s *Sounds) HandleEvent(evt ecs.Event) {
	switch evt.Type {
	case system.EventCollect:
		collect, ok := evt.Data.(system.CollectEvent)
		if !ok {
			return
		}
		switch collect.Category {
		case component.CategoryBad:
			s.Play("bad")
		case component.CategoryChonky:
			s.Play("chonky")
		default:
			s.Play("collect")
		}
	case session.EventSpeedUp:
		s.Play("speed_up")
	case session.EventGameOver:
		s.Play("game_over")
	}
}
