// Package score defines the final tally of a session and the sinks that
// receive it.
package score

import "log"

// Result is the final tally handed over once per session.
type Result struct {
	Score  int `yaml:"score" json:"score"`
	Good   int `yaml:"good" json:"goodCatsCollected"`
	Bad    int `yaml:"bad" json:"badCatsCollected"`
	Chonky int `yaml:"chonky" json:"chonkyCatsCollected"`
}

// Collected returns the number of cats consumed in the session.
func (r Result) Collected() int {
	return r.Good + r.Bad + r.Chonky
}

// Sink receives final results. Submit must not block the caller; sinks doing
// slow work hand it off themselves and own their failures.
type Sink interface {
	Submit(Result)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Result)

func (f SinkFunc) Submit(r Result) {
	f(r)
}

// LogSink logs every result.
type LogSink struct{}

func (LogSink) Submit(r Result) {
	log.Printf("score: final score=%d good=%d bad=%d chonky=%d", r.Score, r.Good, r.Bad, r.Chonky)
}

type multi []Sink

func (m multi) Submit(r Result) {
	for _, s := range m {
		s.Submit(r)
	}
}

// Multi fans a result out to every non-nil sink in order.
func Multi(sinks ...Sink) Sink {
	out := make(multi, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}
