package api

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/milk9111/catcollector/score"
)

// Sink submits results to the backend in the background. Submit returns
// immediately; failures are logged and never retried.
type Sink struct {
	Client  *Client
	Timeout time.Duration

	wg sync.WaitGroup
}

func NewSink(c *Client) *Sink {
	return &Sink{Client: c, Timeout: 10 * time.Second}
}

func (s *Sink) Submit(r score.Result) {
	if s == nil || s.Client == nil || !s.Client.LoggedIn() {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), s.Timeout)
		defer cancel()

		if err := s.Client.SubmitResult(ctx, r); err != nil {
			log.Printf("score: submit result: %v", err)
		}
		if err := s.Client.UpdatePlayer(ctx, r); err != nil {
			log.Printf("score: update player: %v", err)
		}
	}()
}

// Wait blocks until in-flight submissions finish. Used on shutdown.
func (s *Sink) Wait() {
	if s == nil {
		return
	}
	s.wg.Wait()
}
