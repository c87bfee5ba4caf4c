package clock

import "time"

// Timer is a periodic callback registered with a Scheduler.
type Timer struct {
	period  time.Duration
	next    time.Time
	seq     uint64
	fn      func(at time.Time)
	stopped bool
}

// Stop cancels the timer. It reports whether the timer was still active.
func (t *Timer) Stop() bool {
	if t == nil || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// Active reports whether the timer will fire again.
func (t *Timer) Active() bool {
	return t != nil && !t.stopped
}

// Period returns the firing interval.
func (t *Timer) Period() time.Duration {
	return t.period
}

// Scheduler fires periodic timers in chronological order when advanced. All
// callbacks run on the goroutine calling Advance; nothing fires on its own.
type Scheduler struct {
	timers []*Timer
	seq    uint64
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Every registers fn to run every period, first at start+period. The
// callback receives the deadline it was scheduled for, not the wall time of
// the Advance call.
func (s *Scheduler) Every(start time.Time, period time.Duration, fn func(at time.Time)) *Timer {
	if period <= 0 {
		panic("clock: timer period must be positive")
	}
	s.seq++
	t := &Timer{period: period, next: start.Add(period), seq: s.seq, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

// Advance fires every deadline at or before now, earliest first. Deadlines
// that were missed because a frame was late are all delivered, so the number
// of firings only depends on elapsed time. Ties go to the timer registered
// first. It returns how many callbacks ran.
func (s *Scheduler) Advance(now time.Time) int {
	fired := 0
	for {
		t := s.nextDue(now)
		if t == nil {
			break
		}
		at := t.next
		t.next = t.next.Add(t.period)
		if t.fn != nil {
			t.fn(at)
		}
		fired++
	}
	s.compact()
	return fired
}

// Len returns the number of active timers.
func (s *Scheduler) Len() int {
	n := 0
	for _, t := range s.timers {
		if t.Active() {
			n++
		}
	}
	return n
}

func (s *Scheduler) nextDue(now time.Time) *Timer {
	var best *Timer
	for _, t := range s.timers {
		if t.stopped || t.next.After(now) {
			continue
		}
		if best == nil || t.next.Before(best.next) || (t.next.Equal(best.next) && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

func (s *Scheduler) compact() {
	kept := s.timers[:0]
	for _, t := range s.timers {
		if !t.stopped {
			kept = append(kept, t)
		}
	}
	for i := len(kept); i < len(s.timers); i++ {
		s.timers[i] = nil
	}
	s.timers = kept
}

// Group is a set of timers owned together and cancelled together.
type Group struct {
	timers []*Timer
}

// Add tracks t and returns it.
func (g *Group) Add(t *Timer) *Timer {
	if t != nil {
		g.timers = append(g.timers, t)
	}
	return t
}

// StopAll cancels every timer in the group and forgets them. It returns how
// many were still active.
func (g *Group) StopAll() int {
	n := 0
	for _, t := range g.timers {
		if t.Stop() {
			n++
		}
	}
	g.timers = nil
	return n
}

// Len returns the number of tracked timers that are still active.
func (g *Group) Len() int {
	n := 0
	for _, t := range g.timers {
		if t.Active() {
			n++
		}
	}
	return n
}
