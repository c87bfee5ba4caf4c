package component

import "time"

// TTL is a wall-clock time-to-live. The TTL system destroys the entity once
// it is Duration old, whether or not it was collected.
type TTL struct {
	SpawnedAt time.Time
	Duration  time.Duration
}

// Expired reports whether the entity has reached the end of its life.
func (t *TTL) Expired(now time.Time) bool {
	return now.Sub(t.SpawnedAt) >= t.Duration
}

var TTLComponent = NewComponent[TTL]()
