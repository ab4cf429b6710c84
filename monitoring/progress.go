package monitoring

import (
	"sync"
	"time"
)

// A ProgressBar is a tracker of the progress toward run termination.
type ProgressBar struct {
	sync.Mutex
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartTime time.Time `json:"start_time"`
	Total     uint64    `json:"total"`
	Finished  uint64    `json:"finished"`
}

// IncrementFinished adds a certain amount to the finished element.
func (b *ProgressBar) IncrementFinished(amount uint64) {
	b.Lock()
	defer b.Unlock()

	b.Finished += amount
}

// Snapshot returns the finished count without holding the lock afterward.
func (b *ProgressBar) Snapshot() uint64 {
	b.Lock()
	defer b.Unlock()

	return b.Finished
}
