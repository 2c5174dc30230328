package oracle

import (
	"sync"
	"time"

	"cosmossdk.io/math"
)

// lastSubmission remembers the most recent round pushed for a feed
type lastSubmission struct {
	price       math.LegacyDec
	submittedAt time.Time
}

// SubmissionCache tracks the last submitted round per feed so the daemon
// only pushes rounds that moved enough or aged out.
type SubmissionCache struct {
	entries map[string]*lastSubmission
	mu      sync.RWMutex
}

// NewSubmissionCache creates a new submission cache
func NewSubmissionCache() *SubmissionCache {
	return &SubmissionCache{
		entries: make(map[string]*lastSubmission),
	}
}

// ShouldSubmit reports whether a point differs enough from the last
// submission. minMove is a relative threshold, maxAge forces a heartbeat
// round even when the price is flat.
func (c *SubmissionCache) ShouldSubmit(point PricePoint, minMove math.LegacyDec, maxAge time.Duration) bool {
	c.mu.RLock()
	entry, exists := c.entries[point.FeedID]
	c.mu.RUnlock()

	if !exists {
		return true
	}
	if maxAge > 0 && point.Timestamp.Sub(entry.submittedAt) >= maxAge {
		return true
	}
	if entry.price.IsZero() {
		return true
	}

	move := point.Price.Sub(entry.price).Quo(entry.price).Abs()
	return move.GTE(minMove)
}

// MarkSubmitted records a successful submission
func (c *SubmissionCache) MarkSubmitted(point PricePoint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[point.FeedID] = &lastSubmission{
		price:       point.Price,
		submittedAt: point.Timestamp,
	}
}

// Len returns the number of tracked feeds
func (c *SubmissionCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear removes all entries
func (c *SubmissionCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*lastSubmission)
}

// RoundBuffer is a thread-safe buffer for rounds pending submission
type RoundBuffer struct {
	rounds  []PricePoint
	maxSize int
	mu      sync.Mutex
}

// NewRoundBuffer creates a new round buffer with the given batch size
func NewRoundBuffer(maxSize int) *RoundBuffer {
	if maxSize <= 0 {
		maxSize = 50
	}
	return &RoundBuffer{
		rounds:  make([]PricePoint, 0, maxSize),
		maxSize: maxSize,
	}
}

// Add adds a round to the buffer. A newer round for the same feed replaces
// the pending one so a stalled submitter never pushes outdated prices.
func (b *RoundBuffer) Add(point PricePoint) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.rounds {
		if b.rounds[i].FeedID == point.FeedID {
			b.rounds[i] = point
			return
		}
	}
	b.rounds = append(b.rounds, point)
}

// Flush returns all pending rounds and clears the buffer
func (b *RoundBuffer) Flush() []PricePoint {
	b.mu.Lock()
	defer b.mu.Unlock()
	rounds := b.rounds
	b.rounds = make([]PricePoint, 0, b.maxSize)
	return rounds
}

// FlushBatch returns up to maxSize rounds and removes them from the buffer
func (b *RoundBuffer) FlushBatch() []PricePoint {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.rounds) == 0 {
		return nil
	}

	count := b.maxSize
	if len(b.rounds) < count {
		count = len(b.rounds)
	}

	batch := b.rounds[:count]
	b.rounds = b.rounds[count:]
	return batch
}

// Len returns the number of pending rounds
func (b *RoundBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.rounds)
}

// Clear removes all pending rounds
func (b *RoundBuffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rounds = make([]PricePoint, 0, b.maxSize)
}
