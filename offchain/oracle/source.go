package oracle

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"cosmossdk.io/math"
)

// PricePoint is one observed price for a feed
type PricePoint struct {
	FeedID    string
	Price     math.LegacyDec
	Timestamp time.Time
}

// PriceSource produces price observations for a set of feeds
type PriceSource interface {
	// Fetch returns the current price of every feed the source covers
	Fetch(ctx context.Context) ([]PricePoint, error)
}

// RandomWalkSource is a synthetic source for development and testing.
// Each feed starts at a base price and drifts by a bounded step per fetch.
type RandomWalkSource struct {
	mu     sync.Mutex
	prices map[string]math.LegacyDec
	step   math.LegacyDec
	rng    *rand.Rand
}

// NewRandomWalkSource creates a source seeded with the given base prices.
// stepBps bounds the per-fetch move in basis points.
func NewRandomWalkSource(basePrices map[string]string, stepBps int64) (*RandomWalkSource, error) {
	if stepBps <= 0 {
		stepBps = 20
	}

	prices := make(map[string]math.LegacyDec, len(basePrices))
	for feedID, raw := range basePrices {
		price, err := math.LegacyNewDecFromStr(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid base price for feed %q: %w", feedID, err)
		}
		if !price.IsPositive() {
			return nil, fmt.Errorf("base price for feed %q must be positive", feedID)
		}
		prices[feedID] = price
	}

	return &RandomWalkSource{
		prices: prices,
		step:   math.LegacyNewDecWithPrec(stepBps, 4),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

// Fetch advances every feed one step and returns the new prices
func (s *RandomWalkSource) Fetch(_ context.Context) ([]PricePoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	points := make([]PricePoint, 0, len(s.prices))
	for feedID, price := range s.prices {
		// Uniform drift in [-step, +step]
		stepBps := s.step.MulInt64(10000).TruncateInt64()
		drift := math.LegacyNewDecWithPrec(s.rng.Int63n(2*stepBps+1)-stepBps, 4)
		next := price.Mul(math.LegacyOneDec().Add(drift))
		if !next.IsPositive() {
			next = price
		}
		s.prices[feedID] = next
		points = append(points, PricePoint{
			FeedID:    feedID,
			Price:     next,
			Timestamp: now,
		})
	}
	return points, nil
}
