// Package oracle implements the offchain price submitter daemon. It polls
// a price source, filters out rounds that have not moved, and pushes the
// rest to the pricefeed module in batches.
package oracle

import (
	"context"
	"log"
	"sync"
	"time"

	"cosmossdk.io/math"
)

// Config holds the daemon configuration
type Config struct {
	PollInterval  time.Duration  // How often the source is polled
	BatchInterval time.Duration  // How often pending rounds are submitted
	BatchSize     int            // Maximum rounds per transaction
	MinMove       math.LegacyDec // Relative price move that forces a round
	HeartbeatAge  time.Duration  // Submit a flat price after this long
}

// DefaultConfig returns the default daemon configuration
func DefaultConfig() *Config {
	return &Config{
		PollInterval:  2 * time.Second,
		BatchInterval: 5 * time.Second,
		BatchSize:     50,
		MinMove:       math.LegacyNewDecWithPrec(5, 4), // 0.05%
		HeartbeatAge:  5 * time.Minute,
	}
}

// Daemon polls prices and drives the submitter
type Daemon struct {
	config    *Config
	source    PriceSource
	cache     *SubmissionCache
	buffer    *RoundBuffer
	submitter RoundSubmitter

	// Control channels
	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewDaemon creates a new oracle daemon
func NewDaemon(config *Config, source PriceSource, submitter RoundSubmitter) *Daemon {
	if config == nil {
		config = DefaultConfig()
	}
	if submitter == nil {
		submitter = NewMockSubmitter()
	}

	return &Daemon{
		config:    config,
		source:    source,
		cache:     NewSubmissionCache(),
		buffer:    NewRoundBuffer(config.BatchSize),
		submitter: submitter,
		stopCh:    make(chan struct{}),
	}
}

// Start starts the oracle daemon
func (d *Daemon) Start(ctx context.Context) error {
	log.Println("Starting oracle daemon...")

	d.wg.Add(1)
	go d.pollLoop(ctx)

	d.wg.Add(1)
	go d.batchLoop(ctx)

	log.Println("Oracle daemon started")
	return nil
}

// Stop stops the oracle daemon
func (d *Daemon) Stop() error {
	log.Println("Stopping oracle daemon...")
	close(d.stopCh)
	d.wg.Wait()
	log.Println("Oracle daemon stopped")
	return nil
}

// pollLoop fetches prices and buffers the rounds worth submitting
func (d *Daemon) pollLoop(ctx context.Context) {
	defer d.wg.Done()

	ticker := time.NewTicker(d.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-d.stopCh:
			return
		case <-ticker.C:
			d.poll(ctx)
		}
	}
}

// poll runs one fetch cycle
func (d *Daemon) poll(ctx context.Context) {
	points, err := d.source.Fetch(ctx)
	if err != nil {
		log.Printf("Error fetching prices: %v", err)
		return
	}

	for _, point := range points {
		if !point.Price.IsPositive() {
			log.Printf("Skipping non-positive price for feed %s", point.FeedID)
			continue
		}
		if d.cache.ShouldSubmit(point, d.config.MinMove, d.config.HeartbeatAge) {
			d.buffer.Add(point)
		}
	}
}

// batchLoop periodically submits pending rounds to the chain
func (d *Daemon) batchLoop(ctx context.Context) {
	defer d.wg.Done()

	ticker := time.NewTicker(d.config.BatchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// Submit any remaining rounds before stopping
			d.submitPendingRounds(ctx)
			return
		case <-d.stopCh:
			d.submitPendingRounds(ctx)
			return
		case <-ticker.C:
			d.submitPendingRounds(ctx)
		}
	}
}

// submitPendingRounds submits pending rounds to the chain
func (d *Daemon) submitPendingRounds(ctx context.Context) {
	rounds := d.buffer.FlushBatch()
	if len(rounds) == 0 {
		return
	}

	log.Printf("Submitting %d rounds to chain...", len(rounds))
	if err := d.submitter.SubmitRounds(ctx, rounds); err != nil {
		log.Printf("Error submitting rounds: %v", err)
		// Re-add rounds to buffer for retry
		for _, round := range rounds {
			d.buffer.Add(round)
		}
		return
	}

	for _, round := range rounds {
		d.cache.MarkSubmitted(round)
	}
}

// Stats returns daemon statistics
type Stats struct {
	TrackedFeeds  int
	PendingRounds int
	Submitter     SubmitterStatus
}

// GetStats returns current daemon statistics
func (d *Daemon) GetStats() Stats {
	return Stats{
		TrackedFeeds:  d.cache.Len(),
		PendingRounds: d.buffer.Len(),
		Submitter:     d.submitter.GetStatus(),
	}
}
