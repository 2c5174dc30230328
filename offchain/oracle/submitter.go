package oracle

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/dynaswap/dynaswap/pkg/grpcclient"
)

// RoundSubmitter defines the interface for pushing rounds to the chain
type RoundSubmitter interface {
	// SubmitRounds submits a batch of price rounds
	SubmitRounds(ctx context.Context, rounds []PricePoint) error

	// GetStatus returns the submitter status
	GetStatus() SubmitterStatus
}

// SubmitterStatus represents the status of a submitter
type SubmitterStatus struct {
	Connected         bool
	PendingTxCount    int
	LastSubmitTime    time.Time
	LastError         string
	TotalSubmissions  int64
	FailedSubmissions int64
}

// MockSubmitter is a mock implementation for testing
type MockSubmitter struct {
	mu              sync.Mutex
	rounds          []PricePoint
	status          SubmitterStatus
	simulateFailure bool
}

// NewMockSubmitter creates a new mock submitter
func NewMockSubmitter() *MockSubmitter {
	return &MockSubmitter{
		rounds: make([]PricePoint, 0),
		status: SubmitterStatus{
			Connected: true,
		},
	}
}

// SubmitRounds submits rounds (mock implementation)
func (s *MockSubmitter) SubmitRounds(ctx context.Context, rounds []PricePoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.simulateFailure {
		s.status.FailedSubmissions++
		s.status.LastError = "simulated failure"
		return fmt.Errorf("simulated failure")
	}

	s.rounds = append(s.rounds, rounds...)
	s.status.TotalSubmissions++
	s.status.LastSubmitTime = time.Now()

	log.Printf("[MockSubmitter] Submitted %d rounds", len(rounds))
	for _, round := range rounds {
		log.Printf("  Round: %s = %s", round.FeedID, round.Price.String())
	}

	return nil
}

// GetStatus returns the mock submitter status
func (s *MockSubmitter) GetStatus() SubmitterStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// GetSubmittedRounds returns all submitted rounds (for testing)
func (s *MockSubmitter) GetSubmittedRounds() []PricePoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]PricePoint, len(s.rounds))
	copy(result, s.rounds)
	return result
}

// SetSimulateFailure enables or disables failure simulation
func (s *MockSubmitter) SetSimulateFailure(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.simulateFailure = fail
}

// Clear clears all submitted data (for testing)
func (s *MockSubmitter) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rounds = make([]PricePoint, 0)
}

// GRPCSubmitter signs and broadcasts rounds through the chain gRPC endpoint
type GRPCSubmitter struct {
	client        *grpcclient.Client
	retryAttempts int
	retryDelay    time.Duration

	mu     sync.Mutex
	status SubmitterStatus
}

// GRPCSubmitterConfig holds configuration for GRPCSubmitter
type GRPCSubmitterConfig struct {
	GRPCAddr      string
	ChainID       string
	PrivKeyHex    string
	FeeDenom      string
	RetryAttempts int
	RetryDelay    time.Duration
}

// DefaultGRPCSubmitterConfig returns default configuration
func DefaultGRPCSubmitterConfig() *GRPCSubmitterConfig {
	return &GRPCSubmitterConfig{
		GRPCAddr:      "localhost:9090",
		ChainID:       "dynaswap-1",
		FeeDenom:      "stake",
		RetryAttempts: 3,
		RetryDelay:    time.Second,
	}
}

// NewGRPCSubmitter creates a submitter backed by the pooled gRPC client
func NewGRPCSubmitter(config *GRPCSubmitterConfig) (*GRPCSubmitter, error) {
	if config == nil {
		config = DefaultGRPCSubmitterConfig()
	}

	clientConfig := grpcclient.DefaultConfig()
	clientConfig.GRPCAddr = config.GRPCAddr
	clientConfig.ChainID = config.ChainID
	if config.FeeDenom != "" {
		clientConfig.FeeDenom = config.FeeDenom
	}

	client, err := grpcclient.NewClient(clientConfig, config.PrivKeyHex)
	if err != nil {
		return nil, fmt.Errorf("create grpc client: %w", err)
	}

	return &GRPCSubmitter{
		client:        client,
		retryAttempts: config.RetryAttempts,
		retryDelay:    config.RetryDelay,
		status: SubmitterStatus{
			Connected: true,
		},
	}, nil
}

// SubmitRounds submits rounds with retry
func (s *GRPCSubmitter) SubmitRounds(ctx context.Context, rounds []PricePoint) error {
	if len(rounds) == 0 {
		return nil
	}

	s.mu.Lock()
	s.status.PendingTxCount = len(rounds)
	s.mu.Unlock()

	submissions := make([]grpcclient.RoundSubmission, len(rounds))
	for i, round := range rounds {
		submissions[i] = grpcclient.RoundSubmission{
			FeedID:    round.FeedID,
			Price:     round.Price.TruncateInt().String(),
			Timestamp: round.Timestamp.Unix(),
		}
	}

	var lastErr error
	for attempt := 0; attempt < s.retryAttempts; attempt++ {
		result := s.client.SubmitRounds(ctx, submissions)
		if result.Success {
			s.mu.Lock()
			s.status.TotalSubmissions++
			s.status.LastSubmitTime = time.Now()
			s.status.PendingTxCount = 0
			s.mu.Unlock()
			return nil
		}

		lastErr = result.Error
		log.Printf("Round submission attempt %d failed: %v", attempt+1, lastErr)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.retryDelay):
		}
	}

	s.mu.Lock()
	s.status.FailedSubmissions++
	if lastErr != nil {
		s.status.LastError = lastErr.Error()
	}
	s.status.PendingTxCount = 0
	s.mu.Unlock()
	return fmt.Errorf("all retry attempts failed: %w", lastErr)
}

// GetStatus returns the submitter status
func (s *GRPCSubmitter) GetStatus() SubmitterStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Close closes the underlying gRPC client
func (s *GRPCSubmitter) Close() error {
	return s.client.Close()
}
