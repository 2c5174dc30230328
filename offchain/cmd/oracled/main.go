package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"cosmossdk.io/math"
	"github.com/dynaswap/dynaswap/offchain/oracle"
)

// Config holds the application configuration
type Config struct {
	PollInterval  time.Duration     `json:"poll_interval"`
	BatchInterval time.Duration     `json:"batch_interval"`
	BatchSize     int               `json:"batch_size"`
	MinMoveBps    int64             `json:"min_move_bps"`
	GRPCAddr      string            `json:"grpc_addr"`
	ChainID       string            `json:"chain_id"`
	SubmitterType string            `json:"submitter_type"` // "mock" or "grpc"
	Feeds         map[string]string `json:"feeds"`          // feed id -> base price
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		PollInterval:  2 * time.Second,
		BatchInterval: 5 * time.Second,
		BatchSize:     50,
		MinMoveBps:    5,
		GRPCAddr:      "localhost:9090",
		ChainID:       "dynaswap-1",
		SubmitterType: "mock",
		Feeds: map[string]string{
			"eth-usd":  "425000000000",
			"dai-usd":  "100000000",
			"atom-usd": "9350000",
		},
	}
}

// LoadConfig loads configuration from a file
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "Path to config file")
	grpcAddr := flag.String("grpc", "", "Chain gRPC address")
	chainID := flag.String("chain-id", "", "Chain ID")
	submitterType := flag.String("submitter", "", "Submitter type (mock or grpc)")
	feedsFlag := flag.String("feeds", "", "Feeds as id=basePrice,id=basePrice")
	flag.Parse()

	// Load configuration
	config, err := LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Override with command line flags
	if *grpcAddr != "" {
		config.GRPCAddr = *grpcAddr
	}
	if *chainID != "" {
		config.ChainID = *chainID
	}
	if *submitterType != "" {
		config.SubmitterType = *submitterType
	}
	if *feedsFlag != "" {
		feeds, err := parseFeeds(*feedsFlag)
		if err != nil {
			log.Fatalf("Invalid -feeds: %v", err)
		}
		config.Feeds = feeds
	}

	// Print configuration
	log.Println("=== DynaSwap Oracle Daemon ===")
	log.Printf("Poll Interval: %v", config.PollInterval)
	log.Printf("Batch Interval: %v", config.BatchInterval)
	log.Printf("Chain gRPC: %s", config.GRPCAddr)
	log.Printf("Submitter: %s", config.SubmitterType)
	log.Printf("Feeds: %d", len(config.Feeds))
	log.Println("==============================")

	// Create price source
	source, err := oracle.NewRandomWalkSource(config.Feeds, 20)
	if err != nil {
		log.Fatalf("Failed to create price source: %v", err)
	}

	// Create submitter
	var submitter oracle.RoundSubmitter
	switch config.SubmitterType {
	case "grpc":
		privKeyHex := os.Getenv("ORACLE_PRIVKEY")
		if privKeyHex == "" {
			log.Fatal("ORACLE_PRIVKEY environment variable is required for grpc submitter")
		}
		grpcSubmitter, err := oracle.NewGRPCSubmitter(&oracle.GRPCSubmitterConfig{
			GRPCAddr:      config.GRPCAddr,
			ChainID:       config.ChainID,
			PrivKeyHex:    privKeyHex,
			RetryAttempts: 3,
			RetryDelay:    time.Second,
		})
		if err != nil {
			log.Fatalf("Failed to create grpc submitter: %v", err)
		}
		defer grpcSubmitter.Close()
		submitter = grpcSubmitter
	default:
		submitter = oracle.NewMockSubmitter()
	}

	// Create daemon
	daemonConfig := &oracle.Config{
		PollInterval:  config.PollInterval,
		BatchInterval: config.BatchInterval,
		BatchSize:     config.BatchSize,
		MinMove:       math.LegacyNewDecWithPrec(config.MinMoveBps, 4),
		HeartbeatAge:  5 * time.Minute,
	}
	daemon := oracle.NewDaemon(daemonConfig, source, submitter)

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start the daemon
	if err := daemon.Start(ctx); err != nil {
		log.Fatalf("Failed to start daemon: %v", err)
	}

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// Periodic stats logging
	statsTicker := time.NewTicker(10 * time.Second)
	defer statsTicker.Stop()

	log.Println("Oracle daemon is running. Press Ctrl+C to stop.")

	for {
		select {
		case sig := <-sigCh:
			log.Printf("Received signal: %v", sig)
			cancel()
			if err := daemon.Stop(); err != nil {
				log.Printf("Error stopping daemon: %v", err)
			}
			return
		case <-statsTicker.C:
			stats := daemon.GetStats()
			log.Printf("Stats: Feeds=%d, Pending=%d, Submitted=%d, Failed=%d",
				stats.TrackedFeeds, stats.PendingRounds,
				stats.Submitter.TotalSubmissions, stats.Submitter.FailedSubmissions)
		}
	}
}

// parseFeeds parses "id=basePrice,id=basePrice" into a feed map
func parseFeeds(s string) (map[string]string, error) {
	feeds := make(map[string]string)
	for _, part := range strings.Split(s, ",") {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 || kv[0] == "" || kv[1] == "" {
			return nil, fmt.Errorf("invalid feed entry %q", part)
		}
		feeds[kv[0]] = kv[1]
	}
	return feeds, nil
}
