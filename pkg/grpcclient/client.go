// Package grpcclient provides a pooled gRPC client for chain interaction
package grpcclient

import (
	"context"
	"encoding/hex"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"cosmossdk.io/math"
	"github.com/cosmos/cosmos-sdk/client"
	clienttx "github.com/cosmos/cosmos-sdk/client/tx"
	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	cryptotypes "github.com/cosmos/cosmos-sdk/crypto/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
	"github.com/cosmos/cosmos-sdk/types/tx/signing"
	authsigning "github.com/cosmos/cosmos-sdk/x/auth/signing"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/dynaswap/dynaswap/app"
	pricefeedtypes "github.com/dynaswap/dynaswap/x/pricefeed/types"
)

// Config holds gRPC client configuration
type Config struct {
	GRPCAddr      string
	ChainID       string
	AccountNumber uint64
	GasLimit      uint64
	FeeDenom      string
	FeeAmount     int64
	PoolSize      int           // Connection pool size
	Timeout       time.Duration // Request timeout
	RetryAttempts int           // Retry attempts on failure
	BatchSize     int           // Max messages per transaction
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		GRPCAddr:      "localhost:9090",
		ChainID:       "dynaswap-1",
		AccountNumber: 0,
		GasLimit:      200000,
		FeeDenom:      "stake",
		FeeAmount:     2000,
		PoolSize:      4,
		Timeout:       5 * time.Second,
		RetryAttempts: 3,
		BatchSize:     50,
	}
}

// Client broadcasts signed transactions over a pool of gRPC connections.
// It is used by the offchain oracle to push price rounds.
type Client struct {
	config    *Config
	pool      []*grpc.ClientConn
	poolIndex uint64

	// Cached signer info
	privKey  cryptotypes.PrivKey
	pubKey   cryptotypes.PubKey
	address  sdk.AccAddress
	sequence uint64
	seqMu    sync.Mutex

	// Metrics
	txCount      uint64
	successCount uint64
	failCount    uint64
	totalLatency int64

	// TX encoder
	txConfig client.TxConfig
}

// NewClient creates a new gRPC client signing with the given hex private key
func NewClient(config *Config, privKeyHex string) (*Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	// Decode private key
	privKeyBytes, err := hex.DecodeString(privKeyHex)
	if err != nil {
		return nil, fmt.Errorf("decode private key: %w", err)
	}

	privKey := &secp256k1.PrivKey{Key: privKeyBytes}
	pubKey := privKey.PubKey()
	address := sdk.AccAddress(pubKey.Address())

	c := &Client{
		config:   config,
		pool:     make([]*grpc.ClientConn, config.PoolSize),
		privKey:  privKey,
		pubKey:   pubKey,
		address:  address,
		sequence: 0,
		txConfig: app.MakeEncodingConfig().TxConfig,
	}

	// Initialize connection pool
	for i := 0; i < config.PoolSize; i++ {
		conn, err := grpc.Dial(
			config.GRPCAddr,
			grpc.WithTransportCredentials(insecure.NewCredentials()),
			grpc.WithDefaultCallOptions(
				grpc.MaxCallRecvMsgSize(1024*1024*10), // 10MB
				grpc.MaxCallSendMsgSize(1024*1024*10),
			),
		)
		if err != nil {
			return nil, fmt.Errorf("connect to gRPC: %w", err)
		}
		c.pool[i] = conn
	}

	return c, nil
}

// Address returns the signer address
func (c *Client) Address() string {
	return c.address.String()
}

// SetSequence overrides the cached account sequence
func (c *Client) SetSequence(seq uint64) {
	c.seqMu.Lock()
	defer c.seqMu.Unlock()
	c.sequence = seq
}

// getConn returns a connection from the pool (round-robin)
func (c *Client) getConn() *grpc.ClientConn {
	idx := atomic.AddUint64(&c.poolIndex, 1) % uint64(len(c.pool))
	return c.pool[idx]
}

// nextSequence atomically increments and returns the next sequence number
func (c *Client) nextSequence() uint64 {
	c.seqMu.Lock()
	defer c.seqMu.Unlock()
	seq := c.sequence
	c.sequence++
	return seq
}

// SubmitResult contains the result of a round submission
type SubmitResult struct {
	TxHash  string
	Success bool
	Latency time.Duration
	Error   error
}

// RoundSubmission is one feed round to push on chain
type RoundSubmission struct {
	FeedID    string
	Price     string
	Timestamp int64
}

// SubmitRound submits a single price round
func (c *Client) SubmitRound(ctx context.Context, round RoundSubmission) *SubmitResult {
	return c.SubmitRounds(ctx, []RoundSubmission{round})
}

// SubmitRounds submits a batch of price rounds in a single transaction
func (c *Client) SubmitRounds(ctx context.Context, rounds []RoundSubmission) *SubmitResult {
	start := time.Now()
	result := &SubmitResult{}

	if len(rounds) == 0 {
		result.Error = fmt.Errorf("no rounds to submit")
		return result
	}

	if len(rounds) > c.config.BatchSize {
		result.Error = fmt.Errorf("batch size %d exceeds max %d", len(rounds), c.config.BatchSize)
		return result
	}

	atomic.AddUint64(&c.txCount, uint64(len(rounds)))

	// Build messages
	msgs := make([]sdk.Msg, len(rounds))
	for i, round := range rounds {
		msgs[i] = &pricefeedtypes.MsgSubmitRound{
			Owner:     c.address.String(),
			FeedId:    round.FeedID,
			Price:     round.Price,
			Timestamp: round.Timestamp,
		}
	}

	// Get sequence
	seq := c.nextSequence()

	// Build and sign transaction in memory
	txBytes, err := c.buildSignedTx(ctx, msgs, seq)
	if err != nil {
		result.Error = err
		result.Latency = time.Since(start)
		atomic.AddUint64(&c.failCount, uint64(len(rounds)))
		return result
	}

	// Broadcast via gRPC
	conn := c.getConn()
	txClient := txtypes.NewServiceClient(conn)

	resp, err := txClient.BroadcastTx(ctx, &txtypes.BroadcastTxRequest{
		TxBytes: txBytes,
		Mode:    txtypes.BroadcastMode_BROADCAST_MODE_SYNC,
	})

	result.Latency = time.Since(start)
	atomic.AddInt64(&c.totalLatency, int64(result.Latency))

	if err != nil {
		result.Error = err
		atomic.AddUint64(&c.failCount, uint64(len(rounds)))
		return result
	}

	if resp.TxResponse.Code == 0 {
		result.Success = true
		result.TxHash = resp.TxResponse.TxHash
		atomic.AddUint64(&c.successCount, uint64(len(rounds)))
	} else {
		result.Error = fmt.Errorf("tx failed: %s", resp.TxResponse.RawLog)
		atomic.AddUint64(&c.failCount, uint64(len(rounds)))
	}

	return result
}

// buildSignedTx builds and signs a multi-message transaction
func (c *Client) buildSignedTx(ctx context.Context, msgs []sdk.Msg, sequence uint64) ([]byte, error) {
	txBuilder := c.txConfig.NewTxBuilder()

	if err := txBuilder.SetMsgs(msgs...); err != nil {
		return nil, err
	}

	fee := sdk.NewCoins(sdk.NewCoin(c.config.FeeDenom, math.NewInt(c.config.FeeAmount)))
	txBuilder.SetFeeAmount(fee)
	txBuilder.SetGasLimit(c.config.GasLimit * uint64(len(msgs)))

	// Placeholder signature so the sign bytes carry the right pubkey
	sigV2 := signing.SignatureV2{
		PubKey: c.pubKey,
		Data: &signing.SingleSignatureData{
			SignMode:  signing.SignMode_SIGN_MODE_DIRECT,
			Signature: nil,
		},
		Sequence: sequence,
	}
	if err := txBuilder.SetSignatures(sigV2); err != nil {
		return nil, err
	}

	signerData := authsigning.SignerData{
		Address:       c.address.String(),
		ChainID:       c.config.ChainID,
		AccountNumber: c.config.AccountNumber,
		Sequence:      sequence,
		PubKey:        c.pubKey,
	}

	sigV2, err := clienttx.SignWithPrivKey(
		ctx,
		signing.SignMode_SIGN_MODE_DIRECT,
		signerData,
		txBuilder,
		c.privKey,
		c.txConfig,
		sequence,
	)
	if err != nil {
		return nil, err
	}

	if err := txBuilder.SetSignatures(sigV2); err != nil {
		return nil, err
	}

	return c.txConfig.TxEncoder()(txBuilder.GetTx())
}

// GetMetrics returns current client metrics
func (c *Client) GetMetrics() (txCount, successCount, failCount uint64, avgLatency time.Duration) {
	txCount = atomic.LoadUint64(&c.txCount)
	successCount = atomic.LoadUint64(&c.successCount)
	failCount = atomic.LoadUint64(&c.failCount)

	if successCount > 0 {
		avgLatency = time.Duration(atomic.LoadInt64(&c.totalLatency) / int64(successCount))
	}
	return
}

// ResetMetrics resets all metrics
func (c *Client) ResetMetrics() {
	atomic.StoreUint64(&c.txCount, 0)
	atomic.StoreUint64(&c.successCount, 0)
	atomic.StoreUint64(&c.failCount, 0)
	atomic.StoreInt64(&c.totalLatency, 0)
}

// Close closes all connections in the pool
func (c *Client) Close() error {
	for _, conn := range c.pool {
		if err := conn.Close(); err != nil {
			return err
		}
	}
	return nil
}
