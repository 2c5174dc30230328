package types

import (
	"context"
	"time"
)

// Pool represents a pool in the API response
type Pool struct {
	PoolID      uint64      `json:"pool_id"`
	Tokens      []PoolToken `json:"tokens"`
	TotalWeight string      `json:"total_weight"`
	SwapFee     string      `json:"swap_fee"`
	Controller  string      `json:"controller"`
	Finalized   bool        `json:"finalized"`
	PublicSwap  bool        `json:"public_swap"`
	TotalShares string      `json:"total_shares"`
	CreatedAt   int64       `json:"created_at"`
}

// PoolToken represents a bound token in a pool
type PoolToken struct {
	Denom          string `json:"denom"`
	Balance        string `json:"balance"`
	Denorm         string `json:"denorm"`
	AdjustedWeight string `json:"adjusted_weight,omitempty"`
	FeedID         string `json:"feed_id,omitempty"`
}

// SpotPrice represents a fee-inclusive pair price in the API response
type SpotPrice struct {
	PoolID    uint64 `json:"pool_id"`
	TokenIn   string `json:"token_in"`
	TokenOut  string `json:"token_out"`
	Price     string `json:"price"`
	Timestamp int64  `json:"timestamp"`
}

// QuoteRequest represents the request to quote a swap
type QuoteRequest struct {
	PoolID   uint64 `json:"pool_id"`
	TokenIn  string `json:"token_in"`
	AmountIn string `json:"amount_in"`
	TokenOut string `json:"token_out"`
}

// QuoteResponse represents the response for a swap quote
type QuoteResponse struct {
	PoolID    uint64 `json:"pool_id"`
	TokenIn   string `json:"token_in"`
	AmountIn  string `json:"amount_in"`
	TokenOut  string `json:"token_out"`
	AmountOut string `json:"amount_out"`
	SpotPrice string `json:"spot_price"`
	Timestamp int64  `json:"timestamp"`
}

// Feed represents a price feed in the API response
type Feed struct {
	FeedID      string `json:"feed_id"`
	Description string `json:"description,omitempty"`
	Decimals    uint8  `json:"decimals"`
	Owner       string `json:"owner"`
	LatestRound uint64 `json:"latest_round"`
	LatestPrice string `json:"latest_price,omitempty"`
	UpdatedAt   int64  `json:"updated_at,omitempty"`
}

// Round represents a single price round in the API response
type Round struct {
	RoundID   uint64 `json:"round_id"`
	Price     string `json:"price"`
	Timestamp int64  `json:"timestamp"`
}

// ListPoolsResponse represents the response for listing pools
type ListPoolsResponse struct {
	Pools []*Pool `json:"pools"`
	Total int     `json:"total"`
}

// ListFeedsResponse represents the response for listing feeds
type ListFeedsResponse struct {
	Feeds []*Feed `json:"feeds"`
	Total int     `json:"total"`
}

// ListRoundsResponse represents the response for listing feed rounds
type ListRoundsResponse struct {
	FeedID string   `json:"feed_id"`
	Rounds []*Round `json:"rounds"`
	Total  int      `json:"total"`
}

// PoolService defines the interface for pool queries
type PoolService interface {
	ListPools(ctx context.Context) (*ListPoolsResponse, error)
	GetPool(ctx context.Context, poolID uint64) (*Pool, error)
	GetSpotPrice(ctx context.Context, poolID uint64, tokenIn, tokenOut string) (*SpotPrice, error)
	Quote(ctx context.Context, req *QuoteRequest) (*QuoteResponse, error)
}

// FeedService defines the interface for price feed queries
type FeedService interface {
	ListFeeds(ctx context.Context) (*ListFeedsResponse, error)
	GetFeed(ctx context.Context, feedID string) (*Feed, error)
	GetRounds(ctx context.Context, feedID string, limit int) (*ListRoundsResponse, error)
}

// Helper function to get current timestamp in milliseconds
func NowMillis() int64 {
	return time.Now().UnixMilli()
}
