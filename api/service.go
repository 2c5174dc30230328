package api

import (
	"github.com/dynaswap/dynaswap/api/types"
)

// Re-export types for convenience
type (
	Pool               = types.Pool
	PoolToken          = types.PoolToken
	SpotPrice          = types.SpotPrice
	QuoteRequest       = types.QuoteRequest
	QuoteResponse      = types.QuoteResponse
	Feed               = types.Feed
	Round              = types.Round
	ListPoolsResponse  = types.ListPoolsResponse
	ListFeedsResponse  = types.ListFeedsResponse
	ListRoundsResponse = types.ListRoundsResponse
	PoolService        = types.PoolService
	FeedService        = types.FeedService
)

// nowMillis returns current timestamp in milliseconds
func nowMillis() int64 {
	return types.NowMillis()
}
