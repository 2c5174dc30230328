package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/dynaswap/dynaswap/x/smartpool/types"
)

// QueryServer defines the smartpool QueryServer
type QueryServer struct {
	keeper *Keeper
}

// NewQueryServerImpl creates a new QueryServer instance
func NewQueryServerImpl(keeper *Keeper) *QueryServer {
	return &QueryServer{keeper: keeper}
}

// Pool returns a pool by id
func (q *QueryServer) Pool(ctx context.Context, poolId uint64) (*types.Pool, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return q.keeper.GetPool(sdkCtx, poolId)
}

// Pools returns all pools with offset/limit pagination
func (q *QueryServer) Pools(ctx context.Context, offset, limit uint64) ([]types.Pool, uint64, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	allPools := q.keeper.GetAllPools(sdkCtx)

	total := uint64(len(allPools))
	if offset >= total {
		return []types.Pool{}, total, nil
	}
	end := offset + limit
	if end > total || limit == 0 {
		end = total
	}
	return allPools[offset:end], total, nil
}

// Params returns the module parameters
func (q *QueryServer) Params(ctx context.Context) (types.Params, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return q.keeper.GetParams(sdkCtx), nil
}

// SpotPrice returns the fee-inclusive spot price of a pair
func (q *QueryServer) SpotPrice(ctx context.Context, poolId uint64, tokenIn, tokenOut string) (math.LegacyDec, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return q.keeper.SpotPrice(sdkCtx, poolId, tokenIn, tokenOut)
}

// TotalShares returns the outstanding share supply of a pool
func (q *QueryServer) TotalShares(ctx context.Context, poolId uint64) (math.Int, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if _, err := q.keeper.GetPool(sdkCtx, poolId); err != nil {
		return math.Int{}, err
	}
	return q.keeper.TotalShares(sdkCtx, poolId), nil
}

// AdjustedWeights returns the current oracle-adjusted weight of every bound
// token in a pool, keyed by denom
func (q *QueryServer) AdjustedWeights(ctx context.Context, poolId uint64) (map[string]math.LegacyDec, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	pool, err := q.keeper.GetPool(sdkCtx, poolId)
	if err != nil {
		return nil, err
	}
	weights := make(map[string]math.LegacyDec, len(pool.Tokens))
	for _, token := range pool.Tokens {
		w, err := q.keeper.AdjustedWeight(sdkCtx, pool, token)
		if err != nil {
			return nil, err
		}
		weights[token] = w
	}
	return weights, nil
}
