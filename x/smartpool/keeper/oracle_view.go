package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	pricefeedtypes "github.com/dynaswap/dynaswap/x/pricefeed/types"
	"github.com/dynaswap/dynaswap/x/smartpool/pricing"
	"github.com/dynaswap/dynaswap/x/smartpool/types"
)

// GetHistoricalRound reads a specific feed round. Any failure, missing feed
// or missing round, yields the sentinel round rather than an error; callers
// treat the sentinel as "no observation".
func (k *Keeper) GetHistoricalRound(ctx sdk.Context, feedId string, roundId uint64) pricefeedtypes.Round {
	if roundId == 0 {
		return pricefeedtypes.SentinelRound()
	}
	round, ok := k.pricefeedKeeper.GetRound(ctx, feedId, roundId)
	if !ok {
		return pricefeedtypes.SentinelRound()
	}
	return round
}

// feedDecimals returns a feed's fixed-point scale, zero when unknown
func (k *Keeper) feedDecimals(ctx sdk.Context, feedId string) uint8 {
	feed, ok := k.pricefeedKeeper.GetFeed(ctx, feedId)
	if !ok {
		return 0
	}
	return feed.Decimals
}

// AdjustedWeight returns the oracle-adjusted weight of a bound token:
// denorm scaled by currentPrice/initialPrice. A missing or non-positive
// current price degrades the weight to zero rather than failing.
func (k *Keeper) AdjustedWeight(ctx sdk.Context, pool *types.Pool, token string) (math.LegacyDec, error) {
	rec, ok := pool.Records[token]
	if !ok || !rec.Bound {
		return math.LegacyDec{}, types.ErrTokenNotBound.Wrap(token)
	}
	binding, ok := pool.PriceBindings[token]
	if !ok {
		return math.LegacyDec{}, types.ErrFeedNotBound.Wrap(token)
	}

	latest, ok := k.pricefeedKeeper.LatestRound(ctx, binding.FeedId)
	if !ok || !latest.Price.IsPositive() {
		return math.LegacyZeroDec(), nil
	}
	if !binding.InitialPrice.IsPositive() {
		return math.LegacyZeroDec(), nil
	}
	return rec.Denorm.Mul(latest.Price).Quo(binding.InitialPrice), nil
}

// checkFreshness rejects a token whose latest feed round is older than the
// module's max price age
func (k *Keeper) checkFreshness(ctx sdk.Context, pool *types.Pool, token string) error {
	binding, ok := pool.PriceBindings[token]
	if !ok {
		return types.ErrFeedNotBound.Wrap(token)
	}
	latest, ok := k.pricefeedKeeper.LatestRound(ctx, binding.FeedId)
	if !ok {
		return types.ErrStalePrice.Wrapf("feed %s has no rounds", binding.FeedId)
	}
	maxAge := int64(k.GetParams(ctx).MaxPriceAgeSeconds)
	if ctx.BlockTime().Unix()-latest.Timestamp > maxAge {
		return types.ErrStalePrice.Wrapf("feed %s round %d is %ds old", binding.FeedId, latest.RoundId, ctx.BlockTime().Unix()-latest.Timestamp)
	}
	return nil
}

// RelativeOraclePrice returns the current oracle exchange rate expressed as
// tokenIn units per tokenOut unit, directly comparable to the pool spot
// price. Zero when either feed has no usable price.
func (k *Keeper) RelativeOraclePrice(ctx sdk.Context, pool *types.Pool, tokenIn, tokenOut string) math.LegacyDec {
	bIn, okIn := pool.PriceBindings[tokenIn]
	bOut, okOut := pool.PriceBindings[tokenOut]
	if !okIn || !okOut {
		return math.LegacyZeroDec()
	}
	lIn, okIn := k.pricefeedKeeper.LatestRound(ctx, bIn.FeedId)
	lOut, okOut := k.pricefeedKeeper.LatestRound(ctx, bOut.FeedId)
	if !okIn || !okOut {
		return math.LegacyZeroDec()
	}
	return pricing.RelativePrice(lIn.Price, k.feedDecimals(ctx, bIn.FeedId), lOut.Price, k.feedDecimals(ctx, bOut.FeedId))
}

// PreviousRelativePrice returns the relative price one round back. The
// fresher previous round is paired with the other side's latest round so
// both observations cover the same time span; equal timestamps pair the two
// previous rounds. Zero when either previous round is unavailable.
func (k *Keeper) PreviousRelativePrice(ctx sdk.Context, pool *types.Pool, tokenIn, tokenOut string) math.LegacyDec {
	bIn, okIn := pool.PriceBindings[tokenIn]
	bOut, okOut := pool.PriceBindings[tokenOut]
	if !okIn || !okOut {
		return math.LegacyZeroDec()
	}
	latestIn, okIn := k.pricefeedKeeper.LatestRound(ctx, bIn.FeedId)
	latestOut, okOut := k.pricefeedKeeper.LatestRound(ctx, bOut.FeedId)
	if !okIn || !okOut {
		return math.LegacyZeroDec()
	}

	prevIn := k.GetHistoricalRound(ctx, bIn.FeedId, latestIn.RoundId-1)
	prevOut := k.GetHistoricalRound(ctx, bOut.FeedId, latestOut.RoundId-1)
	if prevIn.IsSentinel() || prevOut.IsSentinel() {
		return math.LegacyZeroDec()
	}

	priceIn, priceOut := prevIn.Price, prevOut.Price
	switch {
	case prevIn.Timestamp > prevOut.Timestamp:
		priceOut = latestOut.Price
	case prevOut.Timestamp > prevIn.Timestamp:
		priceIn = latestIn.Price
	}
	return pricing.RelativePrice(priceIn, k.feedDecimals(ctx, bIn.FeedId), priceOut, k.feedDecimals(ctx, bOut.FeedId))
}

// coveragePrices collects the historical relative price series the
// volatility estimator runs over: up to LookbackRounds round pairs walking
// back from the latest rounds, dropping pairs older than LookbackSeconds or
// with missing observations. Chronological order.
func (k *Keeper) coveragePrices(ctx sdk.Context, pool *types.Pool, tokenIn, tokenOut string) []math.LegacyDec {
	bIn, okIn := pool.PriceBindings[tokenIn]
	bOut, okOut := pool.PriceBindings[tokenOut]
	if !okIn || !okOut {
		return nil
	}
	latestIn, okIn := k.pricefeedKeeper.LatestRound(ctx, bIn.FeedId)
	latestOut, okOut := k.pricefeedKeeper.LatestRound(ctx, bOut.FeedId)
	if !okIn || !okOut {
		return nil
	}

	decIn := k.feedDecimals(ctx, bIn.FeedId)
	decOut := k.feedDecimals(ctx, bOut.FeedId)
	cutoff := ctx.BlockTime().Unix() - int64(pool.LookbackSeconds)

	var prices []math.LegacyDec
	for i := pool.LookbackRounds; ; i-- {
		if latestIn.RoundId > i && latestOut.RoundId > i {
			rIn := k.GetHistoricalRound(ctx, bIn.FeedId, latestIn.RoundId-i)
			rOut := k.GetHistoricalRound(ctx, bOut.FeedId, latestOut.RoundId-i)
			if !rIn.IsSentinel() && !rOut.IsSentinel() && rIn.Timestamp >= cutoff && rOut.Timestamp >= cutoff {
				rel := pricing.RelativePrice(rIn.Price, decIn, rOut.Price, decOut)
				if rel.IsPositive() {
					prices = append(prices, rel)
				}
			}
		}
		if i == 0 {
			break
		}
	}
	return prices
}
