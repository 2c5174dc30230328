package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/dynaswap/dynaswap/x/smartpool/pricing"
	"github.com/dynaswap/dynaswap/x/smartpool/types"
)

// swapWeights resolves the oracle-adjusted weights of both legs. A weight
// degraded to zero by a dead feed makes the pair untradeable.
func (k *Keeper) swapWeights(ctx sdk.Context, pool *types.Pool, tokenIn, tokenOut string) (wIn, wOut math.LegacyDec, err error) {
	wIn, err = k.AdjustedWeight(ctx, pool, tokenIn)
	if err != nil {
		return math.LegacyDec{}, math.LegacyDec{}, err
	}
	wOut, err = k.AdjustedWeight(ctx, pool, tokenOut)
	if err != nil {
		return math.LegacyDec{}, math.LegacyDec{}, err
	}
	if !wIn.IsPositive() || !wOut.IsPositive() {
		return math.LegacyDec{}, math.LegacyDec{}, types.ErrMathApprox.Wrap("adjusted weight degraded to zero")
	}
	return wIn, wOut, nil
}

// SpotPrice returns the current fee-inclusive spot price of a pair using
// oracle-adjusted weights. Read-only entry point.
func (k *Keeper) SpotPrice(ctx sdk.Context, poolId uint64, tokenIn, tokenOut string) (math.LegacyDec, error) {
	if err := k.ensureUnlocked(ctx, poolId); err != nil {
		return math.LegacyDec{}, err
	}
	pool, err := k.GetPool(ctx, poolId)
	if err != nil {
		return math.LegacyDec{}, err
	}
	if !pool.IsBound(tokenIn) || !pool.IsBound(tokenOut) {
		return math.LegacyDec{}, types.ErrTokenNotBound.Wrapf("%s or %s", tokenIn, tokenOut)
	}
	wIn, wOut, err := k.swapWeights(ctx, pool, tokenIn, tokenOut)
	if err != nil {
		return math.LegacyDec{}, err
	}
	return pricing.SpotPrice(pool.Records[tokenIn].Balance, wIn, pool.Records[tokenOut].Balance, wOut, pool.SwapFee)
}

// swapCoverageSpread decides whether the coverage spread applies to this
// trade and derives it from the historical relative price series. The
// spread only applies when the trade moves the pool price further away from
// the oracle price; trades that arbitrage the pool back are quoted clean.
func (k *Keeper) swapCoverageSpread(ctx sdk.Context, pool *types.Pool, tokenIn, tokenOut string, balIn, wIn, balOut, wOut math.LegacyDec) math.LegacyDec {
	oracleRel := k.RelativeOraclePrice(ctx, pool, tokenIn, tokenOut)
	if !oracleRel.IsPositive() {
		return math.LegacyOneDec()
	}
	spotNoFee, err := pricing.SpotPrice(balIn, wIn, balOut, wOut, math.LegacyZeroDec())
	if err != nil {
		return math.LegacyOneDec()
	}
	if spotNoFee.LT(oracleRel) {
		return math.LegacyOneDec()
	}
	prices := k.coveragePrices(ctx, pool, tokenIn, tokenOut)
	return pricing.CoverageSpread(pool.CoverageZ, pool.CoverageHorizon, prices)
}

// SwapExactAmountIn trades an exact tokenIn amount for as much tokenOut as
// the curve allows. Validate, quote, apply, verify, settle; any failure
// rolls back everything.
func (k *Keeper) SwapExactAmountIn(ctx sdk.Context, trader string, poolId uint64, tokenIn string, amountIn math.LegacyDec, tokenOut string, minAmountOut, maxPrice math.LegacyDec) (math.LegacyDec, math.LegacyDec, error) {
	if err := k.checkNotPaused(ctx); err != nil {
		return math.LegacyDec{}, math.LegacyDec{}, err
	}
	var amountOut, spotAfter math.LegacyDec
	err := k.withPoolLock(ctx, poolId, func() error {
		pool, err := k.GetPool(ctx, poolId)
		if err != nil {
			return err
		}
		if !pool.IsBound(tokenIn) || !pool.IsBound(tokenOut) {
			return types.ErrTokenNotBound.Wrapf("%s or %s", tokenIn, tokenOut)
		}
		if !pool.PublicSwap {
			return types.ErrPublicSwapDisabled.Wrapf("pool %d", poolId)
		}
		if err := k.checkFreshness(ctx, pool, tokenIn); err != nil {
			return err
		}
		if err := k.checkFreshness(ctx, pool, tokenOut); err != nil {
			return err
		}
		if !maxPrice.IsPositive() {
			return types.ErrBadLimitPrice.Wrap("max price must be positive")
		}
		if !amountIn.IsPositive() {
			return types.ErrInvalidInput.Wrap("amount in must be positive")
		}
		if err := requireWholeAmount(amountIn); err != nil {
			return err
		}

		recIn := pool.Records[tokenIn]
		recOut := pool.Records[tokenOut]
		if amountIn.GT(recIn.Balance.Mul(types.MaxInRatio)) {
			return types.ErrMaxInRatio.Wrapf("amount in %s above %s of balance %s", amountIn.String(), types.MaxInRatio.String(), recIn.Balance.String())
		}

		wIn, wOut, err := k.swapWeights(ctx, pool, tokenIn, tokenOut)
		if err != nil {
			return err
		}

		spotBefore, err := pricing.SpotPrice(recIn.Balance, wIn, recOut.Balance, wOut, pool.SwapFee)
		if err != nil {
			return err
		}
		if spotBefore.GT(maxPrice) {
			return types.ErrBadLimitPrice.Wrapf("spot %s already above limit %s", spotBefore.String(), maxPrice.String())
		}

		quoted, err := pricing.CalcOutGivenIn(recIn.Balance, wIn, recOut.Balance, wOut, amountIn, pool.SwapFee)
		if err != nil {
			return err
		}
		spread := k.swapCoverageSpread(ctx, pool, tokenIn, tokenOut, recIn.Balance, wIn, recOut.Balance, wOut)
		amountOut = quoted.Quo(spread).TruncateDec()
		if !amountOut.IsPositive() {
			return types.ErrMathApprox.Wrap("quote truncated to zero")
		}
		if amountOut.LT(minAmountOut) {
			return types.ErrLimitOut.Wrapf("amount out %s below limit %s", amountOut.String(), minAmountOut.String())
		}

		recIn.Balance = recIn.Balance.Add(amountIn)
		recOut.Balance = recOut.Balance.Sub(amountOut)

		spotAfter, err = pricing.SpotPrice(recIn.Balance, wIn, recOut.Balance, wOut, pool.SwapFee)
		if err != nil {
			return err
		}
		if spotAfter.LT(spotBefore) {
			return types.ErrMathApprox.Wrap("spot price decreased")
		}
		if spotAfter.GT(maxPrice) {
			return types.ErrLimitPrice.Wrapf("spot %s above limit %s", spotAfter.String(), maxPrice.String())
		}
		if spotBefore.GT(amountIn.Quo(amountOut)) {
			return types.ErrMathApprox.Wrap("realized price below prior spot")
		}

		traderAddr, err := sdk.AccAddressFromBech32(trader)
		if err != nil {
			return types.ErrInvalidInput.Wrap(err.Error())
		}
		if err := k.pullTokens(ctx, traderAddr, poolId, tokenIn, amountIn); err != nil {
			return err
		}
		if err := k.pushTokens(ctx, poolId, traderAddr, tokenOut, amountOut); err != nil {
			return err
		}

		pool.Records[tokenIn] = recIn
		pool.Records[tokenOut] = recOut
		k.SetPool(ctx, pool)

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeSwap,
				sdk.NewAttribute(types.AttributeKeyPoolId, math.NewIntFromUint64(poolId).String()),
				sdk.NewAttribute(types.AttributeKeyTrader, trader),
				sdk.NewAttribute(types.AttributeKeyTokenIn, tokenIn),
				sdk.NewAttribute(types.AttributeKeyAmountIn, amountIn.String()),
				sdk.NewAttribute(types.AttributeKeyTokenOut, tokenOut),
				sdk.NewAttribute(types.AttributeKeyAmountOut, amountOut.String()),
				sdk.NewAttribute(types.AttributeKeySpread, spread.String()),
				sdk.NewAttribute(types.AttributeKeySpotPrice, spotAfter.String()),
			),
		)
		k.logger.Info("swap", "pool", poolId, "in", amountIn.String()+tokenIn, "out", amountOut.String()+tokenOut)
		return nil
	})
	if err != nil {
		return math.LegacyDec{}, math.LegacyDec{}, err
	}
	return amountOut, spotAfter, nil
}

// SwapExactAmountOut trades as little tokenIn as the curve requires for an
// exact tokenOut amount. Mirror of SwapExactAmountIn; required input rounds
// up and the coverage spread inflates it.
func (k *Keeper) SwapExactAmountOut(ctx sdk.Context, trader string, poolId uint64, tokenIn string, maxAmountIn math.LegacyDec, tokenOut string, amountOut, maxPrice math.LegacyDec) (math.LegacyDec, math.LegacyDec, error) {
	if err := k.checkNotPaused(ctx); err != nil {
		return math.LegacyDec{}, math.LegacyDec{}, err
	}
	var amountIn, spotAfter math.LegacyDec
	err := k.withPoolLock(ctx, poolId, func() error {
		pool, err := k.GetPool(ctx, poolId)
		if err != nil {
			return err
		}
		if !pool.IsBound(tokenIn) || !pool.IsBound(tokenOut) {
			return types.ErrTokenNotBound.Wrapf("%s or %s", tokenIn, tokenOut)
		}
		if !pool.PublicSwap {
			return types.ErrPublicSwapDisabled.Wrapf("pool %d", poolId)
		}
		if err := k.checkFreshness(ctx, pool, tokenIn); err != nil {
			return err
		}
		if err := k.checkFreshness(ctx, pool, tokenOut); err != nil {
			return err
		}
		if !maxPrice.IsPositive() {
			return types.ErrBadLimitPrice.Wrap("max price must be positive")
		}
		if !amountOut.IsPositive() {
			return types.ErrInvalidInput.Wrap("amount out must be positive")
		}
		if err := requireWholeAmount(amountOut); err != nil {
			return err
		}

		recIn := pool.Records[tokenIn]
		recOut := pool.Records[tokenOut]
		if amountOut.GT(recOut.Balance.Mul(types.MaxOutRatio)) {
			return types.ErrMaxOutRatio.Wrapf("amount out %s above %s of balance %s", amountOut.String(), types.MaxOutRatio.String(), recOut.Balance.String())
		}

		wIn, wOut, err := k.swapWeights(ctx, pool, tokenIn, tokenOut)
		if err != nil {
			return err
		}

		spotBefore, err := pricing.SpotPrice(recIn.Balance, wIn, recOut.Balance, wOut, pool.SwapFee)
		if err != nil {
			return err
		}
		if spotBefore.GT(maxPrice) {
			return types.ErrBadLimitPrice.Wrapf("spot %s already above limit %s", spotBefore.String(), maxPrice.String())
		}

		quoted, err := pricing.CalcInGivenOut(recIn.Balance, wIn, recOut.Balance, wOut, amountOut, pool.SwapFee)
		if err != nil {
			return err
		}
		spread := k.swapCoverageSpread(ctx, pool, tokenIn, tokenOut, recIn.Balance, wIn, recOut.Balance, wOut)
		amountIn = quoted.Mul(spread).Ceil()
		if amountIn.GT(maxAmountIn) {
			return types.ErrLimitIn.Wrapf("amount in %s above limit %s", amountIn.String(), maxAmountIn.String())
		}

		recIn.Balance = recIn.Balance.Add(amountIn)
		recOut.Balance = recOut.Balance.Sub(amountOut)

		spotAfter, err = pricing.SpotPrice(recIn.Balance, wIn, recOut.Balance, wOut, pool.SwapFee)
		if err != nil {
			return err
		}
		if spotAfter.LT(spotBefore) {
			return types.ErrMathApprox.Wrap("spot price decreased")
		}
		if spotAfter.GT(maxPrice) {
			return types.ErrLimitPrice.Wrapf("spot %s above limit %s", spotAfter.String(), maxPrice.String())
		}
		if spotBefore.GT(amountIn.Quo(amountOut)) {
			return types.ErrMathApprox.Wrap("realized price below prior spot")
		}

		traderAddr, err := sdk.AccAddressFromBech32(trader)
		if err != nil {
			return types.ErrInvalidInput.Wrap(err.Error())
		}
		if err := k.pullTokens(ctx, traderAddr, poolId, tokenIn, amountIn); err != nil {
			return err
		}
		if err := k.pushTokens(ctx, poolId, traderAddr, tokenOut, amountOut); err != nil {
			return err
		}

		pool.Records[tokenIn] = recIn
		pool.Records[tokenOut] = recOut
		k.SetPool(ctx, pool)

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeSwap,
				sdk.NewAttribute(types.AttributeKeyPoolId, math.NewIntFromUint64(poolId).String()),
				sdk.NewAttribute(types.AttributeKeyTrader, trader),
				sdk.NewAttribute(types.AttributeKeyTokenIn, tokenIn),
				sdk.NewAttribute(types.AttributeKeyAmountIn, amountIn.String()),
				sdk.NewAttribute(types.AttributeKeyTokenOut, tokenOut),
				sdk.NewAttribute(types.AttributeKeyAmountOut, amountOut.String()),
				sdk.NewAttribute(types.AttributeKeySpread, spread.String()),
				sdk.NewAttribute(types.AttributeKeySpotPrice, spotAfter.String()),
			),
		)
		k.logger.Info("swap", "pool", poolId, "in", amountIn.String()+tokenIn, "out", amountOut.String()+tokenOut)
		return nil
	})
	if err != nil {
		return math.LegacyDec{}, math.LegacyDec{}, err
	}
	return amountIn, spotAfter, nil
}
