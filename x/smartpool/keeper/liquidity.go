package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/dynaswap/dynaswap/x/smartpool/types"
)

// JoinPool mints sharesOut to the sender against a proportional deposit of
// every bound token. All per-token amounts are computed before any transfer;
// deposits round up so the pool never under-collects.
func (k *Keeper) JoinPool(ctx sdk.Context, sender string, poolId uint64, sharesOut math.Int, maxAmountsIn map[string]math.LegacyDec) (map[string]math.LegacyDec, error) {
	if err := k.checkNotPaused(ctx); err != nil {
		return nil, err
	}
	amountsIn := map[string]math.LegacyDec{}
	err := k.withPoolLock(ctx, poolId, func() error {
		pool, err := k.GetPool(ctx, poolId)
		if err != nil {
			return err
		}
		if !pool.Finalized {
			return types.ErrNotFinalized.Wrapf("pool %d", poolId)
		}
		if !sharesOut.IsPositive() {
			return types.ErrInvalidInput.Wrap("shares out must be positive")
		}

		totalShares := k.TotalShares(ctx, poolId)
		ratio := math.LegacyNewDecFromInt(sharesOut).Quo(math.LegacyNewDecFromInt(totalShares))
		if ratio.IsZero() {
			return types.ErrMathApprox.Wrap("zero share ratio")
		}

		for _, token := range pool.Tokens {
			rec := pool.Records[token]
			amount := ratio.Mul(rec.Balance).Ceil()
			if amount.IsZero() {
				return types.ErrMathApprox.Wrapf("zero deposit for %s", token)
			}
			if max, ok := maxAmountsIn[token]; ok && amount.GT(max) {
				return types.ErrLimitIn.Wrapf("%s deposit %s above limit %s", token, amount.String(), max.String())
			}
			amountsIn[token] = amount
		}

		senderAddr, err := sdk.AccAddressFromBech32(sender)
		if err != nil {
			return types.ErrInvalidInput.Wrap(err.Error())
		}
		for _, token := range pool.Tokens {
			amount := amountsIn[token]
			if err := k.pullTokens(ctx, senderAddr, poolId, token, amount); err != nil {
				return err
			}
			rec := pool.Records[token]
			rec.Balance = rec.Balance.Add(amount)
			pool.Records[token] = rec
		}
		k.SetPool(ctx, pool)

		if err := k.mintShares(ctx, poolId, senderAddr, sharesOut); err != nil {
			return err
		}

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeJoinPool,
				sdk.NewAttribute(types.AttributeKeyPoolId, math.NewIntFromUint64(poolId).String()),
				sdk.NewAttribute(types.AttributeKeyTrader, sender),
				sdk.NewAttribute(types.AttributeKeyShares, sharesOut.String()),
			),
		)
		k.logger.Info("pool joined", "pool", poolId, "shares", sharesOut.String())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return amountsIn, nil
}

// ExitPool burns sharesIn minus the exit fee and pushes a proportional slice
// of every bound token to the sender. The fee is paid in shares and routed
// to the fee collector; withdrawals round down.
func (k *Keeper) ExitPool(ctx sdk.Context, sender string, poolId uint64, sharesIn math.Int, minAmountsOut map[string]math.LegacyDec) (map[string]math.LegacyDec, error) {
	if err := k.checkNotPaused(ctx); err != nil {
		return nil, err
	}
	amountsOut := map[string]math.LegacyDec{}
	err := k.withPoolLock(ctx, poolId, func() error {
		pool, err := k.GetPool(ctx, poolId)
		if err != nil {
			return err
		}
		if !pool.Finalized {
			return types.ErrNotFinalized.Wrapf("pool %d", poolId)
		}
		if !sharesIn.IsPositive() {
			return types.ErrInvalidInput.Wrap("shares in must be positive")
		}

		exitFeeShares := math.LegacyNewDecFromInt(sharesIn).Mul(k.GetParams(ctx).ExitFee).TruncateInt()
		refundShares := sharesIn.Sub(exitFeeShares)
		if !refundShares.IsPositive() {
			return types.ErrMathApprox.Wrap("shares consumed by exit fee")
		}

		totalShares := k.TotalShares(ctx, poolId)
		ratio := math.LegacyNewDecFromInt(refundShares).Quo(math.LegacyNewDecFromInt(totalShares))
		if ratio.IsZero() {
			return types.ErrMathApprox.Wrap("zero share ratio")
		}

		for _, token := range pool.Tokens {
			rec := pool.Records[token]
			amount := ratio.Mul(rec.Balance).TruncateDec()
			if amount.IsZero() {
				return types.ErrMathApprox.Wrapf("zero withdrawal for %s", token)
			}
			if min, ok := minAmountsOut[token]; ok && amount.LT(min) {
				return types.ErrLimitOut.Wrapf("%s withdrawal %s below limit %s", token, amount.String(), min.String())
			}
			amountsOut[token] = amount
		}

		senderAddr, err := sdk.AccAddressFromBech32(sender)
		if err != nil {
			return types.ErrInvalidInput.Wrap(err.Error())
		}

		if err := k.burnShares(ctx, poolId, senderAddr, refundShares); err != nil {
			return err
		}
		if exitFeeShares.IsPositive() {
			feeCoins := sdk.NewCoins(sdk.NewCoin(types.ShareDenom(poolId), exitFeeShares))
			if err := k.bankKeeper.SendCoins(ctx, senderAddr, FeeCollectorAddress(), feeCoins); err != nil {
				return err
			}
		}

		for _, token := range pool.Tokens {
			amount := amountsOut[token]
			rec := pool.Records[token]
			rec.Balance = rec.Balance.Sub(amount)
			pool.Records[token] = rec
			if err := k.pushTokens(ctx, poolId, senderAddr, token, amount); err != nil {
				return err
			}
		}
		k.SetPool(ctx, pool)

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeExitPool,
				sdk.NewAttribute(types.AttributeKeyPoolId, math.NewIntFromUint64(poolId).String()),
				sdk.NewAttribute(types.AttributeKeyTrader, sender),
				sdk.NewAttribute(types.AttributeKeyShares, sharesIn.String()),
				sdk.NewAttribute(types.AttributeKeyExitFee, exitFeeShares.String()),
			),
		)
		k.logger.Info("pool exited", "pool", poolId, "shares", sharesIn.String())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return amountsOut, nil
}
