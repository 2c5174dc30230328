package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/dynaswap/dynaswap/x/smartpool/types"
)

// BindToken adds a token to an unfinalized pool, pulls the initial balance
// from the controller and snapshots the feed price the adjusted weight is
// anchored to.
func (k *Keeper) BindToken(ctx sdk.Context, caller string, poolId uint64, token string, balance, denorm math.LegacyDec, feedId string) error {
	if err := k.checkNotPaused(ctx); err != nil {
		return err
	}
	return k.withPoolLock(ctx, poolId, func() error {
		pool, err := k.requireController(ctx, poolId, caller)
		if err != nil {
			return err
		}
		if pool.Finalized {
			return types.ErrAlreadyFinalized.Wrapf("pool %d", poolId)
		}
		if pool.IsBound(token) {
			return types.ErrTokenBound.Wrap(token)
		}
		if pool.NumTokens() >= types.MaxBoundTokens {
			return types.ErrMaxTokens.Wrapf("pool %d already binds %d tokens", poolId, pool.NumTokens())
		}
		if denorm.LT(types.MinWeight) || denorm.GT(types.MaxWeight) {
			return types.ErrWeightOutOfRange.Wrapf("denorm %s outside [%s, %s]", denorm.String(), types.MinWeight.String(), types.MaxWeight.String())
		}
		if balance.LT(types.MinBalance) {
			return types.ErrBalanceOutOfRange.Wrapf("balance %s below min", balance.String())
		}
		if err := requireWholeAmount(balance); err != nil {
			return err
		}
		newTotal := pool.TotalWeight.Add(denorm)
		if newTotal.GT(types.MaxTotalWeight) {
			return types.ErrMaxTotalWeight.Wrapf("total weight %s above max %s", newTotal.String(), types.MaxTotalWeight.String())
		}

		initialPrice, err := k.snapshotFeedPrice(ctx, feedId)
		if err != nil {
			return err
		}

		callerAddr, err := sdk.AccAddressFromBech32(caller)
		if err != nil {
			return types.ErrInvalidInput.Wrap(err.Error())
		}
		if err := k.pullTokens(ctx, callerAddr, poolId, token, balance); err != nil {
			return err
		}

		pool.Tokens = append(pool.Tokens, token)
		pool.Records[token] = types.Record{
			Bound:   true,
			Index:   len(pool.Tokens) - 1,
			Denorm:  denorm,
			Balance: balance,
		}
		pool.PriceBindings[token] = types.PriceBinding{
			FeedId:       feedId,
			InitialPrice: initialPrice,
		}
		pool.TotalWeight = newTotal
		k.SetPool(ctx, pool)

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeBindToken,
				sdk.NewAttribute(types.AttributeKeyPoolId, math.NewIntFromUint64(poolId).String()),
				sdk.NewAttribute(types.AttributeKeyToken, token),
				sdk.NewAttribute(types.AttributeKeyDenorm, denorm.String()),
				sdk.NewAttribute(types.AttributeKeyBalance, balance.String()),
			),
		)
		k.logger.Info("bound token", "pool", poolId, "token", token, "denorm", denorm.String())
		return nil
	})
}

// RebindToken adjusts the weight and balance of a bound token. The balance
// delta is pulled from the controller when increasing and pushed back minus
// the exit fee when decreasing. The feed snapshot is re-anchored.
func (k *Keeper) RebindToken(ctx sdk.Context, caller string, poolId uint64, token string, balance, denorm math.LegacyDec, feedId string) error {
	if err := k.checkNotPaused(ctx); err != nil {
		return err
	}
	return k.withPoolLock(ctx, poolId, func() error {
		pool, err := k.requireController(ctx, poolId, caller)
		if err != nil {
			return err
		}
		if pool.Finalized {
			return types.ErrAlreadyFinalized.Wrapf("pool %d", poolId)
		}
		if !pool.IsBound(token) {
			return types.ErrTokenNotBound.Wrap(token)
		}
		if denorm.LT(types.MinWeight) || denorm.GT(types.MaxWeight) {
			return types.ErrWeightOutOfRange.Wrapf("denorm %s outside [%s, %s]", denorm.String(), types.MinWeight.String(), types.MaxWeight.String())
		}
		if balance.LT(types.MinBalance) {
			return types.ErrBalanceOutOfRange.Wrapf("balance %s below min", balance.String())
		}
		if err := requireWholeAmount(balance); err != nil {
			return err
		}

		rec := pool.Records[token]
		newTotal := pool.TotalWeight.Sub(rec.Denorm).Add(denorm)
		if newTotal.GT(types.MaxTotalWeight) {
			return types.ErrMaxTotalWeight.Wrapf("total weight %s above max %s", newTotal.String(), types.MaxTotalWeight.String())
		}

		initialPrice, err := k.snapshotFeedPrice(ctx, feedId)
		if err != nil {
			return err
		}

		callerAddr, err := sdk.AccAddressFromBech32(caller)
		if err != nil {
			return types.ErrInvalidInput.Wrap(err.Error())
		}

		oldBalance := rec.Balance
		switch {
		case balance.GT(oldBalance):
			if err := k.pullTokens(ctx, callerAddr, poolId, token, balance.Sub(oldBalance)); err != nil {
				return err
			}
		case balance.LT(oldBalance):
			withdrawn := oldBalance.Sub(balance)
			exitFee := withdrawn.Mul(k.GetParams(ctx).ExitFee)
			if err := k.pushTokens(ctx, poolId, callerAddr, token, withdrawn.Sub(exitFee)); err != nil {
				return err
			}
			if err := k.routeExitFee(ctx, poolId, token, exitFee); err != nil {
				return err
			}
		}

		rec.Denorm = denorm
		rec.Balance = balance
		pool.Records[token] = rec
		pool.PriceBindings[token] = types.PriceBinding{
			FeedId:       feedId,
			InitialPrice: initialPrice,
		}
		pool.TotalWeight = newTotal
		k.SetPool(ctx, pool)

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeRebindToken,
				sdk.NewAttribute(types.AttributeKeyPoolId, math.NewIntFromUint64(poolId).String()),
				sdk.NewAttribute(types.AttributeKeyToken, token),
				sdk.NewAttribute(types.AttributeKeyDenorm, denorm.String()),
				sdk.NewAttribute(types.AttributeKeyBalance, balance.String()),
			),
		)
		return nil
	})
}

// UnbindToken removes a token from an unfinalized pool. The token list stays
// dense: the removed slot is filled by the last token and its record index
// is re-pointed.
func (k *Keeper) UnbindToken(ctx sdk.Context, caller string, poolId uint64, token string) error {
	if err := k.checkNotPaused(ctx); err != nil {
		return err
	}
	return k.withPoolLock(ctx, poolId, func() error {
		pool, err := k.requireController(ctx, poolId, caller)
		if err != nil {
			return err
		}
		if pool.Finalized {
			return types.ErrAlreadyFinalized.Wrapf("pool %d", poolId)
		}
		if !pool.IsBound(token) {
			return types.ErrTokenNotBound.Wrap(token)
		}

		rec := pool.Records[token]
		balance := rec.Balance
		exitFee := balance.Mul(k.GetParams(ctx).ExitFee)

		callerAddr, err := sdk.AccAddressFromBech32(caller)
		if err != nil {
			return types.ErrInvalidInput.Wrap(err.Error())
		}

		pool.TotalWeight = pool.TotalWeight.Sub(rec.Denorm)

		last := len(pool.Tokens) - 1
		if rec.Index != last {
			moved := pool.Tokens[last]
			pool.Tokens[rec.Index] = moved
			movedRec := pool.Records[moved]
			movedRec.Index = rec.Index
			pool.Records[moved] = movedRec
		}
		pool.Tokens = pool.Tokens[:last]
		delete(pool.Records, token)
		delete(pool.PriceBindings, token)
		k.SetPool(ctx, pool)

		if err := k.pushTokens(ctx, poolId, callerAddr, token, balance.Sub(exitFee)); err != nil {
			return err
		}
		if err := k.routeExitFee(ctx, poolId, token, exitFee); err != nil {
			return err
		}

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeUnbindToken,
				sdk.NewAttribute(types.AttributeKeyPoolId, math.NewIntFromUint64(poolId).String()),
				sdk.NewAttribute(types.AttributeKeyToken, token),
				sdk.NewAttribute(types.AttributeKeyExitFee, exitFee.String()),
			),
		)
		k.logger.Info("unbound token", "pool", poolId, "token", token)
		return nil
	})
}

// Gulp reconciles a bound token's declared balance with the tokens actually
// held at the pool address. Idempotent absent external transfers.
func (k *Keeper) Gulp(ctx sdk.Context, poolId uint64, token string) (math.LegacyDec, error) {
	if err := k.checkNotPaused(ctx); err != nil {
		return math.LegacyDec{}, err
	}
	var balance math.LegacyDec
	err := k.withPoolLock(ctx, poolId, func() error {
		pool, err := k.GetPool(ctx, poolId)
		if err != nil {
			return err
		}
		if !pool.IsBound(token) {
			return types.ErrTokenNotBound.Wrap(token)
		}

		held := k.bankKeeper.GetBalance(ctx, PoolAddress(poolId), token)
		balance = math.LegacyNewDecFromInt(held.Amount)

		rec := pool.Records[token]
		rec.Balance = balance
		pool.Records[token] = rec
		k.SetPool(ctx, pool)

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeGulp,
				sdk.NewAttribute(types.AttributeKeyPoolId, math.NewIntFromUint64(poolId).String()),
				sdk.NewAttribute(types.AttributeKeyToken, token),
				sdk.NewAttribute(types.AttributeKeyBalance, balance.String()),
			),
		)
		return nil
	})
	if err != nil {
		return math.LegacyDec{}, err
	}
	return balance, nil
}

// snapshotFeedPrice reads the latest round of a feed for the bind-time
// anchor. The feed must exist and its latest price must be positive; an
// unusable anchor would make every adjusted weight undefined.
func (k *Keeper) snapshotFeedPrice(ctx sdk.Context, feedId string) (math.LegacyDec, error) {
	if _, ok := k.pricefeedKeeper.GetFeed(ctx, feedId); !ok {
		return math.LegacyDec{}, types.ErrFeedNotBound.Wrapf("feed %s not registered", feedId)
	}
	latest, ok := k.pricefeedKeeper.LatestRound(ctx, feedId)
	if !ok {
		return math.LegacyDec{}, types.ErrFeedNotBound.Wrapf("feed %s has no rounds", feedId)
	}
	if !latest.Price.IsPositive() {
		return math.LegacyDec{}, types.ErrInvalidInput.Wrapf("feed %s latest price %s not positive", feedId, latest.Price.String())
	}
	return latest.Price, nil
}
