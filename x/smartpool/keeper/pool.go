package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/dynaswap/dynaswap/x/smartpool/types"
)

// CreatePool allocates a new unfinalized pool controlled by creator
func (k *Keeper) CreatePool(ctx sdk.Context, creator string) (*types.Pool, error) {
	if err := k.checkNotPaused(ctx); err != nil {
		return nil, err
	}
	if _, err := sdk.AccAddressFromBech32(creator); err != nil {
		return nil, types.ErrInvalidInput.Wrap(err.Error())
	}

	poolId := k.NextPoolId(ctx)
	pool := types.NewPool(poolId, creator, ctx.BlockTime().Unix())
	k.SetPool(ctx, pool)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeCreatePool,
			sdk.NewAttribute(types.AttributeKeyPoolId, math.NewIntFromUint64(poolId).String()),
			sdk.NewAttribute(types.AttributeKeyController, creator),
		),
	)
	k.logger.Info("created pool", "pool", poolId, "controller", creator)
	return pool, nil
}

// requireController loads a pool and checks caller identity
func (k *Keeper) requireController(ctx sdk.Context, poolId uint64, caller string) (*types.Pool, error) {
	pool, err := k.GetPool(ctx, poolId)
	if err != nil {
		return nil, err
	}
	if pool.Controller != caller {
		return nil, types.ErrNotController.Wrapf("pool %d controlled by %s", poolId, pool.Controller)
	}
	return pool, nil
}

// Finalize latches the pool: binding set becomes immutable, public swap is
// enabled and the initial share supply is minted to the controller.
func (k *Keeper) Finalize(ctx sdk.Context, caller string, poolId uint64) (math.Int, error) {
	if err := k.checkNotPaused(ctx); err != nil {
		return math.Int{}, err
	}

	var minted math.Int
	err := k.withPoolLock(ctx, poolId, func() error {
		pool, err := k.requireController(ctx, poolId, caller)
		if err != nil {
			return err
		}
		if pool.Finalized {
			return types.ErrAlreadyFinalized.Wrapf("pool %d", poolId)
		}
		if pool.NumTokens() < types.MinBoundTokens {
			return types.ErrMinTokens.Wrapf("pool %d has %d tokens, need %d", poolId, pool.NumTokens(), types.MinBoundTokens)
		}

		controller, err := sdk.AccAddressFromBech32(pool.Controller)
		if err != nil {
			return types.ErrInvalidInput.Wrap(err.Error())
		}

		pool.Finalized = true
		pool.PublicSwap = true
		k.SetPool(ctx, pool)

		minted = types.InitPoolSupply
		if err := k.mintShares(ctx, poolId, controller, minted); err != nil {
			return err
		}

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeFinalize,
				sdk.NewAttribute(types.AttributeKeyPoolId, math.NewIntFromUint64(poolId).String()),
				sdk.NewAttribute(types.AttributeKeyShares, minted.String()),
			),
		)
		k.logger.Info("finalized pool", "pool", poolId, "tokens", pool.NumTokens())
		return nil
	})
	if err != nil {
		return math.Int{}, err
	}
	return minted, nil
}

// SetSwapFee updates the pool swap fee. Controller only, before finalize.
func (k *Keeper) SetSwapFee(ctx sdk.Context, caller string, poolId uint64, swapFee math.LegacyDec) error {
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
		if swapFee.LT(types.MinFee) || swapFee.GT(types.MaxFee) {
			return types.ErrFeeOutOfRange.Wrapf("fee %s outside [%s, %s]", swapFee.String(), types.MinFee.String(), types.MaxFee.String())
		}
		pool.SwapFee = swapFee
		k.SetPool(ctx, pool)

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeSetSwapFee,
				sdk.NewAttribute(types.AttributeKeyPoolId, math.NewIntFromUint64(poolId).String()),
				sdk.NewAttribute(types.AttributeKeySwapFee, swapFee.String()),
			),
		)
		return nil
	})
}

// SetPublicSwap toggles swapping before finalization. Finalize forces it on.
func (k *Keeper) SetPublicSwap(ctx sdk.Context, caller string, poolId uint64, public bool) error {
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
		pool.PublicSwap = public
		k.SetPool(ctx, pool)
		return nil
	})
}

// SetController transfers pool control. Deliberately allowed after
// finalization: the latch freezes the binding set, not the admin identity.
func (k *Keeper) SetController(ctx sdk.Context, caller string, poolId uint64, newController string) error {
	if err := k.checkNotPaused(ctx); err != nil {
		return err
	}
	return k.withPoolLock(ctx, poolId, func() error {
		pool, err := k.requireController(ctx, poolId, caller)
		if err != nil {
			return err
		}
		if _, err := sdk.AccAddressFromBech32(newController); err != nil {
			return types.ErrInvalidInput.Wrap(err.Error())
		}
		pool.Controller = newController
		k.SetPool(ctx, pool)

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeSetControl,
				sdk.NewAttribute(types.AttributeKeyPoolId, math.NewIntFromUint64(poolId).String()),
				sdk.NewAttribute(types.AttributeKeyController, newController),
			),
		)
		return nil
	})
}

// SetCoverageParams updates the coverage spread inputs
func (k *Keeper) SetCoverageParams(ctx sdk.Context, caller string, poolId uint64, z, horizon math.LegacyDec) error {
	if err := k.checkNotPaused(ctx); err != nil {
		return err
	}
	return k.withPoolLock(ctx, poolId, func() error {
		pool, err := k.requireController(ctx, poolId, caller)
		if err != nil {
			return err
		}
		if !z.IsPositive() || !horizon.IsPositive() {
			return types.ErrInvalidInput.Wrap("coverage z and horizon must be positive")
		}
		pool.CoverageZ = z
		pool.CoverageHorizon = horizon
		k.SetPool(ctx, pool)

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeSetCoverage,
				sdk.NewAttribute(types.AttributeKeyPoolId, math.NewIntFromUint64(poolId).String()),
			),
		)
		return nil
	})
}

// SetLookback updates the volatility estimator window
func (k *Keeper) SetLookback(ctx sdk.Context, caller string, poolId uint64, rounds, seconds uint64) error {
	if err := k.checkNotPaused(ctx); err != nil {
		return err
	}
	return k.withPoolLock(ctx, poolId, func() error {
		pool, err := k.requireController(ctx, poolId, caller)
		if err != nil {
			return err
		}
		if rounds == 0 || seconds == 0 {
			return types.ErrInvalidInput.Wrap("lookback rounds and seconds must be positive")
		}
		pool.LookbackRounds = rounds
		pool.LookbackSeconds = seconds
		k.SetPool(ctx, pool)

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeSetLookback,
				sdk.NewAttribute(types.AttributeKeyPoolId, math.NewIntFromUint64(poolId).String()),
			),
		)
		return nil
	})
}
