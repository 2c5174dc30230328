package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/dynaswap/dynaswap/x/smartpool/types"
)

// withPoolLock runs fn under the per-pool mutual-exclusion flag. A nested
// call on the same pool fails with ErrReentry. The flag is cleared on every
// exit path.
func (k *Keeper) withPoolLock(ctx sdk.Context, poolId uint64, fn func() error) error {
	store := k.GetStore(ctx)
	key := append(LockKeyPrefix, poolIdBytes(poolId)...)

	if store.Has(key) {
		return types.ErrReentry.Wrapf("pool %d", poolId)
	}
	store.Set(key, []byte{1})
	defer store.Delete(key)

	return fn()
}

// ensureUnlocked rejects read paths entered while a mutating call on the
// same pool is in flight
func (k *Keeper) ensureUnlocked(ctx sdk.Context, poolId uint64) error {
	key := append(LockKeyPrefix, poolIdBytes(poolId)...)
	if k.GetStore(ctx).Has(key) {
		return types.ErrReentry.Wrapf("pool %d", poolId)
	}
	return nil
}
