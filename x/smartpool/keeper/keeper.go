package keeper

import (
	"encoding/binary"
	"encoding/json"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"

	"github.com/dynaswap/dynaswap/x/smartpool/types"
)

// Store key prefixes
var (
	PoolKeyPrefix = []byte{0x01}
	NextPoolIdKey = []byte{0x02}
	ParamsKey     = []byte{0x03}
	LockKeyPrefix = []byte{0x04}
)

// Keeper manages the smartpool module state
type Keeper struct {
	cdc             codec.BinaryCodec
	storeKey        storetypes.StoreKey
	bankKeeper      types.BankKeeper
	pricefeedKeeper types.PricefeedKeeper
	authority       string
	logger          log.Logger
}

// NewKeeper creates a new smartpool keeper
func NewKeeper(
	cdc codec.BinaryCodec,
	storeKey storetypes.StoreKey,
	bankKeeper types.BankKeeper,
	pricefeedKeeper types.PricefeedKeeper,
	authority string,
	logger log.Logger,
) *Keeper {
	return &Keeper{
		cdc:             cdc,
		storeKey:        storeKey,
		bankKeeper:      bankKeeper,
		pricefeedKeeper: pricefeedKeeper,
		authority:       authority,
		logger:          logger.With("module", "x/smartpool"),
	}
}

// Logger returns the module logger
func (k *Keeper) Logger() log.Logger {
	return k.logger
}

// GetAuthority returns the governance authority address
func (k *Keeper) GetAuthority() string {
	return k.authority
}

// GetStore returns the KVStore
func (k *Keeper) GetStore(ctx sdk.Context) storetypes.KVStore {
	return ctx.KVStore(k.storeKey)
}

func poolIdBytes(poolId uint64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, poolId)
	return bz
}

func poolKey(poolId uint64) []byte {
	return append(PoolKeyPrefix, poolIdBytes(poolId)...)
}

// PoolAddress derives the account address holding a pool's tokens
func PoolAddress(poolId uint64) sdk.AccAddress {
	return address.Module(types.ModuleName, poolIdBytes(poolId))
}

// FeeCollectorAddress is where exit fees are routed
func FeeCollectorAddress() sdk.AccAddress {
	return authtypes.NewModuleAddress(authtypes.FeeCollectorName)
}

// ============ Pool storage ============

// SetPool saves a pool to the store
func (k *Keeper) SetPool(ctx sdk.Context, pool *types.Pool) {
	store := k.GetStore(ctx)
	bz, _ := json.Marshal(pool)
	store.Set(poolKey(pool.Id), bz)
}

// GetPool retrieves a pool from the store
func (k *Keeper) GetPool(ctx sdk.Context, poolId uint64) (*types.Pool, error) {
	store := k.GetStore(ctx)
	bz := store.Get(poolKey(poolId))
	if bz == nil {
		return nil, types.ErrPoolNotFound.Wrapf("pool %d", poolId)
	}
	var pool types.Pool
	if err := json.Unmarshal(bz, &pool); err != nil {
		return nil, types.ErrPoolNotFound.Wrapf("pool %d: corrupt record", poolId)
	}
	return &pool, nil
}

// GetAllPools returns all pools in id order
func (k *Keeper) GetAllPools(ctx sdk.Context) []types.Pool {
	store := k.GetStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, PoolKeyPrefix)
	defer iterator.Close()

	var pools []types.Pool
	for ; iterator.Valid(); iterator.Next() {
		var pool types.Pool
		if err := json.Unmarshal(iterator.Value(), &pool); err != nil {
			continue
		}
		pools = append(pools, pool)
	}
	return pools
}

// NextPoolId allocates and persists the next pool id
func (k *Keeper) NextPoolId(ctx sdk.Context) uint64 {
	store := k.GetStore(ctx)
	id := uint64(1)
	if bz := store.Get(NextPoolIdKey); bz != nil {
		id = binary.BigEndian.Uint64(bz)
	}
	store.Set(NextPoolIdKey, poolIdBytes(id+1))
	return id
}

// setNextPoolId seeds the pool id counter (genesis import)
func (k *Keeper) setNextPoolId(ctx sdk.Context, id uint64) {
	k.GetStore(ctx).Set(NextPoolIdKey, poolIdBytes(id))
}

func (k *Keeper) peekNextPoolId(ctx sdk.Context) uint64 {
	if bz := k.GetStore(ctx).Get(NextPoolIdKey); bz != nil {
		return binary.BigEndian.Uint64(bz)
	}
	return 1
}

// ============ Params ============

// GetParams returns the module parameters
func (k *Keeper) GetParams(ctx sdk.Context) types.Params {
	store := k.GetStore(ctx)
	bz := store.Get(ParamsKey)
	if bz == nil {
		return types.DefaultParams()
	}
	var params types.Params
	if err := json.Unmarshal(bz, &params); err != nil {
		return types.DefaultParams()
	}
	return params
}

// SetParams stores the module parameters
func (k *Keeper) SetParams(ctx sdk.Context, params types.Params) error {
	if err := params.Validate(); err != nil {
		return types.ErrInvalidInput.Wrap(err.Error())
	}
	store := k.GetStore(ctx)
	bz, _ := json.Marshal(params)
	store.Set(ParamsKey, bz)
	return nil
}

// ============ Token movement ============

// requireWholeAmount rejects caller-supplied amounts with fractional base
// units. Transfers move whole base units only, so a fractional amount would
// credit the pool record with value that never arrives in custody.
func requireWholeAmount(amount math.LegacyDec) error {
	if !amount.Equal(amount.TruncateDec()) {
		return types.ErrInvalidInput.Wrapf("amount %s has fractional base units", amount.String())
	}
	return nil
}

// pullTokens moves amount of denom from an account into the pool's address.
// Amounts are truncated to whole base units before transfer.
func (k *Keeper) pullTokens(ctx sdk.Context, from sdk.AccAddress, poolId uint64, denom string, amount math.LegacyDec) error {
	coin := sdk.NewCoin(denom, amount.TruncateInt())
	if coin.IsZero() {
		return nil
	}
	if err := k.bankKeeper.SendCoins(ctx, from, PoolAddress(poolId), sdk.NewCoins(coin)); err != nil {
		return types.ErrInvalidInput.Wrapf("pull %s: %s", coin.String(), err.Error())
	}
	return nil
}

// pushTokens moves amount of denom from the pool's address to an account
func (k *Keeper) pushTokens(ctx sdk.Context, poolId uint64, to sdk.AccAddress, denom string, amount math.LegacyDec) error {
	coin := sdk.NewCoin(denom, amount.TruncateInt())
	if coin.IsZero() {
		return nil
	}
	if err := k.bankKeeper.SendCoins(ctx, PoolAddress(poolId), to, sdk.NewCoins(coin)); err != nil {
		return types.ErrInvalidInput.Wrapf("push %s: %s", coin.String(), err.Error())
	}
	return nil
}

// routeExitFee moves a token exit fee from the pool address to the fee
// collector
func (k *Keeper) routeExitFee(ctx sdk.Context, poolId uint64, denom string, amount math.LegacyDec) error {
	return k.pushTokens(ctx, poolId, FeeCollectorAddress(), denom, amount)
}

// TotalShares returns the outstanding share supply of a pool
func (k *Keeper) TotalShares(ctx sdk.Context, poolId uint64) math.Int {
	return k.bankKeeper.GetSupply(ctx, types.ShareDenom(poolId)).Amount
}

// mintShares mints pool shares to an account
func (k *Keeper) mintShares(ctx sdk.Context, poolId uint64, to sdk.AccAddress, amount math.Int) error {
	coins := sdk.NewCoins(sdk.NewCoin(types.ShareDenom(poolId), amount))
	if err := k.bankKeeper.MintCoins(ctx, types.ModuleName, coins); err != nil {
		return err
	}
	return k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, to, coins)
}

// burnShares burns pool shares held by an account
func (k *Keeper) burnShares(ctx sdk.Context, poolId uint64, from sdk.AccAddress, amount math.Int) error {
	coins := sdk.NewCoins(sdk.NewCoin(types.ShareDenom(poolId), amount))
	if err := k.bankKeeper.SendCoinsFromAccountToModule(ctx, from, types.ModuleName, coins); err != nil {
		return err
	}
	return k.bankKeeper.BurnCoins(ctx, types.ModuleName, coins)
}

// checkNotPaused gates every mutating entry point on the registry pause
// switch
func (k *Keeper) checkNotPaused(ctx sdk.Context) error {
	if k.GetParams(ctx).Paused {
		return types.ErrPaused
	}
	return nil
}
