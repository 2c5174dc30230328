package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/dynaswap/dynaswap/x/smartpool/types"
)

// InitGenesis initializes the smartpool module state from genesis
func (k *Keeper) InitGenesis(ctx sdk.Context, state *types.GenesisState) error {
	if err := k.SetParams(ctx, state.Params); err != nil {
		return err
	}
	for i := range state.Pools {
		pool := state.Pools[i]
		k.SetPool(ctx, &pool)
	}
	k.setNextPoolId(ctx, state.NextPoolId)
	return nil
}

// ExportGenesis exports the smartpool module state
func (k *Keeper) ExportGenesis(ctx sdk.Context) *types.GenesisState {
	return &types.GenesisState{
		Params:     k.GetParams(ctx),
		Pools:      k.GetAllPools(ctx),
		NextPoolId: k.peekNextPoolId(ctx),
	}
}
