package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/dynaswap/dynaswap/x/pricefeed/types"
)

// InitGenesis initializes the pricefeed module state from genesis
func (k *Keeper) InitGenesis(ctx sdk.Context, genState *types.GenesisState) {
	for i := range genState.Feeds {
		feed := genState.Feeds[i]
		k.SetFeed(ctx, &feed)
	}
	for _, fr := range genState.Rounds {
		for _, round := range fr.Rounds {
			k.setRound(ctx, fr.FeedId, round)
		}
	}
}

// ExportGenesis exports the pricefeed module state
func (k *Keeper) ExportGenesis(ctx sdk.Context) *types.GenesisState {
	genState := types.DefaultGenesisState()
	genState.Feeds = k.GetAllFeeds(ctx)
	for _, feed := range genState.Feeds {
		rounds := k.GetRounds(ctx, feed.Id)
		if len(rounds) > 0 {
			genState.Rounds = append(genState.Rounds, types.FeedRounds{
				FeedId: feed.Id,
				Rounds: rounds,
			})
		}
	}
	return genState
}
