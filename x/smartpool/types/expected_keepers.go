package types

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	pricefeedtypes "github.com/dynaswap/dynaswap/x/pricefeed/types"
)

// BankKeeper defines the expected interface for the bank module. Pool tokens
// are held at a per-pool address; pool shares are minted and burned through
// the module account.
type BankKeeper interface {
	MintCoins(ctx context.Context, moduleName string, amt sdk.Coins) error
	BurnCoins(ctx context.Context, moduleName string, amt sdk.Coins) error
	SendCoins(ctx context.Context, fromAddr, toAddr sdk.AccAddress, amt sdk.Coins) error
	SendCoinsFromAccountToModule(ctx context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error
	SendCoinsFromModuleToAccount(ctx context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error
	GetBalance(ctx context.Context, addr sdk.AccAddress, denom string) sdk.Coin
	GetSupply(ctx context.Context, denom string) sdk.Coin
}

// PricefeedKeeper defines the expected interface for the pricefeed module
type PricefeedKeeper interface {
	GetFeed(ctx sdk.Context, feedId string) (pricefeedtypes.Feed, bool)
	LatestRound(ctx sdk.Context, feedId string) (pricefeedtypes.Round, bool)
	GetRound(ctx sdk.Context, feedId string, roundId uint64) (pricefeedtypes.Round, bool)
}
