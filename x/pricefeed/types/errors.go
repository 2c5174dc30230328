package types

import (
	"cosmossdk.io/errors"
)

// Module error codes
var (
	ErrFeedNotFound       = errors.Register(ModuleName, 1, "feed not found")
	ErrFeedExists         = errors.Register(ModuleName, 2, "feed already registered")
	ErrRoundNotFound      = errors.Register(ModuleName, 3, "round not found")
	ErrNotFeedOwner       = errors.Register(ModuleName, 4, "caller is not the feed owner")
	ErrNonIncreasingRound = errors.Register(ModuleName, 5, "round id or timestamp not increasing")
	ErrInvalidDecimals    = errors.Register(ModuleName, 6, "invalid feed decimals")
	ErrInvalidInput       = errors.Register(ModuleName, 7, "invalid input")
)
