package types

import (
	"cosmossdk.io/errors"
)

// Module error codes
var (
	ErrPoolNotFound       = errors.Register(ModuleName, 1, "pool not found")
	ErrNotController      = errors.Register(ModuleName, 2, "caller is not the pool controller")
	ErrNotFinalized       = errors.Register(ModuleName, 3, "pool is not finalized")
	ErrAlreadyFinalized   = errors.Register(ModuleName, 4, "pool is already finalized")
	ErrTokenBound         = errors.Register(ModuleName, 5, "token is already bound")
	ErrTokenNotBound      = errors.Register(ModuleName, 6, "token is not bound")
	ErrMaxTokens          = errors.Register(ModuleName, 7, "max bound tokens reached")
	ErrMinTokens          = errors.Register(ModuleName, 8, "not enough bound tokens")
	ErrReentry            = errors.Register(ModuleName, 9, "reentrant pool call")
	ErrPublicSwapDisabled = errors.Register(ModuleName, 10, "public swap is disabled")
	ErrPaused             = errors.Register(ModuleName, 11, "module is paused")
	ErrWeightOutOfRange   = errors.Register(ModuleName, 12, "denormalized weight out of range")
	ErrBalanceOutOfRange  = errors.Register(ModuleName, 13, "balance out of range")
	ErrFeeOutOfRange      = errors.Register(ModuleName, 14, "swap fee out of range")
	ErrMaxTotalWeight     = errors.Register(ModuleName, 15, "max total weight exceeded")
	ErrMaxInRatio         = errors.Register(ModuleName, 16, "input amount exceeds max in ratio")
	ErrMaxOutRatio        = errors.Register(ModuleName, 17, "output amount exceeds max out ratio")
	ErrLimitIn            = errors.Register(ModuleName, 18, "input amount above caller limit")
	ErrLimitOut           = errors.Register(ModuleName, 19, "output amount below caller limit")
	ErrLimitPrice         = errors.Register(ModuleName, 20, "spot price above caller limit")
	ErrBadLimitPrice      = errors.Register(ModuleName, 21, "invalid price limit")
	ErrMathApprox         = errors.Register(ModuleName, 22, "math approximation degenerated")
	ErrStalePrice         = errors.Register(ModuleName, 23, "price feed is stale")
	ErrFeedNotBound       = errors.Register(ModuleName, 24, "token has no price binding")
	ErrInvalidInput       = errors.Register(ModuleName, 25, "invalid input")
)
