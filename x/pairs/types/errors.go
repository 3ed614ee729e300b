package types

import (
	"cosmossdk.io/errors"
)

// Pairs module sentinel errors. The reason strings are the stable reason codes
// surfaced to callers and indexers.
var (
	ErrIdenticalAddresses          = errors.Register(ModuleName, 2, "IDENTICAL_ADDRESSES")
	ErrZeroAddress                 = errors.Register(ModuleName, 3, "ZERO_ADDRESS")
	ErrPairExists                  = errors.Register(ModuleName, 4, "PAIR_EXISTS")
	ErrCooldown                    = errors.Register(ModuleName, 5, "COOLDOWN")
	ErrForbidden                   = errors.Register(ModuleName, 6, "FORBIDDEN")
	ErrFeeTooHigh                  = errors.Register(ModuleName, 7, "FEE_TOO_HIGH")
	ErrProtocolFeeTooHigh          = errors.Register(ModuleName, 8, "PROTOCOL_FEE_TOO_HIGH")
	ErrInvalidPair                 = errors.Register(ModuleName, 9, "INVALID_PAIR")
	ErrNoFeeRecipient              = errors.Register(ModuleName, 10, "NO_FEE_RECIPIENT")
	ErrInsufficientLiquidityMinted = errors.Register(ModuleName, 11, "INSUFFICIENT_LIQUIDITY_MINTED")
	ErrInsufficientLiquidityBurned = errors.Register(ModuleName, 12, "INSUFFICIENT_LIQUIDITY_BURNED")
	ErrInsufficientOutputAmount    = errors.Register(ModuleName, 13, "INSUFFICIENT_OUTPUT_AMOUNT")
	ErrInsufficientInputAmount     = errors.Register(ModuleName, 14, "INSUFFICIENT_INPUT_AMOUNT")
	ErrInsufficientLiquidity       = errors.Register(ModuleName, 15, "INSUFFICIENT_LIQUIDITY")
	ErrInsufficientAmount          = errors.Register(ModuleName, 16, "INSUFFICIENT_AMOUNT")
	ErrInvalidTo                   = errors.Register(ModuleName, 17, "INVALID_TO")
	ErrCallbackFailed              = errors.Register(ModuleName, 18, "CALLBACK_FAILED")
	ErrK                           = errors.Register(ModuleName, 19, "K")
	ErrOverflow                    = errors.Register(ModuleName, 20, "OVERFLOW")
	ErrLocked                      = errors.Register(ModuleName, 21, "LOCKED")
	ErrTransferFailed              = errors.Register(ModuleName, 22, "TRANSFER_FAILED")
	ErrInsufficientShares          = errors.Register(ModuleName, 23, "INSUFFICIENT_SHARES")
	ErrInvalidToken                = errors.Register(ModuleName, 24, "INVALID_TOKEN")
	ErrInvalidGenesis              = errors.Register(ModuleName, 25, "INVALID_GENESIS")
)
