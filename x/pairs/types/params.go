package types

import (
	"math/big"
	"time"

	sdkmath "cosmossdk.io/math"
)

const (
	// MinimumLiquidity is the number of shares locked in the burn sink on the first deposit.
	MinimumLiquidity = 1000

	// FeeDenominator is the basis of the trading fee (fee is parts per thousand).
	FeeDenominator = 1000

	DefaultTradingFee            uint64 = 3
	MaxTradingFee                uint64 = 100
	DefaultProtocolFeePercentage uint64 = 0
	MaxProtocolFeePercentage     uint64 = 50

	// PairCreationCooldown is the minimum delay between two pairs created by the same account.
	PairCreationCooldown = 60 * time.Second

	// ReserveBits bounds reserves and the UQ112x112 resolution.
	ReserveBits = 112
)

// MaxReserve is the largest value a reserve may hold (2^112 - 1).
var MaxReserve = sdkmath.NewIntFromBigInt(
	new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), ReserveBits), big.NewInt(1)),
)

// ValidateTradingFee checks the trading fee against its hard cap
func ValidateTradingFee(fee uint64) error {
	if fee > MaxTradingFee {
		return ErrFeeTooHigh.Wrapf("%d > %d", fee, MaxTradingFee)
	}
	return nil
}

// ValidateProtocolFeePercentage checks the protocol share of the trading fee against its hard cap
func ValidateProtocolFeePercentage(pct uint64) error {
	if pct > MaxProtocolFeePercentage {
		return ErrProtocolFeeTooHigh.Wrapf("%d > %d", pct, MaxProtocolFeePercentage)
	}
	return nil
}
