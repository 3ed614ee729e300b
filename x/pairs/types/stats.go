package types

import (
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// PairVolume is the cumulative reported volume of a pair.
type PairVolume struct {
	Pair       sdk.AccAddress `json:"pair"`
	Volume     sdkmath.Int    `json:"volume"`
	LastUpdate int64          `json:"last_update"` // unix seconds
}

// PairStats is the reporting view of one pair.
type PairStats struct {
	Pair               sdk.AccAddress `json:"pair"`
	Token0             string         `json:"token0"`
	Token1             string         `json:"token1"`
	Reserve0           sdkmath.Int    `json:"reserve0"`
	Reserve1           sdkmath.Int    `json:"reserve1"`
	TotalSupply        sdkmath.Int    `json:"total_supply"`
	Volume             sdkmath.Int    `json:"volume"`
	LastVolumeUpdate   int64          `json:"last_volume_update"`
	TotalFeeCollected0 sdkmath.Int    `json:"total_fee_collected0"`
	TotalFeeCollected1 sdkmath.Int    `json:"total_fee_collected1"`
	TradingFee         uint64         `json:"trading_fee"`
}

// DEXStats is the reporting view of the factory.
type DEXStats struct {
	PairCount             uint64         `json:"pair_count"`
	TotalVolume           sdkmath.Int    `json:"total_volume"`
	TradingFee            uint64         `json:"trading_fee"`
	ProtocolFeePercentage uint64         `json:"protocol_fee_percentage"`
	FeeTo                 sdk.AccAddress `json:"fee_to,omitempty"`
}

// CollectResult is the outcome of collecting one pair's protocol fees.
// Err is nil on success; on failure the amounts are zero and nothing was transferred.
type CollectResult struct {
	Pair    sdk.AccAddress
	Amount0 sdkmath.Int
	Amount1 sdkmath.Int
	Err     error
}

// Succeeded reports whether the collection went through.
func (r CollectResult) Succeeded() bool {
	return r.Err == nil
}
