package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// FactoryState holds the fee governance parameters of the factory.
// Addresses are empty when unset.
type FactoryState struct {
	FeeTo                 sdk.AccAddress `json:"fee_to,omitempty"`
	FeeToSetter           sdk.AccAddress `json:"fee_to_setter,omitempty"`
	TradingFee            uint64         `json:"trading_fee"`
	ProtocolFeePercentage uint64         `json:"protocol_fee_percentage"`
}

// DefaultFactoryState returns the factory state with default fees and no governance addresses.
func DefaultFactoryState() FactoryState {
	return FactoryState{
		TradingFee:            DefaultTradingFee,
		ProtocolFeePercentage: DefaultProtocolFeePercentage,
	}
}

// FeeOn reports whether a fee recipient is configured.
func (f FactoryState) FeeOn() bool {
	return !f.FeeTo.Empty()
}

// Validate checks the fee caps.
func (f FactoryState) Validate() error {
	if err := ValidateTradingFee(f.TradingFee); err != nil {
		return err
	}
	return ValidateProtocolFeePercentage(f.ProtocolFeePercentage)
}
