package types

import (
	"encoding/json"
	"fmt"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/holiman/uint256"
)

// PriceCumulative is a UQ112x112 time-weighted price integral. Additions wrap modulo 2^256.
type PriceCumulative struct {
	uint256.Int
}

// NewPriceCumulative builds an accumulator from a decimal string
func NewPriceCumulative(dec string) (PriceCumulative, error) {
	var p PriceCumulative
	if err := p.SetFromDecimal(dec); err != nil {
		return PriceCumulative{}, fmt.Errorf("price cumulative %q: %w", dec, err)
	}
	return p, nil
}

// Accumulate adds delta to the accumulator with wraparound.
func (p *PriceCumulative) Accumulate(delta *uint256.Int) {
	p.Int.Add(&p.Int, delta)
}

func (p PriceCumulative) String() string {
	return p.Dec()
}

func (p PriceCumulative) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Dec())
}

func (p *PriceCumulative) UnmarshalJSON(bz []byte) error {
	var s string
	if err := json.Unmarshal(bz, &s); err != nil {
		return err
	}
	if s == "" {
		p.Clear()
		return nil
	}
	return p.SetFromDecimal(s)
}

// Pair is the state of one trading pair.
type Pair struct {
	Address              sdk.AccAddress  `json:"address"`
	Token0               string          `json:"token0"`
	Token1               string          `json:"token1"`
	Index                uint64          `json:"index"`
	Reserve0             sdkmath.Int     `json:"reserve0"`
	Reserve1             sdkmath.Int     `json:"reserve1"`
	BlockTimestampLast   uint32          `json:"block_timestamp_last"`
	Price0CumulativeLast PriceCumulative `json:"price0_cumulative_last"`
	Price1CumulativeLast PriceCumulative `json:"price1_cumulative_last"`
	KLast                sdkmath.Int     `json:"k_last"`
	TotalSupply          sdkmath.Int     `json:"total_supply"`
	TotalFeeCollected0   sdkmath.Int     `json:"total_fee_collected0"`
	TotalFeeCollected1   sdkmath.Int     `json:"total_fee_collected1"`
}

// NewPair returns an empty pair for the canonically ordered tokens.
func NewPair(addr sdk.AccAddress, token0, token1 string, index uint64) Pair {
	return Pair{
		Address:            addr,
		Token0:             token0,
		Token1:             token1,
		Index:              index,
		Reserve0:           sdkmath.ZeroInt(),
		Reserve1:           sdkmath.ZeroInt(),
		KLast:              sdkmath.ZeroInt(),
		TotalSupply:        sdkmath.ZeroInt(),
		TotalFeeCollected0: sdkmath.ZeroInt(),
		TotalFeeCollected1: sdkmath.ZeroInt(),
	}
}

// HasToken reports whether token is one of the pair's two tokens.
func (p Pair) HasToken(token string) bool {
	return token == p.Token0 || token == p.Token1
}

// ReservesFor returns (reserveIn, reserveOut) for a trade where token goes in.
func (p Pair) ReservesFor(token string) (sdkmath.Int, sdkmath.Int, error) {
	switch token {
	case p.Token0:
		return p.Reserve0, p.Reserve1, nil
	case p.Token1:
		return p.Reserve1, p.Reserve0, nil
	default:
		return sdkmath.Int{}, sdkmath.Int{}, ErrInvalidToken.Wrapf("%s is not in pair %s", token, p.Address)
	}
}

// Validate checks the stored invariants of a pair record.
func (p Pair) Validate() error {
	if p.Address.Empty() {
		return ErrZeroAddress.Wrap("pair address")
	}
	if p.Token0 >= p.Token1 {
		return ErrIdenticalAddresses.Wrapf("tokens not ordered: %s, %s", p.Token0, p.Token1)
	}
	for _, v := range []sdkmath.Int{p.Reserve0, p.Reserve1, p.KLast, p.TotalSupply, p.TotalFeeCollected0, p.TotalFeeCollected1} {
		if v.IsNil() || v.IsNegative() {
			return fmt.Errorf("pair %s: negative or unset amount", p.Address)
		}
	}
	if p.Reserve0.GT(MaxReserve) || p.Reserve1.GT(MaxReserve) {
		return ErrOverflow.Wrapf("pair %s reserves", p.Address)
	}
	return nil
}
