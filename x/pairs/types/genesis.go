package types

import (
	"encoding/json"
	"fmt"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// ShareBalance is one holder's liquidity shares in a pair.
type ShareBalance struct {
	Pair    sdk.AccAddress `json:"pair"`
	Holder  sdk.AccAddress `json:"holder"`
	Balance sdkmath.Int    `json:"balance"`
}

// CreatorCooldown records when an account last created a pair.
type CreatorCooldown struct {
	Creator       sdk.AccAddress `json:"creator"`
	LastCreatedAt int64          `json:"last_created_at"` // unix seconds
}

// GenesisState is the full state of the pairs module.
type GenesisState struct {
	Factory     FactoryState      `json:"factory"`
	Pairs       []Pair            `json:"pairs"` // in creation order
	Shares      []ShareBalance    `json:"shares"`
	Volumes     []PairVolume      `json:"volumes"`
	TotalVolume sdkmath.Int       `json:"total_volume"`
	Cooldowns   []CreatorCooldown `json:"cooldowns"`
}

// DefaultGenesis returns the default genesis state for the pairs module.
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Factory:     DefaultFactoryState(),
		Pairs:       []Pair{},
		Shares:      []ShareBalance{},
		Volumes:     []PairVolume{},
		TotalVolume: sdkmath.ZeroInt(),
		Cooldowns:   []CreatorCooldown{},
	}
}

// Validate ensures the genesis state is well-formed.
func (gs GenesisState) Validate() error {
	if err := gs.Factory.Validate(); err != nil {
		return err
	}

	pairs := make(map[string]Pair, len(gs.Pairs))
	tokens := make(map[string]struct{}, len(gs.Pairs))
	for i, p := range gs.Pairs {
		if err := p.Validate(); err != nil {
			return ErrInvalidGenesis.Wrapf("pair %d: %s", i, err)
		}
		if p.Index != uint64(i) {
			return ErrInvalidGenesis.Wrapf("pair %s has index %d at position %d", p.Address, p.Index, i)
		}
		if _, dup := pairs[p.Address.String()]; dup {
			return ErrInvalidGenesis.Wrapf("duplicate pair %s", p.Address)
		}
		tk := p.Token0 + "\x00" + p.Token1
		if _, dup := tokens[tk]; dup {
			return ErrInvalidGenesis.Wrapf("duplicate token pair %s/%s", p.Token0, p.Token1)
		}
		pairs[p.Address.String()] = p
		tokens[tk] = struct{}{}
	}

	supply := make(map[string]sdkmath.Int, len(gs.Pairs))
	for _, s := range gs.Shares {
		if _, ok := pairs[s.Pair.String()]; !ok {
			return ErrInvalidGenesis.Wrapf("shares for unknown pair %s", s.Pair)
		}
		if s.Balance.IsNil() || !s.Balance.IsPositive() {
			return ErrInvalidGenesis.Wrapf("non-positive share balance for %s in %s", s.Holder, s.Pair)
		}
		cur, ok := supply[s.Pair.String()]
		if !ok {
			cur = sdkmath.ZeroInt()
		}
		supply[s.Pair.String()] = cur.Add(s.Balance)
	}
	for addr, p := range pairs {
		got, ok := supply[addr]
		if !ok {
			got = sdkmath.ZeroInt()
		}
		if !got.Equal(p.TotalSupply) {
			return ErrInvalidGenesis.Wrapf("pair %s: shares sum %s != total supply %s", addr, got, p.TotalSupply)
		}
	}

	for _, v := range gs.Volumes {
		if _, ok := pairs[v.Pair.String()]; !ok {
			return ErrInvalidGenesis.Wrapf("volume for unknown pair %s", v.Pair)
		}
		if v.Volume.IsNil() || v.Volume.IsNegative() {
			return ErrInvalidGenesis.Wrapf("negative volume for %s", v.Pair)
		}
	}
	if !gs.TotalVolume.IsNil() && gs.TotalVolume.IsNegative() {
		return ErrInvalidGenesis.Wrap("negative total volume")
	}
	return nil
}

// MarshalGenesis encodes a genesis state as indented JSON.
func MarshalGenesis(gs GenesisState) ([]byte, error) {
	bz, err := json.MarshalIndent(gs, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal genesis: %w", err)
	}
	return bz, nil
}

// UnmarshalGenesis decodes and validates a genesis state.
func UnmarshalGenesis(bz []byte) (*GenesisState, error) {
	var gs GenesisState
	if err := json.Unmarshal(bz, &gs); err != nil {
		return nil, fmt.Errorf("unmarshal genesis: %w", err)
	}
	if err := gs.Validate(); err != nil {
		return nil, err
	}
	return &gs, nil
}
