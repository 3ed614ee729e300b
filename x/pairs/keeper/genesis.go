package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/pairs/types"
)

// InitGenesis initializes the pairs module's state from a genesis state
func (k Keeper) InitGenesis(ctx context.Context, genState types.GenesisState) error {
	if err := genState.Validate(); err != nil {
		return fmt.Errorf("invalid genesis: %w", err)
	}

	if err := k.setFactoryState(ctx, genState.Factory); err != nil {
		return fmt.Errorf("failed to set factory state: %w", err)
	}

	factory := k.FactoryAddress()
	for _, pair := range genState.Pairs {
		expected, err := types.ComputePairAddress(factory, pair.Token0, pair.Token1)
		if err != nil {
			return fmt.Errorf("pair %s: %w", pair.Address, err)
		}
		if !expected.Equals(pair.Address) {
			return fmt.Errorf("pair %s: address does not match derived address %s", pair.Address, expected)
		}
		if err := k.setPair(ctx, pair); err != nil {
			return fmt.Errorf("failed to set pair %s: %w", pair.Address, err)
		}
		k.registerPair(ctx, pair)
	}

	for _, s := range genState.Shares {
		if err := k.setShareBalance(ctx, s.Pair, s.Holder, s.Balance); err != nil {
			return fmt.Errorf("failed to set shares of %s in %s: %w", s.Holder, s.Pair, err)
		}
	}
	for _, v := range genState.Volumes {
		if err := k.setPairVolume(ctx, v); err != nil {
			return fmt.Errorf("failed to set volume of %s: %w", v.Pair, err)
		}
	}
	if !genState.TotalVolume.IsNil() {
		if err := k.setTotalVolume(ctx, genState.TotalVolume); err != nil {
			return err
		}
	}

	store := k.getStore(ctx)
	for _, c := range genState.Cooldowns {
		store.Set(types.LastPairCreationKey(c.Creator), sdk.Uint64ToBigEndian(uint64(c.LastCreatedAt)))
	}

	return nil
}

// ExportGenesis exports the pairs module's state to a genesis state
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	fs, err := k.GetFactoryState(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get factory state: %w", err)
	}

	pairs, err := k.GetAllPairs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get pairs: %w", err)
	}
	if pairs == nil {
		pairs = []types.Pair{}
	}

	shares := []types.ShareBalance{}
	for _, pair := range pairs {
		k.IterateShareBalances(ctx, pair.Address, func(holder sdk.AccAddress, bal math.Int) bool {
			shares = append(shares, types.ShareBalance{Pair: pair.Address, Holder: holder, Balance: bal})
			return false
		})
	}

	volumes, err := k.GetAllPairVolumes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get volumes: %w", err)
	}
	if volumes == nil {
		volumes = []types.PairVolume{}
	}

	return &types.GenesisState{
		Factory:     fs,
		Pairs:       pairs,
		Shares:      shares,
		Volumes:     volumes,
		TotalVolume: k.GetTotalVolume(ctx),
		Cooldowns:   k.getAllCooldowns(ctx),
	}, nil
}
