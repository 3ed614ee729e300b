package keeper

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/pairs/types"
)

// RegisterInvariants registers all pairs invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "pair-reserves", PairReservesInvariant(k))
	ir.RegisterRoute(types.ModuleName, "pair-registry", PairRegistryInvariant(k))
	ir.RegisterRoute(types.ModuleName, "pair-shares", PairSharesInvariant(k))
	ir.RegisterRoute(types.ModuleName, "factory-fees", FactoryFeesInvariant(k))
}

// AllInvariants runs all invariants of the pairs module
func AllInvariants(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		for _, inv := range []sdk.Invariant{
			PairReservesInvariant(k),
			PairRegistryInvariant(k),
			PairSharesInvariant(k),
			FactoryFeesInvariant(k),
		} {
			if res, stop := inv(ctx); stop {
				return res, stop
			}
		}
		return "", false
	}
}

// PairReservesInvariant checks that every pair holds at least its tracked reserves
func PairReservesInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		pairs, err := k.GetAllPairs(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "pair-reserves", err.Error()), true
		}
		for _, pair := range pairs {
			balance0, balance1 := k.pairBalances(ctx, pair)
			if balance0.LT(pair.Reserve0) {
				count++
				msg += fmt.Sprintf("pair %s: balance of %s (%s) < reserve (%s)\n",
					pair.Address, pair.Token0, balance0, pair.Reserve0)
			}
			if balance1.LT(pair.Reserve1) {
				count++
				msg += fmt.Sprintf("pair %s: balance of %s (%s) < reserve (%s)\n",
					pair.Address, pair.Token1, balance1, pair.Reserve1)
			}
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "pair-reserves",
			fmt.Sprintf("found %d reserves above balance\n%s", count, msg),
		), broken
	}
}

// PairRegistryInvariant checks the registry is symmetric and matches the ordered pair list
func PairRegistryInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		pairs, err := k.GetAllPairs(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "pair-registry", err.Error()), true
		}
		if uint64(len(pairs)) != k.AllPairsLength(ctx) {
			count++
			msg += fmt.Sprintf("pair list has %d entries, count is %d\n", len(pairs), k.AllPairsLength(ctx))
		}
		for i, pair := range pairs {
			forward, ok0 := k.GetPair(ctx, pair.Token0, pair.Token1)
			backward, ok1 := k.GetPair(ctx, pair.Token1, pair.Token0)
			if !ok0 || !ok1 || !forward.Equals(pair.Address) || !backward.Equals(pair.Address) {
				count++
				msg += fmt.Sprintf("pair %s: registry not symmetric\n", pair.Address)
			}
			if pair.Index != uint64(i) {
				count++
				msg += fmt.Sprintf("pair %s: index %d at position %d\n", pair.Address, pair.Index, i)
			}
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "pair-registry",
			fmt.Sprintf("found %d registry inconsistencies\n%s", count, msg),
		), broken
	}
}

// PairSharesInvariant checks that holder balances sum to each pair's total supply
func PairSharesInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		pairs, err := k.GetAllPairs(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "pair-shares", err.Error()), true
		}
		for _, pair := range pairs {
			sum := math.ZeroInt()
			k.IterateShareBalances(ctx, pair.Address, func(_ sdk.AccAddress, bal math.Int) bool {
				sum = sum.Add(bal)
				return false
			})
			if !sum.Equal(pair.TotalSupply) {
				count++
				msg += fmt.Sprintf("pair %s: balances sum %s != total supply %s\n", pair.Address, sum, pair.TotalSupply)
			}
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "pair-shares",
			fmt.Sprintf("found %d pairs with inconsistent shares\n%s", count, msg),
		), broken
	}
}

// FactoryFeesInvariant checks the fee parameters are within their caps
func FactoryFeesInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		fs, err := k.GetFactoryState(ctx)
		if err == nil {
			err = fs.Validate()
		}
		msg := "fees within caps"
		if err != nil {
			msg = err.Error()
		}
		return sdk.FormatInvariant(types.ModuleName, "factory-fees", msg), err != nil
	}
}
