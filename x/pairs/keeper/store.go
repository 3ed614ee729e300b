package keeper

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/pairs/types"
)

// GetFactoryState returns the factory's fee governance state.
func (k Keeper) GetFactoryState(ctx context.Context) (types.FactoryState, error) {
	bz := k.getStore(ctx).Get(types.FactoryStateKey)
	if bz == nil {
		return types.DefaultFactoryState(), nil
	}
	var fs types.FactoryState
	if err := json.Unmarshal(bz, &fs); err != nil {
		return types.FactoryState{}, fmt.Errorf("GetFactoryState: unmarshal: %w", err)
	}
	return fs, nil
}

func (k Keeper) setFactoryState(ctx context.Context, fs types.FactoryState) error {
	bz, err := json.Marshal(fs)
	if err != nil {
		return fmt.Errorf("setFactoryState: marshal: %w", err)
	}
	k.getStore(ctx).Set(types.FactoryStateKey, bz)
	return nil
}

// GetPairRecord returns the stored state of a pair, or ErrInvalidPair.
func (k Keeper) GetPairRecord(ctx context.Context, addr sdk.AccAddress) (types.Pair, error) {
	bz := k.getStore(ctx).Get(types.PairKey(addr))
	if bz == nil {
		return types.Pair{}, types.ErrInvalidPair.Wrapf("%s", addr)
	}
	var pair types.Pair
	if err := json.Unmarshal(bz, &pair); err != nil {
		return types.Pair{}, fmt.Errorf("GetPairRecord: unmarshal %s: %w", addr, err)
	}
	return pair, nil
}

func (k Keeper) setPair(ctx context.Context, pair types.Pair) error {
	bz, err := json.Marshal(pair)
	if err != nil {
		return fmt.Errorf("setPair: marshal %s: %w", pair.Address, err)
	}
	k.getStore(ctx).Set(types.PairKey(pair.Address), bz)
	return nil
}

// IsPair reports whether addr is a pair created by the factory.
func (k Keeper) IsPair(ctx context.Context, addr sdk.AccAddress) bool {
	if addr.Empty() {
		return false
	}
	return k.getStore(ctx).Has(types.PairKey(addr))
}

// registerPair writes both registry directions and appends the pair to the ordered list.
func (k Keeper) registerPair(ctx context.Context, pair types.Pair) {
	store := k.getStore(ctx)
	store.Set(types.PairByTokensKey(pair.Token0, pair.Token1), pair.Address)
	store.Set(types.PairByTokensKey(pair.Token1, pair.Token0), pair.Address)
	store.Set(types.AllPairsKey(pair.Index), pair.Address)
	store.Set(types.PairCountKey, sdk.Uint64ToBigEndian(pair.Index+1))
}

// AllPairsLength returns the number of pairs created.
func (k Keeper) AllPairsLength(ctx context.Context) uint64 {
	bz := k.getStore(ctx).Get(types.PairCountKey)
	if bz == nil {
		return 0
	}
	return binary.BigEndian.Uint64(bz)
}

// AllPairs returns the index-th created pair.
func (k Keeper) AllPairs(ctx context.Context, index uint64) (sdk.AccAddress, error) {
	bz := k.getStore(ctx).Get(types.AllPairsKey(index))
	if bz == nil {
		return nil, types.ErrInvalidPair.Wrapf("no pair at index %d", index)
	}
	return sdk.AccAddress(bz), nil
}

// GetPair looks up the pair of two tokens in either order.
func (k Keeper) GetPair(ctx context.Context, tokenA, tokenB string) (sdk.AccAddress, bool) {
	bz := k.getStore(ctx).Get(types.PairByTokensKey(tokenA, tokenB))
	if bz == nil {
		return nil, false
	}
	return sdk.AccAddress(bz), true
}

// IteratePairs calls cb for every pair in creation order until cb returns true.
func (k Keeper) IteratePairs(ctx context.Context, cb func(types.Pair) (stop bool, err error)) error {
	iter := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.AllPairsKeyPrefix)
	defer iter.Close()

	for ; iter.Valid(); iter.Next() {
		pair, err := k.GetPairRecord(ctx, sdk.AccAddress(iter.Value()))
		if err != nil {
			return err
		}
		stop, err := cb(pair)
		if err != nil {
			return err
		}
		if stop {
			break
		}
	}
	return nil
}

// GetAllPairs returns every pair in creation order.
func (k Keeper) GetAllPairs(ctx context.Context) ([]types.Pair, error) {
	var pairs []types.Pair
	err := k.IteratePairs(ctx, func(p types.Pair) (bool, error) {
		pairs = append(pairs, p)
		return false, nil
	})
	return pairs, err
}

// tokenBalance returns the ledger balance of addr in token.
func (k Keeper) tokenBalance(ctx context.Context, addr sdk.AccAddress, token string) math.Int {
	return k.bankKeeper.GetBalance(ctx, addr, token).Amount
}

// pairBalances returns the pair account's balances of both tokens.
func (k Keeper) pairBalances(ctx context.Context, pair types.Pair) (math.Int, math.Int) {
	return k.tokenBalance(ctx, pair.Address, pair.Token0), k.tokenBalance(ctx, pair.Address, pair.Token1)
}

// safeTransfer sends amount of token from one account to another; zero amounts are a no-op.
func (k Keeper) safeTransfer(ctx context.Context, token string, from, to sdk.AccAddress, amount math.Int) error {
	if !amount.IsPositive() {
		return nil
	}
	if err := k.bankKeeper.SendCoins(ctx, from, to, sdk.NewCoins(sdk.NewCoin(token, amount))); err != nil {
		return errors.Join(types.ErrTransferFailed.Wrapf("%s%s from %s to %s", amount, token, from, to), err)
	}
	return nil
}
