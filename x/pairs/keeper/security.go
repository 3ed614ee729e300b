package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/pairs/types"
)

// withPairLock runs fn while holding the pair's reentrancy lock.
// The lock lives in the KVStore so it is visible to nested cache contexts;
// a nested entry fails with ErrLocked.
func (k Keeper) withPairLock(ctx context.Context, pair sdk.AccAddress, operation string, fn func() error) error {
	if err := k.acquirePairLock(ctx, pair, operation); err != nil {
		return err
	}
	defer k.releasePairLock(ctx, pair)

	return fn()
}

func (k Keeper) acquirePairLock(ctx context.Context, pair sdk.AccAddress, operation string) error {
	store := k.getStore(ctx)
	key := types.ReentrancyLockKey(pair)

	if store.Has(key) {
		k.metrics.ReentrancyRejections.WithLabelValues(operation).Inc()
		return types.ErrLocked.Wrapf("%s on pair %s", operation, pair)
	}

	store.Set(key, []byte{0x01})
	return nil
}

func (k Keeper) releasePairLock(ctx context.Context, pair sdk.AccAddress) {
	k.getStore(ctx).Delete(types.ReentrancyLockKey(pair))
}

// IsPairLocked reports whether an operation on pair is in progress in this context.
func (k Keeper) IsPairLocked(ctx context.Context, pair sdk.AccAddress) bool {
	return k.getStore(ctx).Has(types.ReentrancyLockKey(pair))
}
