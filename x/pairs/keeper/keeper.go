package keeper

import (
	"context"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/pairs/types"
)

// Keeper of the pairs store
type Keeper struct {
	storeKey   storetypes.StoreKey
	bankKeeper types.BankKeeper
	hooks      types.PairsHooks
	metrics    *PairsMetrics

	// flash swap callees by bech32 address; populated at app wiring time
	callees map[string]types.FlashSwapCallee
}

// NewKeeper creates a new pairs Keeper instance
func NewKeeper(key storetypes.StoreKey, bankKeeper types.BankKeeper) *Keeper {
	return &Keeper{
		storeKey:   key,
		bankKeeper: bankKeeper,
		metrics:    NewPairsMetrics(),
		callees:    make(map[string]types.FlashSwapCallee),
	}
}

// SetHooks sets the pairs hooks. It may be called only once.
func (k *Keeper) SetHooks(h types.PairsHooks) *Keeper {
	if k.hooks != nil {
		panic("cannot set pairs hooks twice")
	}
	k.hooks = h
	return k
}

// RegisterFlashSwapCallee registers the callback invoked when a swap with a
// non-empty payload pays out to addr.
func (k Keeper) RegisterFlashSwapCallee(addr sdk.AccAddress, callee types.FlashSwapCallee) {
	k.callees[addr.String()] = callee
}

// FactoryAddress is the account address of the factory.
func (k Keeper) FactoryAddress() sdk.AccAddress {
	return types.ModuleAddress()
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx context.Context) log.Logger {
	return sdk.UnwrapSDKContext(ctx).Logger().With("module", "x/"+types.ModuleName)
}

// getStore returns the KVStore for the pairs module
func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return sdkCtx.KVStore(k.storeKey)
}

// executeAtomic runs fn on a branch of the multistore. The branch, including bank
// transfers and emitted events, is committed only when fn succeeds.
func (k Keeper) executeAtomic(ctx context.Context, fn func(sdk.Context) error) error {
	cacheCtx, writeFn := sdk.UnwrapSDKContext(ctx).CacheContext()
	if err := fn(cacheCtx); err != nil {
		return err
	}
	writeFn()
	return nil
}
