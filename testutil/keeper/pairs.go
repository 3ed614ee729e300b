package keeper

import (
	"context"
	"fmt"
	"testing"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/paw-chain/pawswap/x/pairs/keeper"
	"github.com/paw-chain/pawswap/x/pairs/types"
)

const bankStoreKey = "testbank"

// GenesisTime is the block time of contexts built by PairsKeeper.
var GenesisTime = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// PairsKeeper creates a test keeper for the pairs module over an in-memory
// multistore. The returned bank keeps balances in the same multistore, so
// rolled-back operations also roll back their transfers.
func PairsKeeper(t testing.TB) (*keeper.Keeper, sdk.Context, *BankKeeper) {
	storeKey := storetypes.NewKVStoreKey(types.StoreKey)
	bankKey := storetypes.NewKVStoreKey(bankStoreKey)

	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, nil)
	stateStore.MountStoreWithDB(bankKey, storetypes.StoreTypeIAVL, nil)
	require.NoError(t, stateStore.LoadLatestVersion())

	bank := NewBankKeeper(bankKey)
	k := keeper.NewKeeper(storeKey, bank)

	ctx := sdk.NewContext(stateStore, cmtproto.Header{Height: 1, Time: GenesisTime}, false, log.NewNopLogger())
	require.NoError(t, k.InitGenesis(ctx, *types.DefaultGenesis()))

	return k, ctx, bank
}

// BankKeeper is a store-backed token ledger for tests.
type BankKeeper struct {
	key        storetypes.StoreKey
	failDenoms map[string]bool
	sendHook   func(ctx context.Context, from, to sdk.AccAddress, amt sdk.Coins) error
}

func NewBankKeeper(key storetypes.StoreKey) *BankKeeper {
	return &BankKeeper{key: key, failDenoms: make(map[string]bool)}
}

var _ types.BankKeeper = (*BankKeeper)(nil)

func balanceKey(addr sdk.AccAddress, denom string) []byte {
	return []byte(fmt.Sprintf("%s/%s", addr.String(), denom))
}

func (b *BankKeeper) GetBalance(ctx context.Context, addr sdk.AccAddress, denom string) sdk.Coin {
	bz := sdk.UnwrapSDKContext(ctx).KVStore(b.key).Get(balanceKey(addr, denom))
	amt := math.ZeroInt()
	if bz != nil {
		if err := amt.Unmarshal(bz); err != nil {
			panic(err)
		}
	}
	return sdk.NewCoin(denom, amt)
}

func (b *BankKeeper) setBalance(ctx context.Context, addr sdk.AccAddress, denom string, amt math.Int) {
	bz, err := amt.Marshal()
	if err != nil {
		panic(err)
	}
	sdk.UnwrapSDKContext(ctx).KVStore(b.key).Set(balanceKey(addr, denom), bz)
}

// SendCoins moves coins between accounts. It fails for denoms marked with
// FailTransfersOf and runs the send hook, if any, after the balances moved.
func (b *BankKeeper) SendCoins(ctx context.Context, from, to sdk.AccAddress, amt sdk.Coins) error {
	for _, coin := range amt {
		if b.failDenoms[coin.Denom] {
			return fmt.Errorf("transfers of %s are disabled", coin.Denom)
		}
		bal := b.GetBalance(ctx, from, coin.Denom).Amount
		if bal.LT(coin.Amount) {
			return fmt.Errorf("%s has %s%s, needs %s", from, bal, coin.Denom, coin)
		}
		b.setBalance(ctx, from, coin.Denom, bal.Sub(coin.Amount))
		b.setBalance(ctx, to, coin.Denom, b.GetBalance(ctx, to, coin.Denom).Amount.Add(coin.Amount))
	}
	if b.sendHook != nil {
		return b.sendHook(ctx, from, to, amt)
	}
	return nil
}

// Mint credits coins to addr out of thin air.
func (b *BankKeeper) Mint(ctx context.Context, addr sdk.AccAddress, amt sdk.Coins) {
	for _, coin := range amt {
		b.setBalance(ctx, addr, coin.Denom, b.GetBalance(ctx, addr, coin.Denom).Amount.Add(coin.Amount))
	}
}

// FailTransfersOf makes every transfer of denom fail.
func (b *BankKeeper) FailTransfersOf(denom string) {
	b.failDenoms[denom] = true
}

// SetSendHook installs a callback run after every successful send, like a token
// with a transfer hook.
func (b *BankKeeper) SetSendHook(hook func(ctx context.Context, from, to sdk.AccAddress, amt sdk.Coins) error) {
	b.sendHook = hook
}

// TestAddr returns a deterministic account address for tests.
func TestAddr(name string) sdk.AccAddress {
	return sdk.AccAddress(types.Keccak256([]byte(name))[:20])
}
