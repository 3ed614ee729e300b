package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/pairs/types"
)

// BalanceOf returns holder's liquidity shares in pair.
func (k Keeper) BalanceOf(ctx context.Context, pair, holder sdk.AccAddress) math.Int {
	bz := k.getStore(ctx).Get(types.ShareBalanceKey(pair, holder))
	if bz == nil {
		return math.ZeroInt()
	}
	var bal math.Int
	if err := bal.Unmarshal(bz); err != nil {
		k.Logger(ctx).Error("corrupt share balance", "pair", pair.String(), "holder", holder.String(), "error", err)
		return math.ZeroInt()
	}
	return bal
}

func (k Keeper) setShareBalance(ctx context.Context, pair, holder sdk.AccAddress, bal math.Int) error {
	store := k.getStore(ctx)
	key := types.ShareBalanceKey(pair, holder)
	if bal.IsZero() {
		store.Delete(key)
		return nil
	}
	bz, err := bal.Marshal()
	if err != nil {
		return fmt.Errorf("setShareBalance: marshal: %w", err)
	}
	store.Set(key, bz)
	return nil
}

// TotalSupply returns the total liquidity shares of pair.
func (k Keeper) TotalSupply(ctx context.Context, pair sdk.AccAddress) (math.Int, error) {
	p, err := k.GetPairRecord(ctx, pair)
	if err != nil {
		return math.Int{}, err
	}
	return p.TotalSupply, nil
}

// TransferShares moves liquidity shares between holders. Transferring to the pair
// itself is the first half of a burn.
func (k Keeper) TransferShares(ctx context.Context, pair, from, to sdk.AccAddress, amount math.Int) error {
	if amount.IsNil() || amount.IsNegative() {
		return types.ErrInsufficientShares.Wrap("negative amount")
	}
	if to.Empty() {
		return types.ErrZeroAddress.Wrap("share recipient")
	}
	if !k.IsPair(ctx, pair) {
		return types.ErrInvalidPair.Wrapf("%s", pair)
	}

	return k.executeAtomic(ctx, func(sdkCtx sdk.Context) error {
		fromBal := k.BalanceOf(sdkCtx, pair, from)
		if fromBal.LT(amount) {
			return types.ErrInsufficientShares.Wrapf("%s has %s, needs %s", from, fromBal, amount)
		}
		if err := k.setShareBalance(sdkCtx, pair, from, fromBal.Sub(amount)); err != nil {
			return err
		}
		if err := k.setShareBalance(sdkCtx, pair, to, k.BalanceOf(sdkCtx, pair, to).Add(amount)); err != nil {
			return err
		}
		emitShareTransfer(sdkCtx, pair, from, to, amount)
		return nil
	})
}

// mintShares credits new shares to holder and grows the pair's total supply.
func (k Keeper) mintShares(ctx sdk.Context, pair *types.Pair, holder sdk.AccAddress, amount math.Int) error {
	if err := k.setShareBalance(ctx, pair.Address, holder, k.BalanceOf(ctx, pair.Address, holder).Add(amount)); err != nil {
		return err
	}
	pair.TotalSupply = pair.TotalSupply.Add(amount)
	emitShareTransfer(ctx, pair.Address, nil, holder, amount)
	return nil
}

// burnShares destroys holder's shares and shrinks the pair's total supply.
func (k Keeper) burnShares(ctx sdk.Context, pair *types.Pair, holder sdk.AccAddress, amount math.Int) error {
	bal := k.BalanceOf(ctx, pair.Address, holder)
	if bal.LT(amount) {
		return types.ErrInsufficientShares.Wrapf("%s has %s, burning %s", holder, bal, amount)
	}
	if err := k.setShareBalance(ctx, pair.Address, holder, bal.Sub(amount)); err != nil {
		return err
	}
	pair.TotalSupply = pair.TotalSupply.Sub(amount)
	emitShareTransfer(ctx, pair.Address, holder, nil, amount)
	return nil
}

// IterateShareBalances calls cb for every holder of pair.
func (k Keeper) IterateShareBalances(ctx context.Context, pair sdk.AccAddress, cb func(holder sdk.AccAddress, bal math.Int) bool) {
	prefix := types.ShareBalancePrefix(pair)
	iter := storetypes.KVStorePrefixIterator(k.getStore(ctx), prefix)
	defer iter.Close()

	for ; iter.Valid(); iter.Next() {
		var bal math.Int
		if err := bal.Unmarshal(iter.Value()); err != nil {
			continue
		}
		if cb(sdk.AccAddress(iter.Key()[len(prefix):]), bal) {
			break
		}
	}
}

func emitShareTransfer(ctx sdk.Context, pair, from, to sdk.AccAddress, amount math.Int) {
	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeTransfer,
			sdk.NewAttribute(types.AttributeKeyPair, pair.String()),
			sdk.NewAttribute(types.AttributeKeyFrom, from.String()),
			sdk.NewAttribute(types.AttributeKeyTo, to.String()),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)
}
