package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/pairs/types"
)

// update writes new reserves and advances the price accumulators by the time
// elapsed since the previous update. The timestamp is 32-bit and wraps; the
// accumulators wrap modulo 2^256.
func (k Keeper) update(ctx sdk.Context, pair *types.Pair, balance0, balance1 math.Int) error {
	if balance0.GT(types.MaxReserve) || balance1.GT(types.MaxReserve) {
		return types.ErrOverflow.Wrapf("balances %s/%s exceed 112 bits", balance0, balance1)
	}

	blockTimestamp := types.BlockTimestamp(ctx.BlockTime())
	elapsed := blockTimestamp - pair.BlockTimestampLast
	if elapsed > 0 && pair.Reserve0.IsPositive() && pair.Reserve1.IsPositive() {
		pair.Price0CumulativeLast.Accumulate(types.PriceIncrement(pair.Reserve0, pair.Reserve1, elapsed))
		pair.Price1CumulativeLast.Accumulate(types.PriceIncrement(pair.Reserve1, pair.Reserve0, elapsed))
	}
	pair.Reserve0 = balance0
	pair.Reserve1 = balance1
	pair.BlockTimestampLast = blockTimestamp

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeSync,
			sdk.NewAttribute(types.AttributeKeyPair, pair.Address.String()),
			sdk.NewAttribute(types.AttributeKeyReserve0, balance0.String()),
			sdk.NewAttribute(types.AttributeKeyReserve1, balance1.String()),
		),
	)
	k.Logger(ctx).Debug("reserves synced", "pair", pair.Address.String(), "reserve0", balance0.String(), "reserve1", balance1.String())
	return nil
}

// GetReserves returns the tracked reserves and the timestamp of their last update.
func (k Keeper) GetReserves(ctx context.Context, pairAddr sdk.AccAddress) (math.Int, math.Int, uint32, error) {
	pair, err := k.GetPairRecord(ctx, pairAddr)
	if err != nil {
		return math.Int{}, math.Int{}, 0, err
	}
	return pair.Reserve0, pair.Reserve1, pair.BlockTimestampLast, nil
}

// Skim sends any balance above the tracked reserves to to.
func (k Keeper) Skim(ctx context.Context, pairAddr, to sdk.AccAddress) error {
	return k.executeAtomic(ctx, func(sdkCtx sdk.Context) error {
		return k.withPairLock(sdkCtx, pairAddr, "skim", func() error {
			pair, err := k.GetPairRecord(sdkCtx, pairAddr)
			if err != nil {
				return err
			}
			if to.Empty() {
				return types.ErrZeroAddress.Wrap("skim recipient")
			}
			balance0, balance1 := k.pairBalances(sdkCtx, pair)
			if err := k.safeTransfer(sdkCtx, pair.Token0, pair.Address, to, balance0.Sub(pair.Reserve0)); err != nil {
				return err
			}
			return k.safeTransfer(sdkCtx, pair.Token1, pair.Address, to, balance1.Sub(pair.Reserve1))
		})
	})
}

// Sync sets the reserves to the pair's current balances.
func (k Keeper) Sync(ctx context.Context, pairAddr sdk.AccAddress) error {
	return k.executeAtomic(ctx, func(sdkCtx sdk.Context) error {
		return k.withPairLock(sdkCtx, pairAddr, "sync", func() error {
			pair, err := k.GetPairRecord(sdkCtx, pairAddr)
			if err != nil {
				return err
			}
			balance0, balance1 := k.pairBalances(sdkCtx, pair)
			if err := k.update(sdkCtx, &pair, balance0, balance1); err != nil {
				return err
			}
			return k.setPair(sdkCtx, pair)
		})
	})
}

// CurrentCumulativePrices returns the accumulators as they would be if the pair
// were updated now, without writing state.
func (k Keeper) CurrentCumulativePrices(ctx context.Context, pairAddr sdk.AccAddress) (types.PriceCumulative, types.PriceCumulative, uint32, error) {
	pair, err := k.GetPairRecord(ctx, pairAddr)
	if err != nil {
		return types.PriceCumulative{}, types.PriceCumulative{}, 0, err
	}

	blockTimestamp := types.BlockTimestamp(sdk.UnwrapSDKContext(ctx).BlockTime())
	price0, price1 := pair.Price0CumulativeLast, pair.Price1CumulativeLast
	if elapsed := blockTimestamp - pair.BlockTimestampLast; elapsed > 0 && pair.Reserve0.IsPositive() && pair.Reserve1.IsPositive() {
		price0.Accumulate(types.PriceIncrement(pair.Reserve0, pair.Reserve1, elapsed))
		price1.Accumulate(types.PriceIncrement(pair.Reserve1, pair.Reserve0, elapsed))
	}
	return price0, price1, blockTimestamp, nil
}
