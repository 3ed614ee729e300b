package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/pairs/types"
)

// CollectProtocolFee sends the protocol fees accrued by a pair to the fee
// recipient and re-syncs the reserves to the remaining balances. Only the
// factory may call it.
func (k Keeper) CollectProtocolFee(ctx context.Context, caller, pairAddr sdk.AccAddress) (math.Int, math.Int, error) {
	var amount0, amount1 math.Int
	err := k.executeAtomic(ctx, func(sdkCtx sdk.Context) error {
		return k.withPairLock(sdkCtx, pairAddr, "collect", func() error {
			if !caller.Equals(k.FactoryAddress()) {
				return types.ErrForbidden.Wrapf("%s is not the factory", caller)
			}
			fs, err := k.GetFactoryState(sdkCtx)
			if err != nil {
				return err
			}
			if !fs.FeeOn() {
				return types.ErrNoFeeRecipient
			}
			pair, err := k.GetPairRecord(sdkCtx, pairAddr)
			if err != nil {
				return err
			}

			// settle the growth since the last liquidity event before the
			// reserves drop, then restart kLast from the collected reserves
			if _, err := k.mintFee(sdkCtx, &pair, fs); err != nil {
				return err
			}

			amount0, amount1 = pair.TotalFeeCollected0, pair.TotalFeeCollected1
			if err := k.safeTransfer(sdkCtx, pair.Token0, pair.Address, fs.FeeTo, amount0); err != nil {
				return err
			}
			if err := k.safeTransfer(sdkCtx, pair.Token1, pair.Address, fs.FeeTo, amount1); err != nil {
				return err
			}
			pair.TotalFeeCollected0 = math.ZeroInt()
			pair.TotalFeeCollected1 = math.ZeroInt()

			balance0, balance1 := k.pairBalances(sdkCtx, pair)
			if err := k.update(sdkCtx, &pair, balance0, balance1); err != nil {
				return err
			}
			pair.KLast = pair.Reserve0.Mul(pair.Reserve1)
			if err := k.setPair(sdkCtx, pair); err != nil {
				return err
			}

			sdkCtx.EventManager().EmitEvent(
				sdk.NewEvent(
					types.EventTypeProtocolFeePaid,
					sdk.NewAttribute(types.AttributeKeyPair, pair.Address.String()),
					sdk.NewAttribute(types.AttributeKeyFeeTo, fs.FeeTo.String()),
					sdk.NewAttribute(types.AttributeKeyAmount0, amount0.String()),
					sdk.NewAttribute(types.AttributeKeyAmount1, amount1.String()),
				),
			)
			return nil
		})
	})
	if err != nil {
		k.metrics.ProtocolFeeCollections.WithLabelValues("failed").Inc()
		return math.Int{}, math.Int{}, err
	}
	k.metrics.ProtocolFeeCollections.WithLabelValues("success").Inc()
	return amount0, amount1, nil
}

// CollectProtocolFees collects the accrued protocol fees of one registered pair.
func (k Keeper) CollectProtocolFees(ctx context.Context, pair sdk.AccAddress) (math.Int, math.Int, error) {
	fs, err := k.GetFactoryState(ctx)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	if !fs.FeeOn() {
		return math.Int{}, math.Int{}, types.ErrNoFeeRecipient
	}
	if !k.IsPair(ctx, pair) {
		return math.Int{}, math.Int{}, types.ErrInvalidPair.Wrapf("%s", pair)
	}
	return k.CollectProtocolFee(ctx, k.FactoryAddress(), pair)
}

// CollectAllProtocolFees collects from every pair in creation order. A pair that
// fails is rolled back on its own and reported in its result; the others proceed.
func (k Keeper) CollectAllProtocolFees(ctx context.Context) ([]types.CollectResult, error) {
	fs, err := k.GetFactoryState(ctx)
	if err != nil {
		return nil, err
	}
	if !fs.FeeOn() {
		return nil, types.ErrNoFeeRecipient
	}

	n := k.AllPairsLength(ctx)
	results := make([]types.CollectResult, 0, n)
	for i := uint64(0); i < n; i++ {
		pair, err := k.AllPairs(ctx, i)
		if err != nil {
			return results, err
		}
		amount0, amount1, err := k.CollectProtocolFee(ctx, k.FactoryAddress(), pair)
		if err != nil {
			k.Logger(ctx).Error("protocol fee collection skipped", "pair", pair.String(), "error", err)
			results = append(results, types.CollectResult{Pair: pair, Amount0: math.ZeroInt(), Amount1: math.ZeroInt(), Err: err})
			continue
		}
		results = append(results, types.CollectResult{Pair: pair, Amount0: amount0, Amount1: amount1})
	}
	return results, nil
}
