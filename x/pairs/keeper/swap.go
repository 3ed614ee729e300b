package keeper

import (
	"context"
	"errors"
	"math/big"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/pairs/types"
)

// Swap pays amount0Out and amount1Out to to and requires the pair to have been
// paid enough input, net of the trading fee, to keep the constant product from
// decreasing. Outputs are sent before inputs are measured; with a non-empty data
// payload the callee registered for to is invoked in between (flash swap).
func (k Keeper) Swap(
	ctx context.Context,
	caller, pairAddr sdk.AccAddress,
	amount0Out, amount1Out math.Int,
	to sdk.AccAddress,
	data []byte,
) error {
	amount0Out, amount1Out = orZero(amount0Out), orZero(amount1Out)

	var amount0In, amount1In math.Int
	err := k.executeAtomic(ctx, func(sdkCtx sdk.Context) error {
		return k.withPairLock(sdkCtx, pairAddr, "swap", func() error {
			if amount0Out.IsNegative() || amount1Out.IsNegative() ||
				(amount0Out.IsZero() && amount1Out.IsZero()) {
				return types.ErrInsufficientOutputAmount
			}
			pair, err := k.GetPairRecord(sdkCtx, pairAddr)
			if err != nil {
				return err
			}
			if amount0Out.GTE(pair.Reserve0) || amount1Out.GTE(pair.Reserve1) {
				return types.ErrInsufficientLiquidity.Wrapf("outputs %s/%s, reserves %s/%s",
					amount0Out, amount1Out, pair.Reserve0, pair.Reserve1)
			}
			if to.Empty() || to.Equals(pair.Address) || pair.HasToken(to.String()) {
				return types.ErrInvalidTo.Wrapf("%s", to)
			}

			if err := k.safeTransfer(sdkCtx, pair.Token0, pair.Address, to, amount0Out); err != nil {
				return err
			}
			if err := k.safeTransfer(sdkCtx, pair.Token1, pair.Address, to, amount1Out); err != nil {
				return err
			}
			if len(data) > 0 {
				if err := k.callFlashSwapCallee(sdkCtx, caller, to, amount0Out, amount1Out, data); err != nil {
					return err
				}
			}

			balance0, balance1 := k.pairBalances(sdkCtx, pair)
			amount0In = inputAmount(balance0, pair.Reserve0, amount0Out)
			amount1In = inputAmount(balance1, pair.Reserve1, amount1Out)
			if amount0In.IsZero() && amount1In.IsZero() {
				return types.ErrInsufficientInputAmount
			}

			// The fee is read at this point, not snapshotted with the reserves.
			fs, err := k.GetFactoryState(sdkCtx)
			if err != nil {
				return err
			}
			if err := checkK(balance0, balance1, amount0In, amount1In, pair.Reserve0, pair.Reserve1, fs.TradingFee); err != nil {
				return err
			}

			pair.TotalFeeCollected0 = pair.TotalFeeCollected0.Add(protocolFeeShare(amount0In, fs))
			pair.TotalFeeCollected1 = pair.TotalFeeCollected1.Add(protocolFeeShare(amount1In, fs))

			if err := k.update(sdkCtx, &pair, balance0, balance1); err != nil {
				return err
			}
			if err := k.setPair(sdkCtx, pair); err != nil {
				return err
			}
			if err := k.UpdatePairVolume(sdkCtx, pair.Address, pair.Address, amount0In.Add(amount1In)); err != nil {
				return err
			}
			if k.hooks != nil {
				if err := k.hooks.AfterSwap(sdkCtx, pair.Address, to, amount0In, amount1In, amount0Out, amount1Out); err != nil {
					return err
				}
			}

			sdkCtx.EventManager().EmitEvent(
				sdk.NewEvent(
					types.EventTypeSwap,
					sdk.NewAttribute(types.AttributeKeyPair, pair.Address.String()),
					sdk.NewAttribute(types.AttributeKeySender, caller.String()),
					sdk.NewAttribute(types.AttributeKeyTo, to.String()),
					sdk.NewAttribute(types.AttributeKeyAmount0In, amount0In.String()),
					sdk.NewAttribute(types.AttributeKeyAmount1In, amount1In.String()),
					sdk.NewAttribute(types.AttributeKeyAmount0Out, amount0Out.String()),
					sdk.NewAttribute(types.AttributeKeyAmount1Out, amount1Out.String()),
				),
			)
			return nil
		})
	})
	if err != nil {
		k.metrics.SwapsTotal.WithLabelValues(pairAddr.String(), "failed").Inc()
		return err
	}

	k.metrics.SwapsTotal.WithLabelValues(pairAddr.String(), "success").Inc()
	k.metrics.SwapVolume.WithLabelValues(pairAddr.String()).Add(intToFloat(amount0In.Add(amount1In)))
	recordSwapTelemetry(pairAddr.String(), amount0In.Add(amount1In))
	return nil
}

func (k Keeper) callFlashSwapCallee(ctx sdk.Context, caller, to sdk.AccAddress, amount0Out, amount1Out math.Int, data []byte) error {
	callee, ok := k.callees[to.String()]
	if !ok {
		return types.ErrCallbackFailed.Wrapf("no flash swap callee registered for %s", to)
	}
	if err := callee.PairsCall(ctx, caller, amount0Out, amount1Out, data); err != nil {
		return errors.Join(types.ErrCallbackFailed.Wrapf("callee %s", to), err)
	}
	return nil
}

// inputAmount is balance - (reserve - amountOut), floored at zero.
func inputAmount(balance, reserve, amountOut math.Int) math.Int {
	expected := reserve.Sub(amountOut)
	if balance.GT(expected) {
		return balance.Sub(expected)
	}
	return math.ZeroInt()
}

// checkK enforces
//
//	(balance0*1000 - amount0In*fee) * (balance1*1000 - amount1In*fee) >= reserve0*reserve1*1000^2
func checkK(balance0, balance1, amount0In, amount1In, reserve0, reserve1 math.Int, fee uint64) error {
	denom := big.NewInt(types.FeeDenominator)
	bigFee := new(big.Int).SetUint64(fee)

	adjusted0 := new(big.Int).Mul(balance0.BigInt(), denom)
	adjusted0.Sub(adjusted0, new(big.Int).Mul(amount0In.BigInt(), bigFee))
	adjusted1 := new(big.Int).Mul(balance1.BigInt(), denom)
	adjusted1.Sub(adjusted1, new(big.Int).Mul(amount1In.BigInt(), bigFee))

	lhs := new(big.Int).Mul(adjusted0, adjusted1)
	rhs := new(big.Int).Mul(reserve0.BigInt(), reserve1.BigInt())
	rhs.Mul(rhs, denom)
	rhs.Mul(rhs, denom)

	if lhs.Cmp(rhs) < 0 {
		return types.ErrK.Wrapf("%s < %s", lhs, rhs)
	}
	return nil
}

// protocolFeeShare is the part of the trading fee on amountIn set aside for the protocol.
func protocolFeeShare(amountIn math.Int, fs types.FactoryState) math.Int {
	if fs.ProtocolFeePercentage == 0 || fs.TradingFee == 0 || !amountIn.IsPositive() {
		return math.ZeroInt()
	}
	fee := amountIn.Mul(math.NewIntFromUint64(fs.TradingFee)).QuoRaw(types.FeeDenominator)
	return fee.Mul(math.NewIntFromUint64(fs.ProtocolFeePercentage)).QuoRaw(100)
}

func orZero(v math.Int) math.Int {
	if v.IsNil() {
		return math.ZeroInt()
	}
	return v
}
