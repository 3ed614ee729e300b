package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/pairs/types"
)

// Mint issues liquidity shares to to for the tokens deposited into the pair since
// the last reserve update. The first deposit locks MinimumLiquidity shares in the
// burn sink.
func (k Keeper) Mint(ctx context.Context, pairAddr, to sdk.AccAddress) (math.Int, error) {
	var liquidity math.Int
	err := k.executeAtomic(ctx, func(sdkCtx sdk.Context) error {
		return k.withPairLock(sdkCtx, pairAddr, "mint", func() error {
			if to.Empty() {
				return types.ErrZeroAddress.Wrap("mint recipient")
			}
			pair, err := k.GetPairRecord(sdkCtx, pairAddr)
			if err != nil {
				return err
			}
			fs, err := k.GetFactoryState(sdkCtx)
			if err != nil {
				return err
			}

			balance0, balance1 := k.pairBalances(sdkCtx, pair)
			if balance0.GT(types.MaxReserve) || balance1.GT(types.MaxReserve) {
				return types.ErrOverflow.Wrapf("balances %s/%s exceed 112 bits", balance0, balance1)
			}
			amount0 := balance0.Sub(pair.Reserve0)
			amount1 := balance1.Sub(pair.Reserve1)
			if amount0.IsNegative() || amount1.IsNegative() {
				return types.ErrInsufficientLiquidityMinted.Wrap("balance below reserve")
			}

			feeOn, err := k.mintFee(sdkCtx, &pair, fs)
			if err != nil {
				return err
			}

			if pair.TotalSupply.IsZero() {
				liquidity = types.SqrtProduct(amount0, amount1).SubRaw(types.MinimumLiquidity)
				if !liquidity.IsPositive() {
					return types.ErrInsufficientLiquidityMinted.Wrapf("first deposit yields %s", liquidity)
				}
				if err := k.mintShares(sdkCtx, &pair, types.BurnSinkAddress, math.NewInt(types.MinimumLiquidity)); err != nil {
					return err
				}
			} else {
				liquidity0, err := types.MulDiv(amount0, pair.TotalSupply, pair.Reserve0)
				if err != nil {
					return err
				}
				liquidity1, err := types.MulDiv(amount1, pair.TotalSupply, pair.Reserve1)
				if err != nil {
					return err
				}
				liquidity = math.MinInt(liquidity0, liquidity1)
			}
			if !liquidity.IsPositive() {
				return types.ErrInsufficientLiquidityMinted.Wrapf("%s", liquidity)
			}
			if err := k.mintShares(sdkCtx, &pair, to, liquidity); err != nil {
				return err
			}

			if err := k.update(sdkCtx, &pair, balance0, balance1); err != nil {
				return err
			}
			if feeOn {
				pair.KLast = pair.Reserve0.Mul(pair.Reserve1)
			}
			if err := k.setPair(sdkCtx, pair); err != nil {
				return err
			}

			sdkCtx.EventManager().EmitEvent(
				sdk.NewEvent(
					types.EventTypeMint,
					sdk.NewAttribute(types.AttributeKeyPair, pair.Address.String()),
					sdk.NewAttribute(types.AttributeKeyTo, to.String()),
					sdk.NewAttribute(types.AttributeKeyAmount0, amount0.String()),
					sdk.NewAttribute(types.AttributeKeyAmount1, amount1.String()),
					sdk.NewAttribute(types.AttributeKeyLiquidity, liquidity.String()),
				),
			)
			return nil
		})
	})
	if err != nil {
		return math.Int{}, err
	}

	k.metrics.LiquidityMinted.WithLabelValues(pairAddr.String()).Add(intToFloat(liquidity))
	return liquidity, nil
}

// Burn redeems the shares held by the pair's own account (transferred there
// beforehand) and sends the proportional token amounts to to. Accrued protocol
// fees are not part of the redeemable balances.
func (k Keeper) Burn(ctx context.Context, pairAddr, to sdk.AccAddress) (math.Int, math.Int, error) {
	var amount0, amount1, liquidity math.Int
	err := k.executeAtomic(ctx, func(sdkCtx sdk.Context) error {
		return k.withPairLock(sdkCtx, pairAddr, "burn", func() error {
			if to.Empty() {
				return types.ErrZeroAddress.Wrap("burn recipient")
			}
			pair, err := k.GetPairRecord(sdkCtx, pairAddr)
			if err != nil {
				return err
			}
			fs, err := k.GetFactoryState(sdkCtx)
			if err != nil {
				return err
			}

			balance0, balance1 := k.pairBalances(sdkCtx, pair)
			liquidity = k.BalanceOf(sdkCtx, pair.Address, pair.Address)

			feeOn, err := k.mintFee(sdkCtx, &pair, fs)
			if err != nil {
				return err
			}
			if !liquidity.IsPositive() || pair.TotalSupply.IsZero() {
				return types.ErrInsufficientLiquidityBurned.Wrap("no shares held by the pair")
			}

			claimable0 := claimableBalance(balance0, pair.TotalFeeCollected0)
			claimable1 := claimableBalance(balance1, pair.TotalFeeCollected1)
			if amount0, err = types.MulDiv(liquidity, claimable0, pair.TotalSupply); err != nil {
				return err
			}
			if amount1, err = types.MulDiv(liquidity, claimable1, pair.TotalSupply); err != nil {
				return err
			}
			if !amount0.IsPositive() || !amount1.IsPositive() {
				return types.ErrInsufficientLiquidityBurned.Wrapf("amounts %s/%s", amount0, amount1)
			}

			if err := k.burnShares(sdkCtx, &pair, pair.Address, liquidity); err != nil {
				return err
			}
			if err := k.safeTransfer(sdkCtx, pair.Token0, pair.Address, to, amount0); err != nil {
				return err
			}
			if err := k.safeTransfer(sdkCtx, pair.Token1, pair.Address, to, amount1); err != nil {
				return err
			}

			balance0, balance1 = k.pairBalances(sdkCtx, pair)
			if err := k.update(sdkCtx, &pair, balance0, balance1); err != nil {
				return err
			}
			if feeOn {
				pair.KLast = pair.Reserve0.Mul(pair.Reserve1)
			}
			if err := k.setPair(sdkCtx, pair); err != nil {
				return err
			}

			sdkCtx.EventManager().EmitEvent(
				sdk.NewEvent(
					types.EventTypeBurn,
					sdk.NewAttribute(types.AttributeKeyPair, pair.Address.String()),
					sdk.NewAttribute(types.AttributeKeyTo, to.String()),
					sdk.NewAttribute(types.AttributeKeyAmount0, amount0.String()),
					sdk.NewAttribute(types.AttributeKeyAmount1, amount1.String()),
					sdk.NewAttribute(types.AttributeKeyLiquidity, liquidity.String()),
				),
			)
			return nil
		})
	})
	if err != nil {
		return math.Int{}, math.Int{}, err
	}

	k.metrics.LiquidityBurned.WithLabelValues(pairAddr.String()).Add(intToFloat(liquidity))
	return amount0, amount1, nil
}

// claimableBalance is balance - accrued, floored at zero.
func claimableBalance(balance, accrued math.Int) math.Int {
	switch {
	case accrued.IsNil():
		return balance
	case balance.LTE(accrued):
		return math.ZeroInt()
	default:
		return balance.Sub(accrued)
	}
}

// mintFee mints the protocol's 1/6 share of the growth in sqrt(k) since the last
// liquidity event to the fee recipient. With no recipient configured it clears kLast.
func (k Keeper) mintFee(ctx sdk.Context, pair *types.Pair, fs types.FactoryState) (bool, error) {
	feeOn := fs.FeeOn()
	if !feeOn {
		if !pair.KLast.IsZero() {
			pair.KLast = math.ZeroInt()
		}
		return false, nil
	}
	if pair.KLast.IsZero() {
		return true, nil
	}

	rootK := types.SqrtProduct(pair.Reserve0, pair.Reserve1)
	rootKLast := types.Sqrt(pair.KLast)
	if !rootK.GT(rootKLast) {
		return true, nil
	}

	numerator := pair.TotalSupply.Mul(rootK.Sub(rootKLast))
	denominator := rootK.MulRaw(5).Add(rootKLast)
	liquidity := numerator.Quo(denominator)
	if liquidity.IsPositive() {
		if err := k.mintShares(ctx, pair, fs.FeeTo, liquidity); err != nil {
			return false, err
		}
	}
	return true, nil
}
