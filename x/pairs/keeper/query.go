package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/pairs/types"
)

// GetAmountOut quotes the output of selling amountIn of tokenIn into the pair at
// the current reserves and live trading fee.
func (k Keeper) GetAmountOut(ctx context.Context, pairAddr sdk.AccAddress, amountIn math.Int, tokenIn string) (math.Int, error) {
	pair, err := k.GetPairRecord(ctx, pairAddr)
	if err != nil {
		return math.Int{}, err
	}
	reserveIn, reserveOut, err := pair.ReservesFor(tokenIn)
	if err != nil {
		return math.Int{}, err
	}
	return types.GetAmountOut(amountIn, reserveIn, reserveOut, k.GetPairTradingFee(ctx, pairAddr))
}

// GetAmountIn quotes the input needed to buy amountOut of tokenOut from the pair.
func (k Keeper) GetAmountIn(ctx context.Context, pairAddr sdk.AccAddress, amountOut math.Int, tokenOut string) (math.Int, error) {
	pair, err := k.GetPairRecord(ctx, pairAddr)
	if err != nil {
		return math.Int{}, err
	}
	reserveOut, reserveIn, err := pair.ReservesFor(tokenOut)
	if err != nil {
		return math.Int{}, err
	}
	return types.GetAmountIn(amountOut, reserveIn, reserveOut, k.GetPairTradingFee(ctx, pairAddr))
}

// GetPairStats returns the reporting view of a registered pair.
func (k Keeper) GetPairStats(ctx context.Context, pairAddr sdk.AccAddress) (types.PairStats, error) {
	pair, err := k.GetPairRecord(ctx, pairAddr)
	if err != nil {
		return types.PairStats{}, err
	}
	vol, err := k.GetPairVolume(ctx, pairAddr)
	if err != nil {
		return types.PairStats{}, err
	}
	return types.PairStats{
		Pair:               pair.Address,
		Token0:             pair.Token0,
		Token1:             pair.Token1,
		Reserve0:           pair.Reserve0,
		Reserve1:           pair.Reserve1,
		TotalSupply:        pair.TotalSupply,
		Volume:             vol.Volume,
		LastVolumeUpdate:   vol.LastUpdate,
		TotalFeeCollected0: pair.TotalFeeCollected0,
		TotalFeeCollected1: pair.TotalFeeCollected1,
		TradingFee:         k.GetPairTradingFee(ctx, pairAddr),
	}, nil
}

// GetDEXStats returns the reporting view of the factory.
func (k Keeper) GetDEXStats(ctx context.Context) (types.DEXStats, error) {
	fs, err := k.GetFactoryState(ctx)
	if err != nil {
		return types.DEXStats{}, err
	}
	return types.DEXStats{
		PairCount:             k.AllPairsLength(ctx),
		TotalVolume:           k.GetTotalVolume(ctx),
		TradingFee:            fs.TradingFee,
		ProtocolFeePercentage: fs.ProtocolFeePercentage,
		FeeTo:                 fs.FeeTo,
	}, nil
}
