package types

import (
	"context"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// PairsHooks lets other modules observe pair creation and swaps.
// A hook error aborts the operation that triggered it.
type PairsHooks interface {
	AfterPairCreated(ctx context.Context, pair sdk.AccAddress, token0, token1 string) error
	AfterSwap(ctx context.Context, pair, to sdk.AccAddress, amount0In, amount1In, amount0Out, amount1Out sdkmath.Int) error
}

// MultiPairsHooks fans a hook call out to every member in order.
type MultiPairsHooks []PairsHooks

// NewMultiPairsHooks creates a new MultiPairsHooks from a list of hooks.
func NewMultiPairsHooks(hooks ...PairsHooks) MultiPairsHooks {
	return hooks
}

func (h MultiPairsHooks) AfterPairCreated(ctx context.Context, pair sdk.AccAddress, token0, token1 string) error {
	for _, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.AfterPairCreated(ctx, pair, token0, token1); err != nil {
			return err
		}
	}
	return nil
}

func (h MultiPairsHooks) AfterSwap(ctx context.Context, pair, to sdk.AccAddress, amount0In, amount1In, amount0Out, amount1Out sdkmath.Int) error {
	for _, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.AfterSwap(ctx, pair, to, amount0In, amount1In, amount0Out, amount1Out); err != nil {
			return err
		}
	}
	return nil
}
