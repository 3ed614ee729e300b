package types

import (
	"context"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// BankKeeper is the token ledger the pairs hold their balances in.
type BankKeeper interface {
	GetBalance(ctx context.Context, addr sdk.AccAddress, denom string) sdk.Coin
	SendCoins(ctx context.Context, fromAddr, toAddr sdk.AccAddress, amt sdk.Coins) error
}

// FlashSwapCallee receives the optimistic outputs of a swap carrying a non-empty
// payload and must repay the pair before returning.
type FlashSwapCallee interface {
	PairsCall(ctx context.Context, sender sdk.AccAddress, amount0, amount1 sdkmath.Int, data []byte) error
}

// FlashSwapCalleeFunc adapts a function to FlashSwapCallee.
type FlashSwapCalleeFunc func(ctx context.Context, sender sdk.AccAddress, amount0, amount1 sdkmath.Int, data []byte) error

func (f FlashSwapCalleeFunc) PairsCall(ctx context.Context, sender sdk.AccAddress, amount0, amount1 sdkmath.Int, data []byte) error {
	return f(ctx, sender, amount0, amount1, data)
}
