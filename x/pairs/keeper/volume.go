package keeper

import (
	"context"
	"encoding/json"
	"fmt"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/pairs/types"
)

// UpdatePairVolume adds amount to the pair's and the global volume. Only a
// registered pair may report, and only for itself.
//
// Volume is a raw token-unit count: a swap reports amount0In+amount1In, so a
// pair's volume adds base units of both of its tokens without any price
// conversion, and the global total adds base units across all pairs.
// Per-token figures come from the swap events.
func (k Keeper) UpdatePairVolume(ctx context.Context, caller, pair sdk.AccAddress, amount math.Int) error {
	if !caller.Equals(pair) || !k.IsPair(ctx, pair) {
		return types.ErrInvalidPair.Wrapf("%s cannot report volume for %s", caller, pair)
	}
	if amount.IsNil() || amount.IsNegative() {
		return types.ErrInsufficientAmount.Wrap("negative volume")
	}

	return k.executeAtomic(ctx, func(sdkCtx sdk.Context) error {
		vol, err := k.GetPairVolume(sdkCtx, pair)
		if err != nil {
			return err
		}
		vol.Volume = vol.Volume.Add(amount)
		vol.LastUpdate = sdkCtx.BlockTime().Unix()
		if err := k.setPairVolume(sdkCtx, vol); err != nil {
			return err
		}

		total := k.GetTotalVolume(sdkCtx).Add(amount)
		if err := k.setTotalVolume(sdkCtx, total); err != nil {
			return err
		}

		sdkCtx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeVolumeUpdated,
				sdk.NewAttribute(types.AttributeKeyPair, pair.String()),
				sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
				sdk.NewAttribute(types.AttributeKeyVolume, vol.Volume.String()),
				sdk.NewAttribute(types.AttributeKeyTotalVolume, total.String()),
			),
		)
		return nil
	})
}

// GetPairVolume returns the volume record of pair, zero if none was reported.
func (k Keeper) GetPairVolume(ctx context.Context, pair sdk.AccAddress) (types.PairVolume, error) {
	bz := k.getStore(ctx).Get(types.PairVolumeKey(pair))
	if bz == nil {
		return types.PairVolume{Pair: pair, Volume: math.ZeroInt()}, nil
	}
	var vol types.PairVolume
	if err := json.Unmarshal(bz, &vol); err != nil {
		return types.PairVolume{}, fmt.Errorf("GetPairVolume: unmarshal %s: %w", pair, err)
	}
	return vol, nil
}

func (k Keeper) setPairVolume(ctx context.Context, vol types.PairVolume) error {
	bz, err := json.Marshal(vol)
	if err != nil {
		return fmt.Errorf("setPairVolume: marshal: %w", err)
	}
	k.getStore(ctx).Set(types.PairVolumeKey(vol.Pair), bz)
	return nil
}

// GetAllPairVolumes returns every stored volume record.
func (k Keeper) GetAllPairVolumes(ctx context.Context) ([]types.PairVolume, error) {
	iter := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.PairVolumeKeyPrefix)
	defer iter.Close()

	var vols []types.PairVolume
	for ; iter.Valid(); iter.Next() {
		var vol types.PairVolume
		if err := json.Unmarshal(iter.Value(), &vol); err != nil {
			return nil, fmt.Errorf("GetAllPairVolumes: unmarshal: %w", err)
		}
		vols = append(vols, vol)
	}
	return vols, nil
}

// GetTotalVolume returns the volume reported across all pairs.
func (k Keeper) GetTotalVolume(ctx context.Context) math.Int {
	bz := k.getStore(ctx).Get(types.TotalVolumeKey)
	if bz == nil {
		return math.ZeroInt()
	}
	var total math.Int
	if err := total.Unmarshal(bz); err != nil {
		k.Logger(ctx).Error("corrupt total volume", "error", err)
		return math.ZeroInt()
	}
	return total
}

func (k Keeper) setTotalVolume(ctx context.Context, total math.Int) error {
	bz, err := total.Marshal()
	if err != nil {
		return fmt.Errorf("setTotalVolume: marshal: %w", err)
	}
	k.getStore(ctx).Set(types.TotalVolumeKey, bz)
	return nil
}
