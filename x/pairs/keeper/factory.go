package keeper

import (
	"context"
	"encoding/binary"
	"fmt"
	"strconv"

	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/telemetry"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/pairs/types"
)

// CreatePair deploys the pair of tokenA and tokenB at its deterministic address
// and registers it in both directions.
func (k Keeper) CreatePair(ctx context.Context, caller sdk.AccAddress, tokenA, tokenB string) (sdk.AccAddress, error) {
	var pairAddr sdk.AccAddress
	err := k.executeAtomic(ctx, func(sdkCtx sdk.Context) error {
		if err := k.checkCreationCooldown(sdkCtx, caller); err != nil {
			return err
		}

		token0, token1, err := types.SortTokens(tokenA, tokenB)
		if err != nil {
			return err
		}
		if existing, found := k.GetPair(sdkCtx, token0, token1); found {
			return types.ErrPairExists.Wrapf("%s/%s at %s", token0, token1, existing)
		}

		addr, err := types.ComputePairAddress(k.FactoryAddress(), token0, token1)
		if err != nil {
			return err
		}
		if k.IsPair(sdkCtx, addr) {
			return types.ErrPairExists.Wrapf("address %s already in use", addr)
		}

		pair := types.NewPair(addr, token0, token1, k.AllPairsLength(sdkCtx))
		if err := k.setPair(sdkCtx, pair); err != nil {
			return fmt.Errorf("CreatePair: save pair: %w", err)
		}
		k.registerPair(sdkCtx, pair)
		k.getStore(sdkCtx).Set(types.LastPairCreationKey(caller), sdk.Uint64ToBigEndian(uint64(sdkCtx.BlockTime().Unix())))

		if k.hooks != nil {
			if err := k.hooks.AfterPairCreated(sdkCtx, addr, token0, token1); err != nil {
				return err
			}
		}

		sdkCtx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypePairCreated,
				sdk.NewAttribute(types.AttributeKeyToken0, token0),
				sdk.NewAttribute(types.AttributeKeyToken1, token1),
				sdk.NewAttribute(types.AttributeKeyPair, addr.String()),
				sdk.NewAttribute(types.AttributeKeyAllPairsLength, strconv.FormatUint(pair.Index+1, 10)),
			),
		)
		pairAddr = addr
		return nil
	})
	if err != nil {
		return nil, err
	}

	k.metrics.PairsCreated.Inc()
	k.metrics.PairsTotal.Set(float64(k.AllPairsLength(ctx)))
	telemetry.IncrCounter(1, types.ModuleName, "pair", "created")
	k.Logger(ctx).Info("pair created", "pair", pairAddr.String(), "creator", caller.String())
	return pairAddr, nil
}

// checkCreationCooldown rejects a creator who created a pair less than
// PairCreationCooldown ago.
func (k Keeper) checkCreationCooldown(ctx sdk.Context, caller sdk.AccAddress) error {
	if caller.Empty() {
		return types.ErrZeroAddress.Wrap("creator")
	}
	bz := k.getStore(ctx).Get(types.LastPairCreationKey(caller))
	if bz == nil {
		return nil
	}
	last := int64(binary.BigEndian.Uint64(bz))
	now := ctx.BlockTime().Unix()
	if now < last+int64(types.PairCreationCooldown.Seconds()) {
		return types.ErrCooldown.Wrapf("%s created a pair at %d, now %d", caller, last, now)
	}
	return nil
}

// PredictPairAddress returns the address CreatePair would assign to the two tokens.
func (k Keeper) PredictPairAddress(_ context.Context, tokenA, tokenB string) (sdk.AccAddress, error) {
	return types.ComputePairAddress(k.FactoryAddress(), tokenA, tokenB)
}

func (k Keeper) requireFeeToSetter(fs types.FactoryState, caller sdk.AccAddress) error {
	if fs.FeeToSetter.Empty() || !fs.FeeToSetter.Equals(caller) {
		return types.ErrForbidden.Wrapf("%s is not the fee setter", caller)
	}
	return nil
}

// SetFeeTo sets the protocol fee recipient. An empty address turns the protocol fee off.
func (k Keeper) SetFeeTo(ctx context.Context, caller, feeTo sdk.AccAddress) error {
	fs, err := k.GetFactoryState(ctx)
	if err != nil {
		return err
	}
	if err := k.requireFeeToSetter(fs, caller); err != nil {
		return err
	}

	fs.FeeTo = feeTo
	if err := k.setFactoryState(ctx, fs); err != nil {
		return err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(types.EventTypeFeeToSet, sdk.NewAttribute(types.AttributeKeyFeeTo, feeTo.String())),
	)
	k.Logger(ctx).Info("fee recipient set", "fee_to", feeTo.String())
	return nil
}

// SetFeeToSetter hands fee governance to setter.
func (k Keeper) SetFeeToSetter(ctx context.Context, caller, setter sdk.AccAddress) error {
	fs, err := k.GetFactoryState(ctx)
	if err != nil {
		return err
	}
	if err := k.requireFeeToSetter(fs, caller); err != nil {
		return err
	}
	if setter.Empty() {
		return types.ErrZeroAddress.Wrap("fee setter")
	}

	fs.FeeToSetter = setter
	if err := k.setFactoryState(ctx, fs); err != nil {
		return err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(types.EventTypeFeeToSetterSet, sdk.NewAttribute(types.AttributeKeyFeeToSetter, setter.String())),
	)
	k.Logger(ctx).Info("fee setter changed", "fee_to_setter", setter.String())
	return nil
}

// SetTradingFee sets the trading fee in parts per thousand. It applies to every
// pair from the next fee-sensitive operation on.
func (k Keeper) SetTradingFee(ctx context.Context, caller sdk.AccAddress, fee uint64) error {
	fs, err := k.GetFactoryState(ctx)
	if err != nil {
		return err
	}
	if err := k.requireFeeToSetter(fs, caller); err != nil {
		return err
	}
	if err := types.ValidateTradingFee(fee); err != nil {
		return err
	}

	fs.TradingFee = fee
	if err := k.setFactoryState(ctx, fs); err != nil {
		return err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(types.EventTypeTradingFeeSet, sdk.NewAttribute(types.AttributeKeyFee, strconv.FormatUint(fee, 10))),
	)
	k.Logger(ctx).Info("trading fee set", "fee", fee)
	return nil
}

// SetProtocolFee sets the percentage of each trading fee accrued for the protocol.
func (k Keeper) SetProtocolFee(ctx context.Context, caller sdk.AccAddress, pct uint64) error {
	fs, err := k.GetFactoryState(ctx)
	if err != nil {
		return err
	}
	if err := k.requireFeeToSetter(fs, caller); err != nil {
		return err
	}
	if err := types.ValidateProtocolFeePercentage(pct); err != nil {
		return err
	}

	fs.ProtocolFeePercentage = pct
	if err := k.setFactoryState(ctx, fs); err != nil {
		return err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(types.EventTypeProtocolFeeSet, sdk.NewAttribute(types.AttributeKeyFee, strconv.FormatUint(pct, 10))),
	)
	k.Logger(ctx).Info("protocol fee set", "percentage", pct)
	return nil
}

// GetPairTradingFee returns the live trading fee for a registered pair and 0 for
// any other address.
func (k Keeper) GetPairTradingFee(ctx context.Context, pair sdk.AccAddress) uint64 {
	if !k.IsPair(ctx, pair) {
		return 0
	}
	fs, err := k.GetFactoryState(ctx)
	if err != nil {
		k.Logger(ctx).Error("read factory state", "error", err)
		return 0
	}
	return fs.TradingFee
}

// GetTradingFee is the pair-side view of GetPairTradingFee.
func (k Keeper) GetTradingFee(ctx context.Context, pair sdk.AccAddress) uint64 {
	return k.GetPairTradingFee(ctx, pair)
}

// getAllCooldowns returns every creator's last pair creation time.
func (k Keeper) getAllCooldowns(ctx context.Context) []types.CreatorCooldown {
	iter := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.LastPairCreationKeyPrefix)
	defer iter.Close()

	cooldowns := []types.CreatorCooldown{}
	for ; iter.Valid(); iter.Next() {
		// key: prefix | len(creator) | creator
		key := iter.Key()[len(types.LastPairCreationKeyPrefix):]
		creator := sdk.AccAddress(key[1 : 1+int(key[0])])
		cooldowns = append(cooldowns, types.CreatorCooldown{
			Creator:       creator,
			LastCreatedAt: int64(binary.BigEndian.Uint64(iter.Value())),
		})
	}
	return cooldowns
}
