package types

// Event types for the pairs module
const (
	// Factory events
	EventTypePairCreated     = "pair_created"
	EventTypeFeeToSet        = "fee_to_set"
	EventTypeFeeToSetterSet  = "fee_to_setter_set"
	EventTypeTradingFeeSet   = "trading_fee_set"
	EventTypeProtocolFeeSet  = "protocol_fee_set"
	EventTypeVolumeUpdated   = "volume_updated"
	EventTypeProtocolFeePaid = "protocol_fee_collected"

	// Pair events
	EventTypeMint     = "mint"
	EventTypeBurn     = "burn"
	EventTypeSwap     = "swap"
	EventTypeSync     = "sync"
	EventTypeTransfer = "transfer"
)

// Event attribute keys
const (
	AttributeKeyToken0         = "token0"
	AttributeKeyToken1         = "token1"
	AttributeKeyPair           = "pair"
	AttributeKeyAllPairsLength = "all_pairs_length"
	AttributeKeyFeeTo          = "fee_to"
	AttributeKeyFeeToSetter    = "fee_to_setter"
	AttributeKeyFee            = "fee"
	AttributeKeyVolume         = "volume"
	AttributeKeyTotalVolume    = "total_volume"
	AttributeKeySender         = "sender"
	AttributeKeyTo             = "to"
	AttributeKeyFrom           = "from"
	AttributeKeyAmount         = "amount"
	AttributeKeyAmount0        = "amount0"
	AttributeKeyAmount1        = "amount1"
	AttributeKeyAmount0In      = "amount0_in"
	AttributeKeyAmount1In      = "amount1_in"
	AttributeKeyAmount0Out     = "amount0_out"
	AttributeKeyAmount1Out     = "amount1_out"
	AttributeKeyLiquidity      = "liquidity"
	AttributeKeyReserve0       = "reserve0"
	AttributeKeyReserve1       = "reserve1"
)
