package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
)

const (
	// ModuleName defines the module name
	ModuleName = "pairs"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// RouterKey defines the module's message routing key
	RouterKey = ModuleName
)

// Store key prefixes
var (
	FactoryStateKey           = []byte{0x01} // key for the singleton factory state
	PairKeyPrefix             = []byte{0x02} // prefix for pair records by address
	PairByTokensKeyPrefix     = []byte{0x03} // prefix for the token-pair registry
	AllPairsKeyPrefix         = []byte{0x04} // prefix for the creation-ordered pair list
	PairCountKey              = []byte{0x05} // key for the pair count
	ShareBalanceKeyPrefix     = []byte{0x06} // prefix for liquidity share balances
	PairVolumeKeyPrefix       = []byte{0x07} // prefix for per-pair volume
	TotalVolumeKey            = []byte{0x08} // key for the running total volume
	LastPairCreationKeyPrefix = []byte{0x09} // prefix for creator cooldown timestamps
	ReentrancyLockKeyPrefix   = []byte{0x0A} // prefix for per-pair reentrancy locks
)

// PairKey returns the store key for a pair record
func PairKey(pair sdk.AccAddress) []byte {
	return append(append([]byte{}, PairKeyPrefix...), address.MustLengthPrefix(pair)...)
}

// PairByTokensKey returns the registry key for (tokenA, tokenB) in exactly that order.
// The registry holds one entry per direction.
func PairByTokensKey(tokenA, tokenB string) []byte {
	key := append([]byte{}, PairByTokensKeyPrefix...)
	key = append(key, address.MustLengthPrefix([]byte(tokenA))...)
	return append(key, address.MustLengthPrefix([]byte(tokenB))...)
}

// AllPairsKey returns the key of the index-th created pair
func AllPairsKey(index uint64) []byte {
	return append(append([]byte{}, AllPairsKeyPrefix...), sdk.Uint64ToBigEndian(index)...)
}

// ShareBalancePrefix returns the prefix covering every share holder of a pair
func ShareBalancePrefix(pair sdk.AccAddress) []byte {
	return append(append([]byte{}, ShareBalanceKeyPrefix...), address.MustLengthPrefix(pair)...)
}

// ShareBalanceKey returns the store key for a holder's liquidity shares in a pair
func ShareBalanceKey(pair, holder sdk.AccAddress) []byte {
	return append(ShareBalancePrefix(pair), holder...)
}

// PairVolumeKey returns the store key for a pair's volume record
func PairVolumeKey(pair sdk.AccAddress) []byte {
	return append(append([]byte{}, PairVolumeKeyPrefix...), address.MustLengthPrefix(pair)...)
}

// LastPairCreationKey returns the store key for a creator's last pair creation time
func LastPairCreationKey(creator sdk.AccAddress) []byte {
	return append(append([]byte{}, LastPairCreationKeyPrefix...), address.MustLengthPrefix(creator)...)
}

// ReentrancyLockKey returns the store key for a pair's reentrancy lock
func ReentrancyLockKey(pair sdk.AccAddress) []byte {
	return append(append([]byte{}, ReentrancyLockKeyPrefix...), address.MustLengthPrefix(pair)...)
}
