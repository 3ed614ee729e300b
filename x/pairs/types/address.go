package types

import (
	"strings"

	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	"golang.org/x/crypto/sha3"
)

// PairCodeVersion identifies the pair implementation; its hash is mixed into every pair address.
const PairCodeVersion = "pawswap/x/pairs/Pair/v1"

// pairAddressPrefix is the fixed leading byte of the deterministic address preimage.
const pairAddressPrefix = 0xff

var (
	// PairCodeHash is keccak256(PairCodeVersion).
	PairCodeHash = Keccak256([]byte(PairCodeVersion))

	// BurnSinkAddress holds the permanently locked minimum liquidity.
	BurnSinkAddress = sdk.AccAddress(make([]byte, 20))
)

// Keccak256 hashes the concatenation of data with legacy Keccak-256.
func Keccak256(data ...[]byte) []byte {
	h := sha3.NewLegacyKeccak256()
	for _, d := range data {
		h.Write(d)
	}
	return h.Sum(nil)
}

// ModuleAddress is the factory's account address.
func ModuleAddress() sdk.AccAddress {
	return authtypes.NewModuleAddress(ModuleName)
}

// ValidateToken checks a token identifier.
func ValidateToken(token string) error {
	if strings.TrimSpace(token) == "" {
		return ErrZeroAddress.Wrap("empty token")
	}
	if err := sdk.ValidateDenom(token); err != nil {
		return ErrZeroAddress.Wrapf("token %q: %s", token, err)
	}
	return nil
}

// SortTokens validates two token identifiers and returns them in canonical order.
func SortTokens(tokenA, tokenB string) (string, string, error) {
	if tokenA == tokenB {
		return "", "", ErrIdenticalAddresses.Wrapf("%s", tokenA)
	}
	if err := ValidateToken(tokenA); err != nil {
		return "", "", err
	}
	if err := ValidateToken(tokenB); err != nil {
		return "", "", err
	}
	if tokenA > tokenB {
		tokenA, tokenB = tokenB, tokenA
	}
	return tokenA, tokenB, nil
}

// PairSalt is keccak256(token0 || 0x00 || token1) over canonically ordered tokens.
func PairSalt(token0, token1 string) []byte {
	return Keccak256([]byte(token0), []byte{0x00}, []byte(token1))
}

// ComputePairAddress derives the address the factory assigns to the pair of tokenA and tokenB:
//
//	keccak256(0xff || factory || salt || PairCodeHash)[12:]
func ComputePairAddress(factory sdk.AccAddress, tokenA, tokenB string) (sdk.AccAddress, error) {
	token0, token1, err := SortTokens(tokenA, tokenB)
	if err != nil {
		return nil, err
	}
	if len(factory) == 0 {
		return nil, ErrZeroAddress.Wrap("factory address")
	}
	hash := Keccak256([]byte{pairAddressPrefix}, factory, PairSalt(token0, token1), PairCodeHash)
	return sdk.AccAddress(hash[12:]), nil
}
