package types

import (
	"math/big"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/holiman/uint256"
)

// bigFeeDenominator mirrors FeeDenominator for big.Int arithmetic
var bigFeeDenominator = big.NewInt(FeeDenominator)

// IntFromBig converts b to a math.Int, failing with ErrOverflow when it does not fit.
func IntFromBig(b *big.Int) (sdkmath.Int, error) {
	if b.BitLen() > sdkmath.MaxBitLen {
		return sdkmath.Int{}, ErrOverflow.Wrapf("%d-bit value", b.BitLen())
	}
	return sdkmath.NewIntFromBigInt(b), nil
}

// Sqrt returns floor(sqrt(x)) for x >= 0.
func Sqrt(x sdkmath.Int) sdkmath.Int {
	if !x.IsPositive() {
		return sdkmath.ZeroInt()
	}
	return sdkmath.NewIntFromBigInt(new(big.Int).Sqrt(x.BigInt()))
}

// SqrtProduct returns floor(sqrt(a*b)) without bounding the intermediate product.
func SqrtProduct(a, b sdkmath.Int) sdkmath.Int {
	if !a.IsPositive() || !b.IsPositive() {
		return sdkmath.ZeroInt()
	}
	p := new(big.Int).Mul(a.BigInt(), b.BigInt())
	return sdkmath.NewIntFromBigInt(p.Sqrt(p))
}

// MulDiv returns floor(a*b/c) with an unbounded intermediate.
func MulDiv(a, b, c sdkmath.Int) (sdkmath.Int, error) {
	if c.IsZero() {
		return sdkmath.Int{}, ErrInsufficientLiquidity.Wrap("division by zero")
	}
	p := new(big.Int).Mul(a.BigInt(), b.BigInt())
	return IntFromBig(p.Quo(p, c.BigInt()))
}

func feeMultiplier(fee uint64) (*big.Int, error) {
	if fee >= FeeDenominator {
		return nil, ErrFeeTooHigh.Wrapf("%d", fee)
	}
	return new(big.Int).SetUint64(FeeDenominator - fee), nil
}

// GetAmountOut returns the maximum output for amountIn given the reserves and a
// trading fee in parts per thousand. Rounds down.
func GetAmountOut(amountIn, reserveIn, reserveOut sdkmath.Int, fee uint64) (sdkmath.Int, error) {
	if amountIn.IsNil() || !amountIn.IsPositive() {
		return sdkmath.Int{}, ErrInsufficientInputAmount
	}
	if reserveIn.IsNil() || reserveOut.IsNil() || !reserveIn.IsPositive() || !reserveOut.IsPositive() {
		return sdkmath.Int{}, ErrInsufficientLiquidity
	}
	mult, err := feeMultiplier(fee)
	if err != nil {
		return sdkmath.Int{}, err
	}

	amountInWithFee := new(big.Int).Mul(amountIn.BigInt(), mult)
	numerator := new(big.Int).Mul(amountInWithFee, reserveOut.BigInt())
	denominator := new(big.Int).Mul(reserveIn.BigInt(), bigFeeDenominator)
	denominator.Add(denominator, amountInWithFee)

	return IntFromBig(numerator.Quo(numerator, denominator))
}

// GetAmountIn returns the minimum input needed to receive amountOut. Rounds up.
func GetAmountIn(amountOut, reserveIn, reserveOut sdkmath.Int, fee uint64) (sdkmath.Int, error) {
	if amountOut.IsNil() || !amountOut.IsPositive() {
		return sdkmath.Int{}, ErrInsufficientOutputAmount
	}
	if reserveIn.IsNil() || reserveOut.IsNil() || !reserveIn.IsPositive() || !reserveOut.IsPositive() {
		return sdkmath.Int{}, ErrInsufficientLiquidity
	}
	if amountOut.GTE(reserveOut) {
		return sdkmath.Int{}, ErrInsufficientLiquidity.Wrapf("output %s >= reserve %s", amountOut, reserveOut)
	}
	mult, err := feeMultiplier(fee)
	if err != nil {
		return sdkmath.Int{}, err
	}

	numerator := new(big.Int).Mul(reserveIn.BigInt(), amountOut.BigInt())
	numerator.Mul(numerator, bigFeeDenominator)
	denominator := new(big.Int).Sub(reserveOut.BigInt(), amountOut.BigInt())
	denominator.Mul(denominator, mult)

	numerator.Quo(numerator, denominator)
	return IntFromBig(numerator.Add(numerator, big.NewInt(1)))
}

// Quote returns the amount of B equivalent to amountA at the current reserve ratio.
func Quote(amountA, reserveA, reserveB sdkmath.Int) (sdkmath.Int, error) {
	if amountA.IsNil() || !amountA.IsPositive() {
		return sdkmath.Int{}, ErrInsufficientAmount
	}
	if reserveA.IsNil() || reserveB.IsNil() || !reserveA.IsPositive() || !reserveB.IsPositive() {
		return sdkmath.Int{}, ErrInsufficientLiquidity
	}
	return MulDiv(amountA, reserveB, reserveA)
}

// BlockTimestamp truncates t to the 32-bit wrapping timestamp stored on pairs.
func BlockTimestamp(t time.Time) uint32 {
	return uint32(t.Unix())
}

// PriceIncrement returns (reserveOther << 112) / reserveThis * elapsed modulo 2^256.
// Both reserves must be positive and fit in 112 bits.
func PriceIncrement(reserveThis, reserveOther sdkmath.Int, elapsed uint32) *uint256.Int {
	this := uint256.MustFromBig(reserveThis.BigInt())
	price := uint256.MustFromBig(reserveOther.BigInt())
	price.Lsh(price, ReserveBits)
	price.Div(price, this)
	return price.Mul(price, uint256.NewInt(uint64(elapsed)))
}

// AveragePrice returns the UQ112x112 average price over a window between two
// accumulator samples. Both the accumulator difference and elapsed are taken with
// wraparound, so windows spanning an overflow are handled.
func AveragePrice(start, end PriceCumulative, elapsed uint32) (*uint256.Int, error) {
	if elapsed == 0 {
		return nil, ErrInsufficientAmount.Wrap("empty window")
	}
	diff := new(uint256.Int).Sub(&end.Int, &start.Int)
	return diff.Div(diff, uint256.NewInt(uint64(elapsed))), nil
}

// UQ112x112ToDec decodes a UQ112x112 fixed-point value into a LegacyDec.
func UQ112x112ToDec(x *uint256.Int) sdkmath.LegacyDec {
	scaled := new(big.Int).Mul(x.ToBig(), new(big.Int).Exp(big.NewInt(10), big.NewInt(sdkmath.LegacyPrecision), nil))
	scaled.Rsh(scaled, ReserveBits)
	return sdkmath.LegacyNewDecFromBigIntWithPrec(scaled, sdkmath.LegacyPrecision)
}
