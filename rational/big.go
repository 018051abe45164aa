// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package rational

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// MaxBigBits bounds the size of integers produced by BigIntPow.
const MaxBigBits = 1 << 16

// BigFraction is an immutable arbitrary-precision rational number.
// The zero value is 0/1. Methods never modify their receiver or arguments.
type BigFraction struct {
	r *big.Rat
}

var zeroRat = new(big.Rat)

// NewBig returns num/den in lowest terms. A zero denominator fails with
// ErrInvalid.
func NewBig(num, den *big.Int) (BigFraction, error) {
	if den.Sign() == 0 {
		return BigFraction{}, ErrInvalid.New("zero denominator in %s/%s", num, den)
	}
	return BigFraction{new(big.Rat).SetFrac(num, den)}, nil
}

// BigRatio is NewBig for int64 operands.
func BigRatio(num, den int64) (BigFraction, error) {
	if den == 0 {
		return BigFraction{}, ErrInvalid.New("zero denominator in %d/%d", num, den)
	}
	return BigFraction{big.NewRat(num, den)}, nil
}

// MustBig is like BigRatio but panics on error.
func MustBig(num, den int64) BigFraction {
	b, err := BigRatio(num, den)
	if err != nil {
		panic(err)
	}
	return b
}

// BigInt returns n/1.
func BigInt(n int64) BigFraction {
	return BigFraction{new(big.Rat).SetInt64(n)}
}

// BigFromRat returns a copy of r.
func BigFromRat(r *big.Rat) BigFraction {
	return BigFraction{new(big.Rat).Set(r)}
}

// BigFromDecimal returns the exact value of d.
func BigFromDecimal(d decimal.Decimal) BigFraction {
	return BigFraction{d.Rat()}
}

// ParseBig parses a fraction "a/b", an integer, or a decimal number with an
// optional exponent ("1.25", "6.02214076e23").
func ParseBig(s string) (BigFraction, error) {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return BigFraction{}, ErrInvalid.New("not a number: %q", s)
	}
	return BigFraction{r}, nil
}

func (x BigFraction) rat() *big.Rat {
	if x.r == nil {
		return zeroRat
	}
	return x.r
}

// Rat returns x as a new big.Rat.
func (x BigFraction) Rat() *big.Rat {
	return new(big.Rat).Set(x.rat())
}

// Num returns a copy of the numerator.
func (x BigFraction) Num() *big.Int {
	return new(big.Int).Set(x.rat().Num())
}

// Den returns a copy of the (positive) denominator.
func (x BigFraction) Den() *big.Int {
	return new(big.Int).Set(x.rat().Denom())
}

// Sign returns -1, 0 or 1.
func (x BigFraction) Sign() int {
	return x.rat().Sign()
}

// IsZero reports whether x == 0.
func (x BigFraction) IsZero() bool {
	return x.Sign() == 0
}

// IsOne reports whether x == 1.
func (x BigFraction) IsOne() bool {
	r := x.rat()
	return r.IsInt() && r.Num().IsInt64() && r.Num().Int64() == 1
}

// IsInt reports whether the denominator of x is 1.
func (x BigFraction) IsInt() bool {
	return x.rat().IsInt()
}

// Cmp compares x and y.
func (x BigFraction) Cmp(y BigFraction) int {
	return x.rat().Cmp(y.rat())
}

// Equal reports whether x == y.
func (x BigFraction) Equal(y BigFraction) bool {
	return x.Cmp(y) == 0
}

// Add returns x + y.
func (x BigFraction) Add(y BigFraction) BigFraction {
	return BigFraction{new(big.Rat).Add(x.rat(), y.rat())}
}

// Sub returns x - y.
func (x BigFraction) Sub(y BigFraction) BigFraction {
	return BigFraction{new(big.Rat).Sub(x.rat(), y.rat())}
}

// Mul returns x * y.
func (x BigFraction) Mul(y BigFraction) BigFraction {
	return BigFraction{new(big.Rat).Mul(x.rat(), y.rat())}
}

// Quo returns x / y. Division by zero fails with ErrInvalid.
func (x BigFraction) Quo(y BigFraction) (BigFraction, error) {
	if y.IsZero() {
		return BigFraction{}, ErrInvalid.New("division of %s by zero", x)
	}
	return BigFraction{new(big.Rat).Quo(x.rat(), y.rat())}, nil
}

// Neg returns -x.
func (x BigFraction) Neg() BigFraction {
	return BigFraction{new(big.Rat).Neg(x.rat())}
}

// Abs returns |x|.
func (x BigFraction) Abs() BigFraction {
	return BigFraction{new(big.Rat).Abs(x.rat())}
}

// Inv returns 1/x. The reciprocal of zero fails with ErrInvalid.
func (x BigFraction) Inv() (BigFraction, error) {
	if x.IsZero() {
		return BigFraction{}, ErrInvalid.New("reciprocal of zero")
	}
	return BigFraction{new(big.Rat).Inv(x.rat())}, nil
}

// Pow returns x^n. Negative n inverts x first.
func (x BigFraction) Pow(n int) (BigFraction, error) {
	base := x
	if n < 0 {
		var err error
		if base, err = x.Inv(); err != nil {
			return BigFraction{}, err
		}
		n = -n
	}
	num, err := BigIntPow(base.rat().Num(), n)
	if err != nil {
		return BigFraction{}, err
	}
	den, err := BigIntPow(base.rat().Denom(), n)
	if err != nil {
		return BigFraction{}, err
	}
	return NewBig(num, den)
}

// NthRoot returns the exact rational nth root of x when one exists.
// Even roots of negative values and n <= 0 report false.
func (x BigFraction) NthRoot(n int) (BigFraction, bool) {
	if n <= 0 {
		return BigFraction{}, false
	}
	if n == 1 || x.IsZero() {
		return x, true
	}
	neg := x.Sign() < 0
	if neg && n%2 == 0 {
		return BigFraction{}, false
	}
	num := new(big.Int).Abs(x.rat().Num())
	rn, ok := intRoot(num, n)
	if !ok {
		return BigFraction{}, false
	}
	rd, ok := intRoot(x.rat().Denom(), n)
	if !ok {
		return BigFraction{}, false
	}
	if neg {
		rn.Neg(rn)
	}
	return BigFraction{new(big.Rat).SetFrac(rn, rd)}, true
}

// Fraction narrows x to a machine-width Fraction, or fails with ErrOverflow.
func (x BigFraction) Fraction() (Fraction, error) {
	return fromRat(x.rat())
}

// Float64 returns the nearest float64 to x.
func (x BigFraction) Float64() float64 {
	f, _ := x.rat().Float64()
	return f
}

// Decimal returns x rounded according to mc.
func (x BigFraction) Decimal(mc MathContext) decimal.Decimal {
	r := x.rat()
	num := decimal.NewFromBigInt(r.Num(), 0)
	if r.IsInt() {
		return mc.Round(num)
	}
	return mc.Quo(num, decimal.NewFromBigInt(r.Denom(), 0))
}

// String returns "a" or "a/b".
func (x BigFraction) String() string {
	return x.rat().RatString()
}

// BigIntPow returns base^exp. Negative exponents fail with ErrInvalid and
// results wider than MaxBigBits fail with ErrOverflow.
func BigIntPow(base *big.Int, exp int) (*big.Int, error) {
	if exp < 0 {
		return nil, ErrInvalid.New("negative exponent %d", exp)
	}
	if bl := base.BitLen(); bl > 1 && (bl-1)*exp > MaxBigBits {
		return nil, ErrOverflow.New("%s^%d exceeds %d bits", base, exp, MaxBigBits)
	}
	return new(big.Int).Exp(base, big.NewInt(int64(exp)), nil), nil
}

// intRoot returns the integer nth root of x >= 0 and whether it is exact.
func intRoot(x *big.Int, n int) (*big.Int, bool) {
	if x.Sign() == 0 || n == 1 {
		return new(big.Int).Set(x), true
	}
	if n == 2 {
		r := new(big.Int).Sqrt(x)
		return r, new(big.Int).Mul(r, r).Cmp(x) == 0
	}
	nn := big.NewInt(int64(n))
	n1 := big.NewInt(int64(n - 1))
	// 2^ceil(bits/n) is an upper bound of the root
	r := new(big.Int).Lsh(big.NewInt(1), uint((x.BitLen()+n-1)/n))
	for {
		p := new(big.Int).Exp(r, n1, nil)
		y := new(big.Int).Quo(x, p)
		y.Add(y, new(big.Int).Mul(r, n1))
		y.Quo(y, nn)
		if y.Cmp(r) >= 0 {
			break
		}
		r = y
	}
	return r, new(big.Int).Exp(r, nn, nil).Cmp(x) == 0
}
