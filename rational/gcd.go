// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package rational

import (
	"math"
	"math/bits"
)

// GCD returns the greatest common divisor of |m| and |n| using the binary
// (Stein) algorithm. GCD(0, 0) is 0.
//
// The only inputs whose GCD does not fit in an int64 are the ones where both
// values are math.MinInt64, or one is math.MinInt64 and the other is zero;
// those fail with ErrOverflow rather than wrapping.
func GCD(m, n int64) (int64, error) {
	d := gcd64(abs64u(m), abs64u(n))
	if d > math.MaxInt64 {
		return 0, ErrOverflow.New("gcd(%d, %d)", m, n)
	}
	return int64(d), nil
}

// gcd64 is the unsigned binary GCD.
func gcd64(a, b uint64) uint64 {
	if a == 0 {
		return b
	}
	if b == 0 {
		return a
	}
	shift := bits.TrailingZeros64(a | b)
	a >>= bits.TrailingZeros64(a)
	for b != 0 {
		b >>= bits.TrailingZeros64(b)
		if a > b {
			a, b = b, a
		}
		b -= a
	}
	return a << shift
}

// abs64u returns |x| as an unsigned value, which is exact even for MinInt64.
func abs64u(x int64) uint64 {
	if x < 0 {
		return uint64(-(x + 1)) + 1
	}
	return uint64(x)
}
