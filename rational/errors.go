// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package rational

import "github.com/zeebo/errs"

// Error classes returned by this package. Test membership with Has, e.g.
// rational.ErrOverflow.Has(err).
var (
	// ErrOverflow is a magnitude error: the exact result is not representable.
	ErrOverflow = errs.Class("numeric overflow")
	// ErrInvalid is a rejected input such as a zero denominator, a negative
	// integer exponent or the root of a negative value.
	ErrInvalid = errs.Class("invalid argument")
)
