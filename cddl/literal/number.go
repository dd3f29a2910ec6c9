// Copyright 2024 CDDL Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package literal parses CDDL literal tokens (numbers, text strings,
// byte strings) into values, mirroring the numeric-conversion shape of
// cue/internal/compile/label.go and cue/internal/adt/context.go, which
// route every number through an apd.Decimal before converting it to
// the representation a caller actually needs.
package literal

import (
	"math"
	"math/big"

	"github.com/cockroachdb/apd/v2"
	"golang.org/x/xerrors"
)

// ErrMalformedInteger is wrapped by ParseUint/ParseUintBig when a digit
// run doesn't fit in the requested width or contains invalid digits.
var ErrMalformedInteger = xerrors.New("malformed integer")

// ErrMalformedFloat is wrapped by ParseFloat when a decimal string
// can't be represented as a float64.
var ErrMalformedFloat = xerrors.New("malformed float")

var maxUint64 = new(big.Int).SetUint64(math.MaxUint64)

// ParseUintBig converts a bare digit run (as produced by the lexer,
// without a "0x"/"0b" prefix) in the given base (10, 16, or 2) to its
// exact magnitude.
func ParseUintBig(slice string, base int) (*big.Int, error) {
	n := new(big.Int)
	if _, ok := n.SetString(slice, base); !ok || n.Sign() < 0 {
		return nil, xerrors.Errorf("%s: %w", slice, ErrMalformedInteger)
	}
	return n, nil
}

// ParseUint converts a digit run in the given base to a uint64,
// reporting ErrMalformedInteger (wrapped) on overflow or invalid
// digits. This is the RFC 8610 "uint" token: a single "0", a
// non-zero decimal run, a "0x" hex run, or a "0b" binary run.
func ParseUint(slice string, base int) (uint64, error) {
	n, err := ParseUintBig(slice, base)
	if err != nil {
		return 0, err
	}
	if n.Cmp(maxUint64) > 0 {
		return 0, xerrors.Errorf("%s: %w", slice, ErrMalformedInteger)
	}
	return n.Uint64(), nil
}

// ParseFloat converts a decimal string (already containing a '.'
// fraction and/or an 'e' exponent) to a float64, going through
// apd.Decimal the way cue/internal/compile/compile.go's literal
// numeric path does, so that malformed exponents/fractions are caught
// before the float64 conversion rather than silently truncated.
func ParseFloat(slice string) (float64, error) {
	var d apd.Decimal
	_, _, err := d.SetString(slice)
	if err != nil {
		return 0, xerrors.Errorf("%s: %w", slice, ErrMalformedFloat)
	}
	f, err := d.Float64()
	if err != nil || math.IsInf(f, 0) {
		return 0, xerrors.Errorf("%s: %w", slice, ErrMalformedFloat)
	}
	return f, nil
}

// Int128Min and Int128Max bound the signed-128-bit range the IVT's
// Literal.Int uses: [-2^127, 2^127-1].
var (
	Int128Min = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
	Int128Max = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
)

// FitsInt128 reports whether n is within the signed-128-bit range.
func FitsInt128(n *big.Int) bool {
	return n.Cmp(Int128Min) >= 0 && n.Cmp(Int128Max) <= 0
}
