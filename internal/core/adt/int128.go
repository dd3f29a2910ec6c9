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

package adt

import "math/big"

// Int128 is a signed 128-bit integer, the IVT's widened representation
// of every CDDL integer literal (spec §3.2). Go has no native int128;
// big.Int is the only library in the pack able to hold the full
// [-2^127, 2^127-1] range exactly, so Int128 is a thin value wrapper
// around it rather than a hand-rolled two-word struct.
type Int128 struct {
	v *big.Int
}

// NewInt128FromUint64 widens a non-negative 64-bit magnitude.
func NewInt128FromUint64(u uint64) Int128 {
	return Int128{v: new(big.Int).SetUint64(u)}
}

// NewInt128FromInt64 widens a 64-bit signed value.
func NewInt128FromInt64(n int64) Int128 {
	return Int128{v: big.NewInt(n)}
}

// NewInt128FromBigInt adopts n directly (the caller must not mutate n
// afterwards).
func NewInt128FromBigInt(n *big.Int) Int128 {
	return Int128{v: n}
}

// BigInt returns the exact magnitude as a *big.Int. The caller must
// not mutate the result.
func (i Int128) BigInt() *big.Int {
	if i.v == nil {
		return new(big.Int)
	}
	return i.v
}

// Equal reports whether i and o denote the same integer.
func (i Int128) Equal(o Int128) bool {
	return i.BigInt().Cmp(o.BigInt()) == 0
}

// Sign returns -1, 0, or 1 per the integer's sign.
func (i Int128) Sign() int {
	return i.BigInt().Sign()
}

// String renders the integer in base 10.
func (i Int128) String() string {
	return i.BigInt().String()
}
