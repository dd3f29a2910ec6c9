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

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInt128Equal(t *testing.T) {
	a := NewInt128FromUint64(18446744073709551615)
	b := NewInt128FromBigInt(new(big.Int).SetUint64(18446744073709551615))
	assert.True(t, a.Equal(b))

	c := NewInt128FromInt64(-5)
	assert.False(t, a.Equal(c))
	assert.Equal(t, -1, c.Sign())
	assert.Equal(t, "-5", c.String())
}

func TestOccurUnbounded(t *testing.T) {
	o := Occur{Lower: 0, Upper: Unbounded}
	assert.Equal(t, uint64(0), o.Lower)
	assert.Equal(t, Unbounded, o.Upper)
}
