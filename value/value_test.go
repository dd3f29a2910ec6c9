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

package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueEqual(t *testing.T) {
	assert.True(t, NewInt64(1).Equal(NewUint64(1)))
	assert.False(t, NewInt64(1).Equal(NewInt64(2)))
	assert.True(t, NewText("abc").Equal(NewText("abc")))
	assert.False(t, NewText("abc").Equal(NewBytes([]byte("abc"))))

	m1 := NewMap([]Pair{{Key: NewText("foo"), Value: NewText("bar")}})
	m2 := NewMap([]Pair{{Key: NewText("foo"), Value: NewText("bar")}})
	assert.True(t, m1.Equal(m2))

	a1 := NewArray([]Value{NewInt64(1), NewText("x")})
	a2 := NewArray([]Value{NewInt64(1), NewText("x")})
	assert.True(t, a1.Equal(a2))
	assert.False(t, a1.Equal(NewArray([]Value{NewInt64(1)})))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "integer", Integer.String())
	assert.Equal(t, "map", Map.String())
}
