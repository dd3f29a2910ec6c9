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

package json_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"cddl.dev/go/adapter/json"
	"cddl.dev/go/value"
)

func TestDecodeIntegerVsFloat(t *testing.T) {
	v, err := json.Decode([]byte(`42`))
	require.NoError(t, err)
	require.True(t, v.Equal(value.NewInteger(big.NewInt(42))))

	v, err = json.Decode([]byte(`42.5`))
	require.NoError(t, err)
	require.True(t, v.Equal(value.NewFloat(42.5)))
}

func TestDecodeObjectAndArray(t *testing.T) {
	v, err := json.Decode([]byte(`{"foo": [1, "x", null, true]}`))
	require.NoError(t, err)
	require.Equal(t, value.Map, v.Kind)
	require.Len(t, v.Map, 1)
	require.True(t, v.Map[0].Key.Equal(value.NewText("foo")))
	require.True(t, v.Map[0].Value.Equal(value.NewArray([]value.Value{
		value.NewInteger(big.NewInt(1)), value.NewText("x"), value.NewNull(), value.NewBool(true),
	})))
}

func TestDecodeMalformedReturnsDecodeError(t *testing.T) {
	_, err := json.Decode([]byte(`{not valid`))
	require.Error(t, err)
	var derr *json.DecodeError
	require.ErrorAs(t, err, &derr)
}
