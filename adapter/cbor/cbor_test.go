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

package cbor_test

import (
	"testing"

	fxcbor "github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/require"

	"cddl.dev/go/adapter/cbor"
	"cddl.dev/go/value"
)

func TestDecodePreservesIntegerSignedness(t *testing.T) {
	data, err := fxcbor.Marshal(-5)
	require.NoError(t, err)
	v, err := cbor.Decode(data)
	require.NoError(t, err)
	require.True(t, v.Equal(value.NewInt64(-5)))
}

func TestDecodeDistinguishesTextFromBytes(t *testing.T) {
	data, err := fxcbor.Marshal("abc")
	require.NoError(t, err)
	v, err := cbor.Decode(data)
	require.NoError(t, err)
	require.True(t, v.Equal(value.NewText("abc")))

	data, err = fxcbor.Marshal([]byte("abc"))
	require.NoError(t, err)
	v, err = cbor.Decode(data)
	require.NoError(t, err)
	require.True(t, v.Equal(value.NewBytes([]byte("abc"))))
}

func TestDecodeArrayAndMap(t *testing.T) {
	data, err := fxcbor.Marshal([]interface{}{1, "x", true})
	require.NoError(t, err)
	v, err := cbor.Decode(data)
	require.NoError(t, err)
	require.True(t, v.Equal(value.NewArray([]value.Value{
		value.NewInt64(1), value.NewText("x"), value.NewBool(true),
	})))

	mdata, err := fxcbor.Marshal(map[string]interface{}{"foo": "bar"})
	require.NoError(t, err)
	mv, err := cbor.Decode(mdata)
	require.NoError(t, err)
	require.Equal(t, value.Map, mv.Kind)
	require.Len(t, mv.Map, 1)
	require.True(t, mv.Map[0].Key.Equal(value.NewText("foo")))
	require.True(t, mv.Map[0].Value.Equal(value.NewText("bar")))
}

func TestDecodeMalformedReturnsDecodeError(t *testing.T) {
	_, err := cbor.Decode([]byte{0xff, 0xff, 0xff})
	require.Error(t, err)
	var derr *cbor.DecodeError
	require.ErrorAs(t, err, &derr)
}
