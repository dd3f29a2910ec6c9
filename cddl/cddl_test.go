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

package cddl_test

import (
	"testing"

	fxcbor "github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/require"

	"cddl.dev/go/cddl"
	"cddl.dev/go/value"
)

func TestValidateCBORBytesFullStack(t *testing.T) {
	data, err := fxcbor.Marshal(map[string]interface{}{"foo": "bar"})
	require.NoError(t, err)

	require.NoError(t, cddl.ValidateCBORBytes("thing", `thing = { foo: tstr }`, data))

	badData, err := fxcbor.Marshal(map[string]interface{}{"foo": 1})
	require.NoError(t, err)
	err = cddl.ValidateCBORBytes("thing", `thing = { foo: tstr }`, badData)
	require.Error(t, err)
}

func TestParseFlattenValidateSeparately(t *testing.T) {
	ast, err := cddl.ParseCDDL(`thing = tstr`)
	require.NoError(t, err)

	schema, err := cddl.Flatten(ast)
	require.NoError(t, err)

	require.NoError(t, cddl.Validate(schema, "thing", value.NewText("abc")))
}
