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

package compile_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"cddl.dev/go/internal/core/adt"
	"cddl.dev/go/internal/core/compile"
)

// bigIntComparer lets cmp.Diff see inside adt.Int128's unexported
// *big.Int field, the same way cue's own cmp-based tests special-case
// comparers for opaque numeric types.
var bigIntComparer = cmp.Comparer(func(a, b adt.Int128) bool {
	return a.BigInt().Cmp(b.BigInt()) == 0
})

func TestFlattenLiteralIntShape(t *testing.T) {
	schema, err := compile.FlattenFromString(`thing = 1`)
	require.NoError(t, err)

	want := &adt.Literal{Kind: adt.LiteralInt, Int: adt.NewInt128FromInt64(1)}
	got := schema.Rules["thing"]
	if diff := cmp.Diff(want, got, bigIntComparer); diff != "" {
		t.Errorf("flattened node mismatch (-want +got):\n%s", diff)
	}
}

func TestFlattenMapShape(t *testing.T) {
	schema, err := compile.FlattenFromString(`thing = { foo: tstr }`)
	require.NoError(t, err)

	want := &adt.Map{
		Members: []adt.KeyValue{
			{
				Key:   &adt.Literal{Kind: adt.LiteralText, Text: "foo"},
				Value: &adt.PreludeType{Kind: adt.PreludeTstr},
				Occur: adt.Exactly,
				Cut:   true,
			},
		},
	}
	got := schema.Rules["thing"]
	if diff := cmp.Diff(want, got, bigIntComparer); diff != "" {
		t.Errorf("flattened node mismatch (-want +got):\n%s", diff)
	}
}

func TestFlattenRuleRefResolved(t *testing.T) {
	schema, err := compile.FlattenFromString("foo = \"bar\"\nthing = { foo => tstr }")
	require.NoError(t, err)

	mapNode, ok := schema.Rules["thing"].(*adt.Map)
	require.True(t, ok)
	require.Len(t, mapNode.Members, 1)

	ruleNode, ok := mapNode.Members[0].Key.(*adt.Rule)
	require.True(t, ok)
	require.Equal(t, "foo", ruleNode.Name)
	require.NotNil(t, ruleNode.Ref, "Pass 2 must back-patch the Ref before Flatten returns")

	lit, ok := ruleNode.Ref.(*adt.Literal)
	require.True(t, ok)
	require.Equal(t, "bar", lit.Text)
}

func TestFlattenUnknownRuleFails(t *testing.T) {
	_, err := compile.FlattenFromString(`thing = missing`)
	require.Error(t, err)
}
