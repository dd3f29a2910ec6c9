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

package eval_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"cddl.dev/go/cddl/errors"
	"cddl.dev/go/internal/core/adt"
	"cddl.dev/go/internal/core/compile"
	"cddl.dev/go/internal/core/eval"
	"cddl.dev/go/value"
)

func mustFlatten(t *testing.T, src string) *adt.Schema {
	t.Helper()
	schema, err := compile.FlattenFromString(src)
	require.NoError(t, err)
	return schema
}

func TestSeedScenario1LiteralInt(t *testing.T) {
	schema := mustFlatten(t, `thing = 1`)
	require.NoError(t, eval.Validate(schema, "thing", value.NewInt64(1)))

	err := eval.Validate(schema, "thing", value.NewInt64(2))
	require.Error(t, err)
	var verr *errors.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, errors.TypeMismatch, verr.Kind)
}

func TestSeedScenario2Tstr(t *testing.T) {
	schema := mustFlatten(t, `thing = tstr`)
	require.NoError(t, eval.Validate(schema, "thing", value.NewText("abc")))

	err := eval.Validate(schema, "thing", value.NewBytes([]byte{0x61}))
	require.Error(t, err)
	var verr *errors.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, errors.TypeMismatch, verr.Kind)
}

func TestSeedScenario3MapMember(t *testing.T) {
	schema := mustFlatten(t, `thing = { foo: tstr }`)
	ok := value.NewMap([]value.Pair{{Key: value.NewText("foo"), Value: value.NewText("bar")}})
	require.NoError(t, eval.Validate(schema, "thing", ok))

	bad := value.NewMap([]value.Pair{{Key: value.NewText("foo"), Value: value.NewInt64(1)}})
	err := eval.Validate(schema, "thing", bad)
	require.Error(t, err)
	var verr *errors.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, errors.MapMemberTooFew, verr.Kind)
	require.Equal(t, "foo", verr.Key)
}

func TestSeedScenario4OptionalMapMember(t *testing.T) {
	schema := mustFlatten(t, `thing = { ? foo: tstr }`)
	require.NoError(t, eval.Validate(schema, "thing", value.NewMap(nil)))

	one := value.NewMap([]value.Pair{{Key: value.NewText("foo"), Value: value.NewText("x")}})
	require.NoError(t, eval.Validate(schema, "thing", one))

	two := value.NewMap([]value.Pair{
		{Key: value.NewText("foo"), Value: value.NewText("x")},
		{Key: value.NewText("foo"), Value: value.NewText("y")},
	})
	err := eval.Validate(schema, "thing", two)
	require.Error(t, err)
	var verr *errors.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, errors.MapMemberTooMany, verr.Kind)
	require.Equal(t, "foo", verr.Key)
}

func TestSeedScenario5RuleReferenceAsKey(t *testing.T) {
	schema := mustFlatten(t, "foo = \"bar\"\nthing = { foo => tstr }")
	ok := value.NewMap([]value.Pair{{Key: value.NewText("bar"), Value: value.NewText("x")}})
	require.NoError(t, eval.Validate(schema, "thing", ok))
}

func TestChoiceExhaustedReportsEveryAlternative(t *testing.T) {
	schema := mustFlatten(t, `thing = 1 / 2 / tstr`)
	require.NoError(t, eval.Validate(schema, "thing", value.NewInt64(1)))
	require.NoError(t, eval.Validate(schema, "thing", value.NewInt64(2)))
	require.NoError(t, eval.Validate(schema, "thing", value.NewText("x")))

	err := eval.Validate(schema, "thing", value.NewBool(true))
	require.Error(t, err)
	var verr *errors.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, errors.ChoiceExhausted, verr.Kind)
	require.Len(t, verr.Tried, 3)
}

func TestMissingRule(t *testing.T) {
	schema := mustFlatten(t, `thing = tstr`)
	err := eval.Validate(schema, "nope", value.NewText("x"))
	require.Error(t, err)
	var verr *errors.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, errors.MissingRule, verr.Kind)
	require.Equal(t, "nope", verr.Name)
}

func TestArrayVecHomogeneous(t *testing.T) {
	schema := mustFlatten(t, `thing = [* tstr]`)
	require.NoError(t, eval.Validate(schema, "thing", value.NewArray(nil)))
	require.NoError(t, eval.Validate(schema, "thing", value.NewArray([]value.Value{
		value.NewText("a"), value.NewText("b"),
	})))

	err := eval.Validate(schema, "thing", value.NewArray([]value.Value{value.NewInt64(1)}))
	require.Error(t, err)
	var verr *errors.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, errors.ArrayElementMismatch, verr.Kind)
}

func TestArrayRecordPositional(t *testing.T) {
	schema := mustFlatten(t, `thing = [tstr, int]`)
	require.NoError(t, eval.Validate(schema, "thing", value.NewArray([]value.Value{
		value.NewText("a"), value.NewInt64(1),
	})))

	short := value.NewArray([]value.Value{value.NewText("a")})
	err := eval.Validate(schema, "thing", short)
	require.Error(t, err)
	var verr *errors.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, errors.ArrayTooShort, verr.Kind)

	long := value.NewArray([]value.Value{value.NewText("a"), value.NewInt64(1), value.NewInt64(2)})
	err = eval.Validate(schema, "thing", long)
	require.Error(t, err)
	require.ErrorAs(t, err, &verr)
	require.Equal(t, errors.ArrayTooLong, verr.Kind)
}

func TestIntDoesNotWidenFromFloat(t *testing.T) {
	schema := mustFlatten(t, `thing = int`)
	err := eval.Validate(schema, "thing", value.NewFloat(1.0))
	require.Error(t, err)
	var verr *errors.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, errors.TypeMismatch, verr.Kind)
}
