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

package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cddl.dev/go/cddl/ast"
	"cddl.dev/go/cddl/errors"
)

func TestParseStringSimpleRules(t *testing.T) {
	testCases := []struct {
		name string
		in   string
	}{
		{"literal", "thing = 1"},
		{"prelude", "thing = tstr"},
		{"map", "thing = { foo: tstr }"},
		{"optional-map", "thing = { ? foo: tstr }"},
		{"choice", "thing = int / tstr"},
		{"array", "thing = [ a: int, b: tstr ]"},
		{"array-vec", "thing = [ * int ]"},
		{"range", "thing = 1..10"},
		{"nested-group", "outer = { a: inner }\ninner = { b: int }"},
		{"hex-bytes", `thing = h'deadbeef'`},
		{"comment", "thing = int ; a comment\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := ParseString(tc.in)
			require.NoError(t, err)
			require.NotEmpty(t, c.Rules)
		})
	}
}

func TestParseStringIdentWithDots(t *testing.T) {
	// spec §8: "min..max" must scan as one identifier, not a range.
	c, err := ParseString("min..max = 1")
	require.NoError(t, err)
	require.Len(t, c.Rules, 1)
	assert.Equal(t, "min..max", c.Rules[0].Name)
}

func TestParseStringUintBoundary(t *testing.T) {
	// spec §8: 0xFFFFFFFFFFFFFFFF succeeds; one more hex digit overflows.
	c, err := ParseString("thing = 0xFFFFFFFFFFFFFFFF")
	require.NoError(t, err)
	v := c.Rules[0].Type.Choices[0].Simple.Value
	require.Equal(t, ast.ValueUint, v.Kind)
	assert.Equal(t, uint64(0xFFFFFFFFFFFFFFFF), v.Uint)

	_, err = ParseString("thing = 0xFFFFFFFFFFFFFFFFF")
	require.Error(t, err)
	var perr *errors.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, errors.MalformedInteger, perr.Kind)
}

func TestParseStringTextEscapes(t *testing.T) {
	c, err := ParseString("thing = \"\\uD834\\uDD1E\"")
	require.NoError(t, err)
	v := c.Rules[0].Type.Choices[0].Simple.Value
	require.Equal(t, ast.ValueText, v.Kind)
	assert.Equal(t, "\U0001D11E", v.Text)
}

func TestParseStringRejectsTrailingGarbage(t *testing.T) {
	_, err := ParseString("thing = int ) extra")
	require.Error(t, err)
}

func TestParseSlicePreservesSemantics(t *testing.T) {
	src := "a = int\nb = tstr"
	slices, err := ParseSlice(src)
	require.NoError(t, err)
	require.Len(t, slices, 2)
	assert.Equal(t, "a", slices[0].Rule.Name)
	assert.Equal(t, "b", slices[1].Rule.Name)

	plain, err := ParseString(src)
	require.NoError(t, err)
	require.Len(t, plain.Rules, 2)
	assert.Equal(t, plain.Rules[0].Name, slices[0].Rule.Name)
	assert.Equal(t, plain.Rules[1].Name, slices[1].Rule.Name)
}

func TestParseGroupnameVsUnkeyedType(t *testing.T) {
	c, err := ParseString("outer = [ innergroup ]\ninnergroup = ( a: int )")
	require.NoError(t, err)
	arr := c.Rules[0].Type.Choices[0].Simple
	require.Equal(t, ast.Type2Array, arr.Kind)
	ent := arr.Array.Choices[0].Entries[0]
	require.Equal(t, ast.GrpEntGroupname, ent.Kind)
	assert.Equal(t, "innergroup", ent.Groupname)
}

func TestParseMemberKeyForms(t *testing.T) {
	c, err := ParseString(`thing = { a: int, "b": tstr, 1: bool }`)
	require.NoError(t, err)
	entries := c.Rules[0].Type.Choices[0].Simple.Map.Choices[0].Entries
	require.Len(t, entries, 3)
	assert.Equal(t, ast.MemberKeyBareword, entries[0].Key.Kind)
	assert.Equal(t, ast.MemberKeyValue, entries[1].Key.Kind)
	assert.Equal(t, ast.MemberKeyValue, entries[2].Key.Kind)
	assert.True(t, entries[0].Key.Cut)
}

func TestParseOccurrenceForms(t *testing.T) {
	c, err := ParseString("thing = [ ? a: int, * b: int, + c: int, 2*4 d: int ]")
	require.NoError(t, err)
	entries := c.Rules[0].Type.Choices[0].Simple.Array.Choices[0].Entries
	require.Len(t, entries, 4)
	assert.Equal(t, ast.OccurOptional, entries[0].Occur.Kind)
	assert.Equal(t, ast.OccurZeroOrMore, entries[1].Occur.Kind)
	assert.Equal(t, ast.OccurOneOrMore, entries[2].Occur.Kind)
	require.Equal(t, ast.OccurNumbered, entries[3].Occur.Kind)
	require.NotNil(t, entries[3].Occur.Lower)
	require.NotNil(t, entries[3].Occur.Upper)
	assert.Equal(t, uint64(2), *entries[3].Occur.Lower)
	assert.Equal(t, uint64(4), *entries[3].Occur.Upper)
}

func TestParseNegativeInteger(t *testing.T) {
	c, err := ParseString("thing = -5")
	require.NoError(t, err)
	v := c.Rules[0].Type.Choices[0].Simple.Value
	require.Equal(t, ast.ValueNint, v.Kind)
	assert.Equal(t, int64(-5), v.Nint)
}

func TestParseFloatLiteral(t *testing.T) {
	c, err := ParseString("thing = 1.5e2")
	require.NoError(t, err)
	v := c.Rules[0].Type.Choices[0].Simple.Value
	require.Equal(t, ast.ValueFloat, v.Kind)
	assert.InDelta(t, 150.0, v.Float, 0.0001)
}

func TestParseEmptyInputIsUnparseable(t *testing.T) {
	_, err := ParseString("")
	require.Error(t, err)
	var perr *errors.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, errors.Unparseable, perr.Kind)
}
