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

package eval

import (
	"cddl.dev/go/cddl/errors"
	"cddl.dev/go/internal/core/adt"
	"cddl.dev/go/value"
)

// matchMap implements the multiset-consumption algorithm (spec §4.3.1):
// each KeyValue, in order, claims as many still-unclaimed (key,value)
// pairs as match it; the bound checks apply to that count, and
// anything left unclaimed once every KeyValue has run is reported.
func matchMap(m *adt.Map, v value.Value) error {
	if v.Kind != value.Map {
		return &errors.ValidationError{Kind: errors.TypeMismatch, Expected: "map", Actual: valueDescription(v)}
	}
	remaining := make([]bool, len(v.Map))
	for i := range remaining {
		remaining[i] = true
	}
	for _, kv := range m.Members {
		var matchedIdx []int
		for i, pair := range v.Map {
			if !remaining[i] {
				continue
			}
			if match(kv.Key, pair.Key) != nil {
				continue
			}
			if match(kv.Value, pair.Value) != nil {
				continue
			}
			matchedIdx = append(matchedIdx, i)
		}
		c := uint64(len(matchedIdx))
		if c < kv.Occur.Lower {
			return &errors.ValidationError{Kind: errors.MapMemberTooFew, Key: keyDescription(kv.Key)}
		}
		if c > kv.Occur.Upper {
			return &errors.ValidationError{Kind: errors.MapMemberTooMany, Key: keyDescription(kv.Key)}
		}
		for _, i := range matchedIdx {
			remaining[i] = false
		}
	}
	for i, left := range remaining {
		if left {
			return &errors.ValidationError{Kind: errors.UnexpectedMapMember, Key: valueDescription(v.Map[i].Key)}
		}
	}
	return nil
}

// keyDescription names a KeyValue's key node for map-error messages:
// a text literal renders as the bare key text (as a bareword key is
// written), other literals as in TypeMismatch messages, prelude types
// as their CDDL name and rule references as the rule name; anything
// else (a nested choice or structure) falls back to a generic label.
func keyDescription(n adt.Node) string {
	switch t := n.(type) {
	case *adt.Literal:
		if t.Kind == adt.LiteralText {
			return t.Text
		}
		return literalDescription(t)
	case *adt.PreludeType:
		return t.Kind.String()
	case *adt.Rule:
		return t.Name
	default:
		return "<group>"
	}
}

// matchArrayRecord implements positional matching (spec §4.3.2): the
// i-th KeyValue consumes between Occur.Lower and Occur.Upper consecutive
// elements off the cursor. Matching is greedy (no backtracking across
// KeyValues), which is sufficient for the non-ambiguous record shapes
// the flattener produces.
func matchArrayRecord(a *adt.ArrayRecord, v value.Value) error {
	if v.Kind != value.Array {
		return &errors.ValidationError{Kind: errors.TypeMismatch, Expected: "array", Actual: valueDescription(v)}
	}
	cursor := 0
	for _, kv := range a.Members {
		consumed := uint64(0)
		for cursor < len(v.Array) && consumed < kv.Occur.Upper {
			if match(kv.Value, v.Array[cursor]) != nil {
				break
			}
			cursor++
			consumed++
		}
		if consumed < kv.Occur.Lower {
			if cursor >= len(v.Array) {
				return &errors.ValidationError{Kind: errors.ArrayTooShort}
			}
			return &errors.ValidationError{
				Kind:  errors.ArrayElementMismatch,
				Index: cursor,
				Inner: asValidationError(match(kv.Value, v.Array[cursor])),
			}
		}
	}
	if cursor < len(v.Array) {
		return &errors.ValidationError{Kind: errors.ArrayTooLong}
	}
	return nil
}

// matchArrayVec implements homogeneous array matching (spec §4.3.2):
// every element matches Element, and the total count satisfies Occur.
func matchArrayVec(a *adt.ArrayVec, v value.Value) error {
	if v.Kind != value.Array {
		return &errors.ValidationError{Kind: errors.TypeMismatch, Expected: "array", Actual: valueDescription(v)}
	}
	n := uint64(len(v.Array))
	if n < a.Occur.Lower {
		return &errors.ValidationError{Kind: errors.ArrayTooShort}
	}
	if n > a.Occur.Upper {
		return &errors.ValidationError{Kind: errors.ArrayTooLong}
	}
	for i, elem := range v.Array {
		if err := match(a.Element, elem); err != nil {
			return &errors.ValidationError{Kind: errors.ArrayElementMismatch, Index: i, Inner: asValidationError(err)}
		}
	}
	return nil
}
