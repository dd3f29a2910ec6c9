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

// Package eval implements the validator (spec §4.3): a recursive
// matcher that walks an internal/core/adt.Schema against a
// value.Value, producing a cddl/errors.ValidationError on mismatch.
//
// internal/core/eval's Engine is a small facade wrapping a much
// larger unification evaluator (arcs, closedness, disjunction
// backtracking) that has no analogue here: CDDL validation is a
// one-pass recursive match, not a fixpoint computation over a mutable
// value graph. What carries over from the teacher is the shape, not
// the machinery: a small top-level entry point (Validate, mirroring
// Engine's role) delegating to a recursive matcher, and
// disjunct.go's try-every-alternative-and-collect-errors pattern,
// reapplied here to Choice evaluation.
package eval

import (
	"fmt"

	"cddl.dev/go/cddl/errors"
	"cddl.dev/go/internal/core/adt"
	"cddl.dev/go/value"
)

// Validate is the validator's entry point (spec §4.3 "Entry"): look up
// ruleName in schema and match v against it.
func Validate(schema *adt.Schema, ruleName string, v value.Value) error {
	node := schema.Lookup(ruleName)
	if node == nil {
		return &errors.ValidationError{Kind: errors.MissingRule, Name: ruleName}
	}
	return match(node, v)
}

// match is the core matcher (spec §4.3's table). It never panics on
// malformed input; a panic here indicates a broken invariant (e.g. an
// un-upgraded Rule.Ref), which is a library bug, not a validation
// failure (spec §7 propagation policy).
func match(n adt.Node, v value.Value) error {
	switch t := n.(type) {
	case *adt.Literal:
		return matchLiteral(t, v)
	case *adt.PreludeType:
		return matchPrelude(t, v)
	case *adt.Rule:
		if t.Ref == nil {
			panic(fmt.Sprintf("cddl: unresolved rule reference %q reached the validator", t.Name))
		}
		return match(t.Ref, v)
	case *adt.Choice:
		return matchChoice(t, v)
	case *adt.Map:
		return matchMap(t, v)
	case *adt.ArrayRecord:
		return matchArrayRecord(t, v)
	case *adt.ArrayVec:
		return matchArrayVec(t, v)
	default:
		panic(fmt.Sprintf("cddl: unhandled IVT node type %T", n))
	}
}

func matchLiteral(lit *adt.Literal, v value.Value) error {
	ok := false
	switch lit.Kind {
	case adt.LiteralBool:
		ok = v.Kind == value.Bool && v.Bool == lit.Bool
	case adt.LiteralInt:
		ok = v.Kind == value.Integer && v.Integer.Cmp(lit.Int.BigInt()) == 0
	case adt.LiteralText:
		ok = v.Kind == value.Text && v.Text == lit.Text
	case adt.LiteralBytes:
		ok = v.Kind == value.Bytes && bytesEqual(v.Bytes, lit.Bytes)
	case adt.LiteralFloat:
		ok = v.Kind == value.Float && v.Float == lit.Float
	}
	if ok {
		return nil
	}
	return &errors.ValidationError{
		Kind:     errors.TypeMismatch,
		Expected: literalDescription(lit),
		Actual:   valueDescription(v),
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// matchPrelude implements the prelude category table (spec §4.3): int
// does not widen to accept integral floats (DESIGN.md Open Question
// 3), and float accepts only Float values, matching the spec's stated
// default.
func matchPrelude(p *adt.PreludeType, v value.Value) error {
	ok := false
	switch p.Kind {
	case adt.PreludeAny:
		ok = true
	case adt.PreludeBool:
		ok = v.Kind == value.Bool
	case adt.PreludeInt:
		ok = v.Kind == value.Integer
	case adt.PreludeUint:
		ok = v.Kind == value.Integer && v.Integer.Sign() >= 0
	case adt.PreludeNint:
		ok = v.Kind == value.Integer && v.Integer.Sign() < 0
	case adt.PreludeTstr:
		ok = v.Kind == value.Text
	case adt.PreludeBstr:
		ok = v.Kind == value.Bytes
	case adt.PreludeFloat:
		ok = v.Kind == value.Float
	case adt.PreludeNull:
		ok = v.Kind == value.Null
	}
	if ok {
		return nil
	}
	return &errors.ValidationError{
		Kind:     errors.TypeMismatch,
		Expected: p.Kind.String(),
		Actual:   valueDescription(v),
	}
}

// matchChoice tries every option in source order; spec §4.3/§8: success
// iff at least one matches, and the aggregate error on total failure
// reports every alternative tried, in order (internal/core/eval's
// disjunct.go collects per-alternative errors the same way before
// reporting a disjunction failure).
func matchChoice(c *adt.Choice, v value.Value) error {
	var tried []*errors.ValidationError
	for _, opt := range c.Options {
		err := match(opt, v)
		if err == nil {
			return nil
		}
		tried = append(tried, asValidationError(err))
	}
	return &errors.ValidationError{Kind: errors.ChoiceExhausted, Tried: tried}
}

func asValidationError(err error) *errors.ValidationError {
	if verr, ok := err.(*errors.ValidationError); ok {
		return verr
	}
	return &errors.ValidationError{Kind: errors.TypeMismatch, Expected: "?", Actual: err.Error()}
}

func literalDescription(lit *adt.Literal) string {
	switch lit.Kind {
	case adt.LiteralBool:
		return fmt.Sprintf("Bool(%v)", lit.Bool)
	case adt.LiteralInt:
		return fmt.Sprintf("Int(%s)", lit.Int.String())
	case adt.LiteralText:
		return fmt.Sprintf("Text(%q)", lit.Text)
	case adt.LiteralBytes:
		return fmt.Sprintf("Bytes(%x)", lit.Bytes)
	default: // adt.LiteralFloat
		return fmt.Sprintf("Float(%v)", lit.Float)
	}
}

func valueDescription(v value.Value) string {
	switch v.Kind {
	case value.Null:
		return "Null"
	case value.Bool:
		return fmt.Sprintf("Bool(%v)", v.Bool)
	case value.Integer:
		return fmt.Sprintf("Integer(%s)", v.Integer.String())
	case value.Float:
		return fmt.Sprintf("Float(%v)", v.Float)
	case value.Text:
		return fmt.Sprintf("Text(%q)", v.Text)
	case value.Bytes:
		return fmt.Sprintf("Bytes(%x)", v.Bytes)
	case value.Array:
		return fmt.Sprintf("Array(len=%d)", len(v.Array))
	default: // value.Map
		return fmt.Sprintf("Map(len=%d)", len(v.Map))
	}
}
