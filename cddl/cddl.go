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

// Package cddl is the public facade (§6): a thin veneer over
// cddl/parser, internal/core/compile, and internal/core/eval, the same
// relationship cue/instance.go and cue/build.go have to
// cuelang.org/go/internal/core/*. Callers needing only parse/flatten/
// validate should never need to import the internal packages directly.
package cddl

import (
	"cddl.dev/go/adapter/cbor"
	"cddl.dev/go/cddl/ast"
	"cddl.dev/go/cddl/parser"
	"cddl.dev/go/internal/core/adt"
	"cddl.dev/go/internal/core/compile"
	"cddl.dev/go/internal/core/eval"
	"cddl.dev/go/value"
)

// Schema is the constructed, immutable intermediate validation tree a
// caller validates values against. It is safe to share across
// goroutines for concurrent read-only validation (spec §5).
type Schema = adt.Schema

// RuleSlice pairs a parsed Rule with the source substring it was
// parsed from (spec §6's slice_parse_cddl).
type RuleSlice = parser.RuleSlice

// ParseCDDL parses CDDL source text into an AST.
func ParseCDDL(text string) (*ast.Cddl, error) {
	return parser.ParseString(text)
}

// SliceParseCDDL parses text the same way ParseCDDL does, additionally
// returning each rule's source substring.
func SliceParseCDDL(text string) ([]RuleSlice, error) {
	return parser.ParseSlice(text)
}

// Flatten compiles a parsed AST into a Schema.
func Flatten(c *ast.Cddl) (*Schema, error) {
	return compile.Flatten(c)
}

// FlattenFromString parses and flattens in one step.
func FlattenFromString(text string) (*Schema, error) {
	return compile.FlattenFromString(text)
}

// Validate checks v against ruleName in schema.
func Validate(schema *Schema, ruleName string, v value.Value) error {
	return eval.Validate(schema, ruleName, v)
}

// ValidateCBOR decodes cborBytes and validates the result against
// ruleName in schema.
func ValidateCBOR(schema *Schema, ruleName string, cborBytes []byte) error {
	v, err := cbor.Decode(cborBytes)
	if err != nil {
		return err
	}
	return eval.Validate(schema, ruleName, v)
}

// ValidateCBORBytes is the full-stack convenience entry point: parse +
// flatten cddlText, decode cborBytes, and validate in one call.
func ValidateCBORBytes(ruleName, cddlText string, cborBytes []byte) error {
	schema, err := compile.FlattenFromString(cddlText)
	if err != nil {
		return err
	}
	return ValidateCBOR(schema, ruleName, cborBytes)
}
