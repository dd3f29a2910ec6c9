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

// Package adt defines the Intermediate Validation Tree (IVT): the
// reduced, self-referential graph internal/core/compile builds from a
// cddl/ast tree, and the only structure internal/core/eval consumes.
//
// The shape follows cue/internal/adt/adt.go's tagged-interface design:
// a single Node interface with an unexported marker method, implemented
// by a small closed set of concrete node types, rather than one big
// struct with a discriminant field.
package adt

import "math"

// Unbounded is the occurrence upper bound meaning "no limit" (the
// IVT's analogue of usize::MAX in the original implementation).
const Unbounded uint64 = math.MaxUint64

// Node is any IVT node. All edges between nodes are owning except
// Rule's back-pointer to its referent, which is non-owning: a schema's
// Nodes form a graph the Schema alone keeps alive (see Schema in
// schema.go), so a reference cycle between two mutually recursive
// rules never leaks memory when the schema is collected.
type Node interface {
	// ivtNode is unexported so Node can only be implemented by the
	// types in this package.
	ivtNode()
}

// Occur is a repetition bound, already resolved from AST-level
// defaults (spec §4.2's occurrence-mapping table): Lower <= Upper,
// with Upper == Unbounded meaning no limit.
type Occur struct {
	Lower uint64
	Upper uint64
}

// Exactly is the implicit occurrence of a group entry with no
// occurrence indicator: (1, 1).
var Exactly = Occur{Lower: 1, Upper: 1}

// LiteralKind discriminates the scalar kinds a Literal node can hold.
type LiteralKind int

const (
	LiteralBool LiteralKind = iota
	LiteralInt
	LiteralText
	LiteralBytes
	LiteralFloat
)

// Literal is a leaf node matching one specific constant. Int is widened
// to a signed 128-bit magnitude (big.Int) per spec §3.2, since neither
// int64 nor uint64 alone can hold every value RFC 8610 integers admit.
// The flattener fills it only from the parser's uint64/int64 literals,
// which always fit; no separate range check is applied.
type Literal struct {
	Kind LiteralKind

	Bool  bool
	Int   Int128
	Text  string
	Bytes []byte
	Float float64
}

func (*Literal) ivtNode() {}

// PreludeKind enumerates the CDDL prelude's primitive types that the
// flattener recognizes (spec §4.1/§4.3 prelude category table).
type PreludeKind int

const (
	PreludeAny PreludeKind = iota
	PreludeBool
	PreludeInt
	PreludeUint
	PreludeNint
	PreludeTstr
	PreludeBstr
	PreludeFloat
	PreludeNull
)

// String names a PreludeKind the way it appears as a CDDL identifier,
// for error messages.
func (k PreludeKind) String() string {
	switch k {
	case PreludeAny:
		return "any"
	case PreludeBool:
		return "bool"
	case PreludeInt:
		return "int"
	case PreludeUint:
		return "uint"
	case PreludeNint:
		return "nint"
	case PreludeTstr:
		return "tstr"
	case PreludeBstr:
		return "bstr"
	case PreludeFloat:
		return "float"
	default:
		return "null"
	}
}

// PreludeType is a leaf node matching the category of values PreludeKind
// denotes.
type PreludeType struct {
	Kind PreludeKind
}

func (*PreludeType) ivtNode() {}

// Rule is a reference by name to another top-level rule. Ref is
// installed by internal/core/compile's reference-resolution pass
// (spec §4.2 "Pass 2"); it is nil only transiently, between a Rule
// node's construction and that pass running. A Rule whose Ref is still
// nil when the validator dereferences it indicates a broken invariant
// (an unresolved reference should have been a construction-time
// UnknownRule error), not a validation failure, so the validator panics
// rather than returning a ValidationError in that case.
type Rule struct {
	Name string
	Ref  Node // non-owning: does not keep the referent's schema alive
}

func (*Rule) ivtNode() {}

// Choice matches if any of Options matches (spec §4.3 core matcher).
// Evaluation order is Options' order; the validator's aggregate
// ChoiceExhausted error reports every alternative tried, in order.
type Choice struct {
	Options []Node
}

func (*Choice) ivtNode() {}

// KeyValue is one member of a Map or the positional entry of an
// ArrayRecord: a key node, a value node, and the occurrence both must
// jointly satisfy (spec §3.2).
type KeyValue struct {
	Key   Node
	Value Node
	Occur Occur
	// Cut records whether the AST marked this member's key with ":"
	// (barewords and value keys are always cut) or "^" (explicit cut
	// on a type1 key), per spec §4.3.1. The validator does not read it:
	// map matching and its errors are the same for cut and non-cut
	// keys, and ValidationError carries no cut flag.
	Cut bool
}

// Map matches a value-tree Map via the multiset-consumption algorithm
// in spec §4.3.1.
type Map struct {
	Members []KeyValue
}

func (*Map) ivtNode() {}

// ArrayRecord matches a value-tree Array positionally: the i-th
// KeyValue must consume between Occur.Lower and Occur.Upper consecutive
// elements starting at the cursor, matching Value (spec §4.3.2). Key is
// typically unused for positional arrays but is still populated from
// any member key the source wrote, so a mixed record/map-like array
// entry round-trips through the same KeyValue shape Map uses.
type ArrayRecord struct {
	Members []KeyValue
}

func (*ArrayRecord) ivtNode() {}

// ArrayVec matches a value-tree Array homogeneously: every element must
// match Element, and the element count must satisfy Occur (spec
// §4.3.2).
type ArrayVec struct {
	Element Node
	Occur   Occur
}

func (*ArrayVec) ivtNode() {}
