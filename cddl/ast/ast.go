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

// Package ast defines the syntax tree produced by cddl/parser.
//
// The tree is transient: cddl/parser builds it from CDDL source text
// and internal/core/compile consumes it to build the Intermediate
// Validation Tree (IVT). Nothing outside those two packages should
// need to hold onto an ast.Cddl for long.
package ast

import "cddl.dev/go/cddl/token"

// Cddl is the root of a parsed CDDL document: an ordered sequence of
// rules. Order matters only in that the first rule is conventionally
// the entry point a caller validates against by default; the flattener
// does not otherwise care about order.
type Cddl struct {
	Rules []*Rule
}

// Rule is `name = type` or `name = grpent`.
type Rule struct {
	Name  string
	Pos   token.Pos
	Type  *Type   // set iff this is a type assignment
	Group *GrpEnt // set iff this is a group assignment
}

// Type is a non-empty ordered list of Type1 alternatives joined by `/`.
type Type struct {
	Choices []*Type1
}

// Type1Kind discriminates the three Type1 shapes.
type Type1Kind int

const (
	Type1Simple Type1Kind = iota
	Type1Range
	Type1Control
)

// Type1 is either a bare Type2, a range (`..`/`...`), or a control
// operator application (`.ident`).
type Type1 struct {
	Kind Type1Kind

	// Type1Simple
	Simple *Type2

	// Type1Range
	RangeStart     *Type2
	RangeEnd       *Type2
	RangeInclusive bool // true for "..", false for "..."

	// Type1Control
	ControlFirst  *Type2
	ControlOp     string
	ControlSecond *Type2
}

// Type2Kind discriminates the Type2 shapes.
type Type2Kind int

const (
	Type2Value Type2Kind = iota
	Type2Typename
	Type2Paren
	Type2Map
	Type2Array
	Type2Unwrap
)

// Type2 is the "atomic" level of a CDDL type expression.
type Type2 struct {
	Kind Type2Kind

	Value     *Value // Type2Value
	Typename  string // Type2Typename / Type2Unwrap
	Paren     *Type  // Type2Paren
	Map       *Group // Type2Map
	Array     *Group // Type2Array
}

// Group is a non-empty list of GrpChoice alternatives joined by `//`.
type Group struct {
	Choices []*GrpChoice
}

// GrpChoice is an ordered list of group entries.
type GrpChoice struct {
	Entries []*GrpEnt
}

// GrpEntKind discriminates the three GrpEnt value shapes.
type GrpEntKind int

const (
	GrpEntMember GrpEntKind = iota
	GrpEntGroupname
	GrpEntParen
)

// GrpEnt is one entry of a group: an optional occurrence indicator
// plus a member, a group-name reference, or a parenthesized group.
type GrpEnt struct {
	Occur *Occur // nil means "exactly once"
	Kind  GrpEntKind

	// GrpEntMember
	Key   *MemberKey // nil for an unkeyed (positional/array) entry
	Value *Type

	// GrpEntGroupname
	Groupname string

	// GrpEntParen
	Paren *Group
}

// MemberKeyKind discriminates the three MemberKey shapes.
type MemberKeyKind int

const (
	MemberKeyType1 MemberKeyKind = iota
	MemberKeyBareword
	MemberKeyValue
)

// MemberKey is the key part of a `key: type` or `key => type` group
// entry. Cut is true for `:` and bareword/value keys (always cut), and
// for `type1 ^ =>` (explicit cut); false for plain `type1 =>`.
type MemberKey struct {
	Kind MemberKeyKind
	Cut  bool

	Type1    *Type1 // MemberKeyType1
	Bareword string // MemberKeyBareword
	Value    *Value // MemberKeyValue
}

// OccurKind discriminates the occurrence forms.
type OccurKind int

const (
	OccurOptional OccurKind = iota // ?
	OccurOneOrMore                 // +
	OccurZeroOrMore                // *
	OccurNumbered                  // n*m
)

// Occur is a group entry's repetition indicator, as written in source
// (i.e. before the flattener resolves absent bounds to 0/unbounded).
type Occur struct {
	Kind  OccurKind
	Lower *uint64 // only meaningful for OccurNumbered; nil means absent
	Upper *uint64 // only meaningful for OccurNumbered; nil means absent
}

// ValueKind discriminates the literal value forms.
type ValueKind int

const (
	ValueUint ValueKind = iota
	ValueNint
	ValueFloat
	ValueText
	ValueBytes
)

// Value is a literal: a number, a text string, or a byte string.
type Value struct {
	Kind ValueKind

	Uint  uint64
	Nint  int64 // always <= 0
	Float float64
	Text  string
	Bytes []byte
}
