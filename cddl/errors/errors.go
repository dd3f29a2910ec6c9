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

// Package errors holds the structured error types returned across the
// parse -> flatten -> validate pipeline, in the spirit of cue/errors.go
// and internal/core/adt/errors.go: small concrete error types plus a
// List that can accumulate more than one.
package errors

import (
	"fmt"
	"strings"

	"golang.org/x/xerrors"
)

// ParseErrorKind is the taxonomy of CDDL parse failures (spec §4.1/§7).
type ParseErrorKind int

const (
	MalformedInteger ParseErrorKind = iota
	MalformedFloat
	MalformedHex
	MalformedText
	Unparseable
)

func (k ParseErrorKind) String() string {
	switch k {
	case MalformedInteger:
		return "MalformedInteger"
	case MalformedFloat:
		return "MalformedFloat"
	case MalformedHex:
		return "MalformedHex"
	case MalformedText:
		return "MalformedText"
	default:
		return "Unparseable"
	}
}

// ParseError is returned by cddl/parser. Ctx is a short excerpt of the
// input near the failure, matching spec §4.1's error envelope.
type ParseError struct {
	Kind ParseErrorKind
	Ctx  string
	err  error // wrapped cause, if any (for xerrors.Is/As)
}

func NewParseError(kind ParseErrorKind, ctx string) *ParseError {
	return &ParseError{Kind: kind, Ctx: ctx}
}

// WrapParseError builds a ParseError of the given kind around a
// lower-level literal-parsing error (see cddl/literal), preserving the
// original error for xerrors.Is/As unwrapping.
func WrapParseError(kind ParseErrorKind, ctx string, cause error) *ParseError {
	return &ParseError{Kind: kind, Ctx: ctx, err: cause}
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s(%s)", e.Kind, e.Ctx)
}

func (e *ParseError) Unwrap() error { return e.err }

// FlattenErrorKind is the taxonomy of schema-construction failures
// (spec §7 "Flatten errors").
type FlattenErrorKind int

const (
	UnknownRule FlattenErrorKind = iota
	UnsupportedConstruct
	EmptyRule
)

func (k FlattenErrorKind) String() string {
	switch k {
	case UnknownRule:
		return "UnknownRule"
	case UnsupportedConstruct:
		return "UnsupportedConstruct"
	default:
		return "EmptyRule"
	}
}

// FlattenError reports a fatal problem building a schema from an AST.
type FlattenError struct {
	Kind FlattenErrorKind
	Name string // rule or construct name
}

func (e *FlattenError) Error() string {
	return fmt.Sprintf("%s(%s)", e.Kind, e.Name)
}

// ValidationErrorKind is the taxonomy of match failures (spec §7
// "Validation errors").
type ValidationErrorKind int

const (
	TypeMismatch ValidationErrorKind = iota
	ChoiceExhausted
	MapMemberTooFew
	MapMemberTooMany
	UnexpectedMapMember
	ArrayTooShort
	ArrayTooLong
	ArrayElementMismatch
	MissingRule
)

func (k ValidationErrorKind) String() string {
	switch k {
	case TypeMismatch:
		return "TypeMismatch"
	case ChoiceExhausted:
		return "ChoiceExhausted"
	case MapMemberTooFew:
		return "MapMemberTooFew"
	case MapMemberTooMany:
		return "MapMemberTooMany"
	case UnexpectedMapMember:
		return "UnexpectedMapMember"
	case ArrayTooShort:
		return "ArrayTooShort"
	case ArrayTooLong:
		return "ArrayTooLong"
	case ArrayElementMismatch:
		return "ArrayElementMismatch"
	default:
		return "MissingRule"
	}
}

// ValidationError reports why a value failed to match an IVT node.
// Expected/Actual are free-form descriptions (e.g. "int", "Text(\"x\")")
// rather than typed values, since the validator has no use for
// re-inspecting them once a match has failed.
type ValidationError struct {
	Kind ValidationErrorKind

	Key      string // MapMemberTooFew/TooMany/UnexpectedMapMember
	Index    int    // ArrayElementMismatch
	Expected string
	Actual   string
	Name     string // MissingRule

	// Tried holds the per-alternative errors for ChoiceExhausted, and
	// Inner holds a single wrapped cause for ArrayElementMismatch.
	Tried []*ValidationError
	Inner *ValidationError
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case TypeMismatch:
		return fmt.Sprintf("TypeMismatch{expected: %s, actual: %s}", e.Expected, e.Actual)
	case ChoiceExhausted:
		parts := make([]string, len(e.Tried))
		for i, t := range e.Tried {
			parts[i] = t.Error()
		}
		return fmt.Sprintf("ChoiceExhausted{tried: [%s]}", strings.Join(parts, "; "))
	case MapMemberTooFew:
		return fmt.Sprintf("MapMemberTooFew(%s)", e.Key)
	case MapMemberTooMany:
		return fmt.Sprintf("MapMemberTooMany(%s)", e.Key)
	case UnexpectedMapMember:
		return fmt.Sprintf("UnexpectedMapMember(%s)", e.Key)
	case ArrayTooShort:
		return "ArrayTooShort"
	case ArrayTooLong:
		return "ArrayTooLong"
	case ArrayElementMismatch:
		return fmt.Sprintf("ArrayElementMismatch(%d, %s)", e.Index, e.Inner.Error())
	default:
		return fmt.Sprintf("MissingRule(%s)", e.Name)
	}
}

// List accumulates multiple errors, e.g. every unresolved rule
// reference found while back-patching a schema, matching the
// multi-error style of internal/core/adt/errors.go's Bottom.
type List []error

func (l List) Error() string {
	parts := make([]string, len(l))
	for i, e := range l {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "; ")
}

// Append adds err to the list (flattening any nested List), matching
// the accumulation style cue/errors uses for multi-error reporting.
func Append(l List, err error) List {
	if err == nil {
		return l
	}
	var nested List
	if xerrors.As(err, &nested) {
		return append(l, nested...)
	}
	return append(l, err)
}
