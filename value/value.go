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

// Package value defines the generic, format-agnostic value tree (spec
// §3.3) that internal/core/eval validates against a schema. Format
// adapters (adapter/cbor, adapter/json) are the only code that should
// construct Values from serialized bytes; everything downstream only
// reads them.
package value

import "math/big"

// Kind discriminates the tagged union a Value holds. Unlike
// internal/core/adt.Node (an evolving family of IVT node shapes, best
// modeled as an interface), the value tree's variant set is fixed by
// RFC 8610's data model and never grows, so one discriminated struct
// is the better fit here.
type Kind int

const (
	Null Kind = iota
	Bool
	Integer
	Float
	Text
	Bytes
	Array
	Map
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Integer:
		return "integer"
	case Float:
		return "float"
	case Text:
		return "text"
	case Bytes:
		return "bytes"
	case Array:
		return "array"
	default:
		return "map"
	}
}

// Pair is one (key, value) entry of a Map. Order is preserved from the
// source document but matching never depends on it, and duplicate keys
// are permitted at this level (spec §3.3); whether a duplicate causes
// a validation failure is entirely the validator's concern.
type Pair struct {
	Key   Value
	Value Value
}

// Value is one node of the generic value tree: exactly one of the
// fields below is meaningful, selected by Kind.
type Value struct {
	Kind Kind

	Bool    bool
	Integer *big.Int // widened the same way adt.Int128 is; see NewInt64/NewUint64
	Float   float64
	Text    string
	Bytes   []byte
	Array   []Value
	Map     []Pair
}

// NewNull returns the Null value.
func NewNull() Value { return Value{Kind: Null} }

// NewBool returns a Bool value.
func NewBool(b bool) Value { return Value{Kind: Bool, Bool: b} }

// NewInt64 returns an Integer value from a signed 64-bit magnitude.
func NewInt64(n int64) Value { return Value{Kind: Integer, Integer: big.NewInt(n)} }

// NewUint64 returns an Integer value from an unsigned 64-bit
// magnitude (used by CBOR decoding, which preserves the encoded
// integer's signedness exactly rather than always widening through
// int64).
func NewUint64(u uint64) Value { return Value{Kind: Integer, Integer: new(big.Int).SetUint64(u)} }

// NewInteger adopts n directly (the caller must not mutate n
// afterwards).
func NewInteger(n *big.Int) Value { return Value{Kind: Integer, Integer: n} }

// NewFloat returns a Float value.
func NewFloat(f float64) Value { return Value{Kind: Float, Float: f} }

// NewText returns a Text value.
func NewText(s string) Value { return Value{Kind: Text, Text: s} }

// NewBytes returns a Bytes value.
func NewBytes(b []byte) Value { return Value{Kind: Bytes, Bytes: b} }

// NewArray returns an Array value.
func NewArray(elems []Value) Value { return Value{Kind: Array, Array: elems} }

// NewMap returns a Map value.
func NewMap(pairs []Pair) Value { return Value{Kind: Map, Map: pairs} }

// Equal reports whether v and o are the same value: same Kind and
// same content. Array/Map compare element-wise and order-sensitively,
// matching the generic value tree's "sequence" framing in spec §3.3 (a
// literal match needs exact equality, not set equality).
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case Null:
		return true
	case Bool:
		return v.Bool == o.Bool
	case Integer:
		return v.Integer.Cmp(o.Integer) == 0
	case Float:
		return v.Float == o.Float
	case Text:
		return v.Text == o.Text
	case Bytes:
		if len(v.Bytes) != len(o.Bytes) {
			return false
		}
		for i := range v.Bytes {
			if v.Bytes[i] != o.Bytes[i] {
				return false
			}
		}
		return true
	case Array:
		if len(v.Array) != len(o.Array) {
			return false
		}
		for i := range v.Array {
			if !v.Array[i].Equal(o.Array[i]) {
				return false
			}
		}
		return true
	default: // Map
		if len(v.Map) != len(o.Map) {
			return false
		}
		for i := range v.Map {
			if !v.Map[i].Key.Equal(o.Map[i].Key) || !v.Map[i].Value.Equal(o.Map[i].Value) {
				return false
			}
		}
		return true
	}
}
