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

// Package json is a supplemental format adapter: JSON has no byte
// string or distinct-integer-vs-float kinds, so it decodes into a
// narrower slice of the generic value tree than CBOR does (a JSON
// number written as a whole decimal number becomes an Integer, any
// other number a Float, and Bytes is never produced). It exists
// because a CDDL schema is frequently validated against JSON test
// fixtures even though CBOR is RFC 8610's native wire format.
package json

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"

	"cddl.dev/go/value"
)

// DecodeError wraps a failure to decode JSON bytes into a value.Value.
type DecodeError struct {
	err error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("json: %s", e.err) }
func (e *DecodeError) Unwrap() error { return e.err }

// Decode parses data as a single JSON value and returns its generic
// value.Value representation.
func Decode(data []byte) (value.Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return value.Value{}, &DecodeError{err: err}
	}
	return fromRaw(raw), nil
}

func fromRaw(raw interface{}) value.Value {
	switch t := raw.(type) {
	case nil:
		return value.NewNull()
	case bool:
		return value.NewBool(t)
	case json.Number:
		return numberToValue(t)
	case string:
		return value.NewText(t)
	case []interface{}:
		elems := make([]value.Value, len(t))
		for i, e := range t {
			elems[i] = fromRaw(e)
		}
		return value.NewArray(elems)
	case map[string]interface{}:
		pairs := make([]value.Pair, 0, len(t))
		for k, v := range t {
			pairs = append(pairs, value.Pair{Key: value.NewText(k), Value: fromRaw(v)})
		}
		return value.NewMap(pairs)
	default:
		panic(fmt.Sprintf("cddl/adapter/json: unexpected decoded type %T", raw))
	}
}

// numberToValue classifies a json.Number as Integer when it parses as
// an exact big integer, Float otherwise, since JSON's number syntax
// does not itself distinguish "42" from "42.0" the way CBOR's major
// types do.
func numberToValue(n json.Number) value.Value {
	if i, ok := new(big.Int).SetString(n.String(), 10); ok {
		return value.NewInteger(i)
	}
	f, err := n.Float64()
	if err != nil {
		panic(fmt.Sprintf("cddl/adapter/json: malformed number %q", n.String()))
	}
	return value.NewFloat(f)
}
