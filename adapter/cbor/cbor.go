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

// Package cbor is the reference format adapter (spec §4.4): it decodes
// CBOR bytes into the generic value.Value tree the validator consumes.
// It preserves CBOR integer signedness exactly (a negative-major-type
// item becomes a negative Integer), keeps text and byte strings
// distinct, and materializes both definite- and indefinite-length
// arrays/maps into the generic Array/Map forms — fxamacker/cbor/v2
// already collapses that distinction during decode, so no special
// casing is needed here.
package cbor

import (
	"fmt"
	"math/big"
	"reflect"

	"github.com/fxamacker/cbor/v2"

	"cddl.dev/go/value"
)

// DecodeError wraps a failure to decode CBOR bytes into a value.Value.
type DecodeError struct {
	err error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("cbor: %s", e.err) }
func (e *DecodeError) Unwrap() error { return e.err }

var decMode = mustDecMode()

func mustDecMode() cbor.DecMode {
	opts := cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[interface{}]interface{}(nil)),
		BigIntDec:      cbor.BigIntDecodePointer,
	}
	mode, err := opts.DecMode()
	if err != nil {
		panic(err)
	}
	return mode
}

// Decode parses data as a single CBOR item and returns its generic
// value.Value representation.
func Decode(data []byte) (value.Value, error) {
	var raw interface{}
	if err := decMode.Unmarshal(data, &raw); err != nil {
		return value.Value{}, &DecodeError{err: err}
	}
	return fromRaw(raw), nil
}

// fromRaw converts a decoded Go value (as produced by decMode's
// DefaultMapType/BigIntDec settings above) into the generic value
// tree: nil, bool, int64/uint64/*big.Int, float64, string, []byte,
// []interface{}, map[interface{}]interface{}.
func fromRaw(raw interface{}) value.Value {
	switch t := raw.(type) {
	case nil:
		return value.NewNull()
	case bool:
		return value.NewBool(t)
	case int64:
		return value.NewInt64(t)
	case uint64:
		return value.NewUint64(t)
	case *big.Int:
		return value.NewInteger(t)
	case float32:
		return value.NewFloat(float64(t))
	case float64:
		return value.NewFloat(t)
	case string:
		return value.NewText(t)
	case []byte:
		return value.NewBytes(t)
	case []interface{}:
		elems := make([]value.Value, len(t))
		for i, e := range t {
			elems[i] = fromRaw(e)
		}
		return value.NewArray(elems)
	case map[interface{}]interface{}:
		pairs := make([]value.Pair, 0, len(t))
		for k, v := range t {
			pairs = append(pairs, value.Pair{Key: fromRaw(k), Value: fromRaw(v)})
		}
		return value.NewMap(pairs)
	default:
		// Unreachable for decMode's configured type set; surfacing a
		// descriptive panic beats silently dropping data.
		panic(fmt.Sprintf("cddl/adapter/cbor: unexpected decoded type %T", raw))
	}
}
