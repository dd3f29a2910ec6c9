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

package literal

import (
	"encoding/hex"
	"strings"

	"golang.org/x/xerrors"
)

// ErrMalformedHex is wrapped by ParseHex when a hex byte-string
// literal has an odd digit count or a non-hex character.
var ErrMalformedHex = xerrors.New("malformed hex byte string")

// ParseHex decodes the body of an `h'...'` byte-string literal.
// Whitespace inside the literal is ignored, per RFC 8610.
func ParseHex(s string) ([]byte, error) {
	stripped := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\r', '\n':
			return -1
		}
		return r
	}, s)
	b, err := hex.DecodeString(stripped)
	if err != nil {
		return nil, xerrors.Errorf("%s: %w", s, ErrMalformedHex)
	}
	return b, nil
}

// RawBase64 returns the byte-string value of a `b64'...'` literal.
// Decoding base64 payloads is an explicit known gap (spec
// Non-goals): the source text's bytes are carried through unchanged,
// mirroring _examples/original_source/src/parser.rs's
// `bytestring_base64` handling, which does exactly the same thing
// pending a real decoder.
func RawBase64(s string) []byte {
	return []byte(s)
}
