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
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/xerrors"
)

// ErrMalformedText is wrapped by Unquote when an escape sequence is
// invalid or the decoded text contains an unpaired UTF-16 surrogate.
var ErrMalformedText = xerrors.New("malformed text")

// Unquote decodes the body of a CDDL text literal (the bytes between
// the opening and closing '"', already stripped by the caller),
// expanding backslash escapes per RFC 8610's SESC production: \", \\,
// \/, \b, \f, \n, \r, \t, and \uXXXX (including UTF-16 surrogate
// pairs, e.g. "\uD834\uDD1E" -> U+1D11E).
//
// The result is NFC-normalized, matching
// cue/internal/compile/label.go's norm.NFC.String(s) treatment of
// decoded identifiers/strings, so that two byte-distinct but
// canonically-equivalent text literals compare equal once they reach
// the IVT and the generic value tree.
func Unquote(s string) (string, error) {
	if !strings.ContainsRune(s, '\\') {
		if !utf8.ValidString(s) {
			return "", xerrors.Errorf("invalid utf8: %w", ErrMalformedText)
		}
		return norm.NFC.String(s), nil
	}

	var b strings.Builder
	b.Grow(len(s))

	runes := []rune(s)
	var pendingHigh rune = -1

	flushSurrogate := func() error {
		if pendingHigh != -1 {
			pendingHigh = -1
			return xerrors.Errorf("unpaired surrogate: %w", ErrMalformedText)
		}
		return nil
	}

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '\\' {
			if err := flushSurrogate(); err != nil {
				return "", err
			}
			b.WriteRune(r)
			continue
		}
		i++
		if i >= len(runes) {
			return "", xerrors.Errorf("trailing backslash: %w", ErrMalformedText)
		}
		if runes[i] != 'u' {
			if err := flushSurrogate(); err != nil {
				return "", err
			}
		}
		switch runes[i] {
		case '"':
			b.WriteByte('"')
		case '\\':
			b.WriteByte('\\')
		case '/':
			b.WriteByte('/')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'u':
			if i+4 >= len(runes) {
				return "", xerrors.Errorf("short unicode escape: %w", ErrMalformedText)
			}
			hex := string(runes[i+1 : i+5])
			v, err := strconv.ParseUint(hex, 16, 32)
			if err != nil {
				return "", xerrors.Errorf("%s: %w", hex, ErrMalformedText)
			}
			i += 4
			u := rune(v)
			switch {
			case utf16.IsSurrogate(u) && pendingHigh == -1:
				// Might be the high half of a surrogate pair; hold it
				// until we see what follows.
				pendingHigh = u
				continue
			case pendingHigh != -1:
				combined := utf16.DecodeRune(pendingHigh, u)
				pendingHigh = -1
				if combined == utf8.RuneError {
					return "", xerrors.Errorf("unpaired surrogate: %w", ErrMalformedText)
				}
				b.WriteRune(combined)
			default:
				b.WriteRune(u)
			}
		default:
			return "", xerrors.Errorf("invalid escape \\%c: %w", runes[i], ErrMalformedText)
		}
	}
	if err := flushSurrogate(); err != nil {
		return "", err
	}
	return norm.NFC.String(b.String()), nil
}
