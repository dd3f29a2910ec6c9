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

package parser

import (
	"strings"

	"cddl.dev/go/cddl/token"
)

// scanner is a byte-cursor over a CDDL source string. It has no
// look-ahead buffer: every "scan" method either consumes a run of
// input matching its production and returns the consumed slice, or
// leaves the cursor untouched and reports false. This mirrors the
// scannerless-combinator shape of
// _examples/original_source/src/parser.rs, rewritten as hand-written
// recursive descent (the house style implied by cue's own
// hand-written, non-generated parser).
type scanner struct {
	src  string
	pos  int
	line int
	col  int
}

func newScanner(src string) *scanner {
	return &scanner{src: src, line: 1, col: 1}
}

func (s *scanner) eof() bool { return s.pos >= len(s.src) }

func (s *scanner) peek() byte {
	if s.eof() {
		return 0
	}
	return s.src[s.pos]
}

func (s *scanner) peekAt(n int) byte {
	if s.pos+n >= len(s.src) {
		return 0
	}
	return s.src[s.pos+n]
}

func (s *scanner) pposMark() token.Pos {
	return token.Pos{Offset: s.pos, Line: s.line, Column: s.col}
}

func (s *scanner) advance() byte {
	c := s.src[s.pos]
	s.pos++
	if c == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return c
}

// ctx returns a short excerpt of the input starting at the current
// position, for use in ParseError.Ctx.
func (s *scanner) ctx() string {
	const maxLen = 32
	rest := s.src[s.pos:]
	if len(rest) > maxLen {
		rest = rest[:maxLen]
	}
	if i := strings.IndexByte(rest, '\n'); i >= 0 {
		rest = rest[:i]
	}
	if rest == "" {
		return "<eof>"
	}
	return rest
}

// skipWS consumes whitespace and ";" line comments, per spec §4.1: any
// run of space/tab/CR/LF or comments.
func (s *scanner) skipWS() {
	for !s.eof() {
		switch s.peek() {
		case ' ', '\t', '\r', '\n':
			s.advance()
		case ';':
			for !s.eof() && s.peek() != '\n' {
				s.advance()
			}
		default:
			return
		}
	}
}

// skipOptComma consumes whitespace, an optional ",", and more
// whitespace (the "optcom" production).
func (s *scanner) skipOptComma() {
	s.skipWS()
	if s.peek() == ',' {
		s.advance()
		s.skipWS()
	}
}

func isEalphaByte(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') ||
		c == '@' || c == '_' || c == '$'
}

func isDigitByte(c byte) bool { return c >= '0' && c <= '9' }

func isHexByte(c byte) bool {
	return isDigitByte(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// scanIdent consumes an identifier:
//
//	ident = EALPHA *( *("-"|".") (EALPHA|DIGIT) )
//
// Note that "." is a valid continuation character, so "min..max"
// scans as one identifier, never as a range (spec §4.1, §8).
func (s *scanner) scanIdent() (string, bool) {
	start := s.pos
	if s.eof() || !isEalphaByte(s.peek()) {
		return "", false
	}
	s.advance()
	for !s.eof() {
		save := s.pos
		saveLine, saveCol := s.line, s.col
		dashes := 0
		for !s.eof() && (s.peek() == '-' || s.peek() == '.') {
			s.advance()
			dashes++
		}
		if !s.eof() && (isEalphaByte(s.peek()) || isDigitByte(s.peek())) {
			s.advance()
			continue
		}
		// Didn't find a valid tail char after the dashes/dots: back out.
		s.pos, s.line, s.col = save, saveLine, saveCol
		break
	}
	return s.src[start:s.pos], true
}

// scanUint consumes the RFC 8610 "uint" token and returns the digit
// slice (without radix prefix) and its base.
func (s *scanner) scanUint() (slice string, base int, ok bool) {
	save, saveLine, saveCol := s.pos, s.line, s.col
	if s.peek() == '0' && (s.peekAt(1) == 'x' || s.peekAt(1) == 'X') {
		s.advance()
		s.advance()
		start := s.pos
		for !s.eof() && isHexByte(s.peek()) {
			s.advance()
		}
		if s.pos == start {
			s.pos, s.line, s.col = save, saveLine, saveCol
			return "", 0, false
		}
		return s.src[start:s.pos], 16, true
	}
	if s.peek() == '0' && (s.peekAt(1) == 'b' || s.peekAt(1) == 'B') {
		s.advance()
		s.advance()
		start := s.pos
		for !s.eof() && (s.peek() == '0' || s.peek() == '1') {
			s.advance()
		}
		if s.pos == start {
			s.pos, s.line, s.col = save, saveLine, saveCol
			return "", 0, false
		}
		return s.src[start:s.pos], 2, true
	}
	if s.peek() == '0' {
		s.advance()
		return "0", 10, true
	}
	if isDigitByte(s.peek()) && s.peek() != '0' {
		start := s.pos
		s.advance()
		for !s.eof() && isDigitByte(s.peek()) {
			s.advance()
		}
		return s.src[start:s.pos], 10, true
	}
	return "", 0, false
}

// numberLiteral holds the raw pieces of a scanned "int ['.' frac] ['e'
// exp]" token, before conversion (by the caller) into a Value.
type numberLiteral struct {
	intSlice string
	intBase  int
	neg      bool
	frac     string // without leading "."; empty if absent
	exp      string // without leading "e"; empty if absent
}

// scanNumber consumes a signed number, optionally followed by a
// fraction and/or exponent (spec §4.1 "Number").
func (s *scanner) scanNumber() (numberLiteral, bool) {
	start := s.pos
	startLine, startCol := s.line, s.col
	neg := false
	if s.peek() == '-' {
		neg = true
		s.advance()
	}
	slice, base, ok := s.scanUint()
	if !ok {
		s.pos, s.line, s.col = start, startLine, startCol
		return numberLiteral{}, false
	}
	n := numberLiteral{intSlice: slice, intBase: base, neg: neg}

	if !s.eof() && s.peek() == '.' && isDigitByte(s.peekAt(1)) {
		s.advance()
		fstart := s.pos
		for !s.eof() && isDigitByte(s.peek()) {
			s.advance()
		}
		n.frac = s.src[fstart:s.pos]
	}
	if !s.eof() && (s.peek() == 'e' || s.peek() == 'E') {
		save := s.pos
		saveLine, saveCol := s.line, s.col
		s.advance()
		sign := ""
		if s.peek() == '+' || s.peek() == '-' {
			sign = string(s.advance())
		}
		estart := s.pos
		for !s.eof() && isDigitByte(s.peek()) {
			s.advance()
		}
		if s.pos == estart {
			// Not a valid exponent after all; back out.
			s.pos, s.line, s.col = save, saveLine, saveCol
		} else {
			n.exp = sign + s.src[estart:s.pos]
		}
	}
	return n, true
}

// scanTextLiteral consumes `"..."`, returning the undecoded body
// (between the quotes).
func (s *scanner) scanTextLiteral() (string, bool) {
	if s.peek() != '"' {
		return "", false
	}
	save := s.pos
	saveLine, saveCol := s.line, s.col
	s.advance()
	start := s.pos
	for !s.eof() {
		c := s.peek()
		if c == '"' {
			body := s.src[start:s.pos]
			s.advance()
			return body, true
		}
		if c == '\\' {
			s.advance()
			if s.eof() {
				break
			}
		}
		s.advance()
	}
	s.pos, s.line, s.col = save, saveLine, saveCol
	return "", false
}

// scanBytesUTF8 consumes `'...'`.
func (s *scanner) scanBytesUTF8() (string, bool) {
	if s.peek() != '\'' {
		return "", false
	}
	save := s.pos
	saveLine, saveCol := s.line, s.col
	s.advance()
	start := s.pos
	for !s.eof() {
		c := s.peek()
		if c == '\'' {
			body := s.src[start:s.pos]
			s.advance()
			return body, true
		}
		if c == '\\' {
			s.advance()
			if s.eof() {
				break
			}
		}
		s.advance()
	}
	s.pos, s.line, s.col = save, saveLine, saveCol
	return "", false
}

// scanBytesHex consumes `h'...'`.
func (s *scanner) scanBytesHex() (string, bool) {
	if !(s.peek() == 'h' && s.peekAt(1) == '\'') {
		return "", false
	}
	save, saveLine, saveCol := s.pos, s.line, s.col
	s.advance()
	s.advance()
	start := s.pos
	for !s.eof() && s.peek() != '\'' {
		s.advance()
	}
	if s.eof() {
		s.pos, s.line, s.col = save, saveLine, saveCol
		return "", false
	}
	body := s.src[start:s.pos]
	s.advance()
	return body, true
}

// scanBytesBase64 consumes `b64'...'`.
func (s *scanner) scanBytesBase64() (string, bool) {
	if !strings.HasPrefix(s.src[s.pos:], "b64'") {
		return "", false
	}
	save, saveLine, saveCol := s.pos, s.line, s.col
	for i := 0; i < 4; i++ {
		s.advance()
	}
	start := s.pos
	for !s.eof() && s.peek() != '\'' {
		s.advance()
	}
	if s.eof() {
		s.pos, s.line, s.col = save, saveLine, saveCol
		return "", false
	}
	body := s.src[start:s.pos]
	s.advance()
	return body, true
}

// lookingAt reports whether the upcoming input starts with lit,
// without consuming anything.
func (s *scanner) lookingAt(lit string) bool {
	return strings.HasPrefix(s.src[s.pos:], lit)
}

// consume advances past lit if present, reporting whether it matched.
func (s *scanner) consume(lit string) bool {
	if !s.lookingAt(lit) {
		return false
	}
	for range lit {
		s.advance()
	}
	return true
}
