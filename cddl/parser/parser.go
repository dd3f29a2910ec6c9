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

// Package parser turns CDDL source text (RFC 8610, narrowed per the
// non-goals listed in SPEC_FULL.md) into a cddl/ast tree. It is a hand-written
// recursive-descent parser, scannerless in the sense that grammar
// productions drive the low-level token scanning directly rather than
// running a separate tokenization pass first: CDDL's grammar depends on
// too much local lookahead (barewords vs. typenames, "." inside idents,
// member keys vs. plain types) to benefit from a classic token stream.
//
// The grammar implemented here is the one in
// _examples/original_source/src/parser.rs, restructured as idiomatic Go
// methods on a single *parser cursor instead of nom combinators.
package parser

import (
	"cddl.dev/go/cddl/ast"
	"cddl.dev/go/cddl/errors"
	"cddl.dev/go/cddl/literal"
)

// parser drives a scanner and assembles ast nodes.
type parser struct {
	s *scanner
}

// ParseString parses a complete CDDL document, returning its AST.
func ParseString(src string) (*ast.Cddl, error) {
	p := &parser{s: newScanner(src)}
	c, err := p.parseCddl()
	if err != nil {
		return nil, err
	}
	return c, nil
}

// RuleSlice pairs a parsed rule with the verbatim source text it was
// parsed from, for diagnostics (spec §4.1 "slice-preserving variant").
type RuleSlice struct {
	Rule   *ast.Rule
	Source string
}

// ParseSlice parses src like ParseString but additionally records, for
// each rule, the substring of src it was parsed from. It must not
// alter parsing semantics: the returned AST is identical to what
// ParseString would produce.
func ParseSlice(src string) ([]RuleSlice, error) {
	p := &parser{s: newScanner(src)}
	p.s.skipWS()
	var out []RuleSlice
	for !p.s.eof() {
		start := p.s.pos
		r, err := p.parseRule()
		if err != nil {
			return nil, err
		}
		out = append(out, RuleSlice{Rule: r, Source: src[start:p.s.pos]})
		p.s.skipWS()
	}
	if len(out) == 0 {
		return nil, errors.NewParseError(errors.Unparseable, p.s.ctx())
	}
	return out, nil
}

func (p *parser) fail(kind errors.ParseErrorKind) error {
	return errors.NewParseError(kind, p.s.ctx())
}

func (p *parser) failWrap(kind errors.ParseErrorKind, cause error) error {
	return errors.WrapParseError(kind, p.s.ctx(), cause)
}

// parseCddl implements `cddl = ws rule (ws rule)* ws`.
func (p *parser) parseCddl() (*ast.Cddl, error) {
	p.s.skipWS()
	c := &ast.Cddl{}
	for !p.s.eof() {
		r, err := p.parseRule()
		if err != nil {
			return nil, err
		}
		c.Rules = append(c.Rules, r)
		p.s.skipWS()
	}
	if len(c.Rules) == 0 {
		return nil, p.fail(errors.Unparseable)
	}
	return c, nil
}

// parseRule implements `rule = ident ws "=" ws (type | grpent)`.
func (p *parser) parseRule() (*ast.Rule, error) {
	pos := p.s.pposMark()
	name, ok := p.s.scanIdent()
	if !ok {
		return nil, p.fail(errors.Unparseable)
	}
	p.s.skipWS()
	if !p.s.consume("=") {
		return nil, p.fail(errors.Unparseable)
	}
	p.s.skipWS()

	// A rule's RHS is ambiguous between `type` and `grpent` only in
	// the surface grammar; in practice a bare group assignment shows
	// up as `name = (grpent)` or `name = grpent-without-a-type-shape`.
	// We try `type` first (it subsumes the common case, including
	// parenthesized/braced/bracketed type2), falling back to a raw
	// grpent for the rarer bare group-entry assignment.
	save := *p.s
	if t, err := p.parseType(); err == nil {
		return &ast.Rule{Name: name, Pos: pos, Type: t}, nil
	}
	*p.s = save
	g, err := p.parseGrpEnt()
	if err != nil {
		return nil, err
	}
	return &ast.Rule{Name: name, Pos: pos, Group: g}, nil
}

// parseType implements `type = type1 (ws "/" ws type1)*`.
func (p *parser) parseType() (*ast.Type, error) {
	first, err := p.parseType1()
	if err != nil {
		return nil, err
	}
	t := &ast.Type{Choices: []*ast.Type1{first}}
	for {
		save := *p.s
		p.s.skipWS()
		if !p.s.consume("/") || p.s.lookingAt("/") {
			// "//" belongs to group alternation, not type alternation.
			*p.s = save
			break
		}
		p.s.skipWS()
		next, err := p.parseType1()
		if err != nil {
			*p.s = save
			break
		}
		t.Choices = append(t.Choices, next)
	}
	return t, nil
}

// parseType1 implements:
//
//	type1 = type2 (ws (".." | "..." | "." ident) ws type2)?
func (p *parser) parseType1() (*ast.Type1, error) {
	first, err := p.parseType2()
	if err != nil {
		return nil, err
	}

	save := *p.s
	p.s.skipWS()

	if p.s.consume("...") {
		p.s.skipWS()
		end, err := p.parseType2()
		if err != nil {
			*p.s = save
			return &ast.Type1{Kind: ast.Type1Simple, Simple: first}, nil
		}
		return &ast.Type1{Kind: ast.Type1Range, RangeStart: first, RangeEnd: end, RangeInclusive: false}, nil
	}
	if p.s.consume("..") {
		p.s.skipWS()
		end, err := p.parseType2()
		if err != nil {
			*p.s = save
			return &ast.Type1{Kind: ast.Type1Simple, Simple: first}, nil
		}
		return &ast.Type1{Kind: ast.Type1Range, RangeStart: first, RangeEnd: end, RangeInclusive: true}, nil
	}
	if p.s.peek() == '.' && isEalphaByte(p.s.peekAt(1)) {
		p.s.advance()
		op, ok := p.s.scanIdent()
		if !ok {
			*p.s = save
			return &ast.Type1{Kind: ast.Type1Simple, Simple: first}, nil
		}
		p.s.skipWS()
		second, err := p.parseType2()
		if err != nil {
			*p.s = save
			return &ast.Type1{Kind: ast.Type1Simple, Simple: first}, nil
		}
		return &ast.Type1{Kind: ast.Type1Control, ControlFirst: first, ControlOp: op, ControlSecond: second}, nil
	}

	*p.s = save
	return &ast.Type1{Kind: ast.Type1Simple, Simple: first}, nil
}

// parseType2 implements:
//
//	type2 = value | ident | "(" ws type ws ")" | "{" ws group ws "}"
//	       | "[" ws group ws "]" | "~" ws ident
func (p *parser) parseType2() (*ast.Type2, error) {
	if v, ok, err := p.tryParseValue(); err != nil {
		return nil, err
	} else if ok {
		return &ast.Type2{Kind: ast.Type2Value, Value: v}, nil
	}

	switch p.s.peek() {
	case '(':
		p.s.advance()
		p.s.skipWS()
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		p.s.skipWS()
		if !p.s.consume(")") {
			return nil, p.fail(errors.Unparseable)
		}
		return &ast.Type2{Kind: ast.Type2Paren, Paren: t}, nil
	case '{':
		p.s.advance()
		p.s.skipWS()
		g, err := p.parseGroup()
		if err != nil {
			return nil, err
		}
		p.s.skipWS()
		if !p.s.consume("}") {
			return nil, p.fail(errors.Unparseable)
		}
		return &ast.Type2{Kind: ast.Type2Map, Map: g}, nil
	case '[':
		p.s.advance()
		p.s.skipWS()
		g, err := p.parseGroup()
		if err != nil {
			return nil, err
		}
		p.s.skipWS()
		if !p.s.consume("]") {
			return nil, p.fail(errors.Unparseable)
		}
		return &ast.Type2{Kind: ast.Type2Array, Array: g}, nil
	case '~':
		p.s.advance()
		p.s.skipWS()
		name, ok := p.s.scanIdent()
		if !ok {
			return nil, p.fail(errors.Unparseable)
		}
		return &ast.Type2{Kind: ast.Type2Unwrap, Typename: name}, nil
	}

	if name, ok := p.s.scanIdent(); ok {
		return &ast.Type2{Kind: ast.Type2Typename, Typename: name}, nil
	}
	return nil, p.fail(errors.Unparseable)
}

// parseGroup implements `group = grpchoice (ws "//" ws grpchoice)*`.
func (p *parser) parseGroup() (*ast.Group, error) {
	first, err := p.parseGrpChoice()
	if err != nil {
		return nil, err
	}
	g := &ast.Group{Choices: []*ast.GrpChoice{first}}
	for {
		save := *p.s
		p.s.skipWS()
		if !p.s.consume("//") {
			*p.s = save
			break
		}
		p.s.skipWS()
		next, err := p.parseGrpChoice()
		if err != nil {
			*p.s = save
			break
		}
		g.Choices = append(g.Choices, next)
	}
	return g, nil
}

// parseGrpChoice implements `grpchoice = (grpent optcom)*`. Zero
// entries is valid (an empty map/array group).
func (p *parser) parseGrpChoice() (*ast.GrpChoice, error) {
	gc := &ast.GrpChoice{}
	for {
		save := *p.s
		p.s.skipWS()
		if p.s.eof() || p.s.peek() == '}' || p.s.peek() == ']' || p.s.lookingAt("//") {
			*p.s = save
			break
		}
		ent, err := p.parseGrpEnt()
		if err != nil {
			*p.s = save
			break
		}
		gc.Entries = append(gc.Entries, ent)
		p.s.skipOptComma()
	}
	return gc, nil
}

// parseGrpEnt implements:
//
//	grpent = (occur ws)? (memberkey ws)? (type | ident | "(" ws group ws ")")
//
// Alternatives inside the value position are tried in the order the
// spec mandates: member-with-memberkey, then type-with-no-key, then
// groupname, then parenthesized group.
func (p *parser) parseGrpEnt() (*ast.GrpEnt, error) {
	var occur *ast.Occur
	if o, ok := p.tryParseOccur(); ok {
		occur = o
		p.s.skipWS()
	}

	if mk, ok, err := p.tryParseMemberKey(); err != nil {
		return nil, err
	} else if ok {
		p.s.skipWS()
		val, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return &ast.GrpEnt{Occur: occur, Kind: ast.GrpEntMember, Key: mk, Value: val}, nil
	}

	if t, err := p.parseType(); err == nil {
		if t2, isName := soleTypename(t); isName {
			return &ast.GrpEnt{Occur: occur, Kind: ast.GrpEntGroupname, Groupname: t2}, nil
		}
		return &ast.GrpEnt{Occur: occur, Kind: ast.GrpEntMember, Key: nil, Value: t}, nil
	}

	if p.s.peek() == '(' {
		save := *p.s
		p.s.advance()
		p.s.skipWS()
		g, err := p.parseGroup()
		if err == nil {
			p.s.skipWS()
			if p.s.consume(")") {
				return &ast.GrpEnt{Occur: occur, Kind: ast.GrpEntParen, Paren: g}, nil
			}
		}
		*p.s = save
	}

	return nil, p.fail(errors.Unparseable)
}

// soleTypename reports whether t is nothing but a bare typename
// reference, in which case a grpent should be read as a groupname
// (a reference to another group/rule) rather than an unkeyed member
// of that type. Per the grammar this is genuinely ambiguous without
// semantic information (which the flattener resolves later by
// checking whether the name denotes a group or a type); here we
// surface it as Groupname whenever the Type degenerates to a single
// Typename, letting the flattener decide how to use it.
func soleTypename(t *ast.Type) (string, bool) {
	if len(t.Choices) != 1 {
		return "", false
	}
	t1 := t.Choices[0]
	if t1.Kind != ast.Type1Simple {
		return "", false
	}
	t2 := t1.Simple
	if t2.Kind != ast.Type2Typename {
		return "", false
	}
	return t2.Typename, true
}

// tryParseMemberKey attempts the three memberkey forms:
//
//	memberkey = type1 ws ("^" ws)? "=>"
//	          | ident ws ":"
//	          | value ws ":"
//
// It reports ok=false (restoring the cursor) if none match, which
// tells parseGrpEnt to fall back to a keyless value.
func (p *parser) tryParseMemberKey() (*ast.MemberKey, bool, error) {
	save := *p.s

	// `ident ws ":"` (bareword key) is tried before the general
	// `value ws ":"` form since an identifier is not a Value.
	if name, ok := p.s.scanIdent(); ok {
		p.s.skipWS()
		if p.s.consume(":") {
			return &ast.MemberKey{Kind: ast.MemberKeyBareword, Cut: true, Bareword: name}, true, nil
		}
		*p.s = save
	}

	if v, ok, err := p.tryParseValue(); err != nil {
		return nil, false, err
	} else if ok {
		save2 := *p.s
		p.s.skipWS()
		if p.s.consume(":") {
			return &ast.MemberKey{Kind: ast.MemberKeyValue, Cut: true, Value: v}, true, nil
		}
		*p.s = save2
	}
	*p.s = save

	// General `type1 ws ("^" ws)? "=>"` form.
	t1, err := p.parseType1()
	if err != nil {
		*p.s = save
		return nil, false, nil
	}
	p.s.skipWS()
	cut := false
	if p.s.consume("^") {
		cut = true
		p.s.skipWS()
	}
	if !p.s.consume("=>") {
		*p.s = save
		return nil, false, nil
	}
	return &ast.MemberKey{Kind: ast.MemberKeyType1, Cut: cut, Type1: t1}, true, nil
}

// tryParseOccur implements `occur = uint? "*" uint? | "+" | "?"`.
func (p *parser) tryParseOccur() (*ast.Occur, bool) {
	save := *p.s

	if p.s.peek() == '?' {
		p.s.advance()
		return &ast.Occur{Kind: ast.OccurOptional}, true
	}
	if p.s.peek() == '+' {
		p.s.advance()
		return &ast.Occur{Kind: ast.OccurOneOrMore}, true
	}

	var lower *uint64
	if slice, base, ok := p.s.scanUint(); ok {
		n, err := literal.ParseUint(slice, base)
		if err != nil {
			*p.s = save
			return nil, false
		}
		lower = &n
	}
	if p.s.peek() != '*' {
		*p.s = save
		return nil, false
	}
	p.s.advance()
	var upper *uint64
	if slice, base, ok := p.s.scanUint(); ok {
		n, err := literal.ParseUint(slice, base)
		if err != nil {
			*p.s = save
			return nil, false
		}
		upper = &n
	}
	if lower == nil && upper == nil {
		return &ast.Occur{Kind: ast.OccurZeroOrMore}, true
	}
	return &ast.Occur{Kind: ast.OccurNumbered, Lower: lower, Upper: upper}, true
}

// tryParseValue attempts every literal form. Reports ok=false
// (cursor untouched) when the input doesn't start a literal at all;
// returns a real error only once a literal has committed (e.g. an
// opening quote was seen) and then turns out malformed.
func (p *parser) tryParseValue() (*ast.Value, bool, error) {
	if body, ok := p.s.scanBytesHex(); ok {
		b, err := literal.ParseHex(body)
		if err != nil {
			return nil, true, p.failWrap(errors.MalformedHex, err)
		}
		return &ast.Value{Kind: ast.ValueBytes, Bytes: b}, true, nil
	}
	if body, ok := p.s.scanBytesBase64(); ok {
		return &ast.Value{Kind: ast.ValueBytes, Bytes: literal.RawBase64(body)}, true, nil
	}
	if body, ok := p.s.scanTextLiteral(); ok {
		s, err := literal.Unquote(body)
		if err != nil {
			return nil, true, p.failWrap(errors.MalformedText, err)
		}
		return &ast.Value{Kind: ast.ValueText, Text: s}, true, nil
	}
	if body, ok := p.s.scanBytesUTF8(); ok {
		s, err := literal.Unquote(body)
		if err != nil {
			return nil, true, p.failWrap(errors.MalformedText, err)
		}
		return &ast.Value{Kind: ast.ValueBytes, Bytes: []byte(s)}, true, nil
	}

	if p.s.peek() == '-' || isDigitByte(p.s.peek()) {
		save := *p.s
		n, ok := p.s.scanNumber()
		if !ok {
			*p.s = save
			return nil, false, nil
		}
		v, err := numberLiteralToValue(n)
		if err != nil {
			return nil, true, err
		}
		return v, true, nil
	}

	return nil, false, nil
}

// numberLiteralToValue converts a scanned numberLiteral into an
// ast.Value, per spec §4.1 "Number": fraction or exponent present ->
// Float; a radix prefix with fraction/exponent -> MalformedInteger;
// otherwise a signed/unsigned integer.
func numberLiteralToValue(n numberLiteral) (*ast.Value, error) {
	isFloat := n.frac != "" || n.exp != ""
	if isFloat {
		if n.intBase != 10 {
			return nil, errors.NewParseError(errors.MalformedInteger, n.intSlice)
		}
		slice := n.intSlice
		if n.neg {
			slice = "-" + slice
		}
		if n.frac != "" {
			slice += "." + n.frac
		}
		if n.exp != "" {
			slice += "e" + n.exp
		}
		f, err := literal.ParseFloat(slice)
		if err != nil {
			return nil, errors.WrapParseError(errors.MalformedFloat, slice, err)
		}
		return &ast.Value{Kind: ast.ValueFloat, Float: f}, nil
	}

	u, err := literal.ParseUint(n.intSlice, n.intBase)
	if err != nil {
		return nil, errors.WrapParseError(errors.MalformedInteger, n.intSlice, err)
	}
	if !n.neg {
		return &ast.Value{Kind: ast.ValueUint, Uint: u}, nil
	}
	if u > 1<<63 {
		return nil, errors.NewParseError(errors.MalformedInteger, n.intSlice)
	}
	return &ast.Value{Kind: ast.ValueNint, Nint: -int64(u)}, nil
}
