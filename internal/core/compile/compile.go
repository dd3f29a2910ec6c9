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

// Package compile flattens a cddl/ast tree into the Intermediate
// Validation Tree (internal/core/adt): it collapses incidental syntax
// (single-choice wrappers, parenthesized types/groups), resolves
// prelude type names and literal values, and back-patches inter-rule
// references into a cycle-tolerant graph (spec §4.2).
//
// The dispatch shape (one method per AST production, switching on a
// Kind field rather than a type switch over concrete ast types)
// follows internal/core/compile/compile.go's compiler; the
// flattening rules themselves are ported directly from
// _examples/original_source/src/flatten.rs's flatten_rule /
// flatten_type / flatten_type1 / flatten_type2 / flatten_typename /
// flatten_map / flatten_groupentry / flatten_memberkey and its
// Occur::from table and replace_rule_refs pass.
package compile

import (
	"fmt"

	"cddl.dev/go/cddl/ast"
	"cddl.dev/go/cddl/errors"
	"cddl.dev/go/cddl/parser"
	"cddl.dev/go/internal/core/adt"
)

// FlattenFromString parses src and flattens it into a Schema in one
// step (spec §6 flatten_from_str).
func FlattenFromString(src string) (*adt.Schema, error) {
	c, err := parser.ParseString(src)
	if err != nil {
		return nil, err
	}
	return Flatten(c)
}

// compiler carries the state Pass 1 needs beyond the AST itself: which
// rule names are pure group definitions (spliced wherever referenced,
// never a standalone schema entry) and a cycle guard for group-name
// resolution.
type compiler struct {
	groupRules map[string]*ast.Rule
	resolving  map[string]bool
}

// Flatten converts a parsed Cddl document into a Schema (spec §6
// flatten). Pass 1 builds a Node per type rule (pure group rules, i.e.
// `name = grpent` with no surrounding type, are recorded for inlining
// but do not get a schema entry of their own); Pass 2 back-patches
// every Rule reference to its target.
func Flatten(c *ast.Cddl) (*adt.Schema, error) {
	cc := &compiler{
		groupRules: map[string]*ast.Rule{},
		resolving:  map[string]bool{},
	}
	for _, r := range c.Rules {
		if r.Group != nil {
			cc.groupRules[r.Name] = r
		}
	}

	schema := &adt.Schema{Rules: map[string]adt.Node{}}
	var errs errors.List
	for i, r := range c.Rules {
		if i == 0 {
			schema.Root = r.Name
		}
		switch {
		case r.Type != nil:
			node, err := cc.flattenType(r.Type)
			if err != nil {
				errs = errors.Append(errs, err)
				continue
			}
			schema.Rules[r.Name] = node
		case r.Group != nil:
			// Handled above: not a standalone node.
		default:
			errs = errors.Append(errs, &errors.FlattenError{Kind: errors.EmptyRule, Name: r.Name})
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}

	if err := resolveRefs(schema); err != nil {
		return nil, err
	}
	return schema, nil
}

// resolveRefs is flatten.rs's replace_rule_refs: walk every node
// reachable from every top-level rule and install each Rule's
// back-pointer to its referent.
func resolveRefs(schema *adt.Schema) error {
	var errs errors.List
	for _, root := range schema.Rules {
		walk(root, func(n adt.Node) error {
			ref, ok := n.(*adt.Rule)
			if !ok {
				return nil
			}
			target, found := schema.Rules[ref.Name]
			if !found {
				errs = errors.Append(errs, &errors.FlattenError{Kind: errors.UnknownRule, Name: ref.Name})
				return nil
			}
			ref.Ref = target
			return nil
		})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// walk applies visit to n and, for owning edges only, to every node n
// reaches. Rule back-edges are leaves here deliberately: the graph
// must stay cycle-tolerant, and resolveRefs only needs to see each
// Rule node once to install its pointer, never to chase it further.
func walk(n adt.Node, visit func(adt.Node) error) error {
	if err := visit(n); err != nil {
		return err
	}
	switch t := n.(type) {
	case *adt.Literal, *adt.PreludeType, *adt.Rule:
		// leaves
	case *adt.Choice:
		for _, opt := range t.Options {
			if err := walk(opt, visit); err != nil {
				return err
			}
		}
	case *adt.Map:
		for _, kv := range t.Members {
			if kv.Key != nil {
				if err := walk(kv.Key, visit); err != nil {
					return err
				}
			}
			if err := walk(kv.Value, visit); err != nil {
				return err
			}
		}
	case *adt.ArrayRecord:
		for _, kv := range t.Members {
			if kv.Key != nil {
				if err := walk(kv.Key, visit); err != nil {
					return err
				}
			}
			if err := walk(kv.Value, visit); err != nil {
				return err
			}
		}
	case *adt.ArrayVec:
		if err := walk(t.Element, visit); err != nil {
			return err
		}
	}
	return nil
}

// preludeTable maps recognized prelude type names to their PreludeKind
// (spec §4.3 prelude category table).
var preludeTable = map[string]adt.PreludeKind{
	"any":   adt.PreludeAny,
	"bool":  adt.PreludeBool,
	"int":   adt.PreludeInt,
	"uint":  adt.PreludeUint,
	"nint":  adt.PreludeNint,
	"tstr":  adt.PreludeTstr,
	"bstr":  adt.PreludeBstr,
	"float": adt.PreludeFloat,
	"null":  adt.PreludeNull,
	"nil":   adt.PreludeNull,
}

func (cc *compiler) flattenType(t *ast.Type) (adt.Node, error) {
	if len(t.Choices) == 1 {
		return cc.flattenType1(t.Choices[0])
	}
	opts := make([]adt.Node, 0, len(t.Choices))
	for _, t1 := range t.Choices {
		n, err := cc.flattenType1(t1)
		if err != nil {
			return nil, err
		}
		opts = append(opts, n)
	}
	return &adt.Choice{Options: opts}, nil
}

func (cc *compiler) flattenType1(t1 *ast.Type1) (adt.Node, error) {
	switch t1.Kind {
	case ast.Type1Simple:
		return cc.flattenType2(t1.Simple)
	case ast.Type1Range:
		return nil, &errors.FlattenError{Kind: errors.UnsupportedConstruct, Name: "range"}
	default: // ast.Type1Control
		return nil, &errors.FlattenError{Kind: errors.UnsupportedConstruct, Name: fmt.Sprintf(".%s", t1.ControlOp)}
	}
}

func (cc *compiler) flattenType2(t2 *ast.Type2) (adt.Node, error) {
	switch t2.Kind {
	case ast.Type2Value:
		return flattenValue(t2.Value), nil
	case ast.Type2Typename:
		return cc.flattenTypename(t2.Typename), nil
	case ast.Type2Paren:
		return cc.flattenType(t2.Paren)
	case ast.Type2Map:
		return cc.flattenMap(t2.Map)
	case ast.Type2Array:
		return cc.flattenArray(t2.Array)
	default: // ast.Type2Unwrap
		return nil, &errors.FlattenError{Kind: errors.UnsupportedConstruct, Name: "~" + t2.Typename}
	}
}

func flattenValue(v *ast.Value) adt.Node {
	switch v.Kind {
	case ast.ValueUint:
		return &adt.Literal{Kind: adt.LiteralInt, Int: adt.NewInt128FromUint64(v.Uint)}
	case ast.ValueNint:
		return &adt.Literal{Kind: adt.LiteralInt, Int: adt.NewInt128FromInt64(v.Nint)}
	case ast.ValueFloat:
		return &adt.Literal{Kind: adt.LiteralFloat, Float: v.Float}
	case ast.ValueText:
		return &adt.Literal{Kind: adt.LiteralText, Text: v.Text}
	default: // ast.ValueBytes
		return &adt.Literal{Kind: adt.LiteralBytes, Bytes: v.Bytes}
	}
}

// flattenTypename resolves a bare identifier used in type position:
// "true"/"false" are literals, a prelude name is a PreludeType,
// anything else is an unresolved Rule reference for Pass 2 to
// back-patch.
func (cc *compiler) flattenTypename(name string) adt.Node {
	switch name {
	case "true":
		return &adt.Literal{Kind: adt.LiteralBool, Bool: true}
	case "false":
		return &adt.Literal{Kind: adt.LiteralBool, Bool: false}
	}
	if k, ok := preludeTable[name]; ok {
		return &adt.PreludeType{Kind: k}
	}
	return &adt.Rule{Name: name}
}

func (cc *compiler) flattenMap(g *ast.Group) (adt.Node, error) {
	if len(g.Choices) == 1 {
		members, err := cc.flattenGroupChoiceMembers(g.Choices[0], false)
		if err != nil {
			return nil, err
		}
		return &adt.Map{Members: members}, nil
	}
	// Spec §4.2: a group with more than one grpchoice alternative wraps
	// the Map in a Choice.
	opts := make([]adt.Node, 0, len(g.Choices))
	for _, gc := range g.Choices {
		members, err := cc.flattenGroupChoiceMembers(gc, false)
		if err != nil {
			return nil, err
		}
		opts = append(opts, &adt.Map{Members: members})
	}
	return &adt.Choice{Options: opts}, nil
}

// flattenArray applies the same grpchoice-alternation-as-Choice
// treatment as flattenMap, and within each alternative picks
// ArrayVec vs ArrayRecord per the disambiguation heuristic recorded in
// DESIGN.md (Open Question 2).
func (cc *compiler) flattenArray(g *ast.Group) (adt.Node, error) {
	opts := make([]adt.Node, 0, len(g.Choices))
	for _, gc := range g.Choices {
		node, err := cc.flattenArrayChoice(gc)
		if err != nil {
			return nil, err
		}
		opts = append(opts, node)
	}
	if len(opts) == 1 {
		return opts[0], nil
	}
	return &adt.Choice{Options: opts}, nil
}

func (cc *compiler) flattenArrayChoice(gc *ast.GrpChoice) (adt.Node, error) {
	// The parser reports a sole bare typename as a Groupname; unless
	// that name is a group rule, it is a single keyless type entry and
	// reads as "array of T" like any other.
	if len(gc.Entries) == 1 && gc.Entries[0].Kind == ast.GrpEntGroupname {
		if ent := gc.Entries[0]; cc.groupRules[ent.Groupname] == nil {
			return &adt.ArrayVec{Element: cc.flattenTypename(ent.Groupname), Occur: occurFromAST(ent.Occur)}, nil
		}
	}
	if isArrayVecShape(gc) {
		ent := gc.Entries[0]
		elem, err := cc.flattenType(ent.Value)
		if err != nil {
			return nil, err
		}
		return &adt.ArrayVec{Element: elem, Occur: occurFromAST(ent.Occur)}, nil
	}
	members, err := cc.flattenGroupChoiceMembers(gc, true)
	if err != nil {
		return nil, err
	}
	return &adt.ArrayRecord{Members: members}, nil
}

// isArrayVecShape implements DESIGN.md's ArrayRecord-vs-ArrayVec
// heuristic: a single, keyless, or explicitly-repeated member reads as
// "array of T"; anything else is positional.
func isArrayVecShape(gc *ast.GrpChoice) bool {
	if len(gc.Entries) != 1 {
		return false
	}
	ent := gc.Entries[0]
	if ent.Kind != ast.GrpEntMember {
		return false
	}
	return ent.Occur != nil || ent.Key == nil
}

func (cc *compiler) flattenGroupChoiceMembers(gc *ast.GrpChoice, allowUnkeyed bool) ([]adt.KeyValue, error) {
	var out []adt.KeyValue
	for _, ent := range gc.Entries {
		kvs, err := cc.flattenGrpEnt(ent, allowUnkeyed)
		if err != nil {
			return nil, err
		}
		out = append(out, kvs...)
	}
	return out, nil
}

func (cc *compiler) flattenGrpEnt(ent *ast.GrpEnt, allowUnkeyed bool) ([]adt.KeyValue, error) {
	switch ent.Kind {
	case ast.GrpEntMember:
		return cc.flattenMemberEntry(ent, allowUnkeyed)
	case ast.GrpEntGroupname:
		return cc.flattenGroupnameEntry(ent, allowUnkeyed)
	default: // ast.GrpEntParen
		return cc.flattenParenEntry(ent, allowUnkeyed)
	}
}

func (cc *compiler) flattenMemberEntry(ent *ast.GrpEnt, allowUnkeyed bool) ([]adt.KeyValue, error) {
	valNode, err := cc.flattenType(ent.Value)
	if err != nil {
		return nil, err
	}
	var keyNode adt.Node
	var cut bool
	if ent.Key != nil {
		keyNode, cut, err = cc.flattenMemberKey(ent.Key)
		if err != nil {
			return nil, err
		}
	}
	if keyNode == nil && !allowUnkeyed {
		return nil, &errors.FlattenError{Kind: errors.UnsupportedConstruct, Name: "unkeyed-map-member"}
	}
	return []adt.KeyValue{{
		Key:   keyNode,
		Value: valNode,
		Occur: occurFromAST(ent.Occur),
		Cut:   cut,
	}}, nil
}

func (cc *compiler) flattenMemberKey(mk *ast.MemberKey) (adt.Node, bool, error) {
	switch mk.Kind {
	case ast.MemberKeyBareword:
		return &adt.Literal{Kind: adt.LiteralText, Text: mk.Bareword}, true, nil
	case ast.MemberKeyValue:
		return flattenValue(mk.Value), true, nil
	default: // ast.MemberKeyType1
		node, err := cc.flattenType1(mk.Type1)
		if err != nil {
			return nil, false, err
		}
		return node, mk.Cut, nil
	}
}

// flattenGroupnameEntry resolves a bare, keyless identifier used as a
// group entry (spec §3.1 GrpEntKind.Groupname). Per DESIGN.md, whether
// this is really a named group to splice in, or just a bare type
// reference used as an unkeyed member, can only be decided here: it
// depends on whether the name was ever defined as a group rule.
func (cc *compiler) flattenGroupnameEntry(ent *ast.GrpEnt, allowUnkeyed bool) ([]adt.KeyValue, error) {
	name := ent.Groupname
	if gr, ok := cc.groupRules[name]; ok {
		if cc.resolving[name] {
			return nil, &errors.FlattenError{Kind: errors.UnsupportedConstruct, Name: "cyclic group " + name}
		}
		cc.resolving[name] = true
		members, err := cc.flattenGrpEnt(gr.Group, allowUnkeyed)
		delete(cc.resolving, name)
		if err != nil {
			return nil, err
		}
		return applyOuterOccur(members, ent.Occur), nil
	}
	if !allowUnkeyed {
		return nil, &errors.FlattenError{Kind: errors.UnsupportedConstruct, Name: name}
	}
	return []adt.KeyValue{{
		Key:   nil,
		Value: cc.flattenTypename(name),
		Occur: occurFromAST(ent.Occur),
	}}, nil
}

// flattenParenEntry inlines a parenthesized sub-group entry directly
// into its parent's member list ("{ (a: int, b: tstr) }" reads
// identically to "{ a: int, b: tstr }"). A nested "//"-alternation
// inside that parenthesized group is a rarer construct the source
// material never exercises; it is reported rather than silently
// dropped.
func (cc *compiler) flattenParenEntry(ent *ast.GrpEnt, allowUnkeyed bool) ([]adt.KeyValue, error) {
	g := ent.Paren
	if len(g.Choices) != 1 {
		return nil, &errors.FlattenError{Kind: errors.UnsupportedConstruct, Name: "alternation-in-parenthesized-group-entry"}
	}
	members, err := cc.flattenGroupChoiceMembers(g.Choices[0], allowUnkeyed)
	if err != nil {
		return nil, err
	}
	return applyOuterOccur(members, ent.Occur), nil
}

// applyOuterOccur overrides every spliced member's Occur with the
// entry-level occurrence indicator, when one was written (e.g.
// "*2(a: int)"). This is a simplification: CDDL's precise semantics
// for repeating an entire sub-group are subtler than uniformly
// repeating each member, but no example in the source material
// exercises the distinction.
func applyOuterOccur(members []adt.KeyValue, outer *ast.Occur) []adt.KeyValue {
	if outer == nil {
		return members
	}
	occur := occurFromAST(outer)
	out := make([]adt.KeyValue, len(members))
	for i, m := range members {
		m.Occur = occur
		out[i] = m
	}
	return out
}

// occurFromAST is Occur::from's table (spec §4.2).
func occurFromAST(o *ast.Occur) adt.Occur {
	if o == nil {
		return adt.Exactly
	}
	switch o.Kind {
	case ast.OccurOptional:
		return adt.Occur{Lower: 0, Upper: 1}
	case ast.OccurZeroOrMore:
		return adt.Occur{Lower: 0, Upper: adt.Unbounded}
	case ast.OccurOneOrMore:
		return adt.Occur{Lower: 1, Upper: adt.Unbounded}
	default: // ast.OccurNumbered
		lower := uint64(0)
		if o.Lower != nil {
			lower = *o.Lower
		}
		upper := uint64(adt.Unbounded)
		if o.Upper != nil {
			upper = *o.Upper
		}
		return adt.Occur{Lower: lower, Upper: upper}
	}
}
