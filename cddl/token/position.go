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

// Package token holds the minimal source-position type shared by the
// CDDL AST and parser.
package token

import "fmt"

// Pos is a byte offset into a single CDDL source text, along with the
// 1-based line and column it corresponds to. It is deliberately
// minimal: the parser records one on each ast.Rule, and no full
// diagnostics are built from it (parse-error context snippets are
// taken from the scanner's byte offset, not from a Pos).
type Pos struct {
	Offset int
	Line   int
	Column int
}

// NoPos is the zero value, used when no position is available (e.g.
// for synthesized nodes).
var NoPos = Pos{}

func (p Pos) IsValid() bool { return p.Line > 0 }

func (p Pos) String() string {
	if !p.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
