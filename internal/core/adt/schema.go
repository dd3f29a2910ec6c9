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

package adt

// Schema is a name -> Node mapping: the flattened output of a CDDL
// document (spec §3.2). It is immutable once internal/core/compile
// hands it back, and may be shared across goroutines for read-only
// validation (spec §5).
type Schema struct {
	Rules map[string]Node
	// Root is the name of the first rule the document declared, the
	// conventional default validation entry point.
	Root string
}

// Lookup returns the node bound to name, or nil if no such rule
// exists.
func (s *Schema) Lookup(name string) Node {
	if s == nil {
		return nil
	}
	return s.Rules[name]
}
