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

// Command cddl-lint is a non-core CLI over the public cddl package
// (parse and validate subcommands), in the same spirit as cmd/cue's
// cobra-based command tree but scoped to this module's much smaller
// surface: it imports only cddl.dev/go/cddl and its format adapters,
// and nothing in the core imports it back (spec §6: "no CLI in the
// core").
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "cddl-lint",
		Short:         "Parse and validate CDDL schemas and instance documents",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newParseCmd())
	root.AddCommand(newValidateCmd())
	return root
}
