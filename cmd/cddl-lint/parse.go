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

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cddl.dev/go/cddl"
)

func newParseCmd() *cobra.Command {
	var slice bool
	cmd := &cobra.Command{
		Use:   "parse <schema.cddl>",
		Short: "Parse a CDDL file and report success or a parse error",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			if slice {
				rules, err := cddl.SliceParseCDDL(string(src))
				if err != nil {
					return err
				}
				for _, r := range rules {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\n", r.Source)
				}
				return nil
			}
			if _, err := cddl.ParseCDDL(string(src)); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
	cmd.Flags().BoolVar(&slice, "slice", false, "print each rule's source substring instead of just ok")
	return cmd
}
