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
	"strings"

	"github.com/spf13/cobra"

	"cddl.dev/go/adapter/cbor"
	"cddl.dev/go/adapter/json"
	"cddl.dev/go/cddl"
)

func newValidateCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "validate <schema.cddl> <rule> <instance-file>",
		Short: "Validate an instance document against a CDDL rule",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			schemaSrc, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			rule := args[1]
			data, err := os.ReadFile(args[2])
			if err != nil {
				return err
			}

			schema, err := cddl.FlattenFromString(string(schemaSrc))
			if err != nil {
				return err
			}

			switch strings.ToLower(format) {
			case "cbor":
				return reportValidate(cmd, cddl.ValidateCBOR(schema, rule, data))
			case "json":
				decoded, err := json.Decode(data)
				if err != nil {
					return err
				}
				return reportValidate(cmd, cddl.Validate(schema, rule, decoded))
			default:
				decoded, err := cbor.Decode(data)
				if err != nil {
					return err
				}
				return reportValidate(cmd, cddl.Validate(schema, rule, decoded))
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "cbor", `instance document format: "cbor" or "json"`)
	return cmd
}

func reportValidate(cmd *cobra.Command, err error) error {
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "ok")
	return nil
}
