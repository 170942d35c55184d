// Copyright I, Voyager project contributors.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var compileCmd = &cobra.Command{
	Use:   "compile [flags] table_file(s)",
	Short: "compile table files into a typed database and summarise it.",
	Long: `Compile a given set of tab-delimited table files into a typed, cross-referenced
	 database, reporting a per-table summary on success.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		db := compileTables(cmd, args)
		//
		names := db.TableNames()
		sort.Strings(names)
		//
		for _, name := range names {
			t := db.Table(name)
			fmt.Printf("%s: %d rows, %d columns\n", name, t.Height(), len(t.ColumnNames()))
		}
	},
}

func init() {
	rootCmd.AddCommand(compileCmd)
}
