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
	"os"

	"github.com/ivoyager/ivoyager-tables/pkg/table"
	"github.com/ivoyager/ivoyager-tables/pkg/util/termio"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [flags] table_name table_file(s)",
	Short: "compile table files and print one table.",
	Long: `Compile a given set of table files, then pretty-print the named table,
	 including values imputed from column defaults.`,
	Args: cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		db := compileTables(cmd, args[1:])
		name := args[0]
		//
		if !db.HasTable(name) {
			fmt.Printf("unknown table %s\n", name)
			os.Exit(2)
		}
		//
		printTable(db.Table(name))
	},
}

func printTable(t *table.Table) {
	columns := t.ColumnNames()
	printer := termio.NewTablePrinter(uint(len(columns)+1), uint(t.Height()+1))
	// Header
	printer.Set(0, 0, "name")
	//
	for j, name := range columns {
		printer.Set(uint(j+1), 0, name)
	}
	//
	printer.RuleAfter(0)
	// Body
	for row := 0; row < t.Height(); row++ {
		if rows := t.Rows(); rows != nil {
			printer.Set(0, uint(row+1), rows.NameOf(row))
		}
		//
		for j, name := range columns {
			printer.Set(uint(j+1), uint(row+1), t.Column(name).Get(row).String())
		}
	}
	// Bound column widths to the terminal where possible.
	if term.IsTerminal(0) {
		if width, _, err := term.GetSize(0); err == nil && len(columns) > 0 {
			printer.SetMaxWidths(uint(max(8, width/(len(columns)+1)-3)))
		}
	}
	//
	printer.Print(os.Stdout)
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
