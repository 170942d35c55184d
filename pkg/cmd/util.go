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

	"github.com/ivoyager/ivoyager-tables/pkg/compiler"
	"github.com/ivoyager/ivoyager-tables/pkg/table"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// GetFlag gets an expected flag, or exits if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetString gets an expected string flag, or exits if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetStringArray gets an expected string-array flag, or exits if an error
// arises.
func GetStringArray(cmd *cobra.Command, flag string) []string {
	r, err := cmd.Flags().GetStringArray(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Compile the given table files according to the persistent flags, reporting
// every schema error with source highlighting and exiting on failure.
func compileTables(cmd *cobra.Command, args []string) *table.Database {
	if GetFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	}
	//
	opts := []compiler.Option{
		compiler.WithPrecision(GetFlag(cmd, "precision")),
		compiler.WithTitleFields(GetStringArray(cmd, "titles")...),
	}
	// An optional project file supplies units, enums and constants.
	if filename := GetString(cmd, "project"); filename != "" {
		project, err := LoadProject(filename)
		//
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		projectOpts, err := project.Options()
		//
		if err != nil {
			fmt.Printf("%s: %s\n", filename, err)
			os.Exit(2)
		}
		//
		opts = append(opts, projectOpts...)
	}
	//
	db, errors := compiler.Compile(args, opts...)
	//
	if len(errors) > 0 {
		for i := range errors {
			fmt.Println(errors[i].Format())
		}
		//
		os.Exit(4)
	}
	//
	return db
}
