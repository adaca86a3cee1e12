// SPDX-License-Identifier: Apache-2.0
package main

import (
	"github.com/spf13/cobra"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the ifppc CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ifppc",
		Short: "ifppc - item filter post-processor compiler",
		Long: `ifppc compiles item-filter source into a flat native filter,
flattening rule/group/modifier blocks through set
operations over their conditions.`,
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")

	cmd.AddCommand(NewCompileCmd())

	return cmd
}
