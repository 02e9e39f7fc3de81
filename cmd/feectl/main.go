// Command feectl is the operator CLI for the fee engine
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "feectl",
		Short:         "Operate the fee and commission engine",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(quoteCmd())
	root.AddCommand(sweepCmd())
	root.AddCommand(tokenCmd())
	root.AddCommand(migrateCmd())
	return root
}
