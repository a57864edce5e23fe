package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "heroes",
		Short:         "Hero roster web service",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(newServeCommand(), newMigrateCommand())

	return root
}
