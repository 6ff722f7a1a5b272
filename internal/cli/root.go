// Package cli defines the portfolio command tree.
package cli

import (
	"io"

	"github.com/spf13/cobra"
)

// NewRootCommand builds the root command. Running it without a
// subcommand serves the site.
func NewRootCommand(out io.Writer) *cobra.Command {
	serve := newServeCommand()

	root := &cobra.Command{
		Use:           "portfolio",
		Short:         "Personal portfolio site and record API",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          serve.RunE,
	}
	root.Flags().AddFlagSet(serve.Flags())
	root.SetOut(out)

	root.AddCommand(
		serve,
		newMigrateCommand(),
		newEmailPreviewCommand(),
	)

	return root
}
