package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/budgie-dev/budgie/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "budgie",
		Short:   "Family budget tracking and expense ingestion",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newReprocessCommand())
	rootCmd.AddCommand(newRecurringCommand())
	rootCmd.AddCommand(newErrorsCommand())

	return rootCmd
}
