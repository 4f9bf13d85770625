package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/todo/internal/cli"
	"github.com/example/todo/internal/version"
	"github.com/example/todo/internal/wire"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "todo",
		Short:   "todo - a small task list",
		Version: version.String(),
		Long: `todo keeps a list of tasks with a title, a description and a done flag.
Tasks are stored in a local sqlite database.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			showMetrics, _ := cmd.Flags().GetBool("metrics")
			if !showMetrics {
				return nil
			}
			return wire.Metrics().WriteSummary(cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().Bool("metrics", false, "Print store operation counts after the command")

	// Screens
	rootCmd.AddCommand(cli.ListCmd())
	rootCmd.AddCommand(cli.SearchCmd())
	rootCmd.AddCommand(cli.AddCmd())
	rootCmd.AddCommand(cli.EditCmd())
	rootCmd.AddCommand(cli.ToggleCmd())
	rootCmd.AddCommand(cli.RemoveCmd())
	rootCmd.AddCommand(cli.ShareCmd())

	// Setup
	rootCmd.AddCommand(cli.ConfigCmd())

	err := rootCmd.Execute()
	if closeErr := wire.Close(); closeErr != nil {
		fmt.Fprintln(os.Stderr, closeErr)
	}
	if err != nil {
		if !errors.Is(err, cli.ErrReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
