package commands

import (
	"github.com/spf13/cobra"

	"github.com/flaskstudio/flaskstudio"
	"github.com/flaskstudio/flaskstudio/internal/output"
)

// RootCmd creates and returns the root command for the Flask Studio CLI
func RootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "flaskstudio",
		Short: "Analyze and run Flask projects without the guesswork",
		Long: `Flask Studio inspects a Flask project, figures out how it is wired,
and runs its development server with the right launcher string.

It helps you:
• Understand a project's structure (blueprints, factories, entry points)
• Derive the FLASK_APP value flask run needs
• Start and supervise the dev server with sensible recovery`,
		Version: flaskstudio.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			output.SetVerbose(verbose)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging")

	return cmd
}

// projectRoot resolves the positional project argument, defaulting to the
// current directory.
func projectRoot(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}
