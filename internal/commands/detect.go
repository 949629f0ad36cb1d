package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/flaskstudio/flaskstudio/internal/analyzer"
	"github.com/flaskstudio/flaskstudio/internal/locator"
	"github.com/flaskstudio/flaskstudio/internal/output"
)

// DetectCmd creates and returns the 'detect' command
func DetectCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "detect [project-path]",
		Short: "Derive the FLASK_APP launcher string for a project",
		Long: `Works out the module:variable reference flask run needs to find
the application, without starting anything.

Example:
  flaskstudio detect ./myproject
  FLASK_APP=$(flaskstudio detect ./myproject) flask run`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := projectRoot(args)

			a := analyzer.New(analyzer.Options{})
			info, err := a.Analyze(cmd.Context(), root)
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			primary := locator.Locate(info.Root, info.MainFile)
			fmt.Println(primary)

			if all {
				for _, alt := range locator.Alternatives(info.Root, info.MainFile) {
					if alt != primary {
						output.Step(alt)
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Also list alternative launcher strings")

	return cmd
}
