package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/flaskstudio/flaskstudio/internal/analyzer"
	"github.com/flaskstudio/flaskstudio/internal/output"
)

// AnalyzeCmd creates and returns the 'analyze' command
func AnalyzeCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "analyze [project-path]",
		Short: "Inspect a Flask project's structure",
		Long: `Scans the project tree and reports what it finds:
• Routing pattern (direct, blueprints, or application factory)
• The main entry file
• Declared and registered blueprints

Example:
  flaskstudio analyze ./myproject`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := projectRoot(args)

			a := analyzer.New(analyzer.Options{})
			info, err := a.Analyze(cmd.Context(), root)
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			if format == "yaml" {
				data, err := yaml.Marshal(info)
				if err != nil {
					return err
				}
				fmt.Print(string(data))
				return nil
			}

			printReport(info)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "Output format: text or yaml")

	return cmd
}

func printReport(info *analyzer.ProjectInfo) {
	output.Info(fmt.Sprintf("Project: %s", info.Root))
	output.Step(fmt.Sprintf("Python files scanned: %d", len(info.Files)))
	output.Step(fmt.Sprintf("Routing pattern: %s", patternLabel(info.RoutingPattern)))

	if info.MainFile != "" {
		output.Step(fmt.Sprintf("Main file: %s", info.MainFile))
	} else {
		output.Warn("No main entry file identified")
	}

	if info.Factory != nil {
		output.Step(fmt.Sprintf("Application factory: %s() in %s", info.Factory.Function, info.Factory.File))
	}

	if len(info.Blueprints) > 0 {
		output.Info(fmt.Sprintf("Blueprints (%d):", len(info.Blueprints)))
		for _, bp := range info.Blueprints {
			output.Step(fmt.Sprintf("%s (%s) in %s", bp.Name, bp.Variable, bp.File))
		}
	}

	output.Step(fmt.Sprintf("Recommended run method: %s", info.RecommendedRun))
}

func patternLabel(p analyzer.RoutingPattern) string {
	switch p {
	case analyzer.PatternFactory:
		return "application factory"
	case analyzer.PatternBlueprint:
		return "blueprints"
	case analyzer.PatternDirect:
		return "direct routes"
	default:
		return "unknown"
	}
}
