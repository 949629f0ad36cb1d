package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flaskstudio/flaskstudio/internal/analyzer"
	"github.com/flaskstudio/flaskstudio/internal/launcher"
	"github.com/flaskstudio/flaskstudio/internal/locator"
	"github.com/flaskstudio/flaskstudio/internal/output"
	"github.com/flaskstudio/flaskstudio/internal/pyenv"
)

// DoctorCmd creates and returns the 'doctor' command
func DoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor [project-path]",
		Short: "Check a project's environment and launchability",
		Long: `Runs the checks serve performs, without starting a server:
interpreter discovery, Flask availability, launcher string resolution,
and an out-of-process load of the application.

Example:
  flaskstudio doctor ./myproject`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := projectRoot(args)
			ctx := cmd.Context()
			healthy := true

			a := analyzer.New(analyzer.Options{})
			info, err := a.Analyze(ctx, root)
			if err != nil {
				output.Error("Project scan failed: " + err.Error())
				os.Exit(1)
			}
			if len(info.Files) == 0 {
				output.Warn("No Python files found under " + info.Root)
			} else {
				output.Success(fmt.Sprintf("Scanned %d Python files", len(info.Files)))
			}

			python := pyenv.DetectInterpreter(info.Root)
			if pyenv.InVirtualenv(info.Root, python) {
				output.Success("Virtualenv interpreter: " + python)
			} else {
				output.Warn("No virtualenv found, using " + python)
			}

			if version, err := pyenv.Version(ctx, python); err == nil {
				output.Success(version)
			} else {
				output.Error("Interpreter not runnable: " + err.Error())
				healthy = false
			}

			if version, err := pyenv.CheckFlask(ctx, python); err == nil {
				output.Success("Flask " + version)
			} else {
				output.Error("Flask is not importable")
				output.Step("pip install flask")
				healthy = false
			}

			ref := locator.Locate(info.Root, info.MainFile)
			output.Info("Launcher string: " + ref)

			module := ref
			if i := strings.IndexByte(module, ':'); i >= 0 {
				module = module[:i]
			}
			if pyenv.CheckImport(ctx, python, info.Root, module) {
				output.Success("Module " + module + " imports cleanly")
			} else {
				output.Warn("Module " + module + " did not import on its own")
			}

			v := launcher.NewValidator(python, info.Root)
			if err := v.Validate(ctx, ref); err == nil {
				output.Success("Application loads cleanly")
			} else {
				output.Error("Application failed to load: " + err.Error())
				for _, alt := range locator.Alternatives(info.Root, info.MainFile) {
					output.Step("try --app " + alt)
				}
				healthy = false
			}

			if !healthy {
				os.Exit(1)
			}
			return nil
		},
	}

	return cmd
}
