package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/flaskstudio/flaskstudio/internal/analyzer"
	"github.com/flaskstudio/flaskstudio/internal/config"
	"github.com/flaskstudio/flaskstudio/internal/launcher"
	"github.com/flaskstudio/flaskstudio/internal/locator"
	"github.com/flaskstudio/flaskstudio/internal/output"
	"github.com/flaskstudio/flaskstudio/internal/pyenv"
)

// ServeCmd creates and returns the 'serve' command
func ServeCmd() *cobra.Command {
	var (
		port     int
		noAuto   bool
		debug    bool
		appRef   string
		python   string
		choose   bool
		direct   bool
		noRetain bool
	)

	cmd := &cobra.Command{
		Use:   "serve [project-path]",
		Short: "Run the project's Flask development server",
		Long: `Analyzes the project, derives the launcher string, and starts the
development server under supervision. Output streams to the console;
Ctrl+C stops the server cleanly.

Example:
  flaskstudio serve ./myproject --port 8080`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := projectRoot(args)
			settings := config.Load(config.DefaultPath())

			if !cmd.Flags().Changed("port") && settings.Port != 0 {
				port = settings.Port
			}
			if appRef == "" {
				appRef = settings.AppOverride
			}
			if python == "" {
				python = settings.Python
			}

			a := analyzer.New(analyzer.Options{})
			info, err := a.Analyze(cmd.Context(), root)
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			if python == "" {
				python = pyenv.DetectInterpreter(info.Root)
			}
			output.Verbose(fmt.Sprintf("Using interpreter: %s", python))

			if _, err := pyenv.CheckFlask(cmd.Context(), python); err != nil {
				output.Warn("Flask does not appear to be installed for " + python)
				output.Step("pip install flask")
			}

			var res launcher.Resolution
			err = output.WithSpinner("Resolving application reference", func() error {
				v := launcher.NewValidator(python, info.Root)
				res = launcher.ResolveLauncher(cmd.Context(), v, info, appRef)
				return nil
			})
			if err != nil {
				return err
			}
			if direct && info.MainFile != "" {
				res.Method = analyzer.RunDirect
			}

			if choose {
				ref, err := chooseLauncher(info, res.AppRef)
				if err != nil {
					return err
				}
				res.AppRef = ref
				res.Method = analyzer.RunFlask
			}

			if !res.Validated && len(res.Tried) > 0 {
				output.Warn(fmt.Sprintf("No candidate loaded cleanly; proceeding with %s", res.AppRef))
			}

			ctrl := launcher.NewController()
			attempt, handle, err := ctrl.Start(cmd.Context(), launcher.StartConfig{
				Root:     info.Root,
				Python:   python,
				Port:     port,
				AutoPort: !noAuto,
				Debug:    debug,
				Method:   res.Method,
				AppRef:   res.AppRef,
				MainFile: info.MainFile,
			})
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			if attempt.Port != port {
				output.Warn(fmt.Sprintf("Port %d busy, using %d", port, attempt.Port))
			}
			output.Info(fmt.Sprintf("Starting server (%s: %s)", res.Method, res.AppRef))

			if !noRetain {
				settings.ProjectPath = info.Root
				settings.Port = port
				settings.RunMethod = string(res.Method)
				settings.AppOverride = appRef
				settings.Debug = debug
				settings.Python = python
				if err := config.Save(config.DefaultPath(), settings); err != nil {
					output.Verbose("Could not save settings: " + err.Error())
				}
			}

			interrupt := make(chan os.Signal, 1)
			signal.Notify(interrupt, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(interrupt)

			console := output.NewStreamingWriter(os.Stdout, "server", lipgloss.Color("240"))
			events := launcher.Watch(handle, attempt.URL)

			for {
				select {
				case <-interrupt:
					output.Info("Stopping server")
					// Keep the event stream flowing so the watcher never
					// blocks while the server flushes shutdown output.
					go func() {
						for range events {
						}
					}()
					if err := ctrl.Stop(); err != nil {
						return err
					}
					output.Success("Server stopped")
					return nil
				case ev, ok := <-events:
					if !ok {
						ctrl.Release()
						return nil
					}
					switch ev.Kind {
					case launcher.EventStarted:
						output.Success("Server running at " + ev.URL)
					case launcher.EventLine:
						console.WriteLine(ev.Line)
					case launcher.EventExited:
						ctrl.Release()
						if ev.Class == launcher.FailureNone {
							output.Info("Server exited")
							return nil
						}
						output.Error("Server failed to start")
						for _, s := range ev.Suggestions {
							output.Step(s)
						}
						os.Exit(1)
					}
				}
			}
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 5000, "Port to serve on")
	cmd.Flags().BoolVar(&noAuto, "no-auto-port", false, "Fail instead of scanning for a free port")
	cmd.Flags().BoolVarP(&debug, "debug", "d", true, "Run with debug mode and reloader")
	cmd.Flags().StringVar(&appRef, "app", "", "Explicit FLASK_APP value (skips detection)")
	cmd.Flags().StringVar(&python, "python", "", "Python interpreter to use")
	cmd.Flags().BoolVar(&choose, "choose", false, "Pick the launcher string interactively")
	cmd.Flags().BoolVar(&direct, "direct", false, "Run the main file directly instead of flask run")
	cmd.Flags().BoolVar(&noRetain, "no-save", false, "Do not remember these settings")

	return cmd
}

func chooseLauncher(info *analyzer.ProjectInfo, primary string) (string, error) {
	refs := append([]string{primary}, locator.Alternatives(info.Root, info.MainFile)...)

	seen := make(map[string]bool)
	var opts []huh.Option[string]
	for _, ref := range refs {
		if seen[ref] {
			continue
		}
		seen[ref] = true
		opts = append(opts, huh.NewOption(ref, ref))
	}

	selected := primary
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Options(opts...).
				Value(&selected),
		).
			Title("Launcher Selection").
			Description("Pick the FLASK_APP reference to start with."),
	)
	if err := form.Run(); err != nil {
		return "", err
	}
	return selected, nil
}
