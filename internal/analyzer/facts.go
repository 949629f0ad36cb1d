package analyzer

import (
	"regexp"
	"strings"
)

// RoutingPattern describes how a project organizes its routes.
type RoutingPattern string

const (
	PatternDirect    RoutingPattern = "direct"
	PatternBlueprint RoutingPattern = "blueprint"
	PatternFactory   RoutingPattern = "factory"
	PatternUnknown   RoutingPattern = "unknown"
)

// RunMethod describes how the development server should be started.
type RunMethod string

const (
	// RunDirect executes the main file with the interpreter.
	RunDirect RunMethod = "direct"
	// RunFlask hands the app reference to `flask run`.
	RunFlask RunMethod = "flask-run"
)

// SourceFileFact records the structural signals observed in a single source
// file. (Each boolean is computed by an independent predicate; they are not
// mutually exclusive.)
type SourceFileFact struct {
	RelPath           string `yaml:"path"`
	ImportsFlask      bool   `yaml:"imports_flask"`
	DeclaresRoute     bool   `yaml:"declares_route"`
	DeclaresBlueprint bool   `yaml:"declares_blueprint"`
	IsFactory         bool   `yaml:"is_factory"`
	CreatesApp        bool   `yaml:"creates_app"`
	HasRunEntrypoint  bool   `yaml:"has_run_entrypoint"`
	AppVariable       string `yaml:"app_variable,omitempty"`
}

// HasSignal reports whether the file shows any sign of using Flask. Files
// without a signal are dropped from the analysis.
func (f *SourceFileFact) HasSignal() bool {
	return f.ImportsFlask || f.DeclaresRoute || f.DeclaresBlueprint ||
		f.IsFactory || f.CreatesApp
}

// Blueprint is a route grouping registered against the main application.
// A blueprint that is registered but never declared in a scanned file keeps
// its registration variable name standing in for the declared name.
type Blueprint struct {
	Name     string `yaml:"name"`
	Variable string `yaml:"variable"`
	File     string `yaml:"file"`
}

// Factory is an application factory function and the file defining it.
type Factory struct {
	Function string `yaml:"function"`
	File     string `yaml:"file"`
}

// ProjectInfo is the result of one analysis pass. It is rebuilt wholesale on
// every call and never mutated incrementally.
type ProjectInfo struct {
	Root           string           `yaml:"root"`
	Files          []SourceFileFact `yaml:"files"`
	RoutingPattern RoutingPattern   `yaml:"routing_pattern"`
	MainFile       string           `yaml:"main_file,omitempty"`
	Blueprints     []Blueprint      `yaml:"blueprints,omitempty"`
	Factory        *Factory         `yaml:"factory,omitempty"`
	RecommendedRun RunMethod        `yaml:"recommended_run_method"`
}

// AppVariablePatterns are the ordered alternatives used to extract the
// variable bound to an application instance. First match wins.
var AppVariablePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\w+)\s*=\s*Flask\s*\(`),
	regexp.MustCompile(`(\w+)\s*=\s*create_app\s*\(`),
	regexp.MustCompile(`(\w+)\s*=\s*[\w.]+\.create_app\s*\(`),
}

var (
	reCreatesApp = []*regexp.Regexp{
		regexp.MustCompile(`\w+\s*=\s*Flask\s*\(`),
		regexp.MustCompile(`\w+\s*=\s*create_app\s*\(`),
		regexp.MustCompile(`\w+\s*=\s*[\w.]+\.create_app\s*\(`),
	}
)

// filePredicate is one independent structural test over a file's full text.
type filePredicate struct {
	ID    string
	Match func(content string) bool
	Apply func(fact *SourceFileFact)
}

// defaultPredicates returns the predicate table applied to every scanned
// file. Predicates are pure functions over the file text, which keeps them
// individually testable.
func defaultPredicates() []filePredicate {
	return []filePredicate{
		{
			ID: "imports-flask",
			Match: func(c string) bool {
				return contains(c, "from flask import") || contains(c, "import flask")
			},
			Apply: func(f *SourceFileFact) { f.ImportsFlask = true },
		},
		{
			ID: "declares-route",
			Match: func(c string) bool {
				return contains(c, "@app.route") || contains(c, "@main.route") || contains(c, ".route(")
			},
			Apply: func(f *SourceFileFact) { f.DeclaresRoute = true },
		},
		{
			ID: "declares-blueprint",
			Match: func(c string) bool {
				return contains(c, "Blueprint(") || contains(c, "register_blueprint")
			},
			Apply: func(f *SourceFileFact) { f.DeclaresBlueprint = true },
		},
		{
			ID: "factory-definition",
			Match: func(c string) bool {
				return factoryDefRe.MatchString(c) && contains(c, "return app")
			},
			Apply: func(f *SourceFileFact) { f.IsFactory = true },
		},
		{
			ID: "creates-app",
			Match: func(c string) bool {
				for _, re := range reCreatesApp {
					if re.MatchString(c) {
						return true
					}
				}
				return false
			},
			Apply: func(f *SourceFileFact) { f.CreatesApp = true },
		},
		{
			ID: "run-entrypoint",
			Match: func(c string) bool {
				return contains(c, "app.run(") ||
					(contains(c, "__name__") && contains(c, "__main__"))
			},
			Apply: func(f *SourceFileFact) { f.HasRunEntrypoint = true },
		},
	}
}

// factoryDefRe matches application factory definitions by conventional name.
var factoryDefRe = regexp.MustCompile(`def\s+(create_app|make_app|app_factory)\s*\(`)

// classify evaluates every predicate against the file text and extracts the
// app variable name.
func classify(relPath, content string) SourceFileFact {
	fact := SourceFileFact{RelPath: relPath}
	for _, p := range defaultPredicates() {
		if p.Match(content) {
			p.Apply(&fact)
		}
	}
	fact.AppVariable = extractAppVariable(content)
	return fact
}

// extractAppVariable returns the first app-instance assignment found, trying
// the ordered pattern alternatives.
func extractAppVariable(content string) string {
	for _, re := range AppVariablePatterns {
		if m := re.FindStringSubmatch(content); m != nil {
			return m[1]
		}
	}
	return ""
}

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}
