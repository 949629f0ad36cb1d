// Package locator resolves the "module:variable" reference string the Flask
// CLI needs to find the application object.
//
// No single detection pattern is reliable on unannotated source text, so
// strategies are layered from most specific (project-aware) to least specific
// (blind convention). Each strategy is a pure function over file contents
// that either produces a confident answer or defers to the next one.
package locator

import (
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/flaskstudio/flaskstudio/internal/analyzer"
)

// DefaultAppVariable is assumed when no explicit assignment can be found.
const DefaultAppVariable = "app"

// Context carries everything a strategy may inspect.
type Context struct {
	Root     string
	MainFile string // relative path of the chosen entry file

	readFile func(string) (string, error)
}

// NewContext builds a strategy context for a project. mainFile is the path
// chosen by the analyzer, relative to root.
func NewContext(root, mainFile string) *Context {
	return &Context{
		Root:     root,
		MainFile: mainFile,
		readFile: func(rel string) (string, error) {
			data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
			return string(data), err
		},
	}
}

// strategy produces a launcher string or defers.
type strategy struct {
	name string
	fn   func(*Context) (string, bool)
}

// strategies is the ordered cascade. First success wins.
var strategies = []strategy{
	{"project-suffix-file", projectSuffixStrategy},
	{"direct-assignment", directAssignmentStrategy},
	{"wsgi-sibling", wsgiSiblingStrategy},
	{"factory-usage", factoryUsageStrategy},
	{"exhaustive-scan", exhaustiveScanStrategy},
}

// Locate resolves the launcher string for a project. It never returns the
// empty string: on total ambiguity it falls back to "<mainModule>:app".
func Locate(root, mainFile string) string {
	ctx := NewContext(root, mainFile)
	for _, s := range strategies {
		if ref, ok := s.fn(ctx); ok {
			return ref
		}
	}
	if mainFile == "" {
		return DefaultAppVariable + ":" + DefaultAppVariable
	}
	return ModulePath(mainFile) + ":" + DefaultAppVariable
}

// ModulePath converts a relative source path into a dotted module path.
// Package-init files resolve to their package: pkg/__init__.py -> pkg.
func ModulePath(relPath string) string {
	p := filepath.ToSlash(relPath)
	p = strings.TrimSuffix(p, ".py")
	p = strings.ReplaceAll(p, "/", ".")
	p = strings.TrimSuffix(p, ".__init__")
	if p == "__init__" {
		// An __init__.py at the root has no importable package name; fall
		// back to the bare name and let validation reject it.
		return "__init__"
	}
	return p
}

// Line-anchored assignment patterns, in fixed priority order. Anchoring at
// line start avoids matching inside nested blocks or strings.
var directAssignPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?m)^(\w+)\s*=\s*Flask\s*\(`),
	regexp.MustCompile(`(?m)^(\w+)\s*=\s*create_app\s*\(`),
	regexp.MustCompile(`(?m)^(\w+)\s*=\s*[\w.]+\.create_app\s*\(`),
	regexp.MustCompile(`(?m)^(\w+)\s*=\s*application\b`),
}

// projectSuffixStrategy trusts files named like <something>app.py: when the
// main file's basename ends in the conventional "app" suffix (and is longer
// than the suffix itself), that module is authoritative.
func projectSuffixStrategy(ctx *Context) (string, bool) {
	if ctx.MainFile == "" {
		return "", false
	}
	base := strings.TrimSuffix(path.Base(ctx.MainFile), ".py")
	if !strings.HasSuffix(base, "app") || len(base) <= 3 {
		return "", false
	}

	module := ModulePath(ctx.MainFile)
	content, err := ctx.readFile(ctx.MainFile)
	if err != nil {
		return module + ":" + DefaultAppVariable, true
	}
	for _, re := range analyzer.AppVariablePatterns {
		if m := re.FindStringSubmatch(content); m != nil {
			return module + ":" + m[1], true
		}
	}
	return module + ":" + DefaultAppVariable, true
}

// directAssignmentStrategy scans the main file for a line-anchored
// app-instance assignment; the first matching pattern in priority order wins.
func directAssignmentStrategy(ctx *Context) (string, bool) {
	if ctx.MainFile == "" {
		return "", false
	}
	content, err := ctx.readFile(ctx.MainFile)
	if err != nil {
		return "", false
	}
	for _, re := range directAssignPatterns {
		if m := re.FindStringSubmatch(content); m != nil {
			return ModulePath(ctx.MainFile) + ":" + m[1], true
		}
	}
	return "", false
}

// wsgiConventionalNames are sibling files commonly exposing the app object.
var wsgiConventionalNames = []string{"wsgi.py", "application.py", "app.py"}

// wsgiSiblingStrategy prefers a conventional WSGI file next to the project
// root when it differs from the main file and exposes a detectable instance.
func wsgiSiblingStrategy(ctx *Context) (string, bool) {
	for _, name := range wsgiConventionalNames {
		if ctx.MainFile != "" && path.Base(ctx.MainFile) == name {
			continue
		}
		content, err := ctx.readFile(name)
		if err != nil {
			continue
		}
		if v := wsgiAppVariable(content); v != "" {
			return strings.TrimSuffix(name, ".py") + ":" + v, true
		}
	}
	return "", false
}

var wsgiVariablePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?m)^(app)\s*=\s*Flask\s*\(`),
	regexp.MustCompile(`(?m)^(application)\s*=\s*Flask\s*\(`),
	regexp.MustCompile(`(?m)^(app)\s*=\s*create_app\s*\(`),
	regexp.MustCompile(`(?m)^(application)\s*=\s*create_app\s*\(`),
	regexp.MustCompile(`(?m)^(app)\s*=\s*[\w.]+\s*\(`),
	regexp.MustCompile(`(?m)^(application)\s*=\s*[\w.]+\s*\(`),
}

func wsgiAppVariable(content string) string {
	for _, re := range wsgiVariablePatterns {
		if m := re.FindStringSubmatch(content); m != nil {
			return m[1]
		}
	}
	return ""
}

var factoryCallPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?m)^(\w+)\s*=\s*create_app\s*\(`),
	regexp.MustCompile(`(?m)^(\w+)\s*=\s*[\w.]+\.create_app\s*\(`),
}

// factoryUsageStrategy handles factory-pattern projects. If the main file
// imports a factory and binds its result, the binding wins; otherwise the
// factory module itself is reported. A bare module path (no ":variable")
// tells the Flask CLI to call the factory.
func factoryUsageStrategy(ctx *Context) (string, bool) {
	factories := findFactories(ctx)
	if len(factories) == 0 {
		return "", false
	}

	if ctx.MainFile != "" {
		content, err := ctx.readFile(ctx.MainFile)
		if err == nil && strings.Contains(content, factories[0].function) {
			for _, re := range factoryCallPatterns {
				if m := re.FindStringSubmatch(content); m != nil {
					return ModulePath(ctx.MainFile) + ":" + m[1], true
				}
			}
		}
	}

	return factories[0].module, true
}

type factoryDef struct {
	module   string
	function string
	file     string
}

var factoryDefRe = regexp.MustCompile(`def\s+(create_app|make_app|app_factory)\s*\(`)

// findFactories locates factory-function definitions project-wide, in
// deterministic walk order.
func findFactories(ctx *Context) []factoryDef {
	var defs []factoryDef
	for _, rel := range sourceFiles(ctx.Root) {
		content, err := ctx.readFile(rel)
		if err != nil {
			continue
		}
		if m := factoryDefRe.FindStringSubmatch(content); m != nil {
			defs = append(defs, factoryDef{
				module:   ModulePath(rel),
				function: m[1],
				file:     rel,
			})
		}
	}
	return defs
}
