package analyzer

import (
	"path"
	"path/filepath"
	"strings"
)

// conventionalNames are generic entry-point filenames, in priority order.
var conventionalNames = []string{"wsgi.py", "app.py", "run.py", "main.py", "server.py"}

// priorityNames builds the ordered filename priority list for a project.
// Project-name-derived filenames rank ahead of the generic conventions, so a
// tree like myshop/myshopapp.py beats a stray app.py in a subpackage.
func priorityNames(root string) []string {
	project := strings.ToLower(filepath.Base(root))
	names := []string{project + "app.py", project + ".py"}
	return append(names, conventionalNames...)
}

// selectMainFile runs the entry-point cascade. Each step narrows the
// candidate subset; ties inside a step are broken by walk order, which is
// deterministic (lexicographic traversal).
func selectMainFile(root string, facts []SourceFileFact, contents map[string]string) string {
	priorities := priorityNames(root)

	// Step a: priority names among files with a run entrypoint.
	var runnable []SourceFileFact
	for _, f := range facts {
		if f.HasRunEntrypoint {
			runnable = append(runnable, f)
		}
	}
	if match := matchPriority(priorities, runnable); match != "" {
		return match
	}

	// Step b: priority names among app-creating files. Package-init files
	// are excluded; they rarely serve as direct run targets.
	var creators []SourceFileFact
	for _, f := range facts {
		if f.CreatesApp && !isPackageInit(f.RelPath) {
			creators = append(creators, f)
		}
	}
	if match := matchPriority(priorities, creators); match != "" {
		return match
	}

	// Step c: first runnable file in walk order.
	if len(runnable) > 0 {
		return runnable[0].RelPath
	}

	// Step d: factory-pattern projects whose entry file matches no filename
	// convention. The combined signal is: imports a factory and either binds
	// its result to an app-like variable or carries a main guard.
	for _, f := range facts {
		c, ok := contents[f.RelPath]
		if !ok || !strings.Contains(c, "create_app") {
			continue
		}
		if strings.Contains(c, "app = create_app()") ||
			strings.Contains(c, "application = create_app()") ||
			(strings.Contains(c, "__name__") && strings.Contains(c, "__main__")) {
			return f.RelPath
		}
	}

	// Step e: first factory-defining file, preferring one outside a
	// package-init.
	var firstFactory string
	for _, f := range facts {
		if !f.IsFactory {
			continue
		}
		if firstFactory == "" {
			firstFactory = f.RelPath
		}
		if !isPackageInit(f.RelPath) {
			return f.RelPath
		}
	}
	return firstFactory
}

// matchPriority returns the first candidate whose basename matches the
// highest-ranked priority name. Names compare case-insensitively; candidates
// keep walk order inside each name.
func matchPriority(priorities []string, candidates []SourceFileFact) string {
	for _, name := range priorities {
		for _, f := range candidates {
			base := path.Base(f.RelPath)
			if base == name || strings.EqualFold(base, name) {
				return f.RelPath
			}
		}
	}
	return ""
}

func isPackageInit(relPath string) bool {
	return path.Base(relPath) == "__init__.py"
}
