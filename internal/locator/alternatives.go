package locator

import (
	"path"
	"path/filepath"
	"strings"
)

// Alternatives enumerates every plausible launcher string for a project, in
// decreasing order of likelihood and with duplicates removed. The controller
// walks this list when the primary guess fails to validate.
func Alternatives(root, mainFile string) []string {
	ctx := NewContext(root, mainFile)
	var alts []string

	// Conventional entry-point files that actually exist at the root.
	project := strings.ToLower(filepath.Base(root))
	entryNames := []string{
		project + "app.py", project + ".py",
		"wsgi.py", "app.py", "run.py", "main.py",
	}
	for _, name := range entryNames {
		if _, err := ctx.readFile(name); err != nil {
			continue
		}
		module := strings.TrimSuffix(name, ".py")
		alts = append(alts,
			module+":app",
			module+":application",
			module, // factory call via bare module
		)
	}

	// Candidates derived from every scanned source file.
	for _, rel := range sourceFiles(root) {
		content, err := ctx.readFile(rel)
		if err != nil {
			continue
		}

		if path.Base(rel) == "__init__.py" {
			// Package-init files are addressed through their package.
			parent := path.Dir(rel)
			if parent == "." {
				continue
			}
			module := strings.ReplaceAll(parent, "/", ".")
			alts = append(alts, module)
			if factoryDefRe.MatchString(content) {
				alts = append(alts, module+":create_app")
			}
			continue
		}

		module := ModulePath(rel)
		if directInstRe.MatchString(content) || factoryInstRe.MatchString(content) {
			alts = append(alts, module+":app", module+":application")
		}
		if factoryDefRe.MatchString(content) {
			alts = append(alts, module, module+":create_app")
		}
	}

	return dedupe(alts)
}

// dedupe removes duplicates while preserving order.
func dedupe(refs []string) []string {
	seen := make(map[string]bool, len(refs))
	var out []string
	for _, ref := range refs {
		if seen[ref] {
			continue
		}
		seen[ref] = true
		out = append(out, ref)
	}
	return out
}
