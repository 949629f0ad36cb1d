package locator

import (
	"io/fs"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/flaskstudio/flaskstudio/internal/analyzer"
)

// sourceFiles lists every .py file under root in lexicographic walk order,
// skipping the same dependency and cache directories the analyzer skips.
func sourceFiles(root string) []string {
	var files []string
	_ = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() && p != root {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if p == root {
				return nil
			}
			name := d.Name()
			if strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			for _, ignore := range analyzer.DefaultIgnoreDirs {
				if name == ignore {
					return filepath.SkipDir
				}
			}
			return nil
		}
		if strings.HasSuffix(d.Name(), ".py") {
			if rel, err := filepath.Rel(root, p); err == nil {
				files = append(files, filepath.ToSlash(rel))
			}
		}
		return nil
	})
	return files
}

// candidate is one app-object match found by the exhaustive scan.
type candidate struct {
	file     string
	module   string
	variable string
	direct   bool // direct Flask instantiation, as opposed to a factory call
}

func (c candidate) ref() string {
	return c.module + ":" + c.variable
}

var (
	directInstRe  = regexp.MustCompile(`(?m)^(\w+)\s*=\s*Flask\s*\(`)
	factoryInstRe = regexp.MustCompile(`(?m)^(\w+)\s*=\s*create_app\s*\(`)
)

// exhaustiveScanStrategy scans every source file for app-object assignments
// and ranks the matches. Rank order: match in the main file, conventional
// filename, conventional "app" filename suffix, direct instantiation over a
// factory call, then filenames containing "main" or "run".
func exhaustiveScanStrategy(ctx *Context) (string, bool) {
	var candidates []candidate
	for _, rel := range sourceFiles(ctx.Root) {
		content, err := ctx.readFile(rel)
		if err != nil {
			continue
		}
		for _, m := range directInstRe.FindAllStringSubmatch(content, -1) {
			candidates = append(candidates, candidate{
				file: rel, module: ModulePath(rel), variable: m[1], direct: true,
			})
		}
		for _, m := range factoryInstRe.FindAllStringSubmatch(content, -1) {
			candidates = append(candidates, candidate{
				file: rel, module: ModulePath(rel), variable: m[1],
			})
		}
	}
	if len(candidates) == 0 {
		return "", false
	}

	ranks := []func(candidate) bool{
		func(c candidate) bool { return c.file == ctx.MainFile },
		func(c candidate) bool {
			base := path.Base(c.file)
			return base == "wsgi.py" || base == "app.py" || base == "application.py"
		},
		func(c candidate) bool { return strings.HasSuffix(c.file, "app.py") },
		func(c candidate) bool { return c.direct },
		func(c candidate) bool {
			return strings.Contains(c.file, "main") || strings.Contains(c.file, "run")
		},
	}
	for _, rank := range ranks {
		for _, c := range candidates {
			if rank(c) {
				return c.ref(), true
			}
		}
	}
	return candidates[0].ref(), true
}
