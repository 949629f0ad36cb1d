// Package analyzer inspects a Flask project's source tree and derives the
// facts needed to launch it: which files use Flask, the routing pattern, the
// main entry file, blueprints, and the recommended run method.
//
// The analysis is heuristic. Every per-file problem (unreadable file, decode
// failure) degrades to "not a file of interest"; the walk itself only fails
// when the root cannot be read at all.
package analyzer

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	gitignore "github.com/denormal/go-gitignore"
)

// DefaultIgnoreDirs are directories never descended into during the walk.
// Dependency and cache trees would dominate scan time on large projects.
var DefaultIgnoreDirs = []string{
	"__pycache__", "node_modules", "venv", ".venv", "env", ".env",
	"site-packages", ".git", ".tox", ".idea", ".vscode",
}

// Options configures an analysis pass.
type Options struct {
	// IgnoreDirs overrides DefaultIgnoreDirs when non-empty.
	IgnoreDirs []string
	// MaxDepth bounds recursion below the root. Zero means unlimited.
	MaxDepth int
	// Extension of source files to scan. Defaults to ".py".
	Extension string
}

// Analyzer walks a project root and produces a ProjectInfo.
type Analyzer struct {
	opts Options
}

// New creates an Analyzer with the given options.
func New(opts Options) *Analyzer {
	if opts.Extension == "" {
		opts.Extension = ".py"
	}
	if len(opts.IgnoreDirs) == 0 {
		opts.IgnoreDirs = DefaultIgnoreDirs
	}
	return &Analyzer{opts: opts}
}

// Analyze scans the project tree rooted at root. A project in which nothing
// qualifies yields MainFile == "" and PatternUnknown, never an error: callers
// must treat that as a recoverable needs-manual-configuration state.
func (a *Analyzer) Analyze(ctx context.Context, root string) (*ProjectInfo, error) {
	facts, contents, err := a.scan(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("analyzing %s: %w", root, err)
	}

	info := &ProjectInfo{
		Root:  root,
		Files: facts,
	}

	info.RoutingPattern = derivePattern(facts)
	info.MainFile = selectMainFile(root, facts, contents)
	info.Blueprints = extractBlueprints(facts, contents)
	info.Factory = extractFactory(facts, contents)
	info.RecommendedRun = recommendRunMethod(info)

	return info, nil
}

// scan enumerates source files in deterministic lexicographic walk order and
// classifies each one. Returned contents hold the full text of every retained
// file, keyed by relative path, for the derivation passes.
func (a *Analyzer) scan(ctx context.Context, root string) ([]SourceFileFact, map[string]string, error) {
	var facts []SourceFileFact
	contents := make(map[string]string)

	ignore := loadGitIgnore(root)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			// Unreadable entries are skipped, not fatal.
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		if rel == "." {
			return nil
		}

		if d.IsDir() {
			if a.skipDir(d.Name()) {
				return filepath.SkipDir
			}
			if a.opts.MaxDepth > 0 && strings.Count(rel, string(os.PathSeparator)) >= a.opts.MaxDepth {
				return filepath.SkipDir
			}
			if ignore != nil {
				if m := ignore.Relative(rel, true); m != nil && m.Ignore() {
					return filepath.SkipDir
				}
			}
			return nil
		}

		if !strings.HasSuffix(d.Name(), a.opts.Extension) {
			return nil
		}
		if ignore != nil {
			if m := ignore.Relative(rel, false); m != nil && m.Ignore() {
				return nil
			}
		}

		data, err := os.ReadFile(path)
		if err != nil || !utf8.Valid(data) {
			// Decode and permission failures classify the file as not a
			// source of interest.
			return nil
		}

		rel = filepath.ToSlash(rel)
		fact := classify(rel, string(data))
		if !fact.HasSignal() {
			return nil
		}

		facts = append(facts, fact)
		contents[rel] = string(data)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return facts, contents, nil
}

func (a *Analyzer) skipDir(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	for _, d := range a.opts.IgnoreDirs {
		if name == d {
			return true
		}
	}
	return false
}

// loadGitIgnore reads the project root .gitignore, if any. Failures degrade
// to no filtering.
func loadGitIgnore(root string) gitignore.GitIgnore {
	data, err := os.ReadFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return gitignore.New(bytes.NewReader(data), root, nil)
}

// derivePattern applies the precedence rule factory > blueprint > direct.
// The presence of any factory-defining file forces "factory" even when direct
// routes exist elsewhere: factory apps typically also contain route-decorated
// blueprint modules.
func derivePattern(facts []SourceFileFact) RoutingPattern {
	var hasFactory, hasBlueprint, hasDirect bool
	for _, f := range facts {
		if f.IsFactory {
			hasFactory = true
		}
		if f.DeclaresBlueprint {
			hasBlueprint = true
		}
		if f.DeclaresRoute && !f.DeclaresBlueprint {
			hasDirect = true
		}
	}
	switch {
	case hasFactory:
		return PatternFactory
	case hasBlueprint:
		return PatternBlueprint
	case hasDirect:
		return PatternDirect
	default:
		return PatternUnknown
	}
}

// recommendRunMethod picks "direct" only when the chosen main file itself has
// a run entrypoint and the project is not factory-shaped.
func recommendRunMethod(info *ProjectInfo) RunMethod {
	if info.RoutingPattern == PatternFactory {
		return RunFlask
	}
	if info.MainFile == "" {
		return RunFlask
	}
	for _, f := range info.Files {
		if f.RelPath == info.MainFile && f.HasRunEntrypoint {
			return RunDirect
		}
	}
	return RunFlask
}
