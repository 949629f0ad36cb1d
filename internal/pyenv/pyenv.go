// Package pyenv locates the Python interpreter a project should run under
// and checks what that interpreter can import.
package pyenv

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// DefaultInterpreter is used when no project virtualenv is found.
const DefaultInterpreter = "python3"

var venvDirs = []string{"venv", ".venv", "env", ".env"}

// runCommand is swapped in tests. dir may be empty for checks that do not
// depend on the working directory.
var runCommand = func(ctx context.Context, dir, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// DetectInterpreter returns the interpreter for a project, preferring a
// virtualenv under the project root over whatever is on PATH.
func DetectInterpreter(root string) string {
	for _, dir := range venvDirs {
		candidate := venvPython(filepath.Join(root, dir))
		if candidate != "" {
			return candidate
		}
	}
	return DefaultInterpreter
}

// InVirtualenv reports whether the interpreter path points inside a project
// virtualenv rather than a system install.
func InVirtualenv(root, python string) bool {
	abs, err := filepath.Abs(python)
	if err != nil {
		return false
	}
	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return false
	}
	return strings.HasPrefix(abs, rootAbs+string(filepath.Separator))
}

func venvPython(dir string) string {
	candidates := []string{filepath.Join(dir, "bin", "python")}
	if runtime.GOOS == "windows" {
		candidates = []string{filepath.Join(dir, "Scripts", "python.exe")}
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c
		}
	}
	return ""
}

// CheckFlask reports the Flask version importable by the interpreter, or an
// error when flask is not installed for it.
func CheckFlask(ctx context.Context, python string) (string, error) {
	out, err := runCommand(ctx, "", python, "-c", "import flask; print(flask.__version__)")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// CheckImport reports whether the interpreter can import the named module.
// The probe runs from root so project-local modules resolve.
func CheckImport(ctx context.Context, python, root, module string) bool {
	_, err := runCommand(ctx, root, python, "-c", "import "+module)
	return err == nil
}

// Version returns the interpreter's own version string.
func Version(ctx context.Context, python string) (string, error) {
	out, err := runCommand(ctx, "", python, "--version")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
