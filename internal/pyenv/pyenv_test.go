package pyenv

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubCommand(t *testing.T, fn func(dir, name string, args ...string) (string, error)) {
	t.Helper()
	orig := runCommand
	runCommand = func(ctx context.Context, dir, name string, args ...string) (string, error) {
		return fn(dir, name, args...)
	}
	t.Cleanup(func() { runCommand = orig })
}

func makeVenv(t *testing.T, root, dir string) string {
	t.Helper()
	bin := filepath.Join(root, dir, "bin")
	name := "python"
	if runtime.GOOS == "windows" {
		bin = filepath.Join(root, dir, "Scripts")
		name = "python.exe"
	}
	require.NoError(t, os.MkdirAll(bin, 0o755))
	path := filepath.Join(bin, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755))
	return path
}

func TestDetectInterpreterPrefersVenv(t *testing.T) {
	root := t.TempDir()
	expected := makeVenv(t, root, "venv")

	assert.Equal(t, expected, DetectInterpreter(root))
}

func TestDetectInterpreterChecksDotVenv(t *testing.T) {
	root := t.TempDir()
	expected := makeVenv(t, root, ".venv")

	assert.Equal(t, expected, DetectInterpreter(root))
}

func TestDetectInterpreterFallsBack(t *testing.T) {
	assert.Equal(t, DefaultInterpreter, DetectInterpreter(t.TempDir()))
}

func TestInVirtualenv(t *testing.T) {
	root := t.TempDir()
	inside := makeVenv(t, root, "venv")

	assert.True(t, InVirtualenv(root, inside))
	assert.False(t, InVirtualenv(root, "/usr/bin/python3"))
	assert.False(t, InVirtualenv(root, DefaultInterpreter))
}

func TestCheckFlask(t *testing.T) {
	stubCommand(t, func(dir, name string, args ...string) (string, error) {
		assert.Equal(t, "python3", name)
		assert.Contains(t, args[len(args)-1], "import flask")
		return "3.0.2\n", nil
	})

	version, err := CheckFlask(context.Background(), "python3")
	require.NoError(t, err)
	assert.Equal(t, "3.0.2", version)
}

func TestCheckFlaskMissing(t *testing.T) {
	stubCommand(t, func(dir, name string, args ...string) (string, error) {
		return "ModuleNotFoundError: No module named 'flask'", errors.New("exit status 1")
	})

	_, err := CheckFlask(context.Background(), "python3")
	assert.Error(t, err)
}

func TestCheckImport(t *testing.T) {
	stubCommand(t, func(dir, name string, args ...string) (string, error) {
		assert.Equal(t, "/projects/shop", dir)
		if args[len(args)-1] == "import redis" {
			return "", errors.New("exit status 1")
		}
		return "", nil
	})

	ctx := context.Background()
	assert.True(t, CheckImport(ctx, "python3", "/projects/shop", "myapp"))
	assert.False(t, CheckImport(ctx, "python3", "/projects/shop", "redis"))
}

func TestVersion(t *testing.T) {
	stubCommand(t, func(dir, name string, args ...string) (string, error) {
		assert.Equal(t, []string{"--version"}, args)
		return "Python 3.12.1\n", nil
	})

	version, err := Version(context.Background(), "python3")
	require.NoError(t, err)
	assert.Equal(t, "Python 3.12.1", version)
}
