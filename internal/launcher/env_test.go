package launcher

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildEnvDebugFlags(t *testing.T) {
	env := BuildEnv(t.TempDir(), true, "app:app")

	assert.Contains(t, env, "FLASK_ENV=development")
	assert.Contains(t, env, "FLASK_DEBUG=1")
	assert.Contains(t, env, "FLASK_APP=app:app")
}

func TestBuildEnvProductionFlags(t *testing.T) {
	env := BuildEnv(t.TempDir(), false, "")

	assert.Contains(t, env, "FLASK_ENV=production")
	assert.Contains(t, env, "FLASK_DEBUG=0")
	for _, pair := range env {
		assert.NotContains(t, pair, "FLASK_APP=")
	}
}

func TestBuildEnvReadsDotenvFiles(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".env"),
		[]byte("API_KEY=abc\nSHARED=from-env\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".flaskenv"),
		[]byte("FLASK_RUN_EXTRA=1\nSHARED=from-flaskenv\n"), 0o644))

	env := BuildEnv(root, false, "")

	assert.Contains(t, env, "API_KEY=abc")
	assert.Contains(t, env, "FLASK_RUN_EXTRA=1")
	assert.Contains(t, env, "SHARED=from-flaskenv")
	assert.NotContains(t, env, "SHARED=from-env")
}

func TestBuildEnvIgnoresMissingDotenv(t *testing.T) {
	env := BuildEnv(t.TempDir(), false, "app:app")
	assert.NotEmpty(t, env)
}
