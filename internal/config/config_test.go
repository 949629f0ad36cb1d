package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	s := Load(filepath.Join(t.TempDir(), ".flaskstudio.yaml"))

	assert.Equal(t, Defaults(), s)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", ".flaskstudio.yaml")

	saved := Settings{
		ProjectPath: "/projects/shop",
		Port:        8080,
		RunMethod:   "direct",
		AppOverride: "shop:app",
		Debug:       false,
		Python:      "/projects/shop/venv/bin/python",
	}
	require.NoError(t, Save(path, saved))

	assert.Equal(t, saved, Load(path))
}

func TestLoadCorruptFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".flaskstudio.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{{{ not yaml"), 0o644))

	assert.Equal(t, Defaults(), Load(path))
}

func TestLoadSanitizesBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".flaskstudio.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: -4\nrun_method: rocket\n"), 0o644))

	s := Load(path)

	assert.Equal(t, Defaults().Port, s.Port)
	assert.Equal(t, Defaults().RunMethod, s.RunMethod)
}
