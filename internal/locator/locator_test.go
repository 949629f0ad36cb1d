package locator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const directApp = `from flask import Flask

app = Flask(__name__)

@app.route("/")
def index():
    return "ok"

if __name__ == "__main__":
    app.run()
`

const factoryPackage = `from flask import Flask

def create_app():
    app = Flask(__name__)
    return app
`

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func TestLocateDirectAssignment(t *testing.T) {
	root := writeTree(t, map[string]string{"app.py": directApp})

	assert.Equal(t, "app:app", Locate(root, "app.py"))
}

func TestLocateApplicationVariable(t *testing.T) {
	root := writeTree(t, map[string]string{
		"main.py": "from flask import Flask\napplication = Flask(__name__)\n",
	})

	assert.Equal(t, "main:application", Locate(root, "main.py"))
}

func TestLocateFactoryPackage(t *testing.T) {
	root := writeTree(t, map[string]string{
		"myapp/__init__.py": factoryPackage,
	})

	// A bare module path tells the Flask CLI to call the factory itself.
	assert.Equal(t, "myapp", Locate(root, "myapp/__init__.py"))
}

func TestLocateFactoryBindingInMainFile(t *testing.T) {
	root := writeTree(t, map[string]string{
		"myapp/__init__.py": factoryPackage,
		"serve.py":          "from myapp import create_app\n\nsite = create_app()\n",
	})

	assert.Equal(t, "serve:site", Locate(root, "serve.py"))
}

func TestLocateWsgiSibling(t *testing.T) {
	root := writeTree(t, map[string]string{
		"server.py": "from flask import Flask\n\ndef main():\n    app = Flask(__name__)\n",
		"wsgi.py":   "from myapp import create_app\n\napp = create_app()\n",
	})

	assert.Equal(t, "wsgi:app", Locate(root, "server.py"))
}

func TestLocateProjectSuffixFile(t *testing.T) {
	root := writeTree(t, map[string]string{
		"shopapp.py": "from flask import Flask\napplication = Flask(__name__)\n",
	})

	assert.Equal(t, "shopapp:application", Locate(root, "shopapp.py"))
}

func TestLocateExhaustiveScan(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/core.py": "from flask import Flask\napp = Flask(__name__)\n",
	})

	assert.Equal(t, "src.core:app", Locate(root, ""))
}

func TestLocateNeverEmpty(t *testing.T) {
	root := t.TempDir()

	ref := Locate(root, "")

	assert.Equal(t, "app:app", ref)
	assert.NotEmpty(t, Locate(root, "mystery.py"))
}

func TestLocateFallbackUsesMainModule(t *testing.T) {
	root := writeTree(t, map[string]string{
		"tool.py": "import os\nprint(os.getcwd())\n",
	})

	assert.Equal(t, "tool:app", Locate(root, "tool.py"))
}

func TestModulePath(t *testing.T) {
	tests := []struct {
		rel  string
		want string
	}{
		{"app.py", "app"},
		{"pkg/__init__.py", "pkg"},
		{"a/b/c.py", "a.b.c"},
		{"__init__.py", "__init__"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ModulePath(tt.rel), tt.rel)
	}
}

func TestAlternativesOrderAndDedupe(t *testing.T) {
	root := writeTree(t, map[string]string{
		"app.py":            directApp,
		"myapp/__init__.py": factoryPackage,
	})

	alts := Alternatives(root, "app.py")

	require.NotEmpty(t, alts)
	assert.Equal(t, "app:app", alts[0])
	assert.Contains(t, alts, "myapp")
	assert.Contains(t, alts, "myapp:create_app")

	seen := make(map[string]int)
	for _, a := range alts {
		seen[a]++
		assert.NotEmpty(t, a)
	}
	for ref, n := range seen {
		assert.Equal(t, 1, n, ref)
	}
}

func TestAlternativesSkipsRootInit(t *testing.T) {
	root := writeTree(t, map[string]string{
		"__init__.py": factoryPackage,
		"run.py":      directApp,
	})

	alts := Alternatives(root, "run.py")

	assert.NotContains(t, alts, "")
	assert.Contains(t, alts, "run:app")
}
