package scaffold

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatchPackageJSONScripts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "package.json")

	require.NoError(t, os.WriteFile(path, []byte(`{
  "name": "business-dashboard",
  "version": "1.0.0",
  "scripts": {
    "test": "echo \"Error: no test specified\" && exit 1"
  }
}
`), 0600))

	require.NoError(t, patchPackageJSONScripts(path))

	contents, err := os.ReadFile(path)

	require.NoError(t, err)

	var packageJSON struct {
		Name    string            `json:"name"`
		Scripts map[string]string `json:"scripts"`
	}

	require.NoError(t, json.Unmarshal(contents, &packageJSON))
	assert.Equal(t, "business-dashboard", packageJSON.Name)
	assert.Contains(t, packageJSON.Scripts["build:css"], "--watch")
	assert.Contains(t, packageJSON.Scripts["build:css:prod"], "--minify")
	assert.Contains(t, packageJSON.Scripts, "test")
}

func TestPatchPackageJSONScriptsWithoutScriptsSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "package.json")

	require.NoError(t, os.WriteFile(path, []byte(`{"name": "business-dashboard"}`), 0600))

	require.NoError(t, patchPackageJSONScripts(path))

	contents, err := os.ReadFile(path)

	require.NoError(t, err)

	var packageJSON struct {
		Scripts map[string]string `json:"scripts"`
	}

	require.NoError(t, json.Unmarshal(contents, &packageJSON))
	assert.Len(t, packageJSON.Scripts, 2)
}

func TestPatchPackageJSONScriptsRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "package.json")

	require.NoError(t, os.WriteFile(path, []byte("not json"), 0600))

	assert.Error(t, patchPackageJSONScripts(path))
}
