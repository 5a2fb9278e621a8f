package fixtures

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// fixturesDir returns the absolute path to the fixtures directory.
func fixturesDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Dir(file)
}

// LoadSol loads a fixture Solidity test file and returns its contents.
func LoadSol(t *testing.T, filename string) string {
	t.Helper()
	path := filepath.Join(fixturesDir(), "sol", filename)
	data, err := os.ReadFile(path)
	require.NoError(t, err, "failed to load fixture: %s", filename)
	return string(data)
}

// SolPath returns the absolute path of a fixture Solidity test file.
func SolPath(filename string) string {
	return filepath.Join(fixturesDir(), "sol", filename)
}
