package e2e_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jvsteiner/otc-agent/test/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build the binary before all E2E tests.
	tmp, err := os.MkdirTemp("", "otc-agent-e2e-test")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(tmp)

	binaryPath = filepath.Join(tmp, "otc-agent")
	// Build from the module root (two levels up from test/e2e/).
	moduleRoot, err := filepath.Abs(filepath.Join("..", ".."))
	if err != nil {
		panic(err)
	}
	cmd := exec.Command("go", "build", "-o", binaryPath, ".")
	cmd.Dir = moduleRoot
	if out, err := cmd.CombinedOutput(); err != nil {
		panic("build failed: " + string(out))
	}

	os.Exit(m.Run())
}

func runCLI(t *testing.T, configDir string, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), "OTC_AGENT_CONFIG_DIR="+configDir)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// copyFixture puts a writable copy of the fixture file into a temp dir.
func copyFixture(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(fixtures.SolPath("broker_tests.sol"))
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "broker_tests.sol")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestVersionFlag(t *testing.T) {
	dir := t.TempDir()
	out, err := runCLI(t, dir, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "otc-agent")
	assert.Contains(t, out, "1.0.0")
}

func TestHelpListsCommands(t *testing.T) {
	dir := t.TempDir()
	out, err := runCLI(t, dir, "--help")
	require.NoError(t, err)
	for _, c := range []string{"scan", "patch", "sign", "verify", "key", "config"} {
		assert.Contains(t, strings.ToLower(out), c, "help should mention %s", c)
	}
}

func TestScanReportsSites(t *testing.T) {
	dir := t.TempDir()
	out, err := runCLI(t, dir, "scan", fixtures.SolPath("broker_tests.sol"))
	require.NoError(t, err)
	assert.Contains(t, out, "swapNative")
	assert.Contains(t, out, "revertNative")
	assert.Contains(t, out, "3 conforming")
}

func TestScanMissingFile(t *testing.T) {
	dir := t.TempDir()
	_, err := runCLI(t, dir, "scan", filepath.Join(dir, "nope.sol"))
	assert.Error(t, err)
}

func TestPatchStdoutLeavesFileUntouched(t *testing.T) {
	dir := t.TempDir()
	path := copyFixture(t)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	out, err := runCLI(t, dir, "patch", path)
	require.NoError(t, err)
	assert.Contains(t, out, "sigHelper.signSwapNative(")

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after, "default mode must not modify the file")
}

func TestPatchWriteRewritesFile(t *testing.T) {
	dir := t.TempDir()
	path := copyFixture(t)

	out, err := runCLI(t, dir, "patch", path, "--write", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "3 patched")

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(after), "// Generate signature")
	assert.Contains(t, string(after), "sigHelper.signRevertNative(")
}

func TestConfigSetAndShow(t *testing.T) {
	dir := t.TempDir()

	out, err := runCLI(t, dir, "config", "set", "helper-var", "sigUtil")
	require.NoError(t, err)
	assert.Contains(t, out, "sigUtil")

	out, err = runCLI(t, dir, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "sigUtil")

	// The custom identifier flows into patched output.
	path := copyFixture(t)
	out, err = runCLI(t, dir, "patch", path)
	require.NoError(t, err)
	assert.Contains(t, out, "sigUtil.signSwapNative(")
}

func TestConfigSetUnknownField(t *testing.T) {
	dir := t.TempDir()
	_, err := runCLI(t, dir, "config", "set", "nonsense", "x")
	assert.Error(t, err)
}
