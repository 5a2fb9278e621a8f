package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Load — defaults and round trips
// ---------------------------------------------------------------------------

func TestLoadCreatesDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "sigHelper", cfg.HelperVar)
	assert.Equal(t, "broker", cfg.BrokerVar)
	assert.Equal(t, "operatorPrivateKey", cfg.KeyVar)
	assert.Equal(t, "operator", cfg.DefaultCaller)
	assert.Equal(t, dir, cfg.Dir())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	require.NoError(t, err)

	cfg.HelperVar = "sigUtil"
	cfg.BrokerAddress = "0x1000000000000000000000000000000000000001"
	cfg.DefaultKey = "deploy"
	require.NoError(t, cfg.Save())

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "sigUtil", loaded.HelperVar)
	assert.Equal(t, "0x1000000000000000000000000000000000000001", loaded.BrokerAddress)
	assert.Equal(t, "deploy", loaded.DefaultKey)
	// Untouched fields keep defaults.
	assert.Equal(t, "broker", loaded.BrokerVar)
}

func TestLoadFillsBlankIdentifiers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"helper_var": "", "broker_address": "0xabc"}`), 0o600))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "sigHelper", cfg.HelperVar, "blank identifiers fall back to defaults")
	assert.Equal(t, "0xabc", cfg.BrokerAddress)
}

func TestLoadInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte("{nope"), 0o600))

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

// ---------------------------------------------------------------------------
// Set — CLI field names
// ---------------------------------------------------------------------------

func TestSetKnownFields(t *testing.T) {
	cfg := defaults(t.TempDir())

	require.NoError(t, cfg.Set("helper-var", "sigUtil"))
	require.NoError(t, cfg.Set("broker-var", "swapBroker"))
	require.NoError(t, cfg.Set("key-var", "adminKey"))
	require.NoError(t, cfg.Set("default-caller", "admin"))
	require.NoError(t, cfg.Set("default-key", "deploy"))
	require.NoError(t, cfg.Set("broker-address", "0xabc"))

	assert.Equal(t, "sigUtil", cfg.HelperVar)
	assert.Equal(t, "swapBroker", cfg.BrokerVar)
	assert.Equal(t, "adminKey", cfg.KeyVar)
	assert.Equal(t, "admin", cfg.DefaultCaller)
	assert.Equal(t, "deploy", cfg.DefaultKey)
	assert.Equal(t, "0xabc", cfg.BrokerAddress)
}

func TestSetUnknownField(t *testing.T) {
	cfg := defaults(t.TempDir())
	err := cfg.Set("nonsense", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown config field")
}

// ---------------------------------------------------------------------------
// Keys file
// ---------------------------------------------------------------------------

func TestLoadKeysEmptyByDefault(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	kf, err := cfg.LoadKeys()
	require.NoError(t, err)
	assert.Empty(t, kf.Keys)
}

func TestSaveLoadKeysRoundTrip(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	kf := &KeysFile{Keys: []KeyEntry{
		{Name: "op", Address: "0xabc", KeyRef: "otc-agent.op", CreatedAt: "2026-01-02T15:04:05Z"},
	}}
	require.NoError(t, cfg.SaveKeys(kf))

	loaded, err := cfg.LoadKeys()
	require.NoError(t, err)
	require.Len(t, loaded.Keys, 1)
	assert.Equal(t, "op", loaded.Keys[0].Name)
	assert.Equal(t, "otc-agent.op", loaded.Keys[0].KeyRef)
}
