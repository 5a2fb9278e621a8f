package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	defaultHelperVar = "sigHelper"
	defaultBrokerVar = "broker"
	defaultKeyVar    = "operatorPrivateKey"
	defaultCaller    = "operator"

	configFile = "config.json"
	keysFile   = "keys.json"
)

// Load reads config from dir (or creates defaults). dir defaults to
// ~/.otc-agent.
func Load(dir string) (*Config, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("could not determine home dir: %w", err)
		}
		dir = filepath.Join(home, ".otc-agent")
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("could not create config dir: %w", err)
	}

	cfg := defaults(dir)

	path := filepath.Join(dir, configFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.configDir = dir
	cfg.fillEmpty()

	return cfg, nil
}

// Save writes the config to disk.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.configDir, 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.configDir, configFile), data, 0o600)
}

// Set updates a configuration field by its CLI name.
func (c *Config) Set(field, value string) error {
	switch field {
	case "helper-var":
		c.HelperVar = value
	case "broker-var":
		c.BrokerVar = value
	case "key-var":
		c.KeyVar = value
	case "default-caller":
		c.DefaultCaller = value
	case "default-key":
		c.DefaultKey = value
	case "broker-address":
		c.BrokerAddress = value
	default:
		return fmt.Errorf("unknown config field %q", field)
	}
	return nil
}

// Dir returns the config directory.
func (c *Config) Dir() string {
	return c.configDir
}

// LoadKeys reads keys.json.
func (c *Config) LoadKeys() (*KeysFile, error) {
	return loadJSON[KeysFile](filepath.Join(c.configDir, keysFile))
}

// SaveKeys writes keys.json.
func (c *Config) SaveKeys(kf *KeysFile) error {
	return saveJSON(filepath.Join(c.configDir, keysFile), kf)
}

// --- helpers ---

func defaults(dir string) *Config {
	return &Config{
		HelperVar:     defaultHelperVar,
		BrokerVar:     defaultBrokerVar,
		KeyVar:        defaultKeyVar,
		DefaultCaller: defaultCaller,
		configDir:     dir,
	}
}

// fillEmpty restores defaults for template identifiers a hand-edited
// config file left blank; patched output must never contain empty names.
func (c *Config) fillEmpty() {
	if c.HelperVar == "" {
		c.HelperVar = defaultHelperVar
	}
	if c.BrokerVar == "" {
		c.BrokerVar = defaultBrokerVar
	}
	if c.KeyVar == "" {
		c.KeyVar = defaultKeyVar
	}
	if c.DefaultCaller == "" {
		c.DefaultCaller = defaultCaller
	}
}

func loadJSON[T any](path string) (*T, error) {
	var zero T
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &zero, nil
	}
	if err != nil {
		return nil, err
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func saveJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
