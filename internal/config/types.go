package config

// Config holds all otc-agent configuration. The template identifiers
// default to the names used throughout the UnicitySwapBroker test suite.
type Config struct {
	HelperVar     string `json:"helper_var"`     // signing helper instance in the tests
	BrokerVar     string `json:"broker_var"`     // broker contract variable in the tests
	KeyVar        string `json:"key_var"`        // operator key variable in the tests
	DefaultCaller string `json:"default_caller"` // caller used when vm.prank has no identifier
	DefaultKey    string `json:"default_key"`    // stored key used by sign when --key is omitted
	BrokerAddress string `json:"broker_address"` // broker contract address used by sign/verify

	// internal: config dir path used for Save()
	configDir string
}

// KeyEntry is one registered operator key. The private key itself lives
// in the OS keychain; only the reference is persisted here.
type KeyEntry struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	KeyRef    string `json:"key_ref"`
	CreatedAt string `json:"created_at"`
}

// KeysFile is the structure of keys.json.
type KeysFile struct {
	Keys []KeyEntry `json:"keys"`
}
