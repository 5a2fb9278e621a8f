package keys

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/jvsteiner/otc-agent/internal/config"
)

// Import validates a hex private key, stores it in the keystore and
// appends a registry entry with the derived address.
func Import(ks Backend, kf *config.KeysFile, name, hexKey string) (config.KeyEntry, error) {
	if _, ok := Find(kf, name); ok {
		return config.KeyEntry{}, fmt.Errorf("key %q already exists", name)
	}

	privKey, err := crypto.HexToECDSA(strings.TrimPrefix(hexKey, "0x"))
	if err != nil {
		return config.KeyEntry{}, fmt.Errorf("parsing private key: %w", err)
	}
	addr := crypto.PubkeyToAddress(privKey.PublicKey)

	ref, err := ks.Store(name, strings.TrimPrefix(hexKey, "0x"))
	if err != nil {
		return config.KeyEntry{}, fmt.Errorf("storing key: %w", err)
	}

	entry := config.KeyEntry{
		Name:      name,
		Address:   addr.Hex(),
		KeyRef:    ref,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	kf.Keys = append(kf.Keys, entry)
	return entry, nil
}

// Generate creates a fresh key, stores it and appends a registry entry.
func Generate(ks Backend, kf *config.KeysFile, name string) (config.KeyEntry, error) {
	if _, ok := Find(kf, name); ok {
		return config.KeyEntry{}, fmt.Errorf("key %q already exists", name)
	}

	privKey, err := crypto.GenerateKey()
	if err != nil {
		return config.KeyEntry{}, fmt.Errorf("generating key: %w", err)
	}
	hexKey := hex.EncodeToString(crypto.FromECDSA(privKey))

	ref, err := ks.Store(name, hexKey)
	if err != nil {
		return config.KeyEntry{}, fmt.Errorf("storing key: %w", err)
	}

	entry := config.KeyEntry{
		Name:      name,
		Address:   crypto.PubkeyToAddress(privKey.PublicKey).Hex(),
		KeyRef:    ref,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	kf.Keys = append(kf.Keys, entry)
	return entry, nil
}

// Remove deletes a key from the keystore and drops its registry entry.
func Remove(ks Backend, kf *config.KeysFile, name string) error {
	for i, e := range kf.Keys {
		if e.Name == name {
			if err := ks.Delete(e.KeyRef); err != nil {
				return fmt.Errorf("removing key from keychain: %w", err)
			}
			kf.Keys = append(kf.Keys[:i], kf.Keys[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("key %q not found", name)
}

// Find looks up a registry entry by name.
func Find(kf *config.KeysFile, name string) (config.KeyEntry, bool) {
	for _, e := range kf.Keys {
		if e.Name == name {
			return e, true
		}
	}
	return config.KeyEntry{}, false
}

// HexKey retrieves the raw hex private key for a named registry entry.
func HexKey(ks Backend, kf *config.KeysFile, name string) (string, error) {
	entry, ok := Find(kf, name)
	if !ok {
		return "", fmt.Errorf("key %q not found", name)
	}
	hexKey, err := ks.Retrieve(entry.KeyRef)
	if err != nil {
		return "", fmt.Errorf("retrieving key: %w", err)
	}
	return hexKey, nil
}
