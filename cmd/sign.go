package cmd

import (
	"encoding/hex"
	"fmt"

	"github.com/jvsteiner/otc-agent/internal/config"
	"github.com/jvsteiner/otc-agent/internal/keys"
	"github.com/jvsteiner/otc-agent/internal/sighelper"
	"github.com/jvsteiner/otc-agent/internal/ui"
	"github.com/spf13/cobra"
)

var (
	signKey    string
	signBroker string
)

var signCmd = &cobra.Command{
	Use:   "sign",
	Short: "Produce a swapNative/revertNative authorization signature",
	Long: `Sign a broker call authorization with a stored operator key.

The digest is the Keccak-256 hash of the tightly packed call fields
(broker address first, caller last), wrapped in the EIP-191 personal
message prefix — the same value the contract recovers on-chain.`,
}

var signSwapCmd = &cobra.Command{
	Use:   "swap <dealId> <payback> <recipient> <feeRecipient> <amount> <fees> <caller>",
	Short: "Sign a swapNative authorization",
	Long: `Sign a swapNative authorization.

Arguments mirror the contract call: a 32-byte hex dealId, a true/false
payback flag, recipient and feeRecipient addresses, decimal amount and
fees in wei, and the caller address the signature is bound to.

Example:
  otc-agent sign swap 0x00..2a false 0x2000... 0x3000... 1000000 2500 0x4000...`,
	Args: cobra.ExactArgs(7),
	RunE: func(cmd *cobra.Command, args []string) error {
		broker, err := brokerAddress(signBroker)
		if err != nil {
			return err
		}

		auth, err := swapAuthFromArgs(args, broker)
		if err != nil {
			return err
		}

		entry, hexKey, err := resolveSigningKey(signKey)
		if err != nil {
			return err
		}

		sig, err := sighelper.SignSwapNative(hexKey, auth)
		if err != nil {
			return fmt.Errorf("signing failed: %w", err)
		}

		printSignature("swapNative", entry.Address, args[0], sig)
		return nil
	},
}

var signRevertCmd = &cobra.Command{
	Use:   "revert <dealId> <payback> <feeRecipient> <fees> <caller>",
	Short: "Sign a revertNative authorization",
	Args:  cobra.ExactArgs(5),
	RunE: func(cmd *cobra.Command, args []string) error {
		broker, err := brokerAddress(signBroker)
		if err != nil {
			return err
		}

		auth, err := revertAuthFromArgs(args, broker)
		if err != nil {
			return err
		}

		entry, hexKey, err := resolveSigningKey(signKey)
		if err != nil {
			return err
		}

		sig, err := sighelper.SignRevertNative(hexKey, auth)
		if err != nil {
			return fmt.Errorf("signing failed: %w", err)
		}

		printSignature("revertNative", entry.Address, args[0], sig)
		return nil
	},
}

// resolveSigningKey picks the key named by the flag, the configured
// default, or an interactive choice when several keys are registered.
func resolveSigningKey(name string) (config.KeyEntry, string, error) {
	kf, err := cfg.LoadKeys()
	if err != nil {
		return config.KeyEntry{}, "", fmt.Errorf("loading key registry: %w", err)
	}
	if len(kf.Keys) == 0 {
		return config.KeyEntry{}, "", fmt.Errorf("no keys stored — add one: otc-agent key import <name> <hexkey>")
	}

	if name == "" {
		name = cfg.DefaultKey
	}
	if name == "" {
		if len(kf.Keys) == 1 {
			name = kf.Keys[0].Name
		} else {
			items := make([]ui.PickerItem, 0, len(kf.Keys))
			for _, e := range kf.Keys {
				items = append(items, ui.PickerItem{Label: e.Name, SubLabel: e.Address, Value: e.Name})
			}
			picked, err := ui.PickItem("Select signing key", items)
			if err != nil {
				return config.KeyEntry{}, "", err
			}
			if picked == "" {
				return config.KeyEntry{}, "", fmt.Errorf("no key selected")
			}
			name = picked
		}
	}

	entry, ok := keys.Find(kf, name)
	if !ok {
		return config.KeyEntry{}, "", fmt.Errorf("key %q not found", name)
	}

	hexKey, err := keys.HexKey(keys.DefaultKeystore(), kf, name)
	if err != nil {
		return config.KeyEntry{}, "", err
	}
	return entry, hexKey, nil
}

func printSignature(kind, signer, dealID string, sig []byte) {
	sigHex := "0x" + hex.EncodeToString(sig)
	fmt.Println(ui.KeyValueBlock("Authorization Signed", [][2]string{
		{"Kind", ui.KindName(kind)},
		{"Signer", ui.Addr(signer)},
		{"Deal ID", ui.TruncateHex(dealID)},
		{"Signature", sigHex},
	}))
	fmt.Println(ui.Hint("Check: otc-agent verify " + verifyUse(kind) + " ... --sig " + ui.TruncateHex(sigHex)))
}

func verifyUse(kind string) string {
	if kind == "swapNative" {
		return "swap"
	}
	return "revert"
}

func init() {
	signCmd.PersistentFlags().StringVar(&signKey, "key", "", "stored key name (default: config default-key)")
	signCmd.PersistentFlags().StringVar(&signBroker, "broker", "", "broker contract address (default: config broker-address)")

	signCmd.AddCommand(signSwapCmd, signRevertCmd)
}
