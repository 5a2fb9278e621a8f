package cmd

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jvsteiner/otc-agent/internal/sighelper"
	"github.com/jvsteiner/otc-agent/internal/ui"
	"github.com/spf13/cobra"
)

var (
	verifySig    string
	verifySigner string
	verifyBroker string
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Recover the signer of an authorization signature",
	Long: `Recover who signed a swapNative/revertNative authorization.

Rebuilds the digest from the call fields, recovers the signer address
from the signature and compares it to the expected address (if given).`,
}

var verifySwapCmd = &cobra.Command{
	Use:   "swap <dealId> <payback> <recipient> <feeRecipient> <amount> <fees> <caller>",
	Short: "Verify a swapNative authorization signature",
	Args:  cobra.ExactArgs(7),
	RunE: func(cmd *cobra.Command, args []string) error {
		broker, err := brokerAddress(verifyBroker)
		if err != nil {
			return err
		}

		auth, err := swapAuthFromArgs(args, broker)
		if err != nil {
			return err
		}

		sig, err := decodeSigFlag()
		if err != nil {
			return err
		}

		recovered, err := sighelper.RecoverSwapNative(auth, sig)
		if err != nil {
			return fmt.Errorf("verification failed: %w", err)
		}

		printRecovered("swapNative", recovered)
		return nil
	},
}

var verifyRevertCmd = &cobra.Command{
	Use:   "revert <dealId> <payback> <feeRecipient> <fees> <caller>",
	Short: "Verify a revertNative authorization signature",
	Args:  cobra.ExactArgs(5),
	RunE: func(cmd *cobra.Command, args []string) error {
		broker, err := brokerAddress(verifyBroker)
		if err != nil {
			return err
		}

		auth, err := revertAuthFromArgs(args, broker)
		if err != nil {
			return err
		}

		sig, err := decodeSigFlag()
		if err != nil {
			return err
		}

		recovered, err := sighelper.RecoverRevertNative(auth, sig)
		if err != nil {
			return fmt.Errorf("verification failed: %w", err)
		}

		printRecovered("revertNative", recovered)
		return nil
	},
}

func decodeSigFlag() ([]byte, error) {
	if verifySig == "" {
		return nil, fmt.Errorf("--sig is required — provide the hex signature")
	}
	sig, err := hex.DecodeString(strings.TrimPrefix(verifySig, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid signature hex: %w", err)
	}
	return sig, nil
}

func printRecovered(kind string, recovered common.Address) {
	pairs := [][2]string{
		{"Kind", ui.KindName(kind)},
		{"Recovered Signer", ui.Addr(recovered.Hex())},
	}

	if verifySigner != "" {
		if strings.EqualFold(recovered.Hex(), verifySigner) {
			pairs = append(pairs, [2]string{"Match", ui.Success("signature is valid — signer matches")})
		} else {
			pairs = append(pairs, [2]string{"Expected", ui.Addr(verifySigner)})
			pairs = append(pairs, [2]string{"Match", ui.Err("signature does NOT match expected address")})
		}
	}

	fmt.Println(ui.KeyValueBlock("Signature Verification", pairs))
}

func init() {
	verifyCmd.PersistentFlags().StringVar(&verifySig, "sig", "", "hex signature to verify (required)")
	verifyCmd.PersistentFlags().StringVar(&verifySigner, "signer", "", "expected signer address (optional)")
	verifyCmd.PersistentFlags().StringVar(&verifyBroker, "broker", "", "broker contract address (default: config broker-address)")

	verifyCmd.AddCommand(verifySwapCmd, verifyRevertCmd)
}
