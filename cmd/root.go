package cmd

import (
	"fmt"
	"os"

	"github.com/jvsteiner/otc-agent/internal/config"
	"github.com/spf13/cobra"
)

// Version is the current release. Overridable via build ldflags:
//
//	go build -ldflags "-X github.com/jvsteiner/otc-agent/cmd.Version=1.2.3" .
var Version = "1.0.0"

var (
	cfgDir  string
	cfg     *config.Config
	verbose bool
)

// rootCmd is the top-level command.
var rootCmd = &cobra.Command{
	Use:   "otc-agent",
	Short: "Signature tooling for the UnicitySwapBroker test suite",
	Long: `otc-agent — developer toolkit for the UnicitySwapBroker contracts.

  Rewrite Foundry test files so that prank-guarded swapNative and
  revertNative calls carry operator authorization signatures, inspect
  call sites without touching the file, and produce or verify the
  signatures themselves with keys held in the OS keychain.

Template identifiers (sigHelper, broker, operatorPrivateKey, ...) are
configurable: otc-agent config set <field> <value>`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load config (skip for commands that don't need it).
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		var err error
		cfg, err = config.Load(cfgDir)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// OTC_AGENT_CONFIG_DIR env var overrides --config flag.
	if envDir := os.Getenv("OTC_AGENT_CONFIG_DIR"); envDir != "" {
		cfgDir = envDir
	}

	rootCmd.PersistentFlags().StringVar(&cfgDir, "config", cfgDir, "config directory (default: ~/.otc-agent)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Register all sub-commands.
	rootCmd.AddCommand(
		scanCmd,
		patchCmd,
		signCmd,
		verifyCmd,
		keyCmd,
		configCmd,
	)
}
