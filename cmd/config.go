package cmd

import (
	"fmt"

	"github.com/jvsteiner/otc-agent/internal/ui"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and update configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(ui.KeyValueBlock("Configuration", [][2]string{
			{"helper-var", cfg.HelperVar},
			{"broker-var", cfg.BrokerVar},
			{"key-var", cfg.KeyVar},
			{"default-caller", cfg.DefaultCaller},
			{"default-key", orUnset(cfg.DefaultKey)},
			{"broker-address", orUnset(cfg.BrokerAddress)},
			{"dir", cfg.Dir()},
		}))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <field> <value>",
	Short: "Set a configuration field",
	Long: `Set a configuration field and persist it.

Fields: helper-var, broker-var, key-var, default-caller, default-key,
broker-address.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Println(ui.Success(args[0] + " = " + args[1]))
		return nil
	},
}

func orUnset(s string) string {
	if s == "" {
		return "(unset)"
	}
	return s
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetCmd)
}
