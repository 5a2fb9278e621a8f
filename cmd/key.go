package cmd

import (
	"fmt"

	"github.com/jvsteiner/otc-agent/internal/keys"
	"github.com/jvsteiner/otc-agent/internal/ui"
	"github.com/spf13/cobra"
)

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage operator signing keys",
	Long: `Manage the operator keys used by sign. Private keys live in the
OS keychain; the config dir only records names and derived addresses.`,
}

var keyImportCmd = &cobra.Command{
	Use:   "import <name> <hexkey>",
	Short: "Import a hex private key",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kf, err := cfg.LoadKeys()
		if err != nil {
			return fmt.Errorf("loading key registry: %w", err)
		}

		entry, err := keys.Import(keys.DefaultKeystore(), kf, args[0], args[1])
		if err != nil {
			return err
		}
		if err := cfg.SaveKeys(kf); err != nil {
			return fmt.Errorf("saving key registry: %w", err)
		}

		fmt.Println(ui.Success("imported " + entry.Name))
		fmt.Println(ui.KeyValueBlock("Key Imported", [][2]string{
			{"Name", entry.Name},
			{"Address", ui.Addr(entry.Address)},
		}))
		return nil
	},
}

var keyGenerateCmd = &cobra.Command{
	Use:   "generate <name>",
	Short: "Generate a fresh key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kf, err := cfg.LoadKeys()
		if err != nil {
			return fmt.Errorf("loading key registry: %w", err)
		}

		entry, err := keys.Generate(keys.DefaultKeystore(), kf, args[0])
		if err != nil {
			return err
		}
		if err := cfg.SaveKeys(kf); err != nil {
			return fmt.Errorf("saving key registry: %w", err)
		}

		fmt.Println(ui.KeyValueBlock("Key Generated", [][2]string{
			{"Name", entry.Name},
			{"Address", ui.Addr(entry.Address)},
		}))
		fmt.Println(ui.Hint("Set as default: otc-agent config set default-key " + entry.Name))
		return nil
	},
}

var keyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored keys",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		kf, err := cfg.LoadKeys()
		if err != nil {
			return fmt.Errorf("loading key registry: %w", err)
		}
		if len(kf.Keys) == 0 {
			fmt.Println(ui.Meta("no keys stored"))
			return nil
		}

		tbl := ui.NewTable([]ui.Column{
			{Title: "NAME", Width: 16},
			{Title: "ADDRESS", Width: 44},
			{Title: "CREATED", Width: 22},
		})
		for _, e := range kf.Keys {
			tbl.AddRow(ui.Row{e.Name, e.Address, e.CreatedAt})
		}
		fmt.Println(tbl.Render())
		return nil
	},
}

var keyRemoveCmd = &cobra.Command{
	Use:   "remove [name]",
	Short: "Remove a stored key",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kf, err := cfg.LoadKeys()
		if err != nil {
			return fmt.Errorf("loading key registry: %w", err)
		}

		var name string
		if len(args) == 1 {
			name = args[0]
		} else {
			items := make([]ui.PickerItem, 0, len(kf.Keys))
			for _, e := range kf.Keys {
				items = append(items, ui.PickerItem{Label: e.Name, SubLabel: e.Address, Value: e.Name})
			}
			name, err = ui.PickItem("Select key to remove", items)
			if err != nil {
				return err
			}
			if name == "" {
				fmt.Println(ui.Meta("cancelled"))
				return nil
			}
		}

		if err := keys.Remove(keys.DefaultKeystore(), kf, name); err != nil {
			return err
		}
		if err := cfg.SaveKeys(kf); err != nil {
			return fmt.Errorf("saving key registry: %w", err)
		}

		fmt.Println(ui.Success("removed " + name))
		return nil
	},
}

func init() {
	keyCmd.AddCommand(keyImportCmd, keyGenerateCmd, keyListCmd, keyRemoveCmd)
}
