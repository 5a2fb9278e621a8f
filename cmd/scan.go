package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jvsteiner/otc-agent/internal/ui"
	"github.com/spf13/cobra"
)

var scanKind string

var scanCmd = &cobra.Command{
	Use:   "scan <file>",
	Short: "List prank-guarded swapNative/revertNative call sites",
	Long: `Scan a Foundry test file for vm.prank-guarded swapNative and
revertNative calls and report what a patch run would do — which sites
conform to the expected argument shape, which caller each one uses and
which would be skipped. The file is never modified.

Examples:
  otc-agent scan test/UnicitySwapBroker.t.sol
  otc-agent scan test/UnicitySwapBroker.t.sol --kind swap`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kinds, err := parseKinds(scanKind)
		if err != nil {
			return err
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}

		rep := newPatcher().Inspect(string(data), kinds)
		if rep.Found() == 0 {
			fmt.Println(ui.Meta("no call sites found"))
			return nil
		}

		tbl := ui.NewTable([]ui.Column{
			{Title: "LINE", Width: 6},
			{Title: "KIND", Width: 14},
			{Title: "CALLER", Width: 14},
			{Title: "STATUS", Width: 10},
			{Title: "PARAMS", Width: 60},
		})
		for _, s := range rep.Sites {
			status := "ok"
			detail := strings.Join(s.Params, ", ")
			if !s.Patched {
				status = "skip"
				detail = s.Reason
			}
			tbl.AddRow(ui.Row{strconv.Itoa(s.Line), s.Kind.String(), s.Caller, status, detail})
		}
		fmt.Println(tbl.Render())

		fmt.Println(ui.Meta(fmt.Sprintf("%d site(s): %d conforming, %d would be skipped",
			rep.Found(), rep.Patched(), rep.Skipped())))
		if rep.Patched() > 0 {
			fmt.Println(ui.Hint("Apply: otc-agent patch " + args[0] + " --write"))
		}
		return nil
	},
}

func init() {
	scanCmd.Flags().StringVar(&scanKind, "kind", "all", "call kind to scan: swap, revert or all")
}
