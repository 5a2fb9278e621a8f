package cmd

import (
	"fmt"
	"os"

	"github.com/jvsteiner/otc-agent/internal/ui"
	"github.com/spf13/cobra"
)

var (
	patchKind  string
	patchWrite bool
	patchYes   bool
)

var patchCmd = &cobra.Command{
	Use:   "patch <file>",
	Short: "Inject signature generation before swapNative/revertNative calls",
	Long: `Rewrite a Foundry test file so every conforming prank-guarded
swapNative/revertNative call is preceded by a sigHelper signing block
and carries the produced signature as its trailing argument.

Sites whose argument block does not match the expected shape are left
byte-identical; the run reports them as skipped. Already-patched calls
carry the extra signature argument and are therefore skipped too — do
not re-run the patcher expecting it to reconcile its own output.

By default the rewritten document goes to stdout and the file stays
untouched. --write rewrites the file in place after a confirmation
prompt (--yes skips the prompt).

Examples:
  otc-agent patch test/UnicitySwapBroker.t.sol > patched.t.sol
  otc-agent patch test/UnicitySwapBroker.t.sol --write
  otc-agent patch test/UnicitySwapBroker.t.sol --kind revert --write --yes`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kinds, err := parseKinds(patchKind)
		if err != nil {
			return err
		}

		path := args[0]
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		out, rep := newPatcher().Apply(string(data), kinds)

		summary := fmt.Sprintf("%d site(s): %d patched, %d skipped",
			rep.Found(), rep.Patched(), rep.Skipped())

		if verbose {
			for _, s := range rep.Sites {
				if s.Patched {
					fmt.Fprintln(os.Stderr, ui.Meta(fmt.Sprintf("line %d: %s caller=%s", s.Line, s.Kind, s.Caller)))
				} else {
					fmt.Fprintln(os.Stderr, ui.Meta(fmt.Sprintf("line %d: %s skipped: %s", s.Line, s.Kind, s.Reason)))
				}
			}
		}

		if !patchWrite {
			fmt.Print(out)
			fmt.Fprintln(os.Stderr, ui.Meta(summary))
			return nil
		}

		if rep.Patched() == 0 {
			fmt.Println(ui.Warn("nothing to patch — " + summary))
			return nil
		}

		if !patchYes && !ui.Confirm(fmt.Sprintf("Rewrite %s in place (%d site(s))?", path, rep.Patched())) {
			fmt.Println(ui.Meta("cancelled"))
			return nil
		}

		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("stat %s: %w", path, err)
		}
		if err := os.WriteFile(path, []byte(out), info.Mode().Perm()); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}

		fmt.Println(ui.Success(path + " — " + summary))
		if rep.Skipped() > 0 {
			fmt.Println(ui.Hint("Inspect skipped sites: otc-agent scan " + path))
		}
		return nil
	},
}

func init() {
	patchCmd.Flags().StringVar(&patchKind, "kind", "all", "call kind to patch: swap, revert or all")
	patchCmd.Flags().BoolVar(&patchWrite, "write", false, "rewrite the file in place instead of printing to stdout")
	patchCmd.Flags().BoolVarP(&patchYes, "yes", "y", false, "skip the confirmation prompt")
}
