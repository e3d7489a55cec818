package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	uiview "github.com/mrbonezy/wts/ui"
)

func newCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "completion [bash|zsh|fish]",
		Short:     "Generate shell completion script",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"bash", "zsh", "fish"},
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(os.Stdout, true)
			case "zsh":
				return root.GenZshCompletion(os.Stdout)
			case "fish":
				return root.GenFishCompletion(os.Stdout, true)
			}
			return fmt.Errorf("unsupported shell %q", args[0])
		},
	}
	return cmd
}

// completeWorktreeNames offers worktree display names for the mutation
// subcommands. Failures complete to nothing rather than erroring.
func completeWorktreeNames(flags *rootFlags) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
		if len(args) != 0 || !insideRepository() {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		session := NewSession(LoadConfig(flags.configPath), nil)
		var names []string
		for _, wt := range session.Worktrees() {
			if wt.IsMain {
				continue
			}
			names = append(names, uiview.WorktreeName(wt.Path, wt.IsMain))
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	}
}
