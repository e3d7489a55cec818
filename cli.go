package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	uiview "github.com/mrbonezy/wts/ui"
)

type rootFlags struct {
	filter     string
	configPath string
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:           "wts",
		Short:         "Interactive Git worktree dashboard",
		Version:       currentVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runDashboard(flags)
		},
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "Path to config file")
	root.Flags().StringVar(&flags.filter, "filter", "", "Initial filter query")

	root.AddCommand(
		newListCommand(flags),
		newCreateCommand(flags),
		newDeleteCommand(flags),
		newAbsorbCommand(flags),
		newCompletionCommand(),
	)
	root.CompletionOptions.DisableDefaultCmd = true
	return root
}

// newCLISession builds a session whose notifications go straight to
// stderr, for the non-interactive subcommands.
func newCLISession(flags *rootFlags) *Session {
	cfg := LoadConfig(flags.configPath)
	return NewSession(cfg, func(n Notification) {
		fmt.Fprintf(os.Stderr, "%s: %s\n", n.Severity, n.Message)
	})
}

func newListCommand(flags *rootFlags) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List worktrees with status",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if !insideRepository() {
				return fmt.Errorf("not inside a git repository")
			}
			session := newCLISession(flags)
			worktrees := session.Worktrees()
			sortWorktrees(worktrees, session.cfg.SortByActive)
			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(worktrees)
			}
			for _, wt := range worktrees {
				name := uiview.WorktreeName(wt.Path, wt.IsMain)
				fmt.Printf("%s\t%s\t%s\t%s\n",
					uiview.PadOrTrim(name, 24), wt.Branch,
					uiview.StatusLabel(wt.Dirty),
					uiview.AheadBehindLabel(wt.Ahead, wt.Behind))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON")
	return cmd
}

func newCreateCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create a worktree for a branch",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if !insideRepository() {
				return fmt.Errorf("not inside a git repository")
			}
			session := newCLISession(flags)
			if !session.CreateWorktree(args[0]) {
				return fmt.Errorf("create failed")
			}
			return nil
		},
	}
}

func newDeleteCommand(flags *rootFlags) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a worktree and its branch",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runWorktreeMutation(flags, args[0], yes, func(s *Session, wt *WorktreeInfo, confirm ConfirmFunc) bool {
				return s.DeleteWorktree(wt, confirm)
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	cmd.ValidArgsFunction = completeWorktreeNames(flags)
	return cmd
}

func newAbsorbCommand(flags *rootFlags) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "absorb <name>",
		Short: "Merge a worktree's branch into main and delete it",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runWorktreeMutation(flags, args[0], yes, func(s *Session, wt *WorktreeInfo, confirm ConfirmFunc) bool {
				return s.AbsorbWorktree(wt, confirm)
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	cmd.ValidArgsFunction = completeWorktreeNames(flags)
	return cmd
}

func runWorktreeMutation(flags *rootFlags, name string, yes bool,
	mutate func(*Session, *WorktreeInfo, ConfirmFunc) bool) error {
	if !insideRepository() {
		return fmt.Errorf("not inside a git repository")
	}
	session := newCLISession(flags)
	wt := findWorktree(session.Worktrees(), name)
	if wt == nil {
		return fmt.Errorf("no worktree matches %q", name)
	}
	confirm := promptConfirm
	if yes {
		confirm = func(string) bool { return true }
	}
	if !mutate(session, wt, confirm) {
		return fmt.Errorf("operation failed")
	}
	return nil
}

// findWorktree resolves a name against display name, branch, or path.
func findWorktree(worktrees []*WorktreeInfo, name string) *WorktreeInfo {
	for _, wt := range worktrees {
		if uiview.WorktreeName(wt.Path, wt.IsMain) == name ||
			wt.Branch == name || wt.Path == name {
			return wt
		}
	}
	return nil
}

// promptConfirm runs a standalone confirm form outside the dashboard.
func promptConfirm(prompt string) bool {
	var yes bool
	form := newConfirmForm(prompt, "", &yes)
	if err := form.Run(); err != nil {
		return false
	}
	return yes
}

func runDashboard(flags *rootFlags) error {
	if !insideRepository() {
		return fmt.Errorf("not inside a git repository")
	}
	cfg := LoadConfig(flags.configPath)

	notifyCh := make(chan Notification, 64)
	session := NewSession(cfg, func(n Notification) {
		select {
		case notifyCh <- n:
		default:
			debugf("notification dropped: %s", n.Message)
		}
	})

	setWindowTitle(session.RepoKey())
	defer resetWindowTitle()

	p := tea.NewProgram(newModel(session, cfg, flags.filter, notifyCh), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := finalModel.(model); ok && strings.TrimSpace(m.jumpPath) != "" {
		fmt.Println(m.jumpPath)
	}
	return nil
}
