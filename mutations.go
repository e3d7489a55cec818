package main

import (
	"fmt"
	"os"
	"path/filepath"
)

// ConfirmFunc asks the user to approve a mutation. Returning false
// cancels the operation before any step runs.
type ConfirmFunc func(prompt string) bool

// CreateWorktree adds a new worktree (and branch checkout) named name
// under the repository's worktree directory and runs any configured
// init hooks inside it. Each step fails fast: a failed worktree-add
// reports and stops, and hook-config errors skip hooks without undoing
// the add. Returns true when the worktree was created.
func (s *Session) CreateWorktree(name string) bool {
	cwd, _ := os.Getwd()
	mainPath := s.MainWorktreePath(cwd)

	root := s.worktreeRoot()
	if err := os.MkdirAll(root, 0o755); err != nil {
		s.notifyf(severityError, fmt.Sprintf("Failed to create worktree directory: %v", err))
		return false
	}
	newPath := filepath.Join(root, name)

	if !s.runCommandChecked([]string{"git", "worktree", "add", newPath, name}, "",
		fmt.Sprintf("Failed to create worktree %s", name)) {
		return false
	}

	hooks, err := loadHookConfig(mainPath)
	if err != nil {
		s.notifyf(severityError, fmt.Sprintf("Error loading %s config: %v", hookFileName, err))
	} else if hooks != nil {
		s.runHooks(hooks.initCommands, newPath, hookEnv(name, mainPath, newPath))
	}

	s.notifyf(severityInfo, fmt.Sprintf("Created worktree %s", name))
	s.mutationDone()
	return true
}

// DeleteWorktree removes a worktree and deletes its branch. The main
// worktree is never deletable. Terminate hooks run best-effort first;
// the branch delete is skipped when the worktree remove fails.
func (s *Session) DeleteWorktree(wt *WorktreeInfo, confirm ConfirmFunc) bool {
	if wt.IsMain {
		s.notifyf(severityError, "Cannot delete main worktree")
		return false
	}
	prompt := fmt.Sprintf("Are you sure you want to delete worktree?\n\nPath: %s\nBranch: %s", wt.Path, wt.Branch)
	if confirm != nil && !confirm(prompt) {
		return false
	}

	cwd, _ := os.Getwd()
	mainPath := s.MainWorktreePath(cwd)
	s.runTerminateHooks(wt, mainPath)

	if !s.runCommandChecked([]string{"git", "worktree", "remove", "--force", wt.Path}, "",
		fmt.Sprintf("Failed to remove worktree %s", wt.Path)) {
		return false
	}
	if !s.runCommandChecked([]string{"git", "branch", "-D", wt.Branch}, "",
		fmt.Sprintf("Failed to delete branch %s", wt.Branch)) {
		return false
	}

	s.notifyf(severityInfo, "Worktree deleted")
	s.mutationDone()
	return true
}

// AbsorbWorktree merges a worktree's branch into the main branch and
// then deletes the worktree and branch. Any failure during checkout or
// merge aborts before the destructive steps so a branch whose changes
// never landed is not lost.
func (s *Session) AbsorbWorktree(wt *WorktreeInfo, confirm ConfirmFunc) bool {
	if wt.IsMain {
		s.notifyf(severityError, "Cannot absorb main worktree")
		return false
	}
	prompt := fmt.Sprintf("Absorb worktree to main branch?\n\nPath: %s\nBranch: %s\n\nThis will merge changes to main and delete the worktree.", wt.Path, wt.Branch)
	if confirm != nil && !confirm(prompt) {
		return false
	}

	cwd, _ := os.Getwd()
	mainPath := s.MainWorktreePath(cwd)
	s.runTerminateHooks(wt, mainPath)

	mainBranch := s.MainBranch()
	if !s.runCommandChecked([]string{"git", "checkout", mainBranch}, wt.Path,
		fmt.Sprintf("Failed to checkout %s", mainBranch)) {
		return false
	}
	if !s.runCommandChecked([]string{"git", "merge", "--no-edit", wt.Branch}, wt.Path,
		fmt.Sprintf("Failed to merge %s into %s", wt.Branch, mainBranch)) {
		return false
	}
	if !s.runCommandChecked([]string{"git", "worktree", "remove", "--force", wt.Path}, "",
		fmt.Sprintf("Failed to remove worktree %s", wt.Path)) {
		return false
	}
	if !s.runCommandChecked([]string{"git", "branch", "-D", wt.Branch}, "",
		fmt.Sprintf("Failed to delete branch %s", wt.Branch)) {
		return false
	}

	s.notifyf(severityInfo, "Worktree absorbed successfully")
	s.mutationDone()
	return true
}

func (s *Session) runTerminateHooks(wt *WorktreeInfo, mainPath string) {
	hooks, err := loadHookConfig(mainPath)
	if err != nil {
		s.notifyf(severityError, fmt.Sprintf("Error loading %s config: %v", hookFileName, err))
		return
	}
	if hooks == nil {
		return
	}
	s.runHooks(hooks.terminateCommands, mainPath, hookEnv(wt.Branch, mainPath, wt.Path))
}

// worktreeBaseDir is the shared root for all managed worktrees. A
// configured worktree_dir replaces the default root; the per-repository
// key is always appended below it.
func (s *Session) worktreeBaseDir() string {
	if s.cfg.WorktreeDir != "" {
		return expandHome(s.cfg.WorktreeDir)
	}
	return expandHome(defaultWorktreeDir)
}

// worktreeRoot is the per-repository directory new worktrees are
// created under. State files live in the same directory, so two
// repositories sharing one configured root never collide.
func (s *Session) worktreeRoot() string {
	return filepath.Join(s.worktreeBaseDir(), s.RepoKey())
}
