package main

import (
	"fmt"
	"strings"
)

// MainBranch resolves the repository's main branch name once per
// session. The symbolic ref for origin/HEAD is authoritative; when it
// cannot be read the name defaults to "main".
func (s *Session) MainBranch() string {
	s.mu.Lock()
	cached := s.mainBranch
	s.mu.Unlock()
	if cached != "" {
		return cached
	}
	branch := "main"
	out := s.runGit([]string{"git", "symbolic-ref", "--short", "refs/remotes/origin/HEAD"}, "", []int{0}, true)
	if out != "" {
		parts := strings.Split(out, "/")
		branch = parts[len(parts)-1]
	}
	s.mu.Lock()
	if s.mainBranch == "" {
		s.mainBranch = branch
	}
	cached = s.mainBranch
	s.mu.Unlock()
	return cached
}

// Divergence returns the ahead/behind summary of a worktree's branch
// relative to the main branch, formatted "Main: ↑A ↓B". Results are
// memoized per (path, branch) for the session; the main worktree never
// diverges from itself. A cached entry can outlive a rebase of the base
// branch, which is accepted staleness.
func (s *Session) Divergence(wt *WorktreeInfo) string {
	cacheKey := wt.Path + ":" + wt.Branch
	s.mu.Lock()
	if cached, ok := s.divergence[cacheKey]; ok {
		s.mu.Unlock()
		return cached
	}
	s.mu.Unlock()

	if wt.Divergence != "" {
		s.mu.Lock()
		s.divergence[cacheKey] = wt.Divergence
		s.mu.Unlock()
		return wt.Divergence
	}
	if wt.IsMain {
		return ""
	}

	mainBranch := s.MainBranch()
	res := s.runGit([]string{"git", "rev-list", "--left-right", "--count", mainBranch + "...HEAD"}, wt.Path, []int{0}, true)
	if res == "" {
		return ""
	}
	fields := strings.Fields(res)
	if len(fields) != 2 {
		return ""
	}
	// Left side counts commits only on main (behind), right side
	// commits only on HEAD (ahead).
	divergence := fmt.Sprintf("Main: ↑%s ↓%s", fields[1], fields[0])
	s.mu.Lock()
	s.divergence[cacheKey] = divergence
	s.mu.Unlock()
	return divergence
}
