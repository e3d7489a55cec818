package main

import (
	"strconv"
	"strings"
	"sync"
)

type worktreeEntry struct {
	path   string
	branch string
}

type branchActivity struct {
	lastActive   string
	lastActiveTS int64
}

// Worktrees enumerates all worktrees and returns fully populated
// records. The porcelain listing runs once; per-worktree status queries
// run concurrently, bounded by the session's admission gate so a
// repository with many worktrees does not flood the process table.
// Listing failure yields an empty slice, never an error.
func (s *Session) Worktrees() []*WorktreeInfo {
	raw := s.runGit([]string{"git", "worktree", "list", "--porcelain"}, "", []int{0}, true)
	if raw == "" {
		return []*WorktreeInfo{}
	}
	entries := parseWorktreeList(raw)
	branchInfo, hasBranchInfo := s.branchMetadata()

	worktrees := make([]*WorktreeInfo, len(entries))
	var wg sync.WaitGroup
	for i, entry := range entries {
		wg.Add(1)
		go func(i int, entry worktreeEntry) {
			defer wg.Done()
			s.acquire()
			defer s.release()

			branch := entry.branch
			if branch == "" {
				branch = detachedBranch
			}
			counts := s.worktreeStatus(entry.path)
			activity := branchActivity{}
			if hasBranchInfo {
				activity = branchInfo[branch]
			}
			worktrees[i] = &WorktreeInfo{
				Path:         entry.path,
				Branch:       branch,
				IsMain:       i == 0,
				Dirty:        counts.untracked+counts.modified+counts.staged > 0,
				Ahead:        counts.ahead,
				Behind:       counts.behind,
				LastActive:   activity.lastActive,
				LastActiveTS: activity.lastActiveTS,
				Untracked:    counts.untracked,
				Modified:     counts.modified,
				Staged:       counts.staged,
			}
		}(i, entry)
	}
	wg.Wait()
	return worktrees
}

// parseWorktreeList parses `git worktree list --porcelain` output. A
// "worktree " line starts a new record; a "branch " line attaches the
// branch with the refs/heads/ prefix stripped. The first record in
// listing order is the main worktree.
func parseWorktreeList(raw string) []worktreeEntry {
	var entries []worktreeEntry
	var current *worktreeEntry
	for _, line := range strings.Split(raw, "\n") {
		switch {
		case strings.HasPrefix(line, "worktree "):
			if current != nil {
				entries = append(entries, *current)
			}
			current = &worktreeEntry{path: strings.TrimPrefix(line, "worktree ")}
		case strings.HasPrefix(line, "branch "):
			if current != nil {
				branch := strings.TrimPrefix(line, "branch ")
				current.branch = strings.TrimPrefix(branch, "refs/heads/")
			}
		}
	}
	if current != nil {
		entries = append(entries, *current)
	}
	return entries
}

// branchMetadata fetches last-commit activity for all local branches in
// one batched call. The second return value reports whether the batch
// produced anything; individual malformed lines are skipped so one
// exotic branch name cannot abort the whole join.
func (s *Session) branchMetadata() (map[string]branchActivity, bool) {
	raw := s.runGit([]string{
		"git", "for-each-ref",
		"--format=%(refname:short)|%(committerdate:relative)|%(committerdate:unix)",
		"refs/heads",
	}, "", []int{0}, true)
	if raw == "" {
		return nil, false
	}
	info := make(map[string]branchActivity)
	for _, line := range strings.Split(raw, "\n") {
		if !strings.Contains(line, "|") {
			continue
		}
		parts := strings.Split(line, "|")
		if len(parts) != 3 {
			continue
		}
		ts, err := strconv.ParseInt(strings.TrimSpace(parts[2]), 10, 64)
		if err != nil {
			continue
		}
		info[parts[0]] = branchActivity{lastActive: parts[1], lastActiveTS: ts}
	}
	return info, true
}

type statusCounts struct {
	ahead     int
	behind    int
	untracked int
	modified  int
	staged    int
}

func (s *Session) worktreeStatus(path string) statusCounts {
	raw := s.runGit([]string{"git", "status", "--porcelain=v2", "--branch"}, path, []int{0}, true)
	return parseStatusV2(raw)
}

// parseStatusV2 extracts ahead/behind from the branch tracking header
// and counts entries from porcelain v2 change lines. For "1"/"2"
// records the XY field is two columns: X is the index (staged) state, Y
// the worktree (modified) state; any non-"." character counts.
func parseStatusV2(raw string) statusCounts {
	var c statusCounts
	for _, line := range strings.Split(raw, "\n") {
		switch {
		case strings.HasPrefix(line, "# branch.ab "):
			parts := strings.Fields(line)
			if len(parts) >= 4 {
				c.ahead, _ = strconv.Atoi(strings.TrimPrefix(parts[2], "+"))
				c.behind, _ = strconv.Atoi(strings.TrimPrefix(parts[3], "-"))
			}
		case strings.HasPrefix(line, "?"):
			c.untracked++
		case strings.HasPrefix(line, "1 "), strings.HasPrefix(line, "2 "):
			parts := strings.Fields(line)
			if len(parts) > 1 {
				xy := parts[1]
				if len(xy) >= 2 {
					if xy[0] != '.' {
						c.staged++
					}
					if xy[1] != '.' {
						c.modified++
					}
				}
			}
		}
	}
	return c
}

// MainWorktreePath returns the path of the first listed worktree, or
// the given fallback when the listing is unavailable.
func (s *Session) MainWorktreePath(fallback string) string {
	raw := s.runGit([]string{"git", "worktree", "list", "--porcelain"}, "", []int{0}, true)
	for _, line := range strings.Split(raw, "\n") {
		if strings.HasPrefix(line, "worktree ") {
			return strings.TrimPrefix(line, "worktree ")
		}
	}
	return fallback
}
