package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	cacheFileName        = ".worktree-cache.json"
	lastSelectedFileName = ".last-selected"
)

// cachedWorktree is the slim persisted form of a worktree record, kept
// for fast cold-start rendering before the first real enumeration lands.
type cachedWorktree struct {
	Path         string `json:"path"`
	Branch       string `json:"branch"`
	LastActiveTS int64  `json:"last_active_ts"`
}

func (s *Session) repoStateDir() string {
	return s.worktreeRoot()
}

// LoadWorktreeCache reads the persisted worktree snapshot for this
// repository. A missing file is normal and returns nil.
func (s *Session) LoadWorktreeCache() []cachedWorktree {
	path := filepath.Join(s.repoStateDir(), cacheFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.notifyOnce(notifyKey{notifyCacheRead, path},
				fmt.Sprintf("Failed to read cache file: %v", err), severityError)
		}
		return nil
	}
	var entries []cachedWorktree
	if err := json.Unmarshal(data, &entries); err != nil {
		s.notifyOnce(notifyKey{notifyCacheRead, path},
			fmt.Sprintf("Invalid cache file format: %v", err), severityError)
		return nil
	}
	return entries
}

// SaveWorktreeCache persists the current worktree list after a refresh.
func (s *Session) SaveWorktreeCache(worktrees []*WorktreeInfo) {
	entries := make([]cachedWorktree, 0, len(worktrees))
	for _, wt := range worktrees {
		entries = append(entries, cachedWorktree{
			Path:         wt.Path,
			Branch:       wt.Branch,
			LastActiveTS: wt.LastActiveTS,
		})
	}
	path := filepath.Join(s.repoStateDir(), cacheFileName)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		s.notifyOnce(notifyKey{notifyCacheWrite, path},
			fmt.Sprintf("Failed to write cache file: %v", err), severityError)
		return
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		s.notifyOnce(notifyKey{notifyCacheWrite, path},
			fmt.Sprintf("Failed to write cache file: %v", err), severityError)
	}
}

// WriteLastSelected records the most recently selected worktree path so
// the next session can restore the cursor.
func (s *Session) WriteLastSelected(path string) {
	if strings.TrimSpace(path) == "" {
		return
	}
	marker := filepath.Join(s.repoStateDir(), lastSelectedFileName)
	if err := os.MkdirAll(filepath.Dir(marker), 0o755); err != nil {
		s.notifyOnce(notifyKey{notifyLastSel, marker},
			fmt.Sprintf("Failed to save last selected worktree: %v", err), severityError)
		return
	}
	if err := os.WriteFile(marker, []byte(path+"\n"), 0o644); err != nil {
		s.notifyOnce(notifyKey{notifyLastSel, marker},
			fmt.Sprintf("Failed to save last selected worktree: %v", err), severityError)
	}
}

// ReadLastSelected returns the previously selected worktree path, or "".
func (s *Session) ReadLastSelected() string {
	data, err := os.ReadFile(filepath.Join(s.repoStateDir(), lastSelectedFileName))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
