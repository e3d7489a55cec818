package main

import (
	"fmt"
	"strings"
	"sync"
)

const truncationMarker = "\n\n# [truncated]"

// BuildWorkingDiff assembles staged, unstaged, and untracked changes
// for a worktree into one diff text. The boolean reports whether the
// text was rendered through delta (ANSI) or is a raw patch.
func (s *Session) BuildWorkingDiff(path string) (string, bool) {
	var staged, unstaged, untrackedRaw string
	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		staged = s.runGit([]string{"git", "diff", "--cached", "--patch", "--no-color"}, path, []int{0}, false)
	}()
	go func() {
		defer wg.Done()
		unstaged = s.runGit([]string{"git", "diff", "--patch", "--no-color"}, path, []int{0}, false)
	}()
	go func() {
		defer wg.Done()
		untrackedRaw = s.runGit([]string{"git", "ls-files", "--others", "--exclude-standard"}, path, []int{0}, true)
	}()
	wg.Wait()

	var untrackedFiles []string
	for _, f := range strings.Split(untrackedRaw, "\n") {
		if f != "" {
			untrackedFiles = append(untrackedFiles, f)
		}
	}

	var untrackedPatches []string
	total := len(untrackedFiles)
	maxUntracked := s.cfg.MaxUntrackedDiffs
	if total > maxUntracked {
		untrackedFiles = untrackedFiles[:maxUntracked]
		untrackedPatches = append(untrackedPatches,
			fmt.Sprintf("# Note: Showing first %d untracked files (total: %d)\n", maxUntracked, total))
	}
	if len(untrackedFiles) > 0 {
		patches := make([]string, len(untrackedFiles))
		var uwg sync.WaitGroup
		for i, file := range untrackedFiles {
			uwg.Add(1)
			go func(i int, file string) {
				defer uwg.Done()
				// Exit code 1 is expected: diff --no-index exits 1 when
				// the files differ.
				patches[i] = s.runGit([]string{"git", "diff", "--no-index", "--no-color", "--", "/dev/null", file},
					path, []int{0, 1}, false)
			}(i, file)
		}
		uwg.Wait()
		for _, p := range patches {
			if p != "" {
				untrackedPatches = append(untrackedPatches, p)
			}
		}
	}

	var parts []string
	if strings.TrimSpace(staged) != "" {
		parts = append(parts, "# Staged\n"+strings.Trim(staged, "\n"))
	}
	if strings.TrimSpace(unstaged) != "" {
		parts = append(parts, "# Unstaged\n"+strings.Trim(unstaged, "\n"))
	}
	if len(untrackedPatches) > 0 {
		trimmed := make([]string, len(untrackedPatches))
		for i, p := range untrackedPatches {
			trimmed[i] = strings.Trim(p, "\n")
		}
		parts = append(parts, "# Untracked\n"+strings.Join(trimmed, "\n\n"))
	}
	diffText := strings.Trim(strings.Join(parts, "\n\n"), "\n")
	if diffText == "" {
		return "", false
	}
	diffText = s.truncateDiff(diffText)
	return s.applyDelta(diffText)
}

// BuildCommitDiff returns the parsed header and full patch for one
// commit. A header of fewer than 4 lines means the commit is missing or
// malformed and yields a nil CommitInfo alongside whatever diff text
// was found.
func (s *Session) BuildCommitDiff(path string, sha string) (*CommitInfo, string, bool) {
	info := s.commitInfo(path, sha)
	diffRaw := s.runGit([]string{"git", "show", "--patch", "--no-color", "--pretty=format:", sha}, path, []int{0}, false)
	diffText := strings.Trim(diffRaw, "\n")
	if diffText == "" {
		return info, "", false
	}
	diffText = s.truncateDiff(diffText)
	diffText, usedDelta := s.applyDelta(diffText)
	return info, diffText, usedDelta
}

func (s *Session) commitInfo(path string, sha string) *CommitInfo {
	format := "%H%n%an <%ae>%n%ad%n%s%n%b"
	raw := s.runGit([]string{"git", "show", "-s", "--format=" + format, sha}, path, []int{0}, false)
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	lines := strings.Split(raw, "\n")
	if len(lines) < 4 {
		return nil
	}
	return &CommitInfo{
		SHA:     strings.TrimSpace(lines[0]),
		Author:  strings.TrimSpace(lines[1]),
		Date:    strings.TrimSpace(lines[2]),
		Subject: strings.TrimSpace(lines[3]),
		Body:    strings.TrimSpace(strings.Join(lines[4:], "\n")),
	}
}

// truncateDiff caps the raw text before any pretty-printing; delta may
// not handle a partial diff gracefully, so the cut happens first.
func (s *Session) truncateDiff(text string) string {
	maxChars := s.cfg.MaxDiffChars
	if maxChars > 0 && len(text) > maxChars {
		return text[:maxChars] + truncationMarker
	}
	return text
}

// applyDelta pipes the diff through delta when it is installed, falling
// back to the raw text on any failure.
func (s *Session) applyDelta(diffText string) (string, bool) {
	if _, err := s.lookPath("delta"); err != nil {
		return diffText, false
	}
	res, err := s.runProcess([]string{"delta", "--no-gitconfig", "--paging=never"}, "", []byte(diffText), nil)
	if err != nil || res.exitCode != 0 {
		return diffText, false
	}
	return decodePermissive(res.stdout), true
}
