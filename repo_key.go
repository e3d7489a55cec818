package main

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	git "github.com/go-git/go-git/v5"
)

var remoteRepoPattern = regexp.MustCompile(`[:/]([^/]+/[^/]+?)(\.git)?$`)

// RepoKey returns the identity this repository is keyed under for
// persisted state, resolved once per session. Preference order: hosted
// repo identifier from gh, then the origin remote URL, then the
// top-level directory name.
func (s *Session) RepoKey() string {
	s.mu.Lock()
	cached := s.repoKey
	s.mu.Unlock()
	if cached != "" {
		return cached
	}
	key := s.resolveRepoKey()
	s.mu.Lock()
	if s.repoKey == "" {
		s.repoKey = key
	}
	cached = s.repoKey
	s.mu.Unlock()
	return cached
}

func (s *Session) resolveRepoKey() string {
	if name := s.runGit([]string{"gh", "repo", "view", "--json", "nameWithOwner", "-q", ".nameWithOwner"}, "", []int{0}, true); name != "" {
		return name
	}
	if name := repoKeyFromRemote(originRemoteURL()); name != "" {
		return name
	}
	if toplevel := s.runGit([]string{"git", "rev-parse", "--show-toplevel"}, "", []int{0}, true); toplevel != "" {
		return filepath.Base(toplevel)
	}
	return "unknown"
}

// originRemoteURL reads the origin remote straight from the repository
// config via go-git, avoiding a subprocess for a pure config lookup.
func originRemoteURL() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	repo, err := git.PlainOpenWithOptions(cwd, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return ""
	}
	remote, err := repo.Remote("origin")
	if err != nil {
		return ""
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return ""
	}
	return strings.TrimSpace(urls[0])
}

func repoKeyFromRemote(remoteURL string) string {
	if remoteURL == "" {
		return ""
	}
	matches := remoteRepoPattern.FindStringSubmatch(remoteURL)
	if len(matches) < 2 {
		return ""
	}
	return matches[1]
}

// insideRepository reports whether cwd is inside a git work tree. Used
// as a startup guard before launching the dashboard.
func insideRepository() bool {
	cwd, err := os.Getwd()
	if err != nil {
		return false
	}
	_, err = git.PlainOpenWithOptions(cwd, &git.PlainOpenOptions{DetectDotGit: true})
	return err == nil
}
