package main

// PRInfo carries pull-request metadata joined onto a worktree by branch name.
type PRInfo struct {
	Number int    `json:"number"`
	State  string `json:"state"`
	Title  string `json:"title"`
	URL    string `json:"url"`
}

// WorktreeInfo is one entry of the canonical worktree list. The list is
// rebuilt atomically on every refresh; records are only mutated in place
// to attach PR data or a computed divergence.
type WorktreeInfo struct {
	Path         string  `json:"path"`
	Branch       string  `json:"branch"`
	IsMain       bool    `json:"is_main"`
	Dirty        bool    `json:"dirty"`
	Ahead        int     `json:"ahead"`
	Behind       int     `json:"behind"`
	LastActive   string  `json:"last_active"`
	LastActiveTS int64   `json:"last_active_ts"`
	PR           *PRInfo `json:"pr,omitempty"`
	Untracked    int     `json:"untracked"`
	Modified     int     `json:"modified"`
	Staged       int     `json:"staged"`
	Divergence   string  `json:"divergence,omitempty"`
}

// CommitInfo is the parsed header of a single commit.
type CommitInfo struct {
	SHA     string
	Author  string
	Date    string
	Subject string
	Body    string
}

const detachedBranch = "(detached)"

const (
	prStateOpen   = "OPEN"
	prStateMerged = "MERGED"
	prStateClosed = "CLOSED"
)
