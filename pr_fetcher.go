package main

import (
	"encoding/json"
	"fmt"
)

type ghPR struct {
	HeadRefName string `json:"headRefName"`
	State       string `json:"state"`
	Number      int    `json:"number"`
	Title       string `json:"title"`
	URL         string `json:"url"`
}

// FetchPRMap queries the code-review host for PR metadata on all
// branches. The second return value is false when no data could be
// obtained at all: an empty string from the tool means unavailable or
// failed, which is a different signal from a successfully parsed empty
// JSON array (zero PRs exist).
func (s *Session) FetchPRMap() (map[string]PRInfo, bool) {
	raw := s.runGit([]string{
		"gh", "pr", "list",
		"--state", "all",
		"--json", "headRefName,state,number,title,url",
		"--limit", "100",
	}, "", []int{0}, true)
	if raw == "" {
		return nil, false
	}
	var prs []ghPR
	if err := json.Unmarshal([]byte(raw), &prs); err != nil {
		s.notifyOnce(notifyKey{notifyPRDecode, ""},
			fmt.Sprintf("Failed to parse PR data: %v", err), severityError)
		return nil, false
	}
	prMap := make(map[string]PRInfo, len(prs))
	for _, p := range prs {
		if p.HeadRefName == "" {
			continue
		}
		prMap[p.HeadRefName] = PRInfo{
			Number: p.Number,
			State:  p.State,
			Title:  p.Title,
			URL:    p.URL,
		}
	}
	return prMap, true
}

// AttachPRData joins fetched PR records onto worktrees by exact branch
// name. Worktrees without a match keep a nil PR; "no PR exists" and
// "not fetched" are intentionally indistinguishable.
func AttachPRData(worktrees []*WorktreeInfo, prMap map[string]PRInfo) {
	for _, wt := range worktrees {
		if pr, ok := prMap[wt.Branch]; ok {
			prCopy := pr
			wt.PR = &prCopy
		}
	}
}
