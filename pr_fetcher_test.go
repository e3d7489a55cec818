package main

import (
	"strings"
	"testing"
)

func TestFetchPRMap_EmptyOutputMeansNoData(t *testing.T) {
	f := &fakeRunner{respond: func([]string, string) (processResult, error) {
		return textResult("")
	}}
	s, rec := newTestSession(f)

	prs, ok := s.FetchPRMap()
	if ok || prs != nil {
		t.Fatalf("empty output must yield no data, got (%v, %v)", prs, ok)
	}
	if rec.count() != 0 {
		t.Fatalf("tool silence is not an error, got %v", rec.messages())
	}
}

func TestFetchPRMap_EmptyArrayMeansZeroPRs(t *testing.T) {
	f := &fakeRunner{respond: func([]string, string) (processResult, error) {
		return textResult("[]")
	}}
	s, _ := newTestSession(f)

	prs, ok := s.FetchPRMap()
	if !ok {
		t.Fatalf("an empty JSON array is valid data")
	}
	if len(prs) != 0 {
		t.Fatalf("expected zero PRs, got %d", len(prs))
	}
}

func TestFetchPRMap_MalformedJSONReportedOnce(t *testing.T) {
	f := &fakeRunner{respond: func([]string, string) (processResult, error) {
		return textResult("{not json")
	}}
	s, rec := newTestSession(f)

	for i := 0; i < 2; i++ {
		if _, ok := s.FetchPRMap(); ok {
			t.Fatalf("malformed JSON must yield no data")
		}
	}
	if rec.count() != 1 {
		t.Fatalf("expected one decode notification, got %d", rec.count())
	}
	if !strings.Contains(rec.messages()[0], "Failed to parse PR data") {
		t.Fatalf("unexpected message %q", rec.messages()[0])
	}
}

func TestFetchPRMap_ParsesRecords(t *testing.T) {
	f := &fakeRunner{respond: func([]string, string) (processResult, error) {
		return textResult(`[
			{"headRefName":"feature1","state":"OPEN","number":12,"title":"Add widget","url":"https://example.com/pr/12"},
			{"headRefName":"","state":"OPEN","number":13,"title":"branchless","url":""}
		]`)
	}}
	s, _ := newTestSession(f)

	prs, ok := s.FetchPRMap()
	if !ok {
		t.Fatalf("expected data")
	}
	if len(prs) != 1 {
		t.Fatalf("records without a branch must be dropped, got %d", len(prs))
	}
	pr := prs["feature1"]
	if pr.Number != 12 || pr.State != "OPEN" || pr.Title != "Add widget" {
		t.Fatalf("unexpected record: %+v", pr)
	}
}

func TestAttachPRData_JoinsByExactBranch(t *testing.T) {
	worktrees := []*WorktreeInfo{
		{Path: "/repo/main", Branch: "main", IsMain: true},
		{Path: "/repo/wt/feature1", Branch: "feature1"},
		{Path: "/repo/wt/feature10", Branch: "feature10"},
	}
	AttachPRData(worktrees, map[string]PRInfo{
		"feature1": {Number: 12, State: prStateOpen},
	})

	if worktrees[0].PR != nil {
		t.Fatalf("main must not gain a PR")
	}
	if worktrees[1].PR == nil || worktrees[1].PR.Number != 12 {
		t.Fatalf("feature1 join failed: %+v", worktrees[1].PR)
	}
	if worktrees[2].PR != nil {
		t.Fatalf("join must be exact, feature10 matched: %+v", worktrees[2].PR)
	}
}
