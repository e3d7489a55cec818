package main

import (
	"strings"
	"testing"
)

const sampleWorktreeListing = `worktree /repo/main
HEAD 1111111111111111111111111111111111111111
branch refs/heads/main

worktree /repo/wt/feature1
HEAD 2222222222222222222222222222222222222222
branch refs/heads/feature1

worktree /repo/wt/feature2
HEAD 3333333333333333333333333333333333333333
branch refs/heads/feature2
`

func TestParseWorktreeList(t *testing.T) {
	entries := parseWorktreeList(sampleWorktreeListing)
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].path != "/repo/main" || entries[0].branch != "main" {
		t.Fatalf("unexpected first entry: %+v", entries[0])
	}
	if entries[1].branch != "feature1" {
		t.Fatalf("expected refs/heads/ prefix stripped, got %q", entries[1].branch)
	}
}

func TestParseWorktreeList_DetachedHead(t *testing.T) {
	raw := "worktree /repo/main\nHEAD abc\nbranch refs/heads/main\n\nworktree /repo/wt/pin\nHEAD def\ndetached\n"
	entries := parseWorktreeList(raw)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[1].branch != "" {
		t.Fatalf("detached entry must have no branch, got %q", entries[1].branch)
	}
}

func TestParseStatusV2(t *testing.T) {
	raw := strings.Join([]string{
		"# branch.oid 1234",
		"# branch.head feature1",
		"# branch.ab +1 -2",
		"? notes.txt",
		"1 .M N... 100644 100644 100644 aaaa bbbb file1.go",
		"1 M. N... 100644 100644 100644 aaaa bbbb file2.go",
		"2 R. N... 100644 100644 100644 aaaa bbbb R100 new.go\told.go",
	}, "\n")

	c := parseStatusV2(raw)
	if c.ahead != 1 || c.behind != 2 {
		t.Fatalf("expected ahead=1 behind=2, got %+v", c)
	}
	if c.untracked != 1 {
		t.Fatalf("expected 1 untracked, got %d", c.untracked)
	}
	if c.staged != 2 {
		t.Fatalf("expected staged=2 (file2 + rename), got %d", c.staged)
	}
	if c.modified != 1 {
		t.Fatalf("expected modified=1, got %d", c.modified)
	}
}

func TestParseStatusV2_Empty(t *testing.T) {
	c := parseStatusV2("")
	if c.ahead != 0 || c.behind != 0 || c.untracked != 0 || c.modified != 0 || c.staged != 0 {
		t.Fatalf("expected zero counts, got %+v", c)
	}
}

func newEnumerationFake() *fakeRunner {
	return &fakeRunner{respond: func(args []string, cwd string) (processResult, error) {
		cmd := strings.Join(args, " ")
		switch {
		case cmd == "git worktree list --porcelain":
			return textResult(sampleWorktreeListing)
		case strings.HasPrefix(cmd, "git for-each-ref"):
			return textResult("main|2 hours ago|1000\nfeature1|1 hour ago|2000\nfeature2|3 hours ago|500")
		case strings.HasPrefix(cmd, "git status --porcelain=v2"):
			switch cwd {
			case "/repo/main":
				return textResult("# branch.ab +1 -2")
			case "/repo/wt/feature1":
				return textResult("? scratch.txt\n1 .M N... 100644 100644 100644 aaaa bbbb main.go")
			case "/repo/wt/feature2":
				return textResult("1 M. N... 100644 100644 100644 aaaa bbbb lib.go")
			}
		}
		return processResult{}, nil
	}}
}

func TestWorktrees_PopulatesRecords(t *testing.T) {
	s, rec := newTestSession(newEnumerationFake())

	worktrees := s.Worktrees()
	if len(worktrees) != 3 {
		t.Fatalf("expected 3 worktrees, got %d", len(worktrees))
	}
	main := worktrees[0]
	if !main.IsMain {
		t.Fatalf("first listed worktree must be main")
	}
	if main.Dirty || main.Ahead != 1 || main.Behind != 2 {
		t.Fatalf("unexpected main record: %+v", main)
	}

	feature1 := worktrees[1]
	if feature1.IsMain {
		t.Fatalf("only the first record may be main")
	}
	if !feature1.Dirty || feature1.Untracked != 1 || feature1.Modified != 1 || feature1.Staged != 0 {
		t.Fatalf("unexpected feature1 record: %+v", feature1)
	}
	if feature1.LastActiveTS != 2000 || feature1.LastActive != "1 hour ago" {
		t.Fatalf("branch metadata not joined: %+v", feature1)
	}

	feature2 := worktrees[2]
	if !feature2.Dirty || feature2.Staged != 1 {
		t.Fatalf("staged-only worktree must be dirty: %+v", feature2)
	}
	if rec.count() != 0 {
		t.Fatalf("expected no notifications, got %v", rec.messages())
	}
}

func TestWorktrees_FilterScenario(t *testing.T) {
	s, _ := newTestSession(newEnumerationFake())

	filtered := filterWorktrees(s.Worktrees(), "feature1")
	if len(filtered) != 1 {
		t.Fatalf("expected exactly one match, got %d", len(filtered))
	}
	if filtered[0].Branch != "feature1" {
		t.Fatalf("expected feature1, got %q", filtered[0].Branch)
	}
}

func TestWorktrees_ListingFailureYieldsEmpty(t *testing.T) {
	f := &fakeRunner{respond: func([]string, string) (processResult, error) {
		return exitResult(128, "fatal: not a git repository")
	}}
	s, rec := newTestSession(f)

	worktrees := s.Worktrees()
	if len(worktrees) != 0 {
		t.Fatalf("expected empty sequence, got %d records", len(worktrees))
	}
	if rec.count() != 1 {
		t.Fatalf("expected one failure notification, got %d", rec.count())
	}
}

func TestBranchMetadata_SkipsMalformedLines(t *testing.T) {
	f := &fakeRunner{respond: func([]string, string) (processResult, error) {
		return textResult("good|1 hour ago|42\nno-separator-line\nbad|ts|not-a-number")
	}}
	s, _ := newTestSession(f)

	info, ok := s.branchMetadata()
	if !ok {
		t.Fatalf("expected metadata")
	}
	if len(info) != 1 {
		t.Fatalf("expected malformed lines skipped, got %d entries", len(info))
	}
	if info["good"].lastActiveTS != 42 {
		t.Fatalf("unexpected entry: %+v", info["good"])
	}
}

func TestMainWorktreePath_Fallback(t *testing.T) {
	f := &fakeRunner{respond: func([]string, string) (processResult, error) {
		return exitResult(128, "fatal")
	}}
	s, _ := newTestSession(f)

	if got := s.MainWorktreePath("/fallback"); got != "/fallback" {
		t.Fatalf("expected fallback path, got %q", got)
	}
}
