package main

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func testWorktreeSet() []*WorktreeInfo {
	return []*WorktreeInfo{
		{Path: "/repo/main", Branch: "main", IsMain: true, Ahead: 1, Behind: 2, LastActiveTS: 50},
		{Path: "/repo/wt/feature1", Branch: "feature1", Dirty: true, Untracked: 1, Modified: 1, LastActiveTS: 300},
		{Path: "/repo/wt/feature2", Branch: "feature2", Dirty: true, Staged: 1, LastActiveTS: 100},
	}
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestFilterWorktrees_ByNameAndBranch(t *testing.T) {
	worktrees := testWorktreeSet()

	if got := filterWorktrees(worktrees, "feature1"); len(got) != 1 || got[0].Branch != "feature1" {
		t.Fatalf("expected exactly feature1, got %d records", len(got))
	}
	if got := filterWorktrees(worktrees, "FEATURE"); len(got) != 2 {
		t.Fatalf("matching is case-insensitive, got %d records", len(got))
	}
	if got := filterWorktrees(worktrees, "main"); len(got) != 1 || !got[0].IsMain {
		t.Fatalf("the main worktree is named main, got %d records", len(got))
	}
	if got := filterWorktrees(worktrees, ""); len(got) != 3 {
		t.Fatalf("empty query matches everything, got %d records", len(got))
	}
}

func TestFilterWorktrees_PathNeedsSeparator(t *testing.T) {
	worktrees := testWorktreeSet()

	// "wt" only appears in paths; without a separator it must not match.
	if got := filterWorktrees(worktrees, "wt"); len(got) != 0 {
		t.Fatalf("bare substrings must not match paths, got %d records", len(got))
	}
	if got := filterWorktrees(worktrees, "wt/"); len(got) != 2 {
		t.Fatalf("queries with a separator match paths, got %d records", len(got))
	}
}

func TestSortWorktrees_MainPinnedFirst(t *testing.T) {
	worktrees := testWorktreeSet()

	sortWorktrees(worktrees, true)
	if !worktrees[0].IsMain {
		t.Fatalf("main must sort first, got %q", worktrees[0].Path)
	}
	if worktrees[1].Branch != "feature1" || worktrees[2].Branch != "feature2" {
		t.Fatalf("expected newest-first after main: %q, %q", worktrees[1].Branch, worktrees[2].Branch)
	}

	sortWorktrees(worktrees, false)
	if worktrees[1].Path != "/repo/wt/feature1" || worktrees[2].Path != "/repo/wt/feature2" {
		t.Fatalf("expected path order after main: %q, %q", worktrees[1].Path, worktrees[2].Path)
	}
}

func newTestModel(t *testing.T) model {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	s, _ := newTestSession(&fakeRunner{})
	s.repoKey = "acme/widgets"
	return newModel(s, s.cfg, "", make(chan Notification, 8))
}

func TestNewModel_SeedsListFromCache(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	s, _ := newTestSession(&fakeRunner{})
	s.repoKey = "acme/widgets"
	s.SaveWorktreeCache(testWorktreeSet())

	m := newModel(s, s.cfg, "", make(chan Notification, 8))
	if len(m.visible) != 3 {
		t.Fatalf("expected cached entries on first paint, got %d", len(m.visible))
	}
	if !m.worktrees[0].IsMain {
		t.Fatalf("first cached entry is the main worktree")
	}
}

func TestModel_DiscardsStaleRefreshResults(t *testing.T) {
	m := newTestModel(t)
	stale := m.tasks.Next("refresh")
	current := m.tasks.Next("refresh")

	next, _ := m.Update(worktreesLoadedMsg{seq: stale, worktrees: []*WorktreeInfo{{Path: "/stale"}}})
	m = next.(model)
	if len(m.worktrees) != 0 {
		t.Fatalf("a superseded refresh must be discarded")
	}

	next, _ = m.Update(worktreesLoadedMsg{seq: current, worktrees: testWorktreeSet()})
	m = next.(model)
	if len(m.worktrees) != 3 || len(m.visible) != 3 {
		t.Fatalf("the current refresh must land, got %d/%d", len(m.worktrees), len(m.visible))
	}
}

func TestModel_RestoresSelectionAcrossRebuilds(t *testing.T) {
	m := newTestModel(t)
	m.worktrees = testWorktreeSet()
	m.selectedPath = "/repo/wt/feature2"
	m.applyFilter()

	if m.selected() == nil || m.selected().Path != "/repo/wt/feature2" {
		t.Fatalf("cursor not restored by path, got %+v", m.selected())
	}

	// A rebuild without the selected path falls back to the top.
	m.worktrees = m.worktrees[:2]
	m.applyFilter()
	if m.cursor != 0 {
		t.Fatalf("missing selection must reset the cursor, got %d", m.cursor)
	}
}

func TestModel_DiscardsStaleDetails(t *testing.T) {
	m := newTestModel(t)
	m.worktrees = testWorktreeSet()
	m.applyFilter()

	stale := m.tasks.Next("details")
	current := m.tasks.Next("details")

	next, _ := m.Update(detailsLoadedMsg{seq: stale, content: detailsContent{path: "/stale"}})
	m = next.(model)
	if m.detailsFor == "/stale" {
		t.Fatalf("stale details must be discarded")
	}

	next, _ = m.Update(detailsLoadedMsg{seq: current, content: detailsContent{path: "/repo/main"}})
	m = next.(model)
	if m.detailsFor != "/repo/main" {
		t.Fatalf("current details must land, got %q", m.detailsFor)
	}
}

func TestModel_RepeatPRFetchWarnsInsteadOfRefetching(t *testing.T) {
	m := newTestModel(t)
	m.ready = true
	m.prLoaded = true

	next, cmd := m.updateList(keyMsg("p"))
	m = next.(model)
	if cmd != nil {
		t.Fatalf("a repeat fetch must not issue a command")
	}
	if len(m.notices) != 1 || m.notices[0].Severity != severityWarning {
		t.Fatalf("expected a single warning, got %+v", m.notices)
	}
}

func TestModel_FailedMutationStopsSpinner(t *testing.T) {
	m := newTestModel(t)
	m.refreshing = true
	m.prLoaded = true

	next, cmd := m.Update(mutationDoneMsg{label: "delete", ok: false})
	m = next.(model)
	if m.refreshing {
		t.Fatalf("a failed mutation must not leave the spinner running")
	}
	if cmd != nil {
		t.Fatalf("a failed mutation must not trigger a refresh")
	}
	if !m.prLoaded {
		t.Fatalf("the PR no-refetch guard only resets on success")
	}
}

func TestModel_PRDataSurvivesRebuild(t *testing.T) {
	m := newTestModel(t)
	m.prs = map[string]PRInfo{"feature1": {Number: 7, State: prStateOpen}}
	seq := m.tasks.Next("refresh")

	next, _ := m.Update(worktreesLoadedMsg{seq: seq, worktrees: testWorktreeSet()})
	m = next.(model)

	for _, wt := range m.worktrees {
		if wt.Branch == "feature1" {
			if wt.PR == nil || wt.PR.Number != 7 {
				t.Fatalf("PR data must be re-attached after a rebuild: %+v", wt.PR)
			}
			return
		}
	}
	t.Fatalf("feature1 missing from rebuilt list")
}
