package ui

import (
	"strings"
	"testing"
)

func TestWorktreeName(t *testing.T) {
	cases := []struct {
		path   string
		isMain bool
		want   string
	}{
		{"/repo/project", true, "main"},
		{"/repo/wt/feature1", false, "feature1"},
		{"/deep/nested/fix-42", false, "fix-42"},
	}
	for _, tc := range cases {
		if got := WorktreeName(tc.path, tc.isMain); got != tc.want {
			t.Fatalf("WorktreeName(%q, %v) = %q, want %q", tc.path, tc.isMain, got, tc.want)
		}
	}
}

func TestStatusLabel(t *testing.T) {
	if StatusLabel(true) != "✎" || StatusLabel(false) != "✔" {
		t.Fatalf("unexpected status labels: %q %q", StatusLabel(true), StatusLabel(false))
	}
}

func TestAheadBehindLabel(t *testing.T) {
	cases := []struct {
		ahead, behind int
		want          string
	}{
		{0, 0, "0"},
		{3, 0, "↑3"},
		{0, 2, "↓2"},
		{1, 4, "↑1 ↓4"},
	}
	for _, tc := range cases {
		if got := AheadBehindLabel(tc.ahead, tc.behind); got != tc.want {
			t.Fatalf("AheadBehindLabel(%d, %d) = %q, want %q", tc.ahead, tc.behind, got, tc.want)
		}
	}
}

func TestPRLabel(t *testing.T) {
	if got := PRLabel(12, "OPEN"); got != "#12 O" {
		t.Fatalf("expected #12 O, got %q", got)
	}
	if got := PRLabel(0, ""); got != "-" {
		t.Fatalf("expected dash for no PR, got %q", got)
	}
	if got := PRLabel(3, ""); got != "#3 -" {
		t.Fatalf("expected dash initial for empty state, got %q", got)
	}
}

func TestPadOrTrim(t *testing.T) {
	if got := PadOrTrim("ab", 5); got != "ab   " {
		t.Fatalf("expected padding, got %q", got)
	}
	if got := PadOrTrim("abcdef", 4); got != "abc…" {
		t.Fatalf("expected truncation with ellipsis, got %q", got)
	}
	if got := PadOrTrim("wide", 0); got != "" {
		t.Fatalf("zero width yields empty, got %q", got)
	}
}

func TestRenderWorktreeList_MarksCursorRow(t *testing.T) {
	marker := func(s string) string { return ">" + s + "<" }
	styles := PlainStyles()
	styles.Selected = marker

	rows := []WorktreeRow{
		{Name: "main", Status: "✔", AheadBehind: "0", PR: "-", LastActive: "1 hour ago", IsMain: true},
		{Name: "feature1", Status: "✎", AheadBehind: "↑1", PR: "#12 O", LastActive: "now"},
	}
	out := RenderWorktreeList(rows, 1, styles)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
	}
	if !strings.Contains(lines[0], "Worktree") || !strings.Contains(lines[0], "Last Active") {
		t.Fatalf("missing header: %q", lines[0])
	}
	if strings.Contains(lines[1], ">") {
		t.Fatalf("non-cursor row must not be marked: %q", lines[1])
	}
	if !strings.HasPrefix(strings.TrimSpace(lines[2]), ">") || !strings.Contains(lines[2], "feature1") {
		t.Fatalf("cursor row must use the selected style: %q", lines[2])
	}
}
