package ui

import (
	"fmt"
	"path/filepath"
	"strings"
)

// WorktreeRow is the display form of one worktree list entry.
type WorktreeRow struct {
	Name        string
	Status      string
	AheadBehind string
	PR          string
	LastActive  string
	IsMain      bool
}

// WorktreeName is the list label for a worktree: the path basename,
// except the main worktree which is always shown as "main".
func WorktreeName(path string, isMain bool) string {
	if isMain {
		return "main"
	}
	name := filepath.Base(path)
	if name == "." || name == string(filepath.Separator) {
		return path
	}
	return name
}

// StatusLabel renders the dirty marker.
func StatusLabel(dirty bool) string {
	if dirty {
		return "✎"
	}
	return "✔"
}

// AheadBehindLabel renders upstream divergence as arrow counts, or "0"
// when the branch is in sync.
func AheadBehindLabel(ahead int, behind int) string {
	var b strings.Builder
	if ahead > 0 {
		fmt.Fprintf(&b, "↑%d", ahead)
	}
	if behind > 0 {
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "↓%d", behind)
	}
	if b.Len() == 0 {
		return "0"
	}
	return b.String()
}

// PRLabel renders a PR cell as number plus one-letter state, or "-"
// when no PR is attached.
func PRLabel(number int, state string) string {
	if number <= 0 {
		return "-"
	}
	initial := "-"
	if state != "" {
		initial = state[:1]
	}
	return fmt.Sprintf("#%d %s", number, initial)
}

// RenderWorktreeList renders the full list pane with a cursor. Used by
// the plain (non-interactive) listing as well as tests; the dashboard
// feeds the same rows into its table widget.
func RenderWorktreeList(rows []WorktreeRow, cursor int, styles Styles) string {
	const (
		nameWidth   = 24
		statusWidth = 6
		abWidth     = 10
		prWidth     = 10
		activeWidth = 18
	)
	var b strings.Builder
	header := formatWorktreeLine("Worktree", "Status", "±", "PR", "Last Active",
		nameWidth, statusWidth, abWidth, prWidth, activeWidth)
	b.WriteString(styles.Header("  " + header))
	b.WriteString("\n")
	for i, row := range rows {
		// Pad before styling: escape sequences would throw off the
		// display-width padding.
		line := formatWorktreeLine(row.Name, row.Status, row.AheadBehind, row.PR, row.LastActive,
			nameWidth, statusWidth, abWidth, prWidth, activeWidth)
		switch {
		case i == cursor:
			line = styles.Selected(line)
		case row.IsMain:
			line = styles.Main(line)
		default:
			line = styles.Normal(line)
		}
		b.WriteString("  " + line)
		b.WriteString("\n")
	}
	return b.String()
}

func formatWorktreeLine(name string, status string, ab string, pr string, active string,
	nameWidth int, statusWidth int, abWidth int, prWidth int, activeWidth int) string {
	return PadOrTrim(name, nameWidth) + " " +
		PadOrTrim(status, statusWidth) + " " +
		PadOrTrim(ab, abWidth) + " " +
		PadOrTrim(pr, prWidth) + " " +
		PadOrTrim(active, activeWidth)
}
