package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	uiview "github.com/mrbonezy/wts/ui"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	paneStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	activeTabStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	mutedTabStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	noticeError    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	noticeWarning  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	noticeInfo     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	helpKeyStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
)

const listPaneWidth = 78

func (m *model) resizePanes() {
	detailsWidth := m.width - listPaneWidth - 6
	if detailsWidth < 20 {
		detailsWidth = 20
	}
	detailsHeight := m.height - 8
	if detailsHeight < 5 {
		detailsHeight = 5
	}
	m.details.Width = detailsWidth
	m.details.Height = detailsHeight
	m.refreshDetailsPane()
}

// refreshDetailsPane rebuilds the viewport content for the active tab.
func (m *model) refreshDetailsPane() {
	m.details.SetContent(m.renderDetailsContent())
	m.details.GotoTop()
}

func (m *model) renderDetailsContent() string {
	wt := m.selected()
	if wt == nil || m.detailsFor == "" || m.detailsFor != wt.Path {
		return m.styles.Muted("Loading...")
	}
	switch m.tab {
	case tabDiff:
		if m.commit != nil {
			header := uiview.RenderCommitHeader(
				m.commit.info.SHA, m.commit.info.Author, m.commit.info.Date,
				m.commit.info.Subject, m.commit.info.Body, m.styles)
			return header + "\n" + m.commit.diff
		}
		if strings.TrimSpace(m.content.diff) == "" {
			return m.styles.Clean("No working tree changes.")
		}
		return m.content.diff
	case tabLog:
		return m.renderLog()
	}
	info := uiview.DetailsInfo{
		Path:       wt.Path,
		Branch:     wt.Branch,
		Divergence: m.content.divergence,
	}
	if wt.PR != nil {
		info.PRNumber = wt.PR.Number
		info.PRState = wt.PR.State
		info.PRTitle = wt.PR.Title
		info.PRURL = wt.PR.URL
	}
	var b strings.Builder
	b.WriteString(uiview.RenderDetailsInfo(info, true, m.styles))
	b.WriteString("\n")
	b.WriteString(uiview.RenderStatusLines(m.content.statusRaw, m.styles))
	return b.String()
}

func (m *model) renderLog() string {
	lines := m.logLines()
	if len(lines) == 0 {
		return m.styles.Muted("No commits.")
	}
	var b strings.Builder
	for i, line := range lines {
		sha, subject, _ := strings.Cut(line, "\t")
		row := m.styles.Ahead(sha) + " " + subject
		if i == m.logCursor {
			row = m.styles.Selected("> " + sha + " " + subject)
		} else {
			row = "  " + row
		}
		b.WriteString(row)
		b.WriteString("\n")
	}
	return b.String()
}

func (m model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.mode == modeHelp {
		return m.helpView()
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")

	rows := make([]uiview.WorktreeRow, len(m.visible))
	for i, wt := range m.visible {
		row := uiview.WorktreeRow{
			Name:        uiview.WorktreeName(wt.Path, wt.IsMain),
			Status:      uiview.StatusLabel(wt.Dirty),
			AheadBehind: uiview.AheadBehindLabel(wt.Ahead, wt.Behind),
			PR:          "-",
			LastActive:  wt.LastActive,
			IsMain:      wt.IsMain,
		}
		if wt.PR != nil {
			row.PR = uiview.PRLabel(wt.PR.Number, wt.PR.State)
		}
		rows[i] = row
	}
	listPane := paneStyle.Width(listPaneWidth).Render(
		uiview.RenderWorktreeList(rows, m.cursor, m.styles))
	detailsPane := paneStyle.Width(m.details.Width + 2).Render(
		m.tabsView() + "\n" + m.details.View())
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailsPane))
	b.WriteString("\n")
	b.WriteString(m.noticesView())

	switch m.mode {
	case modeFilter:
		b.WriteString("\n/")
		b.WriteString(m.filterInput.View())
	case modeCreate:
		b.WriteString("\nNew worktree: ")
		b.WriteString(m.createInput.View())
	case modeConfirm:
		if m.confirmForm != nil {
			b.WriteString("\n")
			b.WriteString(m.confirmForm.View())
		}
	default:
		b.WriteString("\n")
		b.WriteString(m.footerView())
	}
	return b.String()
}

func (m model) headerView() string {
	title := titleStyle.Render("wts")
	repo := m.styles.Muted(m.session.RepoKey())
	parts := []string{title, repo}
	if m.filterQuery != "" && m.mode != modeFilter {
		parts = append(parts, m.styles.Header(fmt.Sprintf("filter: %s", m.filterQuery)))
	}
	if m.sortByActive {
		parts = append(parts, m.styles.Muted("sort: active"))
	} else {
		parts = append(parts, m.styles.Muted("sort: path"))
	}
	if m.refreshing || m.fetching {
		parts = append(parts, m.spin.View())
	}
	return strings.Join(parts, "  ")
}

func (m model) tabsView() string {
	labels := []string{"1:details", "2:diff", "3:log"}
	for i := range labels {
		if detailsTab(i) == m.tab {
			labels[i] = activeTabStyle.Render(labels[i])
		} else {
			labels[i] = mutedTabStyle.Render(labels[i])
		}
	}
	return strings.Join(labels, " ")
}

func (m model) noticesView() string {
	if len(m.notices) == 0 {
		return ""
	}
	start := len(m.notices) - 3
	if start < 0 {
		start = 0
	}
	var b strings.Builder
	for _, n := range m.notices[start:] {
		style := noticeInfo
		switch n.Severity {
		case severityError:
			style = noticeError
		case severityWarning:
			style = noticeWarning
		}
		b.WriteString(style.Render(n.Message))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m model) footerView() string {
	return mutedTabStyle.Render(
		"enter jump · c create · d delete · a absorb · p PRs · f fetch · r refresh · / filter · o lazygit · ? help · q quit")
}

func (m model) helpView() string {
	keys := [][2]string{
		{"enter", "jump to worktree (prints path on exit)"},
		{"j/k", "move selection (log line in log tab)"},
		{"g/G", "first/last worktree"},
		{"tab, 1/2/3", "switch details tab"},
		{"ctrl+d/ctrl+u", "scroll details"},
		{"r", "refresh worktree list"},
		{"p", "fetch pull request data"},
		{"f", "git fetch --all, then refresh"},
		{"c", "create worktree"},
		{"d", "delete worktree (confirm)"},
		{"a", "absorb worktree into main (confirm)"},
		{"s", "toggle sort (last active / path)"},
		{"/", "filter by name or branch"},
		{"o", "open lazygit in worktree"},
		{"O", "open pull request in browser"},
		{"q", "quit"},
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("wts keys"))
	b.WriteString("\n\n")
	for _, k := range keys {
		b.WriteString("  ")
		b.WriteString(helpKeyStyle.Render(uiview.PadOrTrim(k[0], 16)))
		b.WriteString(k[1])
		b.WriteString("\n")
	}
	b.WriteString("\nPress any key to return.")
	return b.String()
}
