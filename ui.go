package main

import (
	"fmt"
	"os/exec"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	uiview "github.com/mrbonezy/wts/ui"
)

const (
	detailsDebounce = 100 * time.Millisecond
	maxNotices      = 200
)

type uiMode int

const (
	modeList uiMode = iota
	modeFilter
	modeCreate
	modeConfirm
	modeHelp
)

type detailsTab int

const (
	tabInfo detailsTab = iota
	tabDiff
	tabLog
)

// detailsContent is everything the details pane shows for one worktree,
// loaded in a single background pass.
type detailsContent struct {
	path        string
	divergence  string
	statusRaw   string
	logRaw      string
	diff        string
	diffIsDelta bool
}

type commitView struct {
	info *CommitInfo
	diff string
}

type worktreesLoadedMsg struct {
	seq       int
	worktrees []*WorktreeInfo
}

type debounceDetailsMsg struct{ seq int }

type detailsLoadedMsg struct {
	seq     int
	content detailsContent
}

type commitDiffLoadedMsg struct {
	seq    int
	commit commitView
}

type prFetchedMsg struct {
	prs map[string]PRInfo
	ok  bool
}

type fetchRemotesDoneMsg struct{}

type mutationDoneMsg struct {
	label string
	ok    bool
}

type lazygitDoneMsg struct{ err error }

type noticeMsg Notification

type model struct {
	session *Session
	cfg     *AppConfig

	worktrees []*WorktreeInfo
	visible   []*WorktreeInfo
	cursor    int

	// selectedPath restores the cursor after every list rebuild.
	selectedPath string
	firstLoad    bool

	mode uiMode
	tab  detailsTab

	filterInput textinput.Model
	filterQuery string
	createInput textinput.Model

	spin       spinner.Model
	refreshing bool
	fetching   bool

	details    viewport.Model
	detailsFor string
	content    detailsContent
	logCursor  int
	commit     *commitView

	prs      map[string]PRInfo
	prLoaded bool

	sortByActive bool

	confirmForm   *huh.Form
	confirmKind   confirmKind
	confirmYes    bool
	confirmTarget *WorktreeInfo

	notices  []Notification
	notifyCh chan Notification

	tasks  *taskSeq
	styles uiview.Styles

	width  int
	height int
	ready  bool

	// jumpPath is printed by main after the program exits.
	jumpPath string
}

func newModel(session *Session, cfg *AppConfig, initialFilter string, notifyCh chan Notification) model {
	filter := textinput.New()
	filter.Placeholder = "filter"
	filter.CharLimit = 120
	filter.Width = 30

	create := textinput.New()
	create.Placeholder = "branch name"
	create.CharLimit = 120
	create.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := model{
		session:      session,
		cfg:          cfg,
		filterInput:  filter,
		filterQuery:  strings.TrimSpace(initialFilter),
		createInput:  create,
		spin:         sp,
		details:      viewport.New(0, 0),
		notifyCh:     notifyCh,
		tasks:        newTaskSeq(),
		styles:       uiview.DefaultStyles(),
		sortByActive: cfg.SortByActive,
		firstLoad:    true,
		refreshing:   true,
	}
	if m.filterQuery != "" {
		m.filterInput.SetValue(m.filterQuery)
	}
	// Seed the list from the persisted snapshot so the first paint shows
	// entries while the real enumeration is still running.
	if cached := session.LoadWorktreeCache(); len(cached) > 0 {
		seed := make([]*WorktreeInfo, 0, len(cached))
		for i, c := range cached {
			seed = append(seed, &WorktreeInfo{
				Path:         c.Path,
				Branch:       c.Branch,
				LastActiveTS: c.LastActiveTS,
				IsMain:       i == 0,
			})
		}
		m.worktrees = seed
		m.applyFilter()
	}
	return m
}

func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spin.Tick, m.refreshCmd(), waitNoticeCmd(m.notifyCh)}
	if m.cfg.AutoFetchPRs {
		cmds = append(cmds, m.fetchPRsCmd())
	}
	return tea.Batch(cmds...)
}

func (m model) selected() *WorktreeInfo {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return nil
	}
	return m.visible[m.cursor]
}

// applyFilter recomputes the visible slice from the canonical list and
// restores the cursor to the previously selected path when it survives
// the rebuild.
func (m *model) applyFilter() {
	m.visible = filterWorktrees(m.worktrees, m.filterQuery)
	sortWorktrees(m.visible, m.sortByActive)
	m.cursor = 0
	if m.selectedPath != "" {
		for i, wt := range m.visible {
			if wt.Path == m.selectedPath {
				m.cursor = i
				break
			}
		}
	}
	if sel := m.selected(); sel != nil {
		m.selectedPath = sel.Path
	}
}

// filterWorktrees matches the query as a lowercase substring of the
// display name or branch. The full path participates only when the
// query itself contains a path separator.
func filterWorktrees(worktrees []*WorktreeInfo, query string) []*WorktreeInfo {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]*WorktreeInfo, 0, len(worktrees))
	if q == "" {
		out = append(out, worktrees...)
		return out
	}
	matchPath := strings.Contains(q, "/")
	for _, wt := range worktrees {
		name := strings.ToLower(uiview.WorktreeName(wt.Path, wt.IsMain))
		branch := strings.ToLower(wt.Branch)
		switch {
		case strings.Contains(name, q), strings.Contains(branch, q):
			out = append(out, wt)
		case matchPath && strings.Contains(strings.ToLower(wt.Path), q):
			out = append(out, wt)
		}
	}
	return out
}

// sortWorktrees orders the list with the main worktree pinned first,
// then by last activity (newest first) or path.
func sortWorktrees(worktrees []*WorktreeInfo, byActive bool) {
	sort.SliceStable(worktrees, func(i, j int) bool {
		a, b := worktrees[i], worktrees[j]
		if a.IsMain != b.IsMain {
			return a.IsMain
		}
		if byActive && a.LastActiveTS != b.LastActiveTS {
			return a.LastActiveTS > b.LastActiveTS
		}
		return a.Path < b.Path
	})
}

func (m model) refreshCmd() tea.Cmd {
	seq := m.tasks.Next("refresh")
	s := m.session
	return func() tea.Msg {
		worktrees := s.Worktrees()
		s.SaveWorktreeCache(worktrees)
		return worktreesLoadedMsg{seq: seq, worktrees: worktrees}
	}
}

// scheduleDetails debounces detail loading so rapid cursor movement
// does not spawn a query per row.
func (m model) scheduleDetails() tea.Cmd {
	seq := m.tasks.Next("details-debounce")
	return tea.Tick(detailsDebounce, func(time.Time) tea.Msg {
		return debounceDetailsMsg{seq: seq}
	})
}

func (m model) detailsCmd(seq int, wt *WorktreeInfo) tea.Cmd {
	s := m.session
	target := *wt
	return func() tea.Msg {
		c := detailsContent{path: target.Path}
		c.divergence = s.Divergence(&target)
		c.statusRaw = s.runGit([]string{"git", "status", "--short"}, target.Path, []int{0}, false)
		c.logRaw = s.runGit([]string{"git", "log", "-20", "--pretty=format:%h%x09%s"}, target.Path, []int{0}, true)
		if target.Dirty {
			c.diff, c.diffIsDelta = s.BuildWorkingDiff(target.Path)
		}
		return detailsLoadedMsg{seq: seq, content: c}
	}
}

func (m model) commitDiffCmd(seq int, path string, sha string) tea.Cmd {
	s := m.session
	return func() tea.Msg {
		info, diff, _ := s.BuildCommitDiff(path, sha)
		return commitDiffLoadedMsg{seq: seq, commit: commitView{info: info, diff: diff}}
	}
}

func (m model) fetchPRsCmd() tea.Cmd {
	s := m.session
	return func() tea.Msg {
		prs, ok := s.FetchPRMap()
		return prFetchedMsg{prs: prs, ok: ok}
	}
}

func (m model) fetchRemotesCmd() tea.Cmd {
	s := m.session
	return func() tea.Msg {
		s.runGit([]string{"git", "fetch", "--all", "--quiet"}, "", []int{0}, true)
		return fetchRemotesDoneMsg{}
	}
}

func (m model) createCmd(name string) tea.Cmd {
	s := m.session
	return func() tea.Msg {
		return mutationDoneMsg{label: "create", ok: s.CreateWorktree(name)}
	}
}

func (m model) deleteCmd(wt *WorktreeInfo) tea.Cmd {
	s := m.session
	target := *wt
	return func() tea.Msg {
		ok := s.DeleteWorktree(&target, func(string) bool { return true })
		return mutationDoneMsg{label: "delete", ok: ok}
	}
}

func (m model) absorbCmd(wt *WorktreeInfo) tea.Cmd {
	s := m.session
	target := *wt
	return func() tea.Msg {
		ok := s.AbsorbWorktree(&target, func(string) bool { return true })
		return mutationDoneMsg{label: "absorb", ok: ok}
	}
}

func lazygitCmd(path string) tea.Cmd {
	c := exec.Command("lazygit")
	c.Dir = path
	return tea.ExecProcess(c, func(err error) tea.Msg {
		return lazygitDoneMsg{err: err}
	})
}

func openBrowserCmd(url string) tea.Cmd {
	return func() tea.Msg {
		var c *exec.Cmd
		switch runtime.GOOS {
		case "darwin":
			c = exec.Command("open", url)
		default:
			c = exec.Command("xdg-open", url)
		}
		if err := c.Start(); err != nil {
			return noticeMsg(Notification{
				Message:  fmt.Sprintf("Failed to open browser: %v", err),
				Severity: severityError,
			})
		}
		return nil
	}
}

func waitNoticeCmd(ch chan Notification) tea.Cmd {
	return func() tea.Msg {
		return noticeMsg(<-ch)
	}
}
