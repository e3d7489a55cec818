package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	uiview "github.com/mrbonezy/wts/ui"
)

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resizePanes()
		return m, nil

	case spinner.TickMsg:
		if !m.refreshing && !m.fetching {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case noticeMsg:
		m.notices = append(m.notices, Notification(msg))
		if len(m.notices) > maxNotices {
			m.notices = m.notices[len(m.notices)-maxNotices:]
		}
		return m, waitNoticeCmd(m.notifyCh)

	case worktreesLoadedMsg:
		if !m.tasks.IsCurrent("refresh", msg.seq) {
			return m, nil
		}
		m.refreshing = false
		m.worktrees = msg.worktrees
		if m.prs != nil {
			AttachPRData(m.worktrees, m.prs)
		}
		if m.firstLoad {
			m.firstLoad = false
			if last := m.session.ReadLastSelected(); last != "" {
				m.selectedPath = last
			}
		}
		m.applyFilter()
		return m, m.scheduleDetails()

	case debounceDetailsMsg:
		if !m.tasks.IsCurrent("details-debounce", msg.seq) {
			return m, nil
		}
		wt := m.selected()
		if wt == nil {
			return m, nil
		}
		return m, m.detailsCmd(m.tasks.Next("details"), wt)

	case detailsLoadedMsg:
		if !m.tasks.IsCurrent("details", msg.seq) {
			return m, nil
		}
		m.content = msg.content
		m.detailsFor = msg.content.path
		m.commit = nil
		m.logCursor = 0
		m.refreshDetailsPane()
		return m, nil

	case commitDiffLoadedMsg:
		if !m.tasks.IsCurrent("commit-diff", msg.seq) {
			return m, nil
		}
		if msg.commit.info == nil {
			return m, nil
		}
		m.commit = &msg.commit
		m.tab = tabDiff
		m.refreshDetailsPane()
		return m, nil

	case prFetchedMsg:
		m.fetching = false
		if !msg.ok {
			return m, nil
		}
		m.prs = msg.prs
		m.prLoaded = true
		AttachPRData(m.worktrees, m.prs)
		m.applyFilter()
		m.refreshDetailsPane()
		return m, nil

	case fetchRemotesDoneMsg:
		m.fetching = false
		m.refreshing = true
		return m, tea.Batch(m.spin.Tick, m.refreshCmd())

	case mutationDoneMsg:
		if !msg.ok {
			m.refreshing = false
			return m, nil
		}
		// A mutation invalidates the PR no-refetch guard.
		m.prLoaded = false
		m.refreshing = true
		return m, tea.Batch(m.spin.Tick, m.refreshCmd())

	case lazygitDoneMsg:
		if msg.err != nil {
			m.notices = append(m.notices, Notification{
				Message:  fmt.Sprintf("lazygit: %v", msg.err),
				Severity: severityError,
			})
		}
		m.refreshing = true
		return m, tea.Batch(m.spin.Tick, m.refreshCmd())

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.mode == modeConfirm && m.confirmForm != nil {
		return m.updateConfirm(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeFilter:
		return m.updateFilter(msg)
	case modeCreate:
		return m.updateCreate(msg)
	case modeConfirm:
		return m.updateConfirm(msg)
	case modeHelp:
		m.mode = modeList
		return m, nil
	}
	return m.updateList(msg)
}

func (m model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "j", "down":
		if m.tab == tabLog {
			return m.moveLogCursor(1), nil
		}
		return m.moveCursor(1)

	case "k", "up":
		if m.tab == tabLog {
			return m.moveLogCursor(-1), nil
		}
		return m.moveCursor(-1)

	case "g", "home":
		return m.setCursor(0)

	case "G", "end":
		return m.setCursor(len(m.visible) - 1)

	case "ctrl+d", "pgdown":
		m.details.HalfViewDown()
		return m, nil

	case "ctrl+u", "pgup":
		m.details.HalfViewUp()
		return m, nil

	case "enter":
		if m.tab == tabLog {
			return m.openLogCommit()
		}
		wt := m.selected()
		if wt == nil {
			return m, nil
		}
		m.session.WriteLastSelected(wt.Path)
		m.jumpPath = wt.Path
		return m, tea.Quit

	case "r":
		m.refreshing = true
		return m, tea.Batch(m.spin.Tick, m.refreshCmd())

	case "p":
		if m.prLoaded {
			m.notices = append(m.notices, Notification{
				Message:  "PR data already loaded. Use 'r' to refresh.",
				Severity: severityWarning,
			})
			return m, nil
		}
		m.fetching = true
		return m, tea.Batch(m.spin.Tick, m.fetchPRsCmd())

	case "f":
		m.fetching = true
		return m, tea.Batch(m.spin.Tick, m.fetchRemotesCmd())

	case "c":
		m.mode = modeCreate
		m.createInput.SetValue("")
		m.createInput.Focus()
		return m, nil

	case "d":
		return m.askConfirm(confirmDelete)

	case "a":
		return m.askConfirm(confirmAbsorb)

	case "s":
		m.sortByActive = !m.sortByActive
		m.applyFilter()
		return m, m.scheduleDetails()

	case "/":
		m.mode = modeFilter
		m.filterInput.SetValue(m.filterQuery)
		m.filterInput.Focus()
		return m, nil

	case "o":
		wt := m.selected()
		if wt == nil {
			return m, nil
		}
		return m, lazygitCmd(wt.Path)

	case "O":
		wt := m.selected()
		if wt == nil || wt.PR == nil || wt.PR.URL == "" {
			return m, nil
		}
		return m, openBrowserCmd(wt.PR.URL)

	case "tab":
		m.tab = (m.tab + 1) % 3
		m.refreshDetailsPane()
		return m, nil

	case "1":
		m.tab = tabInfo
		m.refreshDetailsPane()
		return m, nil

	case "2":
		m.tab = tabDiff
		m.refreshDetailsPane()
		return m, nil

	case "3":
		m.tab = tabLog
		m.refreshDetailsPane()
		return m, nil

	case "?":
		m.mode = modeHelp
		return m, nil
	}
	return m, nil
}

func (m model) moveCursor(delta int) (tea.Model, tea.Cmd) {
	return m.setCursor(m.cursor + delta)
}

func (m model) setCursor(index int) (tea.Model, tea.Cmd) {
	if len(m.visible) == 0 {
		return m, nil
	}
	if index < 0 {
		index = 0
	}
	if index >= len(m.visible) {
		index = len(m.visible) - 1
	}
	if index == m.cursor {
		return m, nil
	}
	m.cursor = index
	m.selectedPath = m.visible[index].Path
	return m, m.scheduleDetails()
}

func (m model) moveLogCursor(delta int) model {
	lines := m.logLines()
	if len(lines) == 0 {
		return m
	}
	m.logCursor += delta
	if m.logCursor < 0 {
		m.logCursor = 0
	}
	if m.logCursor >= len(lines) {
		m.logCursor = len(lines) - 1
	}
	m.refreshDetailsPane()
	return m
}

func (m model) openLogCommit() (tea.Model, tea.Cmd) {
	lines := m.logLines()
	if m.logCursor < 0 || m.logCursor >= len(lines) {
		return m, nil
	}
	sha, _, ok := strings.Cut(lines[m.logCursor], "\t")
	if !ok || sha == "" {
		return m, nil
	}
	return m, m.commitDiffCmd(m.tasks.Next("commit-diff"), m.detailsFor, sha)
}

func (m model) logLines() []string {
	if strings.TrimSpace(m.content.logRaw) == "" {
		return nil
	}
	return strings.Split(m.content.logRaw, "\n")
}

func (m model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.mode = modeList
		m.filterInput.Blur()
		return m, nil
	case "esc":
		m.mode = modeList
		m.filterInput.Blur()
		m.filterInput.SetValue("")
		m.filterQuery = ""
		m.applyFilter()
		return m, m.scheduleDetails()
	}
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.filterQuery = m.filterInput.Value()
	m.applyFilter()
	return m, tea.Batch(cmd, m.scheduleDetails())
}

func (m model) updateCreate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		name := strings.TrimSpace(m.createInput.Value())
		m.mode = modeList
		m.createInput.Blur()
		if name == "" {
			return m, nil
		}
		m.refreshing = true
		return m, tea.Batch(m.spin.Tick, m.createCmd(name))
	case "esc":
		m.mode = modeList
		m.createInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.createInput, cmd = m.createInput.Update(msg)
	return m, cmd
}

func (m model) askConfirm(kind confirmKind) (tea.Model, tea.Cmd) {
	wt := m.selected()
	if wt == nil {
		return m, nil
	}
	if wt.IsMain {
		m.notices = append(m.notices, Notification{
			Message:  "Cannot modify the main worktree",
			Severity: severityWarning,
		})
		return m, nil
	}
	name := uiview.WorktreeName(wt.Path, wt.IsMain)
	var title, desc string
	switch kind {
	case confirmDelete:
		title = fmt.Sprintf("Delete worktree %q?", name)
		desc = fmt.Sprintf("Removes %s and force-deletes branch %s.", wt.Path, wt.Branch)
	case confirmAbsorb:
		title = fmt.Sprintf("Absorb worktree %q?", name)
		desc = fmt.Sprintf("Merges %s into %s, then deletes the worktree.", wt.Branch, m.session.MainBranch())
	}
	m.confirmKind = kind
	m.confirmTarget = wt
	m.confirmYes = false
	m.confirmForm = newConfirmForm(title, desc, &m.confirmYes)
	m.mode = modeConfirm
	return m, m.confirmForm.Init()
}

func (m model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.confirmForm == nil {
		m.mode = modeList
		return m, nil
	}
	form, cmd := m.confirmForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.confirmForm = f
	}
	if m.confirmForm.State != huh.StateCompleted {
		return m, cmd
	}

	kind := m.confirmKind
	target := m.confirmTarget
	accepted := m.confirmForm.GetBool(confirmFieldKey)
	m.mode = modeList
	m.confirmForm = nil
	m.confirmKind = confirmNone
	m.confirmTarget = nil
	if !accepted || target == nil {
		return m, nil
	}
	m.refreshing = true
	switch kind {
	case confirmDelete:
		return m, tea.Batch(m.spin.Tick, m.deleteCmd(target))
	case confirmAbsorb:
		return m, tea.Batch(m.spin.Tick, m.absorbCmd(target))
	}
	return m, nil
}
