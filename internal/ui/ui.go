// Package ui implements the interactive dashboard built on Bubble Tea.
package ui

import (
	"fmt"
	"os"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/Akaere-NetWorks/SSHC/internal/appconfig"
	"github.com/Akaere-NetWorks/SSHC/internal/backup"
	"github.com/Akaere-NetWorks/SSHC/internal/config"
	"github.com/Akaere-NetWorks/SSHC/internal/events"
	"github.com/Akaere-NetWorks/SSHC/internal/history"
	"github.com/Akaere-NetWorks/SSHC/internal/model"
	"github.com/Akaere-NetWorks/SSHC/internal/security"
	"github.com/Akaere-NetWorks/SSHC/internal/sshclient"
)

// uiMode is the dashboard's interaction state.
type uiMode int

const (
	modeBrowse uiMode = iota
	modeSearch
	modeEdit
	modeConfirmDelete
	modeReview
	modeConfirmDiscard
	modeConfirmQuit
)

type statusMsg string

type modelUI struct {
	mode uiMode

	session  *config.Session
	warnings []string

	filtered []model.HostEntry
	sel      int
	search   string

	form        *hostForm
	editAlias   string // alias being edited; empty while adding
	deleteAlias string

	lastConnected map[string]int64
	showHidden    bool
	showHelp      bool
	status        string

	width  int
	height int

	cfg appconfig.Config
	ssh *sshclient.Client
}

func initialModel() (modelUI, error) {
	cfg, err := appconfig.Load()
	if err != nil {
		cfg = appconfig.Default()
	}
	path := strings.TrimSpace(cfg.SSHConfigPath)
	if path == "" {
		path, err = config.DefaultPath()
		if err != nil {
			return modelUI{}, err
		}
	}
	session, warnings, err := config.LoadSession(path)
	if err != nil {
		return modelUI{}, err
	}
	last, err := history.LastConnected()
	if err != nil {
		last = map[string]int64{}
	}

	m := modelUI{
		session:       session,
		warnings:      warnings,
		lastConnected: last,
		showHidden:    cfg.UI.ShowHidden,
		cfg:           cfg,
		ssh:           sshclient.New(),
		status:        "Ready. Enter connects, a adds, e edits, v reviews pending changes.",
	}
	m.applyFilter()
	return m, nil
}

// Run starts the dashboard and blocks until the user quits.
func Run() error {
	if err := sshclient.EnsureSSHBinary(); err != nil {
		return err
	}
	m, err := initialModel()
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// visibleHosts returns the working-set hosts honoring the hidden flag,
// grouped by folder and ordered by recent connections within each group.
func (m *modelUI) visibleHosts() []model.HostEntry {
	hosts := m.session.Working().Hosts()
	if !m.showHidden {
		kept := hosts[:0]
		for _, h := range hosts {
			if !h.Hidden {
				kept = append(kept, h)
			}
		}
		hosts = kept
	}
	hosts = history.SortHostsRecent(hosts, m.lastConnected)
	sort.SliceStable(hosts, func(i, j int) bool {
		return folderRank(hosts[i].Folder) < folderRank(hosts[j].Folder)
	})
	return hosts
}

// folderRank sorts named folders alphabetically ahead of unfiled hosts.
func folderRank(folder string) string {
	if folder == "" {
		return "\xff"
	}
	return folder
}

type hostSource []model.HostEntry

func (s hostSource) Len() int { return len(s) }
func (s hostSource) String(i int) string {
	h := s[i]
	return strings.Join([]string{h.Alias, h.DisplayName, h.HostName, h.User, h.Folder, h.Description}, " ")
}

func (m *modelUI) applyFilter() {
	hosts := m.visibleHosts()
	if strings.TrimSpace(m.search) == "" {
		m.filtered = hosts
	} else {
		matches := fuzzy.FindFrom(strings.TrimSpace(m.search), hostSource(hosts))
		m.filtered = make([]model.HostEntry, 0, len(matches))
		for _, match := range matches {
			m.filtered = append(m.filtered, hosts[match.Index])
		}
	}
	if m.sel >= len(m.filtered) {
		m.sel = len(m.filtered) - 1
	}
	if m.sel < 0 {
		m.sel = 0
	}
}

func (m modelUI) Init() tea.Cmd { return nil }

func (m modelUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case statusMsg:
		m.status = string(msg)
		last, err := history.LastConnected()
		if err == nil {
			m.lastConnected = last
			m.applyFilter()
		}
		return m, nil
	case tea.KeyMsg:
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeEdit:
			return m.updateEdit(msg)
		case modeConfirmDelete:
			return m.updateConfirmDelete(msg)
		case modeReview:
			return m.updateReview(msg)
		case modeConfirmDiscard:
			return m.updateConfirmDiscard(msg)
		case modeConfirmQuit:
			return m.updateConfirmQuit(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m modelUI) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		if m.session.HasPendingChanges() && m.cfg.UI.ConfirmOnQuit {
			m.mode = modeConfirmQuit
			return m, nil
		}
		return m, tea.Quit
	case "j", "down":
		if m.sel < len(m.filtered)-1 {
			m.sel++
		}
	case "k", "up":
		if m.sel > 0 {
			m.sel--
		}
	case "/":
		m.mode = modeSearch
		m.status = "Search: type to filter, Enter keeps the filter, Esc clears it"
	case "?":
		m.showHelp = !m.showHelp
	case "h":
		m.showHidden = !m.showHidden
		m.applyFilter()
	case "r":
		if m.session.HasPendingChanges() {
			m.status = "Pending changes exist. Save (v then y) or discard (u) before reloading."
			break
		}
		return m.reload()
	case "a":
		m.form = newHostForm(model.HostEntry{}, false)
		m.editAlias = ""
		m.mode = modeEdit
	case "e":
		if len(m.filtered) == 0 {
			break
		}
		h := m.filtered[m.sel]
		m.form = newHostForm(h, true)
		m.editAlias = h.Alias
		m.mode = modeEdit
	case "d":
		if len(m.filtered) == 0 {
			break
		}
		m.deleteAlias = m.filtered[m.sel].Alias
		m.mode = modeConfirmDelete
	case "v":
		if !m.session.HasPendingChanges() {
			m.status = "No pending changes."
			break
		}
		m.mode = modeReview
	case "u":
		if !m.session.HasPendingChanges() {
			m.status = "No pending changes."
			break
		}
		m.mode = modeConfirmDiscard
	case "enter":
		if len(m.filtered) == 0 {
			break
		}
		return m.connect(m.filtered[m.sel])
	}
	return m, nil
}

func (m modelUI) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.mode = modeBrowse
		m.status = fmt.Sprintf("Filter kept: %q", m.search)
	case "esc":
		m.mode = modeBrowse
		m.search = ""
		m.applyFilter()
		m.status = "Filter cleared."
	case "backspace":
		if len(m.search) > 0 {
			m.search = m.search[:len(m.search)-1]
		}
		m.applyFilter()
	default:
		if len(msg.String()) == 1 {
			m.search += msg.String()
			m.applyFilter()
		}
	}
	return m, nil
}

func (m modelUI) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.mode = modeBrowse
		m.form = nil
		m.status = "Edit cancelled."
		return m, nil
	}
	entry, cmd := m.form.update(msg)
	if entry == nil {
		return m, cmd
	}

	var err error
	if m.editAlias == "" {
		err = m.session.Add(*entry)
	} else {
		err = m.session.Edit(m.editAlias, *entry)
	}
	if err != nil {
		m.form.errMsg = err.Error()
		return m, nil
	}
	m.mode = modeBrowse
	m.form = nil
	m.applyFilter()
	m.status = fmt.Sprintf("Staged %s. %d change(s) pending; v to review.", entry.Alias, len(m.session.Diff()))
	return m, nil
}

func (m modelUI) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		if err := m.session.Delete(m.deleteAlias); err != nil {
			m.status = "Delete failed: " + err.Error()
		} else {
			m.status = fmt.Sprintf("Staged removal of %s. %d change(s) pending.", m.deleteAlias, len(m.session.Diff()))
		}
		m.mode = modeBrowse
		m.deleteAlias = ""
		m.applyFilter()
	case "n", "esc":
		m.mode = modeBrowse
		m.deleteAlias = ""
		m.status = "Delete cancelled."
	}
	return m, nil
}

func (m modelUI) updateReview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y":
		return m.commit()
	case "u":
		m.mode = modeConfirmDiscard
	case "n", "esc", "v":
		m.mode = modeBrowse
	}
	return m, nil
}

func (m modelUI) updateConfirmDiscard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		m.session.Discard()
		m.mode = modeBrowse
		m.applyFilter()
		m.status = "Pending changes discarded."
	case "n", "esc":
		m.mode = modeBrowse
		m.status = "Discard cancelled."
	}
	return m, nil
}

func (m modelUI) updateConfirmQuit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		return m, tea.Quit
	case "n", "esc":
		m.mode = modeBrowse
		m.status = "Quit cancelled. v reviews pending changes."
	}
	return m, nil
}

// commit saves the working snapshot to disk. The current file is backed up
// first so a bad save can always be rolled back with `sshc backup restore`.
func (m modelUI) commit() (tea.Model, tea.Cmd) {
	changes := m.session.Diff()
	if _, err := os.Stat(m.session.Path()); err == nil {
		if _, err := backup.Save(m.session.Path(), "pre-save", m.cfg.BackupLimit); err != nil {
			m.status = "Backup failed, nothing written: " + security.UserMessage(err, true)
			m.mode = modeBrowse
			return m, nil
		}
	}
	if err := m.session.Commit(); err != nil {
		m.status = "Save failed: " + security.UserMessage(err, true)
		m.mode = modeBrowse
		return m, nil
	}
	// History for a host stops being meaningful once its removal is on
	// disk; staged deletes that get discarded keep theirs.
	for _, ch := range changes {
		if ch.Kind == model.ChangeRemoved {
			_ = history.Forget(ch.Alias)
		}
	}
	last, err := history.LastConnected()
	if err == nil {
		m.lastConnected = last
	}
	_ = events.NewStore().Append(events.Event{
		EventType: events.TypeCommit,
		Changes:   len(changes),
		Message:   fmt.Sprintf("saved %d change(s)", len(changes)),
	})
	m.mode = modeBrowse
	m.applyFilter()
	m.status = fmt.Sprintf("Saved %d change(s) to %s.", len(changes), m.session.Path())
	return m, nil
}

// connect hands the terminal to ssh for an interactive session and restores
// the dashboard when it exits.
func (m modelUI) connect(h model.HostEntry) (tea.Model, tea.Cmd) {
	alias := h.Alias
	_ = history.Touch(alias)
	_ = events.NewStore().Append(events.Event{EventType: events.TypeConnect, HostAlias: alias})
	cmd := m.ssh.ConnectCommand(h)
	return m, tea.ExecProcess(cmd, func(err error) tea.Msg {
		if err != nil {
			return statusMsg("ssh exited: " + err.Error())
		}
		return statusMsg("ssh session closed: " + alias)
	})
}

func (m modelUI) reload() (tea.Model, tea.Cmd) {
	session, warnings, err := config.LoadSession(m.session.Path())
	if err != nil {
		m.status = "Reload failed: " + security.UserMessage(err, true)
		return m, nil
	}
	m.session = session
	m.warnings = warnings
	m.applyFilter()
	m.status = "Reloaded config from disk."
	return m, nil
}
