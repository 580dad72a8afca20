package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Akaere-NetWorks/SSHC/internal/config"
	"github.com/Akaere-NetWorks/SSHC/internal/model"
	"github.com/Akaere-NetWorks/SSHC/internal/sshclient"
	"github.com/Akaere-NetWorks/SSHC/internal/util"
)

var (
	addStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	removeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	modifyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

func (m modelUI) View() string {
	head := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).Render("sshc")
	pending := len(m.session.Diff())
	subhead := fmt.Sprintf("hosts=%d shown=%d pending=%d", m.session.Working().Len(), len(m.filtered), pending)
	if pending > 0 {
		subhead += "  " + modifyStyle.Render("(unsaved changes, v to review)")
	}

	var body string
	switch m.mode {
	case modeEdit:
		body = m.form.view(m.renderPanel, m.effectiveWidth())
	case modeReview:
		body = m.renderPanel("Review Changes", m.reviewBlock(), m.effectiveWidth(), lipgloss.Color("214"))
	default:
		body = m.renderMainPanels(m.hostsBlock(), m.detailBlock())
	}

	searchLine := "Search: " + m.search
	if m.mode == modeSearch {
		searchLine += " (typing...)"
	}

	warn := ""
	if len(m.warnings) > 0 {
		warn = dimStyle.Render("Warnings: "+strings.Join(m.warnings, " | ")) + "\n"
	}

	quickHelp := "Keys: Enter connect | a add | e edit | d delete | v review | / search | ? help | q quit"
	status := m.renderPanel("Status", m.statusBlock(), m.effectiveWidth(), lipgloss.Color("205"))
	help := ""
	if m.showHelp {
		help = m.renderPanel("Help", m.helpBlock(), m.effectiveWidth(), lipgloss.Color("244"))
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		head,
		subhead,
		searchLine,
		quickHelp,
		body,
		help,
		warn,
		status,
	)
}

// hostsBlock renders the host list grouped by folder with change markers.
func (m modelUI) hostsBlock() string {
	if len(m.filtered) == 0 {
		return "  (no hosts matched)\n"
	}
	marks := m.changeMarks()

	var b strings.Builder
	lastFolder := "\x00"
	for i, h := range m.filtered {
		if m.search == "" && h.Folder != lastFolder {
			label := h.Folder
			if label == "" {
				label = "(unfiled)"
			}
			b.WriteString(dimStyle.Render(label) + "\n")
			lastFolder = h.Folder
		}
		cursor := " "
		if i == m.sel {
			cursor = ">"
		}
		mark := marks[h.Alias]
		if mark == "" {
			mark = " "
		}
		hiddenTag := ""
		if h.Hidden {
			hiddenTag = " (hidden)"
		}
		b.WriteString(fmt.Sprintf("%s%s %-24s %-24s%s\n", cursor, mark, h.Title(), h.Target(), hiddenTag))
	}
	return b.String()
}

// changeMarks maps aliases to +/-/~ markers for the pending diff.
func (m modelUI) changeMarks() map[string]string {
	marks := map[string]string{}
	for _, ch := range m.session.Diff() {
		switch ch.Kind {
		case model.ChangeAdded:
			marks[ch.Alias] = addStyle.Render("+")
		case model.ChangeRemoved:
			marks[ch.Alias] = removeStyle.Render("-")
		case model.ChangeModified:
			marks[ch.Alias] = modifyStyle.Render("~")
		}
	}
	return marks
}

func (m modelUI) detailBlock() string {
	if len(m.filtered) == 0 {
		return "Pick a host to see its details.\n"
	}
	h := m.filtered[m.sel]
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Alias: %s\n", h.Alias))
	b.WriteString(fmt.Sprintf("Host: %s\n", util.EmptyDash(h.HostName)))
	b.WriteString(fmt.Sprintf("User: %s\n", util.EmptyDash(h.User)))
	b.WriteString(fmt.Sprintf("Port: %d\n", h.EffectivePort()))
	b.WriteString(fmt.Sprintf("Identity: %s\n", util.EmptyDash(h.IdentityFile)))
	if h.Description != "" {
		b.WriteString(fmt.Sprintf("About: %s\n", h.Description))
	}
	b.WriteString(fmt.Sprintf("\nCommand: %s\n", sshclient.New().CommandPreview(h)))
	if len(h.RawExtra) > 0 {
		b.WriteString("\nExtra directives (kept as-is):\n")
		for _, line := range h.RawExtra {
			b.WriteString("  " + strings.TrimSpace(line) + "\n")
		}
	}
	return b.String()
}

// reviewBlock renders the pending diff with +/-/~ coloring.
func (m modelUI) reviewBlock() string {
	lines := config.DiffLines(m.session.Diff())
	var b strings.Builder
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "+"):
			b.WriteString(addStyle.Render(line))
		case strings.HasPrefix(line, "-"):
			b.WriteString(removeStyle.Render(line))
		case strings.HasPrefix(line, "~"):
			b.WriteString(modifyStyle.Render(line))
		default:
			b.WriteString(line)
		}
		b.WriteString("\n")
	}
	b.WriteString("\ny save to disk | u discard | Esc back")
	return b.String()
}

func (m modelUI) statusBlock() string {
	switch m.mode {
	case modeConfirmDelete:
		return fmt.Sprintf("Remove host %q from the config? (y/n)", m.deleteAlias)
	case modeConfirmDiscard:
		return fmt.Sprintf("Discard %d pending change(s)? (y/n)", len(m.session.Diff()))
	case modeConfirmQuit:
		return fmt.Sprintf("Quit with %d unsaved change(s)? (y/n)", len(m.session.Diff()))
	}
	return m.status
}

func (m modelUI) helpBlock() string {
	return strings.Join([]string{
		"  Navigation: j/k or arrow keys move selection.",
		"  Search: press /, type, Enter keeps the filter, Esc clears it.",
		"  Connect: press Enter on the selected host.",
		"  Edit: a adds a host, e edits, d deletes. Edits stay pending until saved.",
		"  Review: v shows the pending diff; y writes it to the config file.",
		"  Discard: u throws away all pending edits.",
		"  Hidden hosts: h toggles hosts marked \"# @visible: false\".",
		"  Reload: r reparses the config file (only when nothing is pending).",
		"  Quit: q or Ctrl+C.",
	}, "\n")
}

func (m modelUI) renderMainPanels(hostsPanel, detailsPanel string) string {
	width := m.effectiveWidth()
	if width < 96 {
		return lipgloss.JoinVertical(
			lipgloss.Left,
			m.renderPanel("Hosts", hostsPanel, width, lipgloss.Color("39")),
			m.renderPanel("Details", detailsPanel, width, lipgloss.Color("69")),
		)
	}
	leftWidth := width / 2
	rightWidth := width - leftWidth
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderPanel("Hosts", hostsPanel, leftWidth, lipgloss.Color("39")),
		m.renderPanel("Details", detailsPanel, rightWidth, lipgloss.Color("69")),
	)
}

func (m modelUI) effectiveWidth() int {
	if m.width <= 0 {
		return 100
	}
	return m.width
}

func (m modelUI) renderPanel(title, body string, width int, accent lipgloss.Color) string {
	if width < 24 {
		width = 24
	}
	header := lipgloss.NewStyle().Bold(true).Foreground(accent).Render(title)
	content := strings.TrimSuffix(body, "\n")
	panel := strings.TrimSpace(header + "\n" + content)
	return lipgloss.NewStyle().
		Width(width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 1).
		Render(panel)
}
