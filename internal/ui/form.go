package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Akaere-NetWorks/SSHC/internal/model"
	"github.com/Akaere-NetWorks/SSHC/internal/util"
)

// Field indices for the host editor form.
const (
	fieldAlias = iota
	fieldHostname
	fieldUser
	fieldPort
	fieldIdentityFile
	fieldFolder
	fieldDisplayName
	fieldDescription
	fieldCount
)

// hostForm holds all state for the add/edit host editor. For edits the
// original entry is kept so directives the form does not model (RawExtra)
// survive the round trip.
type hostForm struct {
	fields   []textinput.Model
	focusIdx int
	hidden   bool
	original model.HostEntry
	editing  bool
	errMsg   string
}

// newHostForm creates an editor prefilled from entry. A zero-value entry
// starts a blank "add host" form.
func newHostForm(entry model.HostEntry, editing bool) *hostForm {
	f := &hostForm{
		original: entry.Clone(),
		editing:  editing,
		hidden:   entry.Hidden,
	}

	placeholders := []string{
		"my-server (required)",
		"192.168.1.1 or example.com",
		"deploy (optional)",
		"22 (default)",
		"~/.ssh/id_ed25519 (optional)",
		"work/production (optional)",
		"Production API (optional)",
		"primary API box (optional)",
	}
	values := []string{
		entry.Alias,
		entry.HostName,
		entry.User,
		portValue(entry.Port),
		entry.IdentityFile,
		entry.Folder,
		entry.DisplayName,
		entry.Description,
	}
	limits := []int{64, 256, 64, 6, 256, 128, 128, 256}

	f.fields = make([]textinput.Model, fieldCount)
	for i := range f.fields {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = limits[i]
		ti.Width = 40
		ti.SetValue(values[i])
		f.fields[i] = ti
	}
	f.fields[fieldAlias].Focus()
	return f
}

func portValue(p int) string {
	if p == 0 {
		return ""
	}
	return strconv.Itoa(p)
}

// update processes a key message and returns the finished entry when the
// form is submitted.
func (f *hostForm) update(msg tea.KeyMsg) (*model.HostEntry, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab", "down", "up":
		f.fields[f.focusIdx].Blur()
		if msg.String() == "tab" || msg.String() == "down" {
			f.focusIdx = (f.focusIdx + 1) % fieldCount
		} else {
			f.focusIdx = (f.focusIdx - 1 + fieldCount) % fieldCount
		}
		f.fields[f.focusIdx].Focus()
		return nil, f.fields[f.focusIdx].Cursor.BlinkCmd()
	case "ctrl+v":
		f.hidden = !f.hidden
		return nil, nil
	case "enter":
		entry, err := f.buildEntry()
		if err != nil {
			f.errMsg = err.Error()
			return nil, nil
		}
		return &entry, nil
	default:
		var cmd tea.Cmd
		f.fields[f.focusIdx], cmd = f.fields[f.focusIdx].Update(msg)
		f.errMsg = ""
		return nil, cmd
	}
}

// buildEntry validates the form and assembles the host entry. Unmodeled
// directives from the original entry are carried over untouched.
func (f *hostForm) buildEntry() (model.HostEntry, error) {
	alias := strings.TrimSpace(f.fields[fieldAlias].Value())
	if alias == "" {
		return model.HostEntry{}, fmt.Errorf("alias is required")
	}

	port := 0
	if portStr := strings.TrimSpace(f.fields[fieldPort].Value()); portStr != "" {
		p, err := strconv.Atoi(portStr)
		if err != nil {
			return model.HostEntry{}, fmt.Errorf("port must be a number")
		}
		if err := util.ValidatePort(p); err != nil {
			return model.HostEntry{}, err
		}
		port = p
	}

	entry := f.original.Clone()
	entry.Alias = alias
	entry.HostName = strings.TrimSpace(f.fields[fieldHostname].Value())
	entry.User = strings.TrimSpace(f.fields[fieldUser].Value())
	entry.Port = port
	entry.IdentityFile = strings.TrimSpace(f.fields[fieldIdentityFile].Value())
	entry.Folder = strings.TrimSpace(f.fields[fieldFolder].Value())
	entry.DisplayName = strings.TrimSpace(f.fields[fieldDisplayName].Value())
	entry.Description = strings.TrimSpace(f.fields[fieldDescription].Value())
	entry.Hidden = f.hidden
	return entry, nil
}

// view renders the form panel.
func (f *hostForm) view(renderPanel func(string, string, int, lipgloss.Color) string, width int) string {
	title := "Add Host"
	if f.editing {
		title = "Edit Host: " + f.original.Alias
	}

	labels := []string{"Alias:", "Hostname:", "User:", "Port:", "IdentityFile:", "Folder:", "Name:", "About:"}

	var b strings.Builder
	for i, label := range labels {
		cursor := "  "
		if i == f.focusIdx {
			cursor = "> "
		}
		b.WriteString(fmt.Sprintf("%s%-14s %s\n", cursor, label, f.fields[i].View()))
	}

	visibleMark := "x"
	if f.hidden {
		visibleMark = " "
	}
	b.WriteString(fmt.Sprintf("\n  Visible in list: (%s)\n", visibleMark))

	if f.errMsg != "" {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
		b.WriteString("\n" + errStyle.Render("Error: "+f.errMsg) + "\n")
	}

	b.WriteString("\nTab/Shift-Tab navigate | Ctrl+V toggle visible | Enter submit | Esc cancel")
	return renderPanel(title, b.String(), width, lipgloss.Color("214"))
}
