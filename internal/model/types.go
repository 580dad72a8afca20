package model

import "fmt"

// HostEntry is one editable host block from the SSH client config.
//
// Only the directives the editor understands are typed fields; everything
// else inside the block is carried verbatim in RawExtra so a rewrite of the
// file never loses data. Port 0 means "not set" (OpenSSH defaults to 22).
type HostEntry struct {
	Alias        string   `json:"alias"`
	HostName     string   `json:"host_name,omitempty"`
	User         string   `json:"user,omitempty"`
	Port         int      `json:"port,omitempty"`
	IdentityFile string   `json:"identity_file,omitempty"`
	RawExtra     []string `json:"-"`

	// Metadata carried in "# @key: value" comments above the Host line.
	Folder      string `json:"folder,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	Description string `json:"description,omitempty"`
	Hidden      bool   `json:"hidden,omitempty"`
}

// Title returns the name shown in host lists: the display-name metadata
// when present, otherwise the alias.
func (h HostEntry) Title() string {
	if h.DisplayName != "" {
		return h.DisplayName
	}
	return h.Alias
}

// Target returns the connection target for display purposes.
func (h HostEntry) Target() string {
	host := h.HostName
	if host == "" {
		host = h.Alias
	}
	if h.User != "" {
		return h.User + "@" + host
	}
	return host
}

// EffectivePort returns the port ssh would use: the configured one, or 22.
func (h HostEntry) EffectivePort() int {
	if h.Port > 0 {
		return h.Port
	}
	return 22
}

// Clone returns a deep copy; the RawExtra backing array is not shared.
func (h HostEntry) Clone() HostEntry {
	out := h
	out.RawExtra = append([]string(nil), h.RawExtra...)
	return out
}

// ChangeKind classifies one entry of a pending-change review.
type ChangeKind string

const (
	ChangeAdded    ChangeKind = "added"
	ChangeRemoved  ChangeKind = "removed"
	ChangeModified ChangeKind = "modified"
)

// FieldChange is one differing field of a modified host.
type FieldChange struct {
	Field string `json:"field"`
	Old   string `json:"old"`
	New   string `json:"new"`
}

func (f FieldChange) String() string {
	return fmt.Sprintf("%s: %q -> %q", f.Field, f.Old, f.New)
}

// ChangeEntry is one row of the diff between the baseline and working
// snapshots. Fields is populated only for ChangeModified and lists every
// differing field exactly once.
type ChangeEntry struct {
	Kind   ChangeKind    `json:"kind"`
	Alias  string        `json:"alias"`
	Entry  HostEntry     `json:"entry"`
	Old    HostEntry     `json:"old,omitempty"`
	Fields []FieldChange `json:"fields,omitempty"`
}
