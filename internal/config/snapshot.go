package config

import "github.com/Akaere-NetWorks/SSHC/internal/model"

// Item is one positional element of a Snapshot: either a parsed host block
// (Host != nil) or an opaque run of lines preserved verbatim (Raw != nil).
// Opaque runs carry comments, blank lines, global directives before the
// first Host, and blocks the parser declines to edit.
type Item struct {
	Host *model.HostEntry
	Raw  []string
}

// Snapshot is an ordered view of one SSH config file: host entries plus
// interspersed opaque text, in file order. Rendering a snapshot reconstructs
// the file layout.
type Snapshot struct {
	Items []Item
}

// Hosts returns the host entries in file order.
func (s Snapshot) Hosts() []model.HostEntry {
	var out []model.HostEntry
	for _, it := range s.Items {
		if it.Host != nil {
			out = append(out, *it.Host)
		}
	}
	return out
}

// Find returns the entry with the given alias. Alias matching is
// case-sensitive, following OpenSSH pattern matching for Host.
func (s Snapshot) Find(alias string) (model.HostEntry, bool) {
	for _, it := range s.Items {
		if it.Host != nil && it.Host.Alias == alias {
			return *it.Host, true
		}
	}
	return model.HostEntry{}, false
}

// HasAlias reports whether an entry with the alias exists.
func (s Snapshot) HasAlias(alias string) bool {
	_, ok := s.Find(alias)
	return ok
}

// Len returns the number of host entries (opaque items excluded).
func (s Snapshot) Len() int {
	n := 0
	for _, it := range s.Items {
		if it.Host != nil {
			n++
		}
	}
	return n
}

// Clone returns a deep copy sharing no mutable state with the receiver.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{Items: make([]Item, len(s.Items))}
	for i, it := range s.Items {
		if it.Host != nil {
			h := it.Host.Clone()
			out.Items[i] = Item{Host: &h}
			continue
		}
		out.Items[i] = Item{Raw: append([]string(nil), it.Raw...)}
	}
	return out
}
