package config

import (
	"strconv"

	"github.com/Akaere-NetWorks/SSHC/internal/model"
)

// ComputeDiff compares two snapshots by alias and returns the change set.
// Added and Modified entries appear in working order, Removed entries follow
// in baseline order; only slice order is used for sequencing, so the output
// is deterministic for a fixed input pair. The opaque tail (RawExtra) is
// passthrough content, not user-editable semantics, and is never compared.
func ComputeDiff(baseline, working Snapshot) []model.ChangeEntry {
	base := map[string]model.HostEntry{}
	for _, h := range baseline.Hosts() {
		base[h.Alias] = h
	}

	inWorking := map[string]struct{}{}
	var out []model.ChangeEntry
	for _, h := range working.Hosts() {
		inWorking[h.Alias] = struct{}{}
		old, ok := base[h.Alias]
		if !ok {
			out = append(out, model.ChangeEntry{Kind: model.ChangeAdded, Alias: h.Alias, Entry: h})
			continue
		}
		if fields := fieldChanges(old, h); len(fields) > 0 {
			out = append(out, model.ChangeEntry{
				Kind:   model.ChangeModified,
				Alias:  h.Alias,
				Entry:  h,
				Old:    old,
				Fields: fields,
			})
		}
	}
	for _, h := range baseline.Hosts() {
		if _, ok := inWorking[h.Alias]; !ok {
			out = append(out, model.ChangeEntry{Kind: model.ChangeRemoved, Alias: h.Alias, Entry: h, Old: h})
		}
	}
	return out
}

// fieldChanges lists every differing compared field between two versions of
// the same host, exactly once per field.
func fieldChanges(old, cur model.HostEntry) []model.FieldChange {
	var out []model.FieldChange
	diff := func(field, o, n string) {
		if o != n {
			out = append(out, model.FieldChange{Field: field, Old: o, New: n})
		}
	}
	diff("HostName", old.HostName, cur.HostName)
	diff("User", old.User, cur.User)
	diff("Port", formatPort(old.Port), formatPort(cur.Port))
	diff("IdentityFile", old.IdentityFile, cur.IdentityFile)
	diff("Folder", old.Folder, cur.Folder)
	diff("DisplayName", old.DisplayName, cur.DisplayName)
	diff("Description", old.Description, cur.Description)
	diff("Visible", formatVisible(old.Hidden), formatVisible(cur.Hidden))
	return out
}

func formatPort(p int) string {
	if p <= 0 {
		return ""
	}
	return strconv.Itoa(p)
}

func formatVisible(hidden bool) string {
	if hidden {
		return "false"
	}
	return "true"
}

// DiffLines renders a change set as "+"/"-"/"~" prefixed lines for the
// review screen.
func DiffLines(changes []model.ChangeEntry) []string {
	var lines []string
	for _, c := range changes {
		switch c.Kind {
		case model.ChangeAdded:
			for _, l := range HostBlockLines(c.Entry) {
				lines = append(lines, "+ "+l)
			}
		case model.ChangeRemoved:
			for _, l := range HostBlockLines(c.Old) {
				lines = append(lines, "- "+l)
			}
		case model.ChangeModified:
			lines = append(lines, "~ Host "+c.Alias)
			for _, f := range c.Fields {
				if f.Old != "" {
					lines = append(lines, "-   "+f.Field+" "+f.Old)
				}
				if f.New != "" {
					lines = append(lines, "+   "+f.Field+" "+f.New)
				}
			}
		}
		lines = append(lines, "")
	}
	return lines
}
