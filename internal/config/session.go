package config

import (
	"fmt"
	"strings"

	"github.com/Akaere-NetWorks/SSHC/internal/model"
)

// Session owns one immutable baseline snapshot (the config as last read from
// or written to disk) and one mutable working copy. All edit operations are
// all-or-nothing against the working copy and perform no disk I/O; the file
// changes only on Commit. A session is created once per program run and
// passed explicitly to whatever needs it.
type Session struct {
	path     string
	baseline Snapshot
	working  Snapshot
}

// NewSession starts a session over the given snapshot; path is where Commit
// will write.
func NewSession(base Snapshot, path string) *Session {
	return &Session{
		path:     path,
		baseline: base.Clone(),
		working:  base.Clone(),
	}
}

// LoadSession parses the config file at path and opens a session on it.
// A missing file opens a session over an empty snapshot.
func LoadSession(path string) (*Session, []string, error) {
	res, err := ParseFile(path)
	if err != nil {
		return nil, nil, err
	}
	return NewSession(res.Snapshot, path), res.Warnings, nil
}

// Path returns the config file location this session commits to.
func (s *Session) Path() string { return s.path }

// Baseline returns the last-persisted snapshot. Callers must treat it as
// read-only.
func (s *Session) Baseline() Snapshot { return s.baseline }

// Working returns the current working copy. Callers must treat it as
// read-only and mutate only through Add/Edit/Delete.
func (s *Session) Working() Snapshot { return s.working }

// Add appends a new host entry. It fails with ErrDuplicateAlias when the
// alias is already taken and with ErrInvalidAlias when the alias is empty or
// contains pattern characters; on failure the working copy is unchanged.
func (s *Session) Add(entry model.HostEntry) error {
	if err := validateAlias(entry.Alias); err != nil {
		return err
	}
	if s.working.HasAlias(entry.Alias) {
		return fmt.Errorf("%w: %s", ErrDuplicateAlias, entry.Alias)
	}
	h := entry.Clone()
	s.working.Items = append(s.working.Items, Item{Host: &h})
	return nil
}

// Edit replaces the entry identified by oldAlias, preserving its position.
// Renames are validated against the rest of the working copy.
func (s *Session) Edit(oldAlias string, entry model.HostEntry) error {
	idx := s.indexOf(oldAlias)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, oldAlias)
	}
	if entry.Alias != oldAlias {
		if err := validateAlias(entry.Alias); err != nil {
			return err
		}
		if s.working.HasAlias(entry.Alias) {
			return fmt.Errorf("%w: %s", ErrDuplicateAlias, entry.Alias)
		}
	}
	h := entry.Clone()
	s.working.Items[idx] = Item{Host: &h}
	return nil
}

// Delete removes the entry with the given alias, preserving the relative
// order of everything else.
func (s *Session) Delete(alias string) error {
	idx := s.indexOf(alias)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, alias)
	}
	s.working.Items = append(s.working.Items[:idx], s.working.Items[idx+1:]...)
	return nil
}

// Discard resets the working copy back to the baseline.
func (s *Session) Discard() {
	s.working = s.baseline.Clone()
}

// HasPendingChanges reports whether the working copy differs from the
// baseline in entry set or any compared field.
func (s *Session) HasPendingChanges() bool {
	return len(s.Diff()) > 0
}

// Diff computes the pending change set. It is a pure query with no side
// effects, so the review screen is always safe to cancel.
func (s *Session) Diff() []model.ChangeEntry {
	return ComputeDiff(s.baseline, s.working)
}

// Commit persists the working copy atomically. On success the working copy
// becomes the new baseline; on failure both snapshots are left untouched so
// the caller can retry or discard.
func (s *Session) Commit() error {
	if err := Commit(s.working, s.path); err != nil {
		return err
	}
	s.baseline = s.working.Clone()
	return nil
}

func (s *Session) indexOf(alias string) int {
	for i, it := range s.working.Items {
		if it.Host != nil && it.Host.Alias == alias {
			return i
		}
	}
	return -1
}

func validateAlias(alias string) error {
	if strings.TrimSpace(alias) == "" {
		return fmt.Errorf("%w: alias cannot be empty", ErrInvalidAlias)
	}
	if strings.ContainsAny(alias, " \t*?!") {
		return fmt.Errorf("%w: %q contains whitespace or pattern characters", ErrInvalidAlias, alias)
	}
	return nil
}
