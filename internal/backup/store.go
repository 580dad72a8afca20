package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Akaere-NetWorks/SSHC/internal/appconfig"
)

// Entry describes one stored backup of the SSH config file.
type Entry struct {
	ID        string    `yaml:"id" json:"id"`
	CreatedAt time.Time `yaml:"created_at" json:"created_at"`
	Source    string    `yaml:"source" json:"source"`
	Size      int64     `yaml:"size" json:"size"`
	Note      string    `yaml:"note,omitempty" json:"note,omitempty"`
}

type fileModel struct {
	Backups []Entry `yaml:"backups"`
}

func indexPath() (string, error) {
	dir, err := appconfig.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "backups.yaml"), nil
}

func backupDir() (string, error) {
	dir, err := appconfig.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "backups"), nil
}

// Save copies the file at source into the backup store and returns the new
// entry. Older backups beyond limit are pruned, oldest first.
func Save(source, note string, limit int) (Entry, error) {
	content, err := os.ReadFile(source)
	if err != nil {
		return Entry{}, fmt.Errorf("read source for backup: %w", err)
	}

	dir, err := backupDir()
	if err != nil {
		return Entry{}, err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return Entry{}, err
	}

	fm, err := loadIndex()
	if err != nil {
		return Entry{}, err
	}

	now := time.Now().UTC()
	entry := Entry{
		ID:        newID(fm.Backups, now),
		CreatedAt: now,
		Source:    source,
		Size:      int64(len(content)),
		Note:      strings.TrimSpace(note),
	}
	if err := os.WriteFile(filepath.Join(dir, entry.ID), content, 0o600); err != nil {
		return Entry{}, fmt.Errorf("write backup: %w", err)
	}

	fm.Backups = append(fm.Backups, entry)
	if err := prune(&fm, dir, limit); err != nil {
		return Entry{}, err
	}
	if err := saveIndex(fm); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// List returns all backup entries, newest first.
func List() ([]Entry, error) {
	fm, err := loadIndex()
	if err != nil {
		return nil, err
	}
	out := append([]Entry(nil), fm.Backups...)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// Content returns the stored bytes of one backup.
func Content(id string) ([]byte, error) {
	entry, err := find(id)
	if err != nil {
		return nil, err
	}
	dir, err := backupDir()
	if err != nil {
		return nil, err
	}
	return os.ReadFile(filepath.Join(dir, entry.ID))
}

// Restore writes a stored backup back to its destination path. The current
// file content, if any, is first saved as a fresh backup so a restore is
// itself reversible.
func Restore(id, dest string, limit int) error {
	content, err := Content(id)
	if err != nil {
		return err
	}
	if _, statErr := os.Stat(dest); statErr == nil {
		if _, err := Save(dest, "pre-restore", limit); err != nil {
			return err
		}
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o700); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(dest), ".sshc-*")
	if err != nil {
		return fmt.Errorf("restore backup: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("restore backup: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("restore backup: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("restore backup: %w", err)
	}
	if err := os.Rename(tmpName, dest); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("restore backup: %w", err)
	}
	return nil
}

func find(id string) (Entry, error) {
	fm, err := loadIndex()
	if err != nil {
		return Entry{}, err
	}
	for _, e := range fm.Backups {
		if e.ID == id {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("backup not found: %s", id)
}

func prune(fm *fileModel, dir string, limit int) error {
	if limit <= 0 || len(fm.Backups) <= limit {
		return nil
	}
	sort.Slice(fm.Backups, func(i, j int) bool {
		return fm.Backups[i].CreatedAt.Before(fm.Backups[j].CreatedAt)
	})
	for _, e := range fm.Backups[:len(fm.Backups)-limit] {
		if err := os.Remove(filepath.Join(dir, e.ID)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("prune backup %s: %w", e.ID, err)
		}
	}
	fm.Backups = append([]Entry(nil), fm.Backups[len(fm.Backups)-limit:]...)
	return nil
}

func newID(existing []Entry, now time.Time) string {
	base := now.Format("20060102-150405")
	id := base
	for n := 1; taken(existing, id); n++ {
		id = fmt.Sprintf("%s-%d", base, n)
	}
	return id
}

func taken(existing []Entry, id string) bool {
	for _, e := range existing {
		if e.ID == id {
			return true
		}
	}
	return false
}

func loadIndex() (fileModel, error) {
	path, err := indexPath()
	if err != nil {
		return fileModel{}, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fileModel{}, nil
		}
		return fileModel{}, err
	}
	var fm fileModel
	if err := yaml.Unmarshal(b, &fm); err != nil {
		return fileModel{}, fmt.Errorf("parse backup index: %w", err)
	}
	return fm, nil
}

func saveIndex(fm fileModel) error {
	path, err := indexPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	b, err := yaml.Marshal(fm)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}
