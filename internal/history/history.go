package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/Akaere-NetWorks/SSHC/internal/appconfig"
	"github.com/Akaere-NetWorks/SSHC/internal/model"
)

type store struct {
	LastConnected map[string]int64 `json:"last_connected"`
}

func filePath() (string, error) {
	dir, err := appconfig.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.json"), nil
}

// Touch records a connection attempt for a host alias.
func Touch(alias string) error {
	st, err := load()
	if err != nil {
		return err
	}
	if st.LastConnected == nil {
		st.LastConnected = map[string]int64{}
	}
	st.LastConnected[alias] = time.Now().Unix()
	return save(st)
}

// LastConnected returns last connection timestamps by alias.
func LastConnected() (map[string]int64, error) {
	st, err := load()
	if err != nil {
		return nil, err
	}
	return st.LastConnected, nil
}

// Forget drops history for an alias, e.g. after the host is deleted.
func Forget(alias string) error {
	st, err := load()
	if err != nil {
		return err
	}
	if _, ok := st.LastConnected[alias]; !ok {
		return nil
	}
	delete(st.LastConnected, alias)
	return save(st)
}

// SortHostsRecent returns a new slice sorted by recent connections (desc),
// then alias. The input is not modified.
func SortHostsRecent(hosts []model.HostEntry, lastConnected map[string]int64) []model.HostEntry {
	out := append([]model.HostEntry(nil), hosts...)
	sort.SliceStable(out, func(i, j int) bool {
		ti := lastConnected[out[i].Alias]
		tj := lastConnected[out[j].Alias]
		if ti != tj {
			return ti > tj
		}
		return out[i].Alias < out[j].Alias
	})
	return out
}

func load() (store, error) {
	path, err := filePath()
	if err != nil {
		return store{}, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return store{LastConnected: map[string]int64{}}, nil
		}
		return store{}, err
	}
	var st store
	if err := json.Unmarshal(b, &st); err != nil {
		return store{LastConnected: map[string]int64{}}, nil
	}
	if st.LastConnected == nil {
		st.LastConnected = map[string]int64{}
	}
	return st, nil
}

func save(st store) error {
	path, err := filePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}
