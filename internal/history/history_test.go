package history

import (
	"testing"

	"github.com/Akaere-NetWorks/SSHC/internal/model"
)

func TestTouchAndSortRecent(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if err := Touch("beta"); err != nil {
		t.Fatalf("touch: %v", err)
	}

	last, err := LastConnected()
	if err != nil {
		t.Fatal(err)
	}
	if last["beta"] == 0 {
		t.Fatal("expected beta to have a timestamp")
	}

	hosts := []model.HostEntry{{Alias: "alpha"}, {Alias: "beta"}, {Alias: "gamma"}}
	sorted := SortHostsRecent(hosts, last)
	if sorted[0].Alias != "beta" {
		t.Fatalf("expected beta first, got %+v", sorted)
	}
	if sorted[1].Alias != "alpha" || sorted[2].Alias != "gamma" {
		t.Fatalf("expected alias order for untouched hosts, got %+v", sorted)
	}
	if hosts[0].Alias != "alpha" {
		t.Fatal("input slice must not be reordered")
	}
}

func TestForget(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if err := Touch("gone"); err != nil {
		t.Fatal(err)
	}
	if err := Forget("gone"); err != nil {
		t.Fatal(err)
	}
	last, err := LastConnected()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := last["gone"]; ok {
		t.Fatal("expected history entry to be dropped")
	}

	// Forgetting an unknown alias is a no-op.
	if err := Forget("never-seen"); err != nil {
		t.Fatal(err)
	}
}
