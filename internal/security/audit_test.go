package security

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Akaere-NetWorks/SSHC/internal/model"
)

func TestRunLocalAudit_BroadConfigPermissions(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir := t.TempDir()
	path := filepath.Join(dir, "config")
	if err := os.WriteFile(path, []byte("Host a\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	report := RunLocalAudit(nil, path)
	found := false
	for _, f := range report.Findings {
		if f.Target == path && f.Severity == SeverityMedium {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a finding for 0644 config file, got %+v", report.Findings)
	}
}

func TestRunLocalAudit_MissingIdentityFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	missing := filepath.Join(t.TempDir(), "no-such-key")

	hosts := []model.HostEntry{{Alias: "a", IdentityFile: missing}}
	report := RunLocalAudit(hosts, "")

	found := false
	for _, f := range report.Findings {
		if f.Target == missing {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected missing identity finding, got %+v", report.Findings)
	}
}

func TestClassifiedError_UserMessage(t *testing.T) {
	err := NewClassifiedError("cannot save config", "rename /tmp/x: permission denied")
	if got := UserMessage(err, false); got != "cannot save config" {
		t.Fatalf("unexpected user message: %q", got)
	}
	if got := DebugMessage(err); got != "rename /tmp/x: permission denied" {
		t.Fatalf("unexpected debug message: %q", got)
	}
}

func TestRedactMessage_HidesHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home dir in test environment")
	}
	got := RedactMessage("open " + home + "/.ssh/config: permission denied")
	if got != "open ~/.ssh/config: permission denied" {
		t.Fatalf("home dir not redacted: %q", got)
	}
}
