package cli

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Akaere-NetWorks/SSHC/internal/backup"
	"github.com/Akaere-NetWorks/SSHC/internal/events"
	"github.com/Akaere-NetWorks/SSHC/internal/history"
)

func TestListTextOutput(t *testing.T) {
	setupSSHConfigForCLI(t)

	cmd := NewRootCommand()
	cmd.SetArgs([]string{"list"})
	out, err := captureStdout(func() error { return cmd.Execute() })
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "api") || !strings.Contains(out, "127.0.0.1") {
		t.Fatalf("expected host row, got: %s", out)
	}
	if strings.Contains(out, "internal-box") {
		t.Fatalf("hidden host must be excluded by default, got: %s", out)
	}
}

func TestListAllIncludesHidden(t *testing.T) {
	setupSSHConfigForCLI(t)

	cmd := NewRootCommand()
	cmd.SetArgs([]string{"list", "--all"})
	out, err := captureStdout(func() error { return cmd.Execute() })
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "internal-box") {
		t.Fatalf("expected hidden host with --all, got: %s", out)
	}
}

func TestListJSONOutput(t *testing.T) {
	setupSSHConfigForCLI(t)

	cmd := NewRootCommand()
	cmd.SetArgs([]string{"list", "--json"})
	out, err := captureStdout(func() error { return cmd.Execute() })
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	var hosts []map[string]any
	if err := json.Unmarshal([]byte(out), &hosts); err != nil {
		t.Fatalf("json parse: %v; output=%s", err, out)
	}
	if len(hosts) != 1 {
		t.Fatalf("expected one visible host, got %d", len(hosts))
	}
}

func TestListRecentOrdering(t *testing.T) {
	setupSSHConfigForCLI(t)
	home := os.Getenv("HOME")
	cfg := strings.Join([]string{
		"Host api",
		"  HostName 127.0.0.1",
		"Host db",
		"  HostName 127.0.0.1",
		"",
	}, "\n")
	if err := os.WriteFile(filepath.Join(home, ".ssh", "config"), []byte(cfg), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := history.Touch("db"); err != nil {
		t.Fatal(err)
	}
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"list", "--recent"})
	out, err := captureStdout(func() error { return cmd.Execute() })
	if err != nil {
		t.Fatalf("list recent: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) < 3 {
		t.Fatalf("unexpected output: %s", out)
	}
	if !strings.Contains(lines[1], "db") {
		t.Fatalf("expected db first after header, got: %s", lines[1])
	}
}

func TestShowOutput(t *testing.T) {
	setupSSHConfigForCLI(t)

	cmd := NewRootCommand()
	cmd.SetArgs([]string{"show", "api"})
	out, err := captureStdout(func() error { return cmd.Execute() })
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	for _, want := range []string{"Alias:     api", "HostName:  127.0.0.1", "User:      test", "ssh -p 22 -l test 127.0.0.1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in output:\n%s", want, out)
		}
	}
}

func TestShowUnknownHost(t *testing.T) {
	setupSSHConfigForCLI(t)

	cmd := NewRootCommand()
	cmd.SetArgs([]string{"show", "nope"})
	if _, err := captureStdout(func() error { return cmd.Execute() }); err == nil {
		t.Fatal("expected error for unknown host")
	}
}

func TestCheckJSONOutput(t *testing.T) {
	setupSSHConfigForCLI(t)

	cmd := NewRootCommand()
	cmd.SetArgs([]string{"check", "--json"})
	out, _ := captureStdout(func() error { return cmd.Execute() })
	var payload map[string]any
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("invalid check json: %v; output=%s", err, out)
	}
	if _, ok := payload["issues"]; !ok {
		t.Fatalf("expected issues key in check output: %s", out)
	}
}

func TestLogOutput(t *testing.T) {
	setupSSHConfigForCLI(t)
	store := events.NewStore()
	if err := store.Append(events.Event{EventType: events.TypeConnect, HostAlias: "api"}); err != nil {
		t.Fatalf("append event: %v", err)
	}
	if err := store.Append(events.Event{EventType: events.TypeCommit, Changes: 1}); err != nil {
		t.Fatalf("append event: %v", err)
	}

	cmd := NewRootCommand()
	cmd.SetArgs([]string{"log", "--type", "connect"})
	out, err := captureStdout(func() error { return cmd.Execute() })
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	if !strings.Contains(out, "connect") || !strings.Contains(out, "api") {
		t.Fatalf("expected connect event row, got: %s", out)
	}
	if strings.Contains(out, "commit") {
		t.Fatalf("type filter not applied: %s", out)
	}
}

func TestBackupListAndRestore(t *testing.T) {
	setupSSHConfigForCLI(t)
	home := os.Getenv("HOME")
	configFile := filepath.Join(home, ".ssh", "config")

	entry, err := backup.Save(configFile, "", 10)
	if err != nil {
		t.Fatalf("save backup: %v", err)
	}

	cmd := NewRootCommand()
	cmd.SetArgs([]string{"backup", "list"})
	out, err := captureStdout(func() error { return cmd.Execute() })
	if err != nil {
		t.Fatalf("backup list: %v", err)
	}
	if !strings.Contains(out, entry.ID) {
		t.Fatalf("expected backup id in list, got: %s", out)
	}

	if err := os.WriteFile(configFile, []byte("Host replaced\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cmd = NewRootCommand()
	cmd.SetArgs([]string{"backup", "restore", entry.ID})
	if _, err := captureStdout(func() error { return cmd.Execute() }); err != nil {
		t.Fatalf("backup restore: %v", err)
	}
	got, err := os.ReadFile(configFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(got), "Host api") {
		t.Fatalf("restore did not bring back config: %s", got)
	}
}

func captureStdout(fn func() error) (string, error) {
	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		return "", err
	}
	os.Stdout = w
	runErr := fn()
	_ = w.Close()
	os.Stdout = orig
	b, readErr := io.ReadAll(r)
	if readErr != nil {
		return "", readErr
	}
	return string(b), runErr
}

func setupSSHConfigForCLI(t *testing.T) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	sshDir := filepath.Join(home, ".ssh")
	if err := os.MkdirAll(sshDir, 0o700); err != nil {
		t.Fatal(err)
	}
	cfg := strings.Join([]string{
		"Host api",
		"  HostName 127.0.0.1",
		"  User test",
		"  Port 22",
		"",
		"# @visible: false",
		"Host internal-box",
		"  HostName 10.0.0.9",
		"",
	}, "\n")
	if err := os.WriteFile(filepath.Join(sshDir, "config"), []byte(cfg), 0o600); err != nil {
		t.Fatal(err)
	}
}
