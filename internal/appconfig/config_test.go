package appconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCreatesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.UI.ConfirmOnQuit {
		t.Fatal("expected confirm_on_quit default to be true")
	}
	if cfg.BackupLimit != 10 {
		t.Fatalf("unexpected backup limit default: %d", cfg.BackupLimit)
	}

	d, err := ConfigDir()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(d, "config.yaml")); err != nil {
		t.Fatalf("config.yaml not created: %v", err)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	content := "ssh_config_path: /tmp/alt-config\nbackup_limit: 3\nui:\n  show_hidden: true\n  confirm_on_quit: false\n"
	if err := os.MkdirAll(filepath.Join(dir, "sshc"), 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "sshc", "config.yaml"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.SSHConfigPath != "/tmp/alt-config" {
		t.Fatalf("unexpected ssh config path: %q", cfg.SSHConfigPath)
	}
	if cfg.BackupLimit != 3 {
		t.Fatalf("unexpected backup limit: %d", cfg.BackupLimit)
	}
	if !cfg.UI.ShowHidden || cfg.UI.ConfirmOnQuit {
		t.Fatalf("ui overrides not applied: %+v", cfg.UI)
	}
}

func TestLoadClampsBackupLimit(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	if err := os.MkdirAll(filepath.Join(dir, "sshc"), 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "sshc", "config.yaml"), []byte("backup_limit: -1\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BackupLimit != 10 {
		t.Fatalf("expected clamped backup limit, got %d", cfg.BackupLimit)
	}
}
