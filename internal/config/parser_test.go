package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Akaere-NetWorks/SSHC/internal/model"
)

func TestParse_BasicHosts(t *testing.T) {
	text := `# managed by hand

Host web
    HostName web.example.com
    User deploy
    Port 2222
    IdentityFile ~/.ssh/id_ed25519
    ServerAliveInterval 30

Host db
    HostName 10.0.0.5
`
	res := Parse(text)
	if len(res.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", res.Warnings)
	}

	hosts := res.Snapshot.Hosts()
	if len(hosts) != 2 {
		t.Fatalf("expected 2 hosts, got %d", len(hosts))
	}

	want := model.HostEntry{
		Alias:        "web",
		HostName:     "web.example.com",
		User:         "deploy",
		Port:         2222,
		IdentityFile: "~/.ssh/id_ed25519",
		RawExtra:     []string{"    ServerAliveInterval 30"},
	}
	if diff := cmp.Diff(want, hosts[0]); diff != "" {
		t.Fatalf("web host mismatch (-want +got):\n%s", diff)
	}
	if hosts[1].Alias != "db" || hosts[1].HostName != "10.0.0.5" {
		t.Fatalf("unexpected db host: %+v", hosts[1])
	}

	// Leading comment block stays an opaque item positioned before the
	// first host.
	if len(res.Snapshot.Items) != 3 || res.Snapshot.Items[0].Host != nil {
		t.Fatalf("expected leading opaque item, got %+v", res.Snapshot.Items)
	}
	if res.Snapshot.Items[0].Raw[0] != "# managed by hand" {
		t.Fatalf("unexpected opaque content: %v", res.Snapshot.Items[0].Raw)
	}
}

func TestParse_MetadataComments(t *testing.T) {
	text := `# @folder: prod
# @name: Primary web
# @description: behind the LB
# @visible: false
Host web
    HostName web.example.com
`
	res := Parse(text)
	hosts := res.Snapshot.Hosts()
	if len(hosts) != 1 {
		t.Fatalf("expected 1 host, got %d", len(hosts))
	}
	h := hosts[0]
	if h.Folder != "prod" || h.DisplayName != "Primary web" || h.Description != "behind the LB" || !h.Hidden {
		t.Fatalf("metadata not applied: %+v", h)
	}
}

func TestParse_MetadataWithoutHostStaysOpaque(t *testing.T) {
	text := "# @folder: orphaned\n"
	res := Parse(text)
	if res.Snapshot.Len() != 0 {
		t.Fatalf("expected no hosts, got %d", res.Snapshot.Len())
	}
	if len(res.Snapshot.Items) != 1 || res.Snapshot.Items[0].Raw[0] != "# @folder: orphaned" {
		t.Fatalf("orphaned metadata line lost: %+v", res.Snapshot.Items)
	}
}

func TestParse_MalformedPortKeptVerbatim(t *testing.T) {
	text := `Host a
    Port 99999
    Port over-nine-thousand
`
	res := Parse(text)
	h := res.Snapshot.Hosts()[0]
	if h.Port != 0 {
		t.Fatalf("out-of-range port must stay unset, got %d", h.Port)
	}
	wantRaw := []string{"    Port 99999", "    Port over-nine-thousand"}
	if diff := cmp.Diff(wantRaw, h.RawExtra); diff != "" {
		t.Fatalf("raw extra mismatch (-want +got):\n%s", diff)
	}
	if len(res.Warnings) == 0 {
		t.Fatal("expected a warning for the unparseable port")
	}
}

func TestParse_MalformedLinePreserved(t *testing.T) {
	text := `Host a
    HostName one.example.com
ThisIsGarbage
`
	res := Parse(text)
	h := res.Snapshot.Hosts()[0]
	if h.HostName != "one.example.com" {
		t.Fatalf("malformed line must not break the block: %+v", h)
	}
	if len(h.RawExtra) != 1 || h.RawExtra[0] != "ThisIsGarbage" {
		t.Fatalf("garbage line lost: %v", h.RawExtra)
	}
}

func TestParse_DuplicateRecognizedDirective(t *testing.T) {
	text := `Host a
    HostName first.example.com
    HostName second.example.com
`
	res := Parse(text)
	h := res.Snapshot.Hosts()[0]
	// OpenSSH resolution is first-obtained-wins; the repeat stays verbatim.
	if h.HostName != "first.example.com" {
		t.Fatalf("expected first HostName to win, got %q", h.HostName)
	}
	if len(h.RawExtra) != 1 || !strings.Contains(h.RawExtra[0], "second.example.com") {
		t.Fatalf("repeated directive lost: %v", h.RawExtra)
	}
}

func TestParse_DuplicateAliasBlockKeptOpaque(t *testing.T) {
	text := `Host a
    HostName one
Host a
    HostName two
`
	res := Parse(text)
	if res.Snapshot.Len() != 1 {
		t.Fatalf("expected one editable host, got %d", res.Snapshot.Len())
	}
	if len(res.Warnings) == 0 {
		t.Fatal("expected duplicate alias warning")
	}
	last := res.Snapshot.Items[len(res.Snapshot.Items)-1]
	if last.Host != nil || last.Raw[0] != "Host a" {
		t.Fatalf("duplicate block not preserved opaquely: %+v", last)
	}
}

func TestParse_GlobalDirectivesBeforeFirstHost(t *testing.T) {
	text := `StrictHostKeyChecking accept-new
Host a
    HostName one
`
	res := Parse(text)
	if res.Snapshot.Len() != 1 {
		t.Fatalf("expected 1 host, got %d", res.Snapshot.Len())
	}
	first := res.Snapshot.Items[0]
	if first.Host != nil || first.Raw[0] != "StrictHostKeyChecking accept-new" {
		t.Fatalf("global directive not preserved: %+v", first)
	}
}

func TestParse_EqualsSyntax(t *testing.T) {
	text := "Host a\n    HostName=one.example.com\n"
	res := Parse(text)
	if got := res.Snapshot.Hosts()[0].HostName; got != "one.example.com" {
		t.Fatalf("key=value syntax not handled, got %q", got)
	}
}

func TestParseFile_MissingIsEmptySnapshot(t *testing.T) {
	res, err := ParseFile(filepath.Join(t.TempDir(), "no-such-config"))
	if err != nil {
		t.Fatalf("missing file must not be an error: %v", err)
	}
	if res.Snapshot.Len() != 0 || len(res.Snapshot.Items) != 0 {
		t.Fatalf("expected empty snapshot, got %+v", res.Snapshot)
	}
	if len(res.Warnings) != 1 {
		t.Fatalf("expected a not-found warning, got %v", res.Warnings)
	}
}

func TestParseFile_ReadFailureDegradesToEmptySnapshot(t *testing.T) {
	// A directory triggers a read error that is not NotExist. Usage must not
	// be blocked: the session starts empty and the warning names the path.
	dir := t.TempDir()
	res, err := ParseFile(dir)
	if err != nil {
		t.Fatalf("read failure must not be fatal: %v", err)
	}
	if res.Snapshot.Len() != 0 || len(res.Snapshot.Items) != 0 {
		t.Fatalf("expected empty snapshot, got %+v", res.Snapshot)
	}
	if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], dir) {
		t.Fatalf("expected a read warning naming the path, got %v", res.Warnings)
	}
}

func TestParseFile_ReadsDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	if err := os.WriteFile(path, []byte("Host a\n    HostName one\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	res, err := ParseFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if res.Snapshot.Len() != 1 {
		t.Fatalf("expected 1 host, got %d", res.Snapshot.Len())
	}
}

func TestRoundTrip_ParseRenderParse(t *testing.T) {
	texts := []string{
		"",
		"# only a comment\n",
		"Host a\n    HostName one\n",
		`# header comment

IdentitiesOnly yes

# @folder: prod
# @description: primary
Host web
    HostName web.example.com
    User deploy
    Port 2222
    ServerAliveInterval 30
    # inline note

Host db
    HostName 10.0.0.5
    Port not-a-number

Host bastion
`,
	}
	for _, text := range texts {
		first := Parse(text).Snapshot
		rendered := Render(first)
		second := Parse(rendered).Snapshot
		if diff := cmp.Diff(first, second); diff != "" {
			t.Fatalf("parse/render/parse not stable for %q (-first +second):\n%s", text, diff)
		}
		if rendered != Render(second) {
			t.Fatalf("render not idempotent for %q", text)
		}
	}
}
