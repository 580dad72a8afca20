package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Akaere-NetWorks/SSHC/internal/model"
)

const directiveIndent = "    "

// Render produces OpenSSH config text for a snapshot: each host block in
// canonical directive order with its opaque tail verbatim, opaque runs
// verbatim at their recorded position. Render is the inverse of Parse for
// the structure the parser understands.
func Render(snap Snapshot) string {
	var b strings.Builder
	for _, it := range snap.Items {
		if it.Host == nil {
			for _, line := range it.Raw {
				b.WriteString(line)
				b.WriteByte('\n')
			}
			continue
		}
		for _, line := range HostBlockLines(*it.Host) {
			b.WriteString(line)
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// HostBlockLines renders one host block, without the trailing separator:
// metadata comments, the Host line, populated known fields in canonical
// order (HostName, User, Port, IdentityFile), then raw extra lines verbatim.
func HostBlockLines(h model.HostEntry) []string {
	var lines []string
	if h.Folder != "" {
		lines = append(lines, "# @folder: "+h.Folder)
	}
	if h.DisplayName != "" {
		lines = append(lines, "# @name: "+h.DisplayName)
	}
	if h.Description != "" {
		lines = append(lines, "# @description: "+h.Description)
	}
	if h.Hidden {
		lines = append(lines, "# @visible: false")
	}
	lines = append(lines, "Host "+h.Alias)
	if h.HostName != "" {
		lines = append(lines, directiveIndent+"HostName "+h.HostName)
	}
	if h.User != "" {
		lines = append(lines, directiveIndent+"User "+h.User)
	}
	if h.Port > 0 {
		lines = append(lines, directiveIndent+"Port "+strconv.Itoa(h.Port))
	}
	if h.IdentityFile != "" {
		lines = append(lines, directiveIndent+"IdentityFile "+h.IdentityFile)
	}
	lines = append(lines, h.RawExtra...)
	return lines
}

// Commit writes the rendered snapshot to a temporary file in the target's
// directory and renames it over path, so an interrupted write never leaves
// a truncated config behind. Any failure is reported as an *IOError and the
// previous file content stays untouched.
func Commit(snap Snapshot, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return newIOError("create directory", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".sshc-*")
	if err != nil {
		return newIOError("create temp file", dir, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(Render(snap)); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return newIOError("write", tmpPath, err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return newIOError("chmod", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return newIOError("close", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return newIOError("replace", path, err)
	}
	return nil
}
