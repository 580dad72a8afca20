package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Akaere-NetWorks/SSHC/internal/model"
	"github.com/Akaere-NetWorks/SSHC/internal/util"
)

// ParseResult is a parsed snapshot plus non-fatal warnings about content the
// parser preserved but could not edit.
type ParseResult struct {
	Snapshot Snapshot
	Warnings []string
}

// DefaultPath returns the standard client config location, ~/.ssh/config.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".ssh", "config"), nil
}

// ParseDefault parses the config at DefaultPath.
func ParseDefault() (ParseResult, error) {
	path, err := DefaultPath()
	if err != nil {
		return ParseResult{}, err
	}
	return ParseFile(path)
}

// ParseFile reads and parses one SSH config file. Read failures are never
// fatal: a missing or unreadable file yields an empty snapshot with a
// warning, so the tool stays usable on a machine with no prior config and
// the file on disk is left alone until an explicit save.
func ParseFile(path string) (ParseResult, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ParseResult{Warnings: []string{fmt.Sprintf("config file not found: %s", path)}}, nil
		}
		return ParseResult{Warnings: []string{fmt.Sprintf("cannot read %s: %v; starting from an empty config", path, err)}}, nil
	}
	return Parse(string(b)), nil
}

// Parse scans config text into an ordered snapshot. It is total: malformed
// or unrecognized content never fails the parse, it is preserved verbatim so
// the rest of the file stays editable.
func Parse(text string) ParseResult {
	lines := strings.Split(text, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	p := &parser{seen: map[string]bool{}}
	for _, line := range lines {
		p.feed(line)
	}
	p.finish()
	return ParseResult{Snapshot: Snapshot{Items: p.items}, Warnings: p.warnings}
}

// metaLine is one "# @key: value" comment awaiting the Host line it
// decorates.
type metaLine struct {
	key   string
	value string
	raw   string
}

type parser struct {
	items    []Item
	warnings []string

	run    []string   // opaque top-level lines not yet flushed to an item
	meta   []metaLine // metadata comments awaiting a Host opener
	cur    *model.HostEntry
	opaque []string // current uneditable block (duplicate alias), verbatim

	seen   map[string]bool
	lineNo int
}

func (p *parser) feed(line string) {
	p.lineNo++
	trimmed := strings.TrimSpace(line)

	if trimmed == "" {
		// Blank lines inside a block are normalized away; the renderer
		// emits one separator per block. Top-level blanks stay verbatim.
		if p.cur == nil && p.opaque == nil {
			p.run = append(p.run, line)
		}
		return
	}

	if strings.HasPrefix(trimmed, "#") {
		if key, value, ok := parseMetaComment(trimmed); ok {
			p.meta = append(p.meta, metaLine{key: key, value: value, raw: line})
			return
		}
		// A plain comment breaks the metadata-to-Host adjacency.
		p.flushMeta()
		p.addRaw(line)
		return
	}

	key, value, ok := splitDirective(trimmed)
	if !ok {
		p.flushMeta()
		p.addRaw(line)
		return
	}
	if strings.EqualFold(key, "host") {
		p.openHost(value, line)
		return
	}
	p.flushMeta()
	p.directive(key, value, line)
}

func (p *parser) openHost(alias, rawLine string) {
	p.closeBlock()
	p.flushRun()

	if p.seen[alias] {
		p.warnings = append(p.warnings,
			fmt.Sprintf("line %d: duplicate host %q preserved as opaque text", p.lineNo, alias))
		for _, m := range p.meta {
			p.opaque = append(p.opaque, m.raw)
		}
		p.meta = nil
		p.opaque = append(p.opaque, rawLine)
		return
	}

	h := &model.HostEntry{Alias: alias}
	for _, m := range p.meta {
		switch m.key {
		case "folder":
			h.Folder = m.value
		case "name":
			h.DisplayName = m.value
		case "description":
			h.Description = m.value
		case "visible":
			h.Hidden = strings.EqualFold(m.value, "false")
		}
	}
	p.meta = nil
	p.seen[alias] = true
	p.cur = h
}

func (p *parser) directive(key, value, line string) {
	if p.opaque != nil {
		p.opaque = append(p.opaque, line)
		return
	}
	if p.cur == nil {
		// Global directive before the first Host block.
		p.run = append(p.run, line)
		return
	}

	// Recognized directives populate typed fields; OpenSSH resolution is
	// first-obtained-wins, so repeats stay verbatim in the opaque tail.
	switch strings.ToLower(key) {
	case "hostname":
		if p.cur.HostName == "" {
			p.cur.HostName = value
			return
		}
	case "user":
		if p.cur.User == "" {
			p.cur.User = value
			return
		}
	case "port":
		if p.cur.Port == 0 {
			if n, err := strconv.Atoi(value); err == nil && util.ValidatePort(n) == nil {
				p.cur.Port = n
				return
			}
			p.warnings = append(p.warnings,
				fmt.Sprintf("line %d: host %q has unparseable Port %q, kept verbatim", p.lineNo, p.cur.Alias, value))
		}
	case "identityfile":
		if p.cur.IdentityFile == "" {
			p.cur.IdentityFile = value
			return
		}
	}
	p.cur.RawExtra = append(p.cur.RawExtra, line)
}

func (p *parser) finish() {
	p.flushMeta()
	p.closeBlock()
	p.flushRun()
}

func (p *parser) closeBlock() {
	if p.cur != nil {
		p.items = append(p.items, Item{Host: p.cur})
		p.cur = nil
	}
	if p.opaque != nil {
		p.items = append(p.items, Item{Raw: p.opaque})
		p.opaque = nil
	}
}

func (p *parser) flushRun() {
	if len(p.run) > 0 {
		p.items = append(p.items, Item{Raw: p.run})
		p.run = nil
	}
}

func (p *parser) flushMeta() {
	for _, m := range p.meta {
		p.addRaw(m.raw)
	}
	p.meta = nil
}

// addRaw preserves a line verbatim in whichever scope owns it.
func (p *parser) addRaw(line string) {
	switch {
	case p.opaque != nil:
		p.opaque = append(p.opaque, line)
	case p.cur != nil:
		p.cur.RawExtra = append(p.cur.RawExtra, line)
	default:
		p.run = append(p.run, line)
	}
}

// parseMetaComment matches "# @key: value" comments for the metadata keys
// the editor understands. Anything else is an ordinary comment.
func parseMetaComment(trimmed string) (key, value string, ok bool) {
	const prefix = "# @"
	if !strings.HasPrefix(trimmed, prefix) {
		return "", "", false
	}
	rest := trimmed[len(prefix):]
	idx := strings.Index(rest, ":")
	if idx <= 0 {
		return "", "", false
	}
	key = strings.ToLower(strings.TrimSpace(rest[:idx]))
	value = strings.TrimSpace(rest[idx+1:])
	switch key {
	case "folder", "name", "description", "visible":
		return key, value, value != ""
	}
	return "", "", false
}

func splitDirective(line string) (key, value string, ok bool) {
	if i := strings.IndexAny(line, " \t"); i > 0 {
		key = strings.TrimSpace(line[:i])
		value = strings.TrimSpace(line[i+1:])
		return key, value, key != "" && value != ""
	}
	if i := strings.Index(line, "="); i > 0 {
		key = strings.TrimSpace(line[:i])
		value = strings.TrimSpace(line[i+1:])
		return key, value, key != "" && value != ""
	}
	return "", "", false
}
