package security

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Akaere-NetWorks/SSHC/internal/appconfig"
	"github.com/Akaere-NetWorks/SSHC/internal/model"
)

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

type Finding struct {
	Severity       Severity `json:"severity"`
	Target         string   `json:"target"`
	Message        string   `json:"message"`
	Recommendation string   `json:"recommendation"`
}

type AuditReport struct {
	Findings []Finding `json:"findings"`
}

func (r AuditReport) HasHigh() bool {
	for _, f := range r.Findings {
		if f.Severity == SeverityHigh {
			return true
		}
	}
	return false
}

// RunLocalAudit inspects the posture of the SSH config file, sshc's own
// state files, and the identity files the hosts reference.
func RunLocalAudit(hosts []model.HostEntry, configPath string) AuditReport {
	var findings []Finding

	home, homeErr := os.UserHomeDir()
	if homeErr == nil {
		checkPathPerm(&findings, filepath.Join(home, ".ssh"), 0o700, false)
	}
	if configPath != "" {
		checkPathPerm(&findings, configPath, 0o600, true)
	}

	if cfgDir, err := appconfig.ConfigDir(); err == nil {
		checkPathPerm(&findings, cfgDir, 0o700, false)
		checkPathPerm(&findings, filepath.Join(cfgDir, "config.yaml"), 0o600, true)
		checkPathPerm(&findings, filepath.Join(cfgDir, "history.json"), 0o600, true)
		checkPathPerm(&findings, filepath.Join(cfgDir, "events.jsonl"), 0o600, true)
	}

	seen := map[string]struct{}{}
	for _, h := range hosts {
		identity := strings.TrimSpace(h.IdentityFile)
		if identity == "" {
			continue
		}
		if strings.HasPrefix(identity, "~/") && homeErr == nil {
			identity = filepath.Join(home, identity[2:])
		}
		if _, ok := seen[identity]; ok {
			continue
		}
		seen[identity] = struct{}{}
		if _, err := os.Stat(identity); os.IsNotExist(err) {
			findings = append(findings, Finding{
				Severity:       SeverityMedium,
				Target:         identity,
				Message:        fmt.Sprintf("identity file for host %q does not exist", h.Alias),
				Recommendation: "fix the IdentityFile path or generate the key",
			})
			continue
		}
		checkPathPerm(&findings, identity, 0o600, true)
	}

	sort.Slice(findings, func(i, j int) bool {
		if findings[i].Severity != findings[j].Severity {
			return severityRank(findings[i].Severity) > severityRank(findings[j].Severity)
		}
		if findings[i].Target != findings[j].Target {
			return findings[i].Target < findings[j].Target
		}
		return findings[i].Message < findings[j].Message
	})
	return AuditReport{Findings: findings}
}

func severityRank(s Severity) int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	default:
		return 1
	}
}

func checkPathPerm(findings *[]Finding, path string, max os.FileMode, isFile bool) {
	st, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return
		}
		*findings = append(*findings, Finding{
			Severity:       SeverityLow,
			Target:         path,
			Message:        fmt.Sprintf("unable to inspect permissions: %v", err),
			Recommendation: "verify path and permissions manually",
		})
		return
	}
	mode := st.Mode().Perm()
	if mode > max {
		kind := "directory"
		if isFile {
			kind = "file"
		}
		*findings = append(*findings, Finding{
			Severity:       SeverityMedium,
			Target:         path,
			Message:        fmt.Sprintf("%s permissions are too broad (%#o)", kind, mode),
			Recommendation: fmt.Sprintf("restrict permissions to %#o or tighter", max),
		})
	}
}
