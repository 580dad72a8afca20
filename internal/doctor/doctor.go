package doctor

import (
	"fmt"
	"sort"

	"github.com/Akaere-NetWorks/SSHC/internal/config"
	"github.com/Akaere-NetWorks/SSHC/internal/model"
	"github.com/Akaere-NetWorks/SSHC/internal/security"
	"github.com/Akaere-NetWorks/SSHC/internal/sshclient"
)

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

type Issue struct {
	Severity       Severity `json:"severity"`
	Check          string   `json:"check"`
	Target         string   `json:"target"`
	Message        string   `json:"message"`
	Recommendation string   `json:"recommendation"`
}

type Report struct {
	Issues []Issue `json:"issues"`
}

// HasHigh reports whether any issue is high severity.
func (r Report) HasHigh() bool {
	for _, i := range r.Issues {
		if i.Severity == SeverityHigh {
			return true
		}
	}
	return false
}

// Run executes local diagnostics against the SSH config at path.
func Run(path string) (Report, error) {
	var issues []Issue

	if err := sshclient.EnsureSSHBinary(); err != nil {
		issues = append(issues, Issue{
			Severity:       SeverityHigh,
			Check:          "ssh-binary",
			Target:         "PATH",
			Message:        err.Error(),
			Recommendation: "install OpenSSH client and ensure `ssh` is on PATH",
		})
	}

	res, err := config.ParseFile(path)
	if err != nil {
		return Report{}, err
	}
	for _, w := range res.Warnings {
		issues = append(issues, Issue{
			Severity:       SeverityMedium,
			Check:          "config-warning",
			Target:         path,
			Message:        w,
			Recommendation: "fix malformed or conflicting SSH config directives",
		})
	}
	hosts := res.Snapshot.Hosts()
	issues = append(issues, duplicateTargetIssues(hosts)...)

	audit := security.RunLocalAudit(hosts, path)
	for _, f := range audit.Findings {
		sev := SeverityLow
		if f.Severity == security.SeverityMedium {
			sev = SeverityMedium
		}
		if f.Severity == security.SeverityHigh {
			sev = SeverityHigh
		}
		issues = append(issues, Issue{
			Severity:       sev,
			Check:          "security-audit",
			Target:         f.Target,
			Message:        f.Message,
			Recommendation: f.Recommendation,
		})
	}

	sort.Slice(issues, func(i, j int) bool {
		ri := severityRank(issues[i].Severity)
		rj := severityRank(issues[j].Severity)
		if ri != rj {
			return ri > rj
		}
		if issues[i].Check != issues[j].Check {
			return issues[i].Check < issues[j].Check
		}
		if issues[i].Target != issues[j].Target {
			return issues[i].Target < issues[j].Target
		}
		return issues[i].Message < issues[j].Message
	})
	return Report{Issues: issues}, nil
}

// duplicateTargetIssues flags aliases that resolve to the same endpoint.
// Two aliases for one hostname:port are usually a leftover from renames and
// make it easy to edit the wrong entry.
func duplicateTargetIssues(hosts []model.HostEntry) []Issue {
	seen := map[string][]string{}
	for _, h := range hosts {
		if h.HostName == "" {
			continue
		}
		key := fmt.Sprintf("%s:%d", h.HostName, h.EffectivePort())
		seen[key] = append(seen[key], h.Alias)
	}
	var issues []Issue
	for target, aliases := range seen {
		if len(aliases) < 2 {
			continue
		}
		issues = append(issues, Issue{
			Severity:       SeverityLow,
			Check:          "duplicate-target",
			Target:         target,
			Message:        fmt.Sprintf("endpoint is configured by %d host aliases", len(aliases)),
			Recommendation: "consolidate aliases that point at the same endpoint, or document why both exist",
		})
	}
	return issues
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
