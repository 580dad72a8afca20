// Package cli provides the command-line interface for sshc.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Akaere-NetWorks/SSHC/internal/appconfig"
	"github.com/Akaere-NetWorks/SSHC/internal/backup"
	"github.com/Akaere-NetWorks/SSHC/internal/config"
	"github.com/Akaere-NetWorks/SSHC/internal/doctor"
	"github.com/Akaere-NetWorks/SSHC/internal/events"
	"github.com/Akaere-NetWorks/SSHC/internal/history"
	"github.com/Akaere-NetWorks/SSHC/internal/model"
	"github.com/Akaere-NetWorks/SSHC/internal/security"
	"github.com/Akaere-NetWorks/SSHC/internal/sshclient"
	"github.com/Akaere-NetWorks/SSHC/internal/ui"
	"github.com/Akaere-NetWorks/SSHC/internal/util"
)

// NewRootCommand creates the root cobra command. Running sshc with no
// subcommand starts the TUI dashboard.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "sshc",
		Short: "Terminal SSH config manager",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ui.Run()
		},
	}

	root.AddCommand(newListCmd())
	root.AddCommand(newShowCmd())
	root.AddCommand(newConnectCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newLogCmd())
	root.AddCommand(newBackupCmd())
	return root
}

// configPath resolves the SSH config location, honoring the app config
// override.
func configPath() (string, error) {
	cfg, err := appconfig.Load()
	if err != nil {
		slog.Warn("failed to load app config, using defaults", "error", err)
		cfg = appconfig.Default()
	}
	if strings.TrimSpace(cfg.SSHConfigPath) != "" {
		return cfg.SSHConfigPath, nil
	}
	return config.DefaultPath()
}

func newListCmd() *cobra.Command {
	var jsonOut, all, recent bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List hosts from the SSH config",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath()
			if err != nil {
				return err
			}
			res, err := config.ParseFile(path)
			if err != nil {
				return err
			}
			hosts := res.Snapshot.Hosts()
			if !all {
				visible := hosts[:0]
				for _, h := range hosts {
					if !h.Hidden {
						visible = append(visible, h)
					}
				}
				hosts = visible
			}
			if recent {
				last, err := history.LastConnected()
				if err != nil {
					return err
				}
				hosts = history.SortHostsRecent(hosts, last)
			}
			if jsonOut {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(hosts)
			}
			fmt.Printf("%-24s %-28s %-6s %-16s %s\n", "ALIAS", "HOSTNAME", "PORT", "USER", "FOLDER")
			for _, h := range hosts {
				fmt.Printf("%-24s %-28s %-6d %-16s %s\n",
					h.Alias, util.EmptyDash(h.HostName), h.EffectivePort(), util.EmptyDash(h.User), util.EmptyDash(h.Folder))
			}
			printWarnings(res.Warnings)
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output JSON")
	cmd.Flags().BoolVar(&all, "all", false, "include hosts marked not visible")
	cmd.Flags().BoolVar(&recent, "recent", false, "sort by most recent connection")
	return cmd
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <alias>",
		Short: "Show one host entry in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			host, _, err := findHost(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Alias:     %s\n", host.Alias)
			fmt.Printf("HostName:  %s\n", util.EmptyDash(host.HostName))
			fmt.Printf("User:      %s\n", util.EmptyDash(host.User))
			fmt.Printf("Port:      %d\n", host.EffectivePort())
			fmt.Printf("Identity:  %s\n", util.EmptyDash(host.IdentityFile))
			if host.Folder != "" {
				fmt.Printf("Folder:    %s\n", host.Folder)
			}
			if host.DisplayName != "" {
				fmt.Printf("Name:      %s\n", host.DisplayName)
			}
			if host.Description != "" {
				fmt.Printf("About:     %s\n", host.Description)
			}
			if host.Hidden {
				fmt.Println("Visible:   false")
			}
			fmt.Printf("Command:   %s\n", sshclient.New().CommandPreview(host))
			if len(host.RawExtra) > 0 {
				fmt.Println("Extra directives:")
				for _, line := range host.RawExtra {
					fmt.Printf("  %s\n", strings.TrimSpace(line))
				}
			}
			return nil
		},
	}
}

func newConnectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "connect <alias>",
		Short: "Open an interactive SSH session to a host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := sshclient.EnsureSSHBinary(); err != nil {
				return err
			}
			host, _, err := findHost(args[0])
			if err != nil {
				return err
			}
			recordConnect(host.Alias)
			if err := ConnectOnce(host); err != nil {
				// The raw exec error can embed local paths; keep the
				// detail out of the user-facing message.
				slog.Debug("ssh session error", "detail", security.DebugMessage(err))
				return security.NewClassifiedError("ssh session for "+host.Alias+" failed", err.Error())
			}
			return nil
		},
	}
}

func newCheckCmd() *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run local diagnostics on the SSH config and related files",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath()
			if err != nil {
				return err
			}
			report, err := doctor.Run(path)
			if err != nil {
				return err
			}
			if jsonOut {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return err
				}
			} else if len(report.Issues) == 0 {
				fmt.Println("no issues found")
			} else {
				fmt.Printf("%-8s %-18s %-28s %s\n", "SEV", "CHECK", "TARGET", "MESSAGE")
				for _, issue := range report.Issues {
					fmt.Printf("%-8s %-18s %-28s %s\n", issue.Severity, issue.Check, issue.Target, issue.Message)
				}
			}
			if report.HasHigh() {
				return fmt.Errorf("high severity issues found")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output JSON")
	return cmd
}

func newLogCmd() *cobra.Command {
	var hostAlias, eventType string
	var limit int
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show recent connect and save events",
		RunE: func(cmd *cobra.Command, args []string) error {
			evts, err := events.NewStore().Read(events.Query{
				HostAlias: hostAlias,
				EventType: eventType,
				Limit:     limit,
			})
			if err != nil {
				return err
			}
			for _, e := range evts {
				line := fmt.Sprintf("%s  %-8s %s", e.Timestamp.Local().Format(time.DateTime), e.EventType, e.HostAlias)
				if e.Message != "" {
					line += "  " + e.Message
				}
				fmt.Println(strings.TrimRight(line, " "))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&hostAlias, "host", "", "filter by host alias")
	cmd.Flags().StringVar(&eventType, "type", "", "filter by event type (connect, commit, restore)")
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum events to show")
	return cmd
}

func newBackupCmd() *cobra.Command {
	root := &cobra.Command{Use: "backup", Short: "Manage SSH config backups"}

	list := &cobra.Command{
		Use:   "list",
		Short: "List stored backups, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := backup.List()
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("no backups")
				return nil
			}
			fmt.Printf("%-20s %-20s %-8s %s\n", "ID", "CREATED", "BYTES", "NOTE")
			for _, e := range entries {
				fmt.Printf("%-20s %-20s %-8d %s\n", e.ID, e.CreatedAt.Local().Format(time.DateTime), e.Size, e.Note)
			}
			return nil
		},
	}

	restore := &cobra.Command{
		Use:   "restore <id>",
		Short: "Restore a backup over the SSH config",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath()
			if err != nil {
				return err
			}
			cfg, err := appconfig.Load()
			if err != nil {
				cfg = appconfig.Default()
			}
			if err := backup.Restore(args[0], path, cfg.BackupLimit); err != nil {
				return err
			}
			if err := events.NewStore().Append(events.Event{
				EventType: events.TypeRestore,
				Message:   fmt.Sprintf("restored backup %s", args[0]),
			}); err != nil {
				slog.Warn("failed to journal restore", "error", err)
			}
			fmt.Printf("restored %s to %s\n", args[0], path)
			return nil
		},
	}

	root.AddCommand(list, restore)
	return root
}

func findHost(alias string) (model.HostEntry, []string, error) {
	path, err := configPath()
	if err != nil {
		return model.HostEntry{}, nil, err
	}
	res, err := config.ParseFile(path)
	if err != nil {
		return model.HostEntry{}, nil, err
	}
	host, ok := res.Snapshot.Find(alias)
	if !ok {
		return model.HostEntry{}, res.Warnings, fmt.Errorf("host not found: %s", alias)
	}
	return host, res.Warnings, nil
}

func printWarnings(warnings []string) {
	if len(warnings) == 0 {
		return
	}
	fmt.Fprintln(os.Stderr, "warnings:")
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "  - %s\n", w)
	}
}

// recordConnect updates connection history and the event journal. Failures
// here never block the session itself.
func recordConnect(alias string) {
	if err := history.Touch(alias); err != nil {
		slog.Warn("failed to record connection history", "alias", alias, "error", err)
	}
	if err := events.NewStore().Append(events.Event{EventType: events.TypeConnect, HostAlias: alias}); err != nil {
		slog.Warn("failed to journal connect event", "alias", alias, "error", err)
	}
}

// ConnectOnce establishes an interactive SSH session to the given host.
func ConnectOnce(host model.HostEntry) error {
	// Interactive sessions can last hours; the timeout is a backstop only.
	ctx, cancel := context.WithTimeout(context.Background(), 24*time.Hour)
	defer cancel()
	return sshclient.New().RunInteractive(ctx, host)
}
