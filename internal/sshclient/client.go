// Package sshclient launches interactive SSH sessions via the system ssh
// binary.
//
// This package does NOT implement the SSH protocol itself. It shells out to
// the system's "ssh" binary, which means sessions automatically inherit the
// user's full SSH configuration (keys, agents, ProxyJump chains, etc.)
// without reimplementing any of that logic.
//
// All SSH arguments are passed via exec.Command's argv (not via shell
// interpolation), which prevents injection from host aliases that contain
// shell metacharacters.
package sshclient

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/creack/pty"
	"github.com/kballard/go-shellquote"

	"github.com/Akaere-NetWorks/SSHC/internal/model"
)

// Client creates and launches SSH processes.
//
// Client is stateless and safe for concurrent use; each method call creates
// an independent exec.Cmd. Use New() to create an instance.
type Client struct{}

// New creates a new SSH client.
func New() *Client { return &Client{} }

// EnsureSSHBinary checks that the "ssh" binary is available on the system
// PATH. Call this early during startup to fail with a clear message instead
// of a confusing exec error later.
func EnsureSSHBinary() error {
	if _, err := exec.LookPath("ssh"); err != nil {
		return fmt.Errorf("ssh binary not found in PATH")
	}
	return nil
}

// ConnectCommand creates an exec.Cmd for an interactive SSH session to the
// given host.
//
// The command uses the host's Alias (not HostName) as the SSH destination,
// which lets OpenSSH resolve all config directives (HostName, User, Port,
// IdentityFile, ProxyJump, etc.) from the user's ~/.ssh/config, including
// directives this tool preserves verbatim but does not model.
//
// The returned Cmd has no stdin/stdout/stderr configured; the caller is
// responsible for connecting them (see RunInteractive for PTY-based usage,
// or the TUI's tea.ExecProcess for Bubble Tea integration). This method does
// NOT start the process.
func (c *Client) ConnectCommand(host model.HostEntry) *exec.Cmd {
	return exec.Command("ssh", host.Alias)
}

// CommandPreview renders the fully resolved ssh invocation for a host as a
// copy-pasteable shell string. Unlike ConnectCommand, which relies on the
// alias and lets OpenSSH resolve the config, the preview spells out the
// modeled fields explicitly so the user can see what a connection maps to.
func (c *Client) CommandPreview(host model.HostEntry) string {
	args := []string{"ssh"}
	if host.Port != 0 {
		args = append(args, "-p", fmt.Sprintf("%d", host.Port))
	}
	if host.User != "" {
		args = append(args, "-l", host.User)
	}
	if host.IdentityFile != "" {
		args = append(args, "-i", host.IdentityFile)
	}
	target := host.HostName
	if target == "" {
		target = host.Alias
	}
	args = append(args, target)
	return shellquote.Join(args...)
}

// RunInteractive starts an interactive SSH session in a pseudo-terminal.
//
// A PTY is necessary for interactive SSH because the remote side expects a
// terminal for password prompts, line editing, and resizing. The method
// blocks until the SSH session ends; if ctx is cancelled while the session
// is active, the SSH process is killed.
//
// In the TUI this path is not used directly; the dashboard hands the
// ConnectCommand to tea.ExecProcess instead, which suspends the Bubble Tea
// program and gives SSH full control of the terminal. RunInteractive serves
// the plain CLI `connect` command.
func (c *Client) RunInteractive(ctx context.Context, host model.HostEntry) error {
	cmd := c.ConnectCommand(host)

	f, err := pty.Start(cmd)
	if err != nil {
		return err
	}
	defer f.Close()

	// Forward user input into the PTY master. io.Copy blocks until the PTY
	// closes, so the goroutine ends naturally when the session does.
	go func() {
		_, _ = io.Copy(f, os.Stdin)
	}()

	// Forward PTY output to the terminal until the SSH process exits.
	_, _ = io.Copy(os.Stdout, f)

	if ctx.Err() != nil {
		_ = cmd.Process.Kill()
	}
	return cmd.Wait()
}
