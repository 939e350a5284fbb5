package netops

import (
	"bytes"
	"context"
	"os/exec"
	"strconv"
	"time"

	"github.com/JustinLoye/network-agents/internal/types"
)

// Defaults for the diagnostic commands.
const (
	DefaultPingCount = 4
	DefaultMaxHops   = 30
)

// runner executes a command and returns stdout on success or stderr on a
// nonzero exit, mirroring how an operator reads the shell.
type runner func(ctx context.Context, name string, args ...string) (string, error)

func runCommand(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		// Diagnostic commands report reachability problems on stderr with
		// a nonzero exit; that text is the useful answer, not a failure
		if _, ok := err.(*exec.ExitError); ok {
			return stderr.String(), nil
		}
		return "", types.WrapError(types.AGENT_TOOL_FAILED, "command "+name+" failed", err)
	}
	return stdout.String(), nil
}

// Tools exposes the local diagnostic commands. The zero value is not
// usable; construct with NewTools.
type Tools struct {
	run runner
	now func() time.Time
}

// NewTools returns a Tools backed by the local shell commands.
func NewTools() *Tools {
	return &Tools{run: runCommand, now: time.Now}
}

// Ping sends count ICMP echo requests to host and returns the framed raw
// command output.
func (t *Tools) Ping(ctx context.Context, host string, count int) (string, error) {
	if count <= 0 {
		count = DefaultPingCount
	}
	out, err := t.run(ctx, "ping", "-c", strconv.Itoa(count), host)
	if err != nil {
		return "", err
	}
	return FrameTool(out), nil
}

// Traceroute traces the route to host probing at most maxHops hops.
func (t *Tools) Traceroute(ctx context.Context, host string, maxHops int) (string, error) {
	if maxHops <= 0 {
		maxHops = DefaultMaxHops
	}
	out, err := t.run(ctx, "traceroute", "-m", strconv.Itoa(maxHops), host)
	if err != nil {
		return "", err
	}
	return FrameTool(out), nil
}

// RoutingTable returns the system routing table from `ip route show`,
// useful to find the gateway address.
func (t *Tools) RoutingTable(ctx context.Context) (string, error) {
	out, err := t.run(ctx, "ip", "route", "show")
	if err != nil {
		return "", err
	}
	return FrameTool(out), nil
}

// CurrentTime returns the local time without timezone information.
func (t *Tools) CurrentTime() string {
	return FrameTool(t.now().Format("2006-01-02 15:04:05"))
}
