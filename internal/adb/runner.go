package adb

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rsandov/scrpair/internal/logging"
)

// Default external command names; both are expected in PATH. They can be
// overridden through the preferences file.
const (
	DefaultBridgeCommand = "adb"
	DefaultMirrorCommand = "scrcpy"
)

// WirelessPort is the well-known data-plane port for wireless debugging.
// The pairing port is ephemeral; after a successful pair the device listens
// for connections on this port.
const WirelessPort = "5555"

// DefaultTimeout bounds a single blocking bridge invocation.
const DefaultTimeout = 10 * time.Second

// Result captures one completed (or failed-to-complete) external command
// invocation. Output is stdout and stderr merged into one string; the
// interleaving between the two streams is not guaranteed, so consumers must
// only rely on substring presence. When TimedOut is set the exit code is
// undefined; when SpawnErr is set nothing else is meaningful.
type Result struct {
	ExitCode int
	Output   string
	TimedOut bool
	SpawnErr error
}

// Process is a handle to a detached child process. It is owned by whoever
// started it for the remainder of the session and is never waited on
// synchronously; a background goroutine reaps it when it exits.
type Process struct {
	cmd *exec.Cmd
}

// Pid returns the operating-system process id, or 0 for an empty handle.
func (p *Process) Pid() int {
	if p == nil || p.cmd == nil || p.cmd.Process == nil {
		return 0
	}
	return p.cmd.Process.Pid
}

// Runner executes external commands. The zero value is ready to use.
type Runner struct{}

// Run spawns the command, waits at most timeout, and returns a structured
// Result. On timeout the child is killed before Run returns, so no process
// is left orphaned. Run never panics or returns an error across this
// boundary; all failure is in the Result.
func (Runner) Run(ctx context.Context, name string, args []string, timeout time.Duration) Result {
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	cmd := exec.CommandContext(runCtx, name, args...)
	out, err := cmd.CombinedOutput()

	res := Result{Output: strings.TrimSpace(string(out))}
	switch {
	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		res.TimedOut = true
	case err != nil:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
		} else {
			res.SpawnErr = err
		}
	}

	logging.Debug("external command finished",
		zap.String("command", name),
		zap.Strings("args", args),
		zap.Int("exit_code", res.ExitCode),
		zap.Bool("timed_out", res.TimedOut),
		zap.Error(res.SpawnErr),
		zap.Duration("duration", time.Since(start)),
	)

	return res
}

// Start launches a long-running command without waiting for it to exit,
// returning once the process has started. The child is reaped by a
// background goroutine but is otherwise left alone; it may outlive the
// caller.
func (Runner) Start(name string, args ...string) (*Process, error) {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return nil, err
	}

	logging.Debug("detached command started",
		zap.String("command", name),
		zap.Strings("args", args),
		zap.Int("pid", cmd.Process.Pid),
	)

	// Reap on exit so the child never lingers as a zombie.
	go func() { _ = cmd.Wait() }()

	return &Process{cmd: cmd}, nil
}
