package controller

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os/exec"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rsandov/scrpair/internal/adb"
	"github.com/rsandov/scrpair/internal/logging"
	"github.com/rsandov/scrpair/internal/pairing"
)

// CommandRunner executes the external bridge and mirror commands. adb.Runner
// is the production implementation; tests substitute a scripted fake.
type CommandRunner interface {
	Run(ctx context.Context, name string, args []string, timeout time.Duration) adb.Result
	Start(name string, args ...string) (*adb.Process, error)
}

// Phase is the controller's position in the pairing lifecycle.
type Phase int

const (
	PhaseUninitialized Phase = iota
	PhaseCheckingBridge
	PhaseIdle
	PhasePairing
	PhaseConnecting
	PhaseLaunchingMirror
	PhaseMirrorRunning
)

func (p Phase) String() string {
	switch p {
	case PhaseUninitialized:
		return "uninitialized"
	case PhaseCheckingBridge:
		return "checking-bridge"
	case PhaseIdle:
		return "idle"
	case PhasePairing:
		return "pairing"
	case PhaseConnecting:
		return "connecting"
	case PhaseLaunchingMirror:
		return "launching-mirror"
	case PhaseMirrorRunning:
		return "mirror-running"
	default:
		return "unknown"
	}
}

// Address is a host/port pair. Ports are kept as strings because they pass
// straight through to the bridge tool; the tool's rejection of a bad port
// surfaces as a classification failure rather than being validated here.
type Address struct {
	Host string
	Port string
}

func (a Address) String() string {
	return net.JoinHostPort(a.Host, a.Port)
}

// Options configures a Controller. Zero fields take defaults.
type Options struct {
	// BridgeCommand is the debug-bridge binary (default "adb").
	BridgeCommand string

	// MirrorCommand is the mirror binary (default "scrcpy").
	MirrorCommand string

	// MirrorArgs are extra flags appended to every mirror launch, after
	// the fixed stay-awake and device-selection flags.
	MirrorArgs []string

	// Timeout bounds each blocking bridge invocation (default 10s).
	Timeout time.Duration

	// Runner executes external commands (default adb.Runner{}).
	Runner CommandRunner

	// EventBuffer is the capacity of the event channel (default 64).
	EventBuffer int
}

// stopGrace is how long Stop waits for an in-flight operation before
// abandoning it.
const stopGrace = 1500 * time.Millisecond

// Controller owns the pairing/connection lifecycle. All external-process
// calls run strictly sequentially on one worker goroutine: the bridge tool
// keeps a single implicit daemon connection, and concurrent pair/connect
// calls would race against that shared state.
//
// Callers never block. Requests are enqueued and results come back as
// events; since requests are serialized, event order equals request-issue
// order.
type Controller struct {
	opts Options

	requests chan func()
	events   chan Event
	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}

	// The credential is the one piece of state readable from the caller
	// side, so it lives behind its own lock instead of on the worker.
	credMu sync.RWMutex
	cred   pairing.Credential

	// Lifecycle state below is owned exclusively by the worker goroutine.
	phase         Phase
	bridgeOK      bool
	connectedAddr *Address
	mirror        *adb.Process
}

// New creates a Controller with a fresh pairing credential and starts its
// worker goroutine. Call Stop to shut it down.
func New(opts Options) *Controller {
	if opts.BridgeCommand == "" {
		opts.BridgeCommand = adb.DefaultBridgeCommand
	}
	if opts.MirrorCommand == "" {
		opts.MirrorCommand = adb.DefaultMirrorCommand
	}
	if opts.Timeout <= 0 {
		opts.Timeout = adb.DefaultTimeout
	}
	if opts.Runner == nil {
		opts.Runner = adb.Runner{}
	}
	if opts.EventBuffer <= 0 {
		opts.EventBuffer = 64
	}

	c := &Controller{
		opts:     opts,
		requests: make(chan func(), 32),
		events:   make(chan Event, opts.EventBuffer),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
		cred:     pairing.Generate(),
		phase:    PhaseUninitialized,
	}
	go c.worker()
	return c
}

// Events returns the channel lifecycle events are delivered on. The caller
// should drain it continuously; if it falls behind, the oldest pending
// event is dropped in favor of the newest.
func (c *Controller) Events() <-chan Event {
	return c.events
}

// Credential returns the current pairing credential.
func (c *Controller) Credential() pairing.Credential {
	c.credMu.RLock()
	defer c.credMu.RUnlock()
	return c.cred
}

// Regenerate supersedes the current credential with a fresh one and returns
// it. Permitted in any phase; the old credential is discarded, never
// mutated.
func (c *Controller) Regenerate() pairing.Credential {
	cred := pairing.Generate()
	c.credMu.Lock()
	c.cred = cred
	c.credMu.Unlock()
	return cred
}

// CheckBridge verifies the bridge tool is present and its daemon is
// running. Must succeed before pair or connect requests are accepted.
func (c *Controller) CheckBridge() {
	c.enqueue(c.checkBridge)
}

// Pair asks the device at host:port to pair using the given code.
func (c *Controller) Pair(host, port, password string) {
	c.enqueue(func() { c.pair(host, port, password) })
}

// Connect establishes the data-plane link to an already-paired device.
func (c *Controller) Connect(host, port string) {
	c.enqueue(func() { c.connect(host, port) })
}

// LaunchMirror starts the detached mirror process against the currently
// connected device.
func (c *Controller) LaunchMirror() {
	c.enqueue(c.launchMirror)
}

// Stop asks the worker to finish and waits up to a bounded grace period for
// the in-flight call. The detached mirror process is not waited on and may
// outlive the controller.
func (c *Controller) Stop() {
	c.stopOnce.Do(func() { close(c.stop) })
	select {
	case <-c.done:
	case <-time.After(stopGrace):
		logging.Warn("controller stop grace period elapsed; abandoning in-flight call")
	}
}

func (c *Controller) worker() {
	defer close(c.done)
	for {
		select {
		case <-c.stop:
			return
		case op := <-c.requests:
			op()
		}
	}
}

// enqueue hands a request to the worker. The buffer is far larger than a
// human caller can outpace, so ordering is preserved without blocking in
// practice; after Stop the request is discarded.
func (c *Controller) enqueue(op func()) {
	select {
	case <-c.stop:
		return
	default:
	}
	select {
	case c.requests <- op:
	case <-c.stop:
	}
}

// emit delivers an event without ever blocking the worker. When the buffer
// is full the oldest pending event is dropped so the newest state wins.
func (c *Controller) emit(ev Event) {
	logging.LogEvent(fmt.Sprintf("%T", ev), "")
	for {
		select {
		case c.events <- ev:
			return
		default:
		}
		select {
		case <-c.events:
			logging.Warn("event buffer full; dropped oldest pending event")
		default:
		}
	}
}

func (c *Controller) setPhase(p Phase) {
	logging.LogTransition(c.phase.String(), p.String())
	c.phase = p
}

func (c *Controller) run(args ...string) adb.Result {
	return c.opts.Runner.Run(context.Background(), c.opts.BridgeCommand, args, c.opts.Timeout)
}

func (c *Controller) checkBridge() {
	c.setPhase(PhaseCheckingBridge)

	res := c.run("version")
	if f := adb.ExecFailure("adb version", res); f != nil {
		c.bridgeOK = false
		c.setPhase(PhaseUninitialized)
		c.emit(Log{Text: f.Reason})
		c.emit(BridgeUnavailable{
			Reason: fmt.Sprintf("%s not found in PATH. Install platform-tools and ensure '%s' is in PATH.",
				c.opts.BridgeCommand, c.opts.BridgeCommand),
		})
		return
	}
	if res.ExitCode != 0 {
		c.bridgeOK = false
		c.setPhase(PhaseUninitialized)
		c.emit(Log{Text: res.Output})
		c.emit(BridgeUnavailable{
			Reason: fmt.Sprintf("%s version exited with status %d", c.opts.BridgeCommand, res.ExitCode),
		})
		return
	}

	c.emit(Log{Text: res.Output})

	// Make sure the daemon is up. Output is advisory only; a dead daemon
	// shows up on the first real call.
	_ = c.run("start-server")

	c.bridgeOK = true
	c.setPhase(PhaseIdle)
}

// guardBridge rejects an operation issued before the bridge was verified.
// This surfaces as an explicit guard error rather than a silent no-op so the
// caller can see why nothing happened.
func (c *Controller) guardBridge(op string) bool {
	if c.bridgeOK {
		return true
	}
	c.emit(Error{
		Op:     op,
		Kind:   adb.FailureGuard,
		Reason: fmt.Sprintf("%s requested before the bridge tool was verified. Run the bridge check first.", op),
	})
	return false
}

func (c *Controller) pair(host, port, password string) {
	if !c.guardBridge("pair") {
		return
	}

	c.setPhase(PhasePairing)
	defer c.setPhase(PhaseIdle)

	target := Address{Host: host, Port: port}
	c.emit(Log{Text: fmt.Sprintf("Pairing with %s…", target)})

	res := c.run("pair", target.String(), password)
	if res.Output != "" {
		c.emit(Log{Text: res.Output})
	}

	if f := adb.ClassifyPair(res); f != nil {
		logging.Warn("pairing failed", zap.String("reason", f.Reason), zap.String("output", f.Output))
		c.emit(Error{Op: "pair", Kind: f.Kind, Reason: f.Reason})
		return
	}

	// The pairing port is ephemeral. The data plane listens on the
	// well-known wireless port, so that is what the caller should connect
	// to next.
	c.emit(Paired{Host: host, Port: adb.WirelessPort})
}

func (c *Controller) connect(host, port string) {
	if !c.guardBridge("connect") {
		return
	}

	c.setPhase(PhaseConnecting)
	defer c.setPhase(PhaseIdle)

	target := Address{Host: host, Port: port}
	c.emit(Log{Text: fmt.Sprintf("Connecting to %s…", target)})

	res := c.run("connect", target.String())
	if res.Output != "" {
		c.emit(Log{Text: res.Output})
	}

	if f := adb.ClassifyConnect(res); f != nil {
		logging.Warn("connect failed", zap.String("reason", f.Reason), zap.String("output", f.Output))
		// A prior successful connection, if any, stays recorded.
		c.emit(Error{Op: "connect", Kind: f.Kind, Reason: f.Reason})
		return
	}

	c.connectedAddr = &target
	c.emit(Connected{Host: host, Port: port})
}

func (c *Controller) launchMirror() {
	if c.connectedAddr == nil {
		c.emit(Error{
			Op:     "mirror",
			Kind:   adb.FailureGuard,
			Reason: "mirror requested before a device connection was established. Connect first.",
		})
		return
	}

	c.setPhase(PhaseLaunchingMirror)

	res := c.run("devices")
	if f := adb.ExecFailure("adb devices", res); f != nil {
		c.setPhase(PhaseIdle)
		c.emit(Error{Op: "mirror", Kind: f.Kind, Reason: f.Reason})
		return
	}

	serials := adb.ParseDevices(res.Output)
	if len(serials) == 0 {
		c.setPhase(PhaseIdle)
		c.emit(Error{
			Op:     "mirror",
			Kind:   adb.FailureSelection,
			Reason: "No devices connected. Please connect first.",
		})
		return
	}

	serial, ok := adb.SelectWireless(serials, c.connectedAddr.Host)
	if !ok {
		c.setPhase(PhaseIdle)
		c.emit(Error{
			Op:     "mirror",
			Kind:   adb.FailureSelection,
			Reason: "Wireless device not found. Please connect first.",
		})
		return
	}

	args := append([]string{"--stay-awake", "-s", serial}, c.opts.MirrorArgs...)
	c.emit(Log{Text: fmt.Sprintf("Starting %s with device: %s...", c.opts.MirrorCommand, serial)})

	proc, err := c.opts.Runner.Start(c.opts.MirrorCommand, args...)
	if err != nil {
		c.setPhase(PhaseIdle)
		reason := fmt.Sprintf("Failed to start %s: %v", c.opts.MirrorCommand, err)
		if errors.Is(err, exec.ErrNotFound) {
			reason = fmt.Sprintf("%s not found in PATH. Install scrcpy and ensure it is in PATH.", c.opts.MirrorCommand)
		}
		c.emit(Error{Op: "mirror", Kind: adb.FailureSpawn, Reason: reason})
		return
	}

	// The handle is ours for the rest of the session; the process is
	// reaped in the background and may outlive us.
	c.mirror = proc
	c.setPhase(PhaseMirrorRunning)
	c.emit(MirrorStarted{Serial: serial})
}
