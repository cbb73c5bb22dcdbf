package controller

import (
	"context"
	"os/exec"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rsandov/scrpair/internal/adb"
)

type call struct {
	name string
	args []string
}

// fakeRunner scripts Run results by bridge subcommand and records every
// invocation in order.
type fakeRunner struct {
	mu       sync.Mutex
	results  map[string]adb.Result
	calls    []call
	started  []call
	startErr error
}

func (f *fakeRunner) Run(_ context.Context, name string, args []string, _ time.Duration) adb.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{name: name, args: args})
	if len(args) > 0 {
		if res, ok := f.results[args[0]]; ok {
			return res
		}
	}
	return adb.Result{}
}

func (f *fakeRunner) Start(name string, args ...string) (*adb.Process, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.started = append(f.started, call{name: name, args: args})
	if f.startErr != nil {
		return nil, f.startErr
	}
	return &adb.Process{}, nil
}

func (f *fakeRunner) callOrder() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	order := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		if len(c.args) > 0 {
			order = append(order, c.args[0])
		}
	}
	return order
}

func (f *fakeRunner) setResult(sub string, res adb.Result) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results[sub] = res
}

func healthyRunner() *fakeRunner {
	return &fakeRunner{results: map[string]adb.Result{
		"version":      {ExitCode: 0, Output: "Android Debug Bridge version 1.0.41"},
		"start-server": {ExitCode: 0},
		"pair":         {ExitCode: 0, Output: "Successfully paired to 10.0.0.5:37123"},
		"connect":      {ExitCode: 0, Output: "connected to 10.0.0.5:5555"},
		"devices":      {ExitCode: 0, Output: "List of devices attached\n10.0.0.5:5555\tdevice"},
	}}
}

func newTestController(t *testing.T, runner CommandRunner) *Controller {
	t.Helper()
	ctrl := New(Options{Runner: runner, Timeout: time.Second})
	t.Cleanup(ctrl.Stop)
	return ctrl
}

// awaitEvent reads events until one of type T arrives, recording everything
// seen along the way into log.
func awaitEvent[T Event](t *testing.T, ctrl *Controller, log *[]Event) T {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case ev := <-ctrl.Events():
			if log != nil {
				*log = append(*log, ev)
			}
			if v, ok := ev.(T); ok {
				return v
			}
		case <-deadline:
			var zero T
			t.Fatalf("timed out waiting for %T event", zero)
			return zero
		}
	}
}

func TestEndToEndScenario(t *testing.T) {
	runner := healthyRunner()
	ctrl := newTestController(t, runner)

	var seen []Event

	ctrl.CheckBridge()
	ctrl.Pair("10.0.0.5", "37123", "123456")

	paired := awaitEvent[Paired](t, ctrl, &seen)
	if paired.Host != "10.0.0.5" || paired.Port != "5555" {
		t.Fatalf("Paired = %+v, want host 10.0.0.5 and well-known port 5555", paired)
	}

	ctrl.Connect(paired.Host, paired.Port)
	connected := awaitEvent[Connected](t, ctrl, &seen)
	if connected.Host != "10.0.0.5" || connected.Port != "5555" {
		t.Fatalf("Connected = %+v, want 10.0.0.5:5555", connected)
	}

	ctrl.LaunchMirror()
	started := awaitEvent[MirrorStarted](t, ctrl, &seen)
	if started.Serial != "10.0.0.5:5555" {
		t.Errorf("MirrorStarted.Serial = %q, want %q", started.Serial, "10.0.0.5:5555")
	}

	for _, ev := range seen {
		if errEv, ok := ev.(Error); ok {
			t.Errorf("unexpected Error event: %+v", errEv)
		}
	}

	runner.mu.Lock()
	defer runner.mu.Unlock()
	if len(runner.started) != 1 {
		t.Fatalf("mirror launches = %d, want 1", len(runner.started))
	}
	got := runner.started[0]
	if got.name != "scrcpy" {
		t.Errorf("mirror command = %q, want scrcpy", got.name)
	}
	want := []string{"--stay-awake", "-s", "10.0.0.5:5555"}
	if len(got.args) != len(want) {
		t.Fatalf("mirror args = %v, want %v", got.args, want)
	}
	for i := range want {
		if got.args[i] != want[i] {
			t.Errorf("mirror args = %v, want %v", got.args, want)
			break
		}
	}
}

func TestRequestsAreSerializedInIssueOrder(t *testing.T) {
	runner := healthyRunner()
	ctrl := newTestController(t, runner)

	// Issue everything back to back; the worker must run them one at a
	// time in issue order.
	ctrl.CheckBridge()
	ctrl.Pair("10.0.0.5", "37123", "123456")
	ctrl.Connect("10.0.0.5", "5555")

	var seen []Event
	awaitEvent[Connected](t, ctrl, &seen)

	want := []string{"version", "start-server", "pair", "connect"}
	got := runner.callOrder()
	if len(got) != len(want) {
		t.Fatalf("call order = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("call order = %v, want %v", got, want)
		}
	}

	// The pair result event must have been delivered before the connect
	// result event.
	pairedIdx, connectedIdx := -1, -1
	for i, ev := range seen {
		switch ev.(type) {
		case Paired:
			pairedIdx = i
		case Connected:
			connectedIdx = i
		}
	}
	if pairedIdx == -1 || connectedIdx == -1 || pairedIdx > connectedIdx {
		t.Errorf("event order: Paired at %d, Connected at %d; want Paired first", pairedIdx, connectedIdx)
	}
}

func TestPairTimeout(t *testing.T) {
	runner := healthyRunner()
	runner.setResult("pair", adb.Result{TimedOut: true})
	ctrl := newTestController(t, runner)

	ctrl.CheckBridge()
	ctrl.Pair("10.0.0.5", "37123", "123456")

	errEv := awaitEvent[Error](t, ctrl, nil)
	if errEv.Kind != adb.FailureTimeout {
		t.Errorf("Error.Kind = %v, want FailureTimeout", errEv.Kind)
	}
	if !strings.Contains(errEv.Reason, "timed out") {
		t.Errorf("Error.Reason = %q, want substring %q", errEv.Reason, "timed out")
	}

	// State is back in idle: a retry with a healthy tool succeeds.
	runner.setResult("pair", adb.Result{ExitCode: 0, Output: "Successfully paired to 10.0.0.5:37123"})
	ctrl.Pair("10.0.0.5", "37123", "123456")
	awaitEvent[Paired](t, ctrl, nil)
}

func TestPairZeroExitWithoutPhraseFails(t *testing.T) {
	runner := healthyRunner()
	runner.setResult("pair", adb.Result{ExitCode: 0, Output: "Failed to pair to 10.0.0.5:37123"})
	ctrl := newTestController(t, runner)

	ctrl.CheckBridge()
	ctrl.Pair("10.0.0.5", "37123", "123456")

	errEv := awaitEvent[Error](t, ctrl, nil)
	if errEv.Kind != adb.FailureClassification {
		t.Errorf("Error.Kind = %v, want FailureClassification", errEv.Kind)
	}
	if errEv.Op != "pair" {
		t.Errorf("Error.Op = %q, want %q", errEv.Op, "pair")
	}
}

func TestBridgeUnavailable(t *testing.T) {
	runner := healthyRunner()
	runner.setResult("version", adb.Result{SpawnErr: exec.ErrNotFound})
	ctrl := newTestController(t, runner)

	ctrl.CheckBridge()
	ev := awaitEvent[BridgeUnavailable](t, ctrl, nil)
	if !strings.Contains(ev.Reason, "PATH") {
		t.Errorf("BridgeUnavailable.Reason = %q, want install hint", ev.Reason)
	}

	// Subsequent operations are rejected with explicit guard errors, not
	// silently swallowed.
	ctrl.Pair("10.0.0.5", "37123", "123456")
	errEv := awaitEvent[Error](t, ctrl, nil)
	if errEv.Kind != adb.FailureGuard || errEv.Op != "pair" {
		t.Errorf("Error = %+v, want guard violation for pair", errEv)
	}
}

func TestMirrorGuardWithoutConnection(t *testing.T) {
	runner := healthyRunner()
	ctrl := newTestController(t, runner)

	ctrl.CheckBridge()
	ctrl.LaunchMirror()

	errEv := awaitEvent[Error](t, ctrl, nil)
	if errEv.Kind != adb.FailureGuard || errEv.Op != "mirror" {
		t.Errorf("Error = %+v, want guard violation for mirror", errEv)
	}

	runner.mu.Lock()
	defer runner.mu.Unlock()
	if len(runner.started) != 0 {
		t.Error("mirror process started despite missing connection")
	}
}

func TestMirrorNoDevices(t *testing.T) {
	runner := healthyRunner()
	runner.setResult("devices", adb.Result{ExitCode: 0, Output: "List of devices attached\n"})
	ctrl := newTestController(t, runner)

	ctrl.CheckBridge()
	ctrl.Connect("10.0.0.5", "5555")
	awaitEvent[Connected](t, ctrl, nil)

	ctrl.LaunchMirror()
	errEv := awaitEvent[Error](t, ctrl, nil)
	if errEv.Kind != adb.FailureSelection {
		t.Errorf("Error.Kind = %v, want FailureSelection", errEv.Kind)
	}
	if !strings.Contains(errEv.Reason, "No devices connected") {
		t.Errorf("Error.Reason = %q, want no-devices message", errEv.Reason)
	}
}

func TestMirrorDeviceNotFound(t *testing.T) {
	runner := healthyRunner()
	runner.setResult("devices", adb.Result{ExitCode: 0, Output: "List of devices attached\nR58M123ABC\tdevice"})
	ctrl := newTestController(t, runner)

	ctrl.CheckBridge()
	ctrl.Connect("10.0.0.5", "5555")
	awaitEvent[Connected](t, ctrl, nil)

	ctrl.LaunchMirror()
	errEv := awaitEvent[Error](t, ctrl, nil)
	if errEv.Kind != adb.FailureSelection {
		t.Errorf("Error.Kind = %v, want FailureSelection", errEv.Kind)
	}
	if !strings.Contains(errEv.Reason, "not found") {
		t.Errorf("Error.Reason = %q, want device-not-found message", errEv.Reason)
	}
}

func TestMirrorSpawnError(t *testing.T) {
	runner := healthyRunner()
	runner.startErr = exec.ErrNotFound
	ctrl := newTestController(t, runner)

	ctrl.CheckBridge()
	ctrl.Connect("10.0.0.5", "5555")
	awaitEvent[Connected](t, ctrl, nil)

	ctrl.LaunchMirror()
	errEv := awaitEvent[Error](t, ctrl, nil)
	if errEv.Kind != adb.FailureSpawn {
		t.Errorf("Error.Kind = %v, want FailureSpawn", errEv.Kind)
	}
	if !strings.Contains(errEv.Reason, "scrcpy") {
		t.Errorf("Error.Reason = %q, want mirror install hint", errEv.Reason)
	}
}

func TestConnectFailureKeepsPriorConnection(t *testing.T) {
	runner := healthyRunner()
	ctrl := newTestController(t, runner)

	ctrl.CheckBridge()
	ctrl.Connect("10.0.0.5", "5555")
	awaitEvent[Connected](t, ctrl, nil)

	// A failed reconnect must not clear the working connection.
	runner.setResult("connect", adb.Result{ExitCode: 1, Output: "cannot connect to 10.9.9.9:5555"})
	ctrl.Connect("10.9.9.9", "5555")
	awaitEvent[Error](t, ctrl, nil)

	ctrl.LaunchMirror()
	started := awaitEvent[MirrorStarted](t, ctrl, nil)
	if started.Serial != "10.0.0.5:5555" {
		t.Errorf("MirrorStarted.Serial = %q, want the previously connected device", started.Serial)
	}
}

func TestRegenerateSupersedesCredential(t *testing.T) {
	ctrl := newTestController(t, healthyRunner())

	// Permitted in any phase, including before the bridge check.
	before := ctrl.Credential()
	after := ctrl.Regenerate()

	if before.Password == after.Password && before.Name == after.Name {
		t.Error("Regenerate returned the previous credential")
	}
	if got := ctrl.Credential(); got != after {
		t.Errorf("Credential() = %+v, want the regenerated one %+v", got, after)
	}
}

func TestSlowCallerNeverBlocksController(t *testing.T) {
	runner := healthyRunner()
	runner.setResult("pair", adb.Result{ExitCode: 0, Output: "Failed to pair"})
	ctrl := New(Options{Runner: runner, Timeout: time.Second, EventBuffer: 1})
	t.Cleanup(ctrl.Stop)

	// Nobody drains the channel; the pair flow emits more events than the
	// buffer holds. The worker must still finish.
	ctrl.CheckBridge()
	ctrl.Pair("10.0.0.5", "37123", "badcode")

	deadline := time.After(3 * time.Second)
	for {
		runner.mu.Lock()
		n := len(runner.calls)
		runner.mu.Unlock()
		if n >= 3 { // version, start-server, pair
			break
		}
		select {
		case <-deadline:
			t.Fatal("worker stalled on a full event buffer")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestStopDiscardsLaterRequests(t *testing.T) {
	runner := healthyRunner()
	ctrl := New(Options{Runner: runner, Timeout: time.Second})

	ctrl.CheckBridge()
	awaitEvent[Log](t, ctrl, nil)
	ctrl.Stop()

	// Enqueue after stop must neither panic nor block.
	done := make(chan struct{})
	go func() {
		ctrl.Pair("10.0.0.5", "37123", "123456")
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("enqueue after Stop blocked")
	}
}
