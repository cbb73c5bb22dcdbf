package adb

import (
	"fmt"
	"strings"
)

// FailureKind distinguishes the ways an operation can fail. The kinds are
// surfaced separately so diagnostics can tell "the tool never ran" apart
// from "the tool ran and said no".
type FailureKind int

const (
	// FailureSpawn means the external tool could not be located or
	// launched. Fatal to that call only.
	FailureSpawn FailureKind = iota

	// FailureTimeout means the call exceeded its bound and the child was
	// terminated. The caller may retry.
	FailureTimeout

	// FailureClassification means the process ran and exited but its
	// output did not indicate success.
	FailureClassification

	// FailureSelection means device enumeration succeeded but no device
	// matched the target.
	FailureSelection

	// FailureGuard means the operation was attempted while one of its
	// preconditions was unmet.
	FailureGuard
)

// Failure is a classified operation failure with a human-readable reason.
// For classification failures Output carries the raw tool output as
// diagnostic context; it is never required for control flow.
type Failure struct {
	Kind   FailureKind
	Reason string
	Output string
}

func (f *Failure) Error() string { return f.Reason }

// ExecFailure maps a timed-out or unspawnable invocation to a Failure.
// It returns nil when the process actually ran to completion, in which case
// the per-operation classifier decides the outcome. op is the human-readable
// operation name used in the reason text, e.g. "Pairing".
func ExecFailure(op string, res Result) *Failure {
	switch {
	case res.TimedOut:
		return &Failure{
			Kind:   FailureTimeout,
			Reason: fmt.Sprintf("%s timed out. Please try again.", op),
		}
	case res.SpawnErr != nil:
		return &Failure{
			Kind:   FailureSpawn,
			Reason: fmt.Sprintf("%s error: %v", op, res.SpawnErr),
		}
	}
	return nil
}

// ClassifyPair decides whether an `adb pair` invocation succeeded. Success
// requires both a zero exit code and the phrase "successfully paired" in the
// output, case-insensitively. The bridge tool exits zero for some advisory
// failures, so the exit code alone is not trusted.
func ClassifyPair(res Result) *Failure {
	if f := ExecFailure("Pairing", res); f != nil {
		return f
	}
	if res.ExitCode == 0 && strings.Contains(strings.ToLower(res.Output), "successfully paired") {
		return nil
	}
	return &Failure{
		Kind:   FailureClassification,
		Reason: "Pairing failed. Check the pairing code and try again.",
		Output: res.Output,
	}
}

// ClassifyConnect decides whether an `adb connect` invocation succeeded.
// Success requires a zero exit code and the word "connected" in the output,
// case-insensitively.
func ClassifyConnect(res Result) *Failure {
	if f := ExecFailure("Connection", res); f != nil {
		return f
	}
	if res.ExitCode == 0 && strings.Contains(strings.ToLower(res.Output), "connected") {
		return nil
	}
	return &Failure{
		Kind:   FailureClassification,
		Reason: "adb connect failed. Ensure Wireless debugging is ON and both ends share the same Wi-Fi.",
		Output: res.Output,
	}
}
