package adb

import (
	"errors"
	"strings"
	"testing"
)

func TestClassifyPair(t *testing.T) {
	tests := []struct {
		name     string
		res      Result
		wantOK   bool
		wantKind FailureKind
	}{
		{
			name:   "successful pair",
			res:    Result{ExitCode: 0, Output: "Successfully paired to 10.0.0.5:37123 [guid=adb-xxxx]"},
			wantOK: true,
		},
		{
			name:   "case-insensitive phrase match",
			res:    Result{ExitCode: 0, Output: "SUCCESSFULLY PAIRED to 10.0.0.5:37123"},
			wantOK: true,
		},
		{
			name:     "zero exit without success phrase is a failure",
			res:      Result{ExitCode: 0, Output: "Failed to pair to 10.0.0.5:37123"},
			wantOK:   false,
			wantKind: FailureClassification,
		},
		{
			name:     "nonzero exit with success phrase is a failure",
			res:      Result{ExitCode: 1, Output: "successfully paired"},
			wantOK:   false,
			wantKind: FailureClassification,
		},
		{
			name:     "timeout",
			res:      Result{TimedOut: true},
			wantOK:   false,
			wantKind: FailureTimeout,
		},
		{
			name:     "spawn error",
			res:      Result{SpawnErr: errors.New(`exec: "adb": executable file not found in $PATH`)},
			wantOK:   false,
			wantKind: FailureSpawn,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := ClassifyPair(tt.res)
			if tt.wantOK {
				if f != nil {
					t.Fatalf("ClassifyPair() = %v, want success", f)
				}
				return
			}
			if f == nil {
				t.Fatal("ClassifyPair() = success, want failure")
			}
			if f.Kind != tt.wantKind {
				t.Errorf("failure kind = %v, want %v", f.Kind, tt.wantKind)
			}
			if f.Reason == "" {
				t.Error("failure reason is empty")
			}
		})
	}
}

func TestClassifyPairTimeoutReason(t *testing.T) {
	f := ClassifyPair(Result{TimedOut: true})
	if f == nil || !strings.Contains(f.Reason, "timed out") {
		t.Errorf("timeout failure = %v, want reason containing %q", f, "timed out")
	}
	if !strings.HasPrefix(f.Reason, "Pairing") {
		t.Errorf("timeout reason %q is not operation-specific", f.Reason)
	}
}

func TestClassifyConnect(t *testing.T) {
	tests := []struct {
		name     string
		res      Result
		wantOK   bool
		wantKind FailureKind
	}{
		{
			name:   "fresh connection",
			res:    Result{ExitCode: 0, Output: "connected to 10.0.0.5:5555"},
			wantOK: true,
		},
		{
			name:   "already connected",
			res:    Result{ExitCode: 0, Output: "already connected to 10.0.0.5:5555"},
			wantOK: true,
		},
		{
			name:     "advisory failure with zero exit",
			res:      Result{ExitCode: 0, Output: "failed to authenticate to 10.0.0.5:5555"},
			wantOK:   false,
			wantKind: FailureClassification,
		},
		{
			name:     "nonzero exit",
			res:      Result{ExitCode: 1, Output: "cannot connect to 10.0.0.5:5555: Connection refused"},
			wantOK:   false,
			wantKind: FailureClassification,
		},
		{
			name:     "timeout",
			res:      Result{TimedOut: true},
			wantOK:   false,
			wantKind: FailureTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := ClassifyConnect(tt.res)
			if tt.wantOK != (f == nil) {
				t.Fatalf("ClassifyConnect() = %v, wantOK %v", f, tt.wantOK)
			}
			if f != nil && f.Kind != tt.wantKind {
				t.Errorf("failure kind = %v, want %v", f.Kind, tt.wantKind)
			}
		})
	}
}

func TestClassificationFailureCarriesOutput(t *testing.T) {
	res := Result{ExitCode: 0, Output: "Failed to pair: wrong code"}
	f := ClassifyPair(res)
	if f == nil {
		t.Fatal("expected failure")
	}
	if f.Output != res.Output {
		t.Errorf("failure output = %q, want raw tool output %q", f.Output, res.Output)
	}
}

func TestExecFailureDistinguishesKinds(t *testing.T) {
	if f := ExecFailure("Pairing", Result{ExitCode: 1, Output: "nope"}); f != nil {
		t.Errorf("ExecFailure() on a completed process = %v, want nil", f)
	}

	timeout := ExecFailure("Pairing", Result{TimedOut: true})
	spawn := ExecFailure("Pairing", Result{SpawnErr: errors.New("not found")})
	if timeout == nil || spawn == nil {
		t.Fatal("expected failures for timeout and spawn error")
	}
	if timeout.Reason == spawn.Reason {
		t.Errorf("timeout and spawn reasons are identical: %q", timeout.Reason)
	}
}
