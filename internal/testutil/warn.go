package testutil

import (
	"fmt"
	"strings"
	"sync"
)

// Warning is one diagnostic captured by WarnRecorder.
type Warning struct {
	Msg  string
	Args []any
}

// String renders the warning as "msg key=value ...".
func (w Warning) String() string {
	var b strings.Builder
	b.WriteString(w.Msg)
	for i := 0; i+1 < len(w.Args); i += 2 {
		fmt.Fprintf(&b, " %v=%v", w.Args[i], w.Args[i+1])
	}
	return b.String()
}

// WarnRecorder captures diagnostics instead of logging them.
//
// Implements engine.Warner. Thread-safety: all methods are safe for
// concurrent use via internal mutex.
type WarnRecorder struct {
	mu       sync.Mutex
	warnings []Warning
}

// NewWarnRecorder creates an empty recorder.
func NewWarnRecorder() *WarnRecorder {
	return &WarnRecorder{}
}

// Warn records msg and its key/value args.
func (r *WarnRecorder) Warn(msg string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnings = append(r.warnings, Warning{Msg: msg, Args: append([]any(nil), args...)})
}

// Warnings returns a copy of everything recorded so far.
func (r *WarnRecorder) Warnings() []Warning {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Warning(nil), r.warnings...)
}

// Messages returns the recorded messages without their args.
func (r *WarnRecorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.warnings))
	for i, w := range r.warnings {
		out[i] = w.Msg
	}
	return out
}

// Reset discards everything recorded.
//
// Used for test reuse within one test function.
func (r *WarnRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnings = nil
}
