// Package bridge runs a blocking, stream-writing agent call and returns the
// text it emitted, with terminal control sequences stripped.
//
// The preferred contract is Capture: the callable accepts an explicit
// per-invocation sink, so concurrent captures never share state. For legacy
// callables that only know how to print to the process stdout, CaptureStdout
// redirects os.Stdout through a pipe; stdout is a process-wide singleton, so
// that path is serialized by a package mutex and the original stream is
// restored on every exit path.
package bridge

import (
	"bytes"
	"context"
	"io"
	"os"
	"sync"
)

// Runner is the blocking agent call. It writes its human-readable answer to
// w rather than returning it.
type Runner interface {
	Run(ctx context.Context, query string, w io.Writer) error
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, query string, w io.Writer) error

func (f RunnerFunc) Run(ctx context.Context, query string, w io.Writer) error {
	return f(ctx, query, w)
}

// Capture runs r against a private buffer and returns the sanitized text it
// wrote during the call. The buffer is owned by this invocation alone. On
// error the text written so far is still returned alongside it.
func Capture(ctx context.Context, r Runner, query string) (string, error) {
	var buf bytes.Buffer
	err := r.Run(ctx, query, &buf)
	return Strip(buf.String()), err
}

// stdoutMu serializes stdout redirection: os.Stdout is shared by the whole
// process, and overlapping redirects leak one capture's output into another.
var stdoutMu sync.Mutex

// CaptureStdout runs fn while the process stdout is redirected to a pipe and
// returns the sanitized text fn printed. The original stdout is reinstated
// before returning whether fn succeeds, fails or panics.
func CaptureStdout(fn func() error) (text string, err error) {
	stdoutMu.Lock()
	defer stdoutMu.Unlock()

	r, w, err := os.Pipe()
	if err != nil {
		return "", err
	}
	orig := swapStdout(w)

	// Drain concurrently so fn cannot block on a full pipe buffer.
	drained := make(chan string, 1)
	go func() {
		var buf bytes.Buffer
		io.Copy(&buf, r)
		r.Close()
		drained <- buf.String()
	}()

	defer func() {
		swapStdout(orig)
		w.Close()
		text = Strip(<-drained)
	}()

	err = fn()
	return
}

// swapStdout installs w as the process stdout and returns the previous
// value. Callers must hold stdoutMu; the tests use it bare to demonstrate
// what overlapping redirects do to captured output.
func swapStdout(w *os.File) *os.File {
	old := os.Stdout
	os.Stdout = w
	return old
}
