package bridge

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"testing"
)

func TestCaptureReturnsWrittenText(t *testing.T) {
	runner := RunnerFunc(func(ctx context.Context, query string, w io.Writer) error {
		fmt.Fprint(w, "Result: 42")
		return nil
	})
	got, err := Capture(context.Background(), runner, "what is the answer")
	if err != nil {
		t.Fatalf("Capture returned error: %v", err)
	}
	if got != "Result: 42" {
		t.Errorf("Capture = %q, want %q", got, "Result: 42")
	}
}

func TestCaptureSanitizes(t *testing.T) {
	runner := RunnerFunc(func(ctx context.Context, query string, w io.Writer) error {
		fmt.Fprint(w, "\x1b[1mTSLA\x1b[0m is up")
		return nil
	})
	got, err := Capture(context.Background(), runner, "tsla")
	if err != nil {
		t.Fatalf("Capture returned error: %v", err)
	}
	if got != "TSLA is up" {
		t.Errorf("Capture = %q, want %q", got, "TSLA is up")
	}
}

func TestCapturePropagatesErrorWithPartialText(t *testing.T) {
	boom := errors.New("timeout")
	runner := RunnerFunc(func(ctx context.Context, query string, w io.Writer) error {
		fmt.Fprint(w, "partial")
		return boom
	})
	got, err := Capture(context.Background(), runner, "q")
	if !errors.Is(err, boom) {
		t.Fatalf("Capture error = %v, want %v", err, boom)
	}
	if got != "partial" {
		t.Errorf("Capture = %q, want partial text preserved", got)
	}
}

func TestCaptureStdout(t *testing.T) {
	orig := os.Stdout
	got, err := CaptureStdout(func() error {
		fmt.Println("\x1b[32mprinted answer\x1b[0m")
		return nil
	})
	if err != nil {
		t.Fatalf("CaptureStdout returned error: %v", err)
	}
	if got != "printed answer\n" {
		t.Errorf("CaptureStdout = %q, want %q", got, "printed answer\n")
	}
	if os.Stdout != orig {
		t.Error("os.Stdout not restored after successful capture")
	}
}

func TestCaptureStdoutRestoresOnFailure(t *testing.T) {
	orig := os.Stdout
	boom := errors.New("agent exploded")
	_, err := CaptureStdout(func() error {
		// fail before writing anything
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("CaptureStdout error = %v, want %v", err, boom)
	}
	if os.Stdout != orig {
		t.Error("os.Stdout not restored after failing capture")
	}
}

// TestUnsynchronizedRedirectsInterleave shows why stdout redirection must be
// serialized: with two overlapping redirects, the first invocation's output
// lands in whichever pipe was installed last. The two "requests" are
// sequenced explicitly; under real concurrency the same interleaving happens
// nondeterministically.
func TestUnsynchronizedRedirectsInterleave(t *testing.T) {
	r1, w1, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	orig := swapStdout(w1)
	defer func() { os.Stdout = orig }()

	// Second capture begins before the first has finished.
	r2, w2, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	swapStdout(w2)

	// The first invocation's agent now prints its answer.
	fmt.Println("first-invocation-output")

	swapStdout(orig)
	w1.Close()
	w2.Close()
	firstSaw, _ := io.ReadAll(r1)
	secondSaw, _ := io.ReadAll(r2)
	r1.Close()
	r2.Close()

	if strings.Contains(string(firstSaw), "first-invocation-output") {
		t.Error("expected the first capture to lose its own output to the second")
	}
	if !strings.Contains(string(secondSaw), "first-invocation-output") {
		t.Error("expected the first invocation's output to leak into the second capture")
	}
}

func TestCaptureStdoutSerialized(t *testing.T) {
	const rounds = 100
	outs := make([]string, 2)
	var wg sync.WaitGroup
	for i := range outs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			marker := fmt.Sprintf("marker-%d", i)
			out, err := CaptureStdout(func() error {
				for j := 0; j < rounds; j++ {
					fmt.Println(marker)
				}
				return nil
			})
			if err != nil {
				t.Errorf("CaptureStdout returned error: %v", err)
			}
			outs[i] = out
		}(i)
	}
	wg.Wait()
	for i, out := range outs {
		own := fmt.Sprintf("marker-%d", i)
		other := fmt.Sprintf("marker-%d", 1-i)
		if strings.Contains(out, other) {
			t.Errorf("capture %d contains output from the other invocation", i)
		}
		if got := strings.Count(out, own); got != rounds {
			t.Errorf("capture %d has %d of its own lines, want %d", i, got, rounds)
		}
	}
}
