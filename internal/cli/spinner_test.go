package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestSpinnerBasic(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(context.Background(), &buf, "Testing...")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	if !strings.Contains(buf.String(), "Testing...") {
		t.Errorf("spinner output %q should contain the message", buf.String())
	}
	if !s.Cancelled() {
		// Stop cancels the spinner's own context.
		t.Error("Cancelled() should be true after Stop")
	}
}

func TestSpinnerWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var buf bytes.Buffer
	s := newSpinner(ctx, &buf, "Testing with context...")
	s.Start()

	cancel()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context cancellation")
	}
	s.Stop()
}

func TestSpinnerWithTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	var buf bytes.Buffer
	s := newSpinner(ctx, &buf, "Testing with timeout...")
	s.Start()

	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context timeout")
	}
	s.Stop()
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(context.Background(), &buf, "Testing idempotent stop...")
	s.Start()

	s.Stop()
	s.Stop()
	s.Stop()
}

func TestWithSpinnerNonInteractive(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)
	if c.interactive {
		t.Fatal("a buffer is not a terminal")
	}

	want := errors.New("boom")
	called := false
	err := c.withSpinner(context.Background(), "Working...", func() error {
		called = true
		return want
	})
	if !called || err != want {
		t.Errorf("withSpinner() = %v, called=%v", err, called)
	}
	if buf.Len() != 0 {
		t.Errorf("no spinner output expected, got %q", buf.String())
	}
}

func TestWithSpinnerInteractive(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)
	c.interactive = true

	err := c.withSpinner(context.Background(), "Working...", func() error {
		time.Sleep(120 * time.Millisecond)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Working...") {
		t.Errorf("spinner output %q should contain the message", buf.String())
	}
}
