package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestSpinnerDrawsMessage(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(context.Background(), &buf, "Enumerating degree 4")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	if !strings.Contains(buf.String(), "Enumerating degree 4") {
		t.Errorf("spinner output missing message: %q", buf.String())
	}
	if !strings.HasSuffix(buf.String(), "\r") {
		t.Error("Stop should leave the line cleared")
	}
}

func TestSpinnerSetMessage(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(context.Background(), &buf, "first")
	s.Start()
	s.SetMessage("second")
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	if !strings.Contains(buf.String(), "second") {
		t.Errorf("spinner output missing new message: %q", buf.String())
	}
}

func TestSpinnerStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var buf bytes.Buffer
	s := newSpinner(ctx, &buf, "Testing")
	s.Start()
	cancel()

	select {
	case <-s.stopped:
	case <-time.After(time.Second):
		t.Fatal("spinner kept running after its context was cancelled")
	}
	s.Stop()
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(context.Background(), &buf, "Testing")
	s.Start()
	s.Stop()
	s.Stop()
	s.Stop()
}
