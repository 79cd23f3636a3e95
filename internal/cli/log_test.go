package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/covertower/pkg/observability"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("test") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("test") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("test") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if gotLog := buf.Len() > 0; gotLog != tt.wantLog {
				t.Errorf("got log output = %v, want %v", gotLog, tt.wantLog)
			}
		})
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	time.Sleep(10 * time.Millisecond)
	prog.done("Found 26 covers")

	out := buf.String()
	if !strings.Contains(out, "Found 26 covers (") {
		t.Errorf("progress output = %q", out)
	}
	if !strings.Contains(out, "ms)") {
		t.Errorf("progress output should carry the elapsed time: %q", out)
	}
}

func TestSetLogLevelRegistersHooks(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)
	t.Cleanup(observability.Reset)

	c.SetLogLevel(LogDebug)
	c.Logger.Debug("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Error("debug output should be enabled")
	}
	if _, ok := observability.Enumeration().(*observability.LogHooks); !ok {
		t.Error("debug level should register logging hooks")
	}
}
