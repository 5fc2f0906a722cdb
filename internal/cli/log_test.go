package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("loaded") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("layout") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("layout") }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("got log output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	time.Sleep(5 * time.Millisecond)
	prog.done("rendered", "members", 7)

	out := buf.String()
	for _, want := range []string{"rendered", "members=7", "took="} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestLoggerContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("loggerFromContext without a logger should return log.Default()")
	}

	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)
	ctx := withLogger(context.Background(), custom)
	if loggerFromContext(ctx) != custom {
		t.Error("loggerFromContext should return the attached logger")
	}
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	h := logHooks{logger: newLogger(&buf, log.DebugLevel)}
	ctx := context.Background()

	h.OnLoad(ctx, "file", "kintree.members", 812, false, time.Millisecond, nil)
	h.OnLoad(ctx, "redis", "kintree.members", 0, true, time.Millisecond, errors.New("dial tcp: refused"))
	h.OnSave(ctx, "file", "kintree.members", 900, time.Millisecond, nil)
	h.OnLayout(ctx, 9, 7, 2, time.Millisecond)
	h.OnConnectors(ctx, 5, 0, time.Millisecond)

	out := buf.String()
	for _, want := range []string{"bytes=812", "seeded=true", "refused", "save", "unplaced=2", "links=5"} {
		if !strings.Contains(out, want) {
			t.Errorf("hook output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	quiet := logHooks{logger: newLogger(&buf, log.InfoLevel)}
	quiet.OnLayout(ctx, 1, 1, 0, time.Millisecond)
	if buf.Len() != 0 {
		t.Errorf("hooks should log at debug level only, got %q", buf.String())
	}
}
