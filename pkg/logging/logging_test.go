package logging

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, log.InfoLevel)

	if logger == nil {
		t.Fatal("New() returned nil")
	}

	logger.Info("test message")

	if buf.Len() == 0 {
		t.Error("logger should have written output")
	}
}

func TestNewLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"warn at warn level", log.WarnLevel, func(l *log.Logger) { l.Warn("test") }, true},
		{"info at warn level", log.WarnLevel, func(l *log.Logger) { l.Info("test") }, false},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("test") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("test") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(&buf, tt.level)
			tt.logFunc(logger)

			if gotLog := buf.Len() > 0; gotLog != tt.wantLog {
				t.Errorf("got log output = %v, want %v", gotLog, tt.wantLog)
			}
		})
	}
}

func TestLevelForVerbosity(t *testing.T) {
	tests := []struct {
		verbosity int
		debug     bool
		want      log.Level
	}{
		{-5, false, log.FatalLevel},
		{-3, false, log.FatalLevel},
		{-2, false, log.ErrorLevel},
		{-1, false, log.WarnLevel},
		{0, false, log.WarnLevel},
		{2, false, log.WarnLevel},
		{3, false, log.InfoLevel},
		{-3, true, log.DebugLevel},
	}
	for _, tt := range tests {
		if got := LevelForVerbosity(tt.verbosity, tt.debug); got != tt.want {
			t.Errorf("LevelForVerbosity(%d, %v) = %v, want %v", tt.verbosity, tt.debug, got, tt.want)
		}
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, log.InfoLevel)

	prog := NewProgress(logger)
	time.Sleep(10 * time.Millisecond)
	prog.Done("test completed")

	if !bytes.Contains(buf.Bytes(), []byte("test completed")) {
		t.Error("Progress.Done() output should contain message")
	}
	if prog.Elapsed() < 10*time.Millisecond {
		t.Errorf("Elapsed() = %v, want >= 10ms", prog.Elapsed())
	}
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	custom := New(&buf, log.InfoLevel)

	ctx := WithLogger(context.Background(), custom)
	if got := FromContext(ctx); got != custom {
		t.Error("FromContext should return the attached logger")
	}

	FromContext(ctx).Info("test")
	if buf.Len() == 0 {
		t.Error("custom logger should write to buffer")
	}
}

func TestFromContextDefault(t *testing.T) {
	if FromContext(context.Background()) == nil {
		t.Error("FromContext should return default logger when none set")
	}
}
