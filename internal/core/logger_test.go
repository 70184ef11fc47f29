package core

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, "warn")

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Errorf("below-threshold messages should be suppressed: %s", out)
	}
	if !strings.Contains(out, "warn message") || !strings.Contains(out, "error message") {
		t.Errorf("warn/error messages missing: %s", out)
	}
}

func TestLoggerJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, "info")

	logger.Info("saved slice", "key", "requirements", "bytes", 128)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output should be JSON: %v (%s)", err, buf.String())
	}
	if entry["msg"] != "saved slice" {
		t.Errorf("unexpected msg: %v", entry["msg"])
	}
	if entry["key"] != "requirements" {
		t.Errorf("structured field lost: %v", entry)
	}
}

func TestLoggerUnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, "verbose")

	logger.Debug("hidden")
	logger.Info("shown")

	if strings.Contains(buf.String(), "hidden") {
		t.Error("debug should be suppressed at default level")
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Error("info should be emitted at default level")
	}
}

func TestNopLogger(t *testing.T) {
	logger := NopLogger()
	// Must not panic or write anywhere observable.
	logger.Info("discarded")
	logger.Error("discarded")
}
