package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		level   string
		format  string
		enabled zapcore.Level
	}{
		{"debug", "console", zapcore.DebugLevel},
		{"warn", "json", zapcore.WarnLevel},
		{"nonsense", "console", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		log, err := New(tt.level, tt.format)
		if err != nil {
			t.Fatalf("New(%q, %q) error: %v", tt.level, tt.format, err)
		}
		if !log.Core().Enabled(tt.enabled) {
			t.Errorf("New(%q): level %v not enabled", tt.level, tt.enabled)
		}
		if tt.enabled > zapcore.DebugLevel && log.Core().Enabled(tt.enabled-1) {
			t.Errorf("New(%q): level below %v should be disabled", tt.level, tt.enabled)
		}
	}
}

func TestToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noxis.log")

	log, err := ToFile("info", "console", path)
	if err != nil {
		t.Fatalf("ToFile error: %v", err)
	}
	log.Info("door opened")
	_ = log.Sync()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(content), "door opened") {
		t.Errorf("log file missing message, got %q", content)
	}
}
