package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// setupTestLogger creates a temp log file and initializes the logger with it.
// Returns the path to the temp file and a cleanup function.
func setupTestLogger(t *testing.T) (string, func()) {
	t.Helper()
	Reset()

	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test-debug.log")
	if err := Init(logPath); err != nil {
		t.Fatalf("Failed to init logger: %v", err)
	}

	return logPath, func() {
		Reset()
	}
}

func TestLog(t *testing.T) {
	_, cleanup := setupTestLogger(t)
	defer cleanup()

	// Log should not panic
	Log("test message")
	Log("test with %s", "argument")
	Log("test with %d and %s", 42, "string")
}

func TestLogLevels(t *testing.T) {
	logPath, cleanup := setupTestLogger(t)
	defer cleanup()

	SetLevel(LevelDebug)
	Debug("debug line %d", 1)
	Info("info line")
	Warn("warn line")
	Error("error line")

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	content := string(data)

	for _, want := range []string{"debug line 1", "info line", "warn line", "error line"} {
		if !strings.Contains(content, want) {
			t.Errorf("Log file missing %q", want)
		}
	}
}

func TestDebugSuppressedAtInfoLevel(t *testing.T) {
	logPath, cleanup := setupTestLogger(t)
	defer cleanup()

	SetLevel(LevelInfo)
	Debug("should not appear")
	Info("should appear")

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	content := string(data)

	if strings.Contains(content, "should not appear") {
		t.Error("Debug message logged despite Info level")
	}
	if !strings.Contains(content, "should appear") {
		t.Error("Info message missing from log")
	}
}

func TestSetDebug(t *testing.T) {
	logPath, cleanup := setupTestLogger(t)
	defer cleanup()

	SetDebug(true)
	Debug("debug enabled message")

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "debug enabled message") {
		t.Error("Debug message missing after SetDebug(true)")
	}
}

func TestComponentLogger(t *testing.T) {
	logPath, cleanup := setupTestLogger(t)
	defer cleanup()

	log := ComponentLogger("chat")
	if log == nil {
		t.Fatal("ComponentLogger returned nil")
	}
	log.Info("component message", "key", "value")

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	content := string(data)

	if !strings.Contains(content, "component=chat") {
		t.Error("Component attribute missing from log line")
	}
	if !strings.Contains(content, "component message") {
		t.Error("Message missing from log line")
	}
}

func TestWithConversation(t *testing.T) {
	logPath, cleanup := setupTestLogger(t)
	defer cleanup()

	log := WithConversation("conv-123")
	log.Info("timeline updated")

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "conversationID=conv-123") {
		t.Error("Conversation attribute missing from log line")
	}
}

func TestClose(t *testing.T) {
	_, cleanup := setupTestLogger(t)
	defer cleanup()

	// Close should not panic, and logging after close should be a no-op
	Close()
	Log("after close")
}

func TestInitTwice(t *testing.T) {
	logPath, cleanup := setupTestLogger(t)
	defer cleanup()

	// Second Init is a no-op, not an error
	if err := Init(filepath.Join(filepath.Dir(logPath), "other.log")); err != nil {
		t.Errorf("Second Init returned error: %v", err)
	}
}
