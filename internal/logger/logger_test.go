package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit(t *testing.T) {
	logDir := filepath.Join(t.TempDir(), "config", "logs")

	if err := Init(Config{LogDir: logDir}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		t.Errorf("Log directory was not created: %s", logDir)
	}
	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}

	Info("rule committed", "zone", "lobby", "rule", 1)
	Debug("hidden below info level")

	data, err := os.ReadFile(FilePath(logDir))
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "rule committed") || !strings.Contains(content, "zone=lobby") {
		t.Errorf("expected info entry in log file, got %q", content)
	}
	if strings.Contains(content, "hidden below info level") {
		t.Error("debug entry written while not in debug mode")
	}
}

func TestInitDebugMode(t *testing.T) {
	logDir := filepath.Join(t.TempDir(), "logs")

	if err := Init(Config{Debug: true, LogDir: logDir}); err != nil {
		t.Fatalf("Failed to initialize logger in debug mode: %v", err)
	}

	Debug("debug entry")

	data, err := os.ReadFile(FilePath(logDir))
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "debug entry") {
		t.Errorf("expected debug entry in log file, got %q", string(data))
	}
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	// These should not panic when Logger is nil
	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
}

func TestInitWithUnwritableDirectory(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, []byte("x"), 0600); err != nil {
		t.Fatalf("failed to create blocker file: %v", err)
	}
	if err := Init(Config{LogDir: filepath.Join(blocker, "logs")}); err == nil {
		t.Error("expected error when the log directory cannot be created")
	}
}
