package report

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestNewEventLogger(t *testing.T) {
	tmpDir := t.TempDir()

	logger, err := NewEventLogger(tmpDir, LevelDebug)
	if err != nil {
		t.Fatalf("NewEventLogger failed: %v", err)
	}
	defer logger.Close()

	if logger.path == "" {
		t.Error("EventLogger path is empty")
	}
	if _, err := os.Stat(logger.path); os.IsNotExist(err) {
		t.Errorf("Event log file was not created at %s", logger.path)
	}

	filename := filepath.Base(logger.path)
	if len(filename) < len("events-20060102-150405.jsonl") {
		t.Errorf("Event log filename format incorrect: %s", filename)
	}
}

func TestEventLogger_Log(t *testing.T) {
	tmpDir := t.TempDir()
	logger, err := NewEventLogger(tmpDir, LevelDebug)
	if err != nil {
		t.Fatalf("NewEventLogger failed: %v", err)
	}

	if err := logger.LogImport("export.db", 42); err != nil {
		t.Fatalf("LogImport failed: %v", err)
	}
	if err := logger.LogMatch("Bonaire", 10, 2); err != nil {
		t.Fatalf("LogMatch failed: %v", err)
	}
	logger.Close()

	file, err := os.Open(logger.path)
	if err != nil {
		t.Fatalf("Failed to open log file: %v", err)
	}
	defer file.Close()

	var events []Event
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var e Event
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			t.Fatalf("Failed to decode JSONL line: %v", err)
		}
		events = append(events, e)
	}

	if len(events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(events))
	}
	if events[0].Event != EventImport || events[0].Count != 42 {
		t.Errorf("Unexpected first event: %+v", events[0])
	}
	if events[1].Event != EventMatch || events[1].Trip != "Bonaire" {
		t.Errorf("Unexpected second event: %+v", events[1])
	}
	if events[1].Extra["unassigned"] != "2" {
		t.Errorf("Expected unassigned '2', got %q", events[1].Extra["unassigned"])
	}
	if events[0].Timestamp.IsZero() {
		t.Error("Timestamp was not filled in")
	}
}

func TestEventLogger_LevelFilter(t *testing.T) {
	tmpDir := t.TempDir()
	logger, err := NewEventLogger(tmpDir, LevelWarning)
	if err != nil {
		t.Fatalf("NewEventLogger failed: %v", err)
	}

	// Below minimum level, must not be written
	logger.LogImport("export.db", 1)
	logger.LogError(EventImport, "export.db", os.ErrPermission)
	logger.Close()

	content, err := os.ReadFile(logger.path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}

	var decoded Event
	if err := json.Unmarshal(content, &decoded); err != nil {
		t.Fatalf("Expected exactly one JSONL line: %v", err)
	}
	if decoded.Event != EventError {
		t.Errorf("Expected only the error event, got %s", decoded.Event)
	}
}

func TestNullLogger(t *testing.T) {
	logger := NullLogger()

	// All operations on a nil logger are safe no-ops
	if err := logger.LogImport("x", 1); err != nil {
		t.Errorf("LogImport on nil logger: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("Close on nil logger: %v", err)
	}
	if logger.Path() != "" {
		t.Errorf("Path on nil logger: %q", logger.Path())
	}
}
