package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// EventType represents the type of event
type EventType string

const (
	EventImport EventType = "import"
	EventMatch  EventType = "match"
	EventSynth  EventType = "synth"
	EventMerge  EventType = "merge"
	EventSave   EventType = "save"
	EventError  EventType = "error"
)

// EventLevel represents the severity level
type EventLevel string

const (
	LevelDebug   EventLevel = "debug"
	LevelInfo    EventLevel = "info"
	LevelWarning EventLevel = "warning"
	LevelError   EventLevel = "error"
)

// levelPriority maps event levels to numeric priorities for comparison
var levelPriority = map[EventLevel]int{
	LevelDebug:   0,
	LevelInfo:    1,
	LevelWarning: 2,
	LevelError:   3,
}

// Event represents a single event in the pipeline
type Event struct {
	Timestamp  time.Time         `json:"ts"`
	Level      EventLevel        `json:"level"`
	Event      EventType         `json:"event"`
	Source     string            `json:"source,omitempty"`
	Trip       string            `json:"trip,omitempty"`
	DiveNumber int               `json:"dive_number,omitempty"`
	Count      int               `json:"count,omitempty"`
	Error      string            `json:"error,omitempty"`
	Extra      map[string]string `json:"extra,omitempty"`
}

// EventLogger writes events to a JSONL file
type EventLogger struct {
	file     *os.File
	encoder  *json.Encoder
	mu       sync.Mutex
	path     string
	minLevel EventLevel
}

// NewEventLogger creates a new event logger with a minimum log level
// minLevel determines which events are written (e.g., LevelInfo skips LevelDebug)
func NewEventLogger(outputDir string, minLevel EventLevel) (*EventLogger, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	timestamp := time.Now().Format("20060102-150405")
	filename := fmt.Sprintf("events-%s.jsonl", timestamp)
	path := filepath.Join(outputDir, filename)

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create event log: %w", err)
	}

	return &EventLogger{
		file:     file,
		encoder:  json.NewEncoder(file),
		path:     path,
		minLevel: minLevel,
	}, nil
}

// Log writes an event to the JSONL file
func (l *EventLogger) Log(event *Event) error {
	if l == nil || l.file == nil {
		return nil // Silently ignore if logger not initialized
	}

	if levelPriority[event.Level] < levelPriority[l.minLevel] {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	if err := l.encoder.Encode(event); err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	return nil
}

// LogImport logs a dive import from a source database
func (l *EventLogger) LogImport(source string, count int) error {
	return l.Log(&Event{
		Level:  LevelInfo,
		Event:  EventImport,
		Source: source,
		Count:  count,
	})
}

// LogMatch logs a photo matching pass for one trip
func (l *EventLogger) LogMatch(trip string, assigned, unassigned int) error {
	return l.Log(&Event{
		Level: LevelInfo,
		Event: EventMatch,
		Trip:  trip,
		Count: assigned,
		Extra: map[string]string{
			"unassigned": fmt.Sprintf("%d", unassigned),
		},
	})
}

// LogSynth logs a photo-only dive synthesis
func (l *EventLogger) LogSynth(trip string, diveNumber, mediaCount int) error {
	return l.Log(&Event{
		Level:      LevelInfo,
		Event:      EventSynth,
		Trip:       trip,
		DiveNumber: diveNumber,
		Count:      mediaCount,
	})
}

// LogMerge logs a dataset merge
func (l *EventLogger) LogMerge(source string, added int) error {
	return l.Log(&Event{
		Level:  LevelInfo,
		Event:  EventMerge,
		Source: source,
		Count:  added,
	})
}

// LogSave logs a project save
func (l *EventLogger) LogSave(path string, diveCount int) error {
	return l.Log(&Event{
		Level:  LevelInfo,
		Event:  EventSave,
		Source: path,
		Count:  diveCount,
	})
}

// LogError logs an error event
func (l *EventLogger) LogError(event EventType, source string, err error) error {
	return l.Log(&Event{
		Level:  LevelError,
		Event:  event,
		Source: source,
		Error:  err.Error(),
	})
}

// Close closes the event log file
func (l *EventLogger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	return l.file.Close()
}

// Path returns the path to the event log file
func (l *EventLogger) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// NullLogger returns a no-op event logger
func NullLogger() *EventLogger {
	return nil
}
