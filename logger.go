package moodbites

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// ActionLogger records each tool call a session performs.
type ActionLogger interface {
	LogAction(action ActionLog) error
}

// NewActionLogFilePath returns a timestamped log path inside dir.
func NewActionLogFilePath(dir string) string {
	return fmt.Sprintf("%s/%d.session.json", dir, time.Now().Unix())
}

// ActionLog represents a single tool call in a session
type ActionLog struct {
	Step      int            `json:"step"`
	Timestamp time.Time      `json:"timestamp"`
	Tool      string         `json:"tool"`
	Input     map[string]any `json:"input,omitempty"`
	Output    map[string]any `json:"output,omitempty"`
	Duration  time.Duration  `json:"duration_ns"`
	Error     string         `json:"error,omitempty"`
}

// FileActionLogger accumulates actions and writes them out on Flush
type FileActionLogger struct {
	actions []ActionLog
	writer  io.Writer
}

func NewFileActionLogger(writer io.Writer) *FileActionLogger {
	return &FileActionLogger{
		actions: make([]ActionLog, 0),
		writer:  writer,
	}
}

// LogAction buffers the action (does not flush immediately)
func (l *FileActionLogger) LogAction(action ActionLog) error {
	l.actions = append(l.actions, action)
	return nil
}

// Flush writes all buffered actions to the writer
func (l *FileActionLogger) Flush() error {
	if l.writer == nil {
		return nil
	}

	data, err := json.MarshalIndent(map[string]any{
		"session": map[string]any{
			"timestamp": time.Now(),
			"actions":   l.actions,
		},
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session log: %w", err)
	}

	if _, err := l.writer.Write(data); err != nil {
		return fmt.Errorf("failed to write session log: %w", err)
	}

	l.actions = l.actions[:0]
	return nil
}

// NoOpActionLogger discards all log entries
type NoOpActionLogger struct{}

func NewNoOpActionLogger() *NoOpActionLogger {
	return &NoOpActionLogger{}
}

func (nop *NoOpActionLogger) LogAction(action ActionLog) error {
	return nil
}

// StdoutActionLogger logs each action as a JSON line to stdout (for Lambda/CloudWatch)
type StdoutActionLogger struct {
	out io.Writer
}

func NewStdoutActionLogger() *StdoutActionLogger {
	return &StdoutActionLogger{out: os.Stdout}
}

func (l *StdoutActionLogger) LogAction(action ActionLog) error {
	data, err := json.Marshal(action)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(l.out, string(data))
	return err
}
