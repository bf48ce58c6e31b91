// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/H0llyW00dzZ/tls-cert-verifier/src/internal/helper/gc"
)

// Logger defines the interface for logging operations.
// It provides methods for formatted output and output redirection.
//
// The credential store, the chain verifier and the CLI all log through this
// interface, so callers can switch between human-readable output and
// structured logging without touching those packages.
type Logger interface {
	// Printf formats and prints a log message.
	Printf(format string, v ...any)
	// Println prints a log message with a newline.
	Println(v ...any)
	// SetOutput sets the output destination for the logger.
	SetOutput(w io.Writer)
}

// CLILogger implements Logger using the standard log package.
// It's designed for command-line interface output with human-readable formatting.
type CLILogger struct{ logger *log.Logger }

// NewCLILogger creates a new CLI logger with timestamps disabled.
// This is suitable for user-facing CLI output.
func NewCLILogger() *CLILogger {
	l := log.New(os.Stdout, "", 0)
	return &CLILogger{logger: l}
}

// Printf formats and prints a log message using fmt.Printf semantics.
func (c *CLILogger) Printf(format string, v ...any) { c.logger.Printf(format, v...) }

// Println prints a log message with a newline.
func (c *CLILogger) Println(v ...any) { c.logger.Println(v...) }

// SetOutput sets the output destination for the CLI logger.
func (c *CLILogger) SetOutput(w io.Writer) { c.logger.SetOutput(w) }

// jsonSink is the destination shared by a JSONLogger and its children.
type jsonSink struct {
	mu     sync.Mutex
	writer io.Writer
	silent bool
}

type field struct {
	key   string
	value any
}

// JSONLogger implements Logger by writing one JSON object per line.
// Every entry carries "level" and "message" keys plus any fields attached
// with [JSONLogger.WithField].
//
// JSONLogger is safe for concurrent use by multiple goroutines.
type JSONLogger struct {
	sink   *jsonSink
	fields []field
}

// NewJSONLogger creates a new structured logger writing to writer.
// A nil writer discards output; a silent logger writes nothing.
func NewJSONLogger(writer io.Writer, silent bool) *JSONLogger {
	if writer == nil {
		writer = io.Discard
	}
	return &JSONLogger{sink: &jsonSink{writer: writer, silent: silent}}
}

// WithField returns a logger that adds key to every entry. The returned
// logger shares its destination with j.
func (j *JSONLogger) WithField(key string, value any) *JSONLogger {
	fields := make([]field, len(j.fields), len(j.fields)+1)
	copy(fields, j.fields)
	return &JSONLogger{sink: j.sink, fields: append(fields, field{key: key, value: value})}
}

// Printf formats and logs a structured message in JSON format.
// Output is suppressed if silent mode is enabled.
//
// Printf is safe for concurrent use by multiple goroutines.
func (j *JSONLogger) Printf(format string, v ...any) {
	if j.sink.silent {
		return
	}
	j.write(fmt.Sprintf(format, v...))
}

// Println logs a structured message in JSON format.
// Output is suppressed if silent mode is enabled.
//
// Println is safe for concurrent use by multiple goroutines.
func (j *JSONLogger) Println(v ...any) {
	if j.sink.silent {
		return
	}
	j.write(fmt.Sprint(v...))
}

func (j *JSONLogger) write(msg string) {
	entry := make(map[string]any, len(j.fields)+2)
	for _, f := range j.fields {
		entry[f.key] = f.value
	}
	entry["level"] = "info"
	entry["message"] = msg

	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	// Encode appends the trailing newline.
	if err := json.NewEncoder(buf).Encode(entry); err != nil {
		return
	}

	j.sink.mu.Lock()
	j.sink.writer.Write(buf.Bytes())
	j.sink.mu.Unlock()
}

// SetOutput sets the output destination for the JSON logger and every
// logger derived from it.
//
// SetOutput is safe for concurrent use by multiple goroutines.
func (j *JSONLogger) SetOutput(w io.Writer) {
	j.sink.mu.Lock()
	defer j.sink.mu.Unlock()

	if w == nil {
		j.sink.writer = io.Discard
	} else {
		j.sink.writer = w
	}
}
