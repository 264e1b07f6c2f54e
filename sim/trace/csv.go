package trace

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// CSVWriter stores dispatch spans in a CSV file, one row per span.
type CSVWriter struct {
	path string
	file *os.File

	spans      []Span
	bufferSize int
}

// NewCSVWriter creates a CSVWriter. An empty path picks a unique name.
func NewCSVWriter(path string) *CSVWriter {
	return &CSVWriter{
		path:       path,
		bufferSize: 1000,
	}
}

// Path returns the file the writer targets. Valid after Init.
func (w *CSVWriter) Path() string {
	return w.path
}

// Init creates the csv file and registers a flush at process exit. An
// existing file is never overwritten.
func (w *CSVWriter) Init() error {
	if w.path == "" {
		w.path = "sched_trace_" + xid.New().String()
	}
	if !strings.HasSuffix(w.path, ".csv") {
		w.path += ".csv"
	}

	if _, err := os.Stat(w.path); err == nil {
		return fmt.Errorf("trace file %s already exists", w.path)
	}

	file, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("creating trace file: %w", err)
	}
	w.file = file

	if _, err := fmt.Fprintf(file, "PID, Start, End\n"); err != nil {
		return fmt.Errorf("writing trace header: %w", err)
	}

	atexit.Register(func() {
		_ = w.Close()
	})
	return nil
}

// Write buffers a span, flushing once the buffer fills.
func (w *CSVWriter) Write(span Span) error {
	w.spans = append(w.spans, span)
	if len(w.spans) >= w.bufferSize {
		return w.Flush()
	}
	return nil
}

// Flush writes buffered spans to the file.
func (w *CSVWriter) Flush() error {
	if w.file == nil {
		return fmt.Errorf("trace writer not initialized")
	}
	for _, s := range w.spans {
		if _, err := fmt.Fprintf(w.file, "%d, %d, %d\n", s.PID, s.Start, s.End); err != nil {
			return fmt.Errorf("writing trace span: %w", err)
		}
	}
	w.spans = nil
	return nil
}

// Close flushes and closes the file. Safe to call more than once.
func (w *CSVWriter) Close() error {
	if w.file == nil {
		return nil
	}
	if err := w.Flush(); err != nil {
		return err
	}
	err := w.file.Close()
	w.file = nil
	return err
}
