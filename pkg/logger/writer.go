package logger

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// NewWriter returns a writer that emits each written line as one log
// record at the given level. Partial lines are buffered until their
// newline arrives; Close flushes any unterminated tail. Intended for
// adapting line-oriented streams, such as child process output, into
// the structured log.
func NewWriter(log *slog.Logger, level slog.Level) io.WriteCloser {
	if log == nil {
		log = slog.Default()
	}
	return &lineWriter{log: log, level: level}
}

type lineWriter struct {
	log   *slog.Logger
	level slog.Level

	mu  sync.Mutex
	buf bytes.Buffer
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf.Write(p)
	for {
		line, err := w.buf.ReadString('\n')
		if err != nil {
			// incomplete line: keep it buffered for the next write
			w.buf.WriteString(line)
			break
		}
		w.emit(strings.TrimRight(line, "\r\n"))
	}
	return len(p), nil
}

// Close flushes a trailing line that arrived without a newline.
func (w *lineWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.emit(strings.TrimRight(w.buf.String(), "\r\n"))
	w.buf.Reset()
	return nil
}

func (w *lineWriter) emit(line string) {
	if line == "" {
		return
	}
	w.log.LogAttrs(context.Background(), w.level, line)
}
