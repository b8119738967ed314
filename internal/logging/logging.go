package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the rotating log file
type Options struct {
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// New returns a logger writing to the rotating file and every extra writer.
// Close the returned io.Closer on shutdown to release the file.
func New(opts Options, extra ...io.Writer) (*log.Logger, io.Closer, error) {
	if opts.File == "" {
		return nil, nil, fmt.Errorf("log file path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log dir: %w", err)
	}
	file := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
	}
	writers := append([]io.Writer{file}, extra...)
	return log.New(io.MultiWriter(writers...), "", log.LstdFlags), file, nil
}

// UIWriter forwards each log line to a buffered channel for the log panel.
// Writes never block: when the panel falls behind, lines are dropped.
type UIWriter struct {
	lines chan string
}

func NewUIWriter(buffer int) *UIWriter {
	if buffer <= 0 {
		buffer = 1
	}
	return &UIWriter{lines: make(chan string, buffer)}
}

func (w *UIWriter) Write(p []byte) (int, error) {
	line := fmt.Sprintf("[%s] %s\n", time.Now().Format("15:04:05"), strings.TrimRight(stripTimestamp(string(p)), "\n"))
	select {
	case w.lines <- line:
	default:
	}
	return len(p), nil
}

// Lines is read by the UI model
func (w *UIWriter) Lines() <-chan string {
	return w.lines
}

// stripTimestamp drops the "2006/01/02 15:04:05 " prefix log.LstdFlags adds;
// the panel shows its own shorter clock
func stripTimestamp(s string) string {
	const stamp = len("2006/01/02 15:04:05 ")
	if len(s) >= stamp && s[4] == '/' && s[7] == '/' && s[13] == ':' {
		return s[stamp:]
	}
	return s
}
