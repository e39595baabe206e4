package logio

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

// Logger is a leveled line logger around an output stream. It is safe for
// use from multiple goroutines.
type Logger struct {
	mu       sync.Mutex
	output   io.Writer
	buf      bytes.Buffer
	errors   int
	exitCode int
}

// New returns a Logger writing to out.
func New(out io.Writer) *Logger {
	return &Logger{output: out}
}

// ExitCode returns a code to pass to os.Exit, facilitating "exit non-zero if
// any error log" semantics.
func (log *Logger) ExitCode() int {
	log.mu.Lock()
	defer log.mu.Unlock()
	return log.exitCode
}

// Errors returns how many ERROR lines have been logged.
func (log *Logger) Errors() int {
	log.mu.Lock()
	defer log.mu.Unlock()
	return log.errors
}

// Errorf is like `Printf("ERROR", ...)` but additionally retains state so that
// ExitCode() will return non-zero.
func (log *Logger) Errorf(mess string, args ...interface{}) {
	log.Failf("ERROR", mess, args...)
}

// Failf is like Printf, but counts the line as an error. An empty level
// writes the message unprefixed, for callers that format their own.
func (log *Logger) Failf(level, mess string, args ...interface{}) {
	log.mu.Lock()
	defer log.mu.Unlock()
	log.errors++
	if log.exitCode == 0 {
		log.exitCode = 1
	}
	if err := log.printf(level, mess, args...); err != nil {
		log.exitCode = 2
	}
}

// Printf prints a line to the output stream like "level: message...\n".
// An output failure is retained as exit code 2.
func (log *Logger) Printf(level, mess string, args ...interface{}) {
	log.mu.Lock()
	defer log.mu.Unlock()
	if err := log.printf(level, mess, args...); err != nil {
		log.exitCode = 2
	}
}

func (log *Logger) printf(level, mess string, args ...interface{}) error {
	if log.output == nil {
		return nil
	}
	if level != "" {
		log.buf.WriteString(level)
		log.buf.WriteString(": ")
	}
	if len(args) > 0 {
		fmt.Fprintf(&log.buf, mess, args...)
	} else {
		log.buf.WriteString(mess)
	}
	if b := log.buf.Bytes(); len(b) > 0 && b[len(b)-1] != '\n' {
		log.buf.WriteByte('\n')
	}
	_, err := log.buf.WriteTo(log.output)
	log.buf.Reset()
	return err
}
