package logger

import (
	"io"
	"log"
)

// Logger is the leveled printf sink handed to the machine and tools.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

type stdLogger struct {
	l     *log.Logger
	debug bool
}

// New returns a Logger writing to w through the standard log package.
// Debugf output is discarded unless debug is set.
func New(w io.Writer, debug bool) Logger {
	return &stdLogger{l: log.New(w, "", log.LstdFlags), debug: debug}
}

func (s *stdLogger) Infof(format string, args ...interface{}) {
	s.l.Printf("[INFO]\t"+format, args...)
}

func (s *stdLogger) Errorf(format string, args ...interface{}) {
	s.l.Printf("[ERROR]\t"+format, args...)
}

func (s *stdLogger) Debugf(format string, args ...interface{}) {
	if s.debug {
		s.l.Printf("[DEBUG]\t"+format, args...)
	}
}

// nullLogger is a logger that does nothing.
type nullLogger struct{}

func (nullLogger) Infof(format string, args ...interface{})  {}
func (nullLogger) Errorf(format string, args ...interface{}) {}
func (nullLogger) Debugf(format string, args ...interface{}) {}

// NewNull returns a logger that does nothing.
func NewNull() Logger {
	return nullLogger{}
}
