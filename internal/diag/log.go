package diag

import (
	"fmt"
	"io"
	"os"

	"github.com/vismutlang/vismut/internal/source"
)

// Level is a leveled-logger verbosity, gated by the CLI's -v flag
// rather than a teacher-style global (ported from gql/log.go's
// Debugf/Logf/Errorf trio).
type Level int

const (
	LevelError Level = iota
	LevelInfo
	LevelDebug
)

// Logger is the tiny leveled logger used by vismutc. Every call is
// parameterized by a source position the way the teacher parameterizes
// by an ASTNode, rather than by a bare format string.
type Logger struct {
	Out   io.Writer
	Level Level
}

// NewLogger creates a Logger writing to os.Stderr at the given level.
func NewLogger(level Level) *Logger {
	return &Logger{Out: os.Stderr, Level: level}
}

func (l *Logger) logf(level Level, tag string, buf *source.Buffer, offset int, format string, args ...interface{}) {
	if l == nil || l.Level < level {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if buf == nil {
		fmt.Fprintf(l.Out, "%s: %s\n", tag, msg)
		return
	}
	pos := buf.Resolve(offset)
	fmt.Fprintf(l.Out, "%s: %s:%d:%d: %s\n", tag, buf.Module, pos.Line, pos.Column, msg)
}

// Errorf logs at LevelError, the logger's minimum level: always printed.
func (l *Logger) Errorf(buf *source.Buffer, offset int, format string, args ...interface{}) {
	l.logf(LevelError, "error", buf, offset, format, args...)
}

// Logf logs at LevelInfo: general progress messages.
func (l *Logger) Logf(buf *source.Buffer, offset int, format string, args ...interface{}) {
	l.logf(LevelInfo, "info", buf, offset, format, args...)
}

// Debugf logs at LevelDebug: only printed at -v=2 or higher.
func (l *Logger) Debugf(buf *source.Buffer, offset int, format string, args ...interface{}) {
	l.logf(LevelDebug, "debug", buf, offset, format, args...)
}
