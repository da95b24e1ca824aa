// Package logger is the engine's leveled logger. Every entry is tagged with
// the name of its source and can carry the engine's elapsed-time stamp.
package logger

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kataras/golog"
)

// Level of a log entry, from most to least verbose.
type Level string

const (
	Verbose Level = "VERBOSE"
	Info    Level = "INFO"
	Warning Level = "WARNING"
	Error   Level = "ERROR"
)

var ErrUnknownLevel = errors.New("logger: unknown level")

var levels = map[Level]golog.Level{
	Verbose: golog.DebugLevel,
	Info:    golog.InfoLevel,
	Warning: golog.WarnLevel,
	Error:   golog.ErrorLevel,
}

// ParseLevel accepts a level name in any case.
func ParseLevel(s string) (Level, error) {
	l := Level(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := levels[l]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownLevel, s)
	}
	return l, nil
}

// Stamper supplies the timestamp prefix, normally the engine clock.
type Stamper interface {
	ElapsedFormatted() string
}

type Options struct {
	// Debug enables output. When false nothing is written.
	Debug bool
	// Timestamp prefixes each entry with Clock's elapsed time.
	Timestamp bool
	// SingleLine writes "[LEVEL] source: message". Otherwise level, source
	// and message each get their own line.
	SingleLine bool
	Level      Level
	Clock      Stamper
}

// Logger writes leveled, source-tagged entries. golog does the level
// filtering; formatting is ours so entries carry engine level names.
type Logger struct {
	out   io.Writer
	opts  Options
	level Level
	g     *golog.Logger
}

func New(out io.Writer, opts Options) *Logger {
	if out == nil {
		out = os.Stdout
	}
	if opts.Level == "" {
		opts.Level = Info
	}

	l := &Logger{
		out:  out,
		opts: opts,
		g:    golog.New(),
	}
	l.g.SetOutput(out)
	l.g.SetTimeFormat("")
	l.g.Handle(l.write)

	if err := l.SetLevel(opts.Level); err != nil {
		_ = l.SetLevel(Info)
	}
	l.EnableDebug(opts.Debug)
	return l
}

// Discard returns a logger that writes nothing.
func Discard() *Logger {
	return New(io.Discard, Options{})
}

// SetLevel sets the least severe level that is written.
func (l *Logger) SetLevel(level Level) error {
	if l == nil {
		return nil
	}
	if _, ok := levels[level]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLevel, level)
	}
	l.level = level
	l.apply()
	l.Log("Logger", fmt.Sprintf("Log level set to %s.", level), Info)
	return nil
}

func (l *Logger) Level() Level {
	if l == nil {
		return ""
	}
	return l.level
}

// EnableDebug turns output on or off.
func (l *Logger) EnableDebug(debug bool) {
	if l == nil {
		return
	}
	l.opts.Debug = debug
	l.apply()
}

func (l *Logger) apply() {
	if !l.opts.Debug {
		l.g.Level = golog.DisableLevel
		return
	}
	l.g.Level = levels[l.level]
}

// Log writes message from source at level.
func (l *Logger) Log(source, message string, level Level) {
	if l == nil {
		return
	}
	gl, ok := levels[level]
	if !ok {
		level, gl = Info, golog.InfoLevel
	}
	l.g.Logf(gl, "%s", l.format(source, message, level))
}

func (l *Logger) Verbose(source, message string) { l.Log(source, message, Verbose) }
func (l *Logger) Info(source, message string)    { l.Log(source, message, Info) }
func (l *Logger) Warning(source, message string) { l.Log(source, message, Warning) }
func (l *Logger) Error(source, message string)   { l.Log(source, message, Error) }

func (l *Logger) Verbosef(source, format string, args ...any) {
	l.Log(source, fmt.Sprintf(format, args...), Verbose)
}

func (l *Logger) Infof(source, format string, args ...any) {
	l.Log(source, fmt.Sprintf(format, args...), Info)
}

func (l *Logger) Warningf(source, format string, args ...any) {
	l.Log(source, fmt.Sprintf(format, args...), Warning)
}

func (l *Logger) Errorf(source, format string, args ...any) {
	l.Log(source, fmt.Sprintf(format, args...), Error)
}

// Source returns a logger bound to one source name.
func (l *Logger) Source(name string) *Source {
	return &Source{l: l, name: name}
}

func (l *Logger) format(source, message string, level Level) string {
	// Entries are one record each; a newline in the source would split them.
	source = strings.ReplaceAll(source, "\n", " ")

	var b strings.Builder
	if l.opts.Timestamp && l.opts.Clock != nil {
		b.WriteString(l.opts.Clock.ElapsedFormatted())
		b.WriteByte(' ')
	}
	if l.opts.SingleLine {
		fmt.Fprintf(&b, "[%s] %s: %s", level, source, message)
	} else {
		fmt.Fprintf(&b, "[%s]\n%s:\n%s", level, source, message)
	}
	return b.String()
}

func (l *Logger) write(value *golog.Log) bool {
	_, _ = io.WriteString(l.out, value.Message+"\n")
	return true
}

// SetClock sets the timestamp source.
func (l *Logger) SetClock(c Stamper) {
	if l == nil {
		return
	}
	l.opts.Clock = c
}
