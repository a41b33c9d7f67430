package branchjoin

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// LogLevel represents the severity level for logs. Ported from the
// teacher's schemaexec/log.go.
type LogLevel int

const (
	LevelError LogLevel = iota
	LevelWarn
	LevelInfo
	LevelDebug
)

func (l LogLevel) String() string {
	switch l {
	case LevelError:
		return "ERROR"
	case LevelWarn:
		return "WARN"
	case LevelInfo:
		return "INFO"
	case LevelDebug:
		return "DEBUG"
	default:
		return "UNKNOWN"
	}
}

// ParseLogLevel parses a string into a LogLevel.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToUpper(s) {
	case "ERROR":
		return LevelError
	case "WARN", "WARNING":
		return LevelWarn
	case "INFO":
		return LevelInfo
	case "DEBUG":
		return LevelDebug
	default:
		return LevelWarn
	}
}

// Logger is the interface the join core uses for logging.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)

	// With returns a child logger augmented with the provided fields.
	With(fields map[string]any) Logger
}

// textFormatter emits compact single-line text logs.
// Format: [LEVEL] ts msg key1=val1 key2=val2 ...
type textFormatter struct {
	includeTimestamp bool
}

func newTextFormatter() *textFormatter {
	return &textFormatter{includeTimestamp: true}
}

func (f *textFormatter) format(ts time.Time, level LogLevel, msg string, fields map[string]any) []byte {
	var b strings.Builder
	b.Grow(128)

	b.WriteByte('[')
	b.WriteString(level.String())
	b.WriteByte(']')
	b.WriteByte(' ')

	if f.includeTimestamp {
		b.WriteString(ts.UTC().Format(time.RFC3339Nano))
		b.WriteByte(' ')
	}

	b.WriteString(msg)

	if len(fields) > 0 {
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b.WriteByte(' ')
			b.WriteString(k)
			b.WriteByte('=')
			b.WriteString(safeSprint(fields[k]))
		}
	}

	b.WriteByte('\n')
	return []byte(b.String())
}

func safeSprint(v any) string {
	switch t := v.(type) {
	case string:
		if strings.IndexFunc(t, func(r rune) bool { return r <= ' ' }) >= 0 {
			return fmt.Sprintf("%q", t)
		}
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(v)
	}
}

// defaultLogger is a thread-safe logger implementation supporting With().
type defaultLogger struct {
	out        io.Writer
	level      LogLevel
	formatter  *textFormatter
	baseFields map[string]any
	mu         *sync.Mutex
}

// NewLogger creates a default logger at the given level. If w is nil,
// os.Stderr is used.
func NewLogger(level LogLevel, w io.Writer) Logger {
	if w == nil {
		w = os.Stderr
	}
	return &defaultLogger{
		out:        w,
		level:      level,
		formatter:  newTextFormatter(),
		baseFields: make(map[string]any),
		mu:         &sync.Mutex{},
	}
}

// noopLogger discards all output.
type noopLogger struct{}

func (l *noopLogger) Debugf(format string, args ...any) {}
func (l *noopLogger) Infof(format string, args ...any)  {}
func (l *noopLogger) Warnf(format string, args ...any)  {}
func (l *noopLogger) Errorf(format string, args ...any) {}
func (l *noopLogger) With(fields map[string]any) Logger { return l }

// NewNoopLogger returns a logger that discards all output.
func NewNoopLogger() Logger {
	return &noopLogger{}
}

func (l *defaultLogger) isEnabled(level LogLevel) bool {
	return level <= l.level
}

func (l *defaultLogger) With(fields map[string]any) Logger {
	if len(fields) == 0 {
		return l
	}
	newFields := make(map[string]any, len(l.baseFields)+len(fields))
	for k, v := range l.baseFields {
		newFields[k] = v
	}
	for k, v := range fields {
		newFields[k] = v
	}
	return &defaultLogger{
		out:        l.out,
		level:      l.level,
		formatter:  l.formatter,
		baseFields: newFields,
		mu:         l.mu,
	}
}

func (l *defaultLogger) Debugf(format string, args ...any) { l.logf(LevelDebug, format, args...) }
func (l *defaultLogger) Infof(format string, args ...any)  { l.logf(LevelInfo, format, args...) }
func (l *defaultLogger) Warnf(format string, args ...any)  { l.logf(LevelWarn, format, args...) }
func (l *defaultLogger) Errorf(format string, args ...any) { l.logf(LevelError, format, args...) }

func (l *defaultLogger) logf(level LogLevel, format string, args ...any) {
	if !l.isEnabled(level) {
		return
	}
	msg := fmt.Sprintf(format, args...)

	fields := make(map[string]any, len(l.baseFields))
	for k, v := range l.baseFields {
		fields[k] = v
	}

	ts := time.Now()
	line := l.formatter.format(ts, level, msg, fields)

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = l.out.Write(line)
}

// ----------------------------------------------------------------------------
// Summaries used in log fields — this module's analogue of the teacher's
// schemaTypeSummary/schemaDelta helpers, adapted to Value/Completion/Effects.
// ----------------------------------------------------------------------------

func valueSummary(v Value) string {
	if v == nil {
		return "<absent>"
	}
	switch v.Kind() {
	case KindEmpty:
		return "Empty"
	case KindConcrete:
		return "Concrete"
	case KindAbstract:
		return "Abstract"
	default:
		return "?"
	}
}

func completionSummary(c *Completion) string {
	if c == nil {
		return "<nil>"
	}
	switch c.Kind {
	case CNormal:
		return "Normal(" + valueSummary(c.Value) + ")"
	case CThrow:
		return "Throw(" + valueSummary(c.Value) + ")"
	case CReturn:
		return "Return(" + valueSummary(c.Value) + ")"
	case CBreak:
		return "Break"
	case CContinue:
		return "Continue"
	case CJoinedAbrupt:
		return fmt.Sprintf("JoinedAbrupt(%s, %s)", completionSummary(c.Consequent), completionSummary(c.Alternate))
	case CJoinedNormalAndAbrupt:
		return fmt.Sprintf("JoinedNormalAndAbrupt(%s, %s)", completionSummary(c.Consequent), completionSummary(c.Alternate))
	default:
		return "?"
	}
}

func effectSummary(e *Effects) string {
	if e == nil {
		return "<nil>"
	}
	bindings := 0
	if e.Bindings != nil {
		for range e.Bindings.All() {
			bindings++
		}
	}
	props := 0
	if e.Properties != nil {
		for range e.Properties.All() {
			props++
		}
	}
	return fmt.Sprintf("Effects{result=%s, bindings=%d, properties=%d, created=%d}",
		completionSummary(e.Result), bindings, props, len(e.CreatedObjects))
}
