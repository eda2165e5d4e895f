package render

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/speakeasy-api/openapi/sequencedmap"
)

// LogLevel represents the severity level for logs.
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
		return LevelWarn // default
	}
}

// Logger is the interface used by the render executor for logging.
type Logger interface {
	// Debugf, Infof, Warnf, Errorf log formatted messages at respective levels.
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
	return &textFormatter{
		includeTimestamp: true,
	}
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

	// Message first for readability
	b.WriteString(msg)

	// Sort field keys for deterministic output
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
		// Quote if contains whitespace
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

// defaultLogger is a thread-safe logger implementation supporting With() context.
type defaultLogger struct {
	out       io.Writer
	level     LogLevel
	formatter *textFormatter

	// baseFields are the context fields attached to this logger.
	baseFields map[string]any

	// mu serializes writes to the writer and protects baseFields during write.
	mu *sync.Mutex
}

// NewLogger creates a default logger with the given level.
// If w is nil, os.Stderr is used.
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

// noopLogger is a logger that discards all output.
type noopLogger struct{}

func (l *noopLogger) IsEnabled(level LogLevel) bool     { return false }
func (l *noopLogger) Debugf(format string, args ...any) {}
func (l *noopLogger) Infof(format string, args ...any)  {}
func (l *noopLogger) Warnf(format string, args ...any)  {}
func (l *noopLogger) Errorf(format string, args ...any) {}
func (l *noopLogger) With(fields map[string]any) Logger { return l }

// NewNoopLogger returns a logger that discards all output.
func NewNoopLogger() Logger {
	return &noopLogger{}
}

func (l *defaultLogger) IsEnabled(level LogLevel) bool {
	return level <= l.level
}

func (l *defaultLogger) With(fields map[string]any) Logger {
	if len(fields) == 0 {
		return l
	}
	// Shallow copy of base fields to avoid parent mutation
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
		mu:         l.mu, // share same lock and writer
	}
}

func (l *defaultLogger) Debugf(format string, args ...any) {
	l.logf(LevelDebug, format, args...)
}

func (l *defaultLogger) Infof(format string, args ...any) {
	l.logf(LevelInfo, format, args...)
}

func (l *defaultLogger) Warnf(format string, args ...any) {
	l.logf(LevelWarn, format, args...)
}

func (l *defaultLogger) Errorf(format string, args ...any) {
	l.logf(LevelError, format, args...)
}

func (l *defaultLogger) logf(level LogLevel, format string, args ...any) {
	if !l.IsEnabled(level) {
		return
	}
	// Format message only when enabled
	msg := fmt.Sprintf(format, args...)

	// Snapshot fields to avoid mutation races by callers
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
// Helpers: value and fragment summaries, truncation
// ----------------------------------------------------------------------------

const previewWidth = 24

// previewText quotes a string for a log field, truncating by display
// width so multi-column runes do not blow up the line.
func previewText(s string) string {
	return strconv.Quote(runewidth.Truncate(s, previewWidth, "..."))
}

// ValueSummary returns a compact one-line representation of a display
// value's shape. It avoids heavy traversal and truncates collections to
// keep output small.
func ValueSummary(v any) string {
	return valueSummary(v, 2)
}

func valueSummary(v any, depth int) string {
	switch t := v.(type) {
	case nil:
		return "nil"
	case bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, float32, float64:
		return fmt.Sprint(t)
	case string:
		return previewText(t)
	case []byte:
		return "narrow" + previewText(string(t))
	case []rune:
		return "wide" + previewText(string(t))
	case Text:
		return t.Kind().String() + previewText(t.String())
	case Fragment:
		return FragmentSummary(t)
	case []any:
		if depth <= 0 || len(t) == 0 {
			return fmt.Sprintf("seq[%d]", len(t))
		}
		return fmt.Sprintf("seq[%d, head=%s]", len(t), valueSummary(t[0], depth-1))
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return "map{" + truncateList(keys, 5) + "}"
	case *sequencedmap.Map[string, any]:
		var keys []string
		for k := range t.All() {
			keys = append(keys, k)
		}
		return "omap{" + truncateList(keys, 5) + "}"
	case Func:
		return "func"
	}
	return fmt.Sprintf("%T", v)
}

// FragmentSummary describes one transaction fragment for step traces.
func FragmentSummary(f Fragment) string {
	switch f.kind {
	case FragmentNarrow:
		return "narrow" + previewText(string(f.narrow))
	case FragmentWide:
		return "wide" + previewText(string(f.wide))
	case FragmentOpaque:
		return "opaque(" + valueSummary(f.value, 1) + ")"
	}
	return "unknown"
}

// truncateList joins items with "," and appends +N if truncated.
func truncateList(items []string, max int) string {
	if max <= 0 || len(items) <= max {
		return strings.Join(items, ",")
	}
	head := items[:max]
	return strings.Join(head, ",") + fmt.Sprintf(",+%d", len(items)-max)
}
