// Package log provides the levelled structured logger used by the plume
// commands and the playground service.
package log

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Fields carries structured context for a log entry
type Fields map[string]interface{}

// Merge returns a new Fields with other layered on top of f
func (f Fields) Merge(other Fields) Fields {
	out := make(Fields, len(f)+len(other))
	for k, v := range f {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

// Logger writes levelled entries with context fields. Derived loggers share
// the parent's output and lock.
type Logger struct {
	level  Level
	format Format
	out    io.Writer
	fields Fields
	now    func() time.Time
	styles levelStyles
	mu     *sync.Mutex
}

// Config represents logger configuration
type Config struct {
	Level  Level
	Format Format
	Output io.Writer
}

type levelStyles map[Level]lipgloss.Style

func newLevelStyles(w io.Writer) levelStyles {
	r := lipgloss.NewRenderer(w)
	return levelStyles{
		LevelDebug: r.NewStyle().Foreground(lipgloss.Color("#6B7280")),
		LevelInfo:  r.NewStyle().Foreground(lipgloss.Color("#06B6D4")),
		LevelWarn:  r.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true),
		LevelError: r.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true),
	}
}

// New creates a logger writing text at info level to stderr
func New() *Logger {
	return NewWithConfig(Config{Level: LevelInfo, Format: FormatText, Output: os.Stderr})
}

// NewWithConfig creates a new logger with the specified configuration
func NewWithConfig(cfg Config) *Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	return &Logger{
		level:  cfg.Level,
		format: cfg.Format,
		out:    cfg.Output,
		fields: Fields{},
		now:    time.Now,
		styles: newLevelStyles(cfg.Output),
		mu:     &sync.Mutex{},
	}
}

// Discard returns a logger that drops everything
func Discard() *Logger {
	return NewWithConfig(Config{Level: LevelError + 1, Output: io.Discard})
}

func (l *Logger) clone() *Logger {
	c := *l
	c.fields = l.fields.Merge(nil)
	return &c
}

func (l *Logger) WithField(key string, value interface{}) *Logger {
	c := l.clone()
	c.fields[key] = value
	return c
}

func (l *Logger) WithFields(fields Fields) *Logger {
	c := l.clone()
	c.fields = c.fields.Merge(fields)
	return c
}

func (l *Logger) Level() Level { return l.level }

func (l *Logger) Enabled(level Level) bool { return level >= l.level }

func (l *Logger) Debug(message string, fields ...Fields) { l.log(LevelDebug, message, fields) }
func (l *Logger) Info(message string, fields ...Fields)  { l.log(LevelInfo, message, fields) }
func (l *Logger) Warn(message string, fields ...Fields)  { l.log(LevelWarn, message, fields) }
func (l *Logger) Error(message string, fields ...Fields) { l.log(LevelError, message, fields) }

func (l *Logger) log(level Level, message string, extra []Fields) {
	if !l.Enabled(level) {
		return
	}
	fields := l.fields
	for _, f := range extra {
		fields = fields.Merge(f)
	}

	var line []byte
	if l.format == FormatJSON {
		line = l.formatJSON(level, message, fields)
	} else {
		line = l.formatText(level, message, fields)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = l.out.Write(line)
}

func (l *Logger) formatJSON(level Level, message string, fields Fields) []byte {
	entry := make(map[string]interface{}, len(fields)+3)
	for k, v := range fields {
		if err, ok := v.(error); ok {
			v = err.Error()
		}
		entry[k] = v
	}
	entry["time"] = l.now().UTC().Format(time.RFC3339)
	entry["level"] = level.String()
	entry["msg"] = message

	data, err := json.Marshal(entry)
	if err != nil {
		data = []byte(fmt.Sprintf(`{"level":"error","msg":"log encoding failed: %s"}`, err))
	}
	return append(data, '\n')
}

func (l *Logger) formatText(level Level, message string, fields Fields) []byte {
	var b strings.Builder
	b.WriteString(l.now().UTC().Format(time.RFC3339))
	b.WriteByte(' ')
	b.WriteString(l.styles[level].Render(level.ShortString()))
	b.WriteByte(' ')
	b.WriteString(message)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, quoteIfNeeded(fields[k]))
	}
	b.WriteByte('\n')
	return []byte(b.String())
}

func quoteIfNeeded(v interface{}) interface{} {
	s, ok := v.(string)
	if !ok {
		if err, isErr := v.(error); isErr {
			s, ok = err.Error(), true
		}
	}
	if ok && (s == "" || strings.ContainsAny(s, " \t\n\"=")) {
		return fmt.Sprintf("%q", s)
	}
	if ok {
		return s
	}
	return v
}
