package testsupport

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/goliatone/go-vendcms/pkg/interfaces"
)

// LogEntry is a single captured call on a RecordingLogger.
type LogEntry struct {
	Level  string
	Msg    string
	Args   []any
	Fields map[string]any
}

// Arg returns the value paired with key in the entry args.
func (e LogEntry) Arg(key string) (any, bool) {
	for i := 0; i+1 < len(e.Args); i += 2 {
		if k, ok := e.Args[i].(string); ok && k == key {
			return e.Args[i+1], true
		}
	}
	return nil, false
}

type logSink struct {
	mu      sync.Mutex
	entries []LogEntry
}

// RecordingLogger captures entries for assertions. Children created through
// WithFields share the parent sink.
type RecordingLogger struct {
	sink   *logSink
	fields map[string]any
}

var (
	_ interfaces.Logger       = (*RecordingLogger)(nil)
	_ interfaces.FieldsLogger = (*RecordingLogger)(nil)
)

func NewRecordingLogger() *RecordingLogger {
	return &RecordingLogger{sink: &logSink{}}
}

func (l *RecordingLogger) record(level, msg string, args []any) {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.entries = append(l.sink.entries, LogEntry{
		Level:  level,
		Msg:    msg,
		Args:   slices.Clone(args),
		Fields: maps.Clone(l.fields),
	})
}

func (l *RecordingLogger) Trace(msg string, args ...any) { l.record("trace", msg, args) }
func (l *RecordingLogger) Debug(msg string, args ...any) { l.record("debug", msg, args) }
func (l *RecordingLogger) Info(msg string, args ...any)  { l.record("info", msg, args) }
func (l *RecordingLogger) Warn(msg string, args ...any)  { l.record("warn", msg, args) }
func (l *RecordingLogger) Error(msg string, args ...any) { l.record("error", msg, args) }
func (l *RecordingLogger) Fatal(msg string, args ...any) { l.record("fatal", msg, args) }

func (l *RecordingLogger) WithContext(context.Context) interfaces.Logger { return l }

func (l *RecordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	merged := make(map[string]any, len(l.fields)+len(fields))
	maps.Copy(merged, l.fields)
	maps.Copy(merged, fields)
	return &RecordingLogger{sink: l.sink, fields: merged}
}

// Entries returns a copy of every captured entry.
func (l *RecordingLogger) Entries() []LogEntry {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	return slices.Clone(l.sink.entries)
}

// Find returns the captured entries with the given message.
func (l *RecordingLogger) Find(msg string) []LogEntry {
	var out []LogEntry
	for _, e := range l.Entries() {
		if e.Msg == msg {
			out = append(out, e)
		}
	}
	return out
}

type recordingProvider struct {
	root *RecordingLogger
}

// ProviderFor returns a LoggerProvider whose loggers write into rec with a
// "logger" field naming the requested module.
func ProviderFor(rec *RecordingLogger) interfaces.LoggerProvider {
	return recordingProvider{root: rec}
}

func (p recordingProvider) GetLogger(name string) interfaces.Logger {
	return p.root.WithFields(map[string]any{"logger": name})
}
