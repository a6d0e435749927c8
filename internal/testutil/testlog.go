package testlog

import (
	"sync"

	"delivery-dispatch/internal/logx"
)

// Entry is a single recorded log entry.
type Entry struct {
	Level  string
	Msg    string
	Fields []logx.Field
}

// Recorder collects log entries for assertions in tests.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

// New returns an empty Recorder.
func New() *Recorder { return &Recorder{} }

// Logger returns a logx.Logger bound to the recorder.
func (r *Recorder) Logger() logx.Logger {
	return bound{r: r}
}

// Entries returns a copy of the recorded entries.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

func (r *Recorder) add(level, msg string, fields []logx.Field) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := append([]logx.Field(nil), fields...)
	r.entries = append(r.entries, Entry{Level: level, Msg: msg, Fields: cp})
}

type bound struct {
	r    *Recorder
	base []logx.Field
}

func (b bound) Debug(msg string, f ...logx.Field) { b.r.add("debug", msg, append(b.base, f...)) }
func (b bound) Info(msg string, f ...logx.Field)  { b.r.add("info", msg, append(b.base, f...)) }
func (b bound) Warn(msg string, f ...logx.Field)  { b.r.add("warn", msg, append(b.base, f...)) }
func (b bound) Error(msg string, f ...logx.Field) { b.r.add("error", msg, append(b.base, f...)) }

func (b bound) With(f ...logx.Field) logx.Logger {
	nb := bound{r: b.r, base: append([]logx.Field(nil), b.base...)}
	nb.base = append(nb.base, f...)
	return nb
}

func (b bound) Sync() error { return nil }

var _ logx.Logger = bound{}
