package logx

import "log/slog"

// SlogAdapter backs the Logger interface with the standard library slog.
type SlogAdapter struct {
	l *slog.Logger
}

// NewSlogAdapter wraps the provided *slog.Logger.
func NewSlogAdapter(l *slog.Logger) Logger {
	return &SlogAdapter{l: l}
}

// Debug logs at debug level.
func (s *SlogAdapter) Debug(msg string, fields ...Field) { s.l.Debug(msg, toSlogArgs(fields)...) }

// Info logs at info level.
func (s *SlogAdapter) Info(msg string, fields ...Field) { s.l.Info(msg, toSlogArgs(fields)...) }

// Warn logs at warning level.
func (s *SlogAdapter) Warn(msg string, fields ...Field) { s.l.Warn(msg, toSlogArgs(fields)...) }

// Error logs at error level.
func (s *SlogAdapter) Error(msg string, fields ...Field) { s.l.Error(msg, toSlogArgs(fields)...) }

// With returns a logger that attaches fields to every subsequent entry.
func (s *SlogAdapter) With(fields ...Field) Logger {
	return &SlogAdapter{l: s.l.With(toSlogArgs(fields)...)}
}

// Sync flushes buffered logs if supported; slog does not buffer.
func (s *SlogAdapter) Sync() error { return nil }

func toSlogArgs(fields []Field) []any {
	args := make([]any, 0, len(fields))
	for _, f := range fields {
		args = append(args, slog.Any(f.Key, f.Value))
	}
	return args
}
