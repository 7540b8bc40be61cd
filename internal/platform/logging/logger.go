package logging

import (
	"context"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level = zapcore.Level

const (
	LevelDebug = zapcore.DebugLevel
	LevelInfo  = zapcore.InfoLevel
	LevelWarn  = zapcore.WarnLevel
	LevelError = zapcore.ErrorLevel
)

var levelNames = map[string]Level{
	"debug":   LevelDebug,
	"info":    LevelInfo,
	"warn":    LevelWarn,
	"warning": LevelWarn,
	"error":   LevelError,
}

// ParseLevel reads APP_LOG_LEVEL values. Unknown names mean info.
func ParseLevel(raw string) Level {
	if level, ok := levelNames[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return level
	}
	return LevelInfo
}

// Logger takes alternating key/value pairs like slog and writes them as zap
// fields. The *Context methods add trace_id and span_id when ctx carries a
// valid span.
type Logger struct {
	core *zap.Logger
}

var fallback atomic.Pointer[Logger]

func init() {
	fallback.Store(NewNop())
}

func NewJSON(level Level) *Logger {
	return NewJSONTo(os.Stdout, level)
}

func NewJSONTo(w io.Writer, level Level) *Logger {
	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "time"
	enc.MessageKey = "msg"
	enc.NameKey = "logger"
	enc.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	enc.EncodeLevel = zapcore.CapitalLevelEncoder
	enc.EncodeDuration = zapcore.StringDurationEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.Lock(zapcore.AddSync(w)), level)
	return &Logger{core: zap.New(core, zap.AddCaller(), zap.AddCallerSkip(2), zap.AddStacktrace(LevelError))}
}

func NewNop() *Logger {
	return &Logger{core: zap.NewNop()}
}

// Default is the process logger installed by SetDefault, a no-op until then.
func Default() *Logger {
	return fallback.Load()
}

func SetDefault(logger *Logger) {
	if logger == nil {
		logger = NewNop()
	}
	fallback.Store(logger)
}

func (l *Logger) Sync() error {
	if l == nil {
		return nil
	}
	// Syncing stdout returns EINVAL on most platforms.
	if err := l.core.Sync(); err != nil && !strings.Contains(err.Error(), "invalid argument") {
		return err
	}
	return nil
}

func (l *Logger) With(args ...any) *Logger {
	return &Logger{core: l.resolve().core.With(fields(args)...)}
}

// Named appends a dot-separated component name, e.g. "player".
func (l *Logger) Named(name string) *Logger {
	return &Logger{core: l.resolve().core.Named(name)}
}

func (l *Logger) Debug(msg string, args ...any) { l.emit(nil, LevelDebug, msg, args) }
func (l *Logger) Info(msg string, args ...any)  { l.emit(nil, LevelInfo, msg, args) }
func (l *Logger) Warn(msg string, args ...any)  { l.emit(nil, LevelWarn, msg, args) }
func (l *Logger) Error(msg string, args ...any) { l.emit(nil, LevelError, msg, args) }

func (l *Logger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, LevelDebug, msg, args)
}

func (l *Logger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, LevelInfo, msg, args)
}

func (l *Logger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, LevelWarn, msg, args)
}

func (l *Logger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, LevelError, msg, args)
}

func (l *Logger) resolve() *Logger {
	if l == nil || l.core == nil {
		return Default()
	}
	return l
}

func (l *Logger) emit(ctx context.Context, level Level, msg string, args []any) {
	entry := l.resolve().core.Check(level, msg)
	if entry == nil {
		return
	}
	out := fields(args)
	if ctx != nil {
		if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
			out = append(out,
				zap.String("trace_id", sc.TraceID().String()),
				zap.String("span_id", sc.SpanID().String()),
			)
		}
	}
	entry.Write(out...)
}

// fields pairs up args. A trailing key without a value is logged as null and
// a non-string key becomes "arg".
func fields(args []any) []zap.Field {
	out := make([]zap.Field, 0, len(args)/2+2)
	for i := 0; i < len(args); i += 2 {
		key, _ := args[i].(string)
		if key == "" {
			key = "arg"
		}
		var value any
		if i+1 < len(args) {
			value = args[i+1]
		}
		if err, ok := value.(error); ok {
			out = append(out, zap.NamedError(key, err))
			continue
		}
		out = append(out, zap.Any(key, value))
	}
	return out
}
