package chiext

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// Logger logs every request to the default slog logger.
func Logger() func(next http.Handler) http.Handler {
	return middleware.RequestLogger(&LogFormatter{Logger: slog.Default()})
}

type LogFormatter struct {
	Logger *slog.Logger
}

func (l *LogFormatter) NewLogEntry(r *http.Request) middleware.LogEntry {
	attrs := []any{slog.String("from", r.RemoteAddr)}
	if reqID := middleware.GetReqID(r.Context()); reqID != "" {
		attrs = append(attrs, slog.String("request", reqID))
	}

	return &logEntry{
		logger: l.Logger,
		attrs:  attrs,
		msg:    fmt.Sprintf("%s %s %s", r.Method, r.RequestURI, r.Proto),
	}
}

type logEntry struct {
	logger *slog.Logger
	attrs  []any
	msg    string
}

func (l *logEntry) Write(status, bytes int, header http.Header, elapsed time.Duration, extra interface{}) {
	attrs := append(l.attrs,
		slog.Int("status", status),
		slog.Int("bytes", bytes),
		slog.Duration("elapsed", elapsed),
	)

	switch {
	case status >= 500:
		l.logger.Error(l.msg, attrs...)
	case status >= 400:
		l.logger.Debug(l.msg, attrs...)
	default:
		l.logger.Info(l.msg, attrs...)
	}
}

func (l *logEntry) Panic(v interface{}, stack []byte) {
	l.logger.Error("Request panicked", append(l.attrs, slog.Any("panic", v), slog.String("stack", string(stack)))...)
}
