package httputil

import (
	"log/slog"
	"net/http"

	"github.com/jonboulle/clockwork"
)

// Logged wraps a round tripper with logging at [slog.LevelDebug] level.
func Logged(next http.RoundTripper, logger *slog.Logger) http.RoundTripper {
	return &LoggedTransport{
		Next:   next,
		Logger: logger,
		Clock:  clockwork.NewRealClock(),
	}
}

var _ http.RoundTripper = (*LoggedTransport)(nil)

// LoggedTransport logs each outbound request once its response headers arrive.
type LoggedTransport struct {
	Next   http.RoundTripper
	Logger *slog.Logger
	Clock  clockwork.Clock
}

// RoundTrip implements [http.RoundTripper].
func (l *LoggedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := l.Clock.Now()
	res, err := l.Next.RoundTrip(req)
	attributes := []any{
		slog.String("verb", req.Method),
		slog.String("url", req.URL.String()),
		slog.Duration("elapsed", l.Clock.Since(start)),
	}
	if err != nil {
		attributes = append(attributes, slog.Any("err", err))
		l.Logger.Debug("http-request", attributes...)
		return nil, err
	}
	attributes = append(attributes, slog.String("status_code", http.StatusText(res.StatusCode)))
	if contentType := res.Header.Get(HeaderContentType); contentType != "" {
		attributes = append(attributes, slog.String("content-type", contentType))
	}
	l.Logger.Debug("http-request", attributes...)
	return res, nil
}
