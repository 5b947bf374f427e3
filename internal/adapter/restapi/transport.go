package restapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/myenglish-flashcards/pkg/ctxutil"
)

// tokenSource supplies the bearer token for each request.
type tokenSource interface {
	Token() (string, error)
}

// headerTransport sets auth and correlation headers on outgoing requests.
type headerTransport struct {
	next   http.RoundTripper
	tokens tokenSource
}

func (t *headerTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	r.Header.Set("Accept", "application/json")

	if id := ctxutil.RequestIDFromCtx(r.Context()); id != "" {
		r.Header.Set("X-Request-Id", id)
	}
	if t.tokens != nil {
		token, err := t.tokens.Token()
		if err != nil {
			return nil, err
		}
		if token != "" {
			r.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return t.next.RoundTrip(r)
}

// loggingTransport logs each backend call with method, path, status,
// duration, and context identifiers.
type loggingTransport struct {
	next http.RoundTripper
	log  *slog.Logger
}

func (t *loggingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.next.RoundTrip(r)
	duration := time.Since(start)

	attrs := []slog.Attr{
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Duration("duration", duration),
		slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
	}
	if userID, ok := ctxutil.UserIDFromCtx(r.Context()); ok {
		attrs = append(attrs, slog.String("user_id", userID))
	}

	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		t.log.LogAttrs(r.Context(), slog.LevelWarn, "api.request", attrs...)
		return nil, err
	}

	attrs = append(attrs, slog.Int("status", resp.StatusCode))
	level := slog.LevelDebug
	if resp.StatusCode >= 500 {
		level = slog.LevelError
	} else if resp.StatusCode >= 400 {
		level = slog.LevelWarn
	}
	t.log.LogAttrs(r.Context(), level, "api.request", attrs...)
	return resp, nil
}
