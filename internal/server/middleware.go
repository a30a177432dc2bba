package server

import (
	"context"
	"log"
	"net/http"
	"runtime"
	"time"

	"github.com/google/uuid"
)

// Middleware wraps an http.Handler with extra behaviour
type Middleware func(http.Handler) http.Handler

// Chain composes middlewares so the first listed runs outermost
func Chain(middlewares ...Middleware) Middleware {
	return func(final http.Handler) http.Handler {
		for i := len(middlewares) - 1; i >= 0; i-- {
			final = middlewares[i](final)
		}
		return final
	}
}

type contextKey string

const requestIDKey contextKey = "request_id"

// RequestID returns the id the request logger assigned, or "" outside one
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// RequestLogger tags each request with a short id and logs method, path,
// status and duration once the handler returns
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := uuid.NewString()[:8]
		ctx := context.WithValue(r.Context(), requestIDKey, id)

		wrapped := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapped, r.WithContext(ctx))

		log.Printf("[%s] %s %s %d %v", id, r.Method, r.URL.Path, wrapped.status, time.Since(start))
	})
}

// Recovery turns a handler panic into a 500 response instead of killing the
// process
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				buf := make([]byte, 4096)
				n := runtime.Stack(buf, false)
				log.Printf("Panic recovered: %v\n%s", err, buf[:n])

				http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// statusWriter captures the status code written by the handler
type statusWriter struct {
	http.ResponseWriter
	status  int
	written bool
}

func (sw *statusWriter) WriteHeader(code int) {
	if !sw.written {
		sw.status = code
		sw.written = true
		sw.ResponseWriter.WriteHeader(code)
	}
}

func (sw *statusWriter) Write(b []byte) (int, error) {
	if !sw.written {
		sw.WriteHeader(http.StatusOK)
	}
	return sw.ResponseWriter.Write(b)
}
