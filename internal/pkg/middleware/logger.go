package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gamma-omg/speaklexi/internal/pkg/router"
)

type httpStatusWriter struct {
	Status int
	Bytes  int
	inner  http.ResponseWriter
}

func (sw *httpStatusWriter) Header() http.Header {
	return sw.inner.Header()
}

func (sw *httpStatusWriter) WriteHeader(status int) {
	sw.Status = status
	sw.inner.WriteHeader(status)
}

func (sw *httpStatusWriter) Write(b []byte) (int, error) {
	if sw.Status == 0 {
		sw.Status = http.StatusOK
	}
	n, err := sw.inner.Write(b)
	sw.Bytes += n
	return n, err
}

func Log() router.Middleware {
	return LogWith(slog.Default())
}

func LogWith(l *slog.Logger) router.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			statusWriter := &httpStatusWriter{inner: w}
			t := time.Now()

			next.ServeHTTP(statusWriter, r)
			if statusWriter.Status == 0 {
				statusWriter.Status = http.StatusOK
			}

			l.Info("request received",
				"method", r.Method,
				"url", r.URL.String(),
				"ip", r.RemoteAddr,
				"status", statusWriter.Status,
				"bytes", statusWriter.Bytes,
				"duration", time.Since(t),
				"agent", r.UserAgent())
		})
	}
}
