package router_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gamma-omg/speaklexi/internal/pkg/router"
	"github.com/stretchr/testify/assert"
)

func TestHandleFunc(t *testing.T) {
	tbl := []struct {
		pattern string
		method  string
		path    string
		status  int
		body    string
	}{
		{"/hello", "GET", "/hello", http.StatusOK, "hello"},
		{"hello", "GET", "/hello", http.StatusOK, "hello"},
		{"GET /lessons/{id}", "GET", "/lessons/12", http.StatusOK, "12"},
		{"POST lessons", "POST", "/lessons", http.StatusOK, "POST"},
		{"POST /lessons", "GET", "/lessons", http.StatusMethodNotAllowed, ""},
		{"/hello", "GET", "/missing", http.StatusNotFound, ""},
	}

	for i, c := range tbl {
		t.Run(fmt.Sprintf("case_%d", i), func(t *testing.T) {
			r := router.New()
			r.HandleFunc(c.pattern, func(w http.ResponseWriter, r *http.Request) {
				switch {
				case r.PathValue("id") != "":
					fmt.Fprint(w, r.PathValue("id"))
				case r.Method == http.MethodPost:
					fmt.Fprint(w, "POST")
				default:
					fmt.Fprint(w, "hello")
				}
			})

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(c.method, c.path, nil))

			assert.Equal(t, c.status, rec.Code)
			if c.body != "" {
				assert.Equal(t, c.body, rec.Body.String())
			}
		})
	}
}

func TestSubRouter(t *testing.T) {
	tbl := []struct {
		mountPoint   string
		relativePath string
		path         string
		prefix       string
	}{
		{"/api", "/hello", "/api/hello", "/api"},
		{"v1", "/hello/", "/v1/hello/world", "/v1"},
		{"/long/prefix/", "hello", "/long/prefix/hello", "/long/prefix"},
	}

	for i, c := range tbl {
		t.Run(fmt.Sprintf("case_%d", i), func(t *testing.T) {
			r := router.New()
			sub := r.SubRouter(c.mountPoint)
			assert.Equal(t, c.prefix, sub.Prefix())

			sub.HandleFunc(c.relativePath, func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, "hello from subrouter")
			})

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest("GET", c.path, nil))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "hello from subrouter", rec.Body.String())
		})
	}
}

func TestSubRouter_PanicsWhenEmpty(t *testing.T) {
	r := router.New()
	assert.Panics(t, func() {
		r.SubRouter("")
	})
}

func TestSubRouter_OwnMiddleware(t *testing.T) {
	r := router.New()
	sub := r.SubRouter("/api")
	sub.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Sub", "yes")
			next.ServeHTTP(w, r)
		})
	})
	sub.HandleFunc("/a", func(w http.ResponseWriter, r *http.Request) {})
	r.HandleFunc("/b", func(w http.ResponseWriter, r *http.Request) {})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/api/a", nil))
	assert.Equal(t, "yes", rec.Header().Get("X-Sub"))

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/b", nil))
	assert.Empty(t, rec.Header().Get("X-Sub"))
}

func TestMiddleware_Order(t *testing.T) {
	r := router.New()

	var calls []string
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls = append(calls, "first")
			next.ServeHTTP(w, r)
		})
	})
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls = append(calls, "second")
			next.ServeHTTP(w, r)
		})
	})

	r.HandleFunc("/test", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, strings.Join(calls, ","))
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/test", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "first,second", rec.Body.String())
}
