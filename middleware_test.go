package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiddlewareRouter(buf *bytes.Buffer) *gin.Engine {
	log := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	serverError := func(c *gin.Context) { c.String(http.StatusInternalServerError, "server error page") }

	r := gin.New()
	r.Use(
		requestLogger(log, NewSessions("test-secret-key-0123456789")),
		recovery(log, serverError),
		errorPages(serverError),
	)
	r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/static/app.css", func(c *gin.Context) { c.String(http.StatusOK, "body{}") })
	r.GET("/fail", func(c *gin.Context) { _ = c.Error(errors.New("lookup failed")) })
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	r.GET("/written", func(c *gin.Context) {
		c.String(http.StatusOK, "partial")
		_ = c.Error(errors.New("after write"))
	})
	return r
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	r := newMiddlewareRouter(&buf)

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.RemoteAddr = "203.0.113.7:4321"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	requestID := w.Header().Get("X-Request-ID")
	require.Len(t, requestID, 36)
	out := buf.String()
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, "status=200")
	assert.Contains(t, out, "request_id="+requestID)
	assert.NotContains(t, out, "203.0.113.7")
}

func TestRequestLogger_Levels(t *testing.T) {
	tests := []struct {
		path  string
		level string
	}{
		{"/static/app.css", "level=DEBUG"},
		{"/missing", "level=WARN"},
		{"/fail", "level=ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			var buf bytes.Buffer
			r := newMiddlewareRouter(&buf)

			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Contains(t, buf.String(), tt.level)
		})
	}
}

func TestErrorPages(t *testing.T) {
	r := newMiddlewareRouter(&bytes.Buffer{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "server error page", w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/written", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "partial", w.Body.String())
}

func TestRecovery(t *testing.T) {
	var buf bytes.Buffer
	r := newMiddlewareRouter(&buf)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "server error page", w.Body.String())
	assert.Contains(t, buf.String(), "Recovered from panic")
	assert.Contains(t, buf.String(), "boom")
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	done := make(chan error, 1)
	go func() {
		done <- serve(ctx, "127.0.0.1:0", http.NotFoundHandler(), log)
	}()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
