package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDKey = "request_id"

// Paths that are logged at debug level only
var quietPrefixes = []string{"/static/", "/favicon", "/healthz"}

// requestLogger tags each request with an id and logs its outcome. Client
// addresses are hashed before they reach the log.
func requestLogger(log *slog.Logger, sessions *Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.New().String()
		c.Set(requestIDKey, requestID)
		c.Header("X-Request-ID", requestID)

		c.Next()

		path := c.Request.URL.Path
		status := c.Writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"client", sessions.hashClientIP(c.ClientIP()),
			requestIDKey, requestID,
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "errors", c.Errors.String())
		}

		switch {
		case status >= 500:
			log.Error("Request failed with server error", attrs...)
		case status >= 400:
			log.Warn("Request failed with client error", attrs...)
		case isQuiet(path):
			log.Debug("Request completed", attrs...)
		default:
			log.Info("Request completed", attrs...)
		}
	}
}

func isQuiet(path string) bool {
	for _, prefix := range quietPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// recovery turns a panicking handler into the server error page.
func recovery(log *slog.Logger, serverError gin.HandlerFunc) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		log.Error("Recovered from panic",
			"error", fmt.Sprint(recovered),
			"path", c.Request.URL.Path,
			requestIDKey, c.GetString(requestIDKey),
		)
		_ = c.Error(fmt.Errorf("panic: %v", recovered))
		serverError(c)
		c.Abort()
	})
}

// errorPages renders the server error page for handlers that recorded an
// error on the context without writing a response.
func errorPages(serverError gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			serverError(c)
		}
	}
}
