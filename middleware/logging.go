package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const maxLoggedBody = 4 << 10

// RequestLogger logs every request once it completes. At debug level JSON
// request bodies are logged too, with password fields masked.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		if log.GetLevel() <= zerolog.DebugLevel && c.Request.Body != nil &&
			strings.HasPrefix(c.ContentType(), "application/json") {
			body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxLoggedBody))
			if err == nil && len(body) > 0 {
				c.Request.Body = io.NopCloser(io.MultiReader(bytes.NewReader(body), c.Request.Body))
				log.Debug().
					Str("request_id", c.GetString(ContextRequestIDKey)).
					Str("path", path).
					Str("body", MaskPasswords(body)).
					Msg("request body")
			}
		}

		c.Next()

		statusCode := c.Writer.Status()
		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Str("request_id", c.GetString(ContextRequestIDKey)).
			Msg("request completed")
	}
}

// MaskPasswords replaces the value of every JSON key containing "password"
// with "***". Bodies that are not valid JSON are not echoed.
func MaskPasswords(body []byte) string {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return "[unparseable body]"
	}
	out, err := json.Marshal(maskValue(v))
	if err != nil {
		return "[unparseable body]"
	}
	return string(out)
}

func maskValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			if strings.Contains(strings.ToLower(k), "password") {
				t[k] = "***"
				continue
			}
			t[k] = maskValue(val)
		}
		return t
	case []any:
		for i := range t {
			t[i] = maskValue(t[i])
		}
		return t
	default:
		return v
	}
}
