package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RequestLogger logs every request once it has been served.
func RequestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		var event *zerolog.Event
		switch {
		case status >= http.StatusInternalServerError:
			event = logger.Error()
		case status >= http.StatusBadRequest:
			event = logger.Warn()
		default:
			event = logger.Info()
		}
		if userID, ok := c.Get(userIDKey); ok {
			event = event.Interface("userID", userID)
		}
		if len(c.Errors) > 0 {
			event = event.Str("errors", c.Errors.String())
		}
		event.Str("method", c.Request.Method).
			Str("path", path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("clientIP", c.ClientIP()).
			Msg("Request served")
	}
}

// CORS allows the configured browser origins with credentials so the session
// cookie is sent. "*" allows any origin, without credentials.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	config := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-CSRFToken"},
		MaxAge:       24 * time.Hour,
	}
	for _, o := range allowedOrigins {
		switch o = strings.TrimRight(strings.TrimSpace(o), "/"); o {
		case "":
		case "*":
			config.AllowAllOrigins = true
		default:
			config.AllowOrigins = append(config.AllowOrigins, o)
		}
	}

	switch {
	case config.AllowAllOrigins:
		config.AllowOrigins = nil
	case len(config.AllowOrigins) == 0:
		// Same-origin only.
		return func(c *gin.Context) { c.Next() }
	default:
		config.AllowCredentials = true
	}
	return cors.New(config)
}
