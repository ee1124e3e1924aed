package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"folio/internal/constants"

	"github.com/gin-gonic/gin"
)

// Site is the page chrome shared by every template.
type Site struct {
	Title       string
	Description string
	CopyAckMS   int64
}

// SiteMiddleware adds the site settings to the context for the templates.
func SiteMiddleware(site Site) gin.HandlerFunc {
	if site.CopyAckMS == 0 {
		site.CopyAckMS = constants.CopyAckDuration.Milliseconds()
	}
	return func(c *gin.Context) {
		c.Set(constants.ContextKeySite, site)
		c.Next()
	}
}

// RequestLogger writes one structured line per request, at WARN for 4xx
// and ERROR for 5xx.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		} else if status >= http.StatusBadRequest {
			level = slog.LevelWarn
		}

		attrs := []any{
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.String("ip", c.ClientIP()),
			slog.Int("status", status),
			slog.Int64("latency_ms", time.Since(start).Milliseconds()),
			slog.String("user_agent", c.Request.UserAgent()),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("error", c.Errors.String()))
		}
		logger.Log(c.Request.Context(), level, "request completed", attrs...)
	}
}

// render is a helper function to render templates with common data.
func render(c *gin.Context, status int, templateName string, data gin.H) {
	if site, exists := c.Get(constants.ContextKeySite); exists {
		if _, ok := data["Site"]; !ok {
			data["Site"] = site
		}
	}
	c.HTML(status, templateName, data)
}

// renderError shows error.html and records err for the request log.
func renderError(c *gin.Context, err error, message string) {
	_ = c.Error(err)
	render(c, http.StatusInternalServerError, "error.html", gin.H{
		"error": message,
	})
}
