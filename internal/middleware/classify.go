package middleware

import (
	"net/http"
	"path"
	"regexp"
	"strings"

	"github.com/deppfellow/restaurant-backend/internal/server"
	"github.com/labstack/echo/v4"
)

type RequestClass string

const (
	ClassSpam   RequestClass = "spam"
	ClassStatic RequestClass = "static"
	ClassSystem RequestClass = "system"
	ClassAdmin  RequestClass = "admin"
	ClassPublic RequestClass = "public"
)

var (
	adminPathPattern = regexp.MustCompile(`^/api/v[0-9]+/admin(/|$)`)

	probeSegments  = map[string]struct{}{"xmlrpc": {}, "phpmyadmin": {}, "cgi-bin": {}, "actuator": {}}
	probeDotDirs   = []string{".env", ".git", ".aws"}
	probeExts      = map[string]struct{}{
		".php": {}, ".asp": {}, ".aspx": {}, ".jsp": {}, ".cgi": {},
		".env": {}, ".ini": {}, ".bak": {}, ".sql": {}, ".old": {}, ".swp": {},
	}
)

// ClassifyPath buckets a request path. Spam wins over every other class.
func ClassifyPath(p string) RequestClass {
	if isProbe(p) {
		return ClassSpam
	}

	switch {
	case strings.HasPrefix(p, "/static/"), p == "/favicon.ico", p == "/robots.txt":
		return ClassStatic
	case p == "/status", p == "/docs":
		return ClassSystem
	case adminPathPattern.MatchString(p):
		return ClassAdmin
	default:
		return ClassPublic
	}
}

func isProbe(p string) bool {
	lower := strings.ToLower(p)
	segments := strings.Split(strings.Trim(lower, "/"), "/")

	if first := segments[0]; strings.HasPrefix(first, "wp-") || first == "wordpress" {
		return true
	}
	for i, segment := range segments {
		if _, ok := probeSegments[strings.TrimSuffix(segment, path.Ext(segment))]; ok {
			return true
		}
		if segment == "phpunit" && i > 0 && segments[i-1] == "vendor" {
			return true
		}
		for _, dir := range probeDotDirs {
			if segment == dir || strings.HasPrefix(segment, dir+".") || strings.HasPrefix(segment, dir+"-") {
				return true
			}
		}
		if _, ok := probeExts[path.Ext(segment)]; ok {
			return true
		}
	}
	return false
}

type SpamMiddleware struct {
	server *server.Server
}

func NewSpamMiddleware(s *server.Server) *SpamMiddleware {
	return &SpamMiddleware{server: s}
}

// Filter must be registered with Echo#Pre so probes are dropped before
// routing, logging and tracing.
func (m *SpamMiddleware) Filter() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p := c.Request().URL.Path
			if ClassifyPath(p) != ClassSpam {
				return next(c)
			}

			m.server.Logger.Debug().
				Str("path", p).
				Str("ip", c.RealIP()).
				Msg("blocked spam path")

			if m.server.LoggerService != nil && m.server.LoggerService.GetApplication() != nil {
				m.server.LoggerService.GetApplication().RecordCustomEvent("SpamPathBlocked", map[string]interface{}{
					"path": p,
					"ip":   c.RealIP(),
				})
			}

			return c.NoContent(http.StatusNotFound)
		}
	}
}
