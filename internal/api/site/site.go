// Package site embeds the browser client and serves it with an HTML5
// history fallback, so deep links like /reports load index.html.
package site

import (
	"embed"
	"io/fs"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

//go:embed static
var staticDir embed.FS

// FS is the client bundle with the "static" prefix stripped.
var FS fs.FS

func init() {
	FS, _ = fs.Sub(staticDir, "static")
}

var backendPrefixes = []string{"/api", "/health", "/metrics", "/swagger"}

// Middleware serves files from FS for every path not owned by the backend.
func Middleware() echo.MiddlewareFunc {
	return echomiddleware.StaticWithConfig(echomiddleware.StaticConfig{
		Root:       ".",
		Index:      "index.html",
		HTML5:      true,
		Filesystem: http.FS(FS),
		Skipper:    isBackendPath,
	})
}

func isBackendPath(c echo.Context) bool {
	p := c.Request().URL.Path
	for _, prefix := range backendPrefixes {
		if p == prefix || strings.HasPrefix(p, prefix+"/") {
			return true
		}
	}
	return false
}
