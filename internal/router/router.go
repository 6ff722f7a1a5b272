// Package router builds the Echo instance: global middleware, system
// routes, the record API under /api and the embedded client at /.
package router

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/deppfellow/portfolio/internal/handler"
	"github.com/deppfellow/portfolio/internal/middleware"
	"github.com/deppfellow/portfolio/internal/server"
	"github.com/deppfellow/portfolio/web"
)

// NewRouter wires middleware and routes.
func NewRouter(s *server.Server, h *handler.Handlers) (*echo.Echo, error) {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h)

	api := router.Group("/api")
	registerRecordRoutes(api, h.Education)
	registerRecordRoutes(api, h.Experience)
	registerRecordRoutes(api, h.Skills)

	if err := registerFrontend(router); err != nil {
		return nil, err
	}

	return router, nil
}

// registerFrontend serves the client for every path that is not an API or
// system route. Unknown paths fall back to index.html.
func registerFrontend(router *echo.Echo) error {
	files, err := web.Static()
	if err != nil {
		return err
	}

	router.Use(echoMiddleware.StaticWithConfig(echoMiddleware.StaticConfig{
		Root:       ".",
		Filesystem: http.FS(files),
		HTML5:      true,
		Skipper: func(c echo.Context) bool {
			path := c.Request().URL.Path
			return strings.HasPrefix(path, "/api") || path == "/status"
		},
	}))

	return nil
}
