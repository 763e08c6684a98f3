// Package router wires the HTTP surface: one health check and the single
// dispatch endpoint every action goes through.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/nbolat/vidshare/internal/handler"
)

// Register mounts the routes on the provided Echo instance. The optional
// middlewares (rate limiting, response caching) apply only to the dispatch
// endpoint; the health check stays unthrottled for load balancers.
func Register(e *echo.Echo, api *handler.API, mw ...echo.MiddlewareFunc) {
	e.GET("/healthz", handler.Health)
	e.Any("/api", api.Dispatch, mw...)
}
