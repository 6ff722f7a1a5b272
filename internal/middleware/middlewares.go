// Package middleware holds the Echo middleware shared by every route:
// request ids, a request-scoped logger, New Relic tracing, request logging,
// CORS, security headers, panic recovery and the global error handler.
package middleware

import (
	"github.com/deppfellow/portfolio/internal/server"
)

// Middlewares groups the middleware components so the router receives one
// value.
type Middlewares struct {
	Global          *GlobalMiddlewares
	ContextEnhancer *ContextEnhancer
	Tracing         *TracingMiddleware
}

// NewMiddlewares builds every middleware component from the server.
// Tracing degrades to a no-op when New Relic is not configured.
func NewMiddlewares(s *server.Server) *Middlewares {
	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, s.LoggerService.GetApplication()),
	}
}
