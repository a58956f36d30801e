package middleware

import (
	"github.com/deppfellow/restaurant-backend/internal/server"
	"github.com/deppfellow/restaurant-backend/internal/service"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Middlewares groups every middleware component so the router receives
// one value.
type Middlewares struct {
	Global          *GlobalMiddlewares
	Spam            *SpamMiddleware
	Auth            *AuthMiddleware
	Admin           *AdminMiddleware
	Tenant          *TenantMiddleware
	ContextEnhancer *ContextEnhancer
	Tracing         *TracingMiddleware
	RateLimit       *RateLimitMiddleware
}

func NewMiddlewares(s *server.Server, services *service.Services) *Middlewares {
	var nrApp *newrelic.Application
	if s.LoggerService != nil {
		nrApp = s.LoggerService.GetApplication()
	}

	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		Spam:            NewSpamMiddleware(s),
		Auth:            NewAuthMiddleware(s),
		Admin:           NewAdminMiddleware(s, services.Admin),
		Tenant:          NewTenantMiddleware(s, services.Tenant),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, nrApp),
		RateLimit:       NewRateLimitMiddleware(s),
	}
}
