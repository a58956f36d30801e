// Package handler is the HTTP layer. Handlers bind and validate payloads,
// pull the tenant or admin context set by middleware and call services.
package handler
