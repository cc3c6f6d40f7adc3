package http

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// APIKeyHeader carries the caller's API key on every /api request.
	APIKeyHeader = "X-API-KEY"

	// CorrelationIDHeader threads a request through logs, audit events and
	// ERP attempts. Generated when the caller does not supply one.
	CorrelationIDHeader = "X-Correlation-Id"

	// correlationIDContextKey is where the middleware stashes the id for
	// handlers.
	correlationIDContextKey = "correlationID"

	correlationIDLength = 12
)

// APIKeyMiddleware rejects requests whose X-API-KEY header does not match the
// configured key. The health endpoint stays open for probes.
func APIKeyMiddleware(apiKey string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if ctx.Path() == "/health" {
				return next(ctx)
			}

			provided := ctx.Request().Header.Get(APIKeyHeader)
			if provided == "" {
				return ctx.JSON(http.StatusUnauthorized, Error{
					Code:    http.StatusUnauthorized,
					Message: "API key is missing. Provide the " + APIKeyHeader + " header",
				})
			}

			if subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
				return ctx.JSON(http.StatusUnauthorized, Error{
					Code:    http.StatusUnauthorized,
					Message: "API key is invalid",
				})
			}

			return next(ctx)
		}
	}
}

// CorrelationIDMiddleware reads the caller's correlation id or generates a
// short one, echoes it on the response, and stores it in the request context
// for handlers to thread into commands.
func CorrelationIDMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			correlationID := strings.TrimSpace(ctx.Request().Header.Get(CorrelationIDHeader))
			if correlationID == "" {
				correlationID = newCorrelationID()
			}

			ctx.Set(correlationIDContextKey, correlationID)
			ctx.Response().Header().Set(CorrelationIDHeader, correlationID)

			return next(ctx)
		}
	}
}

// newCorrelationID returns the first 12 hex characters of a fresh UUID, short
// enough to read in logs while unique enough per request.
func newCorrelationID() string {
	compact := strings.ReplaceAll(uuid.NewString(), "-", "")
	return compact[:correlationIDLength]
}

// correlationID retrieves the id stashed by CorrelationIDMiddleware, or an
// empty string when the middleware is not installed.
func correlationID(ctx echo.Context) string {
	if id, ok := ctx.Get(correlationIDContextKey).(string); ok {
		return id
	}
	return ""
}
