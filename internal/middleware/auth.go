package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/gyanbhambhani/rltr/pkg/jwtutil"
	"github.com/gyanbhambhani/rltr/pkg/logger"
	"github.com/gyanbhambhani/rltr/prometheus"
)

const claimsContextKey = "claims"

// Auth returns a middleware that validates the bearer token and stores the
// claims on the context. Every failure mode answers 401; the distinction
// only shows up in logs.
func Auth(jwtUtil *jwtutil.JWTUtil) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromEcho(c)

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				log.Warn("Missing Authorization header")
				prometheus.RecordAuthError("missing_header")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				log.Warn("Invalid Authorization header format")
				prometheus.RecordAuthError("bad_header")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authorization format, expected Bearer token"})
			}

			claims, err := jwtUtil.ValidateToken(parts[1])
			if err != nil {
				log.Warn("Invalid or expired token", zap.Error(err))
				prometheus.RecordAuthError("invalid_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
			}

			c.Set(claimsContextKey, claims)
			c.Set("org_id", claims.OrgID)
			log.Debug("Token validated",
				zap.String("sub", claims.Subject),
				zap.String("org_id", claims.OrgID))

			return next(c)
		}
	}
}

// RequireScopes returns a middleware that rejects requests whose token does
// not carry every required scope. Runs after Auth, before any persistence
// access.
func RequireScopes(required ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFromContext(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
			}
			if !claims.HasScopes(required...) {
				logger.FromEcho(c).Warn("Insufficient scope",
					zap.Strings("required", required),
					zap.Strings("granted", claims.Scopes))
				return c.JSON(http.StatusForbidden, echo.Map{"error": "insufficient scope"})
			}
			return next(c)
		}
	}
}

// ClaimsFromContext retrieves the validated token claims from the context
func ClaimsFromContext(c echo.Context) (*jwtutil.AccessClaims, bool) {
	claims, ok := c.Get(claimsContextKey).(*jwtutil.AccessClaims)
	return claims, ok
}
