package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyanbhambhani/rltr/pkg/jwtutil"
	"github.com/gyanbhambhani/rltr/prometheus"
)

func TestMain(m *testing.M) {
	prometheus.InitMetrics("middleware_test")
	os.Exit(m.Run())
}

func newAuthedEcho(jwtUtil *jwtutil.JWTUtil, scopes ...string) *echo.Echo {
	e := echo.New()
	group := e.Group("/protected", Auth(jwtUtil))
	group.GET("", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"ok": true})
	}, RequireScopes(scopes...))
	return e
}

func do(e *echo.Echo, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuthRejectsMissingAndMalformedHeaders(t *testing.T) {
	jwtUtil := jwtutil.NewJWTUtil(&jwtutil.JWTConfig{SigningKey: "k", ExpirationMinutes: 5})
	e := newAuthedEcho(jwtUtil)

	assert.Equal(t, http.StatusUnauthorized, do(e, "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(e, "Bearer").Code)
	assert.Equal(t, http.StatusUnauthorized, do(e, "Basic abc").Code)
	assert.Equal(t, http.StatusUnauthorized, do(e, "Bearer garbage").Code)
}

func TestAuthRejectsForeignSignature(t *testing.T) {
	issuer := jwtutil.NewJWTUtil(&jwtutil.JWTConfig{SigningKey: "issuer-key", ExpirationMinutes: 5})
	token, err := issuer.GenerateToken("user-1", "org-1", []string{"read:property"})
	require.NoError(t, err)

	verifier := jwtutil.NewJWTUtil(&jwtutil.JWTConfig{SigningKey: "other-key", ExpirationMinutes: 5})
	e := newAuthedEcho(verifier)
	assert.Equal(t, http.StatusUnauthorized, do(e, "Bearer "+token).Code)
}

func TestRequireScopesSubsetCheck(t *testing.T) {
	jwtUtil := jwtutil.NewJWTUtil(&jwtutil.JWTConfig{SigningKey: "k", ExpirationMinutes: 5})
	token, err := jwtUtil.GenerateToken("user-1", "org-1", []string{"read:property"})
	require.NoError(t, err)

	// granted scope passes
	e := newAuthedEcho(jwtUtil, "read:property")
	assert.Equal(t, http.StatusOK, do(e, "Bearer "+token).Code)

	// missing scope is 403, not 401: the token itself is fine
	e = newAuthedEcho(jwtUtil, "write:property")
	assert.Equal(t, http.StatusForbidden, do(e, "Bearer "+token).Code)

	// both scopes required, one granted
	e = newAuthedEcho(jwtUtil, "read:property", "write:property")
	assert.Equal(t, http.StatusForbidden, do(e, "Bearer "+token).Code)
}

func TestClaimsStoredOnContext(t *testing.T) {
	jwtUtil := jwtutil.NewJWTUtil(&jwtutil.JWTConfig{SigningKey: "k", ExpirationMinutes: 5})
	token, err := jwtUtil.GenerateToken("user-1", "org-1", []string{"read:property"})
	require.NoError(t, err)

	e := echo.New()
	e.GET("/whoami", func(c echo.Context) error {
		claims, ok := ClaimsFromContext(c)
		require.True(t, ok)
		return c.JSON(http.StatusOK, echo.Map{
			"sub":    claims.Subject,
			"org_id": claims.OrgID,
		})
	}, Auth(jwtUtil))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "org-1")
	assert.Contains(t, rec.Body.String(), "user-1")
}
