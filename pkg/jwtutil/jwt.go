package jwtutil

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// JWTConfig holds token signing configuration
type JWTConfig struct {
	SigningKey        string
	ExpirationMinutes int
}

// AccessClaims represents the bearer token payload: the authenticated
// subject, the tenant it belongs to, and the scopes it was granted.
type AccessClaims struct {
	OrgID  string   `json:"org_id"`
	Scopes []string `json:"scopes"`
	jwt.RegisteredClaims
}

// HasScopes reports whether every required scope is present in the claims.
// Exact string membership only, no wildcard or hierarchy matching.
func (c *AccessClaims) HasScopes(required ...string) bool {
	granted := make(map[string]struct{}, len(c.Scopes))
	for _, s := range c.Scopes {
		granted[s] = struct{}{}
	}
	for _, s := range required {
		if _, ok := granted[s]; !ok {
			return false
		}
	}
	return true
}

// JWTUtil is a utility for JWT token operations
type JWTUtil struct {
	config *JWTConfig
}

// NewJWTUtil creates a new JWT utility with the given configuration
func NewJWTUtil(config *JWTConfig) *JWTUtil {
	return &JWTUtil{
		config: config,
	}
}

// GenerateToken creates a signed access token for the subject, bound to the
// given tenant and scope set. Expiry is issue time plus the configured TTL.
func (j *JWTUtil) GenerateToken(subject, orgID string, scopes []string) (string, error) {
	if j.config == nil {
		return "", errors.New("JWT configuration not provided")
	}

	now := time.Now()
	claims := AccessClaims{
		OrgID:  orgID,
		Scopes: scopes,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(j.config.ExpirationMinutes) * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.config.SigningKey))
}

// ValidateToken validates and parses an access token. The error reported
// distinguishes expiry from signature problems for logging; the HTTP layer
// answers 401 regardless.
func (j *JWTUtil) ValidateToken(tokenString string) (*AccessClaims, error) {
	if j.config == nil {
		return nil, errors.New("JWT configuration not provided")
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&AccessClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(j.config.SigningKey), nil
		},
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*AccessClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Subject == "" || claims.OrgID == "" {
		return nil, errors.New("token missing subject or org_id")
	}

	return claims, nil
}
