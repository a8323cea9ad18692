package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/gyanbhambhani/rltr/internal/middleware"
	"github.com/gyanbhambhani/rltr/internal/store"
	"github.com/gyanbhambhani/rltr/pkg/jwtutil"
	"github.com/gyanbhambhani/rltr/pkg/logger"
	"github.com/gyanbhambhani/rltr/prometheus"
)

// Scopes understood by the API
const (
	ScopeReadProperty  = "read:property"
	ScopeWriteProperty = "write:property"
)

// AuthHandler serves login and profile endpoints
type AuthHandler struct {
	store   *store.Store
	jwtUtil *jwtutil.JWTUtil
}

// NewAuthHandler creates an auth handler
func NewAuthHandler(s *store.Store, jwtUtil *jwtutil.JWTUtil) *AuthHandler {
	return &AuthHandler{store: s, jwtUtil: jwtUtil}
}

// LoginRequest is the body for POST /auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the serialized user profile
type UserResponse struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	OrgID   string `json:"org_id"`
	IsAdmin bool   `json:"is_admin"`
}

// Login handles POST /auth/login: verifies credentials and issues a bearer
// token scoped by the user's role. Admins get write access to properties,
// everyone else read-only.
func (h *AuthHandler) Login(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.LoginCounter.Inc()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "invalid request body"})
	}
	if req.Email == "" || req.Password == "" {
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "email and password are required"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	user, err := h.store.GetUserByEmail(c.Request().Context(), req.Email)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Error("Failed to look up user", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
		}
		log.Warn("Login for unknown email", zap.String("email", req.Email))
		prometheus.RecordAuthError("user_not_found")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		log.Warn("Invalid password", zap.String("email", req.Email))
		prometheus.RecordAuthError("invalid_password")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	scopes := []string{ScopeReadProperty}
	if user.IsAdmin {
		scopes = append(scopes, ScopeWriteProperty)
	}

	token, err := h.jwtUtil.GenerateToken(user.ID, user.OrgID, scopes)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}

	log.Info("User logged in",
		zap.String("user_id", user.ID),
		zap.String("org_id", user.OrgID),
		zap.Bool("is_admin", user.IsAdmin))
	return c.JSON(http.StatusOK, echo.Map{
		"access_token": token,
		"token_type":   "bearer",
		"user": UserResponse{
			ID:      user.ID,
			Email:   user.Email,
			Name:    user.Name,
			OrgID:   user.OrgID,
			IsAdmin: user.IsAdmin,
		},
	})
}

// Me handles GET /auth/me for the authenticated subject
func (h *AuthHandler) Me(c echo.Context) error {
	log := logger.FromEcho(c)

	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
	}

	user, err := h.store.GetUser(c.Request().Context(), claims.OrgID, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
		}
		log.Error("Failed to load user", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load user"})
	}

	return c.JSON(http.StatusOK, UserResponse{
		ID:      user.ID,
		Email:   user.Email,
		Name:    user.Name,
		OrgID:   user.OrgID,
		IsAdmin: user.IsAdmin,
	})
}
