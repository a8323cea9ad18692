package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/gyanbhambhani/rltr/pkg/database"
)

// HealthHandler serves the liveness and readiness probes
type HealthHandler struct {
	db *gorm.DB
}

// NewHealthHandler creates a health handler over the database handle
func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Live handles GET /health/live
func (h *HealthHandler) Live(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

// Ready handles GET /health/ready. A failed database ping degrades to
// {"ok": false} with HTTP 200; the probe contract is a boolean, not a 5xx.
func (h *HealthHandler) Ready(c echo.Context) error {
	if err := database.Ping(h.db); err != nil {
		return c.JSON(http.StatusOK, echo.Map{"ok": false})
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}
