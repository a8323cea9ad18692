package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/gyanbhambhani/rltr/internal/model"
	"github.com/gyanbhambhani/rltr/internal/store"
	"github.com/gyanbhambhani/rltr/pkg/logger"
	"github.com/gyanbhambhani/rltr/prometheus"
)

// PropertyHandler serves the property resource endpoints
type PropertyHandler struct {
	store *store.Store
}

// NewPropertyHandler creates a property handler on top of the store
func NewPropertyHandler(s *store.Store) *PropertyHandler {
	return &PropertyHandler{store: s}
}

// PropertyCreateRequest defines the body for creating a listing. The address
// fields are required; everything else is optional.
type PropertyCreateRequest struct {
	Street       string   `json:"street"`
	City         string   `json:"city"`
	State        string   `json:"state"`
	PostalCode   string   `json:"postal_code"`
	Lat          *float64 `json:"lat"`
	Lon          *float64 `json:"lon"`
	Price        *int64   `json:"price"`
	Beds         *float64 `json:"beds"`
	Baths        *float64 `json:"baths"`
	Sqft         *int     `json:"sqft"`
	LotSqft      *int     `json:"lot_sqft"`
	YearBuilt    *int     `json:"year_built"`
	PropertyType *string  `json:"property_type"`
	Status       *string  `json:"status"`
	Dom          *int     `json:"dom"`
	MlsID        *string  `json:"mls_id"`
}

// PropertyUpdateRequest defines the body for PATCH. Only price, status and
// dom are mutable through this endpoint; any other key in the payload is
// dropped at bind time.
type PropertyUpdateRequest struct {
	Price  *int64  `json:"price"`
	Status *string `json:"status"`
	Dom    *int    `json:"dom"`
}

// Create handles POST /properties
func (h *PropertyHandler) Create(c echo.Context) error {
	log := logger.FromEcho(c)
	orgID := c.Get("org_id").(string)

	var req PropertyCreateRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid property payload", zap.Error(err))
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "invalid request body"})
	}
	if req.Street == "" || req.City == "" || req.State == "" || req.PostalCode == "" {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "street, city, state and postal_code are required"})
	}
	if req.Price != nil && *req.Price < 0 {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "price must not be negative"})
	}

	property := model.Property{
		Street:       req.Street,
		City:         req.City,
		State:        req.State,
		PostalCode:   req.PostalCode,
		Lat:          req.Lat,
		Lon:          req.Lon,
		Price:        req.Price,
		Beds:         req.Beds,
		Baths:        req.Baths,
		Sqft:         req.Sqft,
		LotSqft:      req.LotSqft,
		YearBuilt:    req.YearBuilt,
		PropertyType: req.PropertyType,
		Status:       req.Status,
		Dom:          req.Dom,
		MlsID:        req.MlsID,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if err := h.store.CreateProperty(c.Request().Context(), orgID, &property); err != nil {
		log.Error("Failed to create property", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create property"})
	}

	prometheus.RecordPropertyOperation("create")
	log.Info("Property created",
		zap.String("property_id", property.ID),
		zap.String("city", property.City),
		zap.String("state", property.State))
	return c.JSON(http.StatusOK, property)
}

// List handles GET /properties with the optional filter predicates
func (h *PropertyHandler) List(c echo.Context) error {
	log := logger.FromEcho(c)
	orgID := c.Get("org_id").(string)

	filter := store.PropertyFilter{
		City:   c.QueryParam("city"),
		State:  c.QueryParam("state"),
		Query:  c.QueryParam("q"),
		Limit:  store.DefaultPageSize,
		Offset: 0,
	}

	var parseErr error
	filter.MinPrice, parseErr = queryInt64(c, "min_price")
	if parseErr == nil {
		filter.MaxPrice, parseErr = queryInt64(c, "max_price")
	}
	if parseErr == nil {
		filter.BedsMin, parseErr = queryFloat(c, "beds_min")
	}
	if parseErr == nil {
		filter.BathsMin, parseErr = queryFloat(c, "baths_min")
	}
	if parseErr != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": parseErr.Error()})
	}
	if (filter.MinPrice != nil && *filter.MinPrice < 0) || (filter.MaxPrice != nil && *filter.MaxPrice < 0) {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "price bounds must not be negative"})
	}

	if v := c.QueryParam("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 || limit > store.MaxPageSize {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "limit must be between 0 and 100"})
		}
		filter.Limit = limit
	}
	if v := c.QueryParam("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil || offset < 0 {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "offset must not be negative"})
		}
		filter.Offset = offset
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	properties, err := h.store.ListProperties(c.Request().Context(), orgID, filter)
	if err != nil {
		log.Error("Failed to list properties", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list properties"})
	}

	prometheus.RecordPropertyOperation("list")
	log.Info("Properties listed", zap.Int("count", len(properties)))
	return c.JSON(http.StatusOK, properties)
}

// Get handles GET /properties/:id
func (h *PropertyHandler) Get(c echo.Context) error {
	log := logger.FromEcho(c)
	orgID := c.Get("org_id").(string)
	id := c.Param("id")

	defer prometheus.TrackDBOperation("query")(time.Now())
	property, err := h.store.GetProperty(c.Request().Context(), orgID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
		}
		log.Error("Failed to get property", zap.String("property_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to get property"})
	}

	prometheus.RecordPropertyOperation("get")
	return c.JSON(http.StatusOK, property)
}

// Update handles PATCH /properties/:id
func (h *PropertyHandler) Update(c echo.Context) error {
	log := logger.FromEcho(c)
	orgID := c.Get("org_id").(string)
	id := c.Param("id")

	var req PropertyUpdateRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid property update payload", zap.Error(err))
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "invalid request body"})
	}
	if req.Price != nil && *req.Price < 0 {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "price must not be negative"})
	}
	if req.Dom != nil && *req.Dom < 0 {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "dom must not be negative"})
	}

	// exclude-unset semantics: only keys present in the payload are applied
	fields := map[string]interface{}{}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.Dom != nil {
		fields["dom"] = *req.Dom
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	property, err := h.store.UpdateProperty(c.Request().Context(), orgID, id, fields)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
		}
		log.Error("Failed to update property", zap.String("property_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update property"})
	}

	prometheus.RecordPropertyOperation("update")
	log.Info("Property updated", zap.String("property_id", id))
	return c.JSON(http.StatusOK, property)
}

func queryInt64(c echo.Context, name string) (*int64, error) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil, errors.New(name + " must be an integer")
	}
	return &n, nil
}

func queryFloat(c echo.Context, name string) (*float64, error) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, errors.New(name + " must be a number")
	}
	return &f, nil
}
