package store

import (
	"context"
	"strings"

	"github.com/gyanbhambhani/rltr/internal/model"
)

// Property list pagination bounds
const (
	DefaultPageSize = 25
	MaxPageSize     = 100
)

// PropertyFilter holds the optional predicates for listing properties.
// All supplied predicates are AND-combined.
type PropertyFilter struct {
	City     string // case-insensitive substring
	State    string // exact match
	Query    string // case-insensitive street substring
	MinPrice *int64
	MaxPrice *int64
	BedsMin  *float64
	BathsMin *float64
	Limit    int
	Offset   int
}

// CreateProperty inserts a listing for the tenant. org_id is always bound to
// the caller's tenant, regardless of anything in the payload.
func (s *Store) CreateProperty(ctx context.Context, orgID string, p *model.Property) error {
	p.ID = ""
	p.OrgID = orgID
	return s.db.WithContext(ctx).Create(p).Error
}

// GetProperty fetches a listing by id within the tenant
func (s *Store) GetProperty(ctx context.Context, orgID, id string) (*model.Property, error) {
	var p model.Property
	err := s.tenant(orgID).WithContext(ctx).Where("id = ?", id).First(&p).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &p, nil
}

// ListProperties returns the tenant's listings matching the filter, most
// recently updated first.
func (s *Store) ListProperties(ctx context.Context, orgID string, f PropertyFilter) ([]model.Property, error) {
	query := s.tenant(orgID).WithContext(ctx).Model(&model.Property{})

	if f.City != "" {
		query = query.Where("LOWER(city) LIKE ?", "%"+strings.ToLower(f.City)+"%")
	}
	if f.State != "" {
		query = query.Where("state = ?", f.State)
	}
	if f.MinPrice != nil {
		query = query.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		query = query.Where("price <= ?", *f.MaxPrice)
	}
	if f.BedsMin != nil {
		query = query.Where("beds >= ?", *f.BedsMin)
	}
	if f.BathsMin != nil {
		query = query.Where("baths >= ?", *f.BathsMin)
	}
	if f.Query != "" {
		query = query.Where("LOWER(street) LIKE ?", "%"+strings.ToLower(f.Query)+"%")
	}

	limit := f.Limit
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	var properties []model.Property
	err := query.Order("updated_at DESC").Offset(offset).Limit(limit).Find(&properties).Error
	return properties, err
}

// UpdateProperty applies a partial update to a listing. Only keys present in
// the fields map are touched; updated_at is refreshed by GORM.
func (s *Store) UpdateProperty(ctx context.Context, orgID, id string, fields map[string]interface{}) (*model.Property, error) {
	p, err := s.GetProperty(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		if err := s.db.WithContext(ctx).Model(p).Updates(fields).Error; err != nil {
			return nil, err
		}
		// re-read so timestamps reflect the committed row
		return s.GetProperty(ctx, orgID, id)
	}
	return p, nil
}

// GetPropertyAnyTenant fetches a listing without a tenant scope. Only the
// reindex worker uses this; it runs outside any request tenant.
func (s *Store) GetPropertyAnyTenant(ctx context.Context, id string) (*model.Property, error) {
	var p model.Property
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &p, nil
}
