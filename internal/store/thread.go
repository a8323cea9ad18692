package store

import (
	"context"

	"github.com/gyanbhambhani/rltr/internal/model"
)

// ThreadFilter holds the optional predicates for listing threads
type ThreadFilter struct {
	Status    string
	ContactID string
	Channel   string
	Limit     int
	Offset    int
}

// CreateThread inserts a thread for the tenant. A contact reference, when
// set, must resolve within the same tenant.
func (s *Store) CreateThread(ctx context.Context, orgID string, t *model.Thread) error {
	if t.ContactID != nil {
		if _, err := s.GetContact(ctx, orgID, *t.ContactID); err != nil {
			return err
		}
	}
	t.ID = ""
	t.OrgID = orgID
	if t.Status == "" {
		t.Status = model.ThreadStatusOpen
	}
	return s.db.WithContext(ctx).Create(t).Error
}

// GetThread fetches a thread by id within the tenant
func (s *Store) GetThread(ctx context.Context, orgID, id string) (*model.Thread, error) {
	var t model.Thread
	err := s.tenant(orgID).WithContext(ctx).Where("id = ?", id).First(&t).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &t, nil
}

// ListThreads returns the tenant's threads, most recently updated first
func (s *Store) ListThreads(ctx context.Context, orgID string, f ThreadFilter) ([]model.Thread, error) {
	query := s.tenant(orgID).WithContext(ctx).Model(&model.Thread{})
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.ContactID != "" {
		query = query.Where("contact_id = ?", f.ContactID)
	}
	if f.Channel != "" {
		query = query.Where("channel = ?", f.Channel)
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

	var threads []model.Thread
	err := query.Order("updated_at DESC").Offset(offset).Limit(limit).Find(&threads).Error
	return threads, err
}

// UpdateThread applies a partial update to a thread
func (s *Store) UpdateThread(ctx context.Context, orgID, id string, fields map[string]interface{}) (*model.Thread, error) {
	t, err := s.GetThread(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		if err := s.db.WithContext(ctx).Model(t).Updates(fields).Error; err != nil {
			return nil, err
		}
		return s.GetThread(ctx, orgID, id)
	}
	return t, nil
}
