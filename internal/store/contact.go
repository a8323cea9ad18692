package store

import (
	"context"

	"github.com/gyanbhambhani/rltr/internal/model"
)

// ContactFilter holds the optional predicates for listing contacts
type ContactFilter struct {
	Tag    string // contacts carrying this tag
	Limit  int
	Offset int
}

// CreateContact inserts a contact for the tenant
func (s *Store) CreateContact(ctx context.Context, orgID string, c *model.Contact) error {
	c.ID = ""
	c.OrgID = orgID
	if c.Emails == nil {
		c.Emails = model.StringList{}
	}
	if c.Phones == nil {
		c.Phones = model.StringList{}
	}
	if c.Tags == nil {
		c.Tags = model.StringList{}
	}
	return s.db.WithContext(ctx).Create(c).Error
}

// GetContact fetches a contact by id within the tenant
func (s *Store) GetContact(ctx context.Context, orgID, id string) (*model.Contact, error) {
	var c model.Contact
	err := s.tenant(orgID).WithContext(ctx).Where("id = ?", id).First(&c).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &c, nil
}

// ListContacts returns the tenant's contacts, most recently updated first.
// Tag filtering matches against the JSON-encoded tags column.
func (s *Store) ListContacts(ctx context.Context, orgID string, f ContactFilter) ([]model.Contact, error) {
	query := s.tenant(orgID).WithContext(ctx).Model(&model.Contact{})
	if f.Tag != "" {
		query = query.Where("tags LIKE ?", "%\""+f.Tag+"\"%")
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

	var contacts []model.Contact
	err := query.Order("updated_at DESC").Offset(offset).Limit(limit).Find(&contacts).Error
	return contacts, err
}

// UpdateContact applies a partial update to a contact
func (s *Store) UpdateContact(ctx context.Context, orgID, id string, fields map[string]interface{}) (*model.Contact, error) {
	c, err := s.GetContact(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		if err := s.db.WithContext(ctx).Model(c).Updates(fields).Error; err != nil {
			return nil, err
		}
		return s.GetContact(ctx, orgID, id)
	}
	return c, nil
}
