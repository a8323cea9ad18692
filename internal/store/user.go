package store

import (
	"context"

	"github.com/gyanbhambhani/rltr/internal/model"
)

// CreateOrg inserts a new tenant root
func (s *Store) CreateOrg(ctx context.Context, o *model.Org) error {
	o.ID = ""
	return s.db.WithContext(ctx).Create(o).Error
}

// GetOrg fetches a tenant by id
func (s *Store) GetOrg(ctx context.Context, id string) (*model.Org, error) {
	var o model.Org
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&o).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &o, nil
}

// CreateUser inserts a user into a tenant
func (s *Store) CreateUser(ctx context.Context, orgID string, u *model.User) error {
	u.ID = ""
	u.OrgID = orgID
	return s.db.WithContext(ctx).Create(u).Error
}

// GetUser fetches a user by id within the tenant
func (s *Store) GetUser(ctx context.Context, orgID, id string) (*model.User, error) {
	var u model.User
	err := s.tenant(orgID).WithContext(ctx).Where("id = ?", id).First(&u).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &u, nil
}

// GetUserByEmail looks a user up by email for login. Email is globally
// unique, so this is the one user read that is not tenant-scoped: the tenant
// is not known until the user is.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &u, nil
}
