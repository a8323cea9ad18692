package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/gyanbhambhani/rltr/internal/model"
)

// ErrNotFound is returned when an entity does not exist for the caller's
// tenant. A row owned by another tenant reports the same error, so existence
// never leaks across tenants.
var ErrNotFound = errors.New("record not found")

// Store exposes typed persistence operations over the CRM entities. Every
// tenant-owned query goes through the tenant scope so no call site can forget
// the org_id predicate.
type Store struct {
	db *gorm.DB
}

// New creates a Store on top of an open database handle
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle for health checks and migrations
func (s *Store) DB() *gorm.DB {
	return s.db
}

// tenant returns a query scoped to a single org. This is the only place the
// isolation predicate is written.
func (s *Store) tenant(orgID string) *gorm.DB {
	return s.db.Where("org_id = ?", orgID)
}

// AllModels lists every entity for auto-migration
func AllModels() []interface{} {
	return []interface{}{
		&model.Org{},
		&model.User{},
		&model.Contact{},
		&model.Thread{},
		&model.Message{},
		&model.Property{},
	}
}

// translateErr maps GORM's not-found sentinel to the store's own
func translateErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
