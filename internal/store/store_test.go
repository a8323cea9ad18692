package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/gyanbhambhani/rltr/internal/model"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(AllModels()...))
	return New(db)
}

func seedOrg(t *testing.T, s *Store, name string) *model.Org {
	t.Helper()
	org := &model.Org{Name: name}
	require.NoError(t, s.CreateOrg(context.Background(), org))
	require.NotEmpty(t, org.ID)
	return org
}

func strPtr(v string) *string     { return &v }
func int64Ptr(v int64) *int64     { return &v }
func floatPtr(v float64) *float64 { return &v }
