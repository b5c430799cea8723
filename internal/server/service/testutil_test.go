package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/awsomeshop/awsomeshop/internal/server/db"
	"github.com/awsomeshop/awsomeshop/internal/server/models"
	"github.com/awsomeshop/awsomeshop/internal/server/repo"
)

func newTestDB(t *testing.T) (*gorm.DB, *repo.Repos) {
	t.Helper()

	gdb, err := db.Open(context.Background(), "", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	return gdb, repo.New(gdb)
}

func seedUser(t *testing.T, gdb *gorm.DB, u models.User) models.User {
	t.Helper()

	if u.PasswordHash == "" {
		hash, err := HashPassword("secret123")
		require.NoError(t, err)
		u.PasswordHash = hash
	}
	if u.Role == "" {
		u.Role = "employee"
	}
	if u.PreferredLanguage == "" {
		u.PreferredLanguage = "zh"
	}
	require.NoError(t, gdb.Create(&u).Error)
	return u
}

func seedProduct(t *testing.T, gdb *gorm.DB, p models.Product) models.Product {
	t.Helper()

	if p.Status == "" {
		p.Status = "active"
	}
	require.NoError(t, gdb.Create(&p).Error)
	return p
}
