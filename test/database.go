package test

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/workforce-ledger/backend/internal/models"
	"gorm.io/gorm"
)

// TmpFile returns the path to a unique file in the test's temporary directory
func TmpFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), uuid.NewString()+".db")
}

// DB connects to a migrated SQLite database that is closed when the test ends.
func DB(t *testing.T) *gorm.DB {
	db, err := models.Connect(models.SQLite(TmpFile(t)))
	require.Nil(t, err, "Database connection failed")

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return db
}
