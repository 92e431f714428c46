package repository

import (
	"path/filepath"
	"testing"

	"clinicbook/cmd/internal/domain/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := sqlite.Init(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	return db
}
