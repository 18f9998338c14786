package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"teecole/internal/database"
	"teecole/internal/domain"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	log, _ := test.NewNullLogger()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Connect(fmt.Sprintf("file:repo_%s?mode=memory&cache=shared", name), log)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func countChildren(t *testing.T, db *gorm.DB, galleryID int64) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&domain.GalleryImage{}).Where("gallery_id = ?", galleryID).Count(&n).Error)
	return n
}
