package gallery

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"teecole/internal/database"
	"teecole/internal/domain"
	"teecole/internal/modules/upload"
	"teecole/internal/repository"
)

type mockImageStore struct {
	mock.Mock
}

func (m *mockImageStore) SaveAll(fhs []*multipart.FileHeader) ([]upload.StoredFile, error) {
	args := m.Called(fhs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]upload.StoredFile), args.Error(1)
}

func (m *mockImageStore) RemoveByURL(urls []string) {
	m.Called(urls)
}

func (m *mockImageStore) BodyLimit(n int) int64 {
	return int64(n) * (5<<20 + 1)
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	log, _ := test.NewNullLogger()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Connect(fmt.Sprintf("file:gallery_%s?mode=memory&cache=shared", name), log)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func setupTestService(t *testing.T) (*Service, *gorm.DB, *mockImageStore) {
	t.Helper()
	db := setupTestDB(t)
	files := new(mockImageStore)
	log, _ := test.NewNullLogger()
	svc := NewService(repository.NewGalleryRepository(db), files, log)
	svc.now = func() time.Time { return time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC) }
	return svc, db, files
}

func childCount(t *testing.T, db *gorm.DB, id int64) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&domain.GalleryImage{}).Where("gallery_id = ?", id).Count(&n).Error)
	return n
}

func TestCreate_LoftConversion(t *testing.T) {
	svc, db, _ := setupTestService(t)
	ctx := context.Background()

	id, err := svc.Create(ctx, CreateRequest{
		Title:    "Loft Conversion",
		Images:   []string{"a.jpg", "b.jpg", "c.jpg"},
		Category: "refurbishment",
	})
	require.NoError(t, err)

	var rows []domain.GalleryImage
	require.NoError(t, db.Where("gallery_id = ?", id).Order("display_order").Find(&rows).Error)
	require.Len(t, rows, 3)
	for i, row := range rows {
		assert.Equal(t, i, row.DisplayOrder)
	}

	items, err := svc.List(ctx, repository.GalleryFilter{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, id, items[0].ID)
	assert.Equal(t, "a.jpg", items[0].ImageURL)
	assert.Equal(t, []string{"a.jpg", "b.jpg", "c.jpg"}, items[0].Images)
	assert.Equal(t, "", items[0].Description)
	assert.Equal(t, "2026-03-14", items[0].ProjectDate)
}

func TestCreate_ListWinsOverImageURL(t *testing.T) {
	svc, _, _ := setupTestService(t)

	id, err := svc.Create(context.Background(), CreateRequest{Title: "t", ImageURL: "cover.jpg", Images: []string{"x.jpg", "y.jpg"}})
	require.NoError(t, err)

	item, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "x.jpg", item.ImageURL)
	assert.Equal(t, []string{"x.jpg", "y.jpg"}, item.Images)
}

func TestCreate_SingleURLDefaults(t *testing.T) {
	svc, db, _ := setupTestService(t)

	id, err := svc.Create(context.Background(), CreateRequest{Title: "  Garden  ", ImageURL: "/uploads/g.jpg"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), childCount(t, db, id))

	item, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Garden", item.Title)
	assert.Equal(t, domain.DefaultGalleryCategory, item.Category)
	assert.False(t, item.IsFeatured)
	assert.Equal(t, []string{"/uploads/g.jpg"}, item.Images)
}

func TestCreate_Validation(t *testing.T) {
	svc, db, _ := setupTestService(t)

	_, err := svc.Create(context.Background(), CreateRequest{Images: []string{"a.jpg"}})
	assert.ErrorIs(t, err, ErrTitleRequired)

	_, err = svc.Create(context.Background(), CreateRequest{Title: "t", Images: []string{" ", ""}})
	assert.ErrorIs(t, err, ErrImageRequired)

	var n int64
	require.NoError(t, db.Model(&domain.GalleryItem{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestList_FallsBackToCoverWithoutChildren(t *testing.T) {
	svc, db, _ := setupTestService(t)

	legacy := domain.GalleryItem{Title: "legacy", ImageURL: "only.jpg"}
	require.NoError(t, db.Create(&legacy).Error)

	items, err := svc.List(context.Background(), repository.GalleryFilter{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, []string{"only.jpg"}, items[0].Images)
}

func TestList_ChildrenNeverSummedWithCover(t *testing.T) {
	svc, db, _ := setupTestService(t)

	item := domain.GalleryItem{Title: "mixed", ImageURL: "cover.jpg"}
	require.NoError(t, db.Create(&item).Error)
	require.NoError(t, db.Create(&[]domain.GalleryImage{
		{GalleryID: item.ID, ImageURL: "second.jpg", DisplayOrder: 7},
		{GalleryID: item.ID, ImageURL: "first.jpg", DisplayOrder: 3},
	}).Error)

	items, err := svc.List(context.Background(), repository.GalleryFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"first.jpg", "second.jpg"}, items[0].Images)
}

func TestList_EmptyIsNotNil(t *testing.T) {
	svc, _, _ := setupTestService(t)

	items, err := svc.List(context.Background(), repository.GalleryFilter{Category: "none"})
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestUpdate_ReplacesChildSet(t *testing.T) {
	svc, db, _ := setupTestService(t)
	ctx := context.Background()

	id, err := svc.Create(ctx, CreateRequest{Title: "t", Images: []string{"1.jpg", "2.jpg", "3.jpg", "4.jpg", "5.jpg"}})
	require.NoError(t, err)

	images := []string{"n1.jpg", "n2.jpg"}
	require.NoError(t, svc.Update(ctx, id, UpdateRequest{Title: "t2", Images: &images, Category: "cleaning", IsFeatured: true}))
	assert.Equal(t, int64(2), childCount(t, db, id))

	item, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "n1.jpg", item.ImageURL)
	assert.Equal(t, []string{"n1.jpg", "n2.jpg"}, item.Images)
	assert.True(t, item.IsFeatured)
	assert.Equal(t, "cleaning", item.Category)
}

func TestUpdate_OmittedImagesKeepsChildren(t *testing.T) {
	svc, db, _ := setupTestService(t)
	ctx := context.Background()

	id, err := svc.Create(ctx, CreateRequest{Title: "t", Images: []string{"a.jpg", "b.jpg"}, Description: "old", Category: "x"})
	require.NoError(t, err)

	require.NoError(t, svc.Update(ctx, id, UpdateRequest{Title: "t", ImageURL: "a.jpg"}))
	assert.Equal(t, int64(2), childCount(t, db, id))

	item, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "", item.Description)
	assert.Equal(t, "", item.Category)
}

func TestUpdate_EmptyListClearsChildren(t *testing.T) {
	svc, db, _ := setupTestService(t)
	ctx := context.Background()

	id, err := svc.Create(ctx, CreateRequest{Title: "t", Images: []string{"a.jpg", "b.jpg"}})
	require.NoError(t, err)

	empty := []string{}
	require.NoError(t, svc.Update(ctx, id, UpdateRequest{Title: "t", ImageURL: "z.jpg", Images: &empty}))
	assert.Zero(t, childCount(t, db, id))

	item, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"z.jpg"}, item.Images)
}

func TestUpdate_Errors(t *testing.T) {
	svc, _, _ := setupTestService(t)
	ctx := context.Background()

	assert.ErrorIs(t, svc.Update(ctx, 77, UpdateRequest{Title: "t", ImageURL: "a.jpg"}), ErrItemNotFound)
	assert.ErrorIs(t, svc.Update(ctx, 77, UpdateRequest{ImageURL: "a.jpg"}), ErrTitleRequired)
	assert.ErrorIs(t, svc.Update(ctx, 77, UpdateRequest{Title: "t"}), ErrImageRequired)
}

func TestDelete_RemovesRowsThenFiles(t *testing.T) {
	svc, db, files := setupTestService(t)
	ctx := context.Background()

	id, err := svc.Create(ctx, CreateRequest{Title: "t", Images: []string{"/uploads/a.jpg", "/assets/b.jpg"}})
	require.NoError(t, err)

	files.On("RemoveByURL", []string{"/uploads/a.jpg", "/assets/b.jpg"}).Return()
	require.NoError(t, svc.Delete(ctx, id))

	assert.Zero(t, childCount(t, db, id))
	_, err = svc.Get(ctx, id)
	assert.ErrorIs(t, err, ErrItemNotFound)
	files.AssertExpectations(t)
}

func TestDelete_KeepsFilesStillUsedByOtherItems(t *testing.T) {
	svc, _, files := setupTestService(t)
	ctx := context.Background()

	shared := "/uploads/gallery-1-shared.jpg"
	first, err := svc.Create(ctx, CreateRequest{Title: "A", ImageURL: shared})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateRequest{Title: "B", Images: []string{"/uploads/b.jpg", shared}})
	require.NoError(t, err)

	files.On("RemoveByURL", []string(nil)).Return()
	require.NoError(t, svc.Delete(ctx, first))
	files.AssertNotCalled(t, "RemoveByURL", []string{shared})
}

func TestCreate_FieldRules(t *testing.T) {
	svc, _, _ := setupTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{
		Title:    strings.Repeat("x", 201),
		Images:   []string{"a.jpg", strings.Repeat("u", 2049)},
		Category: strings.Repeat("c", 101),
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string]string{
		"title":     "max",
		"images[1]": "max",
		"category":  "max",
	}, verr.Fields)
	assert.NotErrorIs(t, err, ErrTitleRequired)

	_, err = svc.Create(ctx, CreateRequest{})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string]string{"title": "required", "images": "required"}, verr.Fields)
	assert.ErrorIs(t, err, ErrTitleRequired)
	assert.ErrorIs(t, err, ErrImageRequired)
}

func TestDelete_Missing(t *testing.T) {
	svc, _, files := setupTestService(t)

	assert.ErrorIs(t, svc.Delete(context.Background(), 5), ErrItemNotFound)
	files.AssertNotCalled(t, "RemoveByURL", mock.Anything)
}

func TestCreateWithUploads_RemovesFilesWhenStoreFails(t *testing.T) {
	svc, db, files := setupTestService(t)
	fhs := []*multipart.FileHeader{{Filename: "a.jpg"}, {Filename: "b.jpg"}}
	stored := []upload.StoredFile{{URL: "/uploads/gallery-1-a.jpg"}, {URL: "/uploads/gallery-1-b.jpg"}}

	files.On("SaveAll", fhs).Return(stored, nil)
	id, err := svc.CreateWithUploads(context.Background(), CreateRequest{Title: "Uploaded"}, fhs)
	require.NoError(t, err)
	assert.Equal(t, int64(2), childCount(t, db, id))

	item, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/gallery-1-a.jpg", item.ImageURL)

	require.NoError(t, database.Close(db))
	files.On("RemoveByURL", []string{"/uploads/gallery-1-a.jpg", "/uploads/gallery-1-b.jpg"}).Return()

	_, err = svc.CreateWithUploads(context.Background(), CreateRequest{Title: "Uploaded"}, fhs)
	require.Error(t, err)
	files.AssertCalled(t, "RemoveByURL", []string{"/uploads/gallery-1-a.jpg", "/uploads/gallery-1-b.jpg"})
}

func TestCreateWithUploads_RejectedUploadStoresNothing(t *testing.T) {
	svc, db, files := setupTestService(t)
	fhs := []*multipart.FileHeader{{Filename: "a.txt"}}
	files.On("SaveAll", fhs).Return(nil, upload.ErrInvalidFileType)

	_, err := svc.CreateWithUploads(context.Background(), CreateRequest{Title: "x"}, fhs)
	assert.True(t, errors.Is(err, upload.ErrInvalidFileType))

	var n int64
	require.NoError(t, db.Model(&domain.GalleryItem{}).Count(&n).Error)
	assert.Zero(t, n)
}
