package gallery

import (
	"context"
	"mime/multipart"

	"teecole/internal/domain"
	"teecole/internal/modules/upload"
	"teecole/internal/repository"
)

type Repository interface {
	List(ctx context.Context, f repository.GalleryFilter) ([]domain.GalleryItem, error)
	ImagesByGalleryIDs(ctx context.Context, ids []int64) (map[int64][]domain.GalleryImage, error)
	GetByID(ctx context.Context, id int64) (*domain.GalleryItem, error)
	Create(ctx context.Context, item *domain.GalleryItem, images []string) error
	Update(ctx context.Context, item *domain.GalleryItem, images *[]string) error
	Delete(ctx context.Context, id int64) ([]string, error)
}

// ImageStore keeps the uploaded image files referenced by gallery rows.
type ImageStore interface {
	SaveAll(fhs []*multipart.FileHeader) ([]upload.StoredFile, error)
	RemoveByURL(urls []string)
	BodyLimit(n int) int64
}
