package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"teecole/internal/domain"
)

type GalleryFilter struct {
	Category string
	Featured *bool
}

type GalleryRepository struct {
	db *gorm.DB
}

func NewGalleryRepository(db *gorm.DB) *GalleryRepository {
	return &GalleryRepository{db: db}
}

// List returns matching items, newest first.
func (r *GalleryRepository) List(ctx context.Context, f GalleryFilter) ([]domain.GalleryItem, error) {
	q := r.db.WithContext(ctx).Model(&domain.GalleryItem{})
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Featured != nil {
		q = q.Where("is_featured = ?", *f.Featured)
	}

	var items []domain.GalleryItem
	err := q.Order("created_at DESC").Order("id DESC").Find(&items).Error
	return items, err
}

// ImagesByGalleryIDs loads the child rows of all given items in one query,
// grouped by item and ordered by display_order.
func (r *GalleryRepository) ImagesByGalleryIDs(ctx context.Context, ids []int64) (map[int64][]domain.GalleryImage, error) {
	out := make(map[int64][]domain.GalleryImage, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []domain.GalleryImage
	err := r.db.WithContext(ctx).
		Where("gallery_id IN ?", ids).
		Order("gallery_id ASC").
		Order("display_order ASC").
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		out[row.GalleryID] = append(out[row.GalleryID], row)
	}
	return out, nil
}

func (r *GalleryRepository) GetByID(ctx context.Context, id int64) (*domain.GalleryItem, error) {
	var item domain.GalleryItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Create inserts item and one child row per URL in images.
func (r *GalleryRepository) Create(ctx context.Context, item *domain.GalleryItem, images []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("ImageRows").Create(item).Error; err != nil {
			return fmt.Errorf("insert gallery item: %w", err)
		}
		return insertChildren(tx, item.ID, images)
	})
}

// Update rewrites every scalar column of item. A non-nil images replaces
// all child rows; nil leaves them as they are. Returns
// gorm.ErrRecordNotFound when no row has item.ID.
func (r *GalleryRepository) Update(ctx context.Context, item *domain.GalleryItem, images *[]string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.GalleryItem{}).
			Where("id = ?", item.ID).
			Updates(map[string]any{
				"title":        item.Title,
				"description":  item.Description,
				"image_url":    item.ImageURL,
				"category":     item.Category,
				"project_date": item.ProjectDate,
				"is_featured":  item.IsFeatured,
			})
		if res.Error != nil {
			return fmt.Errorf("update gallery item: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if images == nil {
			return nil
		}
		if err := tx.Where("gallery_id = ?", item.ID).Delete(&domain.GalleryImage{}).Error; err != nil {
			return fmt.Errorf("delete gallery images: %w", err)
		}
		return insertChildren(tx, item.ID, *images)
	})
}

// Delete removes the item and its child rows and returns the image URLs
// the item referenced that no remaining item or child row uses, cover
// first and without duplicates. Returns gorm.ErrRecordNotFound when the
// item does not exist; nothing is removed in that case.
func (r *GalleryRepository) Delete(ctx context.Context, id int64) ([]string, error) {
	var urls []string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item domain.GalleryItem
		if err := tx.Select("id", "image_url").First(&item, id).Error; err != nil {
			return err
		}

		var childURLs []string
		if err := tx.Model(&domain.GalleryImage{}).
			Where("gallery_id = ?", id).
			Order("display_order ASC").
			Order("id ASC").
			Pluck("image_url", &childURLs).Error; err != nil {
			return fmt.Errorf("read gallery images: %w", err)
		}

		if err := tx.Where("gallery_id = ?", id).Delete(&domain.GalleryImage{}).Error; err != nil {
			return fmt.Errorf("delete gallery images: %w", err)
		}

		res := tx.Delete(&domain.GalleryItem{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete gallery item: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		candidates := uniqueURLs(append([]string{item.ImageURL}, childURLs...))
		inUse, err := referencedURLs(tx, candidates)
		if err != nil {
			return err
		}
		for _, u := range candidates {
			if !inUse[u] {
				urls = append(urls, u)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return urls, nil
}

// BackfillImages gives every item without child rows a single child row
// holding its cover image. Running it again inserts nothing.
func (r *GalleryRepository) BackfillImages(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Exec(`
		INSERT INTO gallery_images (gallery_id, image_url, display_order, created_at)
		SELECT g.id, g.image_url, 0, CURRENT_TIMESTAMP
		FROM gallery g
		WHERE g.image_url <> ''
		  AND NOT EXISTS (SELECT 1 FROM gallery_images gi WHERE gi.gallery_id = g.id)
	`)
	return res.RowsAffected, res.Error
}

// referencedURLs reports which of urls still appear as a cover or child image.
func referencedURLs(tx *gorm.DB, urls []string) (map[string]bool, error) {
	inUse := make(map[string]bool)
	if len(urls) == 0 {
		return inUse, nil
	}

	var covers, children []string
	if err := tx.Model(&domain.GalleryItem{}).
		Where("image_url IN ?", urls).
		Pluck("image_url", &covers).Error; err != nil {
		return nil, fmt.Errorf("check cover references: %w", err)
	}
	if err := tx.Model(&domain.GalleryImage{}).
		Where("image_url IN ?", urls).
		Pluck("image_url", &children).Error; err != nil {
		return nil, fmt.Errorf("check image references: %w", err)
	}

	for _, u := range append(covers, children...) {
		inUse[u] = true
	}
	return inUse, nil
}

func uniqueURLs(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, u := range in {
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	return out
}

func insertChildren(tx *gorm.DB, galleryID int64, images []string) error {
	if len(images) == 0 {
		return nil
	}
	rows := make([]domain.GalleryImage, 0, len(images))
	for i, url := range images {
		rows = append(rows, domain.GalleryImage{
			GalleryID:    galleryID,
			ImageURL:     url,
			DisplayOrder: i,
		})
	}
	if err := tx.Create(&rows).Error; err != nil {
		return fmt.Errorf("insert gallery images: %w", err)
	}
	return nil
}
