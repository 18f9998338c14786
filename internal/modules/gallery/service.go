package gallery

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"teecole/internal/domain"
	"teecole/internal/pkg/validator"
	"teecole/internal/repository"
)

type Service struct {
	repo  Repository
	files ImageStore
	log   logrus.FieldLogger
	now   func() time.Time
}

func NewService(repo Repository, files ImageStore, log logrus.FieldLogger) *Service {
	return &Service{repo: repo, files: files, log: log, now: time.Now}
}

// List returns matching items, newest first, each with its display images.
func (s *Service) List(ctx context.Context, f repository.GalleryFilter) ([]Item, error) {
	rows, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list gallery: %w", err)
	}
	if len(rows) == 0 {
		return []Item{}, nil
	}

	ids := make([]int64, len(rows))
	for i := range rows {
		ids[i] = rows[i].ID
	}
	children, err := s.repo.ImagesByGalleryIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list gallery images: %w", err)
	}

	items := make([]Item, len(rows))
	for i := range rows {
		items[i] = Item{
			GalleryItem: rows[i],
			Images:      domain.DisplayImages(&rows[i], children[rows[i].ID]),
		}
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Item, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("get gallery item %d: %w", id, err)
	}
	children, err := s.repo.ImagesByGalleryIDs(ctx, []int64{id})
	if err != nil {
		return nil, fmt.Errorf("get gallery images: %w", err)
	}
	return &Item{GalleryItem: *row, Images: domain.DisplayImages(row, children[id])}, nil
}

// Create inserts a new item with its child images and returns its id.
func (s *Service) Create(ctx context.Context, req CreateRequest) (int64, error) {
	req = normalize(req)
	images := req.Images
	if len(images) == 0 && req.ImageURL != "" {
		images = []string{req.ImageURL}
	}
	if err := check(req, len(images) > 0); err != nil {
		return 0, err
	}

	item := &domain.GalleryItem{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    images[0],
		Category:    req.Category,
		ProjectDate: req.ProjectDate,
		IsFeatured:  bool(req.IsFeatured),
	}
	if item.Category == "" {
		item.Category = domain.DefaultGalleryCategory
	}
	if item.ProjectDate == "" {
		item.ProjectDate = s.now().Format(time.DateOnly)
	}

	if err := s.repo.Create(ctx, item, images); err != nil {
		return 0, fmt.Errorf("create gallery item: %w", err)
	}
	return item.ID, nil
}

// CreateWithUploads stores the uploaded files and creates an item that
// uses them in upload order. Stored files are removed again if the item
// cannot be saved.
func (s *Service) CreateWithUploads(ctx context.Context, req CreateRequest, fhs []*multipart.FileHeader) (int64, error) {
	if err := check(normalize(req), true); err != nil {
		return 0, err
	}
	if len(fhs) == 0 {
		return s.Create(ctx, req)
	}

	stored, err := s.files.SaveAll(fhs)
	if err != nil {
		return 0, err
	}
	urls := make([]string, len(stored))
	for i, f := range stored {
		urls[i] = f.URL
	}

	req.Images = urls
	id, err := s.Create(ctx, req)
	if err != nil {
		s.files.RemoveByURL(urls)
		return 0, err
	}
	return id, nil
}

// Update replaces every scalar of the item. Child rows are replaced only
// when req.Images is set.
func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) error {
	fields := normalize(req.fields())

	var images *[]string
	cover := fields.ImageURL
	if req.Images != nil {
		images = &fields.Images
		if len(fields.Images) > 0 {
			cover = fields.Images[0]
		}
	}
	if err := check(fields, cover != ""); err != nil {
		return err
	}

	item := &domain.GalleryItem{
		ID:          id,
		Title:       fields.Title,
		Description: req.Description,
		ImageURL:    cover,
		Category:    fields.Category,
		ProjectDate: fields.ProjectDate,
		IsFeatured:  bool(req.IsFeatured),
	}

	if err := s.repo.Update(ctx, item, images); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNotFound
		}
		return fmt.Errorf("update gallery item %d: %w", id, err)
	}
	return nil
}

// Delete removes the item and its child rows, then the uploaded files they
// pointed to. File cleanup never fails the call.
func (s *Service) Delete(ctx context.Context, id int64) error {
	urls, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNotFound
		}
		return fmt.Errorf("delete gallery item %d: %w", id, err)
	}

	s.files.RemoveByURL(urls)
	s.log.WithFields(logrus.Fields{"gallery_id": id, "images": len(urls)}).Info("gallery item deleted")
	return nil
}

func normalize(req CreateRequest) CreateRequest {
	req.Title = strings.TrimSpace(req.Title)
	req.ImageURL = strings.TrimSpace(req.ImageURL)
	req.Images = cleanURLs(req.Images)
	req.Category = strings.TrimSpace(req.Category)
	req.ProjectDate = strings.TrimSpace(req.ProjectDate)
	return req
}

// check runs the field rules; hasImage covers the rule that spans
// image_url and images.
func check(req CreateRequest, hasImage bool) error {
	fields := validator.Validate(&req)
	if !hasImage {
		if fields == nil {
			fields = map[string]string{}
		}
		fields["images"] = "required"
	}
	if fields != nil {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func cleanURLs(in []string) []string {
	out := make([]string, 0, len(in))
	for _, u := range in {
		if u = strings.TrimSpace(u); u != "" {
			out = append(out, u)
		}
	}
	return out
}
