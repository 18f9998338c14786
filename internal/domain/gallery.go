package domain

import "time"

const DefaultGalleryCategory = "general"

// GalleryItem is a showcased project. ImageURL is the cover image and is
// always set; ImageRows holds the ordered secondary images, if any.
type GalleryItem struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url" gorm:"not null"`
	Category    string    `json:"category" gorm:"index"`
	ProjectDate string    `json:"project_date"`
	IsFeatured  bool      `json:"is_featured" gorm:"default:false"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`

	ImageRows []GalleryImage `json:"-" gorm:"foreignKey:GalleryID;constraint:OnDelete:CASCADE"`
}

func (GalleryItem) TableName() string { return "gallery" }

// GalleryImage is a secondary image of a gallery item.
type GalleryImage struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	GalleryID    int64     `json:"gallery_id" gorm:"not null;index"`
	ImageURL     string    `json:"image_url" gorm:"not null"`
	DisplayOrder int       `json:"display_order" gorm:"default:0"`
	CreatedAt    time.Time `json:"created_at"`
}

func (GalleryImage) TableName() string { return "gallery_images" }

// DisplayImages returns the URLs to render for an item: the child rows in
// order when there are any, otherwise the cover image alone.
func DisplayImages(item *GalleryItem, children []GalleryImage) []string {
	if len(children) == 0 {
		return []string{item.ImageURL}
	}
	urls := make([]string, 0, len(children))
	for _, img := range children {
		urls = append(urls, img.ImageURL)
	}
	return urls
}
