package gallery

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"teecole/internal/domain"
)

// Item is a gallery row as served to clients, with the derived image list.
type Item struct {
	domain.GalleryItem
	Images []string `json:"images"`
}

// CreateRequest is the body of POST /api/admin/gallery. When Images is
// non-empty its first entry becomes the cover and ImageURL is ignored.
type CreateRequest struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Description string   `json:"description" validate:"max=5000"`
	ImageURL    string   `json:"image_url" validate:"max=2048"`
	Images      []string `json:"images" validate:"max=50,dive,max=2048"`
	Category    string   `json:"category" validate:"max=100"`
	ProjectDate string   `json:"project_date" validate:"max=50"`
	IsFeatured  FlexBool `json:"is_featured"`
}

// UpdateRequest is the body of PUT /api/admin/gallery/:id. Every scalar is
// written as sent. Images nil keeps the child rows; any list, even an
// empty one, replaces them.
type UpdateRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	Images      *[]string `json:"images"`
	Category    string    `json:"category"`
	ProjectDate string    `json:"project_date"`
	IsFeatured  FlexBool  `json:"is_featured"`
}

// fields returns the request as a CreateRequest so both share one rule set.
func (r UpdateRequest) fields() CreateRequest {
	req := CreateRequest{
		Title:       r.Title,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		Category:    r.Category,
		ProjectDate: r.ProjectDate,
		IsFeatured:  r.IsFeatured,
	}
	if r.Images != nil {
		req.Images = *r.Images
	}
	return req
}

// FlexBool accepts true/false, 1/0 and their string forms.
type FlexBool bool

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*b = false
		return nil
	}
	var s string
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	} else {
		s = string(data)
	}
	v, ok := ParseBool(s)
	if !ok {
		return fmt.Errorf("invalid boolean %s", data)
	}
	*b = FlexBool(v)
	return nil
}

// ParseBool reads a form or query flag. ok is false for unknown values.
func ParseBool(s string) (value bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "on", "yes":
		return true, true
	case "false", "0", "off", "no", "":
		return false, true
	}
	return false, false
}
