package gallery

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrTitleRequired = errors.New("title is required")
	ErrImageRequired = errors.New("at least one image is required")
	ErrItemNotFound  = errors.New("gallery item not found")
)

// ValidationError lists the rejected fields and the rule each one broke.
// A missing title or image also matches ErrTitleRequired / ErrImageRequired.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("invalid gallery item: %s", strings.Join(names, ", "))
}

func (e *ValidationError) Is(target error) bool {
	switch target {
	case ErrTitleRequired:
		return e.Fields["title"] == "required"
	case ErrImageRequired:
		return e.Fields["images"] == "required"
	}
	return false
}
