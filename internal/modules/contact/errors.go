package contact

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError lists the rejected fields and the rule each one broke.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("invalid contact submission: %s", strings.Join(names, ", "))
}
