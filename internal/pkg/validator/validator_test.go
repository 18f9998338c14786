package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email,omitempty" validate:"required,email"`
	Note  string `validate:"max=3"`
}

func TestValidate(t *testing.T) {
	assert.Nil(t, Validate(&sample{Name: "a", Email: "a@b.co"}))

	got := Validate(&sample{Email: "nope", Note: "long"})
	assert.Equal(t, map[string]string{
		"name":  "required",
		"email": "email",
		"Note":  "max",
	}, got)
}
