package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateRandomString(t *testing.T) {
	s := GenerateRandomString(10)
	assert.Len(t, s, 10)
	for _, r := range s {
		assert.True(t, strings.ContainsRune(charset, r))
	}
	assert.NotEqual(t, s, GenerateRandomString(10))
}

func TestValidatorSupportedImage(t *testing.T) {
	v := NewValidator()
	assert.NoError(t, v.Var("image/jpeg", "supported_image"))
	assert.NoError(t, v.Var("image/webp", "supported_image"))
	assert.Error(t, v.Var("text/plain", "supported_image"))
}

func TestValidatorStruct(t *testing.T) {
	type req struct {
		Email string `validate:"required,email"`
	}
	v := NewValidator()
	assert.NoError(t, v.Struct(req{Email: "a@b.co"}))
	assert.Error(t, v.Struct(req{Email: "nope"}))
}
