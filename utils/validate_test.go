package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateStruct(t *testing.T) {
	type input struct {
		Email  string `validate:"required,email"`
		Rating int    `validate:"min=1,max=5"`
	}

	assert.NoError(t, ValidateStruct(&input{Email: "a@b.com", Rating: 3}))

	err := ValidateStruct(&input{Email: "not-an-email", Rating: 9})
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "email is email")
		assert.Contains(t, err.Error(), "rating is max")
	}
}
