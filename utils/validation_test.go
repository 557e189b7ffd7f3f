package utils

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhonePattern(t *testing.T) {
	assert.True(t, PhonePattern.MatchString("+79991234567"))
	assert.False(t, PhonePattern.MatchString("89991234567"))
	assert.False(t, PhonePattern.MatchString("+7999123456"))
	assert.False(t, PhonePattern.MatchString("+7999123456a"))
}

func TestBindingErrors(t *testing.T) {
	RegisterValidators()

	type form struct {
		Name  string  `json:"name" binding:"required"`
		Phone string  `json:"phone" binding:"required,ruphone"`
		Email *string `json:"email" binding:"omitempty,email"`
	}

	bad := "not-an-email"
	err := binding.Validator.ValidateStruct(&form{Phone: "12345", Email: &bad})
	require.Error(t, err)

	fields := BindingErrors(err)
	assert.Equal(t, "This field is required.", fields["name"])
	assert.Equal(t, PhoneFormatMessage, fields["phone"])
	assert.Equal(t, "Enter a valid email address.", fields["email"])

	assert.NoError(t, binding.Validator.ValidateStruct(&form{Name: "Anna", Phone: "+79991234567"}))
	assert.Nil(t, BindingErrors(assert.AnError))
}
