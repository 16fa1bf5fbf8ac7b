package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidator(t *testing.T) {
	v := New()
	assert.True(t, v.Valid())

	v.Check(true, "name", "name must be provided")
	v.Check(false, "start", "start must be provided")
	v.Check(false, "start", "start must be a time")

	assert.False(t, v.Valid())
	assert.Equal(t, map[string]string{"start": "start must be provided"}, v.Errors)
}
