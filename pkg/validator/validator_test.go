package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Role  string `json:"role" validate:"required,oneof=agent facility_manager"`
	Score int    `json:"score" validate:"gte=0,lte=100"`
	Items []item `json:"items" validate:"dive"`
}

type item struct {
	ID string `json:"id" validate:"required"`
}

func TestValidate_OK(t *testing.T) {
	v := NewValidator()
	assert.NoError(t, v.Validate(&sample{Role: "agent", Score: 0, Items: []item{{ID: "1"}}}))
}

func TestFormatValidationErrors_UsesJSONPaths(t *testing.T) {
	v := NewValidator()
	err := v.Validate(&sample{Role: "admin", Score: 101, Items: []item{{ID: "1"}, {}}})
	require.Error(t, err)

	msgs := v.FormatValidationErrors(err)
	assert.Equal(t, "role must be one of [agent facility_manager]", msgs["role"])
	assert.Equal(t, "score must be less than or equal to 100", msgs["score"])
	assert.Equal(t, "items[1].id is required", msgs["items[1].id"])
}

func TestFormatValidationErrors_NonValidationError(t *testing.T) {
	v := NewValidator()
	assert.Empty(t, v.FormatValidationErrors(assert.AnError))
}
