package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationErrorsDetail(t *testing.T) {
	errs := NewValidationErrors()
	assert.False(t, errs.HasErrors())

	empty := errs.Detail()
	assert.Equal(t, ErrorCodeValidationFailed, empty.Code)
	assert.Empty(t, empty.Field)

	errs.AddError("name", "name is required").AddError("email", "email must be a valid email address")
	require.True(t, errs.HasErrors())

	detail := errs.Detail()
	assert.Equal(t, ErrorCodeValidationFailed, detail.Code)
	assert.Equal(t, "name", detail.Field)
	assert.Equal(t, "name is required", detail.Message)
	assert.Len(t, detail.Details, 2)
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse(NewErrorDetail(ErrorCodeNoSeatsAvailable, "full").WithField("status"))

	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrorCodeNoSeatsAvailable, resp.Error.Code)
	assert.Equal(t, "status", resp.Error.Field)
	assert.False(t, resp.Timestamp.IsZero())
}
