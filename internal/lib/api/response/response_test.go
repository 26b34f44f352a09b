package response

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	t.Parallel()

	type request struct {
		Name  string `validate:"required"`
		Mode  string `validate:"oneof=open paid"`
		Email string `validate:"email"`
		Seats int    `validate:"min=1"`
	}

	err := validator.New().Struct(request{Mode: "vip", Email: "nope"})

	var validateErr validator.ValidationErrors
	require.True(t, errors.As(err, &validateErr))

	resp := ValidationError(validateErr)

	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t,
		"field Name is a required field, field Mode must be one of [open paid], "+
			"field Email is not a valid email, field Seats is not valid",
		resp.Error,
	)
}

func TestEnvelopes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Response{Status: "OK"}, OK())
	assert.Equal(t, Response{Status: "Error", Error: "boom"}, Error("boom"))
	assert.Equal(t, Failure{Error: "failed to send email", Details: "timeout"}, Fail("failed to send email", "timeout"))
}
