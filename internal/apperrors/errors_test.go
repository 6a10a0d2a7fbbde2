package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInternalWrapsCause(t *testing.T) {
	cause := errors.New("permission denied")
	err := Internal("load jobs dataset", cause)

	assert.Equal(t, "load jobs dataset: permission denied", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.NotEmpty(t, err.StackTrace())
	assert.Equal(t, ErrTypeInternal, TypeOf(fmt.Errorf("handler: %w", err)))
}

func TestTypeOfForeignError(t *testing.T) {
	assert.Equal(t, ErrTypeInternal, TypeOf(errors.New("boom")))
	assert.Equal(t, ErrTypeInvalidInput, TypeOf(InvalidInput("bad limit", nil)))
	assert.Equal(t, "bad limit", InvalidInput("bad limit", nil).Error())
}
