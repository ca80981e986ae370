package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{"first rule", "second rule"}
	require.Equal(t, "first rule; second rule", errs.Error())

	got, ok := AsValidation(fmt.Errorf("wrapped: %w", errs))
	require.True(t, ok)
	require.Equal(t, errs, got)

	_, ok = AsValidation(errors.New("plain failure"))
	require.False(t, ok)

	_, ok = AsValidation(ErrNotFound)
	require.False(t, ok)
}
