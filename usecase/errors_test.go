package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"resourceshub/repository"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil))
	assert.ErrorIs(t, translate(fmt.Errorf("find: %w", repository.ErrNotFound)), ErrNotFound)
	assert.ErrorIs(t, translate(repository.ErrDuplicate), ErrConflict)

	netErr := mongo.CommandError{Code: 6, Message: "connection reset", Labels: []string{"NetworkError"}}
	assert.ErrorIs(t, translate(netErr), ErrDatabaseUnavailable)
	assert.ErrorIs(t, translate(fmt.Errorf("query: %w", context.DeadlineExceeded)), ErrDatabaseUnavailable)

	other := errors.New("boom")
	assert.Same(t, other, translate(other))
}

func TestIsValidation(t *testing.T) {
	msg, ok := IsValidation(fmt.Errorf("wrapped: %w", invalid("Title is required")))
	assert.True(t, ok)
	assert.Equal(t, "Title is required", msg)

	_, ok = IsValidation(ErrNotFound)
	assert.False(t, ok)
}
