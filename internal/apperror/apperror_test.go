package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFound(t *testing.T) {
	err := NotFound("book")

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrUnavailable))
	assert.Equal(t, "BOOK_NOT_FOUND", err.Code)
	assert.Equal(t, "Book not found", err.Error())
}

func TestKindSurvivesWrapping(t *testing.T) {
	wrapped := fmt.Errorf("confirm pickup: %w", Unavailable("Book is not available"))

	assert.True(t, errors.Is(wrapped, ErrUnavailable))
	assert.Equal(t, "BOOK_UNAVAILABLE", Code(wrapped))
}

func TestBorrowLimitReached(t *testing.T) {
	err := BorrowLimitReached(3)

	assert.True(t, errors.Is(err, ErrBorrowLimitReached))
	assert.Equal(t, "You have reached your borrow limit (3)", err.Message)
}

func TestInternal(t *testing.T) {
	cause := errors.New("available 3 > total 2")
	err := Internal("inventory invariant violated", cause)

	assert.True(t, errors.Is(err, ErrInternal))
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "available 3 > total 2")
}

func TestCode_NonAppError(t *testing.T) {
	assert.Empty(t, Code(errors.New("boom")))
	assert.Empty(t, Code(nil))
}

func TestNotFound_MultiWordResource(t *testing.T) {
	assert.Equal(t, "BORROWING_RECORD_NOT_FOUND", NotFound("borrowing record").Code)
}
