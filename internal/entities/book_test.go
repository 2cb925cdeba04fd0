package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/booklending/internal/apperror"
)

func TestNewBook(t *testing.T) {
	b, err := NewBook(1, "Dune", "Frank Herbert", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, b.AvailableCopies)
	assert.Equal(t, BookStatusAvailable, b.Status)
	assert.NoError(t, b.Validate())

	empty, err := NewBook(1, "Dune", "Frank Herbert", 0)
	require.NoError(t, err)
	assert.Equal(t, BookStatusUnavailable, empty.Status)

	_, err = NewBook(1, "", "x", 1)
	assert.ErrorIs(t, err, apperror.ErrInvalid)

	_, err = NewBook(1, "Dune", "x", -1)
	assert.ErrorIs(t, err, apperror.ErrInvalid)
}

func TestBook_SetTotalCopies(t *testing.T) {
	b, err := NewBook(1, "Dune", "Frank Herbert", 3)
	require.NoError(t, err)
	b.AvailableCopies = 1
	b.Status = DeriveBookStatus(1)

	t.Run("grow keeps loans out", func(t *testing.T) {
		require.NoError(t, b.SetTotalCopies(5))
		assert.Equal(t, 3, b.AvailableCopies)
		assert.NoError(t, b.Validate())
	})

	t.Run("shrink to loaned count", func(t *testing.T) {
		require.NoError(t, b.SetTotalCopies(2))
		assert.Equal(t, 0, b.AvailableCopies)
		assert.Equal(t, BookStatusUnavailable, b.Status)
	})

	t.Run("below loaned count", func(t *testing.T) {
		assert.ErrorIs(t, b.SetTotalCopies(1), apperror.ErrInvalid)
		assert.Equal(t, 2, b.TotalCopies)
	})
}

func TestBook_Validate(t *testing.T) {
	assert.Error(t, (&Book{TotalCopies: 1, AvailableCopies: 2, Status: BookStatusAvailable}).Validate())
	assert.Error(t, (&Book{TotalCopies: 1, AvailableCopies: -1, Status: BookStatusUnavailable}).Validate())
	assert.Error(t, (&Book{TotalCopies: 1, AvailableCopies: 0, Status: BookStatusAvailable}).Validate())
	assert.NoError(t, (&Book{TotalCopies: 1, AvailableCopies: 1, Status: BookStatusAvailable}).Validate())
}
