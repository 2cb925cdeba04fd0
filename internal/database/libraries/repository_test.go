package libraries

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mrlokans/booklending/internal/apperror"
	"github.com/mrlokans/booklending/internal/entities"
)

func setupTestDB(t *testing.T) *Repository {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.Library{}))
	return NewRepository(db)
}

func TestRepository_GetOrCreate(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	first, err := repo.GetOrCreate(ctx, "CEN", "Central Library")
	require.NoError(t, err)
	assert.NotZero(t, first.ID)

	again, err := repo.GetOrCreate(ctx, "CEN", "Renamed")
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, "Central Library", again.Name)

	_, err = repo.GetOrCreate(ctx, "EST", "East Branch")
	require.NoError(t, err)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Central Library", all[0].Name)
}

func TestRepository_Get_NotFound(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.Get(context.Background(), 3)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Equal(t, "LIBRARY_NOT_FOUND", apperror.Code(err))
}
