// Package libraries stores the branches of the lending network.
package libraries

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mrlokans/booklending/internal/apperror"
	"github.com/mrlokans/booklending/internal/entities"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetOrCreate returns the library with the given code, creating it if missing.
func (r *Repository) GetOrCreate(ctx context.Context, code, name string) (*entities.Library, error) {
	var library entities.Library
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&library).Error
	if err == nil {
		return &library, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	library = entities.Library{Code: code, Name: name}
	if err := r.db.WithContext(ctx).Create(&library).Error; err != nil {
		return nil, err
	}
	return &library, nil
}

func (r *Repository) Get(ctx context.Context, id uint) (*entities.Library, error) {
	var library entities.Library
	err := r.db.WithContext(ctx).First(&library, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("library")
	}
	if err != nil {
		return nil, err
	}
	return &library, nil
}

func (r *Repository) List(ctx context.Context) ([]entities.Library, error) {
	var libraries []entities.Library
	err := r.db.WithContext(ctx).Order("name ASC").Find(&libraries).Error
	return libraries, err
}
