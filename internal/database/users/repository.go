// Package users provides database operations for the user directory.
//
// # Usage
//
//	repo := users.NewRepository(db, 5)
//	user, err := repo.Get(ctx, userID)
package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/booklending/internal/apperror"
	"github.com/mrlokans/booklending/internal/entities"
)

// Repository handles all user database operations.
type Repository struct {
	db           *gorm.DB
	defaultLimit int
}

// NewRepository creates a new users repository. Users created without a borrow
// limit get defaultLimit.
func NewRepository(db *gorm.DB, defaultLimit int) *Repository {
	return &Repository{db: db, defaultLimit: defaultLimit}
}

// CreateUser creates a new active user.
func (r *Repository) CreateUser(ctx context.Context, email, fullName string, role entities.UserRole) (*entities.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, apperror.Invalid("Email is required")
	}
	if role == "" {
		role = entities.UserRoleUser
	}

	user := &entities.User{
		Email:          email,
		FullName:       fullName,
		Role:           role,
		Status:         entities.UserStatusActive,
		MaxBorrowLimit: r.defaultLimit,
	}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, fmt.Errorf("create user %s: %w", email, err)
	}
	return user, nil
}

// Save inserts or updates a user, applying the default limit to new users without one.
func (r *Repository) Save(ctx context.Context, user *entities.User) error {
	if user.ID == 0 && user.MaxBorrowLimit == 0 {
		user.MaxBorrowLimit = r.defaultLimit
	}
	return r.db.WithContext(ctx).Save(user).Error
}

// Get retrieves a user by ID.
func (r *Repository) Get(ctx context.Context, id uint) (*entities.User, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate retrieves a user and locks the row until the transaction ends.
// SQLite ignores the lock clause; its single writer already serializes transactions.
func (r *Repository) GetForUpdate(ctx context.Context, id uint) (*entities.User, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *Repository) get(db *gorm.DB, id uint) (*entities.User, error) {
	var user entities.User
	err := db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("user")
	}
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return &user, nil
}

// GetByEmail retrieves a user by email.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("user")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
