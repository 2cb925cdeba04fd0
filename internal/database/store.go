package database

import (
	"context"

	"gorm.io/gorm"

	"github.com/mrlokans/booklending/internal/database/books"
	"github.com/mrlokans/booklending/internal/database/borrowings"
	"github.com/mrlokans/booklending/internal/database/users"
	"github.com/mrlokans/booklending/internal/lending"
)

// Store exposes the lending repositories over one gorm handle, which is either
// the pool or an open transaction.
type Store struct {
	db           *gorm.DB
	defaultLimit int
	inventory    *books.Repository
	records      *borrowings.Repository
	users        *users.Repository
}

// NewStore builds a Store. defaultLimit is the borrow limit given to users created without one.
func NewStore(db *gorm.DB, defaultLimit int) *Store {
	return &Store{
		db:           db,
		defaultLimit: defaultLimit,
		inventory:    books.NewRepository(db),
		records:      borrowings.NewRepository(db),
		users:        users.NewRepository(db, defaultLimit),
	}
}

func (s *Store) Inventory() lending.Inventory {
	return s.inventory
}

func (s *Store) Records() lending.RecordStore {
	return s.records
}

func (s *Store) Users() lending.UserDirectory {
	return s.users
}

// Books returns the concrete inventory repository, with catalog helpers beyond lending.Inventory.
func (s *Store) Books() *books.Repository {
	return s.inventory
}

// UserRepository returns the concrete users repository.
func (s *Store) UserRepository() *users.Repository {
	return s.users
}

// Atomic runs fn in a transaction. Every repository handed to fn shares it.
func (s *Store) Atomic(ctx context.Context, fn func(repos lending.Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx, s.defaultLimit))
	})
}
