package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/booklending/internal/apperror"
	"github.com/mrlokans/booklending/internal/database/libraries"
	"github.com/mrlokans/booklending/internal/entities"
)

type seedBook struct {
	library  string
	title    string
	author   string
	isbn     string
	category string
	copies   int
}

var seedLibraries = []entities.Library{
	{Code: "CEN", Name: "Central Library", Address: "1 Main Square"},
	{Code: "EST", Name: "East Branch", Address: "42 Harbour Road"},
}

var seedBooks = []seedBook{
	{"CEN", "The Left Hand of Darkness", "Ursula K. Le Guin", "9780441478125", "Fiction", 3},
	{"CEN", "Dune", "Frank Herbert", "9780441172719", "Fiction", 2},
	{"CEN", "The Pragmatic Programmer", "Andrew Hunt, David Thomas", "9780135957059", "Technology", 1},
	{"EST", "Sapiens", "Yuval Noah Harari", "9780062316097", "History", 2},
	{"EST", "The Go Programming Language", "Alan Donovan, Brian Kernighan", "9780134190440", "Technology", 1},
}

var seedUsers = []entities.User{
	{Email: "librarian@example.com", FullName: "Head Librarian", Role: entities.UserRoleLibrarian, Status: entities.UserStatusActive},
	{Email: "reader@example.com", FullName: "Avid Reader", Role: entities.UserRoleUser, Status: entities.UserStatusActive},
	{Email: "casual@example.com", FullName: "Casual Reader", Role: entities.UserRoleUser, Status: entities.UserStatusActive, MaxBorrowLimit: 1},
}

// SeedResult counts the rows a Seed call created.
type SeedResult struct {
	Libraries int
	Books     int
	Users     int
}

// Seed creates demo libraries, books and users. Existing rows are left untouched,
// so running it twice is harmless.
func (s *Store) Seed(ctx context.Context) (SeedResult, error) {
	var result SeedResult

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		store := NewStore(tx, s.defaultLimit)
		libs := libraries.NewRepository(tx)

		libraryIDs := make(map[string]uint, len(seedLibraries))
		for _, l := range seedLibraries {
			var existing entities.Library
			err := tx.Where("code = ?", l.Code).First(&existing).Error
			if err == nil {
				libraryIDs[l.Code] = existing.ID
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			created, err := libs.GetOrCreate(ctx, l.Code, l.Name)
			if err != nil {
				return fmt.Errorf("seed library %s: %w", l.Code, err)
			}
			libraryIDs[l.Code] = created.ID
			result.Libraries++
		}

		for _, sb := range seedBooks {
			var count int64
			if err := tx.Model(&entities.Book{}).Where("isbn = ?", sb.isbn).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}
			book, err := entities.NewBook(libraryIDs[sb.library], sb.title, sb.author, sb.copies)
			if err != nil {
				return err
			}
			book.ISBN = sb.isbn
			book.Category = sb.category
			if err := store.Books().Create(ctx, book); err != nil {
				return fmt.Errorf("seed book %q: %w", sb.title, err)
			}
			result.Books++
		}

		for _, u := range seedUsers {
			_, err := store.UserRepository().GetByEmail(ctx, u.Email)
			if err == nil {
				continue
			}
			if !errors.Is(err, apperror.ErrNotFound) {
				return err
			}
			user := u
			if err := store.UserRepository().Save(ctx, &user); err != nil {
				return fmt.Errorf("seed user %s: %w", u.Email, err)
			}
			result.Users++
		}
		return nil
	})

	return result, err
}
