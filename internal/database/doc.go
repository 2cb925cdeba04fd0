// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup (sqlite or postgres), migrations
//	├── store.go         # lending.Store over the repositories below
//	├── seed.go          # Demo libraries, books and users
//	├── books/           # Book inventory and copy counters
//	├── borrowings/      # Borrowing records (versioned updates)
//	├── users/           # User directory
//	├── libraries/       # Library branches
//	├── notifications/   # User inbox
//	└── audit/           # Lifecycle history
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	db, err := database.NewDatabase(cfg.Database, logger)
//	store := database.NewStore(db.DB, cfg.Borrowing.DefaultBorrowLimit)
//	engine := lending.NewEngine(store, settings)
//
// Inside Store.Atomic every repository shares one transaction. With SQLite the
// pool is limited to a single connection, so code running inside a transaction
// must only use the repositories it was handed.
//
// # Adding a New Domain
//
//  1. Create a new sub-package: internal/database/<domain>/
//  2. Define a Repository struct with a *gorm.DB field
//  3. Add NewRepository(db *gorm.DB) constructor
//  4. Add the entity to Migrate
//  5. Add compile-time interface checks in internal/interfaces
package database
