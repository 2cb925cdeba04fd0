package config

const (
	// DefaultDatabasePath is the default path for the main application database
	DefaultDatabasePath = "./booklending.db"

	DefaultLoanPeriodDays = 14
	DefaultFinePerDay     = 5000
	DefaultBorrowLimit    = 5
)
