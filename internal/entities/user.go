package entities

import "time"

type UserRole string

const (
	UserRoleAdmin     UserRole = "admin"
	UserRoleLibrarian UserRole = "librarian"
	UserRoleUser      UserRole = "user"
)

type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
	UserStatusBanned   UserStatus = "banned"
)

// User is a library patron or staff member. Credentials live with the external
// identity provider; only what lending needs is kept here.
type User struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Email          string     `gorm:"uniqueIndex;size:255;not null" json:"email"`
	FullName       string     `gorm:"size:255" json:"full_name"`
	Role           UserRole   `gorm:"size:20;not null;default:'user'" json:"role"`
	Status         UserStatus `gorm:"size:20;not null;default:'active'" json:"status"`
	LibraryID      *uint      `gorm:"index" json:"library_id,omitempty"`
	MaxBorrowLimit int        `gorm:"not null" json:"max_borrow_limit"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// Library is a branch in the lending network. Books and loans only reference it.
type Library struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Code      string    `gorm:"uniqueIndex;size:32;not null" json:"code"`
	Address   string    `gorm:"size:512" json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Library) TableName() string {
	return "libraries"
}
