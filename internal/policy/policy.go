// Package policy decides whether a user may request a book.
package policy

import (
	"github.com/mrlokans/booklending/internal/apperror"
	"github.com/mrlokans/booklending/internal/entities"
)

// Facts is the state the decision is made on. A nil Book or User means it was not found.
type Facts struct {
	Book        *entities.Book
	User        *entities.User
	ActiveCount int64
	HoldsBook   bool
}

// Decision is the outcome of CanBorrow. Err is nil when the request is allowed.
type Decision struct {
	Err error
}

func (d Decision) Allowed() bool {
	return d.Err == nil
}

func allow() Decision {
	return Decision{}
}

func deny(err error) Decision {
	return Decision{Err: err}
}

// CanBorrow applies the eligibility rules in order. The first failing rule wins:
//
//	book missing          -> NotFound (BOOK_NOT_FOUND)
//	no available copies   -> Unavailable
//	user missing          -> NotFound (USER_NOT_FOUND)
//	active count at limit -> BorrowLimitReached
//	active record exists  -> AlreadyBorrowed
func CanBorrow(f Facts) Decision {
	if f.Book == nil {
		return deny(apperror.NotFound("book"))
	}

	if !f.Book.IsAvailable() {
		return deny(apperror.Unavailable("Book is not available for borrowing"))
	}

	if f.User == nil {
		return deny(apperror.NotFound("user"))
	}

	if f.ActiveCount >= int64(f.User.MaxBorrowLimit) {
		return deny(apperror.BorrowLimitReached(f.User.MaxBorrowLimit))
	}

	if f.HoldsBook {
		return deny(apperror.AlreadyBorrowed())
	}

	return allow()
}
