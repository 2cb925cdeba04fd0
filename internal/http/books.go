package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/booklending/internal/entities"
)

type BooksController struct {
	books BookGetter
}

func NewBooksController(books BookGetter) *BooksController {
	return &BooksController{
		books: books,
	}
}

// AvailabilityResponse is the shelf state of one book.
type AvailabilityResponse struct {
	BookID          uint                `json:"bookId"`
	Title           string              `json:"title"`
	Author          string              `json:"author"`
	LibraryID       uint                `json:"libraryId"`
	TotalCopies     int                 `json:"totalCopies"`
	AvailableCopies int                 `json:"availableCopies"`
	Status          entities.BookStatus `json:"status"`
	IsAvailable     bool                `json:"isAvailable"`
}

func (controller *BooksController) Availability(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := controller.books.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, AvailabilityResponse{
		BookID:          book.ID,
		Title:           book.Title,
		Author:          book.Author,
		LibraryID:       book.LibraryID,
		TotalCopies:     book.TotalCopies,
		AvailableCopies: book.AvailableCopies,
		Status:          book.Status,
		IsAvailable:     book.IsAvailable(),
	}, "")
}
