package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/booklending/internal/apperror"
	"github.com/mrlokans/booklending/internal/auth"
	"github.com/mrlokans/booklending/internal/entities"
	"github.com/mrlokans/booklending/internal/lending"
)

type BorrowingsController struct {
	service BorrowingService
	history BorrowingHistory
}

func NewBorrowingsController(service BorrowingService, history BorrowingHistory) *BorrowingsController {
	return &BorrowingsController{
		service: service,
		history: history,
	}
}

type borrowRequest struct {
	BookID    uint   `json:"bookId" binding:"required"`
	LibraryID uint   `json:"libraryId"`
	Notes     string `json:"notes" binding:"max=1000"`
}

// Request creates a pending borrowing for the caller.
func (controller *BorrowingsController) Request(c *gin.Context) {
	var body borrowRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	record, err := controller.service.RequestBorrow(c.Request.Context(), lending.BorrowRequest{
		UserID:    auth.GetUserID(c),
		BookID:    body.BookID,
		LibraryID: body.LibraryID,
		Notes:     body.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondCreated(c, controller.viewOf(c, record), "Borrowing request created successfully")
}

// Mine lists the caller's borrowings.
func (controller *BorrowingsController) Mine(c *gin.Context) {
	page, ok := parsePage(c)
	if !ok {
		return
	}

	list, err := controller.service.ListUserBorrowings(c.Request.Context(), auth.GetUserID(c),
		entities.BorrowingStatus(c.Query("status")), page)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, list.Items, list.Meta)
}

// List is the staff listing. Librarians attached to a library only see its records.
func (controller *BorrowingsController) List(c *gin.Context) {
	page, ok := parsePage(c)
	if !ok {
		return
	}
	query := lending.ListQuery{Status: entities.BorrowingStatus(c.Query("status"))}
	if query.UserID, ok = parseOptionalQueryID(c, "userId"); !ok {
		return
	}
	if query.BookID, ok = parseOptionalQueryID(c, "bookId"); !ok {
		return
	}
	if query.LibraryID, ok = parseOptionalQueryID(c, "libraryId"); !ok {
		return
	}
	if own := auth.GetLibraryID(c); own != 0 && auth.GetUserRole(c) == entities.UserRoleLibrarian {
		query.LibraryID = own
	}

	list, err := controller.service.ListBorrowings(c.Request.Context(), query, page)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, list.Items, list.Meta)
}

// Get shows one borrowing. Readers only see their own.
func (controller *BorrowingsController) Get(c *gin.Context) {
	view, ok := controller.visible(c)
	if !ok {
		return
	}
	respondOK(c, view, "")
}

// History returns the audit trail of a borrowing, oldest first.
func (controller *BorrowingsController) History(c *gin.Context) {
	view, ok := controller.visible(c)
	if !ok {
		return
	}

	events, err := controller.history.History(c.Request.Context(), view.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, events, "")
}

// Confirm records the pickup at the desk of the record's library.
func (controller *BorrowingsController) Confirm(c *gin.Context) {
	view, ok := controller.visible(c)
	if !ok {
		return
	}

	record, err := controller.service.ConfirmPickup(c.Request.Context(), view.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, controller.viewOf(c, record), "Book pickup confirmed")
}

// Return closes the loan and reports any fine.
func (controller *BorrowingsController) Return(c *gin.Context) {
	view, ok := controller.visible(c)
	if !ok {
		return
	}

	record, err := controller.service.ReturnBook(c.Request.Context(), view.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, controller.viewOf(c, record), "Book returned successfully")
}

func (controller *BorrowingsController) visible(c *gin.Context) (*lending.BorrowingView, bool) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil, false
	}

	view, err := controller.service.GetBorrowing(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	if !canSee(c, view) {
		respondError(c, apperror.NotFound("borrowing"))
		return nil, false
	}
	return view, true
}

// canSee: readers see their own records, librarians attached to a library see
// that library's, admins and unattached librarians see everything.
func canSee(c *gin.Context, view *lending.BorrowingView) bool {
	if !auth.IsStaff(c) {
		return view.UserID == auth.GetUserID(c)
	}
	if own := auth.GetLibraryID(c); own != 0 && auth.GetUserRole(c) == entities.UserRoleLibrarian {
		return view.LibraryID == own
	}
	return true
}

// viewOf re-reads a record just written. The write already succeeded, so a
// failed read falls back to the raw record.
func (controller *BorrowingsController) viewOf(c *gin.Context, record *entities.BorrowingRecord) any {
	view, err := controller.service.GetBorrowing(c.Request.Context(), record.ID)
	if err != nil {
		_ = c.Error(err)
		return record
	}
	return view
}
