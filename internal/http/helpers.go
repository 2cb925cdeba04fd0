package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/booklending/internal/apperror"
	"github.com/mrlokans/booklending/internal/lending"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`    // machine-readable error code
	Details any    `json:"details,omitempty"` // additional context (validation errors, etc.)
}

// Response is the success envelope shared by all API endpoints.
type Response struct {
	Success bool              `json:"success"`
	Data    any               `json:"data"`
	Meta    *lending.PageMeta `json:"meta,omitempty"`
	Message string            `json:"message,omitempty"`
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message, Code: "VALIDATION_ERROR"})
}

// respondError maps an error to its status code. Unknown errors are recorded
// on the context for the request logger and hidden from the client.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		c.JSON(status, ErrorResponse{Error: "internal server error", Code: "INTERNAL_ERROR"})
		return
	}

	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		c.JSON(status, ErrorResponse{Error: appErr.Message, Code: appErr.Code})
		return
	}
	c.JSON(status, ErrorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperror.ErrUnavailable),
		errors.Is(err, apperror.ErrBorrowLimitReached),
		errors.Is(err, apperror.ErrAlreadyBorrowed),
		errors.Is(err, apperror.ErrInvalidState),
		errors.Is(err, apperror.ErrInvalid):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// --- Success Response Helpers ---

// respondOK sends a 200 OK response with data.
func respondOK(c *gin.Context, data any, message string) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data, Message: message})
}

// respondCreated sends a 201 Created response with data.
func respondCreated(c *gin.Context, data any, message string) {
	c.JSON(http.StatusCreated, Response{Success: true, Data: data, Message: message})
}

// respondPage sends one page of a listing.
func respondPage(c *gin.Context, data any, meta lending.PageMeta) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data, Meta: &meta})
}

// --- Parameter Parsing ---

// parseIDParam extracts and validates an unsigned integer ID from URL parameters.
// Returns the parsed ID or responds with a 400 error and returns 0, false.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}

// parseOptionalQueryID reads an unsigned integer query parameter.
// A missing parameter yields 0, true; a malformed one responds with 400.
func parseOptionalQueryID(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Query(paramName)
	if idStr == "" {
		return 0, true
	}
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}

// parsePage reads the page and limit query parameters. Both are optional
// and must be positive when present.
func parsePage(c *gin.Context) (lending.Page, bool) {
	var page lending.Page
	for _, p := range []struct {
		name string
		dst  *int
	}{{"page", &page.Page}, {"limit", &page.Limit}} {
		raw := c.Query(p.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			respondBadRequest(c, "invalid "+p.name)
			return page, false
		}
		*p.dst = n
	}
	return page, true
}
