package auth

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/booklending/internal/apperror"
	"github.com/mrlokans/booklending/internal/entities"
)

// HeaderUserID carries the authenticated user's ID, set by the upstream gateway.
const HeaderUserID = "X-User-ID"

// Context keys for user data
const (
	ContextKeyUserID    = "auth_user_id"
	ContextKeyRole      = "auth_role"
	ContextKeyLibraryID = "auth_library_id"
)

// UserLookup loads the caller named by the identity header.
type UserLookup interface {
	Get(ctx context.Context, id uint) (*entities.User, error)
}

// Middleware resolves the caller for every non-public request.
type Middleware struct {
	users       UserLookup
	publicPaths map[string]bool
}

func NewMiddleware(users UserLookup) *Middleware {
	return &Middleware{
		users: users,
		publicPaths: map[string]bool{
			"/health": true,
			"/ping":   true,
		},
	}
}

// Handler returns a Gin middleware that authenticates requests by header.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.publicPaths[c.Request.URL.Path] {
			c.Next()
			return
		}

		raw := strings.TrimSpace(c.GetHeader(HeaderUserID))
		if raw == "" {
			abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
			return
		}
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || id == 0 {
			abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid "+HeaderUserID+" header")
			return
		}

		user, err := m.users.Get(c.Request.Context(), uint(id))
		if errors.Is(err, apperror.ErrNotFound) {
			abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "unknown user")
			return
		}
		if err != nil {
			_ = c.Error(err)
			abort(c, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			return
		}
		if user.Status != entities.UserStatusActive {
			abort(c, http.StatusForbidden, "ACCOUNT_INACTIVE", "account is "+string(user.Status))
			return
		}

		setUserContext(c, user)
		c.Next()
	}
}

func setUserContext(c *gin.Context, user *entities.User) {
	c.Set(ContextKeyUserID, user.ID)
	c.Set(ContextKeyRole, user.Role)
	if user.LibraryID != nil {
		c.Set(ContextKeyLibraryID, *user.LibraryID)
	}
}

// RequireRole returns a middleware that requires one of the given roles.
func RequireRole(roles ...entities.UserRole) gin.HandlerFunc {
	roleSet := make(map[entities.UserRole]bool)
	for _, r := range roles {
		roleSet[r] = true
	}

	return func(c *gin.Context) {
		if !roleSet[GetUserRole(c)] {
			abort(c, http.StatusForbidden, "FORBIDDEN", "insufficient permissions")
			return
		}
		c.Next()
	}
}

func abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message, "code": code})
}

// GetUserID retrieves the authenticated user's ID from the context, or 0.
func GetUserID(c *gin.Context) uint {
	if id, exists := c.Get(ContextKeyUserID); exists {
		if userID, ok := id.(uint); ok {
			return userID
		}
	}
	return 0
}

// GetUserRole retrieves the authenticated user's role from the context.
func GetUserRole(c *gin.Context) entities.UserRole {
	if r, exists := c.Get(ContextKeyRole); exists {
		if role, ok := r.(entities.UserRole); ok {
			return role
		}
	}
	return ""
}

// GetLibraryID returns the library a staff member belongs to, or 0.
func GetLibraryID(c *gin.Context) uint {
	if id, exists := c.Get(ContextKeyLibraryID); exists {
		if libraryID, ok := id.(uint); ok {
			return libraryID
		}
	}
	return 0
}

// IsStaff reports whether the caller is a librarian or an admin.
func IsStaff(c *gin.Context) bool {
	role := GetUserRole(c)
	return role == entities.UserRoleLibrarian || role == entities.UserRoleAdmin
}
