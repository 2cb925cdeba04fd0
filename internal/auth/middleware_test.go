package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/booklending/internal/apperror"
	"github.com/mrlokans/booklending/internal/entities"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type userMap map[uint]*entities.User

func (m userMap) Get(_ context.Context, id uint) (*entities.User, error) {
	if id == 99 {
		return nil, errors.New("connection reset")
	}
	user, ok := m[id]
	if !ok {
		return nil, apperror.NotFound("user")
	}
	return user, nil
}

func setupRouter() *gin.Engine {
	library := uint(3)
	users := userMap{
		1: {ID: 1, Role: entities.UserRoleUser, Status: entities.UserStatusActive},
		2: {ID: 2, Role: entities.UserRoleLibrarian, Status: entities.UserStatusActive, LibraryID: &library},
		3: {ID: 3, Role: entities.UserRoleUser, Status: entities.UserStatusBanned},
	}

	router := gin.New()
	router.Use(NewMiddleware(users).Handler())
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	router.GET("/api/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":    GetUserID(c),
			"role":       GetUserRole(c),
			"library_id": GetLibraryID(c),
			"staff":      IsStaff(c),
		})
	})
	router.GET("/api/staff", RequireRole(entities.UserRoleLibrarian, entities.UserRoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return router
}

func get(router *gin.Engine, path, userID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if userID != "" {
		req.Header.Set(HeaderUserID, userID)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestMiddleware_PublicPaths(t *testing.T) {
	rr := get(setupRouter(), "/ping", "")
	if rr.Code != http.StatusOK {
		t.Errorf("Expected status 200 for public path, got %d", rr.Code)
	}
}

func TestMiddleware_RejectsMissingOrBadHeader(t *testing.T) {
	router := setupRouter()

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"not a number", "abc", http.StatusUnauthorized},
		{"zero", "0", http.StatusUnauthorized},
		{"unknown user", "42", http.StatusUnauthorized},
		{"banned user", "3", http.StatusForbidden},
		{"lookup failure", "99", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := get(router, "/api/me", tt.header)
			if rr.Code != tt.want {
				t.Errorf("Expected status %d, got %d", tt.want, rr.Code)
			}
		})
	}
}

func TestMiddleware_SetsUserContext(t *testing.T) {
	rr := get(setupRouter(), "/api/me", "2")
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}

	var body struct {
		UserID    uint   `json:"user_id"`
		Role      string `json:"role"`
		LibraryID uint   `json:"library_id"`
		Staff     bool   `json:"staff"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body.UserID != 2 || body.Role != "librarian" || body.LibraryID != 3 || !body.Staff {
		t.Errorf("Unexpected user context: %+v", body)
	}
}

func TestRequireRole(t *testing.T) {
	router := setupRouter()

	if rr := get(router, "/api/staff", "1"); rr.Code != http.StatusForbidden {
		t.Errorf("Expected readers to be forbidden, got %d", rr.Code)
	}
	if rr := get(router, "/api/staff", "2"); rr.Code != http.StatusNoContent {
		t.Errorf("Expected librarians to pass, got %d", rr.Code)
	}
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(SecurityHeadersMiddleware(), StrictTransportSecurityMiddleware())
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	headers := map[string]string{
		"X-Frame-Options":           "DENY",
		"X-Content-Type-Options":    "nosniff",
		"Strict-Transport-Security": "max-age=31536000; includeSubDomains",
	}
	for name, want := range headers {
		if got := rr.Header().Get(name); got != want {
			t.Errorf("%s = %q, want %q", name, got, want)
		}
	}
}
