package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func readOnlyRouter(enabled bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(NewReadOnlyMiddleware(enabled).Handler())
	ok := func(c *gin.Context) { c.String(http.StatusOK, "OK") }
	router.GET("/api/borrowings/my", ok)
	router.POST("/api/borrowings", ok)
	router.PUT("/api/borrowings/:id/return", ok)
	return router
}

func TestReadOnlyMiddleware_AllowsReads(t *testing.T) {
	w := httptest.NewRecorder()
	readOnlyRouter(true).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/borrowings/my", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestReadOnlyMiddleware_BlocksWrites(t *testing.T) {
	router := readOnlyRouter(true)

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodPost, "/api/borrowings", nil),
		httptest.NewRequest(http.MethodPut, "/api/borrowings/1/return", nil),
	} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code, req.Method)
		assert.Equal(t, "300", w.Header().Get("Retry-After"))
		assert.Contains(t, w.Body.String(), `"code":"READ_ONLY_MODE"`)
	}
}

func TestReadOnlyMiddleware_DisabledPassesThrough(t *testing.T) {
	m := NewReadOnlyMiddleware(false)
	assert.False(t, m.IsEnabled())

	w := httptest.NewRecorder()
	readOnlyRouter(false).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/borrowings", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
