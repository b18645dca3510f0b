package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"dpxcruise/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeTokens map[string]domain.Identity

func (f fakeTokens) Parse(raw string) (domain.Identity, error) {
	id, ok := f[raw]
	if !ok {
		return domain.Identity{}, domain.UnauthorizedError{Msg: "invalid token", Err: errors.New("bad signature")}
	}
	return id, nil
}

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	tokens := fakeTokens{
		"cust": {UserID: 1, Role: domain.RoleCustomer},
		"emp":  {UserID: 2, Role: domain.RoleEmployee},
	}
	r := gin.New()
	r.Use(RequestID())
	r.GET("/me", AuthRequired(tokens), func(c *gin.Context) {
		id, _ := GetIdentity(c)
		c.JSON(http.StatusOK, gin.H{"user_id": id.UserID})
	})
	r.GET("/admin", AuthRequired(tokens), RequireRoles(domain.RoleEmployee), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func do(r http.Handler, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequired(t *testing.T) {
	r := newEngine()

	w := do(r, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "authorization token is missing")

	w = do(r, "/me", "Bearer forged")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid token")

	w = do(r, "/me", "bearer cust")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":1}`, w.Body.String())
}

func TestRequireRoles(t *testing.T) {
	r := newEngine()
	assert.Equal(t, http.StatusForbidden, do(r, "/admin", "Bearer cust").Code)
	assert.Equal(t, http.StatusNoContent, do(r, "/admin", "Bearer emp").Code)
}

func TestRequestIDHeader(t *testing.T) {
	r := newEngine()

	w := do(r, "/me", "")
	assert.Len(t, w.Header().Get("X-Request-ID"), 36)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestCORSPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:3000"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}
