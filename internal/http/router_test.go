package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	intconfig "dpxcruise/internal/config"
	"dpxcruise/internal/domain/models"
	h "dpxcruise/internal/http/handlers"
	"dpxcruise/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRouter(t *testing.T) (*gin.Engine, services.TokenIssuer) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	tokens := services.TokenIssuer{Secret: []byte("router-test"), TTL: time.Hour}
	r := NewRouter(intconfig.Env{CORSOrigins: []string{"http://localhost:3000"}}, h.Deps{Tokens: tokens})
	t.Cleanup(func() { h.Configure(h.Deps{}) })
	return r, tokens
}

func serve(r *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthRoute(t *testing.T) {
	r, _ := testRouter(t)
	w := serve(r, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	r, _ := testRouter(t)
	for _, path := range []string{"/api/auth/change-username", "/api/visual/room-occupancy?tripid=1"} {
		method := http.MethodGet
		if path == "/api/auth/change-username" {
			method = http.MethodPut
		}
		w := serve(r, method, path, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestStaffRoutesRejectCustomers(t *testing.T) {
	r, tokens := testRouter(t)
	token, err := tokens.Issue(models.User{ID: 3, Username: "Ann", Email: "ann@example.com", Role: "customer"})
	require.NoError(t, err)

	w := serve(r, http.MethodGet, "/api/visual/room-occupancy?tripid=1", token)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = serve(r, http.MethodPost, "/api/trips/add", token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUnknownRoute(t *testing.T) {
	r, _ := testRouter(t)
	w := serve(r, http.MethodGet, "/api/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "route not found")
}
