package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTokens() TokenService {
	return TokenService{
		Secret:   []byte("test-secret"),
		Issuer:   "eventhub-test",
		Duration: time.Hour,
	}
}

func TestSignParseRoundTrip(t *testing.T) {
	ts := testTokens()

	token, exp, err := ts.Sign("admin")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := ts.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)
	assert.Equal(t, AdminRole, claims.Role)
	assert.Equal(t, "eventhub-test", claims.Issuer)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	ts := testTokens()
	token, _, err := ts.Sign("admin")
	require.NoError(t, err)

	other := testTokens()
	other.Secret = []byte("different-secret")

	_, err = other.Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	ts := testTokens()
	ts.Duration = -time.Minute

	token, _, err := ts.Sign("admin")
	require.NoError(t, err)

	_, err = ts.Parse(token)
	assert.Error(t, err)
}

func protectedRouter(ts TokenService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/scrape", AuthMiddleware(ts), func(c *gin.Context) {
		claims := mustGetClaims(c)
		c.JSON(http.StatusOK, gin.H{"subject": claims.Subject})
	})
	return r
}

func TestMiddlewareRejectsMissingToken(t *testing.T) {
	r := protectedRouter(testTokens())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/scrape", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMiddlewareRejectsGarbageToken(t *testing.T) {
	r := protectedRouter(testTokens())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/scrape", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMiddlewareAcceptsValidToken(t *testing.T) {
	ts := testTokens()
	r := protectedRouter(ts)

	token, _, err := ts.Sign("admin")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/scrape", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `"subject":"admin"`))
}

func TestLoginEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ts := testTokens()
	h := NewHandler(ts, "hunter2")

	r := gin.New()
	h.RegisterRoutes(r.Group("/auth"))

	t.Run("correct password", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/auth/login",
			strings.NewReader(`{"password":"hunter2"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "token")
	})

	t.Run("wrong password", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/auth/login",
			strings.NewReader(`{"password":"wrong"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing password", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/auth/login",
			strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
