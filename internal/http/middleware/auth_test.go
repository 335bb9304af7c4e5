package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mobiletoilet/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func authEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AuthOptional(testSecret))
	r.GET("/who", func(c *gin.Context) {
		rc := GetRequestContext(c)
		c.JSON(http.StatusOK, gin.H{"role": rc.Role, "uuid": rc.UserUUID})
	})
	return r
}

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)
	return tok
}

func TestAuthOptionalAnonymous(t *testing.T) {
	rec := httptest.NewRecorder()
	authEngine().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/who", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"role":"citizen"`)
}

func TestAuthOptionalValidToken(t *testing.T) {
	tok := signed(t, jwt.MapClaims{"uuid": "u-1", "role": domain.RoleEmployee, "exp": time.Now().Add(time.Hour).Unix()})
	req := httptest.NewRequest(http.MethodGet, "/who", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	authEngine().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"uuid":"u-1"`)
	assert.Contains(t, rec.Body.String(), `"role":"employee"`)
}

func TestAuthOptionalRejectsBadTokens(t *testing.T) {
	expired := signed(t, jwt.MapClaims{"uuid": "u-1", "exp": time.Now().Add(-time.Hour).Unix()})
	cases := map[string]string{
		"garbage": "Bearer not-a-token",
		"scheme":  "Basic abc",
		"expired": "Bearer " + expired,
	}
	for name, header := range cases {
		req := httptest.NewRequest(http.MethodGet, "/who", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		authEngine().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, name)
	}
}
