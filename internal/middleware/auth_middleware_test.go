package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testSecret = "test-service-secret"

func signToken(t *testing.T, secret, role string, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, ServiceClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "ops",
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func newProtectedRouter() *gin.Engine {
	m := NewServiceAuthMiddleware(testSecret, zap.NewNop())
	r := gin.New()
	r.POST("/debug", m.RequireServiceRole(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"subject": c.GetString("service_subject")})
	})
	return r
}

func doRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/debug", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestRequireServiceRole_Accepts(t *testing.T) {
	r := newProtectedRouter()
	token := signToken(t, testSecret, RoleServiceRole, time.Now().Add(time.Hour))

	w := doRequest(r, "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"subject":"ops"`)
}

func TestRequireServiceRole_Rejects(t *testing.T) {
	r := newProtectedRouter()

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"wrong scheme", "Basic abc"},
		{"garbage token", "Bearer not-a-jwt"},
		{"wrong role", "Bearer " + signToken(t, testSecret, "anon", time.Now().Add(time.Hour))},
		{"wrong secret", "Bearer " + signToken(t, "other-secret", RoleServiceRole, time.Now().Add(time.Hour))},
		{"expired", "Bearer " + signToken(t, testSecret, RoleServiceRole, time.Now().Add(-time.Minute))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(r, tt.header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestParseToken_RejectsNoneAlgorithm(t *testing.T) {
	m := NewServiceAuthMiddleware(testSecret, zap.NewNop())
	token := jwt.NewWithClaims(jwt.SigningMethodNone, ServiceClaims{Role: RoleServiceRole})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = m.ParseToken(signed)
	assert.Error(t, err)
}

func TestExtractUUIDParam(t *testing.T) {
	r := gin.New()
	r.GET("/users/:id", ExtractUUIDParam("id", "userID"), func(c *gin.Context) {
		c.String(http.StatusOK, c.MustGet("userID").(interface{ String() string }).String())
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/users/6f1c1a2e-3c4d-4e5f-8a9b-0c1d2e3f4a5b", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "6f1c1a2e-3c4d-4e5f-8a9b-0c1d2e3f4a5b", w.Body.String())

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/users/42", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
