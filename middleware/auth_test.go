package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"relocation-api/config"
	"relocation-api/models"
)

// setupAuthTestDB points the global config.DB at a sqlmock-backed GORM handle.
func setupAuthTestDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	prev := config.DB
	config.DB = gormDB
	t.Cleanup(func() { config.DB = prev })

	return mock
}

// newProtectedRouter mounts a route behind AuthMiddleware that echoes the
// session keys the middleware is expected to set.
func newProtectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetInt("userID"),
			"role_id": c.GetInt("roleID"),
		})
	})
	return r
}

func signTestToken(t *testing.T, secret string, userID, roleID int) string {
	t.Helper()

	claims := &Claims{
		UserID: userID,
		Email:  "amine@example.com",
		RoleID: roleID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	mock := setupAuthTestDB(t)
	router := newProtectedRouter()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Authorization header is required")
	// Rejected before any query runs.
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	mock := setupAuthTestDB(t)
	router := newProtectedRouter()

	headers := []struct {
		name   string
		header string
	}{
		{"No Bearer prefix", "some-token"},
		{"Wrong scheme", "Basic some-token"},
		{"Garbage token", "Bearer not.a.jwt"},
	}

	for _, tc := range headers {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", tc.header)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthMiddlewareWrongSecret(t *testing.T) {
	mock := setupAuthTestDB(t)
	t.Setenv("JWT_SECRET", "test-secret")
	router := newProtectedRouter()

	token := signTestToken(t, "another-secret", 7, models.RoleClient)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

// A token that verifies but whose account was deleted afterwards no longer
// opens a session.
func TestAuthMiddlewareStaleUser(t *testing.T) {
	mock := setupAuthTestDB(t)
	t.Setenv("JWT_SECRET", "test-secret")
	router := newProtectedRouter()

	mock.ExpectQuery("SELECT \\* FROM `users` WHERE user_id = \\? AND delete_at IS NULL").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

	token := signTestToken(t, "test-secret", 7, models.RoleClient)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "User not found")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	mock := setupAuthTestDB(t)
	t.Setenv("JWT_SECRET", "test-secret")
	router := newProtectedRouter()

	mock.ExpectQuery("SELECT \\* FROM `users` WHERE user_id = \\? AND delete_at IS NULL").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "role_id"}).AddRow(7, models.RoleAdmin))

	token := signTestToken(t, "test-secret", 7, models.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"user_id":7`)
	assert.Contains(t, w.Body.String(), `"role_id":2`)
	require.NoError(t, mock.ExpectationsWereMet())
}
