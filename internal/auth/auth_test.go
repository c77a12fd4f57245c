package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wastenot/internal/models"
)

func testService(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.AutoMigrate(&models.User{}).Error)

	return NewService(db, "test-secret", time.Hour)
}

func TestSignupLoginVerify(t *testing.T) {
	s := testService(t)

	user, err := s.Signup("cook@example.com", "kitchen123")
	require.NoError(t, err)
	assert.NotEmpty(t, user.UserID)
	assert.Equal(t, "cook@example.com", user.Email)
	assert.NotEqual(t, "kitchen123", user.PasswordHash)

	token, err := s.Login("cook@example.com", "kitchen123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := s.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.UserID, userID)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	s := testService(t)

	_, err := s.Signup("cook@example.com", "kitchen123")
	require.NoError(t, err)

	_, err = s.Signup("cook@example.com", "different456")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignup_Validation(t *testing.T) {
	s := testService(t)

	_, err := s.Signup("not-an-email", "kitchen123")
	assert.Error(t, err)

	_, err = s.Signup("cook@example.com", "short")
	assert.Error(t, err)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	s := testService(t)

	_, err := s.Signup("cook@example.com", "kitchen123")
	require.NoError(t, err)

	_, err = s.Login("cook@example.com", "wrongpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.Login("nobody@example.com", "kitchen123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyToken_Invalid(t *testing.T) {
	s := testService(t)

	_, err := s.VerifyToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := testService(t)

	_, err := s.Signup("cook@example.com", "kitchen123")
	require.NoError(t, err)
	token, err := s.Login("cook@example.com", "kitchen123")
	require.NoError(t, err)

	router := gin.New()
	router.GET("/protected", Middleware(s), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString(UserIDKey)})
	})

	// No header
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Bad token
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Valid token
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user_id")
}
