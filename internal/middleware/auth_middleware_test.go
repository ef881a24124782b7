package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	iauth "github.com/cinetrack/cinetrack/internal/auth"
	"github.com/cinetrack/cinetrack/internal/database/testutil"
	"github.com/cinetrack/cinetrack/internal/models"
	"github.com/cinetrack/cinetrack/internal/services"
)

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	require.NoError(t, db.Create(&models.User{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "not-used-here",
		IsActive: true,
	}).Error)

	userSvc, err := services.NewUserService(db)
	require.NoError(t, err)

	jwtSvc, err := iauth.NewJWTService("secret", "test-suite", time.Minute)
	require.NoError(t, err)

	token, err := jwtSvc.GenerateToken("alice@example.com")
	require.NoError(t, err)

	r := gin.New()
	r.GET("/secure", Auth(jwtSvc, userSvc), func(c *gin.Context) {
		user := c.MustGet(CtxUserKey).(*models.User)
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetString(CtxUserIDKey),
			"email":   user.Email,
		})
	})

	// Missing Authorization header -> 401
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))

	// Garbage token -> 401
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// Valid token -> downstream handler executes with the user attached
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	require.Equal(t, "alice@example.com", payload["email"])
	require.NotEmpty(t, payload["user_id"])
}

func TestAuthMiddlewareRejectsInactiveUser(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	require.NoError(t, db.Create(&models.User{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "not-used-here",
		IsActive: false,
	}).Error)

	userSvc, err := services.NewUserService(db)
	require.NoError(t, err)

	jwtSvc, err := iauth.NewJWTService("secret", "test-suite", time.Minute)
	require.NoError(t, err)

	token, err := jwtSvc.GenerateToken("bob@example.com")
	require.NoError(t, err)

	r := gin.New()
	r.GET("/secure", Auth(jwtSvc, userSvc), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
