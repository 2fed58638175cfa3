package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"pharmacy-api/config"
	"pharmacy-api/handlers"
	"pharmacy-api/middleware"
	"pharmacy-api/models"
	"pharmacy-api/notify"
	"pharmacy-api/routes"
	"pharmacy-api/security"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testPassword = "password123"

var testHasher = security.BcryptHasher{Cost: bcrypt.MinCost}

// stubVerifier satisfies security.GoogleVerifier without calling Google.
type stubVerifier struct {
	identity *security.GoogleIdentity
	err      error
}

func (v stubVerifier) Verify(context.Context, string) (*security.GoogleIdentity, error) {
	return v.identity, v.err
}

func newTestServer(t *testing.T, verifier security.GoogleVerifier) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.JWTSecret = []byte("test-secret")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One shared in-memory database per test
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, config.Migrate(db))

	r := gin.New()
	r.GET("/health", handlers.Health(db))
	routes.SetupRoutes(r, db, testHasher, verifier, notify.Discard{})
	return r, db
}

func createUser(t *testing.T, db *gorm.DB, username string, role models.UserRole) (models.User, string) {
	t.Helper()
	hash, err := testHasher.Hash(testPassword)
	require.NoError(t, err)
	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		Role:         role,
	}
	require.NoError(t, db.Create(&user).Error)
	if role == models.RoleCourier {
		require.NoError(t, db.Create(&models.CourierProfile{UserID: user.ID}).Error)
	}
	token, err := middleware.GenerateToken(&user)
	require.NoError(t, err)
	return user, token
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64) models.Product {
	t.Helper()
	product := models.Product{Name: name, Price: price, InStock: true}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func mustStatus(t *testing.T, w *httptest.ResponseRecorder, want int) map[string]interface{} {
	t.Helper()
	require.Equal(t, want, w.Code, "unexpected status, body: %s", w.Body.String())
	return decodeBody(t, w)
}
