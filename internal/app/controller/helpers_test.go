package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oysloe/oysloe-backend/internal/app/model"
	"github.com/oysloe/oysloe-backend/internal/db"
	apperrors "github.com/oysloe/oysloe-backend/internal/errors"
	"github.com/oysloe/oysloe-backend/internal/middleware"
	"github.com/oysloe/oysloe-backend/pkg/util"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testJWTSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
	apperrors.RegisterValidators()
}

func setupTestDB(t *testing.T) *gorm.DB {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })
	return testDB
}

// createStaff inserts a staff user and returns it with a valid access token.
func createStaff(t *testing.T, testDB *gorm.DB, email string, role model.UserRole) (*model.User, string) {
	hash, err := util.HashPassword("password123")
	require.NoError(t, err)

	user := &model.User{Email: email, PasswordHash: hash, Name: "Staff " + email, Role: role}
	require.NoError(t, testDB.Create(user).Error)

	tokens, err := util.GenerateTokenPair(user.ID, user.Email, string(user.Role), testJWTSecret, 15*time.Minute, time.Hour)
	require.NoError(t, err)
	return user, tokens.AccessToken
}

func newAuthMiddleware(blacklist middleware.TokenChecker) *middleware.AuthMiddleware {
	return middleware.NewAuthMiddleware(testJWTSecret, blacklist)
}

// performRequest body may be nil, a raw string, or a value to JSON-encode.
func performRequest(router *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewBuffer(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

type memoryBlacklist struct {
	mu      sync.Mutex
	revoked map[string]bool
}

func newMemoryBlacklist() *memoryBlacklist {
	return &memoryBlacklist{revoked: map[string]bool{}}
}

func (m *memoryBlacklist) BlacklistToken(ctx context.Context, tokenID string, expiry time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[tokenID] = true
	return nil
}

func (m *memoryBlacklist) IsTokenBlacklisted(ctx context.Context, tokenID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.revoked[tokenID], nil
}

func todayUTC() string {
	return time.Now().UTC().Format(model.DateLayout)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
